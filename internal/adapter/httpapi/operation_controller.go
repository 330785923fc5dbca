package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintave/bankaccount-backend/internal/domain"
	"github.com/fintave/bankaccount-backend/internal/usecase/operation"
	"github.com/fintave/bankaccount-backend/internal/usecase/transfer"
)

type OperationService interface {
	Deposit(ctx context.Context, accountID string, amount decimal.Decimal, description string) (*domain.Operation, error)
	Withdraw(ctx context.Context, accountID string, amount decimal.Decimal, description string) (*domain.Operation, error)
	DeleteOperation(ctx context.Context, operationID string) error
}

type TransferService interface {
	Transfer(ctx context.Context, sourceAccountID, targetAccountID string, amount decimal.Decimal) (*transfer.Result, error)
}

type OperationController struct {
	operations OperationService
	transfers  TransferService
}

func NewOperationController(operations OperationService, transfers TransferService) *OperationController {
	return &OperationController{operations: operations, transfers: transfers}
}

func (c *OperationController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	register := func(pattern string, handler http.HandlerFunc) {
		if authMiddleware != nil {
			mux.Handle(pattern, authMiddleware(handler))
			return
		}
		mux.Handle(pattern, handler)
	}

	register("POST /api/bank/operations", c.perform)
	register("POST /api/bank/operations/deposit", c.deposit)
	register("POST /api/bank/operations/withdraw", c.withdraw)
	register("POST /api/bank/operations/transfer", c.transfer)
	register("DELETE /api/bank/operations/{id}", c.delete)
}

// perform dispatches a generic operation request by its operationType.
func (c *OperationController) perform(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req, ok := decodeOperationRequest[OperationResponse](w, r, start)
	if !ok {
		return
	}

	switch domain.OperationType(req.OperationType) {
	case domain.OperationTypeDeposit:
		c.runDeposit(w, r, req, start)
	case domain.OperationTypeWithdrawal:
		c.runWithdraw(w, r, req, start)
	case domain.OperationTypeTransfer:
		c.runTransferLeg(w, r, req, start)
	default:
		writeError[OperationResponse](w, r, domain.ErrUnsupportedOperation, start)
	}
}

func (c *OperationController) deposit(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	req, ok := decodeOperationRequest[OperationResponse](w, r, start)
	if !ok {
		return
	}
	c.runDeposit(w, r, req, start)
}

func (c *OperationController) withdraw(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	req, ok := decodeOperationRequest[OperationResponse](w, r, start)
	if !ok {
		return
	}
	c.runWithdraw(w, r, req, start)
}

func (c *OperationController) transfer(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	req, ok := decodeOperationRequest[TransferResponse](w, r, start)
	if !ok {
		return
	}
	c.runTransfer(w, r, req, start)
}

func (c *OperationController) delete(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	operationID := r.PathValue("id")
	if err := c.operations.DeleteOperation(r.Context(), operationID); err != nil {
		writeError[struct{}](w, r, err, start)
		return
	}

	response := Response[struct{}]{Success: true, Message: "operation deleted"}
	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *OperationController) runDeposit(w http.ResponseWriter, r *http.Request, req OperationRequest, start time.Time) {
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		badAmount[OperationResponse](w, r, err, start)
		return
	}

	op, err := c.operations.Deposit(r.Context(), req.AccountID, amount, operation.DepositDescription(amount))
	if err != nil {
		writeError[OperationResponse](w, r, err, start)
		return
	}

	response := successResponse("deposit completed", toOperationResponse(op))
	writeJSON(w, http.StatusCreated, response)
	logResponse(r, http.StatusCreated, response, start)
}

func (c *OperationController) runWithdraw(w http.ResponseWriter, r *http.Request, req OperationRequest, start time.Time) {
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		badAmount[OperationResponse](w, r, err, start)
		return
	}

	op, err := c.operations.Withdraw(r.Context(), req.AccountID, amount, operation.WithdrawalDescription(amount))
	if err != nil {
		writeError[OperationResponse](w, r, err, start)
		return
	}

	response := successResponse("withdrawal completed", toOperationResponse(op))
	writeJSON(w, http.StatusCreated, response)
	logResponse(r, http.StatusCreated, response, start)
}

// runTransferLeg serves the dispatch route, which answers with the source-leg
// operation to keep the single-operation response shape.
func (c *OperationController) runTransferLeg(w http.ResponseWriter, r *http.Request, req OperationRequest, start time.Time) {
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		badAmount[OperationResponse](w, r, err, start)
		return
	}

	result, err := c.transfers.Transfer(r.Context(), req.SourceAccountID, req.TargetAccountID, amount)
	if err != nil {
		writeError[OperationResponse](w, r, err, start)
		return
	}

	response := successResponse("transfer completed", toOperationResponse(result.SourceOperation))
	writeJSON(w, http.StatusCreated, response)
	logResponse(r, http.StatusCreated, response, start)
}

func (c *OperationController) runTransfer(w http.ResponseWriter, r *http.Request, req OperationRequest, start time.Time) {
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		badAmount[TransferResponse](w, r, err, start)
		return
	}

	result, err := c.transfers.Transfer(r.Context(), req.SourceAccountID, req.TargetAccountID, amount)
	if err != nil {
		writeError[TransferResponse](w, r, err, start)
		return
	}

	response := successResponse("transfer completed", TransferResponse{
		SourceOperation: toOperationResponse(result.SourceOperation),
		TargetOperation: toOperationResponse(result.TargetOperation),
	})
	writeJSON(w, http.StatusCreated, response)
	logResponse(r, http.StatusCreated, response, start)
}

func decodeOperationRequest[T any](w http.ResponseWriter, r *http.Request, start time.Time) (OperationRequest, bool) {
	var req OperationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := errorResponse[T]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return OperationRequest{}, false
	}
	logRequest(r, req)
	return req, true
}

func badAmount[T any](w http.ResponseWriter, r *http.Request, err error, start time.Time) {
	logError(r, err, nil)
	response := errorResponse[T]("invalid amount", err.Error())
	writeJSON(w, http.StatusBadRequest, response)
	logResponse(r, http.StatusBadRequest, response, start)
}
