package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintave/bankaccount-backend/internal/domain"
	"github.com/fintave/bankaccount-backend/internal/usecase/account"
)

type AccountService interface {
	CreateCurrentAccount(ctx context.Context, customerID int64, balance, overdraftLimit decimal.Decimal) (*domain.Account, error)
	CreateSavingsAccount(ctx context.Context, customerID int64, balance, interestRate decimal.Decimal) (*domain.Account, error)
	GetAccount(ctx context.Context, accountID string) (*domain.Account, error)
	ListAccounts(ctx context.Context) ([]*domain.Account, error)
	GetAccountDetails(ctx context.Context, accountID string) (*account.Details, error)
	ListAccountDetails(ctx context.Context) ([]*account.Details, error)
	UpdateAccount(ctx context.Context, accountID string, input account.UpdateInput) (*domain.Account, error)
	DeleteAccount(ctx context.Context, accountID string) error
	AccountOperations(ctx context.Context, accountID string) ([]*domain.Operation, error)
	AccountHistory(ctx context.Context, accountID string, page, size int) (*account.History, error)
}

type AccountController struct {
	service AccountService
}

func NewAccountController(service AccountService) *AccountController {
	return &AccountController{service: service}
}

func (c *AccountController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	register := func(pattern string, handler http.HandlerFunc) {
		if authMiddleware != nil {
			mux.Handle(pattern, authMiddleware(handler))
			return
		}
		mux.Handle(pattern, handler)
	}

	register("POST /api/bank/accounts/current/{customerId}", c.createCurrent)
	register("POST /api/bank/accounts/savings/{customerId}", c.createSavings)
	register("GET /api/bank/accounts", c.list)
	register("GET /api/bank/accounts/details", c.listDetails)
	register("GET /api/bank/accounts/{id}", c.get)
	register("GET /api/bank/accounts/{id}/details", c.getDetails)
	register("GET /api/bank/accounts/{id}/operations", c.operations)
	register("GET /api/bank/accounts/{id}/history", c.history)
	register("PUT /api/bank/accounts/{id}", c.update)
	register("DELETE /api/bank/accounts/{id}", c.delete)
}

func (c *AccountController) createCurrent(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	customerID, ok := pathCustomerID[AccountResponse](w, r, "customerId", start)
	if !ok {
		return
	}

	var req CreateAccountRequest
	if !decodeBody[AccountResponse](w, r, &req, start) {
		return
	}

	balance, err := decimal.NewFromString(req.Balance)
	if err != nil {
		badAmount[AccountResponse](w, r, err, start)
		return
	}
	overdraftLimit, err := decimal.NewFromString(req.OverdraftLimit)
	if err != nil {
		badAmount[AccountResponse](w, r, err, start)
		return
	}

	created, err := c.service.CreateCurrentAccount(r.Context(), customerID, balance, overdraftLimit)
	if err != nil {
		writeError[AccountResponse](w, r, err, start)
		return
	}

	response := successResponse("account created", toAccountResponse(created))
	writeJSON(w, http.StatusCreated, response)
	logResponse(r, http.StatusCreated, response, start)
}

func (c *AccountController) createSavings(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	customerID, ok := pathCustomerID[AccountResponse](w, r, "customerId", start)
	if !ok {
		return
	}

	var req CreateAccountRequest
	if !decodeBody[AccountResponse](w, r, &req, start) {
		return
	}

	balance, err := decimal.NewFromString(req.Balance)
	if err != nil {
		badAmount[AccountResponse](w, r, err, start)
		return
	}
	interestRate, err := decimal.NewFromString(req.InterestRate)
	if err != nil {
		badAmount[AccountResponse](w, r, err, start)
		return
	}

	created, err := c.service.CreateSavingsAccount(r.Context(), customerID, balance, interestRate)
	if err != nil {
		writeError[AccountResponse](w, r, err, start)
		return
	}

	response := successResponse("account created", toAccountResponse(created))
	writeJSON(w, http.StatusCreated, response)
	logResponse(r, http.StatusCreated, response, start)
}

func (c *AccountController) list(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	accounts, err := c.service.ListAccounts(r.Context())
	if err != nil {
		writeError[[]AccountResponse](w, r, err, start)
		return
	}

	response := successResponse("accounts retrieved", toAccountResponses(accounts))
	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *AccountController) listDetails(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	details, err := c.service.ListAccountDetails(r.Context())
	if err != nil {
		writeError[[]AccountDetailsResponse](w, r, err, start)
		return
	}

	out := make([]AccountDetailsResponse, 0, len(details))
	for _, d := range details {
		out = append(out, toAccountDetailsResponse(d))
	}

	response := successResponse("account details retrieved", out)
	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *AccountController) get(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	found, err := c.service.GetAccount(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError[AccountResponse](w, r, err, start)
		return
	}

	response := successResponse("account retrieved", toAccountResponse(found))
	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *AccountController) getDetails(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	details, err := c.service.GetAccountDetails(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError[AccountDetailsResponse](w, r, err, start)
		return
	}

	response := successResponse("account details retrieved", toAccountDetailsResponse(details))
	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *AccountController) operations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	ops, err := c.service.AccountOperations(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError[[]OperationResponse](w, r, err, start)
		return
	}

	response := successResponse("operations retrieved", toOperationResponses(ops))
	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *AccountController) history(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	page, err := queryInt(r, "page", 0)
	if err != nil {
		badQueryParam[AccountHistoryResponse](w, r, "page", err, start)
		return
	}
	size, err := queryInt(r, "size", 10)
	if err != nil {
		badQueryParam[AccountHistoryResponse](w, r, "size", err, start)
		return
	}

	history, err := c.service.AccountHistory(r.Context(), r.PathValue("id"), page, size)
	if err != nil {
		writeError[AccountHistoryResponse](w, r, err, start)
		return
	}

	response := successResponse("account history retrieved", toAccountHistoryResponse(history))
	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *AccountController) update(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req UpdateAccountRequest
	if !decodeBody[AccountResponse](w, r, &req, start) {
		return
	}

	input, err := toUpdateInput(req)
	if err != nil {
		badAmount[AccountResponse](w, r, err, start)
		return
	}

	updated, err := c.service.UpdateAccount(r.Context(), r.PathValue("id"), input)
	if err != nil {
		writeError[AccountResponse](w, r, err, start)
		return
	}

	response := successResponse("account updated", toAccountResponse(updated))
	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *AccountController) delete(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if err := c.service.DeleteAccount(r.Context(), r.PathValue("id")); err != nil {
		writeError[struct{}](w, r, err, start)
		return
	}

	response := Response[struct{}]{Success: true, Message: "account deleted"}
	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func toUpdateInput(req UpdateAccountRequest) (account.UpdateInput, error) {
	var input account.UpdateInput
	if req.Balance != nil {
		balance, err := decimal.NewFromString(*req.Balance)
		if err != nil {
			return account.UpdateInput{}, err
		}
		input.Balance = &balance
	}
	if req.OverdraftLimit != nil {
		limit, err := decimal.NewFromString(*req.OverdraftLimit)
		if err != nil {
			return account.UpdateInput{}, err
		}
		input.OverdraftLimit = &limit
	}
	if req.InterestRate != nil {
		rate, err := decimal.NewFromString(*req.InterestRate)
		if err != nil {
			return account.UpdateInput{}, err
		}
		input.InterestRate = &rate
	}
	return input, nil
}

func pathCustomerID[T any](w http.ResponseWriter, r *http.Request, name string, start time.Time) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil {
		logError(r, err, nil)
		response := errorResponse[T]("invalid customer id", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return 0, false
	}
	return id, true
}

func decodeBody[T any](w http.ResponseWriter, r *http.Request, dst any, start time.Time) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		logError(r, err, nil)
		response := errorResponse[T]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return false
	}
	logRequest(r, dst)
	return true
}

// queryInt parses an integer query parameter, using fallback when absent.
// A present but malformed value is an error.
func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

func badQueryParam[T any](w http.ResponseWriter, r *http.Request, name string, err error, start time.Time) {
	logError(r, err, nil)
	response := errorResponse[T]("invalid query parameter: "+name, err.Error())
	writeJSON(w, http.StatusBadRequest, response)
	logResponse(r, http.StatusBadRequest, response, start)
}
