package httpapi

import (
	"github.com/fintave/bankaccount-backend/internal/domain"
	"github.com/fintave/bankaccount-backend/internal/usecase/account"
)

// operationDateFormat is ISO-8601 with millisecond precision and a
// timezone offset, e.g. "2024-03-17T10:15:30.123+01:00".
const operationDateFormat = "2006-01-02T15:04:05.000Z07:00"

// OperationRequest is the on-the-wire request for deposit, withdrawal and
// transfer. Amounts travel as strings to preserve decimal precision.
type OperationRequest struct {
	AccountID       string `json:"accountId,omitempty"`
	SourceAccountID string `json:"sourceAccountId,omitempty"`
	TargetAccountID string `json:"targetAccountId,omitempty"`
	Amount          string `json:"amount"`
	OperationType   string `json:"operationType"`
}

// OperationResponse is the wire representation of a ledger entry.
type OperationResponse struct {
	ID            string `json:"id"`
	AccountID     string `json:"accountId"`
	Amount        string `json:"amount"`
	OperationType string `json:"operationType"`
	OperationDate string `json:"operationDate"`
	Description   string `json:"description"`
}

// TransferResponse bundles the two legs of a transfer.
type TransferResponse struct {
	SourceOperation OperationResponse `json:"sourceOperation"`
	TargetOperation OperationResponse `json:"targetOperation"`
}

// CreateAccountRequest is the request body for opening an account. The
// type-specific field is required for the matching route only.
type CreateAccountRequest struct {
	Balance        string `json:"balance"`
	OverdraftLimit string `json:"overdraftLimit,omitempty"`
	InterestRate   string `json:"interestRate,omitempty"`
}

// UpdateAccountRequest carries the updatable account fields; absent fields
// are left untouched.
type UpdateAccountRequest struct {
	Balance        *string `json:"balance,omitempty"`
	OverdraftLimit *string `json:"overdraftLimit,omitempty"`
	InterestRate   *string `json:"interestRate,omitempty"`
}

// AccountResponse is the wire representation of an account.
type AccountResponse struct {
	ID             string `json:"id"`
	AccountType    string `json:"accountType"`
	Status         string `json:"status"`
	Balance        string `json:"balance"`
	OverdraftLimit string `json:"overdraftLimit,omitempty"`
	InterestRate   string `json:"interestRate,omitempty"`
	CustomerID     int64  `json:"customerId"`
	CreatedOn      string `json:"createdOn"`
	ModifiedOn     string `json:"modifiedOn,omitempty"`
}

// AccountDetailsResponse is an account with its owner and full ledger.
type AccountDetailsResponse struct {
	Account    AccountResponse     `json:"account"`
	Customer   *CustomerResponse   `json:"customer,omitempty"`
	Operations []OperationResponse `json:"operations"`
}

// AccountHistoryResponse is one page of an account's ledger.
type AccountHistoryResponse struct {
	Account     AccountResponse     `json:"account"`
	CurrentPage int                 `json:"currentPage"`
	TotalPages  int                 `json:"totalPages"`
	PageSize    int                 `json:"pageSize"`
	Operations  []OperationResponse `json:"operations"`
}

// CustomerRequest is the request body for creating or updating a customer.
type CustomerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CustomerResponse is the wire representation of a customer.
type CustomerResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func toOperationResponse(op *domain.Operation) OperationResponse {
	return OperationResponse{
		ID:            op.ID,
		AccountID:     op.AccountID,
		Amount:        op.Amount.String(),
		OperationType: string(op.Type),
		OperationDate: op.OperationDate.Format(operationDateFormat),
		Description:   op.Description,
	}
}

func toOperationResponses(ops []*domain.Operation) []OperationResponse {
	out := make([]OperationResponse, 0, len(ops))
	for _, op := range ops {
		out = append(out, toOperationResponse(op))
	}
	return out
}

func toAccountResponse(a *domain.Account) AccountResponse {
	resp := AccountResponse{
		ID:          a.ID,
		AccountType: string(a.Type),
		Status:      string(a.Status),
		Balance:     a.Balance.String(),
		CustomerID:  a.CustomerID,
		CreatedOn:   a.CreatedOn.Format(operationDateFormat),
	}
	if a.OverdraftLimit != nil {
		resp.OverdraftLimit = a.OverdraftLimit.String()
	}
	if a.InterestRate != nil {
		resp.InterestRate = a.InterestRate.String()
	}
	if a.ModifiedOn != nil {
		resp.ModifiedOn = a.ModifiedOn.Format(operationDateFormat)
	}
	return resp
}

func toAccountResponses(accounts []*domain.Account) []AccountResponse {
	out := make([]AccountResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, toAccountResponse(a))
	}
	return out
}

func toCustomerResponse(c *domain.Customer) CustomerResponse {
	return CustomerResponse{ID: c.ID, Name: c.Name, Email: c.Email}
}

func toCustomerResponses(customers []*domain.Customer) []CustomerResponse {
	out := make([]CustomerResponse, 0, len(customers))
	for _, c := range customers {
		out = append(out, toCustomerResponse(c))
	}
	return out
}

func toAccountDetailsResponse(d *account.Details) AccountDetailsResponse {
	resp := AccountDetailsResponse{
		Account:    toAccountResponse(d.Account),
		Operations: toOperationResponses(d.Operations),
	}
	if d.Customer != nil {
		c := toCustomerResponse(d.Customer)
		resp.Customer = &c
	}
	return resp
}

func toAccountHistoryResponse(h *account.History) AccountHistoryResponse {
	return AccountHistoryResponse{
		Account:     toAccountResponse(h.Account),
		CurrentPage: h.CurrentPage,
		TotalPages:  h.TotalPages,
		PageSize:    h.PageSize,
		Operations:  toOperationResponses(h.Operations),
	}
}
