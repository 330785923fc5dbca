package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/fintave/bankaccount-backend/internal/domain"
)

type CustomerService interface {
	CreateCustomer(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
	GetCustomer(ctx context.Context, customerID int64) (*domain.Customer, error)
	ListCustomers(ctx context.Context) ([]*domain.Customer, error)
	SearchCustomers(ctx context.Context, name string) ([]*domain.Customer, error)
	UpdateCustomer(ctx context.Context, customerID int64, name, email string) (*domain.Customer, error)
	DeleteCustomer(ctx context.Context, customerID int64) error
	CustomerAccounts(ctx context.Context, customerID int64) ([]*domain.Account, error)
	CustomerOperations(ctx context.Context, customerID int64) ([]*domain.Operation, error)
}

type CustomerController struct {
	service CustomerService
}

func NewCustomerController(service CustomerService) *CustomerController {
	return &CustomerController{service: service}
}

func (c *CustomerController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	register := func(pattern string, handler http.HandlerFunc) {
		if authMiddleware != nil {
			mux.Handle(pattern, authMiddleware(handler))
			return
		}
		mux.Handle(pattern, handler)
	}

	register("POST /api/bank/customers", c.create)
	register("GET /api/bank/customers", c.list)
	register("GET /api/bank/customers/search", c.search)
	register("GET /api/bank/customers/{id}", c.get)
	register("GET /api/bank/customers/{id}/accounts", c.accounts)
	register("GET /api/bank/customers/{id}/operations", c.operations)
	register("PUT /api/bank/customers/{id}", c.update)
	register("DELETE /api/bank/customers/{id}", c.delete)
}

func (c *CustomerController) create(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req CustomerRequest
	if !decodeBody[CustomerResponse](w, r, &req, start) {
		return
	}

	created, err := c.service.CreateCustomer(r.Context(), &domain.Customer{Name: req.Name, Email: req.Email})
	if err != nil {
		writeError[CustomerResponse](w, r, err, start)
		return
	}

	response := successResponse("customer created", toCustomerResponse(created))
	writeJSON(w, http.StatusCreated, response)
	logResponse(r, http.StatusCreated, response, start)
}

func (c *CustomerController) list(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	customers, err := c.service.ListCustomers(r.Context())
	if err != nil {
		writeError[[]CustomerResponse](w, r, err, start)
		return
	}

	response := successResponse("customers retrieved", toCustomerResponses(customers))
	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *CustomerController) search(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	customers, err := c.service.SearchCustomers(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		writeError[[]CustomerResponse](w, r, err, start)
		return
	}

	response := successResponse("customers retrieved", toCustomerResponses(customers))
	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *CustomerController) get(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	customerID, ok := pathCustomerID[CustomerResponse](w, r, "id", start)
	if !ok {
		return
	}

	found, err := c.service.GetCustomer(r.Context(), customerID)
	if err != nil {
		writeError[CustomerResponse](w, r, err, start)
		return
	}

	response := successResponse("customer retrieved", toCustomerResponse(found))
	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *CustomerController) accounts(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	customerID, ok := pathCustomerID[[]AccountResponse](w, r, "id", start)
	if !ok {
		return
	}

	accounts, err := c.service.CustomerAccounts(r.Context(), customerID)
	if err != nil {
		writeError[[]AccountResponse](w, r, err, start)
		return
	}

	response := successResponse("accounts retrieved", toAccountResponses(accounts))
	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *CustomerController) operations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	customerID, ok := pathCustomerID[[]OperationResponse](w, r, "id", start)
	if !ok {
		return
	}

	ops, err := c.service.CustomerOperations(r.Context(), customerID)
	if err != nil {
		writeError[[]OperationResponse](w, r, err, start)
		return
	}

	response := successResponse("operations retrieved", toOperationResponses(ops))
	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *CustomerController) update(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	customerID, ok := pathCustomerID[CustomerResponse](w, r, "id", start)
	if !ok {
		return
	}

	var req CustomerRequest
	if !decodeBody[CustomerResponse](w, r, &req, start) {
		return
	}

	updated, err := c.service.UpdateCustomer(r.Context(), customerID, req.Name, req.Email)
	if err != nil {
		writeError[CustomerResponse](w, r, err, start)
		return
	}

	response := successResponse("customer updated", toCustomerResponse(updated))
	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *CustomerController) delete(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	customerID, ok := pathCustomerID[struct{}](w, r, "id", start)
	if !ok {
		return
	}

	if err := c.service.DeleteCustomer(r.Context(), customerID); err != nil {
		writeError[struct{}](w, r, err, start)
		return
	}

	response := Response[struct{}]{Success: true, Message: "customer deleted"}
	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}
