package customer

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fintave/bankaccount-backend/internal/domain"
)

// MockCustomerRepository is a mock implementation of domain.CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id int64) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAll(ctx context.Context) ([]*domain.Customer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) SearchByName(ctx context.Context, name string) ([]*domain.Customer, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) Update(ctx context.Context, customer *domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockAccountRepository is a mock implementation of domain.AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) Lock(ctx context.Context, id string) (*domain.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAll(ctx context.Context) ([]*domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByCustomerID(ctx context.Context, customerID int64) ([]*domain.Account, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) Update(ctx context.Context, account *domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockOperationRepository is a mock implementation of domain.OperationRepository
type MockOperationRepository struct {
	mock.Mock
}

func (m *MockOperationRepository) Create(ctx context.Context, op *domain.Operation) error {
	args := m.Called(ctx, op)
	return args.Error(0)
}

func (m *MockOperationRepository) FindByID(ctx context.Context, id string) (*domain.Operation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Operation), args.Error(1)
}

func (m *MockOperationRepository) FindByAccountID(ctx context.Context, accountID string) ([]*domain.Operation, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Operation), args.Error(1)
}

func (m *MockOperationRepository) FindPageByAccountID(ctx context.Context, accountID string, limit, offset int) ([]*domain.Operation, error) {
	args := m.Called(ctx, accountID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Operation), args.Error(1)
}

func (m *MockOperationRepository) CountByAccountID(ctx context.Context, accountID string) (int, error) {
	args := m.Called(ctx, accountID)
	return args.Int(0), args.Error(1)
}

func (m *MockOperationRepository) FindByCustomerID(ctx context.Context, customerID int64) ([]*domain.Operation, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Operation), args.Error(1)
}

func (m *MockOperationRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestCreateCustomer(t *testing.T) {
	ctx := context.Background()
	mockCustomers := new(MockCustomerRepository)
	service := NewService(mockCustomers, new(MockAccountRepository), new(MockOperationRepository))

	mockCustomers.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Customer).ID = 42
	}).Return(nil)

	created, err := service.CreateCustomer(ctx, &domain.Customer{Name: "Alice", Email: "alice@example.com"})

	require.NoError(t, err)
	assert.Equal(t, int64(42), created.ID)
}

func TestCreateCustomer_ValidationFailure(t *testing.T) {
	ctx := context.Background()
	mockCustomers := new(MockCustomerRepository)
	service := NewService(mockCustomers, new(MockAccountRepository), new(MockOperationRepository))

	_, err := service.CreateCustomer(ctx, &domain.Customer{Name: "X", Email: "bad"})

	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	mockCustomers.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpdateCustomer_NotFound(t *testing.T) {
	ctx := context.Background()
	mockCustomers := new(MockCustomerRepository)
	service := NewService(mockCustomers, new(MockAccountRepository), new(MockOperationRepository))

	mockCustomers.On("FindByID", ctx, int64(5)).Return(nil, nil)

	_, err := service.UpdateCustomer(ctx, 5, "Bob", "bob@example.com")

	var notFound *domain.CustomerNotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestCustomerAccountsAndOperations(t *testing.T) {
	ctx := context.Background()
	mockCustomers := new(MockCustomerRepository)
	mockAccounts := new(MockAccountRepository)
	mockOperations := new(MockOperationRepository)
	service := NewService(mockCustomers, mockAccounts, mockOperations)

	customer := &domain.Customer{ID: 7, Name: "Alice", Email: "alice@example.com"}
	account := domain.NewCurrentAccount(7, decimal.NewFromInt(10), decimal.Zero)
	op := domain.NewOperation(account.ID, domain.OperationTypeDeposit, decimal.NewFromInt(10), "")

	mockCustomers.On("FindByID", ctx, int64(7)).Return(customer, nil)
	mockAccounts.On("FindByCustomerID", ctx, int64(7)).Return([]*domain.Account{account}, nil)
	mockOperations.On("FindByCustomerID", ctx, int64(7)).Return([]*domain.Operation{op}, nil)

	accounts, err := service.CustomerAccounts(ctx, 7)
	require.NoError(t, err)
	assert.Len(t, accounts, 1)

	operations, err := service.CustomerOperations(ctx, 7)
	require.NoError(t, err)
	assert.Len(t, operations, 1)
}

func TestDeleteCustomer(t *testing.T) {
	ctx := context.Background()
	mockCustomers := new(MockCustomerRepository)
	mockAccounts := new(MockAccountRepository)
	service := NewService(mockCustomers, mockAccounts, new(MockOperationRepository))

	customer := &domain.Customer{ID: 7, Name: "Alice", Email: "alice@example.com"}
	mockCustomers.On("FindByID", ctx, int64(7)).Return(customer, nil)
	mockAccounts.On("FindByCustomerID", ctx, int64(7)).Return([]*domain.Account{}, nil)
	mockCustomers.On("Delete", ctx, int64(7)).Return(nil)

	require.NoError(t, service.DeleteCustomer(ctx, 7))
	mockCustomers.AssertExpectations(t)
}

func TestDeleteCustomer_StillOwnsAccounts(t *testing.T) {
	ctx := context.Background()
	mockCustomers := new(MockCustomerRepository)
	mockAccounts := new(MockAccountRepository)
	service := NewService(mockCustomers, mockAccounts, new(MockOperationRepository))

	customer := &domain.Customer{ID: 7, Name: "Alice", Email: "alice@example.com"}
	account := domain.NewCurrentAccount(7, decimal.NewFromInt(10), decimal.Zero)
	mockCustomers.On("FindByID", ctx, int64(7)).Return(customer, nil)
	mockAccounts.On("FindByCustomerID", ctx, int64(7)).Return([]*domain.Account{account}, nil)

	err := service.DeleteCustomer(ctx, 7)

	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	mockCustomers.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestSearchCustomers(t *testing.T) {
	ctx := context.Background()
	mockCustomers := new(MockCustomerRepository)
	service := NewService(mockCustomers, new(MockAccountRepository), new(MockOperationRepository))

	found := []*domain.Customer{{ID: 1, Name: "Alice", Email: "alice@example.com"}}
	mockCustomers.On("SearchByName", ctx, "ali").Return(found, nil)

	customers, err := service.SearchCustomers(ctx, "ali")

	require.NoError(t, err)
	assert.Equal(t, found, customers)
}
