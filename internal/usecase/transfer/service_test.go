package transfer

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fintave/bankaccount-backend/internal/domain"
	"github.com/fintave/bankaccount-backend/internal/usecase/operation"
)

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

// stubTxManager runs the unit of work directly on the caller's context.
type stubTxManager struct{}

func (stubTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newService(accounts *MockAccountRepository, operations *MockOperationRepository) *Service {
	processor := operation.NewService(accounts, operations, stubTxManager{})
	return NewService(processor, accounts, stubTxManager{})
}

func currentAccount(id string, balance decimal.Decimal) *domain.Account {
	limit := decimal.Zero
	account := domain.NewCurrentAccount(1, balance, limit)
	account.ID = id
	return account
}

func TestTransfer_MovesAmountAndRecordsBothLegs(t *testing.T) {
	ctx := context.Background()
	mockAccounts := new(MockAccountRepository)
	mockOperations := new(MockOperationRepository)
	service := newService(mockAccounts, mockOperations)

	source := currentAccount("11111111-aaaa-bbbb-cccc-dddddddddddd", decimal.NewFromInt(500))
	target := currentAccount("22222222-aaaa-bbbb-cccc-dddddddddddd", decimal.NewFromInt(200))

	mockAccounts.On("Lock", ctx, source.ID).Return(source, nil)
	mockAccounts.On("Lock", ctx, target.ID).Return(target, nil)
	mockAccounts.On("Update", ctx, mock.Anything).Return(nil)
	mockOperations.On("Create", ctx, mock.Anything).Return(nil)

	result, err := service.Transfer(ctx, source.ID, target.ID, decimal.NewFromInt(77))

	require.NoError(t, err)
	assert.True(t, source.Balance.Equal(decimal.NewFromInt(423)))
	assert.True(t, target.Balance.Equal(decimal.NewFromInt(277)))
	mockOperations.AssertNumberOfCalls(t, "Create", 2)

	assert.Equal(t, domain.OperationTypeWithdrawal, result.SourceOperation.Type)
	assert.Equal(t, source.ID, result.SourceOperation.AccountID)
	assert.Equal(t, domain.OperationTypeDeposit, result.TargetOperation.Type)
	assert.Equal(t, target.ID, result.TargetOperation.AccountID)

	// Each leg references the first 8 characters of the counterpart id.
	assert.Equal(t, "Transfer Amount 77 to accountId: 22222222..", result.SourceOperation.Description)
	assert.Equal(t, "Transfer Amount 77 from accountId: 11111111..", result.TargetOperation.Description)
}

func TestTransfer_SameAccountFailsRegardlessOfBalance(t *testing.T) {
	ctx := context.Background()
	mockAccounts := new(MockAccountRepository)
	mockOperations := new(MockOperationRepository)
	service := newService(mockAccounts, mockOperations)

	_, err := service.Transfer(ctx, "acc-1", "acc-1", decimal.NewFromInt(10))

	require.ErrorIs(t, err, domain.ErrSameAccount)
	mockAccounts.AssertNotCalled(t, "Lock", mock.Anything, mock.Anything)
	mockOperations.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTransfer_InsufficientBalanceSkipsDeposit(t *testing.T) {
	ctx := context.Background()
	mockAccounts := new(MockAccountRepository)
	mockOperations := new(MockOperationRepository)
	service := newService(mockAccounts, mockOperations)

	source := currentAccount("source-account-id", decimal.NewFromInt(100))
	target := currentAccount("target-account-id", decimal.NewFromInt(50))
	mockAccounts.On("Lock", ctx, source.ID).Return(source, nil)
	mockAccounts.On("Lock", ctx, target.ID).Return(target, nil)

	_, err := service.Transfer(ctx, source.ID, target.ID, decimal.NewFromInt(150))

	var insufficient *domain.InsufficientBalanceError
	require.ErrorAs(t, err, &insufficient)
	assert.True(t, source.Balance.Equal(decimal.NewFromInt(100)))
	assert.True(t, target.Balance.Equal(decimal.NewFromInt(50)))

	// Neither leg writes anything.
	mockAccounts.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	mockOperations.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTransfer_LocksAccountsInAscendingIDOrder(t *testing.T) {
	ctx := context.Background()
	mockAccounts := new(MockAccountRepository)
	mockOperations := new(MockOperationRepository)
	service := newService(mockAccounts, mockOperations)

	// Source id sorts after target id, so the target row must be locked first.
	source := currentAccount("bbbbbbbb-0000-0000-0000-000000000000", decimal.NewFromInt(500))
	target := currentAccount("aaaaaaaa-0000-0000-0000-000000000000", decimal.NewFromInt(200))

	var lockOrder []string
	record := func(args mock.Arguments) {
		lockOrder = append(lockOrder, args.String(1))
	}
	mockAccounts.On("Lock", ctx, source.ID).Run(record).Return(source, nil)
	mockAccounts.On("Lock", ctx, target.ID).Run(record).Return(target, nil)
	mockAccounts.On("Update", ctx, mock.Anything).Return(nil)
	mockOperations.On("Create", ctx, mock.Anything).Return(nil)

	_, err := service.Transfer(ctx, source.ID, target.ID, decimal.NewFromInt(10))

	require.NoError(t, err)
	require.GreaterOrEqual(t, len(lockOrder), 2)
	assert.Equal(t, target.ID, lockOrder[0])
	assert.Equal(t, source.ID, lockOrder[1])
}

func TestTransfer_UnknownTargetFailsBeforeAnyWrite(t *testing.T) {
	ctx := context.Background()
	mockAccounts := new(MockAccountRepository)
	mockOperations := new(MockOperationRepository)
	service := newService(mockAccounts, mockOperations)

	source := currentAccount("aaaaaaaa-0000-0000-0000-000000000000", decimal.NewFromInt(500))
	mockAccounts.On("Lock", ctx, source.ID).Return(source, nil)
	mockAccounts.On("Lock", ctx, "bbbbbbbb-0000-0000-0000-000000000000").Return(nil, nil)

	_, err := service.Transfer(ctx, source.ID, "bbbbbbbb-0000-0000-0000-000000000000", decimal.NewFromInt(10))

	var notFound *domain.AccountNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.True(t, source.Balance.Equal(decimal.NewFromInt(500)))
	mockAccounts.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	mockOperations.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTransfer_ShortAccountIDsAreUsedInFull(t *testing.T) {
	ctx := context.Background()
	mockAccounts := new(MockAccountRepository)
	mockOperations := new(MockOperationRepository)
	service := newService(mockAccounts, mockOperations)

	source := currentAccount("src", decimal.NewFromInt(50))
	target := currentAccount("tgt", decimal.Zero)

	mockAccounts.On("Lock", ctx, "src").Return(source, nil)
	mockAccounts.On("Lock", ctx, "tgt").Return(target, nil)
	mockAccounts.On("Update", ctx, mock.Anything).Return(nil)
	mockOperations.On("Create", ctx, mock.Anything).Return(nil)

	result, err := service.Transfer(ctx, "src", "tgt", decimal.NewFromInt(5))

	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(result.SourceOperation.Description, "accountId: tgt.."))
	assert.True(t, strings.HasSuffix(result.TargetOperation.Description, "accountId: src.."))
}
