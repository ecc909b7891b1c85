package credit

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"credit-engine/internal/domain/customer"
	"credit-engine/internal/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type MockCustomerService struct {
	mock.Mock
}

func (_m *MockCustomerService) CreateCustomer(ctx context.Context, cust *customer.Customer, password string) (*customer.Customer, error) {
	ret := _m.Called(ctx, cust, password)

	var r0 *customer.Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*customer.Customer)
	}
	return r0, ret.Error(1)
}

func (_m *MockCustomerService) GetCustomer(ctx context.Context, customerID int64) (*customer.Customer, error) {
	ret := _m.Called(ctx, customerID)

	var r0 *customer.Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*customer.Customer)
	}
	return r0, ret.Error(1)
}

func (_m *MockCustomerService) UpdateCustomer(ctx context.Context, customerID int64, firstName, lastName string, income decimal.Decimal, address customer.Address) (*customer.Customer, error) {
	ret := _m.Called(ctx, customerID, firstName, lastName, income, address)

	var r0 *customer.Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*customer.Customer)
	}
	return r0, ret.Error(1)
}

func (_m *MockCustomerService) DeleteCustomer(ctx context.Context, customerID int64) error {
	ret := _m.Called(ctx, customerID)
	return ret.Error(0)
}

var _ customer.CustomerService = (*MockCustomerService)(nil)

func setupCreditTest(genCode CodeGenerator) (*MockCreditRepository, *MockCustomerService, CreditService) {
	mockRepo := new(MockCreditRepository)
	mockCustomers := new(MockCustomerService)
	service := NewCreditService(mockRepo, mockCustomers, genCode, nil, testLogger)
	return mockRepo, mockCustomers, service
}

func newTestCredit(customerID int64) *Credit {
	return NewCredit(
		decimal.RequireFromString("100000.00"),
		time.Now().AddDate(0, 1, 0),
		15,
		customerID,
	)
}

func TestCreditService_CreateCredit(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		fixedCode := uuid.MustParse("aa3b2bb4-bb86-469e-b540-1bcdcff3ba57")
		mockRepo, mockCustomers, service := setupCreditTest(func() uuid.UUID { return fixedCode })
		cred := newTestCredit(1)
		owner := &customer.Customer{ID: 1, FirstName: "Camila", Email: "camila@email.com"}

		mockRepo.On("Create", ctx, mock.MatchedBy(func(c *Credit) bool {
			if c.CreditCode != fixedCode || c.Status != StatusInProgress {
				return false
			}
			c.ID = 10
			return true
		})).Return(nil).Once()
		mockCustomers.On("GetCustomer", ctx, int64(1)).Return(owner, nil).Once()

		created, err := service.CreateCredit(ctx, cred)

		assert.NoError(t, err)
		assert.Equal(t, fixedCode, created.CreditCode, "injected generator decides the code")
		assert.Equal(t, StatusInProgress, created.Status, "new credits always start in progress")
		assert.Equal(t, owner, created.Customer, "owner is loaded for the response")
		mockRepo.AssertExpectations(t)
		mockCustomers.AssertExpectations(t)
	})

	t.Run("Success - Owner Load Failure Does Not Fail Creation", func(t *testing.T) {
		mockRepo, mockCustomers, service := setupCreditTest(nil)
		cred := newTestCredit(1)

		mockRepo.On("Create", ctx, mock.AnythingOfType("*credit.Credit")).Return(nil).Once()
		mockCustomers.On("GetCustomer", ctx, int64(1)).
			Return(nil, apperrors.NewDomainError(apperrors.ErrNotFound, "Id 1 not found")).Once()

		created, err := service.CreateCredit(ctx, cred)

		assert.NoError(t, err)
		assert.Nil(t, created.Customer)
		assert.NotEqual(t, uuid.Nil, created.CreditCode, "default generator still assigns a code")
		mockRepo.AssertExpectations(t)
	})

	t.Run("Error - Nil Credit", func(t *testing.T) {
		mockRepo, _, service := setupCreditTest(nil)

		_, err := service.CreateCredit(ctx, nil)

		assert.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Error - Non-Positive Customer ID", func(t *testing.T) {
		mockRepo, _, service := setupCreditTest(nil)

		_, err := service.CreateCredit(ctx, newTestCredit(0))

		assert.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Error - Unknown Customer Rejected By Foreign Key", func(t *testing.T) {
		mockRepo, mockCustomers, service := setupCreditTest(nil)
		fkErr := apperrors.NewDomainError(apperrors.ErrValidation, "customer 99 not found")

		mockRepo.On("Create", ctx, mock.AnythingOfType("*credit.Credit")).Return(fkErr).Once()

		_, err := service.CreateCredit(ctx, newTestCredit(99))

		assert.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
		mockRepo.AssertExpectations(t)
		mockCustomers.AssertNotCalled(t, "GetCustomer", mock.Anything, mock.Anything)
	})

	t.Run("Error - Repository Failure", func(t *testing.T) {
		mockRepo, _, service := setupCreditTest(nil)
		dbError := errors.New("insert failed")

		mockRepo.On("Create", ctx, mock.AnythingOfType("*credit.Credit")).Return(dbError).Once()

		_, err := service.CreateCredit(ctx, newTestCredit(1))

		assert.Error(t, err)
		assert.ErrorIs(t, err, dbError)
		assert.Contains(t, err.Error(), "failed to save new credit")
		mockRepo.AssertExpectations(t)
	})
}

func TestCreditService_ListCreditsByCustomer(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo, _, service := setupCreditTest(nil)
		expected := []*Credit{
			{ID: 1, CreditCode: uuid.New(), CustomerID: 5},
			{ID: 2, CreditCode: uuid.New(), CustomerID: 5},
		}

		mockRepo.On("FindAllByCustomerID", ctx, int64(5)).Return(expected, nil).Once()

		credits, err := service.ListCreditsByCustomer(ctx, 5)

		assert.NoError(t, err)
		assert.Equal(t, expected, credits)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Success - Unknown Customer Yields Empty List", func(t *testing.T) {
		mockRepo, _, service := setupCreditTest(nil)

		mockRepo.On("FindAllByCustomerID", ctx, int64(999)).Return([]*Credit{}, nil).Once()

		credits, err := service.ListCreditsByCustomer(ctx, 999)

		assert.NoError(t, err)
		assert.NotNil(t, credits)
		assert.Empty(t, credits)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Error - Non-Positive Customer ID", func(t *testing.T) {
		mockRepo, _, service := setupCreditTest(nil)

		_, err := service.ListCreditsByCustomer(ctx, 0)

		assert.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
		mockRepo.AssertNotCalled(t, "FindAllByCustomerID", mock.Anything, mock.Anything)
	})

	t.Run("Error - Repository Failure", func(t *testing.T) {
		mockRepo, _, service := setupCreditTest(nil)
		dbError := errors.New("query failed")

		mockRepo.On("FindAllByCustomerID", ctx, int64(5)).Return(nil, dbError).Once()

		_, err := service.ListCreditsByCustomer(ctx, 5)

		assert.Error(t, err)
		assert.ErrorIs(t, err, dbError)
		mockRepo.AssertExpectations(t)
	})
}

func TestCreditService_GetCreditByCode(t *testing.T) {
	ctx := context.Background()
	creditCode := uuid.MustParse("aa3b2bb4-bb86-469e-b540-1bcdcff3ba57")

	t.Run("Success", func(t *testing.T) {
		mockRepo, _, service := setupCreditTest(nil)
		expected := &Credit{ID: 1, CreditCode: creditCode, CustomerID: 5}

		mockRepo.On("FindByCreditCode", ctx, creditCode).Return(expected, nil).Once()

		cred, err := service.GetCreditByCode(ctx, 5, creditCode)

		assert.NoError(t, err)
		assert.Equal(t, expected, cred)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Error - Credit Code Not Found", func(t *testing.T) {
		mockRepo, _, service := setupCreditTest(nil)

		mockRepo.On("FindByCreditCode", ctx, creditCode).Return(nil, apperrors.ErrNotFound).Once()

		_, err := service.GetCreditByCode(ctx, 5, creditCode)

		assert.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		assert.EqualError(t, err, "Credit code aa3b2bb4-bb86-469e-b540-1bcdcff3ba57 not found")
		mockRepo.AssertExpectations(t)
	})

	t.Run("Error - Credit Owned By Different Customer", func(t *testing.T) {
		mockRepo, _, service := setupCreditTest(nil)
		foreign := &Credit{ID: 1, CreditCode: creditCode, CustomerID: 7}

		mockRepo.On("FindByCreditCode", ctx, creditCode).Return(foreign, nil).Once()

		_, err := service.GetCreditByCode(ctx, 5, creditCode)

		assert.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
		assert.EqualError(t, err, "Contact admin", "the mismatch message must not leak ownership details")
		mockRepo.AssertExpectations(t)
	})

	t.Run("Error - Repository Failure", func(t *testing.T) {
		mockRepo, _, service := setupCreditTest(nil)
		dbError := errors.New("query failed")

		mockRepo.On("FindByCreditCode", ctx, creditCode).Return(nil, dbError).Once()

		_, err := service.GetCreditByCode(ctx, 5, creditCode)

		assert.Error(t, err)
		assert.ErrorIs(t, err, dbError)
		mockRepo.AssertExpectations(t)
	})
}
