package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"credit-engine/internal/domain/credit"
	"credit-engine/internal/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func newStoredCredit() *credit.Credit {
	return &credit.Credit{
		CreditCode:           uuid.MustParse("aa3b2bb4-bb86-469e-b540-1bcdcff3ba57"),
		CreditValue:          decimal.RequireFromString("100000.00"),
		FirstInstallmentDate: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		Installments:         15,
		Status:               credit.StatusInProgress,
		CustomerID:           1,
	}
}

func setupCreditRepo(t *testing.T) (context.Context, *CreditRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mockPool, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to open a stub database connection: %v", err)
	}

	ctx := context.Background()
	repo := NewCreditRepository(mockPool, testLogger)

	return ctx, repo, mockPool
}

const insertCreditQuery = `
        INSERT INTO credits (credit_code, credit_value, first_installment_date, installments, status, customer_id, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, NOW())
        RETURNING id, created_at`

func TestCreditRepositoryCreate(t *testing.T) {
	ctx, repo, mockPool := setupCreditRepo(t)
	defer mockPool.Close()

	cred := newStoredCredit()
	now := time.Now()

	mockPool.ExpectQuery(regexp.QuoteMeta(insertCreditQuery)).WithArgs(
		cred.CreditCode,
		cred.CreditValue,
		cred.FirstInstallmentDate,
		cred.Installments,
		cred.Status,
		cred.CustomerID,
	).WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(7), now))

	err := repo.Create(ctx, cred)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), cred.ID)
	assert.Equal(t, now, cred.CreatedAt)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestCreditRepositoryCreateUnknownCustomer(t *testing.T) {
	ctx, repo, mockPool := setupCreditRepo(t)
	defer mockPool.Close()

	cred := newStoredCredit()
	cred.CustomerID = 99

	mockPool.ExpectQuery(regexp.QuoteMeta(insertCreditQuery)).WithArgs(
		cred.CreditCode,
		cred.CreditValue,
		cred.FirstInstallmentDate,
		cred.Installments,
		cred.Status,
		cred.CustomerID,
	).WillReturnError(&pgconn.PgError{Code: pgForeignKeyViolation, ConstraintName: "credits_customer_id_fkey"})

	err := repo.Create(ctx, cred)
	assert.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "customer 99 not found")
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestCreditRepositoryCreateCodeCollision(t *testing.T) {
	ctx, repo, mockPool := setupCreditRepo(t)
	defer mockPool.Close()

	cred := newStoredCredit()

	mockPool.ExpectQuery(regexp.QuoteMeta(insertCreditQuery)).WithArgs(
		cred.CreditCode,
		cred.CreditValue,
		cred.FirstInstallmentDate,
		cred.Installments,
		cred.Status,
		cred.CustomerID,
	).WillReturnError(&pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "credits_credit_code_key"})

	err := repo.Create(ctx, cred)
	assert.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestCreditRepositoryFindByCreditCode(t *testing.T) {
	ctx, repo, mockPool := setupCreditRepo(t)
	defer mockPool.Close()

	expected := newStoredCredit()
	expected.ID = 7
	now := time.Now()
	income := decimal.RequireFromString("1000.00")

	rows := pgxmock.NewRows([]string{
		"id", "credit_code", "credit_value", "first_installment_date", "installments", "status", "customer_id", "created_at",
		"id", "first_name", "last_name", "cpf", "email", "income", "zip_code", "street",
	}).AddRow(
		expected.ID, expected.CreditCode, expected.CreditValue, expected.FirstInstallmentDate,
		expected.Installments, expected.Status, expected.CustomerID, now,
		int64(1), "Camila", "Cavalcante", "28475934625", "camila@email.com", income, "12345", "Rua da Cami, 123",
	)

	mockPool.ExpectQuery(regexp.QuoteMeta("JOIN customers cu ON cu.id = cr.customer_id")).
		WithArgs(expected.CreditCode).
		WillReturnRows(rows)

	cred, err := repo.FindByCreditCode(ctx, expected.CreditCode)
	assert.NoError(t, err)
	assert.Equal(t, expected.CreditCode, cred.CreditCode)
	assert.Equal(t, credit.StatusInProgress, cred.Status)
	if assert.NotNil(t, cred.Customer, "owner row must be hydrated from the join") {
		assert.Equal(t, "camila@email.com", cred.Customer.Email)
		assert.True(t, cred.Customer.Income.Equal(income))
	}
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestCreditRepositoryFindByCreditCodeNotFound(t *testing.T) {
	ctx, repo, mockPool := setupCreditRepo(t)
	defer mockPool.Close()

	code := uuid.New()
	mockPool.ExpectQuery(regexp.QuoteMeta("SELECT")).
		WithArgs(code).
		WillReturnError(pgx.ErrNoRows)

	cred, err := repo.FindByCreditCode(ctx, code)
	assert.Nil(t, cred)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestCreditRepositoryFindAllByCustomerID(t *testing.T) {
	ctx, repo, mockPool := setupCreditRepo(t)
	defer mockPool.Close()

	now := time.Now()
	firstCode := uuid.New()
	secondCode := uuid.New()

	rows := pgxmock.NewRows([]string{
		"id", "credit_code", "credit_value", "first_installment_date", "installments", "status", "customer_id", "created_at",
	}).AddRow(
		int64(1), firstCode, decimal.RequireFromString("1000.00"), now.AddDate(0, 1, 0), 5, credit.StatusInProgress, int64(3), now,
	).AddRow(
		int64(2), secondCode, decimal.RequireFromString("2000.00"), now.AddDate(0, 2, 0), 10, credit.StatusApproved, int64(3), now,
	)

	mockPool.ExpectQuery(regexp.QuoteMeta("WHERE customer_id = $1")).
		WithArgs(int64(3)).
		WillReturnRows(rows)

	credits, err := repo.FindAllByCustomerID(ctx, 3)
	assert.NoError(t, err)
	assert.Len(t, credits, 2)
	assert.Equal(t, firstCode, credits[0].CreditCode)
	assert.Equal(t, credit.StatusApproved, credits[1].Status)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestCreditRepositoryFindAllByCustomerIDEmpty(t *testing.T) {
	ctx, repo, mockPool := setupCreditRepo(t)
	defer mockPool.Close()

	rows := pgxmock.NewRows([]string{
		"id", "credit_code", "credit_value", "first_installment_date", "installments", "status", "customer_id", "created_at",
	})

	mockPool.ExpectQuery(regexp.QuoteMeta("WHERE customer_id = $1")).
		WithArgs(int64(999)).
		WillReturnRows(rows)

	credits, err := repo.FindAllByCustomerID(ctx, 999)
	assert.NoError(t, err)
	assert.NotNil(t, credits, "absence of rows must yield an empty slice, not nil")
	assert.Empty(t, credits)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}
