package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"credit-engine/internal/domain/credit"
	"credit-engine/internal/domain/customer"
	"credit-engine/internal/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type CreditRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ credit.Repository = (*CreditRepository)(nil)

func NewCreditRepository(db DBPool, logger *slog.Logger) *CreditRepository {
	if db == nil {
		panic("DBPool cannot be nil for CreditRepository")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCreditRepository, using default stderr handler")
	}
	return &CreditRepository{
		db:     db,
		logger: logger.With("component", "CreditRepository"),
	}
}

func (r *CreditRepository) Create(ctx context.Context, cred *credit.Credit) error {
	if cred == nil {
		return fmt.Errorf("%w: credit cannot be nil", apperrors.ErrInvalidArgument)
	}

	r.logger.InfoContext(ctx, "Attempting to insert new credit", slog.String("creditCode", cred.CreditCode.String()))

	query := `
        INSERT INTO credits (credit_code, credit_value, first_installment_date, installments, status, customer_id, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, NOW())
        RETURNING id, created_at`

	err := r.db.QueryRow(ctx, query,
		cred.CreditCode,
		cred.CreditValue,
		cred.FirstInstallmentDate,
		cred.Installments,
		cred.Status,
		cred.CustomerID,
	).Scan(
		&cred.ID,
		&cred.CreatedAt,
	)

	if err != nil {
		translatedErr := translateDBError(err, r.logger)
		if errors.Is(translatedErr, apperrors.ErrConflict) {
			// FK violation: the referenced customer row does not exist.
			r.logger.WarnContext(ctx, "Failed to insert credit, owning customer does not exist", slog.Int64("customerID", cred.CustomerID))
			return fmt.Errorf("%w: customer %d not found", apperrors.ErrValidation, cred.CustomerID)
		}
		if errors.Is(translatedErr, apperrors.ErrAlreadyExists) {
			r.logger.WarnContext(ctx, "Failed to insert credit due to credit code collision", slog.String("creditCode", cred.CreditCode.String()))
			return translatedErr
		}
		r.logger.ErrorContext(ctx, "Failed to insert credit", slog.Any("error", err))
		return fmt.Errorf("%w: failed to insert credit: %w", apperrors.ErrDatabase, err)
	}

	r.logger.InfoContext(ctx, "Credit inserted successfully", slog.Int64("creditID", cred.ID))
	return nil
}

func (r *CreditRepository) FindByCreditCode(ctx context.Context, creditCode uuid.UUID) (*credit.Credit, error) {
	r.logger.InfoContext(ctx, "Attempting to find credit by code", slog.String("creditCode", creditCode.String()))

	query := `
        SELECT cr.id, cr.credit_code, cr.credit_value, cr.first_installment_date, cr.installments, cr.status, cr.customer_id, cr.created_at,
               cu.id, cu.first_name, cu.last_name, cu.cpf, cu.email, cu.income, cu.zip_code, cu.street
        FROM credits cr
        JOIN customers cu ON cu.id = cr.customer_id
        WHERE cr.credit_code = $1`

	var cred credit.Credit
	var cust customer.Customer
	err := r.db.QueryRow(ctx, query, creditCode).Scan(
		&cred.ID,
		&cred.CreditCode,
		&cred.CreditValue,
		&cred.FirstInstallmentDate,
		&cred.Installments,
		&cred.Status,
		&cred.CustomerID,
		&cred.CreatedAt,
		&cust.ID,
		&cust.FirstName,
		&cust.LastName,
		&cust.CPF,
		&cust.Email,
		&cust.Income,
		&cust.Address.ZipCode,
		&cust.Address.Street,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.WarnContext(ctx, "Credit not found", slog.String("creditCode", creditCode.String()))
			return nil, apperrors.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to query credit by code", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to find credit: %w", apperrors.ErrDatabase, err)
	}

	cred.Customer = &cust
	return &cred, nil
}

func (r *CreditRepository) FindAllByCustomerID(ctx context.Context, customerID int64) ([]*credit.Credit, error) {
	r.logger.InfoContext(ctx, "Attempting to list credits by customer", slog.Int64("customerID", customerID))

	// Straight indexed FK-equality lookup (idx_credits_customer_id).
	query := `
        SELECT id, credit_code, credit_value, first_installment_date, installments, status, customer_id, created_at
        FROM credits
        WHERE customer_id = $1
        ORDER BY id`

	rows, err := r.db.Query(ctx, query, customerID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query credits by customer", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to list credits: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	credits := make([]*credit.Credit, 0)
	for rows.Next() {
		var cred credit.Credit
		err := rows.Scan(
			&cred.ID,
			&cred.CreditCode,
			&cred.CreditValue,
			&cred.FirstInstallmentDate,
			&cred.Installments,
			&cred.Status,
			&cred.CustomerID,
			&cred.CreatedAt,
		)
		if err != nil {
			r.logger.ErrorContext(ctx, "Failed to scan credit row", slog.Any("error", err))
			return nil, fmt.Errorf("%w: failed to scan credit row: %w", apperrors.ErrDatabase, err)
		}
		credits = append(credits, &cred)
	}

	if err := rows.Err(); err != nil {
		r.logger.ErrorContext(ctx, "Row iteration error listing credits", slog.Any("error", err))
		return nil, fmt.Errorf("%w: row iteration failed: %w", apperrors.ErrDatabase, err)
	}

	return credits, nil
}
