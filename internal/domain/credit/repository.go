package credit

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, credit *Credit) error

	// FindByCreditCode loads a credit together with its owning customer,
	// which the detail view needs for email and income.
	FindByCreditCode(ctx context.Context, creditCode uuid.UUID) (*Credit, error)

	FindAllByCustomerID(ctx context.Context, customerID int64) ([]*Credit, error)
}
