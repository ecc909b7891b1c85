package credit

import (
	"time"

	"credit-engine/internal/domain/customer"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusInProgress Status = "IN_PROGRESS"
	StatusApproved   Status = "APPROVED"
	StatusRejected   Status = "REJECTED"
)

// CodeGenerator produces the globally unique external handle assigned to a
// credit at creation. Injected so the strategy stays swappable in tests.
type CodeGenerator func() uuid.UUID

type Credit struct {
	ID                   int64
	CreditCode           uuid.UUID
	CreditValue          decimal.Decimal
	FirstInstallmentDate time.Time
	Installments         int
	Status               Status
	CustomerID           int64
	Customer             *customer.Customer
	CreatedAt            time.Time
}

func NewCredit(creditValue decimal.Decimal, firstInstallmentDate time.Time, installments int, customerID int64) *Credit {
	return &Credit{
		CreditValue:          creditValue,
		FirstInstallmentDate: firstInstallmentDate,
		Installments:         installments,
		CustomerID:           customerID,
	}
}
