package customer

import (
	"time"

	"github.com/shopspring/decimal"
)

// Address is a value object embedded in Customer. It has no identity of
// its own and lives and dies with its owner.
type Address struct {
	ZipCode string
	Street  string
}

type Customer struct {
	ID           int64
	FirstName    string
	LastName     string
	CPF          string
	Email        string
	PasswordHash string
	Income       decimal.Decimal
	Address      Address
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func NewCustomer(firstName, lastName, cpf, email string, income decimal.Decimal, address Address) *Customer {
	return &Customer{
		FirstName: firstName,
		LastName:  lastName,
		CPF:       cpf,
		Email:     email,
		Income:    income,
		Address:   address,
	}
}

// ApplyUpdate mutates only the fields the update operation is allowed to
// touch. CPF, email and password are immutable after creation.
func (c *Customer) ApplyUpdate(firstName, lastName string, income decimal.Decimal, address Address) {
	c.FirstName = firstName
	c.LastName = lastName
	c.Income = income
	c.Address = address
	c.UpdatedAt = time.Now()
}
