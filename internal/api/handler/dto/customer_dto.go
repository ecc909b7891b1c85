package dto

import (
	"strconv"

	"credit-engine/internal/domain/customer"

	"github.com/shopspring/decimal"
)

type CreateCustomerRequest struct {
	FirstName string           `json:"firstName" validate:"required"`
	LastName  string           `json:"lastName" validate:"required"`
	CPF       string           `json:"cpf" validate:"required,cpf"`
	Income    *decimal.Decimal `json:"income" validate:"required"`
	Email     string           `json:"email" validate:"required,email"`
	Password  string           `json:"password" validate:"required"`
	ZipCode   string           `json:"zipCode" validate:"required"`
	Street    string           `json:"street" validate:"required"`
}

func (r *CreateCustomerRequest) Validate() error {
	if verrs := checkStruct(r); verrs.HasErrors() {
		return verrs
	}
	return nil
}

// ToDomain maps the wire payload to the domain type. The password travels
// separately; only its hash ever reaches the entity.
func (r *CreateCustomerRequest) ToDomain() (*customer.Customer, string) {
	return customer.NewCustomer(
		r.FirstName,
		r.LastName,
		r.CPF,
		r.Email,
		*r.Income,
		customer.Address{ZipCode: r.ZipCode, Street: r.Street},
	), r.Password
}

type UpdateCustomerRequest struct {
	FirstName string           `json:"firstName" validate:"required"`
	LastName  string           `json:"lastName" validate:"required"`
	Income    *decimal.Decimal `json:"income" validate:"required"`
	ZipCode   string           `json:"zipCode" validate:"required"`
	Street    string           `json:"street" validate:"required"`
}

func (r *UpdateCustomerRequest) Validate() error {
	if verrs := checkStruct(r); verrs.HasErrors() {
		return verrs
	}
	return nil
}

type CustomerResponse struct {
	CustomerID string `json:"customerId"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	CPF        string `json:"cpf"`
	Email      string `json:"email"`
	ZipCode    string `json:"zipCode"`
	Street     string `json:"street"`
}

func NewCustomerResponse(cust *customer.Customer) CustomerResponse {
	if cust == nil {
		return CustomerResponse{}
	}

	return CustomerResponse{
		CustomerID: strconv.FormatInt(cust.ID, 10),
		FirstName:  cust.FirstName,
		LastName:   cust.LastName,
		CPF:        cust.CPF,
		Email:      cust.Email,
		ZipCode:    cust.Address.ZipCode,
		Street:     cust.Address.Street,
	}
}
