package dto

import (
	"fmt"
	"time"

	"credit-engine/internal/domain/credit"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

type CreateCreditRequest struct {
	CreditValue          *decimal.Decimal `json:"creditValue" validate:"required"`
	DayFirstInstallment  string           `json:"dayFirstInstallment" validate:"required"`
	NumberOfInstallments *int             `json:"numberOfInstallments" validate:"required"`
	CustomerID           int64            `json:"customerId" validate:"required,gt=0"`
}

func (r *CreateCreditRequest) Validate() error {
	verrs := checkStruct(r)

	if r.DayFirstInstallment != "" {
		day, err := time.Parse(dateLayout, r.DayFirstInstallment)
		switch {
		case err != nil:
			verrs.Append("dayFirstInstallment", "must be a date in YYYY-MM-DD format")
		case !day.After(time.Now()):
			verrs.Append("dayFirstInstallment", "must be in the future")
		}
	}

	if verrs.HasErrors() {
		return verrs
	}
	return nil
}

func (r *CreateCreditRequest) ToDomain() *credit.Credit {
	day, _ := time.Parse(dateLayout, r.DayFirstInstallment)
	return credit.NewCredit(*r.CreditValue, day, *r.NumberOfInstallments, r.CustomerID)
}

// CreditCreatedResponse confirms a creation, echoing the generated code and
// the owner's first name.
type CreditCreatedResponse struct {
	CreditCode        string `json:"creditCode"`
	CustomerFirstName string `json:"customerFirstName,omitempty"`
	Message           string `json:"message"`
}

func NewCreditCreatedResponse(cred *credit.Credit) CreditCreatedResponse {
	firstName := ""
	if cred.Customer != nil {
		firstName = cred.Customer.FirstName
	}
	return CreditCreatedResponse{
		CreditCode:        cred.CreditCode.String(),
		CustomerFirstName: firstName,
		Message:           fmt.Sprintf("Credit %s - Customer %s saved", cred.CreditCode, firstName),
	}
}

// CreditSummaryResponse is the list projection: no customer details.
type CreditSummaryResponse struct {
	CreditCode           string `json:"creditCode"`
	CreditValue          string `json:"creditValue"`
	NumberOfInstallments int    `json:"numberOfInstallments"`
	Status               string `json:"status"`
}

func NewCreditSummaryResponse(cred *credit.Credit) CreditSummaryResponse {
	return CreditSummaryResponse{
		CreditCode:           cred.CreditCode.String(),
		CreditValue:          cred.CreditValue.StringFixed(2),
		NumberOfInstallments: cred.Installments,
		Status:               string(cred.Status),
	}
}

// CreditResponse is the detail projection, surfacing the owning customer's
// email and income next to the credit itself.
type CreditResponse struct {
	CreditCode           string `json:"creditCode"`
	CreditValue          string `json:"creditValue"`
	NumberOfInstallments int    `json:"numberOfInstallments"`
	Status               string `json:"status"`
	EmailCustomer        string `json:"emailCustomer,omitempty"`
	IncomeCustomer       string `json:"incomeCustomer,omitempty"`
}

func NewCreditResponse(cred *credit.Credit) CreditResponse {
	resp := CreditResponse{
		CreditCode:           cred.CreditCode.String(),
		CreditValue:          cred.CreditValue.StringFixed(2),
		NumberOfInstallments: cred.Installments,
		Status:               string(cred.Status),
	}
	if cred.Customer != nil {
		resp.EmailCustomer = cred.Customer.Email
		resp.IncomeCustomer = cred.Customer.Income.StringFixed(2)
	}
	return resp
}

type ErrorDetail struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`

	// Details carries one entry per failing field when validation rejects
	// a payload.
	Details []ErrorDetail `json:"details,omitempty"`
}
