package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/storeledger/internal/domain"
	"github.com/iho/storeledger/internal/usecase"
)

// CreateAccountRequest represents a request to create an account.
type CreateAccountRequest struct {
	Name          string `json:"name"`
	Type          string `json:"type"`
	AccountNumber string `json:"account_number,omitempty"`
	BankName      string `json:"bank_name,omitempty"`
	Description   string `json:"description,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput() usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		Name:          r.Name,
		Type:          r.Type,
		AccountNumber: r.AccountNumber,
		BankName:      r.BankName,
		Description:   r.Description,
	}
}

// UpdateAccountRequest carries the editable account fields. Omitted fields are left unchanged.
type UpdateAccountRequest struct {
	Name          *string `json:"name,omitempty"`
	AccountNumber *string `json:"account_number,omitempty"`
	BankName      *string `json:"bank_name,omitempty"`
	Description   *string `json:"description,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateAccountRequest) ToUseCaseInput() usecase.UpdateAccountInput {
	return usecase.UpdateAccountInput{
		Name:          r.Name,
		AccountNumber: r.AccountNumber,
		BankName:      r.BankName,
		Description:   r.Description,
	}
}

// PostEntryRequest represents an expense or income posting.
type PostEntryRequest struct {
	AccountID     string `json:"account_id"`
	Amount        string `json:"amount"`
	Description   string `json:"description"`
	Category      string `json:"category,omitempty"`
	Status        string `json:"status,omitempty"`
	PaymentMethod string `json:"payment_method,omitempty"`
	Reference     string `json:"reference,omitempty"`
	Notes         string `json:"notes,omitempty"`
	Date          string `json:"date,omitempty"`
	CreatedBy     string `json:"created_by,omitempty"`
}

// ToUseCaseInput converts to use case input, parsing amount and date.
func (r *PostEntryRequest) ToUseCaseInput() (usecase.PostEntryInput, error) {
	amount, err := ParseAmount(r.Amount)
	if err != nil {
		return usecase.PostEntryInput{}, err
	}

	date, err := ParseDate(r.Date)
	if err != nil {
		return usecase.PostEntryInput{}, err
	}

	return usecase.PostEntryInput{
		AccountID:     r.AccountID,
		Amount:        amount,
		Description:   r.Description,
		Category:      r.Category,
		Status:        r.Status,
		PaymentMethod: r.PaymentMethod,
		Reference:     r.Reference,
		Notes:         r.Notes,
		Date:          date,
		CreatedBy:     r.CreatedBy,
	}, nil
}

// UpdateEntryRequest carries entry edits. Amount and account_id are accepted only so that
// attempts to change them can be rejected explicitly.
type UpdateEntryRequest struct {
	Description   *string `json:"description,omitempty"`
	Category      *string `json:"category,omitempty"`
	Status        *string `json:"status,omitempty"`
	PaymentMethod *string `json:"payment_method,omitempty"`
	Reference     *string `json:"reference,omitempty"`
	Notes         *string `json:"notes,omitempty"`
	Amount        *string `json:"amount,omitempty"`
	AccountID     *string `json:"account_id,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateEntryRequest) ToUseCaseInput() (usecase.UpdateEntryInput, error) {
	input := usecase.UpdateEntryInput{
		Description:   r.Description,
		Category:      r.Category,
		Status:        r.Status,
		PaymentMethod: r.PaymentMethod,
		Reference:     r.Reference,
		Notes:         r.Notes,
		AccountID:     r.AccountID,
	}

	if r.Amount != nil {
		amount, err := ParseAmount(*r.Amount)
		if err != nil {
			return usecase.UpdateEntryInput{}, err
		}
		input.Amount = &amount
	}

	return input, nil
}

// CreateTransferRequest represents a request to move funds between two accounts.
type CreateTransferRequest struct {
	FromAccountID string `json:"from_account_id"`
	ToAccountID   string `json:"to_account_id"`
	Amount        string `json:"amount"`
	Description   string `json:"description,omitempty"`
	Reference     string `json:"reference,omitempty"`
	Date          string `json:"date,omitempty"`
	CreatedBy     string `json:"created_by,omitempty"`
}

// ToUseCaseInput converts to use case input, parsing amount and date.
func (r *CreateTransferRequest) ToUseCaseInput() (usecase.TransferInput, error) {
	amount, err := ParseAmount(r.Amount)
	if err != nil {
		return usecase.TransferInput{}, err
	}

	date, err := ParseDate(r.Date)
	if err != nil {
		return usecase.TransferInput{}, err
	}

	return usecase.TransferInput{
		FromAccountID: r.FromAccountID,
		ToAccountID:   r.ToAccountID,
		Amount:        amount,
		Description:   r.Description,
		Reference:     r.Reference,
		Date:          date,
		CreatedBy:     r.CreatedBy,
	}, nil
}

// ParseAmount parses a decimal amount string.
func ParseAmount(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a decimal amount", domain.ErrInvalidAmount, s)
	}

	return amount, nil
}

// dateLayouts lists the accepted date formats, most specific first.
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// ParseDate parses RFC3339 or YYYY-MM-DD. An empty string yields nil.
func ParseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}

	return nil, fmt.Errorf("%w: invalid date %q, use RFC3339 or YYYY-MM-DD", domain.ErrValidation, s)
}

// ParseEndDate parses like ParseDate but moves a bare YYYY-MM-DD to the last instant of that
// day so that an inclusive range covers the whole day.
func ParseEndDate(s string) (*time.Time, error) {
	t, err := ParseDate(s)
	if err != nil || t == nil {
		return t, err
	}

	if len(strings.TrimSpace(s)) == len("2006-01-02") {
		end := t.AddDate(0, 0, 1).Add(-time.Nanosecond)
		return &end, nil
	}

	return t, nil
}
