package dto

import (
	"time"

	"github.com/iho/storeledger/internal/domain"
)

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Type          string    `json:"type"`
	Balance       string    `json:"balance"`
	AccountNumber string    `json:"account_number,omitempty"`
	BankName      string    `json:"bank_name,omitempty"`
	Description   string    `json:"description,omitempty"`
	Status        string    `json:"status"`
	Version       int64     `json:"version"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// AccountFromDomain converts domain account to response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:            a.ID,
		Name:          a.Name,
		Type:          string(a.Type),
		Balance:       a.Balance.StringFixed(2),
		AccountNumber: a.AccountNumber,
		BankName:      a.BankName,
		Description:   a.Description,
		Status:        string(a.Status),
		Version:       a.Version,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// ListAccountsResponse wraps a page of accounts.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Total    int64              `json:"total"`
}

// EntryResponse represents an expense or income entry in API responses.
type EntryResponse struct {
	ID            string    `json:"id"`
	Kind          string    `json:"kind"`
	AccountID     string    `json:"account_id"`
	Amount        string    `json:"amount"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	Status        string    `json:"status"`
	PaymentMethod string    `json:"payment_method"`
	Reference     string    `json:"reference,omitempty"`
	TransferID    string    `json:"transfer_id,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	Date          time.Time `json:"date"`
	CreatedBy     string    `json:"created_by,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// EntryFromDomain converts domain entry to response.
func EntryFromDomain(e *domain.Entry) *EntryResponse {
	if e == nil {
		return nil
	}
	return &EntryResponse{
		ID:            e.ID,
		Kind:          string(e.Kind),
		AccountID:     e.AccountID,
		Amount:        e.Amount.StringFixed(2),
		Description:   e.Description,
		Category:      e.Category,
		Status:        string(e.Status),
		PaymentMethod: string(e.PaymentMethod),
		Reference:     e.Reference,
		TransferID:    e.TransferID,
		Notes:         e.Notes,
		Date:          e.Date,
		CreatedBy:     e.CreatedBy,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []*domain.Entry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return result
}

// ListEntriesResponse wraps a list of entries.
type ListEntriesResponse struct {
	Entries []*EntryResponse `json:"entries"`
	Total   int64            `json:"total"`
}

// TransferResponse represents a transfer with both legs.
type TransferResponse struct {
	ID            string                 `json:"id"`
	FromAccountID string                 `json:"from_account_id"`
	ToAccountID   string                 `json:"to_account_id"`
	Amount        string                 `json:"amount"`
	Description   string                 `json:"description"`
	Reference     string                 `json:"reference"`
	Date          time.Time              `json:"date"`
	CreatedBy     string                 `json:"created_by,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
	Status        string                 `json:"status"`
	Expense       *EntryResponse         `json:"expense,omitempty"`
	Income        *EntryResponse         `json:"income,omitempty"`
	Issue         *domain.IntegrityIssue `json:"issue,omitempty"`
}

// TransferFromDomain converts a transfer record to response.
func TransferFromDomain(rec *domain.TransferRecord) *TransferResponse {
	t := rec.Transfer
	return &TransferResponse{
		ID:            t.ID,
		FromAccountID: t.FromAccountID,
		ToAccountID:   t.ToAccountID,
		Amount:        t.Amount.StringFixed(2),
		Description:   t.Description,
		Reference:     t.Reference,
		Date:          t.Date,
		CreatedBy:     t.CreatedBy,
		CreatedAt:     t.CreatedAt,
		Status:        string(rec.Status),
		Expense:       EntryFromDomain(rec.Expense),
		Income:        EntryFromDomain(rec.Income),
		Issue:         rec.Issue,
	}
}

// TransfersFromDomain converts transfer records to responses.
func TransfersFromDomain(records []*domain.TransferRecord) []*TransferResponse {
	result := make([]*TransferResponse, len(records))
	for i, rec := range records {
		result[i] = TransferFromDomain(rec)
	}
	return result
}

// ListTransfersResponse wraps transfer history.
type ListTransfersResponse struct {
	Transfers []*TransferResponse `json:"transfers"`
	Total     int64               `json:"total"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
