package generated

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type Account struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	Type          string             `json:"type"`
	Balance       pgtype.Numeric     `json:"balance"`
	AccountNumber string             `json:"account_number"`
	BankName      string             `json:"bank_name"`
	Description   string             `json:"description"`
	Status        string             `json:"status"`
	Version       int64              `json:"version"`
	CreatedAt     pgtype.Timestamptz `json:"created_at"`
	UpdatedAt     pgtype.Timestamptz `json:"updated_at"`
}

type Entry struct {
	ID            string             `json:"id"`
	Kind          string             `json:"kind"`
	Description   string             `json:"description"`
	Amount        pgtype.Numeric     `json:"amount"`
	Category      string             `json:"category"`
	AccountID     string             `json:"account_id"`
	Status        string             `json:"status"`
	PaymentMethod string             `json:"payment_method"`
	Reference     string             `json:"reference"`
	TransferID    pgtype.Text        `json:"transfer_id"`
	Notes         string             `json:"notes"`
	Date          pgtype.Timestamptz `json:"date"`
	CreatedBy     string             `json:"created_by"`
	CreatedAt     pgtype.Timestamptz `json:"created_at"`
	UpdatedAt     pgtype.Timestamptz `json:"updated_at"`
}

type Transfer struct {
	ID             string             `json:"id"`
	FromAccountID  string             `json:"from_account_id"`
	ToAccountID    string             `json:"to_account_id"`
	Amount         pgtype.Numeric     `json:"amount"`
	Description    string             `json:"description"`
	Reference      string             `json:"reference"`
	ExpenseEntryID string             `json:"expense_entry_id"`
	IncomeEntryID  string             `json:"income_entry_id"`
	Date           pgtype.Timestamptz `json:"date"`
	CreatedBy      string             `json:"created_by"`
	CreatedAt      pgtype.Timestamptz `json:"created_at"`
}
