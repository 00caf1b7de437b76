package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createTransfer = `-- name: CreateTransfer :exec
INSERT INTO transfers (id, from_account_id, to_account_id, amount, description, reference, expense_entry_id, income_entry_id, date, created_by, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
`

type CreateTransferParams struct {
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

func (q *Queries) CreateTransfer(ctx context.Context, arg CreateTransferParams) error {
	_, err := q.db.Exec(ctx, createTransfer,
		arg.ID,
		arg.FromAccountID,
		arg.ToAccountID,
		arg.Amount,
		arg.Description,
		arg.Reference,
		arg.ExpenseEntryID,
		arg.IncomeEntryID,
		arg.Date,
		arg.CreatedBy,
		arg.CreatedAt,
	)
	return err
}

const getTransferByID = `-- name: GetTransferByID :one
SELECT id, from_account_id, to_account_id, amount, description, reference, expense_entry_id, income_entry_id, date, created_by, created_at FROM transfers WHERE id = $1
`

func (q *Queries) GetTransferByID(ctx context.Context, id string) (Transfer, error) {
	row := q.db.QueryRow(ctx, getTransferByID, id)
	var i Transfer
	err := row.Scan(
		&i.ID,
		&i.FromAccountID,
		&i.ToAccountID,
		&i.Amount,
		&i.Description,
		&i.Reference,
		&i.ExpenseEntryID,
		&i.IncomeEntryID,
		&i.Date,
		&i.CreatedBy,
		&i.CreatedAt,
	)
	return i, err
}

const listTransfers = `-- name: ListTransfers :many
SELECT id, from_account_id, to_account_id, amount, description, reference, expense_entry_id, income_entry_id, date, created_by, created_at FROM transfers
ORDER BY created_at DESC, id DESC
LIMIT $1
`

func (q *Queries) ListTransfers(ctx context.Context, lim pgtype.Int4) ([]Transfer, error) {
	rows, err := q.db.Query(ctx, listTransfers, lim)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Transfer{}
	for rows.Next() {
		var i Transfer
		if err := rows.Scan(
			&i.ID,
			&i.FromAccountID,
			&i.ToAccountID,
			&i.Amount,
			&i.Description,
			&i.Reference,
			&i.ExpenseEntryID,
			&i.IncomeEntryID,
			&i.Date,
			&i.CreatedBy,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
