package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createEntry = `-- name: CreateEntry :exec
INSERT INTO entries (id, kind, description, amount, category, account_id, status, payment_method, reference, transfer_id, notes, date, created_by, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
`

type CreateEntryParams struct {
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

func (q *Queries) CreateEntry(ctx context.Context, arg CreateEntryParams) error {
	_, err := q.db.Exec(ctx, createEntry,
		arg.ID,
		arg.Kind,
		arg.Description,
		arg.Amount,
		arg.Category,
		arg.AccountID,
		arg.Status,
		arg.PaymentMethod,
		arg.Reference,
		arg.TransferID,
		arg.Notes,
		arg.Date,
		arg.CreatedBy,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const deleteEntry = `-- name: DeleteEntry :execrows
DELETE FROM entries WHERE id = $1
`

func (q *Queries) DeleteEntry(ctx context.Context, id string) (int64, error) {
	result, err := q.db.Exec(ctx, deleteEntry, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const getEntryByID = `-- name: GetEntryByID :one
SELECT id, kind, description, amount, category, account_id, status, payment_method, reference, transfer_id, notes, date, created_by, created_at, updated_at FROM entries WHERE id = $1
`

func (q *Queries) GetEntryByID(ctx context.Context, id string) (Entry, error) {
	row := q.db.QueryRow(ctx, getEntryByID, id)
	var i Entry
	err := row.Scan(
		&i.ID,
		&i.Kind,
		&i.Description,
		&i.Amount,
		&i.Category,
		&i.AccountID,
		&i.Status,
		&i.PaymentMethod,
		&i.Reference,
		&i.TransferID,
		&i.Notes,
		&i.Date,
		&i.CreatedBy,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getEntryByIDForUpdate = `-- name: GetEntryByIDForUpdate :one
SELECT id, kind, description, amount, category, account_id, status, payment_method, reference, transfer_id, notes, date, created_by, created_at, updated_at FROM entries WHERE id = $1 FOR UPDATE
`

func (q *Queries) GetEntryByIDForUpdate(ctx context.Context, id string) (Entry, error) {
	row := q.db.QueryRow(ctx, getEntryByIDForUpdate, id)
	var i Entry
	err := row.Scan(
		&i.ID,
		&i.Kind,
		&i.Description,
		&i.Amount,
		&i.Category,
		&i.AccountID,
		&i.Status,
		&i.PaymentMethod,
		&i.Reference,
		&i.TransferID,
		&i.Notes,
		&i.Date,
		&i.CreatedBy,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const listEntries = `-- name: ListEntries :many
SELECT id, kind, description, amount, category, account_id, status, payment_method, reference, transfer_id, notes, date, created_by, created_at, updated_at FROM entries
WHERE ($1::text IS NULL OR account_id = $1)
  AND ($2::text IS NULL OR category = $2)
  AND ($3::text IS NULL OR kind = $3)
  AND ($4::timestamptz IS NULL OR date >= $4)
  AND ($5::timestamptz IS NULL OR date <= $5)
ORDER BY date DESC, created_at DESC, id DESC
LIMIT $6
`

type ListEntriesParams struct {
	AccountID pgtype.Text        `json:"account_id"`
	Category  pgtype.Text        `json:"category"`
	Kind      pgtype.Text        `json:"kind"`
	FromDate  pgtype.Timestamptz `json:"from_date"`
	ToDate    pgtype.Timestamptz `json:"to_date"`
	Lim       pgtype.Int4        `json:"lim"`
}

func (q *Queries) ListEntries(ctx context.Context, arg ListEntriesParams) ([]Entry, error) {
	rows, err := q.db.Query(ctx, listEntries,
		arg.AccountID,
		arg.Category,
		arg.Kind,
		arg.FromDate,
		arg.ToDate,
		arg.Lim,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Entry{}
	for rows.Next() {
		var i Entry
		if err := rows.Scan(
			&i.ID,
			&i.Kind,
			&i.Description,
			&i.Amount,
			&i.Category,
			&i.AccountID,
			&i.Status,
			&i.PaymentMethod,
			&i.Reference,
			&i.TransferID,
			&i.Notes,
			&i.Date,
			&i.CreatedBy,
			&i.CreatedAt,
			&i.UpdatedAt,
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

const listEntriesByTransfers = `-- name: ListEntriesByTransfers :many
SELECT id, kind, description, amount, category, account_id, status, payment_method, reference, transfer_id, notes, date, created_by, created_at, updated_at FROM entries WHERE transfer_id = ANY($1::text[]) ORDER BY transfer_id, kind
`

func (q *Queries) ListEntriesByTransfers(ctx context.Context, dollar_1 []string) ([]Entry, error) {
	rows, err := q.db.Query(ctx, listEntriesByTransfers, dollar_1)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Entry{}
	for rows.Next() {
		var i Entry
		if err := rows.Scan(
			&i.ID,
			&i.Kind,
			&i.Description,
			&i.Amount,
			&i.Category,
			&i.AccountID,
			&i.Status,
			&i.PaymentMethod,
			&i.Reference,
			&i.TransferID,
			&i.Notes,
			&i.Date,
			&i.CreatedBy,
			&i.CreatedAt,
			&i.UpdatedAt,
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

const sumEntriesByAccount = `-- name: SumEntriesByAccount :many
SELECT account_id, COALESCE(SUM(CASE WHEN kind = 'income' THEN amount ELSE -amount END), 0)::numeric AS total
FROM entries
GROUP BY account_id
`

type SumEntriesByAccountRow struct {
	AccountID string         `json:"account_id"`
	Total     pgtype.Numeric `json:"total"`
}

func (q *Queries) SumEntriesByAccount(ctx context.Context) ([]SumEntriesByAccountRow, error) {
	rows, err := q.db.Query(ctx, sumEntriesByAccount)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []SumEntriesByAccountRow{}
	for rows.Next() {
		var i SumEntriesByAccountRow
		if err := rows.Scan(&i.AccountID, &i.Total); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const updateEntryDetails = `-- name: UpdateEntryDetails :execrows
UPDATE entries
SET description = $2, category = $3, status = $4, payment_method = $5, reference = $6, notes = $7, updated_at = $8
WHERE id = $1
`

type UpdateEntryDetailsParams struct {
	ID            string             `json:"id"`
	Description   string             `json:"description"`
	Category      string             `json:"category"`
	Status        string             `json:"status"`
	PaymentMethod string             `json:"payment_method"`
	Reference     string             `json:"reference"`
	Notes         string             `json:"notes"`
	UpdatedAt     pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) UpdateEntryDetails(ctx context.Context, arg UpdateEntryDetailsParams) (int64, error) {
	result, err := q.db.Exec(ctx, updateEntryDetails,
		arg.ID,
		arg.Description,
		arg.Category,
		arg.Status,
		arg.PaymentMethod,
		arg.Reference,
		arg.Notes,
		arg.UpdatedAt,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
