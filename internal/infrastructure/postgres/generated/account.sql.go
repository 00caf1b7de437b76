package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const adjustAccountBalance = `-- name: AdjustAccountBalance :one
UPDATE accounts
SET balance = balance + $2, version = version + 1, updated_at = $4
WHERE id = $1 AND (NOT $3::boolean OR balance + $2 >= 0)
RETURNING balance
`

type AdjustAccountBalanceParams struct {
	ID        string             `json:"id"`
	Delta     pgtype.Numeric     `json:"delta"`
	Guard     bool               `json:"guard"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) AdjustAccountBalance(ctx context.Context, arg AdjustAccountBalanceParams) (pgtype.Numeric, error) {
	row := q.db.QueryRow(ctx, adjustAccountBalance,
		arg.ID,
		arg.Delta,
		arg.Guard,
		arg.UpdatedAt,
	)
	var balance pgtype.Numeric
	err := row.Scan(&balance)
	return balance, err
}

const closeAccount = `-- name: CloseAccount :execrows
UPDATE accounts
SET status = 'closed', version = version + 1, updated_at = $2
WHERE id = $1
`

type CloseAccountParams struct {
	ID        string             `json:"id"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) CloseAccount(ctx context.Context, arg CloseAccountParams) (int64, error) {
	result, err := q.db.Exec(ctx, closeAccount, arg.ID, arg.UpdatedAt)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const createAccount = `-- name: CreateAccount :exec
INSERT INTO accounts (id, name, type, balance, account_number, bank_name, description, status, version, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
`

type CreateAccountParams struct {
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

func (q *Queries) CreateAccount(ctx context.Context, arg CreateAccountParams) error {
	_, err := q.db.Exec(ctx, createAccount,
		arg.ID,
		arg.Name,
		arg.Type,
		arg.Balance,
		arg.AccountNumber,
		arg.BankName,
		arg.Description,
		arg.Status,
		arg.Version,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const getAccountByID = `-- name: GetAccountByID :one
SELECT id, name, type, balance, account_number, bank_name, description, status, version, created_at, updated_at FROM accounts WHERE id = $1
`

func (q *Queries) GetAccountByID(ctx context.Context, id string) (Account, error) {
	row := q.db.QueryRow(ctx, getAccountByID, id)
	var i Account
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Type,
		&i.Balance,
		&i.AccountNumber,
		&i.BankName,
		&i.Description,
		&i.Status,
		&i.Version,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getAccountByIDForUpdate = `-- name: GetAccountByIDForUpdate :one
SELECT id, name, type, balance, account_number, bank_name, description, status, version, created_at, updated_at FROM accounts WHERE id = $1 FOR UPDATE
`

func (q *Queries) GetAccountByIDForUpdate(ctx context.Context, id string) (Account, error) {
	row := q.db.QueryRow(ctx, getAccountByIDForUpdate, id)
	var i Account
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Type,
		&i.Balance,
		&i.AccountNumber,
		&i.BankName,
		&i.Description,
		&i.Status,
		&i.Version,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getAccountsByIDsForUpdate = `-- name: GetAccountsByIDsForUpdate :many
SELECT id, name, type, balance, account_number, bank_name, description, status, version, created_at, updated_at FROM accounts WHERE id = ANY($1::text[]) ORDER BY id FOR UPDATE
`

func (q *Queries) GetAccountsByIDsForUpdate(ctx context.Context, dollar_1 []string) ([]Account, error) {
	rows, err := q.db.Query(ctx, getAccountsByIDsForUpdate, dollar_1)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Account{}
	for rows.Next() {
		var i Account
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.Type,
			&i.Balance,
			&i.AccountNumber,
			&i.BankName,
			&i.Description,
			&i.Status,
			&i.Version,
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

const listAccounts = `-- name: ListAccounts :many
SELECT id, name, type, balance, account_number, bank_name, description, status, version, created_at, updated_at FROM accounts
WHERE ($3::boolean OR status = 'active')
ORDER BY created_at, id
LIMIT $1 OFFSET $2
`

type ListAccountsParams struct {
	Limit         int32 `json:"limit"`
	Offset        int32 `json:"offset"`
	IncludeClosed bool  `json:"include_closed"`
}

func (q *Queries) ListAccounts(ctx context.Context, arg ListAccountsParams) ([]Account, error) {
	rows, err := q.db.Query(ctx, listAccounts, arg.Limit, arg.Offset, arg.IncludeClosed)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Account{}
	for rows.Next() {
		var i Account
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.Type,
			&i.Balance,
			&i.AccountNumber,
			&i.BankName,
			&i.Description,
			&i.Status,
			&i.Version,
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

const listAllAccounts = `-- name: ListAllAccounts :many
SELECT id, name, type, balance, account_number, bank_name, description, status, version, created_at, updated_at FROM accounts ORDER BY id
`

func (q *Queries) ListAllAccounts(ctx context.Context) ([]Account, error) {
	rows, err := q.db.Query(ctx, listAllAccounts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Account{}
	for rows.Next() {
		var i Account
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.Type,
			&i.Balance,
			&i.AccountNumber,
			&i.BankName,
			&i.Description,
			&i.Status,
			&i.Version,
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

const updateAccountDetails = `-- name: UpdateAccountDetails :execrows
UPDATE accounts
SET name = $2, account_number = $3, bank_name = $4, description = $5, version = version + 1, updated_at = $6
WHERE id = $1
`

type UpdateAccountDetailsParams struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	AccountNumber string             `json:"account_number"`
	BankName      string             `json:"bank_name"`
	Description   string             `json:"description"`
	UpdatedAt     pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) UpdateAccountDetails(ctx context.Context, arg UpdateAccountDetailsParams) (int64, error) {
	result, err := q.db.Exec(ctx, updateAccountDetails,
		arg.ID,
		arg.Name,
		arg.AccountNumber,
		arg.BankName,
		arg.Description,
		arg.UpdatedAt,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
