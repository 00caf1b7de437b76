package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/storeledger/internal/domain"
	"github.com/iho/storeledger/internal/infrastructure/postgres/generated"
	"github.com/iho/storeledger/internal/usecase"
)

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	queries *generated.Queries
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return newAccountRepository(pool)
}

func newAccountRepository(db generated.DBTX) *AccountRepository {
	return &AccountRepository{queries: generated.New(db)}
}

// Create creates a new account.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	return r.queries.CreateAccount(ctx, generated.CreateAccountParams{
		ID:            account.ID,
		Name:          account.Name,
		Type:          string(account.Type),
		Balance:       decimalToNumeric(account.Balance),
		AccountNumber: account.AccountNumber,
		BankName:      account.BankName,
		Description:   account.Description,
		Status:        string(account.Status),
		Version:       account.Version,
		CreatedAt:     timeToPgTimestamptz(account.CreatedAt),
		UpdatedAt:     timeToPgTimestamptz(account.UpdatedAt),
	})
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	row, err := r.queries.GetAccountByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, err
	}

	return rowToAccount(row), nil
}

// GetByIDForUpdate retrieves an account by ID with a FOR UPDATE lock.
func (r *AccountRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error) {
	queries := generated.New(tx.(*Tx).PgxTx())

	row, err := queries.GetAccountByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, err
	}

	return rowToAccount(row), nil
}

// GetByIDsForUpdate retrieves multiple accounts by IDs with FOR UPDATE locks, in id order.
func (r *AccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Account, error) {
	queries := generated.New(tx.(*Tx).PgxTx())

	rows, err := queries.GetAccountsByIDsForUpdate(ctx, ids)
	if err != nil {
		return nil, err
	}

	accounts := make([]*domain.Account, 0, len(rows))
	for _, row := range rows {
		accounts = append(accounts, rowToAccount(row))
	}

	return accounts, nil
}

// Update stores the descriptive fields of an account. Balance and status are not touched.
func (r *AccountRepository) Update(ctx context.Context, account *domain.Account) error {
	n, err := r.queries.UpdateAccountDetails(ctx, generated.UpdateAccountDetailsParams{
		ID:            account.ID,
		Name:          account.Name,
		AccountNumber: account.AccountNumber,
		BankName:      account.BankName,
		Description:   account.Description,
		UpdatedAt:     timeToPgTimestamptz(account.UpdatedAt),
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}

// Close marks an account closed. The balance is kept.
func (r *AccountRepository) Close(ctx context.Context, id string, closedAt time.Time) error {
	n, err := r.queries.CloseAccount(ctx, generated.CloseAccountParams{
		ID:        id,
		UpdatedAt: timeToPgTimestamptz(closedAt),
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}

// AdjustBalance adds delta to the stored balance in a single statement.
// With guard set the row is only updated when the new balance stays non-negative.
func (r *AccountRepository) AdjustBalance(ctx context.Context, tx usecase.Transaction, id string, delta decimal.Decimal, guard bool) (decimal.Decimal, error) {
	queries := generated.New(tx.(*Tx).PgxTx())

	balance, err := queries.AdjustAccountBalance(ctx, generated.AdjustAccountBalanceParams{
		ID:        id,
		Delta:     decimalToNumeric(delta),
		Guard:     guard,
		UpdatedAt: timeToPgTimestamptz(time.Now().UTC()),
	})
	if err == nil {
		return numericToDecimal(balance), nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return decimal.Zero, err
	}

	// No row updated: either the account is missing or the guard rejected the change.
	row, err := queries.GetAccountByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, domain.ErrAccountNotFound
		}

		return decimal.Zero, err
	}

	return decimal.Zero, fmt.Errorf("%w: account %s has %s, change of %s",
		domain.ErrInsufficientFunds, id, numericToDecimal(row.Balance), delta)
}

// List lists accounts with pagination, oldest first.
func (r *AccountRepository) List(ctx context.Context, limit, offset int, includeClosed bool) ([]*domain.Account, error) {
	rows, err := r.queries.ListAccounts(ctx, generated.ListAccountsParams{
		Limit:         int32(limit),
		Offset:        int32(offset),
		IncludeClosed: includeClosed,
	})
	if err != nil {
		return nil, err
	}

	return rowsToAccounts(rows), nil
}

// ListAll returns every account, closed ones included.
func (r *AccountRepository) ListAll(ctx context.Context) ([]*domain.Account, error) {
	rows, err := r.queries.ListAllAccounts(ctx)
	if err != nil {
		return nil, err
	}

	return rowsToAccounts(rows), nil
}

func rowsToAccounts(rows []generated.Account) []*domain.Account {
	accounts := make([]*domain.Account, 0, len(rows))
	for _, row := range rows {
		accounts = append(accounts, rowToAccount(row))
	}

	return accounts
}

func rowToAccount(row generated.Account) *domain.Account {
	return &domain.Account{
		ID:            row.ID,
		Name:          row.Name,
		Type:          domain.AccountType(row.Type),
		Balance:       numericToDecimal(row.Balance),
		AccountNumber: row.AccountNumber,
		BankName:      row.BankName,
		Description:   row.Description,
		Status:        domain.AccountStatus(row.Status),
		Version:       row.Version,
		CreatedAt:     row.CreatedAt.Time,
		UpdatedAt:     row.UpdatedAt.Time,
	}
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	return decimal.NewFromBigInt(n.Int, n.Exp)
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func textOrNull(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}

func timeOrNull(t *time.Time) pgtype.Timestamptz {
	if t == nil {
		return pgtype.Timestamptz{}
	}

	return timeToPgTimestamptz(*t)
}
