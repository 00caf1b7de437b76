package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/storeledger/internal/domain"
	"github.com/iho/storeledger/internal/infrastructure/postgres/generated"
	"github.com/iho/storeledger/internal/usecase"
)

// EntryRepository implements usecase.EntryRepository.
type EntryRepository struct {
	queries *generated.Queries
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(pool *pgxpool.Pool) *EntryRepository {
	return newEntryRepository(pool)
}

func newEntryRepository(db generated.DBTX) *EntryRepository {
	return &EntryRepository{queries: generated.New(db)}
}

// Create creates a new entry.
func (r *EntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
	queries := generated.New(tx.(*Tx).PgxTx())

	return queries.CreateEntry(ctx, generated.CreateEntryParams{
		ID:            entry.ID,
		Kind:          string(entry.Kind),
		Description:   entry.Description,
		Amount:        decimalToNumeric(entry.Amount),
		Category:      entry.Category,
		AccountID:     entry.AccountID,
		Status:        string(entry.Status),
		PaymentMethod: string(entry.PaymentMethod),
		Reference:     entry.Reference,
		TransferID:    textOrNull(entry.TransferID),
		Notes:         entry.Notes,
		Date:          timeToPgTimestamptz(entry.Date),
		CreatedBy:     entry.CreatedBy,
		CreatedAt:     timeToPgTimestamptz(entry.CreatedAt),
		UpdatedAt:     timeToPgTimestamptz(entry.UpdatedAt),
	})
}

// GetByID retrieves an entry by ID.
func (r *EntryRepository) GetByID(ctx context.Context, id string) (*domain.Entry, error) {
	row, err := r.queries.GetEntryByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}

		return nil, err
	}

	return rowToEntry(row), nil
}

// GetByIDForUpdate retrieves an entry by ID with a FOR UPDATE lock.
func (r *EntryRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Entry, error) {
	queries := generated.New(tx.(*Tx).PgxTx())

	row, err := queries.GetEntryByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}

		return nil, err
	}

	return rowToEntry(row), nil
}

// Update stores the non-financial fields of an entry.
func (r *EntryRepository) Update(ctx context.Context, entry *domain.Entry) error {
	n, err := r.queries.UpdateEntryDetails(ctx, generated.UpdateEntryDetailsParams{
		ID:            entry.ID,
		Description:   entry.Description,
		Category:      entry.Category,
		Status:        string(entry.Status),
		PaymentMethod: string(entry.PaymentMethod),
		Reference:     entry.Reference,
		Notes:         entry.Notes,
		UpdatedAt:     timeToPgTimestamptz(entry.UpdatedAt),
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrEntryNotFound
	}

	return nil
}

// Delete removes an entry. The caller reverses its balance effect in the same transaction.
func (r *EntryRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	queries := generated.New(tx.(*Tx).PgxTx())

	n, err := queries.DeleteEntry(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrEntryNotFound
	}

	return nil
}

// List returns entries matching filter, newest first.
func (r *EntryRepository) List(ctx context.Context, filter domain.EntryFilter) ([]*domain.Entry, error) {
	params := generated.ListEntriesParams{
		AccountID: textOrNull(filter.AccountID),
		Category:  textOrNull(filter.Category),
		Kind:      textOrNull(string(filter.Kind)),
		FromDate:  timeOrNull(filter.From),
		ToDate:    timeOrNull(filter.To),
	}
	if filter.Limit > 0 {
		params.Lim = pgtype.Int4{Int32: int32(filter.Limit), Valid: true}
	}

	rows, err := r.queries.ListEntries(ctx, params)
	if err != nil {
		return nil, err
	}

	return rowsToEntries(rows), nil
}

// ListByTransfers returns the legs of the given transfers.
func (r *EntryRepository) ListByTransfers(ctx context.Context, transferIDs []string) ([]*domain.Entry, error) {
	if len(transferIDs) == 0 {
		return []*domain.Entry{}, nil
	}

	rows, err := r.queries.ListEntriesByTransfers(ctx, transferIDs)
	if err != nil {
		return nil, err
	}

	return rowsToEntries(rows), nil
}

// SumByAccount returns the signed total of entries per account.
func (r *EntryRepository) SumByAccount(ctx context.Context) (map[string]decimal.Decimal, error) {
	rows, err := r.queries.SumEntriesByAccount(ctx)
	if err != nil {
		return nil, err
	}

	sums := make(map[string]decimal.Decimal, len(rows))
	for _, row := range rows {
		sums[row.AccountID] = numericToDecimal(row.Total)
	}

	return sums, nil
}

func rowsToEntries(rows []generated.Entry) []*domain.Entry {
	entries := make([]*domain.Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, rowToEntry(row))
	}

	return entries
}

func rowToEntry(row generated.Entry) *domain.Entry {
	return &domain.Entry{
		ID:            row.ID,
		Kind:          domain.EntryKind(row.Kind),
		Description:   row.Description,
		Amount:        numericToDecimal(row.Amount),
		Category:      row.Category,
		AccountID:     row.AccountID,
		Status:        domain.EntryStatus(row.Status),
		PaymentMethod: domain.PaymentMethod(row.PaymentMethod),
		Reference:     row.Reference,
		TransferID:    row.TransferID.String,
		Notes:         row.Notes,
		Date:          row.Date.Time,
		CreatedBy:     row.CreatedBy,
		CreatedAt:     row.CreatedAt.Time,
		UpdatedAt:     row.UpdatedAt.Time,
	}
}
