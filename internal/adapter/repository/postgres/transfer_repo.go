package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/storeledger/internal/domain"
	"github.com/iho/storeledger/internal/infrastructure/postgres/generated"
	"github.com/iho/storeledger/internal/usecase"
)

// TransferRepository implements usecase.TransferRepository.
type TransferRepository struct {
	queries *generated.Queries
}

// NewTransferRepository creates a new TransferRepository.
func NewTransferRepository(pool *pgxpool.Pool) *TransferRepository {
	return newTransferRepository(pool)
}

func newTransferRepository(db generated.DBTX) *TransferRepository {
	return &TransferRepository{queries: generated.New(db)}
}

// Create creates a new transfer.
func (r *TransferRepository) Create(ctx context.Context, tx usecase.Transaction, transfer *domain.Transfer) error {
	queries := generated.New(tx.(*Tx).PgxTx())

	return queries.CreateTransfer(ctx, generated.CreateTransferParams{
		ID:             transfer.ID,
		FromAccountID:  transfer.FromAccountID,
		ToAccountID:    transfer.ToAccountID,
		Amount:         decimalToNumeric(transfer.Amount),
		Description:    transfer.Description,
		Reference:      transfer.Reference,
		ExpenseEntryID: transfer.ExpenseEntryID,
		IncomeEntryID:  transfer.IncomeEntryID,
		Date:           timeToPgTimestamptz(transfer.Date),
		CreatedBy:      transfer.CreatedBy,
		CreatedAt:      timeToPgTimestamptz(transfer.CreatedAt),
	})
}

// GetByID retrieves a transfer by ID.
func (r *TransferRepository) GetByID(ctx context.Context, id string) (*domain.Transfer, error) {
	row, err := r.queries.GetTransferByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransferNotFound
		}

		return nil, err
	}

	return rowToTransfer(row), nil
}

// List returns the most recent transfers. A non-positive limit returns all of them.
func (r *TransferRepository) List(ctx context.Context, limit int) ([]*domain.Transfer, error) {
	var lim pgtype.Int4
	if limit > 0 {
		lim = pgtype.Int4{Int32: int32(limit), Valid: true}
	}

	rows, err := r.queries.ListTransfers(ctx, lim)
	if err != nil {
		return nil, err
	}

	transfers := make([]*domain.Transfer, 0, len(rows))
	for _, row := range rows {
		transfers = append(transfers, rowToTransfer(row))
	}

	return transfers, nil
}

func rowToTransfer(row generated.Transfer) *domain.Transfer {
	return &domain.Transfer{
		ID:             row.ID,
		FromAccountID:  row.FromAccountID,
		ToAccountID:    row.ToAccountID,
		Amount:         numericToDecimal(row.Amount),
		Description:    row.Description,
		Reference:      row.Reference,
		ExpenseEntryID: row.ExpenseEntryID,
		IncomeEntryID:  row.IncomeEntryID,
		Date:           row.Date.Time,
		CreatedBy:      row.CreatedBy,
		CreatedAt:      row.CreatedAt.Time,
	}
}
