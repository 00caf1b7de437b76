package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/storeledger/internal/domain"
)

// TransferUseCase moves funds between accounts as a pair of linked entries.
type TransferUseCase struct {
	txManager    TransactionManager
	accountRepo  AccountRepository
	transferRepo TransferRepository
	entryRepo    EntryRepository
	idGen        IDGenerator
	retrier      Retrier
	reports      *ReportCache
	metrics      Metrics
}

// NewTransferUseCase creates a new TransferUseCase.
func NewTransferUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	transferRepo TransferRepository,
	entryRepo EntryRepository,
	idGen IDGenerator,
	retrier Retrier,
	reports *ReportCache,
	metrics Metrics,
) *TransferUseCase {
	return &TransferUseCase{
		txManager:    txManager,
		accountRepo:  accountRepo,
		transferRepo: transferRepo,
		entryRepo:    entryRepo,
		idGen:        idGen,
		retrier:      retrier,
		reports:      reports,
		metrics:      metricsOrNoop(metrics),
	}
}

// TransferInput represents input for a transfer between two accounts.
type TransferInput struct {
	FromAccountID string
	ToAccountID   string
	Amount        decimal.Decimal
	Description   string
	Reference     string
	Date          *time.Time
	CreatedBy     string
}

// TransferFunds debits the source and credits the destination in a single transaction.
// Either the transfer record and both legs are stored and both balances move, or nothing changes.
func (uc *TransferUseCase) TransferFunds(ctx context.Context, input TransferInput) (*domain.TransferRecord, error) {
	now := time.Now().UTC()
	date := now
	if input.Date != nil {
		date = input.Date.UTC()
	}

	transfer := &domain.Transfer{
		ID:            uc.idGen.Generate(),
		FromAccountID: input.FromAccountID,
		ToAccountID:   input.ToAccountID,
		Amount:        input.Amount,
		Description:   strings.TrimSpace(input.Description),
		Reference:     strings.TrimSpace(input.Reference),
		Date:          date,
		CreatedBy:     input.CreatedBy,
		CreatedAt:     now,
	}

	// 0. Validate inputs before starting transaction
	if err := transfer.Validate(); err != nil {
		uc.metrics.TransferFailed(failureReason(err))
		return nil, err
	}

	if transfer.Reference == "" {
		transfer.Reference = TransferReferencePrefix + transfer.ID
	}
	if transfer.Description == "" {
		transfer.Description = "Transfer " + transfer.Reference
	}

	expense := uc.newLeg(transfer, domain.EntryKindExpense, transfer.FromAccountID, now)
	income := uc.newLeg(transfer, domain.EntryKindIncome, transfer.ToAccountID, now)
	transfer.ExpenseEntryID = expense.ID
	transfer.IncomeEntryID = income.ID

	// 1. Sort account IDs (DEADLOCK PREVENTION)
	accountIDs := []string{transfer.FromAccountID, transfer.ToAccountID}
	sort.Strings(accountIDs)

	err := runInTx(ctx, uc.txManager, uc.retrier, func(ctx context.Context, tx Transaction) error {
		// 2. Lock accounts in sorted order
		accounts, err := uc.accountRepo.GetByIDsForUpdate(ctx, tx, accountIDs)
		if err != nil {
			return err
		}

		accountMap := make(map[string]*domain.Account, len(accounts))
		for _, a := range accounts {
			accountMap[a.ID] = a
		}

		from, to := accountMap[transfer.FromAccountID], accountMap[transfer.ToAccountID]
		if from == nil || to == nil {
			return domain.ErrAccountNotFound
		}

		// 3. Overdraft and status checks on the locked rows
		if err := from.ValidatePosting(transfer.Amount.Neg()); err != nil {
			return err
		}
		if err := to.ValidatePosting(transfer.Amount); err != nil {
			return err
		}

		// 4. Move the money
		if _, err := uc.accountRepo.AdjustBalance(ctx, tx, from.ID, transfer.Amount.Neg(), !from.Type.AllowsNegativeBalance()); err != nil {
			return err
		}
		if _, err := uc.accountRepo.AdjustBalance(ctx, tx, to.ID, transfer.Amount, false); err != nil {
			return err
		}

		// 5. Record the transfer and both legs
		if err := uc.transferRepo.Create(ctx, tx, transfer); err != nil {
			return err
		}
		if err := uc.entryRepo.Create(ctx, tx, expense); err != nil {
			return err
		}

		return uc.entryRepo.Create(ctx, tx, income)
	})
	if err != nil {
		uc.metrics.TransferFailed(failureReason(err))
		zerolog.Ctx(ctx).Warn().Err(err).
			Str("from_account_id", transfer.FromAccountID).
			Str("to_account_id", transfer.ToAccountID).
			Str("amount", transfer.Amount.String()).
			Msg("transfer rejected")
		return nil, err
	}

	uc.metrics.TransferCompleted()
	uc.reports.Invalidate(ctx)

	zerolog.Ctx(ctx).Info().
		Str("transfer_id", transfer.ID).
		Str("reference", transfer.Reference).
		Str("amount", transfer.Amount.String()).
		Msg("transfer completed")

	return domain.NewTransferRecord(transfer, expense, income), nil
}

func (uc *TransferUseCase) newLeg(t *domain.Transfer, kind domain.EntryKind, accountID string, now time.Time) *domain.Entry {
	return &domain.Entry{
		ID:            uc.idGen.Generate(),
		Kind:          kind,
		Description:   t.Description,
		Amount:        t.Amount,
		Category:      domain.CategoryTransfer,
		AccountID:     accountID,
		Status:        kind.DefaultStatus(),
		PaymentMethod: domain.PaymentMethodBankTransfer,
		Reference:     t.Reference,
		TransferID:    t.ID,
		Date:          t.Date,
		CreatedBy:     t.CreatedBy,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// GetTransfer retrieves a transfer with its legs.
func (uc *TransferUseCase) GetTransfer(ctx context.Context, id string) (*domain.TransferRecord, error) {
	transfer, err := uc.transferRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	records, err := uc.attachLegs(ctx, []*domain.Transfer{transfer})
	if err != nil {
		return nil, err
	}

	return records[0], nil
}

// GetTransferHistory returns the most recent transfers, newest first.
func (uc *TransferUseCase) GetTransferHistory(ctx context.Context, limit int) ([]*domain.TransferRecord, error) {
	transfers, err := uc.transferRepo.List(ctx, domain.ClampLimit(limit))
	if err != nil {
		return nil, err
	}

	return uc.attachLegs(ctx, transfers)
}

func (uc *TransferUseCase) attachLegs(ctx context.Context, transfers []*domain.Transfer) ([]*domain.TransferRecord, error) {
	ids := make([]string, 0, len(transfers))
	for _, t := range transfers {
		ids = append(ids, t.ID)
	}

	legs, err := uc.entryRepo.ListByTransfers(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*domain.Entry, len(legs))
	for _, e := range legs {
		byID[e.ID] = e
	}

	records := make([]*domain.TransferRecord, 0, len(transfers))
	for _, t := range transfers {
		rec := domain.NewTransferRecord(t, byID[t.ExpenseEntryID], byID[t.IncomeEntryID])
		if rec.Issue != nil {
			uc.metrics.IntegrityViolation(rec.Issue.Kind)
			zerolog.Ctx(ctx).Error().
				Str("transfer_id", t.ID).
				Str("reference", t.Reference).
				Msg(rec.Issue.Detail)
		}
		records = append(records, rec)
	}

	return records, nil
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrSameAccount):
		return "same_account"
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, domain.ErrAccountClosed):
		return "account_closed"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrValidation):
		return "validation"
	default:
		return "internal"
	}
}
