package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/storeledger/internal/domain"
)

// EntryUseCase posts, edits and removes expense and income entries.
type EntryUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	entryRepo   EntryRepository
	idGen       IDGenerator
	retrier     Retrier
	reports     *ReportCache
	metrics     Metrics
}

// NewEntryUseCase creates a new EntryUseCase.
func NewEntryUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	entryRepo EntryRepository,
	idGen IDGenerator,
	retrier Retrier,
	reports *ReportCache,
	metrics Metrics,
) *EntryUseCase {
	return &EntryUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
		idGen:       idGen,
		retrier:     retrier,
		reports:     reports,
		metrics:     metricsOrNoop(metrics),
	}
}

// PostEntryInput represents input for posting an expense or income.
type PostEntryInput struct {
	AccountID     string
	Amount        decimal.Decimal
	Description   string
	Category      string
	Status        string
	PaymentMethod string
	Reference     string
	Notes         string
	Date          *time.Time
	CreatedBy     string
}

// PostExpense records money leaving an account.
func (uc *EntryUseCase) PostExpense(ctx context.Context, input PostEntryInput) (*domain.Entry, error) {
	return uc.post(ctx, domain.EntryKindExpense, input)
}

// PostIncome records money entering an account.
func (uc *EntryUseCase) PostIncome(ctx context.Context, input PostEntryInput) (*domain.Entry, error) {
	return uc.post(ctx, domain.EntryKindIncome, input)
}

func (uc *EntryUseCase) post(ctx context.Context, kind domain.EntryKind, input PostEntryInput) (*domain.Entry, error) {
	entry, err := uc.buildEntry(kind, input)
	if err != nil {
		return nil, err
	}

	delta := entry.SignedAmount()

	err = runInTx(ctx, uc.txManager, uc.retrier, func(ctx context.Context, tx Transaction) error {
		account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, entry.AccountID)
		if err != nil {
			return err
		}

		if err := account.ValidatePosting(delta); err != nil {
			return err
		}

		if _, err := uc.accountRepo.AdjustBalance(ctx, tx, account.ID, delta, !account.Type.AllowsNegativeBalance()); err != nil {
			return err
		}

		return uc.entryRepo.Create(ctx, tx, entry)
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.EntryPosted(string(kind))
	uc.reports.Invalidate(ctx)

	zerolog.Ctx(ctx).Info().
		Str("entry_id", entry.ID).
		Str("kind", string(kind)).
		Str("account_id", entry.AccountID).
		Str("amount", entry.Amount.String()).
		Msg("entry posted")

	return entry, nil
}

func (uc *EntryUseCase) buildEntry(kind domain.EntryKind, input PostEntryInput) (*domain.Entry, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}
	if err := domain.ValidateDescription(input.Description); err != nil {
		return nil, err
	}

	status := kind.DefaultStatus()
	if input.Status != "" {
		status = domain.EntryStatus(strings.ToLower(input.Status))
	}

	method, err := domain.ParsePaymentMethod(input.PaymentMethod)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	date := now
	if input.Date != nil {
		date = input.Date.UTC()
	}

	category := strings.TrimSpace(input.Category)
	if category == "" {
		category = domain.CategoryUncategorized
	}

	entry := &domain.Entry{
		ID:            uc.idGen.Generate(),
		Kind:          kind,
		Description:   strings.TrimSpace(input.Description),
		Amount:        input.Amount,
		Category:      category,
		AccountID:     input.AccountID,
		Status:        status,
		PaymentMethod: method,
		Reference:     input.Reference,
		Notes:         input.Notes,
		Date:          date,
		CreatedBy:     input.CreatedBy,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	return entry, nil
}

// UpdateEntryInput carries optional metadata changes. Amount and AccountID exist only so that
// callers attempting a financial edit get a clear rejection.
type UpdateEntryInput struct {
	Description   *string
	Category      *string
	Status        *string
	PaymentMethod *string
	Reference     *string
	Notes         *string

	Amount    *decimal.Decimal
	AccountID *string
}

// UpdateEntry edits entry metadata. Financial fields are immutable; delete and repost instead.
func (uc *EntryUseCase) UpdateEntry(ctx context.Context, id string, input UpdateEntryInput) (*domain.Entry, error) {
	if input.Amount != nil || input.AccountID != nil {
		return nil, domain.ErrFinancialFieldImmutable
	}

	entry, err := uc.entryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if entry.IsTransferLeg() && (input.Category != nil || input.Reference != nil) {
		return nil, domain.ErrTransferLeg
	}

	if input.Description != nil {
		if err := domain.ValidateDescription(*input.Description); err != nil {
			return nil, err
		}
		entry.Description = strings.TrimSpace(*input.Description)
	}
	if input.Category != nil {
		entry.Category = strings.TrimSpace(*input.Category)
		if entry.Category == "" {
			entry.Category = domain.CategoryUncategorized
		}
	}
	if input.Status != nil {
		status := domain.EntryStatus(strings.ToLower(*input.Status))
		if err := entry.Kind.ValidateStatus(status); err != nil {
			return nil, err
		}
		entry.Status = status
	}
	if input.PaymentMethod != nil {
		method, err := domain.ParsePaymentMethod(*input.PaymentMethod)
		if err != nil {
			return nil, err
		}
		entry.PaymentMethod = method
	}
	if input.Reference != nil {
		entry.Reference = *input.Reference
	}
	if input.Notes != nil {
		entry.Notes = *input.Notes
	}
	entry.UpdatedAt = time.Now().UTC()

	if err := uc.entryRepo.Update(ctx, entry); err != nil {
		return nil, err
	}

	return entry, nil
}

// DeleteEntry removes an entry and reverses its effect on the account balance.
// Reversals are never blocked by the overdraft rule.
func (uc *EntryUseCase) DeleteEntry(ctx context.Context, id string) error {
	var deleted *domain.Entry

	err := runInTx(ctx, uc.txManager, uc.retrier, func(ctx context.Context, tx Transaction) error {
		entry, err := uc.entryRepo.GetByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}

		if entry.IsTransferLeg() {
			return domain.ErrTransferLeg
		}

		if _, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, entry.AccountID); err != nil {
			return err
		}

		if _, err := uc.accountRepo.AdjustBalance(ctx, tx, entry.AccountID, entry.SignedAmount().Neg(), false); err != nil {
			return err
		}

		if err := uc.entryRepo.Delete(ctx, tx, id); err != nil {
			return err
		}

		deleted = entry
		return nil
	})
	if err != nil {
		return err
	}

	uc.metrics.EntryDeleted(string(deleted.Kind))
	uc.reports.Invalidate(ctx)

	zerolog.Ctx(ctx).Info().
		Str("entry_id", id).
		Str("account_id", deleted.AccountID).
		Str("reversed", deleted.SignedAmount().Neg().String()).
		Msg("entry deleted")

	return nil
}

// GetEntry retrieves an entry by ID.
func (uc *EntryUseCase) GetEntry(ctx context.Context, id string) (*domain.Entry, error) {
	return uc.entryRepo.GetByID(ctx, id)
}

// ListEntriesInput narrows an entry listing. Zero values mean unbounded.
type ListEntriesInput struct {
	AccountID string
	Category  string
	Kind      string
	From      *time.Time
	To        *time.Time
	Limit     int
}

// ListEntries returns matching entries newest first.
func (uc *EntryUseCase) ListEntries(ctx context.Context, input ListEntriesInput) ([]*domain.Entry, error) {
	if err := domain.ValidateDateRange(input.From, input.To); err != nil {
		return nil, err
	}

	filter := domain.EntryFilter{
		AccountID: input.AccountID,
		Category:  input.Category,
		From:      input.From,
		To:        input.To,
		Limit:     domain.ClampLimit(input.Limit),
	}

	switch kind := domain.EntryKind(strings.ToLower(input.Kind)); kind {
	case "":
	case domain.EntryKindExpense, domain.EntryKindIncome:
		filter.Kind = kind
	default:
		return nil, fmt.Errorf("%w: unknown entry kind %q", domain.ErrValidation, input.Kind)
	}

	return uc.entryRepo.List(ctx, filter)
}

// ListByAccount returns the newest entries posted against one account.
func (uc *EntryUseCase) ListByAccount(ctx context.Context, accountID string, limit int) ([]*domain.Entry, error) {
	if _, err := uc.accountRepo.GetByID(ctx, accountID); err != nil {
		return nil, err
	}

	return uc.entryRepo.List(ctx, domain.EntryFilter{
		AccountID: accountID,
		Limit:     domain.ClampLimit(limit),
	})
}
