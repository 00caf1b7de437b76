package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/storeledger/internal/domain"
)

// ReconciliationUseCase checks stored balances and transfer pairs against the entry log.
type ReconciliationUseCase struct {
	accountRepo  AccountRepository
	entryRepo    EntryRepository
	transferRepo TransferRepository
	metrics      Metrics
}

// NewReconciliationUseCase creates a new reconciliation use case
func NewReconciliationUseCase(
	accountRepo AccountRepository,
	entryRepo EntryRepository,
	transferRepo TransferRepository,
	metrics Metrics,
) *ReconciliationUseCase {
	return &ReconciliationUseCase{
		accountRepo:  accountRepo,
		entryRepo:    entryRepo,
		transferRepo: transferRepo,
		metrics:      metricsOrNoop(metrics),
	}
}

// ReconciliationResult represents the result of a reconciliation check
type ReconciliationResult struct {
	AccountID         string
	AccountName       string
	RecordedBalance   decimal.Decimal
	CalculatedBalance decimal.Decimal
	Difference        decimal.Decimal
	IsReconciled      bool
	LastChecked       time.Time
}

func newReconciliationResult(account *domain.Account, calculated decimal.Decimal, now time.Time) *ReconciliationResult {
	diff := account.Balance.Sub(calculated)
	return &ReconciliationResult{
		AccountID:         account.ID,
		AccountName:       account.Name,
		RecordedBalance:   account.Balance,
		CalculatedBalance: calculated,
		Difference:        diff,
		IsReconciled:      diff.IsZero(),
		LastChecked:       now,
	}
}

// ReconcileAccount compares the stored balance with the sum of the account's signed entries.
func (uc *ReconciliationUseCase) ReconcileAccount(ctx context.Context, accountID string) (*ReconciliationResult, error) {
	account, err := uc.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	sums, err := uc.entryRepo.SumByAccount(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to sum entries: %w", err)
	}

	result := newReconciliationResult(account, sums[accountID], time.Now().UTC())
	if !result.IsReconciled {
		uc.reportIssue(ctx, balanceIssue(result))
	}

	return result, nil
}

// ReconciliationReport represents a full reconciliation report
type ReconciliationReport struct {
	TotalAccounts      int
	ReconciledAccounts int
	Discrepancies      []*ReconciliationResult
	TransferPairs      int
	Issues             []domain.IntegrityIssue
	LedgerConsistent   bool
	CheckedAt          time.Time
}

// GenerateReconciliationReport reconciles every account and verifies that transfer legs pair up.
func (uc *ReconciliationUseCase) GenerateReconciliationReport(ctx context.Context) (*ReconciliationReport, error) {
	accounts, err := uc.accountRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	sums, err := uc.entryRepo.SumByAccount(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to sum entries: %w", err)
	}

	now := time.Now().UTC()
	report := &ReconciliationReport{
		TotalAccounts: len(accounts),
		Discrepancies: make([]*ReconciliationResult, 0),
		Issues:        make([]domain.IntegrityIssue, 0),
		CheckedAt:     now,
	}

	for _, account := range accounts {
		result := newReconciliationResult(account, sums[account.ID], now)
		if result.IsReconciled {
			report.ReconciledAccounts++
			continue
		}
		report.Discrepancies = append(report.Discrepancies, result)
		report.Issues = append(report.Issues, balanceIssue(result))
	}

	pairs, issues, err := uc.checkTransfers(ctx)
	if err != nil {
		return nil, err
	}
	report.TransferPairs = pairs
	report.Issues = append(report.Issues, issues...)

	for _, issue := range report.Issues {
		uc.reportIssue(ctx, issue)
	}

	report.LedgerConsistent = len(report.Issues) == 0

	return report, nil
}

// checkTransfers verifies every transfer record against the legs carrying its id. Transfer
// category entries without a transfer id were posted by hand and are paired by reference.
func (uc *ReconciliationUseCase) checkTransfers(ctx context.Context) (int, []domain.IntegrityIssue, error) {
	transfers, err := uc.transferRepo.List(ctx, 0)
	if err != nil {
		return 0, nil, err
	}

	ids := make([]string, len(transfers))
	known := make(map[string]bool, len(transfers))
	for i, t := range transfers {
		ids[i] = t.ID
		known[t.ID] = true
	}

	legs := make(map[string]*domain.Entry)
	if len(ids) > 0 {
		linked, err := uc.entryRepo.ListByTransfers(ctx, ids)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to load transfer legs: %w", err)
		}
		for _, e := range linked {
			legs[e.ID] = e
		}
	}

	var (
		pairs  int
		issues []domain.IntegrityIssue
	)
	for _, t := range transfers {
		expense := legOf(legs, t.ExpenseEntryID, t.ID)
		income := legOf(legs, t.IncomeEntryID, t.ID)

		rec := domain.NewTransferRecord(t, expense, income)
		if rec.Issue != nil {
			issues = append(issues, *rec.Issue)
			continue
		}
		if !expense.Amount.Equal(t.Amount) || !income.Amount.Equal(t.Amount) {
			issues = append(issues, domain.IntegrityIssue{
				Kind:      domain.IssueUnmatchedTransferLeg,
				Reference: t.Reference,
				Detail: fmt.Sprintf("transfer %s of %s has legs of %s and %s",
					t.ID, t.Amount, expense.Amount, income.Amount),
			})
			continue
		}
		pairs++
	}

	categorized, err := uc.entryRepo.List(ctx, domain.EntryFilter{Category: domain.CategoryTransfer})
	if err != nil {
		return 0, nil, err
	}

	var unlinked []*domain.Entry
	for _, e := range categorized {
		switch {
		case e.TransferID == "":
			unlinked = append(unlinked, e)
		case !known[e.TransferID]:
			issues = append(issues, domain.IntegrityIssue{
				Kind:      domain.IssueUnmatchedTransferLeg,
				Reference: e.Reference,
				EntryID:   e.ID,
				AccountID: e.AccountID,
				Detail:    "entry references unknown transfer " + e.TransferID,
			})
		}
	}

	manual, manualIssues := domain.PairTransferLegs(unlinked)
	issues = append(issues, manualIssues...)

	return pairs + len(manual), issues, nil
}

func legOf(legs map[string]*domain.Entry, entryID, transferID string) *domain.Entry {
	e, ok := legs[entryID]
	if !ok || e.TransferID != transferID {
		return nil
	}
	return e
}

func (uc *ReconciliationUseCase) reportIssue(ctx context.Context, issue domain.IntegrityIssue) {
	uc.metrics.IntegrityViolation(issue.Kind)
	zerolog.Ctx(ctx).Error().
		Err(issue.Err()).
		Str("reference", issue.Reference).
		Str("entry_id", issue.EntryID).
		Str("account_id", issue.AccountID).
		Msg("ledger integrity violation")
}

func balanceIssue(r *ReconciliationResult) domain.IntegrityIssue {
	return domain.IntegrityIssue{
		Kind:      domain.IssueBalanceMismatch,
		AccountID: r.AccountID,
		Detail: fmt.Sprintf("recorded balance %s differs from entry total %s by %s",
			r.RecordedBalance, r.CalculatedBalance, r.Difference),
	}
}
