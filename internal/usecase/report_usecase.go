package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/storeledger/internal/domain"
)

// ReportUseCase derives financial statements from current balances and stored entries.
// Reports are plain reads; they never mutate the ledger.
type ReportUseCase struct {
	accountRepo AccountRepository
	entryRepo   EntryRepository
	reports     *ReportCache
	metrics     Metrics
	now         func() time.Time
}

// NewReportUseCase creates a new ReportUseCase.
func NewReportUseCase(accountRepo AccountRepository, entryRepo EntryRepository, reports *ReportCache, metrics Metrics) *ReportUseCase {
	return &ReportUseCase{
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
		reports:     reports,
		metrics:     metricsOrNoop(metrics),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// GetTrialBalance lists every active account in debit and credit columns.
func (uc *ReportUseCase) GetTrialBalance(ctx context.Context) (*domain.TrialBalance, error) {
	defer uc.observe("trial_balance", time.Now())

	var cached domain.TrialBalance
	gen, hit := uc.reports.load(ctx, reportKeyTrialBalance, &cached)
	if hit {
		return &cached, nil
	}

	accounts, err := uc.accountRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	tb := domain.BuildTrialBalance(accounts, uc.now())
	if !tb.IsBalanced {
		zerolog.Ctx(ctx).Debug().
			Str("difference", tb.Difference.String()).
			Msg("trial balance does not net to zero")
	}

	uc.reports.store(ctx, reportKeyTrialBalance, gen, tb)

	return tb, nil
}

// GetBalanceSheet computes assets, liabilities and equity with a retained earnings plug.
func (uc *ReportUseCase) GetBalanceSheet(ctx context.Context) (*domain.BalanceSheet, error) {
	defer uc.observe("balance_sheet", time.Now())

	var cached domain.BalanceSheet
	gen, hit := uc.reports.load(ctx, reportKeyBalanceSheet, &cached)
	if hit {
		return &cached, nil
	}

	accounts, err := uc.accountRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	bs := domain.BuildBalanceSheet(accounts, uc.now())
	if issue := bs.IdentityIssue(); issue != nil {
		uc.metrics.IntegrityViolation(issue.Kind)
		zerolog.Ctx(ctx).Error().Err(issue.Err()).Msg("balance sheet identity does not hold")
	}

	uc.reports.store(ctx, reportKeyBalanceSheet, gen, bs)

	return bs, nil
}

// PeriodInput bounds a report window. Missing bounds fall back to the default window.
type PeriodInput struct {
	Start *time.Time
	End   *time.Time
}

// GetCashFlow summarises cash and bank movements over the window.
func (uc *ReportUseCase) GetCashFlow(ctx context.Context, input PeriodInput) (*domain.CashFlow, error) {
	defer uc.observe("cash_flow", time.Now())

	now := uc.now()
	period, err := domain.ResolvePeriod(input.Start, input.End, now)
	if err != nil {
		return nil, err
	}

	accounts, err := uc.accountRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	// Postings after the window are needed to back out the opening balance.
	entries, err := uc.entryRepo.List(ctx, domain.EntryFilter{From: &period.Start})
	if err != nil {
		return nil, err
	}

	return domain.BuildCashFlow(accounts, entries, period, now), nil
}

// GetPaymentAccountReport breaks down a window by account and payment method.
func (uc *ReportUseCase) GetPaymentAccountReport(ctx context.Context, input PeriodInput) (*domain.PaymentAccountReport, error) {
	defer uc.observe("payment_accounts", time.Now())

	now := uc.now()
	period, err := domain.ResolvePeriod(input.Start, input.End, now)
	if err != nil {
		return nil, err
	}

	accounts, err := uc.accountRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	entries, err := uc.entryRepo.List(ctx, domain.EntryFilter{From: &period.Start, To: &period.End})
	if err != nil {
		return nil, err
	}

	return domain.BuildPaymentAccountReport(accounts, entries, period, now), nil
}

// GetMonthlyReport groups one calendar month of postings by category.
func (uc *ReportUseCase) GetMonthlyReport(ctx context.Context, year int, month time.Month) (*domain.MonthlyReport, error) {
	defer uc.observe("monthly", time.Now())

	period, err := domain.MonthPeriod(year, month)
	if err != nil {
		return nil, err
	}

	entries, err := uc.entryRepo.List(ctx, domain.EntryFilter{From: &period.Start, To: &period.End})
	if err != nil {
		return nil, err
	}

	return domain.BuildMonthlyReport(entries, period), nil
}

func (uc *ReportUseCase) observe(report string, started time.Time) {
	uc.metrics.ObserveReport(report, time.Since(started))
}
