package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/iho/storeledger/internal/domain"
	"github.com/iho/storeledger/internal/usecase"
	"github.com/iho/storeledger/internal/usecase/mocks"
)

func TestReportUseCase_GetTrialBalance(t *testing.T) {
	ctrl := gomock.NewController(t)

	accountRepo := mocks.NewMockAccountRepository(ctrl)
	accountRepo.EXPECT().ListAll(gomock.Any()).Return([]*domain.Account{
		{ID: "1", Name: "Cash", Type: domain.AccountTypeCash, Balance: amount(500), Status: domain.AccountStatusActive},
		{ID: "2", Name: "Bank", Type: domain.AccountTypeBank, Balance: amount(1000), Status: domain.AccountStatusActive},
		{ID: "3", Name: "Loan", Type: domain.AccountTypeLiability, Balance: amount(-300), Status: domain.AccountStatusActive},
	}, nil).Times(2)

	uc := usecase.NewReportUseCase(accountRepo, mocks.NewMockEntryRepository(ctrl), nil, nil)

	tb, err := uc.GetTrialBalance(context.Background())
	require.NoError(t, err)

	assert.True(t, tb.TotalDebits.Equal(amount(1500)))
	assert.True(t, tb.TotalCredits.Equal(amount(300)))
	assert.True(t, tb.Difference.Equal(amount(1200)))
	assert.False(t, tb.IsBalanced)

	again, err := uc.GetTrialBalance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, tb.Rows, again.Rows)
	assert.True(t, tb.Difference.Equal(again.Difference))
}

func TestReportUseCase_CachesBalanceSnapshots(t *testing.T) {
	ctrl := gomock.NewController(t)

	accountRepo := mocks.NewMockAccountRepository(ctrl)
	accountRepo.EXPECT().ListAll(gomock.Any()).Return([]*domain.Account{
		{ID: "1", Name: "Cash", Type: domain.AccountTypeCash, Balance: amount(500), Status: domain.AccountStatusActive},
		{ID: "2", Name: "Owner", Type: domain.AccountTypeEquity, Balance: amount(-500), Status: domain.AccountStatusActive},
	}, nil).Times(2)

	cache := mocks.NewFakeCache()
	uc := usecase.NewReportUseCase(accountRepo, mocks.NewMockEntryRepository(ctrl), usecase.NewReportCache(cache, time.Minute), nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		tb, err := uc.GetTrialBalance(ctx)
		require.NoError(t, err)
		assert.True(t, tb.IsBalanced)

		bs, err := uc.GetBalanceSheet(ctx)
		require.NoError(t, err)
		assert.True(t, bs.BalanceCheck)
		assert.True(t, bs.TotalEquity.Equal(amount(500)))
	}

	assert.True(t, cache.Has("report:trial_balance"))
	assert.True(t, cache.Has("report:balance_sheet"))
}

// racingCache runs beforeSet once, just before the first trial balance snapshot is written.
type racingCache struct {
	*mocks.FakeCache
	beforeSet func()
	fired     bool
}

func (c *racingCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if key == "report:trial_balance" && !c.fired {
		c.fired = true
		c.beforeSet()
	}
	return c.FakeCache.Set(ctx, key, value, ttl)
}

func TestReportUseCase_SnapshotWrittenAfterMutationIsNotServed(t *testing.T) {
	l := mocks.NewLedger()
	cache := &racingCache{FakeCache: mocks.NewFakeCache()}
	rc := usecase.NewReportCache(cache, time.Minute)

	entries := usecase.NewEntryUseCase(l.TxManager, l.Accounts, l.Entries, l.IDs, nil, rc, nil)
	reports := usecase.NewReportUseCase(l.Accounts, l.Entries, rc, nil)
	ctx := context.Background()

	l.Store.PutAccount(&domain.Account{ID: "bank", Name: "Bank", Type: domain.AccountTypeBank, Balance: amount(1000), Status: domain.AccountStatusActive})

	cache.beforeSet = func() {
		_, err := entries.PostIncome(ctx, usecase.PostEntryInput{AccountID: "bank", Amount: amount(500), Description: "Card settlement"})
		require.NoError(t, err)
	}

	first, err := reports.GetTrialBalance(ctx)
	require.NoError(t, err)
	assert.True(t, first.TotalDebits.Equal(amount(1000)))

	second, err := reports.GetTrialBalance(ctx)
	require.NoError(t, err)
	assert.True(t, second.TotalDebits.Equal(amount(1500)), "debits %s", second.TotalDebits)

	third, err := reports.GetTrialBalance(ctx)
	require.NoError(t, err)
	assert.True(t, third.TotalDebits.Equal(amount(1500)))
}

func TestReportUseCase_BalanceSheetRetainedEarningsPlug(t *testing.T) {
	ctrl := gomock.NewController(t)

	accountRepo := mocks.NewMockAccountRepository(ctrl)
	accountRepo.EXPECT().ListAll(gomock.Any()).Return([]*domain.Account{
		{ID: "1", Name: "Cash", Type: domain.AccountTypeCash, Balance: amount(100), Status: domain.AccountStatusActive},
	}, nil)

	metrics := mocks.NewMockMetrics(ctrl)
	metrics.EXPECT().ObserveReport("balance_sheet", gomock.Any())

	uc := usecase.NewReportUseCase(accountRepo, mocks.NewMockEntryRepository(ctrl), nil, metrics)

	bs, err := uc.GetBalanceSheet(context.Background())
	require.NoError(t, err)

	// The retained earnings plug absorbs any difference, so the identity holds.
	assert.True(t, bs.BalanceCheck)
	assert.True(t, bs.RetainedEarnings.Equal(amount(100)))
}

func TestReportUseCase_GetCashFlow(t *testing.T) {
	f := newFixture(t)
	f.seedAccount("till", domain.AccountTypeCash, 0)
	f.seedAccount("bank", domain.AccountTypeBank, 0)
	ctx := context.Background()

	march := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	april := time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC)
	_, err := f.entries.PostIncome(ctx, usecase.PostEntryInput{AccountID: "till", Amount: amount(400), Description: "Sales", Category: "Sales", Date: &march})
	require.NoError(t, err)
	_, err = f.entries.PostExpense(ctx, usecase.PostEntryInput{AccountID: "till", Amount: amount(100), Description: "Rent", Category: "Rent", Date: &march})
	require.NoError(t, err)
	_, err = f.transfers.TransferFunds(ctx, usecase.TransferInput{FromAccountID: "till", ToAccountID: "bank", Amount: amount(200), Date: &march})
	require.NoError(t, err)
	_, err = f.entries.PostIncome(ctx, usecase.PostEntryInput{AccountID: "bank", Amount: amount(50), Description: "Refund", Date: &april})
	require.NoError(t, err)

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC)
	cf, err := f.reports.GetCashFlow(ctx, usecase.PeriodInput{Start: &start, End: &end})
	require.NoError(t, err)

	assert.True(t, cf.OpeningBalance.Equal(amount(350)), "opening %s", cf.OpeningBalance)
	assert.True(t, cf.OpeningBalanceAtStart.IsZero(), "opening at start %s", cf.OpeningBalanceAtStart)
	assert.True(t, cf.TotalInflows.Equal(amount(600)), "inflows %s", cf.TotalInflows)
	assert.True(t, cf.TotalOutflows.Equal(amount(300)), "outflows %s", cf.TotalOutflows)
	assert.True(t, cf.NetCashFlow.Equal(amount(300)))
	require.Len(t, cf.Months, 1)

	again, err := f.reports.GetCashFlow(ctx, usecase.PeriodInput{Start: &start, End: &end})
	require.NoError(t, err)
	assert.Equal(t, cf.InflowsByCategory, again.InflowsByCategory)
	assert.True(t, cf.ClosingBalance.Equal(again.ClosingBalance))

	_, err = f.reports.GetCashFlow(ctx, usecase.PeriodInput{Start: &end, End: &start})
	assert.ErrorIs(t, err, domain.ErrInvalidDateRange)
}

func TestReportUseCase_GetPaymentAccountReport(t *testing.T) {
	f := newFixture(t)
	f.seedAccount("till", domain.AccountTypeCash, 0)
	ctx := context.Background()

	may := time.Date(2024, 5, 5, 0, 0, 0, 0, time.UTC)
	_, err := f.entries.PostIncome(ctx, usecase.PostEntryInput{AccountID: "till", Amount: amount(100), Description: "Sale", PaymentMethod: "mobile", Date: &may})
	require.NoError(t, err)
	_, err = f.entries.PostExpense(ctx, usecase.PostEntryInput{AccountID: "till", Amount: amount(30), Description: "Stock", Date: &may})
	require.NoError(t, err)

	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC)
	r, err := f.reports.GetPaymentAccountReport(ctx, usecase.PeriodInput{Start: &start, End: &end})
	require.NoError(t, err)

	require.Len(t, r.Accounts, 1)
	assert.True(t, r.Accounts[0].NetFlow.Equal(amount(70)))
	assert.Equal(t, 2, r.Accounts[0].TransactionCount)
	require.Len(t, r.Methods, 2)
	assert.Equal(t, domain.PaymentMethodCash, r.Methods[0].Method)
	assert.Equal(t, domain.PaymentMethodMobile, r.Methods[1].Method)
}

func TestReportUseCase_GetMonthlyReport(t *testing.T) {
	ctrl := gomock.NewController(t)

	may := time.Date(2024, 5, 9, 0, 0, 0, 0, time.UTC)
	entryRepo := mocks.NewMockEntryRepository(ctrl)
	entryRepo.EXPECT().List(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, filter domain.EntryFilter) ([]*domain.Entry, error) {
		require.NotNil(t, filter.From)
		require.NotNil(t, filter.To)
		assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), *filter.From)
		return []*domain.Entry{
			{Kind: domain.EntryKindIncome, Category: "Sales", Amount: amount(100), Date: may},
			{Kind: domain.EntryKindExpense, Category: "Supplies", Amount: amount(40), Date: may},
		}, nil
	})

	uc := usecase.NewReportUseCase(mocks.NewMockAccountRepository(ctrl), entryRepo, nil, nil)

	r, err := uc.GetMonthlyReport(context.Background(), 2024, time.May)
	require.NoError(t, err)
	assert.True(t, r.Net.Equal(amount(60)))

	_, err = uc.GetMonthlyReport(context.Background(), 2024, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidPeriod)
}

func TestReportUseCase_PropagatesRepositoryErrors(t *testing.T) {
	ctrl := gomock.NewController(t)

	boom := errors.New("connection reset")
	accountRepo := mocks.NewMockAccountRepository(ctrl)
	accountRepo.EXPECT().ListAll(gomock.Any()).Return(nil, boom).AnyTimes()

	uc := usecase.NewReportUseCase(accountRepo, mocks.NewMockEntryRepository(ctrl), nil, nil)

	_, err := uc.GetTrialBalance(context.Background())
	assert.ErrorIs(t, err, boom)
	_, err = uc.GetBalanceSheet(context.Background())
	assert.ErrorIs(t, err, boom)
	_, err = uc.GetCashFlow(context.Background(), usecase.PeriodInput{})
	assert.ErrorIs(t, err, boom)
}
