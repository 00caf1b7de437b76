package usecase_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/storeledger/internal/domain"
	"github.com/iho/storeledger/internal/usecase"
	"github.com/iho/storeledger/internal/usecase/mocks"
)

type fixture struct {
	ledger    *mocks.Ledger
	cache     *mocks.FakeCache
	accounts  *usecase.AccountUseCase
	entries   *usecase.EntryUseCase
	transfers *usecase.TransferUseCase
	reports   *usecase.ReportUseCase
	recon     *usecase.ReconciliationUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	l := mocks.NewLedger()
	cache := mocks.NewFakeCache()
	rc := usecase.NewReportCache(cache, time.Minute)

	return &fixture{
		ledger:    l,
		cache:     cache,
		accounts:  usecase.NewAccountUseCase(l.Accounts, l.IDs, rc, nil),
		entries:   usecase.NewEntryUseCase(l.TxManager, l.Accounts, l.Entries, l.IDs, nil, rc, nil),
		transfers: usecase.NewTransferUseCase(l.TxManager, l.Accounts, l.Transfers, l.Entries, l.IDs, nil, rc, nil),
		reports:   usecase.NewReportUseCase(l.Accounts, l.Entries, rc, nil),
		recon:     usecase.NewReconciliationUseCase(l.Accounts, l.Entries, l.Transfers, nil),
	}
}

// seedAccount stores an active account with an opening balance backed by an income entry,
// so reconciliation sees a consistent ledger.
func (f *fixture) seedAccount(id string, accountType domain.AccountType, balance int64) {
	f.ledger.Store.PutAccount(&domain.Account{
		ID:      id,
		Name:    "Account " + id,
		Type:    accountType,
		Balance: decimal.NewFromInt(balance),
		Status:  domain.AccountStatusActive,
	})

	if balance == 0 {
		return
	}

	kind := domain.EntryKindIncome
	amount := decimal.NewFromInt(balance)
	if balance < 0 {
		kind = domain.EntryKindExpense
		amount = amount.Neg()
	}
	f.ledger.Store.PutEntry(&domain.Entry{
		ID:          "opening-" + id,
		Kind:        kind,
		Description: "Opening balance",
		Amount:      amount,
		Category:    "Opening",
		AccountID:   id,
		Status:      kind.DefaultStatus(),
		Date:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})
}

func (f *fixture) balance(id string) decimal.Decimal {
	return f.ledger.Store.Balance(id)
}

func amount(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}
