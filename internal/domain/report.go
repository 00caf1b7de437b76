package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// BalanceTolerance absorbs rounding noise when comparing report totals.
var BalanceTolerance = decimal.RequireFromString("0.01")

// WithinTolerance reports whether a and b differ by less than BalanceTolerance.
func WithinTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThan(BalanceTolerance)
}

// TrialBalanceRow is one account in a trial balance.
type TrialBalanceRow struct {
	AccountID   string
	AccountName string
	AccountType AccountType
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	NormalSide  Side
	// Abnormal is set when the balance sits on the side opposite the type's normal side.
	Abnormal bool
}

// TrialBalance lists every active account split into debit and credit columns.
type TrialBalance struct {
	Rows         []TrialBalanceRow
	TotalDebits  decimal.Decimal
	TotalCredits decimal.Decimal
	Difference   decimal.Decimal
	IsBalanced   bool
	AsOf         time.Time
}

// BuildTrialBalance splits each active account's balance by sign: positive balances are
// debits and negative balances are credits, regardless of account type.
func BuildTrialBalance(accounts []*Account, asOf time.Time) *TrialBalance {
	tb := &TrialBalance{
		Rows:         make([]TrialBalanceRow, 0, len(accounts)),
		TotalDebits:  decimal.Zero,
		TotalCredits: decimal.Zero,
		AsOf:         asOf,
	}

	for _, a := range sortedActive(accounts) {
		row := TrialBalanceRow{
			AccountID:   a.ID,
			AccountName: a.Name,
			AccountType: a.Type,
			Debit:       decimal.Max(a.Balance, decimal.Zero),
			Credit:      decimal.Max(a.Balance.Neg(), decimal.Zero),
			NormalSide:  a.Type.NormalSide(),
		}
		switch row.NormalSide {
		case SideDebit:
			row.Abnormal = row.Credit.IsPositive()
		case SideCredit:
			row.Abnormal = row.Debit.IsPositive()
		}

		tb.Rows = append(tb.Rows, row)
		tb.TotalDebits = tb.TotalDebits.Add(row.Debit)
		tb.TotalCredits = tb.TotalCredits.Add(row.Credit)
	}

	tb.Difference = tb.TotalDebits.Sub(tb.TotalCredits)
	tb.IsBalanced = WithinTolerance(tb.TotalDebits, tb.TotalCredits)

	return tb
}

// AccountAmount is an account line in a statement.
type AccountAmount struct {
	AccountID string
	Name      string
	Type      AccountType
	Amount    decimal.Decimal
}

// StatementSection groups account lines with their total.
type StatementSection struct {
	Accounts []AccountAmount
	Total    decimal.Decimal
}

func (s *StatementSection) add(a *Account, amount decimal.Decimal) {
	s.Accounts = append(s.Accounts, AccountAmount{AccountID: a.ID, Name: a.Name, Type: a.Type, Amount: amount})
	s.Total = s.Total.Add(amount)
}

// BalanceSheet partitions active accounts into assets, liabilities and equity.
type BalanceSheet struct {
	CurrentAssets      StatementSection
	FixedAssets        StatementSection
	CurrentLiabilities StatementSection
	Equity             StatementSection
	TotalAssets        decimal.Decimal
	TotalLiabilities   decimal.Decimal
	TotalEquity        decimal.Decimal
	RetainedEarnings   decimal.Decimal
	BalanceCheck       bool
	AsOf               time.Time
}

// BuildBalanceSheet computes the statement. Liabilities and equity are stored with credit-side
// (negative) balances and are presented negated. Revenue and expense accounts only appear
// through the retained earnings plug.
func BuildBalanceSheet(accounts []*Account, asOf time.Time) *BalanceSheet {
	bs := &BalanceSheet{
		CurrentAssets:      StatementSection{Total: decimal.Zero},
		FixedAssets:        StatementSection{Total: decimal.Zero},
		CurrentLiabilities: StatementSection{Total: decimal.Zero},
		Equity:             StatementSection{Total: decimal.Zero},
		AsOf:               asOf,
	}

	for _, a := range sortedActive(accounts) {
		switch a.Type {
		case AccountTypeCash, AccountTypeBank:
			bs.CurrentAssets.add(a, a.Balance)
		case AccountTypeAsset:
			bs.FixedAssets.add(a, a.Balance)
		case AccountTypeLiability, AccountTypeCredit:
			bs.CurrentLiabilities.add(a, a.Balance.Neg())
		case AccountTypeEquity:
			bs.Equity.add(a, a.Balance.Neg())
		}
	}

	bs.TotalAssets = bs.CurrentAssets.Total.Add(bs.FixedAssets.Total)
	bs.TotalLiabilities = bs.CurrentLiabilities.Total
	bs.TotalEquity = bs.Equity.Total
	bs.RetainedEarnings = bs.TotalAssets.Sub(bs.TotalLiabilities).Sub(bs.TotalEquity)
	bs.BalanceCheck = WithinTolerance(bs.TotalAssets, bs.TotalLiabilities.Add(bs.TotalEquity).Add(bs.RetainedEarnings))

	return bs
}

// IdentityIssue returns an integrity issue when the accounting identity does not hold.
func (bs *BalanceSheet) IdentityIssue() *IntegrityIssue {
	if bs.BalanceCheck {
		return nil
	}
	return &IntegrityIssue{
		Kind: IssueBalanceSheetIdentity,
		Detail: fmt.Sprintf("assets %s != liabilities %s + equity %s + retained %s",
			bs.TotalAssets, bs.TotalLiabilities, bs.TotalEquity, bs.RetainedEarnings),
	}
}

// CashFlow summarises money moving through cash and bank accounts over a window.
type CashFlow struct {
	Period                Period
	OpeningBalance        decimal.Decimal
	OpeningBalanceAtStart decimal.Decimal
	TotalInflows          decimal.Decimal
	TotalOutflows         decimal.Decimal
	NetCashFlow           decimal.Decimal
	ClosingBalance        decimal.Decimal
	InflowsByCategory     []CategoryAmount
	OutflowsByCategory    []CategoryAmount
	Months                []MonthlyFlow
	GeneratedAt           time.Time
}

// BuildCashFlow computes the cash flow statement.
//
// OpeningBalance is the current balance of active cash+bank accounts, not the balance at the
// start of the window; OpeningBalanceAtStart backs out every cash posting dated on or after the
// start from the balance of all cash+bank accounts. Closed accounts still contribute their
// postings to the window's flows. entries must contain all postings dated on or after p.Start;
// entries on non-cash accounts are ignored.
func BuildCashFlow(accounts []*Account, entries []*Entry, p Period, now time.Time) *CashFlow {
	cashAccounts := make(map[string]bool)
	current := decimal.Zero
	held := decimal.Zero
	for _, a := range accounts {
		if !a.Type.IsCash() {
			continue
		}
		cashAccounts[a.ID] = true
		held = held.Add(a.Balance)
		if a.IsActive() {
			current = current.Add(a.Balance)
		}
	}

	sinceStart := decimal.Zero
	var windowed []*Entry
	for _, e := range entries {
		if !cashAccounts[e.AccountID] || e.Date.Before(p.Start) {
			continue
		}
		sinceStart = sinceStart.Add(e.SignedAmount())
		if !e.Date.After(p.End) {
			windowed = append(windowed, e)
		}
	}

	outflows, inflows := SplitByKind(windowed)

	cf := &CashFlow{
		Period:                p,
		OpeningBalance:        current,
		OpeningBalanceAtStart: held.Sub(sinceStart),
		TotalInflows:          SumAmounts(inflows),
		TotalOutflows:         SumAmounts(outflows),
		InflowsByCategory:     SumByCategory(inflows),
		OutflowsByCategory:    SumByCategory(outflows),
		Months:                BucketByMonth(windowed, p),
		GeneratedAt:           now,
	}
	cf.NetCashFlow = cf.TotalInflows.Sub(cf.TotalOutflows)
	cf.ClosingBalance = cf.OpeningBalance.Add(cf.NetCashFlow)

	return cf
}

// PaymentAccountRow is one account's activity within a window.
type PaymentAccountRow struct {
	AccountID        string
	Name             string
	Type             AccountType
	Status           AccountStatus
	Balance          decimal.Decimal
	TotalExpenses    decimal.Decimal
	TotalIncomes     decimal.Decimal
	NetFlow          decimal.Decimal
	TransactionCount int
}

// PaymentMethodSummary aggregates activity per payment method.
type PaymentMethodSummary struct {
	Method           PaymentMethod
	TotalExpenses    decimal.Decimal
	TotalIncomes     decimal.Decimal
	ExpenseCount     int
	IncomeCount      int
	TransactionCount int
}

// PaymentAccountReport breaks down a window by account and by payment method.
type PaymentAccountReport struct {
	Period        Period
	Accounts      []PaymentAccountRow
	Methods       []PaymentMethodSummary
	TotalExpenses decimal.Decimal
	TotalIncomes  decimal.Decimal
	NetFlow       decimal.Decimal
	GeneratedAt   time.Time
}

// BuildPaymentAccountReport includes every active account plus closed accounts with activity
// in the window.
func BuildPaymentAccountReport(accounts []*Account, entries []*Entry, p Period, now time.Time) *PaymentAccountReport {
	rows := make(map[string]*PaymentAccountRow)
	for _, a := range accounts {
		rows[a.ID] = &PaymentAccountRow{
			AccountID:     a.ID,
			Name:          a.Name,
			Type:          a.Type,
			Status:        a.Status,
			Balance:       a.Balance,
			TotalExpenses: decimal.Zero,
			TotalIncomes:  decimal.Zero,
			NetFlow:       decimal.Zero,
		}
	}

	methods := make(map[PaymentMethod]*PaymentMethodSummary)
	report := &PaymentAccountReport{
		Period:        p,
		TotalExpenses: decimal.Zero,
		TotalIncomes:  decimal.Zero,
		GeneratedAt:   now,
	}

	for _, e := range entries {
		if !p.Contains(e.Date) {
			continue
		}
		row, ok := rows[e.AccountID]
		if !ok {
			continue
		}

		method := e.PaymentMethod
		if method == "" {
			method = PaymentMethodOther
		}
		ms, ok := methods[method]
		if !ok {
			ms = &PaymentMethodSummary{Method: method, TotalExpenses: decimal.Zero, TotalIncomes: decimal.Zero}
			methods[method] = ms
		}

		if e.Kind == EntryKindExpense {
			row.TotalExpenses = row.TotalExpenses.Add(e.Amount)
			ms.TotalExpenses = ms.TotalExpenses.Add(e.Amount)
			ms.ExpenseCount++
			report.TotalExpenses = report.TotalExpenses.Add(e.Amount)
		} else {
			row.TotalIncomes = row.TotalIncomes.Add(e.Amount)
			ms.TotalIncomes = ms.TotalIncomes.Add(e.Amount)
			ms.IncomeCount++
			report.TotalIncomes = report.TotalIncomes.Add(e.Amount)
		}
		row.TransactionCount++
		ms.TransactionCount++
	}

	for _, a := range accounts {
		row := rows[a.ID]
		if !a.IsActive() && row.TransactionCount == 0 {
			continue
		}
		row.NetFlow = row.TotalIncomes.Sub(row.TotalExpenses)
		report.Accounts = append(report.Accounts, *row)
	}
	sort.Slice(report.Accounts, func(i, j int) bool {
		return report.Accounts[i].Name < report.Accounts[j].Name
	})

	for _, ms := range methods {
		report.Methods = append(report.Methods, *ms)
	}
	sort.Slice(report.Methods, func(i, j int) bool {
		return report.Methods[i].Method < report.Methods[j].Method
	})

	report.NetFlow = report.TotalIncomes.Sub(report.TotalExpenses)

	return report
}

// MonthlyReport groups one calendar month of postings by category.
type MonthlyReport struct {
	Year          int
	Month         time.Month
	Period        Period
	Expenses      []CategoryAmount
	Incomes       []CategoryAmount
	TotalExpenses decimal.Decimal
	TotalIncomes  decimal.Decimal
	Net           decimal.Decimal
	ExpenseCount  int
	IncomeCount   int
}

// BuildMonthlyReport aggregates entries that fall inside p.
func BuildMonthlyReport(entries []*Entry, p Period) *MonthlyReport {
	var inPeriod []*Entry
	for _, e := range entries {
		if p.Contains(e.Date) {
			inPeriod = append(inPeriod, e)
		}
	}
	expenses, incomes := SplitByKind(inPeriod)

	r := &MonthlyReport{
		Year:          p.Start.Year(),
		Month:         p.Start.Month(),
		Period:        p,
		Expenses:      SumByCategory(expenses),
		Incomes:       SumByCategory(incomes),
		TotalExpenses: SumAmounts(expenses),
		TotalIncomes:  SumAmounts(incomes),
		ExpenseCount:  len(expenses),
		IncomeCount:   len(incomes),
	}
	r.Net = r.TotalIncomes.Sub(r.TotalExpenses)

	return r
}

func sortedActive(accounts []*Account) []*Account {
	active := make([]*Account, 0, len(accounts))
	for _, a := range accounts {
		if a.IsActive() {
			active = append(active, a)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		if active[i].Type != active[j].Type {
			return typeOrder[active[i].Type] < typeOrder[active[j].Type]
		}
		return active[i].Name < active[j].Name
	})
	return active
}

var typeOrder = map[AccountType]int{
	AccountTypeCash:      0,
	AccountTypeBank:      1,
	AccountTypeAsset:     2,
	AccountTypeLiability: 3,
	AccountTypeCredit:    4,
	AccountTypeEquity:    5,
	AccountTypeRevenue:   6,
	AccountTypeExpense:   7,
}
