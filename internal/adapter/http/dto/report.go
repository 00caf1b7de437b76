package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/storeledger/internal/domain"
	"github.com/iho/storeledger/internal/usecase"
)

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// PeriodResponse is an inclusive reporting window.
type PeriodResponse struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func periodFromDomain(p domain.Period) PeriodResponse {
	return PeriodResponse{Start: p.Start, End: p.End}
}

// TrialBalanceRowResponse is one account line of the trial balance.
type TrialBalanceRowResponse struct {
	AccountID   string `json:"account_id"`
	AccountName string `json:"account_name"`
	AccountType string `json:"account_type"`
	Debit       string `json:"debit"`
	Credit      string `json:"credit"`
	NormalSide  string `json:"normal_side"`
	Abnormal    bool   `json:"abnormal,omitempty"`
}

// TrialBalanceResponse represents the trial balance report.
type TrialBalanceResponse struct {
	Accounts     []TrialBalanceRowResponse `json:"accounts"`
	TotalDebits  string                    `json:"total_debits"`
	TotalCredits string                    `json:"total_credits"`
	Difference   string                    `json:"difference"`
	IsBalanced   bool                      `json:"is_balanced"`
	AsOf         time.Time                 `json:"as_of"`
}

// TrialBalanceFromDomain converts a trial balance to response.
func TrialBalanceFromDomain(tb *domain.TrialBalance) *TrialBalanceResponse {
	rows := make([]TrialBalanceRowResponse, len(tb.Rows))
	for i, r := range tb.Rows {
		rows[i] = TrialBalanceRowResponse{
			AccountID:   r.AccountID,
			AccountName: r.AccountName,
			AccountType: string(r.AccountType),
			Debit:       money(r.Debit),
			Credit:      money(r.Credit),
			NormalSide:  string(r.NormalSide),
			Abnormal:    r.Abnormal,
		}
	}

	return &TrialBalanceResponse{
		Accounts:     rows,
		TotalDebits:  money(tb.TotalDebits),
		TotalCredits: money(tb.TotalCredits),
		Difference:   money(tb.Difference),
		IsBalanced:   tb.IsBalanced,
		AsOf:         tb.AsOf,
	}
}

// AccountAmountResponse is one line of a statement section.
type AccountAmountResponse struct {
	AccountID string `json:"account_id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Amount    string `json:"amount"`
}

// SectionResponse is a statement section with its total.
type SectionResponse struct {
	Accounts []AccountAmountResponse `json:"accounts"`
	Total    string                  `json:"total"`
}

func sectionFromDomain(s domain.StatementSection) SectionResponse {
	lines := make([]AccountAmountResponse, len(s.Accounts))
	for i, a := range s.Accounts {
		lines[i] = AccountAmountResponse{
			AccountID: a.AccountID,
			Name:      a.Name,
			Type:      string(a.Type),
			Amount:    money(a.Amount),
		}
	}
	return SectionResponse{Accounts: lines, Total: money(s.Total)}
}

// BalanceSheetResponse represents the balance sheet report.
type BalanceSheetResponse struct {
	CurrentAssets      SectionResponse `json:"current_assets"`
	FixedAssets        SectionResponse `json:"fixed_assets"`
	CurrentLiabilities SectionResponse `json:"current_liabilities"`
	Equity             SectionResponse `json:"equity"`
	TotalAssets        string          `json:"total_assets"`
	TotalLiabilities   string          `json:"total_liabilities"`
	TotalEquity        string          `json:"total_equity"`
	RetainedEarnings   string          `json:"retained_earnings"`
	BalanceCheck       bool            `json:"balance_check"`
	AsOf               time.Time       `json:"as_of"`
}

// BalanceSheetFromDomain converts a balance sheet to response.
func BalanceSheetFromDomain(bs *domain.BalanceSheet) *BalanceSheetResponse {
	return &BalanceSheetResponse{
		CurrentAssets:      sectionFromDomain(bs.CurrentAssets),
		FixedAssets:        sectionFromDomain(bs.FixedAssets),
		CurrentLiabilities: sectionFromDomain(bs.CurrentLiabilities),
		Equity:             sectionFromDomain(bs.Equity),
		TotalAssets:        money(bs.TotalAssets),
		TotalLiabilities:   money(bs.TotalLiabilities),
		TotalEquity:        money(bs.TotalEquity),
		RetainedEarnings:   money(bs.RetainedEarnings),
		BalanceCheck:       bs.BalanceCheck,
		AsOf:               bs.AsOf,
	}
}

// CategoryAmountResponse is a category rollup line.
type CategoryAmountResponse struct {
	Category string `json:"category"`
	Amount   string `json:"amount"`
	Count    int    `json:"count"`
}

func categoriesFromDomain(cs []domain.CategoryAmount) []CategoryAmountResponse {
	out := make([]CategoryAmountResponse, len(cs))
	for i, c := range cs {
		out[i] = CategoryAmountResponse{Category: c.Category, Amount: money(c.Amount), Count: c.Count}
	}
	return out
}

// MonthlyFlowResponse is one month of cash movement.
type MonthlyFlowResponse struct {
	Month    string `json:"month"`
	Inflows  string `json:"inflows"`
	Outflows string `json:"outflows"`
	Net      string `json:"net"`
}

// CashFlowResponse represents the cash flow report.
type CashFlowResponse struct {
	Period                PeriodResponse           `json:"period"`
	OpeningBalance        string                   `json:"opening_balance"`
	OpeningBalanceAtStart string                   `json:"opening_balance_at_start"`
	TotalInflows          string                   `json:"total_inflows"`
	TotalOutflows         string                   `json:"total_outflows"`
	NetCashFlow           string                   `json:"net_cash_flow"`
	ClosingBalance        string                   `json:"closing_balance"`
	InflowsByCategory     []CategoryAmountResponse `json:"inflows_by_category"`
	OutflowsByCategory    []CategoryAmountResponse `json:"outflows_by_category"`
	Months                []MonthlyFlowResponse    `json:"months"`
	GeneratedAt           time.Time                `json:"generated_at"`
}

// CashFlowFromDomain converts a cash flow statement to response.
func CashFlowFromDomain(cf *domain.CashFlow) *CashFlowResponse {
	months := make([]MonthlyFlowResponse, len(cf.Months))
	for i, m := range cf.Months {
		months[i] = MonthlyFlowResponse{
			Month:    m.Month,
			Inflows:  money(m.Inflows),
			Outflows: money(m.Outflows),
			Net:      money(m.Net),
		}
	}

	return &CashFlowResponse{
		Period:                periodFromDomain(cf.Period),
		OpeningBalance:        money(cf.OpeningBalance),
		OpeningBalanceAtStart: money(cf.OpeningBalanceAtStart),
		TotalInflows:          money(cf.TotalInflows),
		TotalOutflows:         money(cf.TotalOutflows),
		NetCashFlow:           money(cf.NetCashFlow),
		ClosingBalance:        money(cf.ClosingBalance),
		InflowsByCategory:     categoriesFromDomain(cf.InflowsByCategory),
		OutflowsByCategory:    categoriesFromDomain(cf.OutflowsByCategory),
		Months:                months,
		GeneratedAt:           cf.GeneratedAt,
	}
}

// PaymentAccountRowResponse is one account line of the payment account report.
type PaymentAccountRowResponse struct {
	AccountID        string `json:"account_id"`
	Name             string `json:"name"`
	Type             string `json:"type"`
	Status           string `json:"status"`
	Balance          string `json:"balance"`
	TotalExpenses    string `json:"total_expenses"`
	TotalIncomes     string `json:"total_incomes"`
	NetFlow          string `json:"net_flow"`
	TransactionCount int    `json:"transaction_count"`
}

// PaymentMethodResponse aggregates activity for one payment method.
type PaymentMethodResponse struct {
	Method           string `json:"method"`
	TotalExpenses    string `json:"total_expenses"`
	TotalIncomes     string `json:"total_incomes"`
	ExpenseCount     int    `json:"expense_count"`
	IncomeCount      int    `json:"income_count"`
	TransactionCount int    `json:"transaction_count"`
}

// PaymentAccountReportResponse represents the payment account report.
type PaymentAccountReportResponse struct {
	Period        PeriodResponse              `json:"period"`
	Accounts      []PaymentAccountRowResponse `json:"accounts"`
	Methods       []PaymentMethodResponse     `json:"payment_methods"`
	TotalExpenses string                      `json:"total_expenses"`
	TotalIncomes  string                      `json:"total_incomes"`
	NetFlow       string                      `json:"net_flow"`
	GeneratedAt   time.Time                   `json:"generated_at"`
}

// PaymentAccountReportFromDomain converts a payment account report to response.
func PaymentAccountReportFromDomain(r *domain.PaymentAccountReport) *PaymentAccountReportResponse {
	accounts := make([]PaymentAccountRowResponse, len(r.Accounts))
	for i, a := range r.Accounts {
		accounts[i] = PaymentAccountRowResponse{
			AccountID:        a.AccountID,
			Name:             a.Name,
			Type:             string(a.Type),
			Status:           string(a.Status),
			Balance:          money(a.Balance),
			TotalExpenses:    money(a.TotalExpenses),
			TotalIncomes:     money(a.TotalIncomes),
			NetFlow:          money(a.NetFlow),
			TransactionCount: a.TransactionCount,
		}
	}

	methods := make([]PaymentMethodResponse, len(r.Methods))
	for i, m := range r.Methods {
		methods[i] = PaymentMethodResponse{
			Method:           string(m.Method),
			TotalExpenses:    money(m.TotalExpenses),
			TotalIncomes:     money(m.TotalIncomes),
			ExpenseCount:     m.ExpenseCount,
			IncomeCount:      m.IncomeCount,
			TransactionCount: m.TransactionCount,
		}
	}

	return &PaymentAccountReportResponse{
		Period:        periodFromDomain(r.Period),
		Accounts:      accounts,
		Methods:       methods,
		TotalExpenses: money(r.TotalExpenses),
		TotalIncomes:  money(r.TotalIncomes),
		NetFlow:       money(r.NetFlow),
		GeneratedAt:   r.GeneratedAt,
	}
}

// MonthlyReportResponse represents one calendar month of postings.
type MonthlyReportResponse struct {
	Year          int                      `json:"year"`
	Month         int                      `json:"month"`
	Period        PeriodResponse           `json:"period"`
	Expenses      []CategoryAmountResponse `json:"expenses"`
	Incomes       []CategoryAmountResponse `json:"incomes"`
	TotalExpenses string                   `json:"total_expenses"`
	TotalIncomes  string                   `json:"total_incomes"`
	Net           string                   `json:"net"`
	ExpenseCount  int                      `json:"expense_count"`
	IncomeCount   int                      `json:"income_count"`
}

// MonthlyReportFromDomain converts a monthly report to response.
func MonthlyReportFromDomain(m *domain.MonthlyReport) *MonthlyReportResponse {
	return &MonthlyReportResponse{
		Year:          m.Year,
		Month:         int(m.Month),
		Period:        periodFromDomain(m.Period),
		Expenses:      categoriesFromDomain(m.Expenses),
		Incomes:       categoriesFromDomain(m.Incomes),
		TotalExpenses: money(m.TotalExpenses),
		TotalIncomes:  money(m.TotalIncomes),
		Net:           money(m.Net),
		ExpenseCount:  m.ExpenseCount,
		IncomeCount:   m.IncomeCount,
	}
}

// ReconciliationResultResponse is the reconciliation of one account.
type ReconciliationResultResponse struct {
	AccountID         string    `json:"account_id"`
	AccountName       string    `json:"account_name"`
	RecordedBalance   string    `json:"recorded_balance"`
	CalculatedBalance string    `json:"calculated_balance"`
	Difference        string    `json:"difference"`
	IsReconciled      bool      `json:"is_reconciled"`
	LastChecked       time.Time `json:"last_checked"`
}

// ReconciliationResultFromUseCase converts a reconciliation result to response.
func ReconciliationResultFromUseCase(r *usecase.ReconciliationResult) *ReconciliationResultResponse {
	return &ReconciliationResultResponse{
		AccountID:         r.AccountID,
		AccountName:       r.AccountName,
		RecordedBalance:   money(r.RecordedBalance),
		CalculatedBalance: money(r.CalculatedBalance),
		Difference:        money(r.Difference),
		IsReconciled:      r.IsReconciled,
		LastChecked:       r.LastChecked,
	}
}

// ReconciliationReportResponse is the ledger-wide consistency report.
type ReconciliationReportResponse struct {
	TotalAccounts      int                             `json:"total_accounts"`
	ReconciledAccounts int                             `json:"reconciled_accounts"`
	Discrepancies      []*ReconciliationResultResponse `json:"discrepancies"`
	TransferPairs      int                             `json:"transfer_pairs"`
	Issues             []domain.IntegrityIssue         `json:"issues"`
	LedgerConsistent   bool                            `json:"ledger_consistent"`
	CheckedAt          time.Time                       `json:"checked_at"`
}

// ReconciliationReportFromUseCase converts a reconciliation report to response.
func ReconciliationReportFromUseCase(r *usecase.ReconciliationReport) *ReconciliationReportResponse {
	discrepancies := make([]*ReconciliationResultResponse, len(r.Discrepancies))
	for i, d := range r.Discrepancies {
		discrepancies[i] = ReconciliationResultFromUseCase(d)
	}

	return &ReconciliationReportResponse{
		TotalAccounts:      r.TotalAccounts,
		ReconciledAccounts: r.ReconciledAccounts,
		Discrepancies:      discrepancies,
		TransferPairs:      r.TransferPairs,
		Issues:             r.Issues,
		LedgerConsistent:   r.LedgerConsistent,
		CheckedAt:          r.CheckedAt,
	}
}
