package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Transfer is a money movement between two accounts, persisted alongside its two legs.
type Transfer struct {
	ID             string
	FromAccountID  string
	ToAccountID    string
	Amount         decimal.Decimal
	Description    string
	Reference      string
	ExpenseEntryID string
	IncomeEntryID  string
	Date           time.Time
	CreatedBy      string
	CreatedAt      time.Time
}

// Validate validates transfer request.
func (t *Transfer) Validate() error {
	if t.FromAccountID == t.ToAccountID {
		return ErrSameAccount
	}

	return ValidateAmount(t.Amount)
}

// TransferStatus is derived from the state of the two legs.
type TransferStatus string

const (
	TransferStatusCompleted TransferStatus = "completed"
	TransferStatusPending   TransferStatus = "pending"
)

// TransferRecord is a transfer joined with its legs for history views.
type TransferRecord struct {
	Transfer *Transfer
	Expense  *Entry
	Income   *Entry
	Status   TransferStatus
	Issue    *IntegrityIssue
}

// NewTransferRecord derives the status of a transfer from its legs.
// A missing leg yields a pending record carrying an integrity issue.
func NewTransferRecord(t *Transfer, expense, income *Entry) *TransferRecord {
	rec := &TransferRecord{
		Transfer: t,
		Expense:  expense,
		Income:   income,
		Status:   TransferStatusPending,
	}

	switch {
	case expense == nil || income == nil:
		missing := "income"
		if expense == nil {
			missing = "expense"
		}
		rec.Issue = &IntegrityIssue{
			Kind:      IssueMissingTransferLeg,
			Reference: t.Reference,
			Detail:    "transfer " + t.ID + " has no " + missing + " leg",
		}
	case expense.IsSettled() && income.IsSettled():
		rec.Status = TransferStatusCompleted
	}

	return rec
}

// TransferPair is a matched expense/income couple sharing a transfer reference.
type TransferPair struct {
	Reference string
	Expense   *Entry
	Income    *Entry
}

// PairTransferLegs groups Transfer-category entries by reference. Each reference must carry
// exactly one expense and one income of equal amount; anything else is reported as an issue.
// Only use it for legs posted by hand: references are free text, so legs written by a transfer
// are matched through their transfer id instead.
func PairTransferLegs(entries []*Entry) ([]TransferPair, []IntegrityIssue) {
	type legs struct {
		expenses []*Entry
		incomes  []*Entry
	}

	byRef := make(map[string]*legs)
	var refs []string
	for _, e := range entries {
		if e.Category != CategoryTransfer {
			continue
		}
		l, ok := byRef[e.Reference]
		if !ok {
			l = &legs{}
			byRef[e.Reference] = l
			refs = append(refs, e.Reference)
		}
		if e.Kind == EntryKindExpense {
			l.expenses = append(l.expenses, e)
		} else {
			l.incomes = append(l.incomes, e)
		}
	}
	sort.Strings(refs)

	var (
		pairs  []TransferPair
		issues []IntegrityIssue
	)
	for _, ref := range refs {
		l := byRef[ref]
		if len(l.expenses) == 1 && len(l.incomes) == 1 && l.expenses[0].Amount.Equal(l.incomes[0].Amount) {
			pairs = append(pairs, TransferPair{Reference: ref, Expense: l.expenses[0], Income: l.incomes[0]})
			continue
		}
		for _, e := range append(l.expenses, l.incomes...) {
			issues = append(issues, IntegrityIssue{
				Kind:      IssueUnmatchedTransferLeg,
				Reference: ref,
				EntryID:   e.ID,
				AccountID: e.AccountID,
				Detail: fmt.Sprintf("reference %q has %d expense and %d income legs",
					ref, len(l.expenses), len(l.incomes)),
			})
		}
	}

	return pairs, issues
}
