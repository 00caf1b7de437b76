package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestTransfer_Validate(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		to      string
		amount  decimal.Decimal
		wantErr error
	}{
		{name: "valid", from: "a", to: "b", amount: decimal.NewFromInt(300)},
		{name: "self transfer", from: "a", to: "a", amount: decimal.NewFromInt(300), wantErr: ErrSameAccount},
		{name: "zero amount", from: "a", to: "b", amount: decimal.Zero, wantErr: ErrInvalidAmount},
		{name: "too large", from: "a", to: "b", amount: decimal.RequireFromString("1000000000000.01"), wantErr: ErrAmountTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := &Transfer{FromAccountID: tt.from, ToAccountID: tt.to, Amount: tt.amount}

			err := tr.Validate()

			if tt.wantErr == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestNewTransferRecord(t *testing.T) {
	tr := &Transfer{ID: "t1", Reference: "TRF-t1"}
	paid := &Entry{ID: "e1", Kind: EntryKindExpense, Status: EntryStatusPaid}
	received := &Entry{ID: "e2", Kind: EntryKindIncome, Status: EntryStatusReceived}
	pending := &Entry{ID: "e3", Kind: EntryKindIncome, Status: EntryStatusPending}

	rec := NewTransferRecord(tr, paid, received)
	if rec.Status != TransferStatusCompleted || rec.Issue != nil {
		t.Errorf("expected completed without issue, got %s %+v", rec.Status, rec.Issue)
	}

	rec = NewTransferRecord(tr, paid, pending)
	if rec.Status != TransferStatusPending || rec.Issue != nil {
		t.Errorf("expected pending without issue, got %s %+v", rec.Status, rec.Issue)
	}

	rec = NewTransferRecord(tr, nil, received)
	if rec.Status != TransferStatusPending {
		t.Errorf("expected pending, got %s", rec.Status)
	}
	if rec.Issue == nil || rec.Issue.Kind != IssueMissingTransferLeg {
		t.Fatalf("expected missing leg issue, got %+v", rec.Issue)
	}
	if !errors.Is(rec.Issue.Err(), ErrIntegrity) {
		t.Errorf("expected issue to wrap ErrIntegrity")
	}
}

func TestPairTransferLegs(t *testing.T) {
	amount := decimal.NewFromInt(300)
	entries := []*Entry{
		{ID: "x1", Kind: EntryKindExpense, Category: CategoryTransfer, Reference: "TRF-1", Amount: amount, AccountID: "a"},
		{ID: "x2", Kind: EntryKindIncome, Category: CategoryTransfer, Reference: "TRF-1", Amount: amount, AccountID: "b"},
		{ID: "x3", Kind: EntryKindExpense, Category: CategoryTransfer, Reference: "TRF-2", Amount: amount, AccountID: "a"},
		{ID: "x4", Kind: EntryKindExpense, Category: "Rent", Reference: "TRF-3", Amount: amount, AccountID: "a"},
	}

	pairs, issues := PairTransferLegs(entries)

	if len(pairs) != 1 || pairs[0].Reference != "TRF-1" {
		t.Fatalf("expected one pair for TRF-1, got %+v", pairs)
	}
	if pairs[0].Expense.ID != "x1" || pairs[0].Income.ID != "x2" {
		t.Errorf("unexpected pairing: %+v", pairs[0])
	}
	if len(issues) != 1 {
		t.Fatalf("expected one issue, got %d", len(issues))
	}
	if issues[0].EntryID != "x3" || issues[0].Kind != IssueUnmatchedTransferLeg {
		t.Errorf("unexpected issue: %+v", issues[0])
	}
}

func TestPairTransferLegs_AmountMismatch(t *testing.T) {
	entries := []*Entry{
		{ID: "x1", Kind: EntryKindExpense, Category: CategoryTransfer, Reference: "R", Amount: decimal.NewFromInt(10)},
		{ID: "x2", Kind: EntryKindIncome, Category: CategoryTransfer, Reference: "R", Amount: decimal.NewFromInt(11)},
	}

	pairs, issues := PairTransferLegs(entries)

	if len(pairs) != 0 {
		t.Errorf("expected no pairs, got %d", len(pairs))
	}
	if len(issues) != 2 {
		t.Errorf("expected both legs reported, got %d", len(issues))
	}
}
