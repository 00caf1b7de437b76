package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// EntryKind distinguishes outflows from inflows.
type EntryKind string

const (
	EntryKindExpense EntryKind = "expense"
	EntryKindIncome  EntryKind = "income"
)

// EntryStatus is the settlement state of an entry.
type EntryStatus string

const (
	EntryStatusPaid     EntryStatus = "paid"
	EntryStatusReceived EntryStatus = "received"
	EntryStatusPending  EntryStatus = "pending"
)

// PaymentMethod is how money moved for an entry.
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodCard         PaymentMethod = "card"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodMobile       PaymentMethod = "mobile"
	PaymentMethodCheque       PaymentMethod = "cheque"
	PaymentMethodOther        PaymentMethod = "other"
)

var validPaymentMethods = map[PaymentMethod]bool{
	PaymentMethodCash:         true,
	PaymentMethodCard:         true,
	PaymentMethodBankTransfer: true,
	PaymentMethodMobile:       true,
	PaymentMethodCheque:       true,
	PaymentMethodOther:        true,
}

// ParsePaymentMethod validates a payment method, defaulting to cash when empty.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	if s == "" {
		return PaymentMethodCash, nil
	}
	m := PaymentMethod(strings.ToLower(s))
	if !validPaymentMethods[m] {
		return "", fmt.Errorf("%w: %q", ErrInvalidPaymentMethod, s)
	}
	return m, nil
}

// CategoryTransfer tags both legs of a transfer.
const CategoryTransfer = "Transfer"

// CategoryUncategorized is used when a posting carries no category.
const CategoryUncategorized = "Uncategorized"

// Entry is a single expense or income posting against one account.
type Entry struct {
	ID            string
	Kind          EntryKind
	Description   string
	Amount        decimal.Decimal
	Category      string
	AccountID     string
	Status        EntryStatus
	PaymentMethod PaymentMethod
	Reference     string
	TransferID    string
	Notes         string
	Date          time.Time
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// SignedAmount is the effect of the entry on its account balance.
func (e *Entry) SignedAmount() decimal.Decimal {
	if e.Kind == EntryKindExpense {
		return e.Amount.Neg()
	}
	return e.Amount
}

// IsTransferLeg reports whether the entry was created by a transfer.
func (e *Entry) IsTransferLeg() bool {
	return e.TransferID != ""
}

// IsSettled reports whether the entry carries its kind's settled status.
func (e *Entry) IsSettled() bool {
	switch e.Kind {
	case EntryKindExpense:
		return e.Status == EntryStatusPaid
	case EntryKindIncome:
		return e.Status == EntryStatusReceived
	}
	return false
}

// DefaultStatus returns the settled status for an entry kind.
func (k EntryKind) DefaultStatus() EntryStatus {
	if k == EntryKindExpense {
		return EntryStatusPaid
	}
	return EntryStatusReceived
}

// ValidateStatus checks that status is meaningful for the entry kind.
func (k EntryKind) ValidateStatus(status EntryStatus) error {
	switch status {
	case EntryStatusPending:
		return nil
	case EntryStatusPaid:
		if k == EntryKindExpense {
			return nil
		}
	case EntryStatusReceived:
		if k == EntryKindIncome {
			return nil
		}
	}
	return fmt.Errorf("%w: %q for %s", ErrInvalidEntryStatus, status, k)
}

// Validate checks the invariants of a new entry.
func (e *Entry) Validate() error {
	if strings.TrimSpace(e.Description) == "" {
		return ErrDescriptionRequired
	}
	if err := ValidateAmount(e.Amount); err != nil {
		return err
	}
	if e.AccountID == "" {
		return ErrAccountNotFound
	}
	return e.Kind.ValidateStatus(e.Status)
}

// EntryFilter narrows entry queries. Zero values mean unbounded.
type EntryFilter struct {
	AccountID string
	Category  string
	Kind      EntryKind
	From      *time.Time
	To        *time.Time
	Limit     int
}
