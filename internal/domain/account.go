package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// AccountType classifies an account for overdraft rules and report placement.
type AccountType string

const (
	AccountTypeCash      AccountType = "cash"
	AccountTypeBank      AccountType = "bank"
	AccountTypeAsset     AccountType = "asset"
	AccountTypeLiability AccountType = "liability"
	AccountTypeCredit    AccountType = "credit"
	AccountTypeEquity    AccountType = "equity"
	AccountTypeRevenue   AccountType = "revenue"
	AccountTypeExpense   AccountType = "expense"
)

var validAccountTypes = map[AccountType]bool{
	AccountTypeCash:      true,
	AccountTypeBank:      true,
	AccountTypeAsset:     true,
	AccountTypeLiability: true,
	AccountTypeCredit:    true,
	AccountTypeEquity:    true,
	AccountTypeRevenue:   true,
	AccountTypeExpense:   true,
}

// ParseAccountType validates a raw account type string.
func ParseAccountType(s string) (AccountType, error) {
	if s == "" {
		return "", ErrAccountTypeRequired
	}
	t := AccountType(s)
	if !validAccountTypes[t] {
		return "", fmt.Errorf("%w: %q", ErrInvalidAccountType, s)
	}
	return t, nil
}

// IsValid reports whether t is a known account type.
func (t AccountType) IsValid() bool {
	return validAccountTypes[t]
}

// IsCash reports whether the account holds cash or bank funds.
func (t AccountType) IsCash() bool {
	return t == AccountTypeCash || t == AccountTypeBank
}

// AllowsNegativeBalance reports whether postings may drive the balance below zero.
// Only cash, bank and asset accounts are protected against overdraft.
func (t AccountType) AllowsNegativeBalance() bool {
	switch t {
	case AccountTypeCash, AccountTypeBank, AccountTypeAsset:
		return false
	default:
		return true
	}
}

// NormalSide returns the side on which the account type conventionally carries its balance.
func (t AccountType) NormalSide() Side {
	switch t {
	case AccountTypeLiability, AccountTypeCredit, AccountTypeEquity, AccountTypeRevenue:
		return SideCredit
	default:
		return SideDebit
	}
}

// Side is a debit or credit column.
type Side string

const (
	SideDebit  Side = "debit"
	SideCredit Side = "credit"
)

// AccountStatus is the lifecycle state of an account.
type AccountStatus string

const (
	AccountStatusActive AccountStatus = "active"
	AccountStatusClosed AccountStatus = "closed"
)

// Account represents a ledger account that can hold a balance.
type Account struct {
	ID            string
	Name          string
	Type          AccountType
	Balance       decimal.Decimal
	AccountNumber string
	BankName      string
	Description   string
	Status        AccountStatus
	Version       int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsActive reports whether the account accepts postings.
func (a *Account) IsActive() bool {
	return a.Status == AccountStatusActive
}

// ValidatePosting checks that the account can accept a balance change of delta.
func (a *Account) ValidatePosting(delta decimal.Decimal) error {
	if !a.IsActive() {
		return ErrAccountClosed
	}
	if delta.IsNegative() && !a.Type.AllowsNegativeBalance() && a.Balance.Add(delta).IsNegative() {
		return fmt.Errorf("%w: account %s has balance %s", ErrInsufficientFunds, a.ID, a.Balance.StringFixed(2))
	}
	return nil
}

// ApplyDelta returns the balance after adding delta.
func (a *Account) ApplyDelta(delta decimal.Decimal) decimal.Decimal {
	return a.Balance.Add(delta)
}
