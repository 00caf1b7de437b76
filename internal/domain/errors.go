package domain

import (
	"errors"
	"fmt"
)

// Error categories. Every error returned by the ledger core wraps exactly one of these,
// so callers can branch with errors.Is without knowing the specific cause.
var (
	ErrValidation        = errors.New("validation error")
	ErrNotFound          = errors.New("not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrIntegrity         = errors.New("integrity violation")
)

var (
	// Account errors
	ErrAccountNotFound     = fmt.Errorf("account %w", ErrNotFound)
	ErrAccountClosed       = fmt.Errorf("%w: account is closed", ErrValidation)
	ErrInvalidAccountName  = fmt.Errorf("%w: invalid account name", ErrValidation)
	ErrInvalidAccountType  = fmt.Errorf("%w: invalid account type", ErrValidation)
	ErrAccountTypeRequired = fmt.Errorf("%w: account type is required", ErrValidation)

	// Entry errors
	ErrEntryNotFound           = fmt.Errorf("entry %w", ErrNotFound)
	ErrInvalidAmount           = fmt.Errorf("%w: amount must be positive", ErrValidation)
	ErrAmountTooSmall          = fmt.Errorf("%w: amount below minimum allowed", ErrValidation)
	ErrAmountTooLarge          = fmt.Errorf("%w: amount exceeds maximum allowed", ErrValidation)
	ErrAmountPrecision         = fmt.Errorf("%w: amount has more than two decimal places", ErrValidation)
	ErrDescriptionRequired     = fmt.Errorf("%w: description is required", ErrValidation)
	ErrInvalidEntryStatus      = fmt.Errorf("%w: invalid entry status", ErrValidation)
	ErrInvalidPaymentMethod    = fmt.Errorf("%w: invalid payment method", ErrValidation)
	ErrFinancialFieldImmutable = fmt.Errorf("%w: amount and account cannot be edited, delete and repost the entry", ErrValidation)
	ErrTransferLeg             = fmt.Errorf("%w: entry belongs to a transfer", ErrValidation)

	// Transfer errors
	ErrSameAccount      = fmt.Errorf("%w: cannot transfer to same account", ErrValidation)
	ErrTransferNotFound = fmt.Errorf("transfer %w", ErrNotFound)

	// Report errors
	ErrInvalidDateRange = fmt.Errorf("%w: start date is after end date", ErrValidation)
	ErrInvalidPeriod    = fmt.Errorf("%w: invalid report period", ErrValidation)
)

// IntegrityIssue describes a ledger inconsistency found while reading data.
type IntegrityIssue struct {
	Kind      string `json:"kind"`
	Reference string `json:"reference,omitempty"`
	EntryID   string `json:"entry_id,omitempty"`
	AccountID string `json:"account_id,omitempty"`
	Detail    string `json:"detail"`
}

// Integrity issue kinds.
const (
	IssueUnmatchedTransferLeg = "unmatched_transfer_leg"
	IssueMissingTransferLeg   = "missing_transfer_leg"
	IssueBalanceMismatch      = "balance_mismatch"
	IssueBalanceSheetIdentity = "balance_sheet_identity"
)

// Err returns the issue as an error wrapping ErrIntegrity.
func (i IntegrityIssue) Err() error {
	return fmt.Errorf("%w: %s: %s", ErrIntegrity, i.Kind, i.Detail)
}
