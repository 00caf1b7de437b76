package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a database transaction
	// This prevents long-running transactions from blocking tables
	DefaultTransactionTimeout = 10 * time.Second

	// DefaultReportCacheTTL is how long cached trial balance and balance sheet snapshots live
	DefaultReportCacheTTL = 30 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour

	// TransferReferencePrefix prefixes generated transfer references
	TransferReferencePrefix = "TRF-"
)

// Report cache keys.
const (
	reportKeyTrialBalance = "report:trial_balance"
	reportKeyBalanceSheet = "report:balance_sheet"
	reportKeyGeneration   = "report:generation"
)
