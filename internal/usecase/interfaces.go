package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/storeledger/internal/domain"
)

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Account, error)
	GetByIDsForUpdate(ctx context.Context, tx Transaction, ids []string) ([]*domain.Account, error)
	Update(ctx context.Context, account *domain.Account) error
	Close(ctx context.Context, id string, closedAt time.Time) error
	// AdjustBalance atomically adds delta to the stored balance and returns the new balance.
	// With guard set the update only applies when the result stays non-negative, otherwise
	// domain.ErrInsufficientFunds is returned.
	AdjustBalance(ctx context.Context, tx Transaction, id string, delta decimal.Decimal, guard bool) (decimal.Decimal, error)
	List(ctx context.Context, limit, offset int, includeClosed bool) ([]*domain.Account, error)
	ListAll(ctx context.Context) ([]*domain.Account, error)
}

// EntryRepository defines data access for ledger entries.
type EntryRepository interface {
	Create(ctx context.Context, tx Transaction, entry *domain.Entry) error
	GetByID(ctx context.Context, id string) (*domain.Entry, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Entry, error)
	Update(ctx context.Context, entry *domain.Entry) error
	Delete(ctx context.Context, tx Transaction, id string) error
	// List returns entries newest first (date, then creation time). A zero filter limit is unbounded.
	List(ctx context.Context, filter domain.EntryFilter) ([]*domain.Entry, error)
	ListByTransfers(ctx context.Context, transferIDs []string) ([]*domain.Entry, error)
	SumByAccount(ctx context.Context) (map[string]decimal.Decimal, error)
}

// TransferRepository defines data access for transfers.
type TransferRepository interface {
	Create(ctx context.Context, tx Transaction, transfer *domain.Transfer) error
	GetByID(ctx context.Context, id string) (*domain.Transfer, error)
	// List returns transfers newest first; a non-positive limit returns all of them.
	List(ctx context.Context, limit int) ([]*domain.Transfer, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier re-runs fn when it fails with a transient database error.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Release drops a claimed key so a failed request can be retried.
	Release(ctx context.Context, key string) error
}

// Metrics records ledger activity. Implemented by infrastructure/metrics.
type Metrics interface {
	AccountCreated(accountType string)
	AccountClosed()
	EntryPosted(kind string)
	EntryDeleted(kind string)
	TransferCompleted()
	TransferFailed(reason string)
	IntegrityViolation(kind string)
	ObserveReport(report string, d time.Duration)
}
