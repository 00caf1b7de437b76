package usecase

import "context"

// runInTx executes fn inside a single transaction bounded by DefaultTransactionTimeout.
// The whole unit, including Begin and Commit, is re-run by retrier on transient failures.
func runInTx(
	ctx context.Context,
	txManager TransactionManager,
	retrier Retrier,
	fn func(ctx context.Context, tx Transaction) error,
) error {
	ctx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	attempt := func() error {
		tx, err := txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

		if err := fn(ctx, tx); err != nil {
			return err
		}

		return tx.Commit(ctx)
	}

	if retrier == nil {
		return attempt()
	}

	return retrier.Retry(ctx, attempt)
}
