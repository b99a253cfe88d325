package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stockpile-wms/stockpile/internal/shared"
)

// WithTx executes a function within a transaction using the RepeatableRead
// isolation level. Any error from the callback rolls the transaction back.
func WithTx(ctx context.Context, pool *pgxpool.Pool, fn func(pgx.Tx) error) error {
	tx, err := pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead})
	if err != nil {
		return fmt.Errorf("platform/db: begin tx: %w", Classify(err))
	}

	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("platform/db: commit tx: %w", Classify(err))
	}

	return nil
}

// Postgres error codes used for domain mapping.
const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
)

// Classify maps driver-level errors onto the shared domain taxonomy.
// Foreign key violations become ErrNotFound (the referenced row is absent),
// unique violations become ErrDuplicate, and deadline or connectivity
// failures become ErrStoreUnavailable so handlers answer 503.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return shared.ErrNotFound
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return shared.ErrStoreUnavailable
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgForeignKeyViolation:
			return shared.ErrNotFound
		case pgUniqueViolation:
			return shared.ErrDuplicate
		}
	}
	if pgconn.Timeout(err) {
		return shared.ErrStoreUnavailable
	}
	return err
}
