package products

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/stockpile-wms/stockpile/internal/shared"
)

// Querier is the subset of pgx satisfied by both pgx.Tx and *pgxpool.Pool.
// The stock-mutation primitives below run on whatever the caller provides so
// orchestrators can execute them inside their own transaction.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ApplyStockDelta atomically applies a signed delta to a product's stock
// using a single UPDATE statement, so concurrent mutations serialize on the
// row and never lose updates. Returns the product name and new total.
func ApplyStockDelta(ctx context.Context, q Querier, productID, delta int64) (string, int64, error) {
	var name string
	var newTotal int64
	err := q.QueryRow(ctx, `UPDATE products SET stock_total = stock_total + $2 WHERE id = $1 RETURNING name, stock_total`,
		productID, delta).Scan(&name, &newTotal)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", 0, fmt.Errorf("product %d: %w", productID, shared.ErrNotFound)
		}
		return "", 0, err
	}
	return name, newTotal, nil
}

// ResolveByName resolves a product by case- and whitespace-insensitive name.
// Exactly one match is required: zero matches fail as not found, several as
// an ambiguous match. Both sides are normalized in SQL so the comparison
// cannot drift from LOWER's case mapping.
func ResolveByName(ctx context.Context, q Querier, normalizedName string) (int64, error) {
	rows, err := q.Query(ctx, `SELECT id FROM products WHERE LOWER(TRIM(name)) = LOWER(TRIM($1)) LIMIT 2`, normalizedName)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return 0, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}
	switch len(ids) {
	case 0:
		return 0, fmt.Errorf("product %q: %w", normalizedName, shared.ErrNotFound)
	case 1:
		return ids[0], nil
	default:
		return 0, fmt.Errorf("product name %q matches multiple products: %w", normalizedName, shared.ErrAmbiguousMatch)
	}
}

// ApplyStockDeltaByName resolves a product by normalized name and applies the
// delta. Both steps run on the caller's Querier, typically a transaction.
func ApplyStockDeltaByName(ctx context.Context, q Querier, normalizedName string, delta int64) (int64, string, int64, error) {
	id, err := ResolveByName(ctx, q, normalizedName)
	if err != nil {
		return 0, "", 0, err
	}
	name, newTotal, err := ApplyStockDelta(ctx, q, id, delta)
	if err != nil {
		return 0, "", 0, err
	}
	return id, name, newTotal, nil
}

// ReassignWarehouse moves a product to another warehouse. A missing product
// surfaces as not found via the affected-row count; a missing warehouse
// surfaces as a foreign key violation classified by the caller.
func ReassignWarehouse(ctx context.Context, q Querier, productID, warehouseID int64) error {
	var id int64
	err := q.QueryRow(ctx, `UPDATE products SET warehouse_id = $2 WHERE id = $1 RETURNING id`,
		productID, warehouseID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("product %d: %w", productID, shared.ErrNotFound)
		}
		return err
	}
	return nil
}
