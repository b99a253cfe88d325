package adjustments

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stockpile-wms/stockpile/internal/platform/db"
	"github.com/stockpile-wms/stockpile/internal/products"
)

// Repository persists adjustments in PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// TxRepository exposes the transactional operations used by the service.
// The adjustment insert and the stock delta run on the same transaction so
// neither commits without the other.
type TxRepository interface {
	InsertAdjustment(ctx context.Context, adj Adjustment) (int64, error)
	ApplyStock(ctx context.Context, productID, delta int64) (name string, newTotal int64, err error)
}

type txRepository struct {
	tx pgx.Tx
}

// WithTx executes the callback inside a repeatable-read transaction.
func (r *Repository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &txRepository{tx: tx})
	})
}

// List returns all adjustments joined with the product's current name and
// stock, newest first.
func (r *Repository) List(ctx context.Context) ([]Adjustment, error) {
	rows, err := r.pool.Query(ctx, `SELECT a.id, a.product_id, a.amount, a.reason, a.type, a.date, p.name, p.stock_total
FROM adjustments a
JOIN products p ON p.id = a.product_id
ORDER BY a.id DESC`)
	if err != nil {
		return nil, db.Classify(err)
	}
	defer rows.Close()

	result := []Adjustment{}
	for rows.Next() {
		var adj Adjustment
		if err := rows.Scan(&adj.ID, &adj.ProductID, &adj.Amount, &adj.Reason, &adj.Type, &adj.Date, &adj.ProductName, &adj.CurrentStock); err != nil {
			return nil, err
		}
		result = append(result, adj)
	}
	return result, db.Classify(rows.Err())
}

func (r *txRepository) InsertAdjustment(ctx context.Context, adj Adjustment) (int64, error) {
	var id int64
	err := r.tx.QueryRow(ctx, `INSERT INTO adjustments (product_id, amount, reason, type, date)
VALUES ($1, $2, $3, $4, NOW()) RETURNING id`,
		adj.ProductID, adj.Amount, adj.Reason, adj.Type).Scan(&id)
	if err != nil {
		return 0, db.Classify(err)
	}
	return id, nil
}

func (r *txRepository) ApplyStock(ctx context.Context, productID, delta int64) (string, int64, error) {
	name, newTotal, err := products.ApplyStockDelta(ctx, r.tx, productID, delta)
	if err != nil {
		return "", 0, db.Classify(err)
	}
	return name, newTotal, nil
}
