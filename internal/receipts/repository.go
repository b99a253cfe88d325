package receipts

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stockpile-wms/stockpile/internal/platform/db"
	"github.com/stockpile-wms/stockpile/internal/products"
)

// Repository persists receipts in PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// TxRepository exposes the transactional operations used by the service.
// Both the receipt insert and the stock increment run on the same
// transaction so a failed product match rolls the receipt back too.
type TxRepository interface {
	InsertReceipt(ctx context.Context, receipt Receipt) (int64, error)
	ApplyStockByName(ctx context.Context, normalizedName string, quantity int64) (productID int64, newTotal int64, err error)
	SetReceiptProduct(ctx context.Context, receiptID, productID int64) error
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

// List returns all receipts, newest first.
func (r *Repository) List(ctx context.Context) ([]Receipt, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, receipt_number, supplier_name, status, total_items, total_quantity, product_id, created_at
FROM receipts
ORDER BY id DESC`)
	if err != nil {
		return nil, db.Classify(err)
	}
	defer rows.Close()

	result := []Receipt{}
	for rows.Next() {
		var rec Receipt
		if err := rows.Scan(&rec.ID, &rec.ReceiptNumber, &rec.SupplierName, &rec.Status, &rec.TotalItems, &rec.TotalQuantity, &rec.ProductID, &rec.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, rec)
	}
	return result, db.Classify(rows.Err())
}

func (r *txRepository) InsertReceipt(ctx context.Context, receipt Receipt) (int64, error) {
	var id int64
	err := r.tx.QueryRow(ctx, `INSERT INTO receipts (receipt_number, supplier_name, status, total_items, total_quantity, product_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6, NOW()) RETURNING id`,
		receipt.ReceiptNumber, receipt.SupplierName, receipt.Status, receipt.TotalItems, receipt.TotalQuantity, receipt.ProductID).Scan(&id)
	if err != nil {
		return 0, db.Classify(err)
	}
	return id, nil
}

func (r *txRepository) ApplyStockByName(ctx context.Context, normalizedName string, quantity int64) (int64, int64, error) {
	productID, _, newTotal, err := products.ApplyStockDeltaByName(ctx, r.tx, normalizedName, quantity)
	if err != nil {
		return 0, 0, db.Classify(err)
	}
	return productID, newTotal, nil
}

func (r *txRepository) SetReceiptProduct(ctx context.Context, receiptID, productID int64) error {
	_, err := r.tx.Exec(ctx, `UPDATE receipts SET product_id = $2 WHERE id = $1`, receiptID, productID)
	return db.Classify(err)
}
