package transfers

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stockpile-wms/stockpile/internal/platform/db"
	"github.com/stockpile-wms/stockpile/internal/products"
	"github.com/stockpile-wms/stockpile/internal/shared"
)

const transferColumns = `t.id, t.from_location, t.to_location, t.description, t.prod_id, t.status, t.transfer_date, t.created_at, p.name`

// Repository persists transfers in PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// TxRepository exposes the transactional operations used by the service.
// A transition into done updates the status and reassigns the product's
// warehouse on the same transaction.
type TxRepository interface {
	InsertTransfer(ctx context.Context, transfer Transfer) (int64, error)
	GetForUpdate(ctx context.Context, id int64) (Transfer, error)
	SetStatus(ctx context.Context, id int64, status Status) error
	ReassignWarehouse(ctx context.Context, productID, warehouseID int64) error
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

// List returns all transfers joined with the product name, newest first.
func (r *Repository) List(ctx context.Context) ([]Transfer, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+transferColumns+`
FROM transfers t
LEFT JOIN products p ON p.id = t.prod_id
ORDER BY t.id DESC`)
	if err != nil {
		return nil, db.Classify(err)
	}
	defer rows.Close()

	result := []Transfer{}
	for rows.Next() {
		transfer, err := scanTransfer(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, transfer)
	}
	return result, db.Classify(rows.Err())
}

// Get returns one transfer joined with the product name.
func (r *Repository) Get(ctx context.Context, id int64) (Transfer, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+transferColumns+`
FROM transfers t
LEFT JOIN products p ON p.id = t.prod_id
WHERE t.id = $1`, id)
	transfer, err := scanTransfer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Transfer{}, fmt.Errorf("transfer %d: %w", id, shared.ErrNotFound)
		}
		return Transfer{}, db.Classify(err)
	}
	return transfer, nil
}

func scanTransfer(row pgx.Row) (Transfer, error) {
	var transfer Transfer
	err := row.Scan(&transfer.ID, &transfer.FromLocation, &transfer.ToLocation, &transfer.Description,
		&transfer.ProductID, &transfer.Status, &transfer.TransferDate, &transfer.CreatedAt, &transfer.ProductName)
	return transfer, err
}

func (r *txRepository) InsertTransfer(ctx context.Context, transfer Transfer) (int64, error) {
	var id int64
	err := r.tx.QueryRow(ctx, `INSERT INTO transfers (from_location, to_location, description, prod_id, status, transfer_date, created_at)
VALUES ($1, $2, $3, $4, $5, NOW(), NOW()) RETURNING id`,
		transfer.FromLocation, transfer.ToLocation, transfer.Description, transfer.ProductID, transfer.Status).Scan(&id)
	if err != nil {
		return 0, db.Classify(err)
	}
	return id, nil
}

// GetForUpdate locks the transfer row for the remainder of the transaction
// so concurrent status transitions serialize.
func (r *txRepository) GetForUpdate(ctx context.Context, id int64) (Transfer, error) {
	var transfer Transfer
	err := r.tx.QueryRow(ctx, `SELECT id, from_location, to_location, description, prod_id, status, transfer_date, created_at
FROM transfers WHERE id = $1 FOR UPDATE`, id).Scan(
		&transfer.ID, &transfer.FromLocation, &transfer.ToLocation, &transfer.Description,
		&transfer.ProductID, &transfer.Status, &transfer.TransferDate, &transfer.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Transfer{}, fmt.Errorf("transfer %d: %w", id, shared.ErrNotFound)
		}
		return Transfer{}, db.Classify(err)
	}
	return transfer, nil
}

func (r *txRepository) SetStatus(ctx context.Context, id int64, status Status) error {
	_, err := r.tx.Exec(ctx, `UPDATE transfers SET status = $2 WHERE id = $1`, id, status)
	return db.Classify(err)
}

func (r *txRepository) ReassignWarehouse(ctx context.Context, productID, warehouseID int64) error {
	if err := products.ReassignWarehouse(ctx, r.tx, productID, warehouseID); err != nil {
		return db.Classify(err)
	}
	return nil
}
