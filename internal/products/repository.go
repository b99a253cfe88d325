package products

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stockpile-wms/stockpile/internal/platform/db"
	"github.com/stockpile-wms/stockpile/internal/shared"
)

// Repository defines persistence operations for products.
type Repository interface {
	List(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id int64) (Product, error)
	Create(ctx context.Context, product Product) (Product, error)
	SetWarehouse(ctx context.Context, productID, warehouseID int64) error
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const productColumns = `p.id, p.name, p.sku, p.category, p.uom, p.stock_total, p.warehouse_id, w.name, p.created_at`

// List returns all products joined with their warehouse name, newest first.
// Unbounded by design: the dataset is master data at small scale.
func (r *PGRepository) List(ctx context.Context) ([]Product, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+productColumns+`
FROM products p
LEFT JOIN warehouses w ON w.id = p.warehouse_id
ORDER BY p.id DESC`)
	if err != nil {
		return nil, db.Classify(err)
	}
	defer rows.Close()

	result := []Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, db.Classify(rows.Err())
}

// Get fetches one product with its warehouse name resolved.
func (r *PGRepository) Get(ctx context.Context, id int64) (Product, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+productColumns+`
FROM products p
LEFT JOIN warehouses w ON w.id = p.warehouse_id
WHERE p.id = $1`, id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, fmt.Errorf("product %d: %w", id, shared.ErrNotFound)
		}
		return Product{}, db.Classify(err)
	}
	return p, nil
}

// Create inserts a product and returns it with the warehouse name resolved.
// The initial stock snapshot is kept alongside stock_total for the nightly
// integrity sweep.
func (r *PGRepository) Create(ctx context.Context, product Product) (Product, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `INSERT INTO products (name, sku, category, uom, stock_total, initial_stock, warehouse_id)
VALUES ($1, $2, $3, $4, $5, $5, $6) RETURNING id`,
		product.Name, product.SKU, product.Category, product.UOM, product.StockTotal, product.WarehouseID).Scan(&id)
	if err != nil {
		return Product{}, db.Classify(err)
	}
	return r.Get(ctx, id)
}

// SetWarehouse reassigns a product's warehouse. The warehouse must exist;
// a foreign key violation maps to not found.
func (r *PGRepository) SetWarehouse(ctx context.Context, productID, warehouseID int64) error {
	if err := ReassignWarehouse(ctx, r.pool, productID, warehouseID); err != nil {
		return db.Classify(err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Name, &p.SKU, &p.Category, &p.UOM, &p.StockTotal, &p.WarehouseID, &p.WarehouseName, &p.CreatedAt)
	return p, err
}

var _ Repository = (*PGRepository)(nil)
