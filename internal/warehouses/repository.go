package warehouses

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stockpile-wms/stockpile/internal/platform/db"
)

// Repository defines persistence operations for warehouses.
type Repository interface {
	List(ctx context.Context) ([]Warehouse, error)
	Create(ctx context.Context, warehouse Warehouse) (Warehouse, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// List returns all warehouses with their derived product count, newest first.
func (r *PGRepository) List(ctx context.Context) ([]Warehouse, error) {
	rows, err := r.pool.Query(ctx, `SELECT w.id, w.name, w.address, COUNT(p.id)
FROM warehouses w
LEFT JOIN products p ON p.warehouse_id = w.id
GROUP BY w.id, w.name, w.address
ORDER BY w.id DESC`)
	if err != nil {
		return nil, db.Classify(err)
	}
	defer rows.Close()

	result := []Warehouse{}
	for rows.Next() {
		var w Warehouse
		if err := rows.Scan(&w.ID, &w.Name, &w.Address, &w.ProductCount); err != nil {
			return nil, err
		}
		result = append(result, w)
	}
	return result, db.Classify(rows.Err())
}

// Create inserts a warehouse and returns it with the generated ID.
func (r *PGRepository) Create(ctx context.Context, warehouse Warehouse) (Warehouse, error) {
	err := r.pool.QueryRow(ctx, `INSERT INTO warehouses (name, address) VALUES ($1, $2) RETURNING id`,
		warehouse.Name, warehouse.Address).Scan(&warehouse.ID)
	if err != nil {
		return Warehouse{}, db.Classify(err)
	}
	return warehouse, nil
}

var _ Repository = (*PGRepository)(nil)
