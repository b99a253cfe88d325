package products

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stockpile-wms/stockpile/internal/shared"
)

type memoryRepo struct {
	rows       map[int64]Product
	warehouses map[int64]bool
	nextID     int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{rows: map[int64]Product{}, warehouses: map[int64]bool{}}
}

func (r *memoryRepo) List(ctx context.Context) ([]Product, error) {
	result := []Product{}
	for _, p := range r.rows {
		result = append(result, p)
	}
	return result, nil
}

func (r *memoryRepo) Get(ctx context.Context, id int64) (Product, error) {
	p, ok := r.rows[id]
	if !ok {
		return Product{}, fmt.Errorf("product %d: %w", id, shared.ErrNotFound)
	}
	return p, nil
}

func (r *memoryRepo) Create(ctx context.Context, p Product) (Product, error) {
	r.nextID++
	p.ID = r.nextID
	r.rows[p.ID] = p
	return p, nil
}

func (r *memoryRepo) SetWarehouse(ctx context.Context, productID, warehouseID int64) error {
	p, ok := r.rows[productID]
	if !ok {
		return fmt.Errorf("product %d: %w", productID, shared.ErrNotFound)
	}
	if !r.warehouses[warehouseID] {
		return shared.ErrNotFound
	}
	p.WarehouseID = &warehouseID
	r.rows[productID] = p
	return nil
}

func TestCreateProduct(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateProductRequest{Name: "Steel Rods", StockTotal: 120})
	require.NoError(t, err)
	require.Equal(t, int64(1), created.ID)
	require.Equal(t, int64(120), created.StockTotal)
}

func TestCreateProductRequiresName(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateProductRequest{Name: "   "})
	require.True(t, errors.Is(err, shared.ErrValidation))
}

func TestUpdateWarehouseValidatesTarget(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateProductRequest{Name: "Pallet Jack"})
	require.NoError(t, err)

	err = svc.UpdateWarehouse(ctx, created.ID, 9)
	require.True(t, errors.Is(err, shared.ErrNotFound))

	repo.warehouses[9] = true
	require.NoError(t, svc.UpdateWarehouse(ctx, created.ID, 9))
	got, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got.WarehouseID)
	require.Equal(t, int64(9), *got.WarehouseID)
}

func TestUpdateWarehouseMissingProduct(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil, nil)
	err := svc.UpdateWarehouse(context.Background(), 42, 1)
	require.True(t, errors.Is(err, shared.ErrNotFound))
}
