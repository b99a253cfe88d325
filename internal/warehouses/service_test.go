package warehouses

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stockpile-wms/stockpile/internal/shared"
)

type memoryRepo struct {
	rows   []Warehouse
	nextID int64
}

func (r *memoryRepo) List(ctx context.Context) ([]Warehouse, error) {
	result := make([]Warehouse, len(r.rows))
	copy(result, r.rows)
	return result, nil
}

func (r *memoryRepo) Create(ctx context.Context, w Warehouse) (Warehouse, error) {
	r.nextID++
	w.ID = r.nextID
	r.rows = append(r.rows, w)
	return w, nil
}

func TestCreateWarehouse(t *testing.T) {
	svc := NewService(&memoryRepo{})
	ctx := context.Background()

	created, err := svc.Create(ctx, "Main DC", "12 Dock Road")
	require.NoError(t, err)
	require.Equal(t, int64(1), created.ID)
	require.Equal(t, "Main DC", created.Name)
}

func TestCreateWarehouseRequiresNameAndAddress(t *testing.T) {
	svc := NewService(&memoryRepo{})
	ctx := context.Background()

	_, err := svc.Create(ctx, "", "12 Dock Road")
	require.True(t, errors.Is(err, shared.ErrValidation))

	_, err = svc.Create(ctx, "Main DC", "   ")
	require.True(t, errors.Is(err, shared.ErrValidation))
}
