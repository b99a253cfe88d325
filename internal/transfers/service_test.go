package transfers

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stockpile-wms/stockpile/internal/shared"
)

type memoryRepo struct {
	transfers  map[int64]Transfer
	warehouses map[int64]int64 // product id -> warehouse id
	nextID     int64
}

type memoryTx struct {
	repo       *memoryRepo
	transfers  map[int64]Transfer
	warehouses map[int64]int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{transfers: map[int64]Transfer{}, warehouses: map[int64]int64{}}
}

func (r *memoryRepo) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	tx := &memoryTx{repo: r, transfers: map[int64]Transfer{}, warehouses: map[int64]int64{}}
	for k, v := range r.transfers {
		tx.transfers[k] = v
	}
	for k, v := range r.warehouses {
		tx.warehouses[k] = v
	}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	r.transfers = tx.transfers
	r.warehouses = tx.warehouses
	return nil
}

func (r *memoryRepo) List(ctx context.Context) ([]Transfer, error) {
	result := []Transfer{}
	for _, t := range r.transfers {
		result = append(result, t)
	}
	return result, nil
}

func (r *memoryRepo) Get(ctx context.Context, id int64) (Transfer, error) {
	t, ok := r.transfers[id]
	if !ok {
		return Transfer{}, fmt.Errorf("transfer %d: %w", id, shared.ErrNotFound)
	}
	return t, nil
}

func (tx *memoryTx) InsertTransfer(ctx context.Context, transfer Transfer) (int64, error) {
	tx.repo.nextID++
	transfer.ID = tx.repo.nextID
	tx.transfers[transfer.ID] = transfer
	return transfer.ID, nil
}

func (tx *memoryTx) GetForUpdate(ctx context.Context, id int64) (Transfer, error) {
	t, ok := tx.transfers[id]
	if !ok {
		return Transfer{}, fmt.Errorf("transfer %d: %w", id, shared.ErrNotFound)
	}
	return t, nil
}

func (tx *memoryTx) SetStatus(ctx context.Context, id int64, status Status) error {
	t := tx.transfers[id]
	t.Status = status
	tx.transfers[id] = t
	return nil
}

func (tx *memoryTx) ReassignWarehouse(ctx context.Context, productID, warehouseID int64) error {
	if _, ok := tx.warehouses[productID]; !ok {
		return fmt.Errorf("product %d: %w", productID, shared.ErrNotFound)
	}
	tx.warehouses[productID] = warehouseID
	return nil
}

func ptr[T any](v T) *T { return &v }

func TestCreateTransferDefaultsToDraft(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil, nil)

	created, err := svc.CreateTransfer(context.Background(), CreateTransferRequest{
		FromLocation: 1,
		ToLocation:   2,
		Description:  ptr("restock east"),
	})
	require.NoError(t, err)
	require.Equal(t, StatusDraft, created.Status)
	require.NotZero(t, created.ID)
}

func TestCreateTransferRequiresLocations(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil, nil)

	_, err := svc.CreateTransfer(context.Background(), CreateTransferRequest{FromLocation: 0, ToLocation: 2})
	require.True(t, errors.Is(err, shared.ErrValidation))

	_, err = svc.CreateTransfer(context.Background(), CreateTransferRequest{FromLocation: 1, ToLocation: 0})
	require.True(t, errors.Is(err, shared.ErrValidation))
}

func TestCreateTransferDoneMovesProduct(t *testing.T) {
	repo := newMemoryRepo()
	repo.warehouses[7] = 1
	svc := NewService(repo, nil, nil)

	created, err := svc.CreateTransfer(context.Background(), CreateTransferRequest{
		FromLocation: 1,
		ToLocation:   2,
		ProductID:    ptr(int64(7)),
		Status:       "done",
	})
	require.NoError(t, err)
	require.Equal(t, StatusDone, created.Status)
	require.Equal(t, int64(2), repo.warehouses[7])
}

func TestUpdateStatusWalksWorkflow(t *testing.T) {
	repo := newMemoryRepo()
	repo.warehouses[7] = 1
	svc := NewService(repo, nil, nil)
	ctx := context.Background()

	created, err := svc.CreateTransfer(ctx, CreateTransferRequest{
		FromLocation: 1,
		ToLocation:   2,
		ProductID:    ptr(int64(7)),
	})
	require.NoError(t, err)

	for _, next := range []string{"waiting", "ready", "done"} {
		updated, err := svc.UpdateStatus(ctx, created.ID, UpdateStatusRequest{Status: next})
		require.NoError(t, err)
		require.Equal(t, Status(next), updated.Status)
	}

	// Done moved the product, atomically with the final transition.
	require.Equal(t, int64(2), repo.warehouses[7])

	// Terminal: nothing follows done.
	_, err = svc.UpdateStatus(ctx, created.ID, UpdateStatusRequest{Status: "cancelled"})
	require.True(t, errors.Is(err, shared.ErrValidation))
}

func TestUpdateStatusRejectsSkippedSteps(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil, nil)
	ctx := context.Background()

	created, err := svc.CreateTransfer(ctx, CreateTransferRequest{FromLocation: 1, ToLocation: 2})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, created.ID, UpdateStatusRequest{Status: "done"})
	require.True(t, errors.Is(err, shared.ErrValidation))
	require.Equal(t, StatusDraft, repo.transfers[created.ID].Status)
}

func TestUpdateStatusCancelFromAnyNonTerminal(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil, nil)
	ctx := context.Background()

	created, err := svc.CreateTransfer(ctx, CreateTransferRequest{FromLocation: 1, ToLocation: 2, Status: "waiting"})
	require.NoError(t, err)

	cancelled, err := svc.UpdateStatus(ctx, created.ID, UpdateStatusRequest{Status: "cancelled"})
	require.NoError(t, err)
	require.Equal(t, StatusCancelled, cancelled.Status)

	_, err = svc.UpdateStatus(ctx, created.ID, UpdateStatusRequest{Status: "ready"})
	require.True(t, errors.Is(err, shared.ErrValidation))
}

func TestUpdateStatusMissingTransfer(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil, nil)

	_, err := svc.UpdateStatus(context.Background(), 42, UpdateStatusRequest{Status: "waiting"})
	require.True(t, errors.Is(err, shared.ErrNotFound))
}

func TestUpdateStatusDoneMissingProductRollsBack(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil, nil)
	ctx := context.Background()

	created, err := svc.CreateTransfer(ctx, CreateTransferRequest{
		FromLocation: 1,
		ToLocation:   2,
		ProductID:    ptr(int64(99)),
		Status:       "ready",
	})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, created.ID, UpdateStatusRequest{Status: "done"})
	require.True(t, errors.Is(err, shared.ErrNotFound))

	// Rollback keeps the status untouched.
	require.Equal(t, StatusReady, repo.transfers[created.ID].Status)
}
