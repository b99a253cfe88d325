package transfers

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/stockpile-wms/stockpile/internal/shared"
)

// RepositoryPort abstracts repository usage for the service.
type RepositoryPort interface {
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
	List(ctx context.Context) ([]Transfer, error)
	Get(ctx context.Context, id int64) (Transfer, error)
}

// AuditPort abstracts audit logging.
type AuditPort interface {
	Record(ctx context.Context, log shared.AuditLog) error
}

// Service coordinates warehouse transfers and their workflow.
type Service struct {
	repo   RepositoryPort
	audit  AuditPort
	logger *slog.Logger
}

// NewService builds Service.
func NewService(repo RepositoryPort, audit AuditPort, logger *slog.Logger) *Service {
	return &Service{repo: repo, audit: audit, logger: logger}
}

// List returns all transfers with joined product names.
func (s *Service) List(ctx context.Context) ([]Transfer, error) {
	return s.repo.List(ctx)
}

// CreateTransfer creates a transfer, defaulting to draft. A transfer created
// directly as done with a product attached reassigns that product's warehouse
// on the same transaction as the insert.
func (s *Service) CreateTransfer(ctx context.Context, req CreateTransferRequest) (Transfer, error) {
	if req.FromLocation <= 0 || req.ToLocation <= 0 {
		return Transfer{}, fmt.Errorf("from and to locations are required: %w", shared.ErrValidation)
	}

	status := StatusDraft
	if req.Status != "" {
		parsed, ok := ParseStatus(req.Status)
		if !ok {
			return Transfer{}, fmt.Errorf("unknown status %q: %w", req.Status, shared.ErrValidation)
		}
		status = parsed
	}

	transfer := Transfer{
		FromLocation: req.FromLocation,
		ToLocation:   req.ToLocation,
		Description:  req.Description,
		ProductID:    req.ProductID,
		Status:       status,
	}

	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		id, err := tx.InsertTransfer(ctx, transfer)
		if err != nil {
			return err
		}
		transfer.ID = id

		if status == StatusDone && transfer.ProductID != nil {
			return tx.ReassignWarehouse(ctx, *transfer.ProductID, transfer.ToLocation)
		}
		return nil
	})
	if err != nil {
		return Transfer{}, err
	}

	s.recordAudit(ctx, "transfers:create", transfer.ID, map[string]any{
		"from":   transfer.FromLocation,
		"to":     transfer.ToLocation,
		"status": transfer.Status,
	})
	return s.repo.Get(ctx, transfer.ID)
}

// UpdateStatus transitions a transfer to a new workflow state. The workflow
// advances one step at a time, any non-terminal transfer may be cancelled,
// and done and cancelled are terminal. Moving into done reassigns the
// attached product to the destination warehouse atomically with the status
// change.
func (s *Service) UpdateStatus(ctx context.Context, id int64, req UpdateStatusRequest) (Transfer, error) {
	if id <= 0 {
		return Transfer{}, fmt.Errorf("a valid transfer id is required: %w", shared.ErrValidation)
	}
	next, ok := ParseStatus(req.Status)
	if !ok {
		return Transfer{}, fmt.Errorf("unknown status %q: %w", req.Status, shared.ErrValidation)
	}

	var updated Transfer
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		transfer, err := tx.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if !CanTransition(transfer.Status, next) {
			return fmt.Errorf("transfer cannot move from %s to %s: %w", transfer.Status, next, shared.ErrValidation)
		}
		if err := tx.SetStatus(ctx, id, next); err != nil {
			return err
		}
		if next == StatusDone && transfer.ProductID != nil {
			if err := tx.ReassignWarehouse(ctx, *transfer.ProductID, transfer.ToLocation); err != nil {
				return err
			}
		}
		transfer.Status = next
		updated = transfer
		return nil
	})
	if err != nil {
		return Transfer{}, err
	}

	s.recordAudit(ctx, "transfers:update_status", id, map[string]any{
		"status": next,
	})
	return s.repo.Get(ctx, updated.ID)
}

func (s *Service) recordAudit(ctx context.Context, action string, id int64, meta map[string]any) {
	if s.audit == nil {
		return
	}
	err := s.audit.Record(ctx, shared.AuditLog{
		ActorID:  shared.ActorFromContext(ctx),
		Action:   action,
		Entity:   "transfer",
		EntityID: fmt.Sprintf("%d", id),
		Meta:     meta,
	})
	if err != nil && s.logger != nil {
		s.logger.Warn("audit record failed", slog.Any("error", err))
	}
}
