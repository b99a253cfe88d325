package adjustments

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/stockpile-wms/stockpile/internal/shared"
)

// RepositoryPort abstracts repository usage for the service.
type RepositoryPort interface {
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
	List(ctx context.Context) ([]Adjustment, error)
}

// AuditPort abstracts audit logging.
type AuditPort interface {
	Record(ctx context.Context, log shared.AuditLog) error
}

// Service coordinates stock adjustments.
type Service struct {
	repo   RepositoryPort
	audit  AuditPort
	logger *slog.Logger
}

// NewService builds Service.
func NewService(repo RepositoryPort, audit AuditPort, logger *slog.Logger) *Service {
	return &Service{repo: repo, audit: audit, logger: logger}
}

// List returns all adjustments with joined product info.
func (s *Service) List(ctx context.Context) ([]Adjustment, error) {
	return s.repo.List(ctx)
}

// CreateAdjustment records a signed stock correction. The adjustment row and
// the stock delta commit in one transaction. The sign of the amount is what
// changes stock; the type label is derived from it when omitted and must
// agree with it when supplied.
func (s *Service) CreateAdjustment(ctx context.Context, req CreateAdjustmentRequest) (Adjustment, error) {
	if req.ProductID <= 0 {
		return Adjustment{}, fmt.Errorf("a valid product id is required: %w", shared.ErrValidation)
	}
	if req.Amount == 0 {
		return Adjustment{}, fmt.Errorf("amount must be non-zero: %w", shared.ErrValidation)
	}

	adjType, err := resolveType(req.Type, req.Amount)
	if err != nil {
		return Adjustment{}, err
	}

	adj := Adjustment{
		ProductID: req.ProductID,
		Amount:    req.Amount,
		Reason:    strings.TrimSpace(req.Reason),
		Type:      adjType,
		Date:      time.Now(),
	}

	err = s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		id, err := tx.InsertAdjustment(ctx, adj)
		if err != nil {
			return err
		}
		adj.ID = id

		name, newTotal, err := tx.ApplyStock(ctx, adj.ProductID, adj.Amount)
		if err != nil {
			return err
		}
		adj.ProductName = name
		adj.CurrentStock = newTotal
		return nil
	})
	if err != nil {
		return Adjustment{}, err
	}

	if s.audit != nil {
		auditErr := s.audit.Record(ctx, shared.AuditLog{
			ActorID:  shared.ActorFromContext(ctx),
			Action:   "adjustments:create",
			Entity:   "adjustment",
			EntityID: fmt.Sprintf("%d", adj.ID),
			Meta: map[string]any{
				"product_id": adj.ProductID,
				"amount":     adj.Amount,
				"type":       adj.Type,
				"new_total":  adj.CurrentStock,
			},
		})
		if auditErr != nil && s.logger != nil {
			s.logger.Warn("audit record failed", slog.Any("error", auditErr))
		}
	}
	return adj, nil
}

func resolveType(label string, amount int64) (string, error) {
	derived := TypeGain
	if amount < 0 {
		derived = TypeLoss
	}
	switch strings.TrimSpace(label) {
	case "":
		return derived, nil
	case derived:
		return derived, nil
	case TypeGain, TypeLoss:
		return "", fmt.Errorf("type %q contradicts the sign of amount %d: %w", label, amount, shared.ErrValidation)
	default:
		return "", fmt.Errorf("type must be %q or %q: %w", TypeGain, TypeLoss, shared.ErrValidation)
	}
}
