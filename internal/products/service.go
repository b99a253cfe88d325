package products

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/stockpile-wms/stockpile/internal/shared"
)

// AuditPort abstracts audit logging.
type AuditPort interface {
	Record(ctx context.Context, log shared.AuditLog) error
}

// Service coordinates product operations.
type Service struct {
	repo   Repository
	audit  AuditPort
	logger *slog.Logger
}

// NewService builds Service.
func NewService(repo Repository, audit AuditPort, logger *slog.Logger) *Service {
	return &Service{repo: repo, audit: audit, logger: logger}
}

// List returns all products.
func (s *Service) List(ctx context.Context) ([]Product, error) {
	return s.repo.List(ctx)
}

// Create validates and inserts a product.
func (s *Service) Create(ctx context.Context, req CreateProductRequest) (Product, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return Product{}, fmt.Errorf("product name is required: %w", shared.ErrValidation)
	}
	if req.StockTotal < 0 {
		return Product{}, fmt.Errorf("stock_total must not be negative: %w", shared.ErrValidation)
	}
	created, err := s.repo.Create(ctx, Product{
		Name:        name,
		SKU:         req.SKU,
		Category:    req.Category,
		UOM:         req.UOM,
		StockTotal:  req.StockTotal,
		WarehouseID: req.WarehouseID,
	})
	if err != nil {
		return Product{}, err
	}
	s.recordAudit(ctx, "products:create", created.ID, map[string]any{"name": created.Name, "stock_total": created.StockTotal})
	return created, nil
}

// UpdateWarehouse reassigns the product's warehouse after validating both
// rows exist.
func (s *Service) UpdateWarehouse(ctx context.Context, productID, warehouseID int64) error {
	if productID <= 0 || warehouseID <= 0 {
		return fmt.Errorf("product and warehouse are required: %w", shared.ErrValidation)
	}
	if err := s.repo.SetWarehouse(ctx, productID, warehouseID); err != nil {
		return err
	}
	s.recordAudit(ctx, "products:update_warehouse", productID, map[string]any{"warehouse_id": warehouseID})
	return nil
}

func (s *Service) recordAudit(ctx context.Context, action string, productID int64, meta map[string]any) {
	if s.audit == nil {
		return
	}
	err := s.audit.Record(ctx, shared.AuditLog{
		ActorID:  shared.ActorFromContext(ctx),
		Action:   action,
		Entity:   "product",
		EntityID: fmt.Sprintf("%d", productID),
		Meta:     meta,
	})
	if err != nil && s.logger != nil {
		s.logger.Warn("audit record failed", slog.String("action", action), slog.Any("error", err))
	}
}
