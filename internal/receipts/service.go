package receipts

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/stockpile-wms/stockpile/internal/shared"
)

// RepositoryPort abstracts repository usage for the service.
type RepositoryPort interface {
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
	List(ctx context.Context) ([]Receipt, error)
}

// AuditPort abstracts audit logging.
type AuditPort interface {
	Record(ctx context.Context, log shared.AuditLog) error
}

// Service coordinates receipt posting.
type Service struct {
	repo   RepositoryPort
	audit  AuditPort
	logger *slog.Logger
}

// NewService builds Service.
func NewService(repo RepositoryPort, audit AuditPort, logger *slog.Logger) *Service {
	return &Service{repo: repo, audit: audit, logger: logger}
}

// List returns all receipts.
func (s *Service) List(ctx context.Context) ([]Receipt, error) {
	return s.repo.List(ctx)
}

// CreateReceipt posts a goods receipt: the receipt row and the stock
// increment commit together or not at all. A missing or ambiguous product
// name rolls the whole transaction back, so the receipt is never observable
// without its stock effect.
func (s *Service) CreateReceipt(ctx context.Context, req CreateReceiptRequest) (Receipt, error) {
	supplier := strings.TrimSpace(req.SupplierName)
	if supplier == "" || req.Quantity <= 0 {
		return Receipt{}, fmt.Errorf("supplier name and a quantity greater than zero are required: %w", shared.ErrValidation)
	}
	productName := NormalizeProductName(req.ProductName)
	if productName == "" {
		return Receipt{}, fmt.Errorf("product name is required: %w", shared.ErrValidation)
	}

	receipt := Receipt{
		ReceiptNumber: newReceiptNumber(),
		SupplierName:  supplier,
		Status:        StatusDone,
		TotalItems:    1,
		TotalQuantity: req.Quantity,
	}

	var newTotal int64
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		id, err := tx.InsertReceipt(ctx, receipt)
		if err != nil {
			return err
		}
		receipt.ID = id

		productID, total, err := tx.ApplyStockByName(ctx, productName, req.Quantity)
		if err != nil {
			return err
		}
		receipt.ProductID = &productID
		newTotal = total

		return tx.SetReceiptProduct(ctx, id, productID)
	})
	if err != nil {
		return Receipt{}, err
	}

	if s.audit != nil {
		auditErr := s.audit.Record(ctx, shared.AuditLog{
			ActorID:  shared.ActorFromContext(ctx),
			Action:   "receipts:create",
			Entity:   "receipt",
			EntityID: receipt.ReceiptNumber,
			Meta: map[string]any{
				"supplier":   supplier,
				"product_id": receipt.ProductID,
				"quantity":   req.Quantity,
				"new_total":  newTotal,
			},
		})
		if auditErr != nil && s.logger != nil {
			s.logger.Warn("audit record failed", slog.Any("error", auditErr))
		}
	}
	return receipt, nil
}

// NormalizeProductName trims and lowercases a product name with the same
// semantics as the storage-side LOWER(TRIM(name)) comparison. Unicode case
// folding is deliberately not used here: folding maps ß to ss while SQL
// LOWER keeps ß, and the two sides must agree.
func NormalizeProductName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// newReceiptNumber keeps the legacy RCPT- prefix and millisecond timestamp
// but appends a random suffix so simultaneous receipts cannot collide.
func newReceiptNumber() string {
	return fmt.Sprintf("RCPT-%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}
