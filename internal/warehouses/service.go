package warehouses

import (
	"context"
	"fmt"
	"strings"

	"github.com/stockpile-wms/stockpile/internal/shared"
)

// Service coordinates warehouse operations.
type Service struct {
	repo Repository
}

// NewService builds Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns all warehouses with product counts.
func (s *Service) List(ctx context.Context) ([]Warehouse, error) {
	return s.repo.List(ctx)
}

// Create validates and inserts a warehouse.
func (s *Service) Create(ctx context.Context, name, address string) (Warehouse, error) {
	name = strings.TrimSpace(name)
	address = strings.TrimSpace(address)
	if name == "" || address == "" {
		return Warehouse{}, fmt.Errorf("name and address are required: %w", shared.ErrValidation)
	}
	return s.repo.Create(ctx, Warehouse{Name: name, Address: address})
}
