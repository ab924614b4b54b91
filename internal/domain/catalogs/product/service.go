package product

import (
	"context"
	"fmt"

	"gyh/internal/core/apperror"
	"gyh/internal/core/id"
	"gyh/internal/core/tx"
	"gyh/internal/domain"
	"gyh/pkg/logger"
)

// Service provides business logic for the Product catalog.
type Service struct {
	repo      Repository
	txManager tx.Manager
}

// NewService creates a new Product service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{repo: repo, txManager: txManager}
}

// Create validates the product and stores it. Names must be unique.
func (s *Service) Create(ctx context.Context, p *Product) error {
	if err := p.Validate(ctx); err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.checkNameTaken(ctx, p.Name, p.ID); err != nil {
			return err
		}
		if err := s.repo.Create(ctx, p); err != nil {
			return fmt.Errorf("create product: %w", err)
		}
		logger.Info(ctx, "product created", "product_id", p.ID.String(), "name", p.Name)
		return nil
	})
}

// GetByID retrieves a product.
func (s *Service) GetByID(ctx context.Context, productID id.ID) (*Product, error) {
	return s.repo.GetByID(ctx, productID)
}

// Update validates and persists changes with optimistic locking.
func (s *Service) Update(ctx context.Context, p *Product) error {
	if err := p.Validate(ctx); err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.checkNameTaken(ctx, p.Name, p.ID); err != nil {
			return err
		}
		return s.repo.Update(ctx, p)
	})
}

// Delete removes a product. Products already referenced by intake or sale
// lines cannot be removed, the stock history would become unreadable.
func (s *Service) Delete(ctx context.Context, productID id.ID) error {
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		used, err := s.repo.HasMovements(ctx, productID)
		if err != nil {
			return err
		}
		if used {
			return apperror.NewBusinessRule(
				apperror.CodeBusinessRule,
				"Cannot delete a product with recorded intakes or sales",
			).WithDetail("product_id", productID.String())
		}
		return s.repo.Delete(ctx, productID)
	})
}

// List retrieves products with filtering and pagination.
func (s *Service) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Product], error) {
	filter.Normalize()
	return s.repo.List(ctx, filter)
}

func (s *Service) checkNameTaken(ctx context.Context, name string, excludeID id.ID) error {
	existing, err := s.repo.FindByName(ctx, name)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil
		}
		return err
	}
	if existing.ID != excludeID {
		return apperror.NewDuplicate("product", "name", name)
	}
	return nil
}
