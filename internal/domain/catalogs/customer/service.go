package customer

import (
	"context"
	"fmt"

	"gyh/internal/core/apperror"
	"gyh/internal/core/id"
	"gyh/internal/core/tx"
	"gyh/internal/domain"
	"gyh/pkg/logger"
)

// Service provides business logic for the Customer catalog.
type Service struct {
	repo      Repository
	txManager tx.Manager
}

// NewService creates a new Customer service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{repo: repo, txManager: txManager}
}

// Create validates the customer and stores it.
func (s *Service) Create(ctx context.Context, c *Customer) error {
	if err := c.Validate(ctx); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return fmt.Errorf("create customer: %w", err)
	}
	logger.Info(ctx, "customer created", "customer_id", c.ID.String(), "name", c.Name)
	return nil
}

// GetByID retrieves a customer.
func (s *Service) GetByID(ctx context.Context, customerID id.ID) (*Customer, error) {
	return s.repo.GetByID(ctx, customerID)
}

// Update persists catalog field changes with optimistic locking.
// Debt is not updatable through the catalog API; it moves only through
// sales and payments.
func (s *Service) Update(ctx context.Context, c *Customer) error {
	if err := c.Validate(ctx); err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		current, err := s.repo.GetByID(ctx, c.ID)
		if err != nil {
			return err
		}
		c.CurrentDebt = current.CurrentDebt
		return s.repo.Update(ctx, c)
	})
}

// Delete removes a customer without outstanding debt.
func (s *Service) Delete(ctx context.Context, customerID id.ID) error {
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		c, err := s.repo.GetForUpdate(ctx, customerID)
		if err != nil {
			return err
		}
		if c.HasDebt() {
			return apperror.NewBusinessRule(
				apperror.CodeBusinessRule,
				"Cannot delete a customer with outstanding debt",
			).WithDetail("customer_id", customerID.String()).
				WithDetail("current_debt", c.CurrentDebt.String())
		}
		return s.repo.Delete(ctx, customerID)
	})
}

// List retrieves customers with filtering and pagination.
func (s *Service) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Customer], error) {
	filter.Normalize()
	return s.repo.List(ctx, filter)
}
