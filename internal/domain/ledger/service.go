package ledger

import (
	"context"

	"gyh/internal/core/clock"
	appctx "gyh/internal/core/context"
	"gyh/internal/core/id"
	"gyh/internal/core/tx"
	"gyh/internal/core/types"
	"gyh/internal/domain"
	"gyh/internal/domain/audit"
	"gyh/internal/domain/catalogs/customer"
	"gyh/pkg/logger"
)

// CustomerStore is the slice of the customer repository the ledger needs.
type CustomerStore interface {
	GetForUpdate(ctx context.Context, id id.ID) (*customer.Customer, error)
	SetDebt(ctx context.Context, id id.ID, debt types.Money) error
}

// Service provides the payment workflow.
type Service struct {
	repo      Repository
	customers CustomerStore
	txManager tx.Manager
	clock     clock.Clock
	audit     audit.Recorder
}

// NewService creates a new ledger Service.
func NewService(
	repo Repository,
	customers CustomerStore,
	txManager tx.Manager,
	clk clock.Clock,
	auditRec audit.Recorder,
) *Service {
	return &Service{
		repo:      repo,
		customers: customers,
		txManager: txManager,
		clock:     clk,
		audit:     auditRec,
	}
}

// RecordPayment stores a payment and reduces the customer's debt, clamped
// at zero. The customer row lock serializes this against concurrent sales.
func (s *Service) RecordPayment(ctx context.Context, customerID id.ID, amount types.Money, notes *string) (*Payment, error) {
	payment := NewPayment(customerID, amount, s.clock.Now(), notes)
	if err := payment.Validate(ctx); err != nil {
		return nil, err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		cust, err := s.customers.GetForUpdate(ctx, customerID)
		if err != nil {
			return err
		}

		cust.ReduceDebt(amount)
		payment.DebtAfter = cust.CurrentDebt

		if err := s.repo.Create(ctx, payment); err != nil {
			return err
		}
		return s.customers.SetDebt(ctx, cust.ID, cust.CurrentDebt)
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, audit.Entry{
		EntityType: "payment",
		EntityID:   payment.ID,
		Action:     audit.ActionCreate,
		UserID:     appctx.GetUserID(ctx),
		Payload:    payment,
	})
	logger.Info(ctx, "payment recorded",
		"payment_id", payment.ID.String(),
		"customer_id", customerID.String(),
		"amount", amount.String(),
		"debt_after", payment.DebtAfter.String(),
	)
	return payment, nil
}

// ListPayments returns a customer's payment history, newest first.
func (s *Service) ListPayments(ctx context.Context, customerID id.ID, limit, offset int) (domain.ListResult[*Payment], error) {
	if limit <= 0 {
		limit = 50
	}
	return s.repo.ListByCustomer(ctx, customerID, limit, offset)
}
