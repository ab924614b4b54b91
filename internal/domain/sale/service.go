package sale

import (
	"context"
	"fmt"

	"gyh/internal/core/apperror"
	"gyh/internal/core/clock"
	appctx "gyh/internal/core/context"
	"gyh/internal/core/id"
	"gyh/internal/core/tx"
	"gyh/internal/core/types"
	"gyh/internal/domain"
	"gyh/internal/domain/audit"
	"gyh/internal/domain/catalogs/customer"
	"gyh/internal/domain/notify"
	"gyh/internal/domain/stock"
	"gyh/pkg/logger"
)

// NumberPrefix for sale document numbers (VEN-2026-00042).
const NumberPrefix = "VEN"

// CustomerStore is the slice of the customer repository the sale
// workflow needs for debt bookkeeping.
type CustomerStore interface {
	GetForUpdate(ctx context.Context, id id.ID) (*customer.Customer, error)
	SetDebt(ctx context.Context, id id.ID, debt types.Money) error
}

// StockSource provides lock-and-consume stock snapshots.
type StockSource interface {
	SnapshotForUpdate(ctx context.Context, productIDs []id.ID) (*stock.Snapshot, error)
}

// LineInput is the entry form of one sale line.
type LineInput struct {
	ProductID  id.ID
	QuantityKG float64

	// ConversionFactor overrides the product's factor when set
	ConversionFactor *float64

	PricePerKG types.Money
}

// CreateInput is the entry form of a sale.
type CreateInput struct {
	Type       Type
	CustomerID *id.ID
	Lines      []LineInput
}

// UpdateInput replaces the lines and optionally moves the sale to
// another customer. The sale type is immutable.
type UpdateInput struct {
	CustomerID *id.ID
	Lines      []LineInput
}

// Service provides the sale workflow.
type Service struct {
	repo      Repository
	customers CustomerStore
	stock     StockSource
	txManager tx.Manager
	clock     clock.Clock
	numbering Numbering
	audit     audit.Recorder
	notifier  notify.Notifier
}

// NewService creates a new sale Service.
func NewService(
	repo Repository,
	customers CustomerStore,
	stockSource StockSource,
	txManager tx.Manager,
	clk clock.Clock,
	numbering Numbering,
	auditRec audit.Recorder,
	notifier notify.Notifier,
) *Service {
	return &Service{
		repo:      repo,
		customers: customers,
		stock:     stockSource,
		txManager: txManager,
		clock:     clk,
		numbering: numbering,
		audit:     auditRec,
		notifier:  notifier,
	}
}

// Create records a sale. Stock is checked line by line against a running
// snapshot under product row locks; any shortage aborts the whole sale.
// Credit sales add the total to the customer's debt in the same transaction.
func (s *Service) Create(ctx context.Context, input CreateInput) (*Sale, error) {
	if !input.Type.Valid() {
		return nil, apperror.NewFieldValidation("type", "sale type must be CASH or CREDIT")
	}
	if len(input.Lines) == 0 {
		return nil, apperror.NewValidation("sale must have at least one line")
	}
	if input.Type == TypeCredit && input.CustomerID == nil {
		return nil, apperror.NewFieldValidation("customerId", "credit sales require a customer")
	}

	userID := appctx.GetUserID(ctx)
	sale := NewSale(s.clock.Now(), input.Type, userID, input.CustomerID)

	var cust *customer.Customer
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		// Customer lock comes first, then product locks, always in that
		// order so concurrent writers cannot deadlock.
		if input.CustomerID != nil {
			cust, err = s.customers.GetForUpdate(ctx, *input.CustomerID)
			if err != nil {
				return err
			}
		}

		if err := s.fillLines(ctx, sale, input.Lines); err != nil {
			return err
		}

		number, err := s.numbering.Next(ctx, NumberPrefix, sale.Date)
		if err != nil {
			return fmt.Errorf("generate sale number: %w", err)
		}
		sale.Number = number

		if err := sale.Validate(ctx); err != nil {
			return err
		}
		if err := s.repo.Create(ctx, sale); err != nil {
			return err
		}

		if sale.IsCredit() {
			cust.AddDebt(sale.TotalAmount)
			if err := s.customers.SetDebt(ctx, cust.ID, cust.CurrentDebt); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, audit.Entry{
		EntityType: "sale",
		EntityID:   sale.ID,
		Action:     audit.ActionCreate,
		UserID:     userID,
		Payload:    sale,
	})
	logger.Info(ctx, "sale created",
		"sale_id", sale.ID.String(),
		"number", sale.Number,
		"type", string(sale.Type),
		"total", sale.TotalAmount.String(),
	)

	s.notifySaleCreated(ctx, sale, cust)
	return sale, nil
}

// GetByID retrieves a sale with its lines.
func (s *Service) GetByID(ctx context.Context, saleID id.ID) (*Sale, error) {
	return s.repo.GetByID(ctx, saleID)
}

// Update replaces the sale's lines, reversing the old effects first:
// the old debt comes off the old customer (clamped at zero) and the old
// lines are deleted before the new ones are validated, so stock they
// held is available again for the replacement lines.
func (s *Service) Update(ctx context.Context, saleID id.ID, input UpdateInput) (*Sale, error) {
	var sale *Sale
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		sale, err = s.repo.GetByID(ctx, saleID)
		if err != nil {
			return err
		}
		if err := s.ensureCanModify(ctx, sale); err != nil {
			return err
		}
		if sale.IsCredit() && input.CustomerID == nil {
			return apperror.NewFieldValidation("customerId", "credit sales require a customer")
		}
		if len(input.Lines) == 0 {
			return apperror.NewValidation("sale must have at least one line")
		}

		// Reverse old debt.
		if sale.IsCredit() && sale.CustomerID != nil {
			oldCust, err := s.customers.GetForUpdate(ctx, *sale.CustomerID)
			if err != nil {
				return err
			}
			oldCust.ReduceDebt(sale.TotalAmount)
			if err := s.customers.SetDebt(ctx, oldCust.ID, oldCust.CurrentDebt); err != nil {
				return err
			}
		}

		var newCust *customer.Customer
		if input.CustomerID != nil {
			newCust, err = s.customers.GetForUpdate(ctx, *input.CustomerID)
			if err != nil {
				return err
			}
		}

		// Release old stock before revalidating the new lines.
		if err := s.repo.DeleteLines(ctx, saleID); err != nil {
			return err
		}

		sale.CustomerID = input.CustomerID
		sale.Date = s.clock.Now()
		sale.Lines = nil
		sale.TotalAmount = types.Zero()
		if err := s.fillLines(ctx, sale, input.Lines); err != nil {
			return err
		}
		if err := sale.Validate(ctx); err != nil {
			return err
		}
		sale.Touch()
		if err := s.repo.Update(ctx, sale); err != nil {
			return err
		}

		if sale.IsCredit() {
			newCust.AddDebt(sale.TotalAmount)
			if err := s.customers.SetDebt(ctx, newCust.ID, newCust.CurrentDebt); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, audit.Entry{
		EntityType: "sale",
		EntityID:   sale.ID,
		Action:     audit.ActionUpdate,
		UserID:     appctx.GetUserID(ctx),
		Payload:    sale,
	})
	return sale, nil
}

// Delete removes a sale, reversing debt for credit sales (clamped at zero).
func (s *Service) Delete(ctx context.Context, saleID id.ID) error {
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		sale, err := s.repo.GetByID(ctx, saleID)
		if err != nil {
			return err
		}
		if err := s.ensureCanModify(ctx, sale); err != nil {
			return err
		}

		if sale.IsCredit() && sale.CustomerID != nil {
			cust, err := s.customers.GetForUpdate(ctx, *sale.CustomerID)
			if err != nil {
				return err
			}
			cust.ReduceDebt(sale.TotalAmount)
			if err := s.customers.SetDebt(ctx, cust.ID, cust.CurrentDebt); err != nil {
				return err
			}
		}
		return s.repo.Delete(ctx, saleID)
	})
	if err != nil {
		return err
	}

	s.audit.Record(ctx, audit.Entry{
		EntityType: "sale",
		EntityID:   saleID,
		Action:     audit.ActionDelete,
		UserID:     appctx.GetUserID(ctx),
	})
	logger.Info(ctx, "sale deleted", "sale_id", saleID.String())
	return nil
}

// MarkPrinted flags the sale's receipt as produced.
func (s *Service) MarkPrinted(ctx context.Context, saleID id.ID) error {
	if _, err := s.repo.GetByID(ctx, saleID); err != nil {
		return err
	}
	return s.repo.SetPrinted(ctx, saleID, true)
}

// List retrieves sales matching the filter. Sellers see only their own
// sales; admins see everything.
func (s *Service) List(ctx context.Context, filter Filter) (domain.ListResult[*Sale], error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	if u := appctx.GetUser(ctx); u != nil && !u.IsAdmin() {
		filter.UserID = &u.UserID
	}
	return s.repo.List(ctx, filter)
}

// ensureCanModify enforces the edit window: admins always, sellers only
// their own sales and only on the business day they were created.
func (s *Service) ensureCanModify(ctx context.Context, sale *Sale) error {
	u := appctx.GetUser(ctx)
	if u == nil || u.IsAdmin() {
		return nil
	}
	if sale.UserID != u.UserID {
		return apperror.NewForbidden("you can only modify your own sales")
	}
	now := s.clock.Now()
	if !clock.SameBusinessDay(sale.Date, now, now.Location()) {
		return apperror.NewForbidden("sales can only be modified on the day they were created")
	}
	return nil
}

// fillLines snapshots stock for all referenced products and consumes it
// line by line in input order.
func (s *Service) fillLines(ctx context.Context, sale *Sale, inputs []LineInput) error {
	productIDs := make([]id.ID, 0, len(inputs))
	for _, in := range inputs {
		if id.IsNil(in.ProductID) {
			return apperror.NewFieldValidation("productId", "product is required")
		}
		productIDs = append(productIDs, in.ProductID)
	}

	snapshot, err := s.stock.SnapshotForUpdate(ctx, productIDs)
	if err != nil {
		return err
	}

	for _, in := range inputs {
		info := snapshot.Get(in.ProductID)
		if info == nil {
			return apperror.NewNotFound("product", in.ProductID.String())
		}

		factor := info.ConversionFactor
		if in.ConversionFactor != nil && *in.ConversionFactor > 0 {
			factor = *in.ConversionFactor
		}

		calc, err := CalculateLine(in.QuantityKG, factor, in.PricePerKG)
		if err != nil {
			return err
		}
		if err := snapshot.Consume(in.ProductID, in.QuantityKG, calc.QuantityJavas); err != nil {
			return err
		}

		sale.AddLine(Line{
			ID:               id.New(),
			ProductID:        in.ProductID,
			QuantityKG:       in.QuantityKG,
			ConversionFactor: factor,
			QuantityJavas:    calc.QuantityJavas,
			PricePerKG:       in.PricePerKG,
			Subtotal:         calc.Subtotal,
		})
	}
	return nil
}

// notifySaleCreated fires the outbound hook for credit sales.
// Failures are logged and swallowed.
func (s *Service) notifySaleCreated(ctx context.Context, sale *Sale, cust *customer.Customer) {
	if !sale.IsCredit() || cust == nil || cust.WhatsappNumber == nil || *cust.WhatsappNumber == "" {
		return
	}
	notice := notify.SaleNotice{
		SaleID:         sale.ID,
		Number:         sale.Number,
		CustomerName:   cust.Name,
		WhatsappNumber: *cust.WhatsappNumber,
		TotalAmount:    sale.TotalAmount,
	}
	if err := s.notifier.SaleCreated(ctx, notice); err != nil {
		logger.Warn(ctx, "sale notification failed",
			"sale_id", sale.ID.String(),
			"error", err,
		)
	}
}
