package intake

import (
	"context"
	"fmt"
	"time"

	"gyh/internal/core/clock"
	"gyh/internal/core/id"
	"gyh/internal/core/tx"
	"gyh/internal/domain"
	"gyh/internal/domain/audit"
	"gyh/internal/domain/catalogs/product"
	"gyh/pkg/logger"
)

// NumberPrefix for batch document numbers (ING-2026-00042).
const NumberPrefix = "ING"

// ProductSource resolves products referenced by batch lines.
type ProductSource interface {
	GetByID(ctx context.Context, id id.ID) (*product.Product, error)
}

// LineInput is the entry form of one batch line.
type LineInput struct {
	SupplierName string
	ProductID    id.ID
	TotalKG      float64

	// ConversionFactor overrides the product's factor when set
	ConversionFactor *float64

	CostInput float64
	CostMode  CostMode
}

// CreateInput is the entry form of a batch.
type CreateInput struct {
	// Date defaults to the current business time
	Date    *time.Time
	TruckID string
	Lines   []LineInput
}

// Service provides the intake workflow.
type Service struct {
	repo      Repository
	products  ProductSource
	txManager tx.Manager
	clock     clock.Clock
	numbering Numbering
	audit     audit.Recorder
}

// NewService creates a new intake Service.
func NewService(
	repo Repository,
	products ProductSource,
	txManager tx.Manager,
	clk clock.Clock,
	numbering Numbering,
	auditRec audit.Recorder,
) *Service {
	return &Service{
		repo:      repo,
		products:  products,
		txManager: txManager,
		clock:     clk,
		numbering: numbering,
		audit:     auditRec,
	}
}

// Create records a truck arrival with all its product lines.
func (s *Service) Create(ctx context.Context, input CreateInput) (*Batch, error) {
	truckID, err := NormalizeTruckID(input.TruckID)
	if err != nil {
		return nil, err
	}

	date := s.clock.Now()
	if input.Date != nil {
		date = *input.Date
	}

	batch := NewBatch(date, truckID)

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		number, err := s.numbering.Next(ctx, NumberPrefix, date)
		if err != nil {
			return fmt.Errorf("generate batch number: %w", err)
		}
		batch.Number = number

		if err := s.fillLines(ctx, batch, input.Lines); err != nil {
			return err
		}
		if err := batch.Validate(ctx); err != nil {
			return err
		}
		return s.repo.Create(ctx, batch)
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, audit.Entry{
		EntityType: "intake_batch",
		EntityID:   batch.ID,
		Action:     audit.ActionCreate,
		Payload:    batch,
	})
	logger.Info(ctx, "intake batch created",
		"batch_id", batch.ID.String(),
		"number", batch.Number,
		"truck_id", batch.TruckID,
		"lines", len(batch.Lines),
	)
	return batch, nil
}

// GetByID retrieves a batch with its lines.
func (s *Service) GetByID(ctx context.Context, batchID id.ID) (*Batch, error) {
	return s.repo.GetByID(ctx, batchID)
}

// Update replaces the batch header fields and lines, recalculating costs.
func (s *Service) Update(ctx context.Context, batchID id.ID, input CreateInput) (*Batch, error) {
	truckID, err := NormalizeTruckID(input.TruckID)
	if err != nil {
		return nil, err
	}

	var batch *Batch
	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		batch, err = s.repo.GetByID(ctx, batchID)
		if err != nil {
			return err
		}

		batch.TruckID = truckID
		if input.Date != nil {
			batch.Date = *input.Date
		}
		batch.Lines = nil
		if err := s.fillLines(ctx, batch, input.Lines); err != nil {
			return err
		}
		if err := batch.Validate(ctx); err != nil {
			return err
		}
		batch.Touch()
		return s.repo.Update(ctx, batch)
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, audit.Entry{
		EntityType: "intake_batch",
		EntityID:   batch.ID,
		Action:     audit.ActionUpdate,
		Payload:    batch,
	})
	return batch, nil
}

// Delete removes a batch. The released stock becomes visible to the
// aggregator immediately; past sales are untouched.
func (s *Service) Delete(ctx context.Context, batchID id.ID) error {
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.repo.GetByID(ctx, batchID); err != nil {
			return err
		}
		return s.repo.Delete(ctx, batchID)
	})
	if err != nil {
		return err
	}

	s.audit.Record(ctx, audit.Entry{
		EntityType: "intake_batch",
		EntityID:   batchID,
		Action:     audit.ActionDelete,
	})
	logger.Info(ctx, "intake batch deleted", "batch_id", batchID.String())
	return nil
}

// List retrieves batches matching the filter.
func (s *Service) List(ctx context.Context, filter Filter) (domain.ListResult[*Batch], error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	return s.repo.List(ctx, filter)
}

// fillLines resolves products and calculates costs for every input line.
func (s *Service) fillLines(ctx context.Context, batch *Batch, inputs []LineInput) error {
	for _, in := range inputs {
		p, err := s.products.GetByID(ctx, in.ProductID)
		if err != nil {
			return err
		}

		factor := p.ConversionFactor
		if in.ConversionFactor != nil && *in.ConversionFactor > 0 {
			factor = *in.ConversionFactor
		}

		mode := in.CostMode
		if mode == "" {
			mode = CostModeJava
		}

		costs, err := CalculateLineCosts(in.TotalKG, factor, in.CostInput, mode)
		if err != nil {
			return err
		}

		batch.AddLine(Line{
			ID:               id.New(),
			SupplierName:     in.SupplierName,
			ProductID:        p.ID,
			TotalKG:          in.TotalKG,
			ConversionFactor: factor,
			TotalJavas:       costs.TotalJavas,
			CostPerJava:      costs.CostPerJava,
			TotalCost:        costs.TotalCost,
		})
	}
	return nil
}
