// Package inventory provides physical count reconciliation.
// A snapshot freezes the difference between the javas counted in the
// warehouse and what the stock aggregation expects at that moment.
package inventory

import (
	"context"
	"time"

	"gyh/internal/core/apperror"
	"gyh/internal/core/clock"
	"gyh/internal/core/entity"
	"gyh/internal/core/tx"
	"gyh/internal/domain"
	"gyh/pkg/logger"
)

// Snapshot is one reconciliation record.
type Snapshot struct {
	entity.BaseEntity

	Date time.Time `db:"date" json:"date"`

	// PhysicalCount is the counted javas
	PhysicalCount float64 `db:"physical_count" json:"physicalCount"`

	// SystemExpected is the aggregated available javas at snapshot time
	SystemExpected float64 `db:"system_expected" json:"systemExpected"`

	// Difference is physical minus expected (negative means shrinkage)
	Difference float64 `db:"difference" json:"difference"`
}

// Repository defines the interface for Snapshot persistence.
type Repository interface {
	Create(ctx context.Context, s *Snapshot) error
	List(ctx context.Context, limit, offset int) (domain.ListResult[*Snapshot], error)
}

// StockTotals provides the system-expected java count.
type StockTotals interface {
	TotalExpectedJavas(ctx context.Context) (float64, error)
}

// Service provides the snapshot workflow.
type Service struct {
	repo      Repository
	stock     StockTotals
	txManager tx.Manager
	clock     clock.Clock
}

// NewService creates a new inventory Service.
func NewService(repo Repository, stock StockTotals, txManager tx.Manager, clk clock.Clock) *Service {
	return &Service{repo: repo, stock: stock, txManager: txManager, clock: clk}
}

// Create records a reconciliation against the current system expectation.
func (s *Service) Create(ctx context.Context, physicalCount float64) (*Snapshot, error) {
	if physicalCount < 0 {
		return nil, apperror.NewFieldValidation("physicalCount", "physical count cannot be negative")
	}

	snapshot := &Snapshot{
		BaseEntity:    entity.NewBaseEntity(),
		Date:          s.clock.Now(),
		PhysicalCount: physicalCount,
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		expected, err := s.stock.TotalExpectedJavas(ctx)
		if err != nil {
			return err
		}
		snapshot.SystemExpected = expected
		snapshot.Difference = physicalCount - expected
		return s.repo.Create(ctx, snapshot)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "inventory snapshot recorded",
		"snapshot_id", snapshot.ID.String(),
		"physical", snapshot.PhysicalCount,
		"expected", snapshot.SystemExpected,
		"difference", snapshot.Difference,
	)
	return snapshot, nil
}

// List returns snapshots, newest first.
func (s *Service) List(ctx context.Context, limit, offset int) (domain.ListResult[*Snapshot], error) {
	if limit <= 0 {
		limit = 50
	}
	return s.repo.List(ctx, limit, offset)
}
