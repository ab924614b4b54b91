// Package stock computes product availability.
// Availability is always derived: intake sums minus sale sums, clamped at
// zero. Writers that deplete stock take product row locks first and consume
// from an in-transaction snapshot, so two concurrent sales cannot both pass
// the same availability check.
package stock

import (
	"context"
	"fmt"
	"sort"

	"gyh/internal/core/apperror"
	"gyh/internal/core/id"
)

// Info is the computed stock position of one product.
type Info struct {
	ProductID        id.ID   `json:"productId"`
	ProductName      string  `json:"productName"`
	ConversionFactor float64 `json:"conversionFactor"`

	TotalIntakeKG    float64 `json:"totalIntakeKg"`
	TotalIntakeJavas float64 `json:"totalIntakeJavas"`
	TotalCost        float64 `json:"totalCost"`

	TotalSoldKG    float64 `json:"totalSoldKg"`
	TotalSoldJavas float64 `json:"totalSoldJavas"`
}

// AvailableKG returns remaining kilograms, clamped at zero.
// Over-selling can leave raw sums negative (historic data, deleted
// intakes); availability never goes below zero.
func (i *Info) AvailableKG() float64 {
	if v := i.TotalIntakeKG - i.TotalSoldKG; v > 0 {
		return v
	}
	return 0
}

// AvailableJavas returns remaining javas, clamped at zero.
func (i *Info) AvailableJavas() float64 {
	if v := i.TotalIntakeJavas - i.TotalSoldJavas; v > 0 {
		return v
	}
	return 0
}

// AverageCostPerJava returns the weighted average intake cost.
func (i *Info) AverageCostPerJava() float64 {
	if i.TotalIntakeJavas > 0 {
		return i.TotalCost / i.TotalIntakeJavas
	}
	return 0
}

func infoFromTurnover(t Turnover) *Info {
	return &Info{
		ProductID:        t.ProductID,
		ProductName:      t.ProductName,
		ConversionFactor: t.ConversionFactor,
		TotalIntakeKG:    t.IntakeKG,
		TotalIntakeJavas: t.IntakeJavas,
		TotalCost:        t.IntakeCost,
		TotalSoldKG:      t.SoldKG,
		TotalSoldJavas:   t.SoldJavas,
	}
}

// Service provides stock computations.
type Service struct {
	repo Repository
}

// NewService creates a new stock Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ComputeAll returns the stock position of every product.
func (s *Service) ComputeAll(ctx context.Context) ([]*Info, error) {
	turnovers, err := s.repo.ListTurnovers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list turnovers: %w", err)
	}

	infos := make([]*Info, 0, len(turnovers))
	for _, t := range turnovers {
		infos = append(infos, infoFromTurnover(t))
	}
	return infos, nil
}

// Get returns the stock position of one product.
func (s *Service) Get(ctx context.Context, productID id.ID) (*Info, error) {
	t, err := s.repo.GetTurnover(ctx, productID)
	if err != nil {
		return nil, err
	}
	return infoFromTurnover(*t), nil
}

// TotalExpectedJavas sums available javas across all products.
// Used by inventory snapshots as the system-expected count.
func (s *Service) TotalExpectedJavas(ctx context.Context) (float64, error) {
	infos, err := s.ComputeAll(ctx)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, info := range infos {
		total += info.AvailableJavas()
	}
	return total, nil
}

// SnapshotForUpdate locks the given product rows and returns their stock
// positions as a consumable snapshot. Must run inside a transaction: the
// locks and the consistency of the aggregation depend on it.
func (s *Service) SnapshotForUpdate(ctx context.Context, productIDs []id.ID) (*Snapshot, error) {
	unique := make([]id.ID, 0, len(productIDs))
	seen := make(map[id.ID]struct{}, len(productIDs))
	for _, pid := range productIDs {
		if _, ok := seen[pid]; ok {
			continue
		}
		seen[pid] = struct{}{}
		unique = append(unique, pid)
	}
	sort.Slice(unique, func(i, j int) bool {
		return unique[i].String() < unique[j].String()
	})

	if err := s.repo.LockProducts(ctx, unique); err != nil {
		return nil, fmt.Errorf("lock products: %w", err)
	}

	infos := make([]*Info, 0, len(unique))
	for _, pid := range unique {
		t, err := s.repo.GetTurnover(ctx, pid)
		if err != nil {
			return nil, err
		}
		infos = append(infos, infoFromTurnover(*t))
	}
	return NewSnapshot(infos), nil
}

// Snapshot is a running in-transaction stock view. Consuming from it
// depletes the balance so a multi-line sale cannot pass each line
// individually while exceeding stock in total.
type Snapshot struct {
	items map[id.ID]*Info
}

// NewSnapshot builds a snapshot from precomputed positions.
func NewSnapshot(infos []*Info) *Snapshot {
	items := make(map[id.ID]*Info, len(infos))
	for _, info := range infos {
		items[info.ProductID] = info
	}
	return &Snapshot{items: items}
}

// Get returns the snapshot position for a product, or nil if the product
// was not part of the snapshot.
func (sn *Snapshot) Get(productID id.ID) *Info {
	return sn.items[productID]
}

// Consume depletes kg and javas from the product's running balance.
// Returns an insufficient-stock error naming the product when the
// balance cannot cover the request.
func (sn *Snapshot) Consume(productID id.ID, kg, javas float64) error {
	info, ok := sn.items[productID]
	if !ok {
		return apperror.NewNotFound("product", productID.String())
	}
	if kg > info.AvailableKG() {
		return apperror.NewInsufficientStock(info.ProductName, info.AvailableKG(), kg)
	}
	info.TotalSoldKG += kg
	info.TotalSoldJavas += javas
	return nil
}
