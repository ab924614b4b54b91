package stock

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gyh/internal/core/apperror"
	"gyh/internal/core/id"
)

type fakeRepo struct {
	turnovers map[id.ID]Turnover
	locked    []id.ID
}

func (r *fakeRepo) ListTurnovers(ctx context.Context) ([]Turnover, error) {
	var out []Turnover
	for _, t := range r.turnovers {
		out = append(out, t)
	}
	return out, nil
}

func (r *fakeRepo) GetTurnover(ctx context.Context, productID id.ID) (*Turnover, error) {
	t, ok := r.turnovers[productID]
	if !ok {
		return nil, apperror.NewNotFound("product", productID.String())
	}
	return &t, nil
}

func (r *fakeRepo) LockProducts(ctx context.Context, productIDs []id.ID) error {
	r.locked = append(r.locked, productIDs...)
	return nil
}

func TestInfo_Availability(t *testing.T) {
	info := &Info{
		TotalIntakeKG:    100,
		TotalIntakeJavas: 5,
		TotalCost:        250,
		TotalSoldKG:      60,
		TotalSoldJavas:   3,
	}

	assert.InDelta(t, 40.0, info.AvailableKG(), 1e-9)
	assert.InDelta(t, 2.0, info.AvailableJavas(), 1e-9)
	assert.InDelta(t, 50.0, info.AverageCostPerJava(), 1e-9)
}

func TestInfo_AvailabilityClampsAtZero(t *testing.T) {
	// Sold more than ever came in (deleted intake with sales kept).
	info := &Info{
		TotalIntakeKG:    50,
		TotalIntakeJavas: 2.5,
		TotalSoldKG:      80,
		TotalSoldJavas:   4,
	}

	assert.Equal(t, 0.0, info.AvailableKG())
	assert.Equal(t, 0.0, info.AvailableJavas())
}

func TestInfo_AverageCostZeroWithoutIntake(t *testing.T) {
	info := &Info{}
	assert.Equal(t, 0.0, info.AverageCostPerJava())
}

func TestService_Get_NotFound(t *testing.T) {
	svc := NewService(&fakeRepo{turnovers: map[id.ID]Turnover{}})

	_, err := svc.Get(context.Background(), id.New())
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestService_SnapshotForUpdate_DeduplicatesAndLocks(t *testing.T) {
	pid := id.New()
	repo := &fakeRepo{turnovers: map[id.ID]Turnover{
		pid: {ProductID: pid, ProductName: "Kion", ConversionFactor: 20, IntakeKG: 100, IntakeJavas: 5},
	}}
	svc := NewService(repo)

	snapshot, err := svc.SnapshotForUpdate(context.Background(), []id.ID{pid, pid, pid})
	require.NoError(t, err)

	assert.Len(t, repo.locked, 1, "duplicate ids must lock once")
	require.NotNil(t, snapshot.Get(pid))
}

func TestSnapshot_ConsumeDepletes(t *testing.T) {
	pid := id.New()
	snapshot := NewSnapshot([]*Info{{
		ProductID:        pid,
		ProductName:      "Kion Primera",
		ConversionFactor: 20,
		TotalIntakeKG:    100,
		TotalIntakeJavas: 5,
	}})

	require.NoError(t, snapshot.Consume(pid, 60, 3))

	err := snapshot.Consume(pid, 60, 3)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInsufficientStock, appErr.Code)
	assert.Equal(t, "Kion Primera", appErr.Details["product_name"])
	assert.Equal(t, 40.0, appErr.Details["available_kg"])
	assert.Equal(t, 60.0, appErr.Details["requested_kg"])
}

func TestService_TotalExpectedJavas(t *testing.T) {
	a, b := id.New(), id.New()
	repo := &fakeRepo{turnovers: map[id.ID]Turnover{
		a: {ProductID: a, IntakeJavas: 5, SoldJavas: 2},
		b: {ProductID: b, IntakeJavas: 3, SoldJavas: 4}, // clamps to 0
	}}
	svc := NewService(repo)

	total, err := svc.TotalExpectedJavas(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 3.0, total, 1e-9)
}
