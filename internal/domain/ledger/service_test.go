package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gyh/internal/core/apperror"
	"gyh/internal/core/clock"
	"gyh/internal/core/id"
	"gyh/internal/core/types"
	"gyh/internal/domain"
	"gyh/internal/domain/audit"
	"gyh/internal/domain/catalogs/customer"
)

type nopTxManager struct{}

func (nopTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeRepo struct {
	payments []*Payment
}

func (r *fakeRepo) Create(ctx context.Context, p *Payment) error {
	r.payments = append(r.payments, p)
	return nil
}

func (r *fakeRepo) ListByCustomer(ctx context.Context, customerID id.ID, limit, offset int) (domain.ListResult[*Payment], error) {
	var items []*Payment
	for _, p := range r.payments {
		if p.CustomerID == customerID {
			items = append(items, p)
		}
	}
	return domain.ListResult[*Payment]{Items: items, TotalCount: int64(len(items))}, nil
}

type fakeCustomers struct {
	customers map[id.ID]*customer.Customer
}

func (f *fakeCustomers) GetForUpdate(ctx context.Context, customerID id.ID) (*customer.Customer, error) {
	c, ok := f.customers[customerID]
	if !ok {
		return nil, apperror.NewNotFound("customer", customerID.String())
	}
	clone := *c
	return &clone, nil
}

func (f *fakeCustomers) SetDebt(ctx context.Context, customerID id.ID, debt types.Money) error {
	f.customers[customerID].CurrentDebt = debt
	return nil
}

func newTestService(debt types.Money) (*Service, *fakeRepo, *fakeCustomers, id.ID) {
	customerID := id.New()
	customers := &fakeCustomers{customers: map[id.ID]*customer.Customer{
		customerID: {Name: "Don Julio", CurrentDebt: debt},
	}}
	customers.customers[customerID].ID = customerID

	repo := &fakeRepo{}
	clk := clock.Fixed{T: time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)}
	svc := NewService(repo, customers, nopTxManager{}, clk, audit.Noop{})
	return svc, repo, customers, customerID
}

func TestRecordPayment_ReducesDebt(t *testing.T) {
	svc, repo, customers, customerID := newTestService(types.MustMoney("500"))

	p, err := svc.RecordPayment(context.Background(), customerID, types.MustMoney("200"), nil)
	require.NoError(t, err)

	assert.True(t, p.DebtAfter.Equal(types.MustMoney("300")))
	assert.True(t, customers.customers[customerID].CurrentDebt.Equal(types.MustMoney("300")))
	assert.Len(t, repo.payments, 1)
}

func TestRecordPayment_OverpaymentClampsAtZero(t *testing.T) {
	svc, _, customers, customerID := newTestService(types.MustMoney("150"))

	p, err := svc.RecordPayment(context.Background(), customerID, types.MustMoney("400"), nil)
	require.NoError(t, err)

	assert.True(t, p.DebtAfter.IsZero())
	assert.True(t, customers.customers[customerID].CurrentDebt.IsZero())
}

func TestRecordPayment_RejectsNonPositiveAmount(t *testing.T) {
	svc, repo, _, customerID := newTestService(types.MustMoney("100"))

	for _, amount := range []types.Money{types.Zero(), types.MustMoney("-10")} {
		_, err := svc.RecordPayment(context.Background(), customerID, amount, nil)
		require.Error(t, err)

		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeValidation, appErr.Code)
	}
	assert.Empty(t, repo.payments)
}

func TestRecordPayment_UnknownCustomer(t *testing.T) {
	svc, _, _, _ := newTestService(types.Zero())

	_, err := svc.RecordPayment(context.Background(), id.New(), types.MustMoney("10"), nil)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}
