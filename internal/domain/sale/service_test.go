package sale

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gyh/internal/core/apperror"
	"gyh/internal/core/clock"
	appctx "gyh/internal/core/context"
	"gyh/internal/core/id"
	"gyh/internal/core/types"
	"gyh/internal/domain"
	"gyh/internal/domain/audit"
	"gyh/internal/domain/catalogs/customer"
	"gyh/internal/domain/notify"
	"gyh/internal/domain/stock"
)

// --- fakes ---

type nopTxManager struct{}

func (nopTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeRepo struct {
	sales map[id.ID]*Sale
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{sales: make(map[id.ID]*Sale)}
}

func cloneSale(s *Sale) *Sale {
	c := *s
	c.Lines = append([]Line(nil), s.Lines...)
	return &c
}

func (r *fakeRepo) Create(ctx context.Context, s *Sale) error {
	r.sales[s.ID] = cloneSale(s)
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, saleID id.ID) (*Sale, error) {
	s, ok := r.sales[saleID]
	if !ok {
		return nil, apperror.NewNotFound("sale", saleID.String())
	}
	return cloneSale(s), nil
}

func (r *fakeRepo) Update(ctx context.Context, s *Sale) error {
	if _, ok := r.sales[s.ID]; !ok {
		return apperror.NewNotFound("sale", s.ID.String())
	}
	r.sales[s.ID] = cloneSale(s)
	return nil
}

func (r *fakeRepo) DeleteLines(ctx context.Context, saleID id.ID) error {
	if s, ok := r.sales[saleID]; ok {
		s.Lines = nil
	}
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, saleID id.ID) error {
	delete(r.sales, saleID)
	return nil
}

func (r *fakeRepo) SetPrinted(ctx context.Context, saleID id.ID, printed bool) error {
	s, ok := r.sales[saleID]
	if !ok {
		return apperror.NewNotFound("sale", saleID.String())
	}
	s.Printed = printed
	return nil
}

func (r *fakeRepo) List(ctx context.Context, filter Filter) (domain.ListResult[*Sale], error) {
	var items []*Sale
	for _, s := range r.sales {
		if filter.UserID != nil && s.UserID != *filter.UserID {
			continue
		}
		items = append(items, cloneSale(s))
	}
	return domain.ListResult[*Sale]{Items: items, TotalCount: int64(len(items))}, nil
}

func (r *fakeRepo) soldKG(productID id.ID) (kg, javas float64) {
	for _, s := range r.sales {
		for _, line := range s.Lines {
			if line.ProductID == productID {
				kg += line.QuantityKG
				javas += line.QuantityJavas
			}
		}
	}
	return kg, javas
}

type stockPos struct {
	name   string
	factor float64
	kg     float64
	javas  float64
}

// fakeStock recomputes availability from intake positions minus the lines
// currently held in the repo, mirroring the aggregation queries.
type fakeStock struct {
	repo   *fakeRepo
	intake map[id.ID]stockPos
}

func (f *fakeStock) SnapshotForUpdate(ctx context.Context, productIDs []id.ID) (*stock.Snapshot, error) {
	var infos []*stock.Info
	for _, pid := range productIDs {
		pos, ok := f.intake[pid]
		if !ok {
			return nil, apperror.NewNotFound("product", pid.String())
		}
		soldKG, soldJavas := f.repo.soldKG(pid)
		infos = append(infos, &stock.Info{
			ProductID:        pid,
			ProductName:      pos.name,
			ConversionFactor: pos.factor,
			TotalIntakeKG:    pos.kg,
			TotalIntakeJavas: pos.javas,
			TotalSoldKG:      soldKG,
			TotalSoldJavas:   soldJavas,
		})
	}
	return stock.NewSnapshot(infos), nil
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
	c, ok := f.customers[customerID]
	if !ok {
		return apperror.NewNotFound("customer", customerID.String())
	}
	c.CurrentDebt = debt
	return nil
}

type fakeNumbering struct {
	n int
}

func (f *fakeNumbering) Next(ctx context.Context, prefix string, period time.Time) (string, error) {
	f.n++
	return fmt.Sprintf("%s-%d-%05d", prefix, period.Year(), f.n), nil
}

type captureNotifier struct {
	notices []notify.SaleNotice
}

func (c *captureNotifier) SaleCreated(ctx context.Context, n notify.SaleNotice) error {
	c.notices = append(c.notices, n)
	return nil
}

// --- harness ---

type env struct {
	svc       *Service
	repo      *fakeRepo
	stock     *fakeStock
	customers *fakeCustomers
	notifier  *captureNotifier
	clock     clock.Fixed

	productID  id.ID
	customerID id.ID
	adminID    id.ID
	sellerID   id.ID
}

func newEnv(t *testing.T) *env {
	t.Helper()

	repo := newFakeRepo()
	productID := id.New()
	st := &fakeStock{
		repo: repo,
		intake: map[id.ID]stockPos{
			productID: {name: "Kion Primera", factor: 20, kg: 100, javas: 5},
		},
	}

	customerID := id.New()
	wa := "+51999888777"
	customers := &fakeCustomers{customers: map[id.ID]*customer.Customer{
		customerID: {Name: "Don Julio", WhatsappNumber: &wa, CurrentDebt: types.Zero()},
	}}
	customers.customers[customerID].ID = customerID

	notifier := &captureNotifier{}
	lima, err := time.LoadLocation("America/Lima")
	require.NoError(t, err)
	clk := clock.Fixed{T: time.Date(2026, 3, 14, 10, 0, 0, 0, lima)}

	e := &env{
		repo:       repo,
		stock:      st,
		customers:  customers,
		notifier:   notifier,
		clock:      clk,
		productID:  productID,
		customerID: customerID,
		adminID:    id.New(),
		sellerID:   id.New(),
	}
	e.svc = NewService(repo, customers, st, nopTxManager{}, clk, &fakeNumbering{}, audit.Noop{}, notifier)
	return e
}

func (e *env) adminCtx() context.Context {
	return appctx.WithUser(context.Background(), &appctx.UserContext{
		UserID: e.adminID, Username: "admin", Role: appctx.RoleAdmin,
	})
}

func (e *env) sellerCtx() context.Context {
	return appctx.WithUser(context.Background(), &appctx.UserContext{
		UserID: e.sellerID, Username: "maria", Role: appctx.RoleSeller,
	})
}

// --- tests ---

func TestService_Create_CashSale(t *testing.T) {
	e := newEnv(t)

	sale, err := e.svc.Create(e.adminCtx(), CreateInput{
		Type: TypeCash,
		Lines: []LineInput{
			{ProductID: e.productID, QuantityKG: 50, PricePerKG: types.NewMoney(10)},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, TypeCash, sale.Type)
	assert.Equal(t, "VEN-2026-00001", sale.Number)
	assert.True(t, sale.TotalAmount.Equal(types.MustMoney("500")))
	require.Len(t, sale.Lines, 1)
	assert.InDelta(t, 2.5, sale.Lines[0].QuantityJavas, 1e-9)
	assert.Empty(t, e.notifier.notices, "cash sales do not notify")
}

func TestService_Create_InsufficientStock(t *testing.T) {
	e := newEnv(t)

	_, err := e.svc.Create(e.adminCtx(), CreateInput{
		Type: TypeCash,
		Lines: []LineInput{
			{ProductID: e.productID, QuantityKG: 150, PricePerKG: types.NewMoney(10)},
		},
	})
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInsufficientStock, appErr.Code)
	assert.Equal(t, "Kion Primera", appErr.Details["product_name"])
	assert.Equal(t, 100.0, appErr.Details["available_kg"])
	assert.Equal(t, 150.0, appErr.Details["requested_kg"])
}

func TestService_Create_MultiLineDepletesSnapshot(t *testing.T) {
	e := newEnv(t)

	// 100 kg available; each line passes alone, together they exceed stock.
	_, err := e.svc.Create(e.adminCtx(), CreateInput{
		Type: TypeCash,
		Lines: []LineInput{
			{ProductID: e.productID, QuantityKG: 60, PricePerKG: types.NewMoney(10)},
			{ProductID: e.productID, QuantityKG: 60, PricePerKG: types.NewMoney(10)},
		},
	})
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInsufficientStock, appErr.Code)
	assert.Equal(t, 40.0, appErr.Details["available_kg"])

	// Nothing was persisted.
	assert.Empty(t, e.repo.sales)
}

func TestService_Create_CreditSaleAddsDebt(t *testing.T) {
	e := newEnv(t)

	sale, err := e.svc.Create(e.adminCtx(), CreateInput{
		Type:       TypeCredit,
		CustomerID: &e.customerID,
		Lines: []LineInput{
			{ProductID: e.productID, QuantityKG: 50, PricePerKG: types.NewMoney(10)},
		},
	})
	require.NoError(t, err)

	debt := e.customers.customers[e.customerID].CurrentDebt
	assert.True(t, debt.Equal(types.MustMoney("500")), "debt = %s", debt)

	require.Len(t, e.notifier.notices, 1)
	assert.Equal(t, sale.ID, e.notifier.notices[0].SaleID)
	assert.Equal(t, "Don Julio", e.notifier.notices[0].CustomerName)
}

func TestService_Create_CreditRequiresCustomer(t *testing.T) {
	e := newEnv(t)

	_, err := e.svc.Create(e.adminCtx(), CreateInput{
		Type: TypeCredit,
		Lines: []LineInput{
			{ProductID: e.productID, QuantityKG: 10, PricePerKG: types.NewMoney(1)},
		},
	})
	require.Error(t, err)

	appErr, _ := apperror.AsAppError(err)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestService_Update_ReleasesOldLinesFirst(t *testing.T) {
	e := newEnv(t)
	ctx := e.adminCtx()

	sale, err := e.svc.Create(ctx, CreateInput{
		Type: TypeCash,
		Lines: []LineInput{
			{ProductID: e.productID, QuantityKG: 80, PricePerKG: types.NewMoney(10)},
		},
	})
	require.NoError(t, err)

	// Only 20 kg remain, but the update releases the old 80 kg first,
	// so replacing the line with the full 100 kg must succeed.
	updated, err := e.svc.Update(ctx, sale.ID, UpdateInput{
		Lines: []LineInput{
			{ProductID: e.productID, QuantityKG: 100, PricePerKG: types.NewMoney(10)},
		},
	})
	require.NoError(t, err)
	assert.True(t, updated.TotalAmount.Equal(types.MustMoney("1000")))
}

func TestService_Update_MovesDebtWithClamp(t *testing.T) {
	e := newEnv(t)
	ctx := e.adminCtx()

	sale, err := e.svc.Create(ctx, CreateInput{
		Type:       TypeCredit,
		CustomerID: &e.customerID,
		Lines: []LineInput{
			{ProductID: e.productID, QuantityKG: 50, PricePerKG: types.NewMoney(10)},
		},
	})
	require.NoError(t, err)

	// A payment brought the debt below the sale total.
	e.customers.customers[e.customerID].CurrentDebt = types.MustMoney("300")

	_, err = e.svc.Update(ctx, sale.ID, UpdateInput{
		CustomerID: &e.customerID,
		Lines: []LineInput{
			{ProductID: e.productID, QuantityKG: 20, PricePerKG: types.NewMoney(10)},
		},
	})
	require.NoError(t, err)

	// Reversal clamps 300-500 to 0, then the new total 200 is added.
	debt := e.customers.customers[e.customerID].CurrentDebt
	assert.True(t, debt.Equal(types.MustMoney("200")), "debt = %s", debt)
}

func TestService_Delete_ReversesDebtClamped(t *testing.T) {
	e := newEnv(t)
	ctx := e.adminCtx()

	sale, err := e.svc.Create(ctx, CreateInput{
		Type:       TypeCredit,
		CustomerID: &e.customerID,
		Lines: []LineInput{
			{ProductID: e.productID, QuantityKG: 50, PricePerKG: types.NewMoney(10)},
		},
	})
	require.NoError(t, err)

	e.customers.customers[e.customerID].CurrentDebt = types.MustMoney("100")

	require.NoError(t, e.svc.Delete(ctx, sale.ID))

	debt := e.customers.customers[e.customerID].CurrentDebt
	assert.True(t, debt.IsZero(), "debt = %s, want 0", debt)
	assert.Empty(t, e.repo.sales)
}

func TestService_SellerEditWindow(t *testing.T) {
	e := newEnv(t)

	sale, err := e.svc.Create(e.adminCtx(), CreateInput{
		Type: TypeCash,
		Lines: []LineInput{
			{ProductID: e.productID, QuantityKG: 10, PricePerKG: types.NewMoney(1)},
		},
	})
	require.NoError(t, err)

	// Another user's sale.
	err = e.svc.Delete(e.sellerCtx(), sale.ID)
	require.Error(t, err)
	appErr, _ := apperror.AsAppError(err)
	assert.Equal(t, apperror.CodeForbidden, appErr.Code)

	// Own sale, but a day later.
	own, err := e.svc.Create(e.sellerCtx(), CreateInput{
		Type: TypeCash,
		Lines: []LineInput{
			{ProductID: e.productID, QuantityKG: 10, PricePerKG: types.NewMoney(1)},
		},
	})
	require.NoError(t, err)

	e.repo.sales[own.ID].Date = own.Date.AddDate(0, 0, -1)
	err = e.svc.Delete(e.sellerCtx(), own.ID)
	require.Error(t, err)
	appErr, _ = apperror.AsAppError(err)
	assert.Equal(t, apperror.CodeForbidden, appErr.Code)
}

func TestService_MarkPrinted(t *testing.T) {
	e := newEnv(t)
	ctx := e.adminCtx()

	sale, err := e.svc.Create(ctx, CreateInput{
		Type: TypeCash,
		Lines: []LineInput{
			{ProductID: e.productID, QuantityKG: 10, PricePerKG: types.NewMoney(1)},
		},
	})
	require.NoError(t, err)

	require.NoError(t, e.svc.MarkPrinted(ctx, sale.ID))
	assert.True(t, e.repo.sales[sale.ID].Printed)
}

func TestService_List_SellerSeesOwnOnly(t *testing.T) {
	e := newEnv(t)

	_, err := e.svc.Create(e.adminCtx(), CreateInput{
		Type: TypeCash,
		Lines: []LineInput{
			{ProductID: e.productID, QuantityKG: 10, PricePerKG: types.NewMoney(1)},
		},
	})
	require.NoError(t, err)

	_, err = e.svc.Create(e.sellerCtx(), CreateInput{
		Type: TypeCash,
		Lines: []LineInput{
			{ProductID: e.productID, QuantityKG: 10, PricePerKG: types.NewMoney(1)},
		},
	})
	require.NoError(t, err)

	result, err := e.svc.List(e.sellerCtx(), Filter{})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, e.sellerID, result.Items[0].UserID)

	all, err := e.svc.List(e.adminCtx(), Filter{})
	require.NoError(t, err)
	assert.Len(t, all.Items, 2)
}
