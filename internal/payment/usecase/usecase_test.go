package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fekuna/omnipos-sale-terminal/internal/cart"
	cartUC "github.com/fekuna/omnipos-sale-terminal/internal/cart/usecase"
	"github.com/fekuna/omnipos-sale-terminal/internal/model"
	"github.com/fekuna/omnipos-sale-terminal/internal/notice"
	"github.com/fekuna/omnipos-sale-terminal/internal/payment"
	"github.com/fekuna/omnipos-sale-terminal/pkg/localstore"
	"github.com/fekuna/omnipos-sale-terminal/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockMethodRepo struct {
	m       sync.Mutex
	methods []model.PaymentMethod
	err     error
}

func (r *mockMethodRepo) ListPaymentMethods(context.Context, string) ([]model.PaymentMethod, error) {
	r.m.Lock()
	defer r.m.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	return r.methods, nil
}

func newTestSelector(t *testing.T, repo payment.Repository) (payment.UseCase, cart.UseCase, *localstore.MemoryStore) {
	t.Helper()
	log := logger.NewZapLogger(&logger.ZapLoggerConfig{Level: "error", Encoding: "console"})
	store := localstore.NewMemoryStore()
	ledger := cartUC.NewCartUseCase(notice.NewBus(time.Minute), store, "m1", log)
	uc := NewPaymentUseCase(repo, ledger, store, "m1", log)
	uc.LoadMethods(context.Background())
	return uc, ledger, store
}

func addLineWithTotal(t *testing.T, ledger cart.UseCase, total float64) {
	t.Helper()
	p := &model.Product{
		ID:       "p1",
		Name:     "Line",
		Price:    decimal.NewFromFloat(total),
		Stock:    100,
		Type:     model.ProductTypePhysical,
		IsActive: true,
	}
	require.NoError(t, ledger.AddLine(context.Background(), p, 1))
}

func TestDefaultsWhenBackendEmpty(t *testing.T) {
	// Scenario D: no active methods from the backend keeps the default 5.
	repo := &mockMethodRepo{methods: []model.PaymentMethod{
		{ID: model.MethodCard, Label: "Card", Active: false},
	}}
	uc, _, _ := newTestSelector(t, repo)
	uc.RefreshMethods(context.Background())

	methods := uc.Methods()
	require.Len(t, methods, 5)
	assert.Equal(t, model.MethodCash, methods[0].ID)
	assert.Equal(t, model.MethodVoucher, methods[4].ID)
}

func TestRefreshReplacesSet(t *testing.T) {
	repo := &mockMethodRepo{methods: []model.PaymentMethod{
		{ID: model.MethodCard, Label: "EDC Card", Active: true},
		{ID: model.MethodCash, Label: "Tunai", Active: true},
	}}
	uc, _, store := newTestSelector(t, repo)
	uc.RefreshMethods(context.Background())

	methods := uc.Methods()
	require.Len(t, methods, 2)
	assert.Equal(t, "EDC Card", methods[0].Label)

	// Replacement is written through to the local fallback cache.
	data, err := store.Get(context.Background(), "m1", "payment:methods")
	require.NoError(t, err)
	var cached []model.PaymentMethod
	require.NoError(t, json.Unmarshal(data, &cached))
	assert.Len(t, cached, 2)
}

func TestRefreshDropsUnknownIDs(t *testing.T) {
	repo := &mockMethodRepo{methods: []model.PaymentMethod{
		{ID: "cryptocard", Label: "CryptoCard", Active: true},
		{ID: model.MethodCash, Label: "Cash", Active: true},
	}}
	uc, _, _ := newTestSelector(t, repo)
	uc.RefreshMethods(context.Background())

	methods := uc.Methods()
	require.Len(t, methods, 1)
	assert.Equal(t, model.MethodCash, methods[0].ID)
}

func TestRefreshFailureKeepsCurrentSet(t *testing.T) {
	repo := &mockMethodRepo{err: errors.New("connection refused")}
	uc, _, _ := newTestSelector(t, repo)
	uc.RefreshMethods(context.Background())

	assert.Len(t, uc.Methods(), 5)
}

func TestSelectionFallsBackToFirst(t *testing.T) {
	repo := &mockMethodRepo{methods: []model.PaymentMethod{
		{ID: model.MethodCard, Label: "Card", Active: true},
	}}
	uc, _, _ := newTestSelector(t, repo)
	require.NoError(t, uc.Select(context.Background(), model.MethodVoucher))

	uc.RefreshMethods(context.Background())
	assert.Equal(t, model.MethodCard, uc.Selection().Method.ID)
}

func TestLoadMethodsFromCache(t *testing.T) {
	log := logger.NewZapLogger(&logger.ZapLoggerConfig{Level: "error", Encoding: "console"})
	store := localstore.NewMemoryStore()
	cached := []model.PaymentMethod{
		{ID: model.MethodCash, Label: "Cash", Active: true},
		{ID: model.MethodMobileMoney, Label: "MoMo", Active: true},
	}
	data, _ := json.Marshal(cached)
	require.NoError(t, store.Set(context.Background(), "m1", "payment:methods", data))

	ledger := cartUC.NewCartUseCase(notice.NewBus(time.Minute), store, "m1", log)
	uc := NewPaymentUseCase(&mockMethodRepo{}, ledger, store, "m1", log)
	uc.LoadMethods(context.Background())

	methods := uc.Methods()
	require.Len(t, methods, 2)
	assert.Equal(t, "MoMo", methods[1].Label)
}

func TestSelectUnknown(t *testing.T) {
	uc, _, _ := newTestSelector(t, &mockMethodRepo{})
	err := uc.Select(context.Background(), "iou")
	assert.ErrorIs(t, err, payment.ErrUnknownMethod)
}

func TestCashMath(t *testing.T) {
	// P5: total 45.00.
	uc, ledger, _ := newTestSelector(t, &mockMethodRepo{})
	addLineWithTotal(t, ledger, 45)
	ctx := context.Background()
	require.NoError(t, uc.Select(ctx, model.MethodCash))

	require.NoError(t, uc.SetCashReceived(ctx, decimal.NewFromFloat(50)))
	sel := uc.Selection()
	assert.Equal(t, "5.00", sel.Change.StringFixed(2))
	assert.True(t, sel.Shortfall.IsZero())

	require.NoError(t, uc.SetCashReceived(ctx, decimal.NewFromFloat(40)))
	sel = uc.Selection()
	assert.Equal(t, "5.00", sel.Shortfall.StringFixed(2))
	assert.True(t, sel.Change.IsZero())
}

func TestCashRetainedAcrossSwitch(t *testing.T) {
	uc, ledger, _ := newTestSelector(t, &mockMethodRepo{})
	addLineWithTotal(t, ledger, 10)
	ctx := context.Background()

	require.NoError(t, uc.Select(ctx, model.MethodCash))
	require.NoError(t, uc.SetCashReceived(ctx, decimal.NewFromInt(20)))

	require.NoError(t, uc.Select(ctx, model.MethodCard))
	sel := uc.Selection()
	assert.True(t, sel.Change.IsZero(), "change is cash-mode state")
	assert.True(t, sel.Shortfall.IsZero())

	require.NoError(t, uc.Select(ctx, model.MethodCash))
	sel = uc.Selection()
	assert.Equal(t, "10.00", sel.Change.StringFixed(2))
}

func TestNegativeCashRejected(t *testing.T) {
	uc, _, _ := newTestSelector(t, &mockMethodRepo{})
	err := uc.SetCashReceived(context.Background(), decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, payment.ErrNegativeCash)
}

func TestResetCash(t *testing.T) {
	uc, ledger, _ := newTestSelector(t, &mockMethodRepo{})
	addLineWithTotal(t, ledger, 10)
	ctx := context.Background()
	require.NoError(t, uc.Select(ctx, model.MethodCash))
	require.NoError(t, uc.SetCashReceived(ctx, decimal.NewFromInt(20)))

	uc.ResetCash()
	sel := uc.Selection()
	assert.False(t, sel.CashEntered)
	assert.True(t, sel.CashReceived.IsZero())
}
