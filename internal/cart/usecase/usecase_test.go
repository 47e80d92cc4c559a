package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/fekuna/omnipos-sale-terminal/internal/cart"
	"github.com/fekuna/omnipos-sale-terminal/internal/model"
	"github.com/fekuna/omnipos-sale-terminal/internal/notice"
	"github.com/fekuna/omnipos-sale-terminal/pkg/localstore"
	"github.com/fekuna/omnipos-sale-terminal/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLedger(t *testing.T) (cart.UseCase, *notice.Bus, *localstore.MemoryStore) {
	t.Helper()
	bus := notice.NewBus(time.Minute)
	store := localstore.NewMemoryStore()
	log := logger.NewZapLogger(&logger.ZapLoggerConfig{Level: "error", Encoding: "console"})
	return NewCartUseCase(bus, store, "m1", log), bus, store
}

func physicalProduct(id, name string, price float64, stock int, taxRate float64) *model.Product {
	return &model.Product{
		ID:       id,
		Name:     name,
		SKU:      "SKU-" + id,
		Price:    decimal.NewFromFloat(price),
		Stock:    stock,
		TaxRate:  decimal.NewFromFloat(taxRate),
		Type:     model.ProductTypePhysical,
		IsActive: true,
	}
}

func TestAddLine_StockCeiling(t *testing.T) {
	// Scenario A: stock=3, add 2, then try to add 2 more.
	uc, _, _ := newTestLedger(t)
	ctx := context.Background()
	p := physicalProduct("p1", "Coffee Beans", 10, 3, 0)

	require.NoError(t, uc.AddLine(ctx, p, 2))
	totals := uc.Totals()
	assert.True(t, totals.Subtotal.Equal(decimal.NewFromInt(20)), "subtotal = %s", totals.Subtotal)
	assert.True(t, totals.Total.Equal(decimal.NewFromInt(20)), "total = %s", totals.Total)

	err := uc.AddLine(ctx, p, 2)
	assert.ErrorIs(t, err, cart.ErrInsufficientStock)

	lines := uc.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity, "rejected add must leave quantity unchanged")
}

func TestAddLine_NewLineOverStock(t *testing.T) {
	uc, bus, _ := newTestLedger(t)
	p := physicalProduct("p1", "Milk", 5, 1, 0)

	err := uc.AddLine(context.Background(), p, 3)
	assert.ErrorIs(t, err, cart.ErrInsufficientStock)
	assert.True(t, uc.IsEmpty())

	active := bus.Active()
	require.Len(t, active, 1)
	assert.Equal(t, notice.ToneError, active[0].Tone)
}

func TestAddLine_InactiveProduct(t *testing.T) {
	uc, _, _ := newTestLedger(t)
	p := physicalProduct("p1", "Old Stock", 5, 10, 0)
	p.IsActive = false

	err := uc.AddLine(context.Background(), p, 1)
	assert.ErrorIs(t, err, cart.ErrProductNotSellable)
	assert.True(t, uc.IsEmpty())
}

func TestAddLine_ArchivedProduct(t *testing.T) {
	uc, _, _ := newTestLedger(t)
	p := physicalProduct("p1", "Retired", 5, 10, 0)
	p.Status = model.ProductStatusArchived

	err := uc.AddLine(context.Background(), p, 1)
	assert.ErrorIs(t, err, cart.ErrProductNotSellable)
}

func TestAddLine_ServiceUnbounded(t *testing.T) {
	uc, _, _ := newTestLedger(t)
	ctx := context.Background()
	svc := &model.Product{
		ID:       "s1",
		Name:     "Gift Wrapping",
		Price:    decimal.NewFromInt(2),
		Type:     model.ProductTypeService,
		IsActive: true,
	}

	require.NoError(t, uc.AddLine(ctx, svc, 50))
	require.NoError(t, uc.AddLine(ctx, svc, 450))

	lines := uc.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 500, lines[0].Quantity)
}

func TestUpdateQuantity(t *testing.T) {
	uc, _, _ := newTestLedger(t)
	ctx := context.Background()
	p := physicalProduct("p1", "Tea", 4, 5, 0)
	require.NoError(t, uc.AddLine(ctx, p, 1))

	require.NoError(t, uc.UpdateQuantity(ctx, "p1", 5))

	err := uc.UpdateQuantity(ctx, "p1", 6)
	assert.ErrorIs(t, err, cart.ErrInsufficientStock)
	assert.Equal(t, 5, uc.Lines()[0].Quantity)
}

func TestUpdateQuantity_ZeroRemoves(t *testing.T) {
	uc, bus, _ := newTestLedger(t)
	ctx := context.Background()
	p := physicalProduct("p1", "Tea", 4, 5, 0)
	require.NoError(t, uc.AddLine(ctx, p, 2))

	require.NoError(t, uc.UpdateQuantity(ctx, "p1", 0))
	assert.True(t, uc.IsEmpty())

	var sawRemoval bool
	for _, n := range bus.Active() {
		if n.Tone == notice.ToneInfo {
			sawRemoval = true
			assert.Contains(t, n.Message, "Tea")
		}
	}
	assert.True(t, sawRemoval, "removal must raise an informational notice")
}

func TestUpdateQuantity_MissingLine(t *testing.T) {
	uc, _, _ := newTestLedger(t)
	err := uc.UpdateQuantity(context.Background(), "ghost", 1)
	assert.ErrorIs(t, err, cart.ErrLineNotFound)
}

func TestRemoveLine(t *testing.T) {
	uc, bus, _ := newTestLedger(t)
	ctx := context.Background()
	require.NoError(t, uc.AddLine(ctx, physicalProduct("p1", "Tea", 4, 5, 0), 1))
	require.NoError(t, uc.AddLine(ctx, physicalProduct("p2", "Sugar", 3, 5, 0), 1))

	require.NoError(t, uc.RemoveLine(ctx, "p1"))
	lines := uc.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "p2", lines[0].ProductID)
	assert.NotEmpty(t, bus.Active())
}

func TestTotals_TaxMath(t *testing.T) {
	// P2: one line qty 1, price 15, tax 10% -> tax 1.50, total 16.50.
	uc, _, _ := newTestLedger(t)
	p := physicalProduct("p1", "Notebook", 15, 10, 10)
	require.NoError(t, uc.AddLine(context.Background(), p, 1))

	totals := uc.Totals()
	assert.True(t, totals.Subtotal.Equal(decimal.NewFromInt(15)), "subtotal = %s", totals.Subtotal)
	assert.True(t, totals.Tax.Equal(decimal.NewFromFloat(1.5)), "tax = %s", totals.Tax)
	assert.True(t, totals.Total.Equal(decimal.NewFromFloat(16.5)), "total = %s", totals.Total)
	assert.True(t, totals.Total.Equal(totals.Subtotal.Add(totals.Tax)))
}

func TestTotals_MultipleLines(t *testing.T) {
	uc, _, _ := newTestLedger(t)
	ctx := context.Background()
	require.NoError(t, uc.AddLine(ctx, physicalProduct("p1", "A", 9.99, 10, 5), 3))
	require.NoError(t, uc.AddLine(ctx, physicalProduct("p2", "B", 0.45, 10, 12.5), 2))

	totals := uc.Totals()
	wantSubtotal := decimal.NewFromFloat(9.99).Mul(decimal.NewFromInt(3)).
		Add(decimal.NewFromFloat(0.45).Mul(decimal.NewFromInt(2)))
	assert.True(t, totals.Subtotal.Equal(wantSubtotal))
	assert.True(t, totals.Total.Equal(totals.Subtotal.Add(totals.Tax)))
}

func TestInsertionOrderPreserved(t *testing.T) {
	uc, _, _ := newTestLedger(t)
	ctx := context.Background()
	for _, id := range []string{"c", "a", "b"} {
		require.NoError(t, uc.AddLine(ctx, physicalProduct(id, id, 1, 10, 0), 1))
	}
	lines := uc.Lines()
	assert.Equal(t, "c", lines[0].ProductID)
	assert.Equal(t, "a", lines[1].ProductID)
	assert.Equal(t, "b", lines[2].ProductID)
}

func TestBadgeBroadcast(t *testing.T) {
	uc, _, store := newTestLedger(t)
	ctx := context.Background()
	require.NoError(t, uc.AddLine(ctx, physicalProduct("p1", "Tea", 4, 5, 0), 2))

	val, err := store.Get(ctx, "m1", "cart:badge")
	require.NoError(t, err)
	assert.Equal(t, "2", string(val))

	uc.Clear(ctx)
	val, err = store.Get(ctx, "m1", "cart:badge")
	require.NoError(t, err)
	assert.Equal(t, "0", string(val))
}

func TestAddLine_UnrecognizedTypeKeepsCeiling(t *testing.T) {
	// A type string the terminal does not know is still stock-tracked, on
	// the merge and update paths as much as at creation.
	uc, _, _ := newTestLedger(t)
	ctx := context.Background()
	p := physicalProduct("p1", "Bundle", 10, 2, 0)
	p.Type = "bundle"

	require.NoError(t, uc.AddLine(ctx, p, 2))
	assert.ErrorIs(t, uc.AddLine(ctx, p, 1), cart.ErrInsufficientStock)
	assert.ErrorIs(t, uc.UpdateQuantity(ctx, "p1", 3), cart.ErrInsufficientStock)
	assert.Equal(t, 2, uc.Lines()[0].Quantity)
}

func TestClearSubmitted_Unchanged(t *testing.T) {
	uc, _, _ := newTestLedger(t)
	ctx := context.Background()
	require.NoError(t, uc.AddLine(ctx, physicalProduct("p1", "Tea", 4, 5, 0), 2))

	uc.ClearSubmitted(ctx, uc.Lines())
	assert.True(t, uc.IsEmpty())
}

func TestClearSubmitted_KeepsLaterLines(t *testing.T) {
	uc, _, store := newTestLedger(t)
	ctx := context.Background()
	require.NoError(t, uc.AddLine(ctx, physicalProduct("p1", "Tea", 4, 5, 0), 2))
	snapshot := uc.Lines()

	// Mutations that land after the snapshot was taken.
	require.NoError(t, uc.AddLine(ctx, physicalProduct("p2", "Pen", 1, 5, 0), 1))
	require.NoError(t, uc.AddLine(ctx, physicalProduct("p1", "Tea", 4, 5, 0), 1))

	uc.ClearSubmitted(ctx, snapshot)

	lines := uc.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "p1", lines[0].ProductID)
	assert.Equal(t, 1, lines[0].Quantity, "only the submitted two leave")
	assert.Equal(t, "p2", lines[1].ProductID)

	val, err := store.Get(ctx, "m1", "cart:badge")
	require.NoError(t, err)
	assert.Equal(t, "2", string(val))
}

func TestReplace(t *testing.T) {
	uc, _, _ := newTestLedger(t)
	ctx := context.Background()
	require.NoError(t, uc.AddLine(ctx, physicalProduct("p1", "Tea", 4, 5, 0), 1))

	snapshot := []model.CartLine{{
		ProductID: "p9", Name: "Restored", Price: decimal.NewFromInt(7),
		Quantity: 2, Type: model.ProductTypePhysical, StockSnapshot: 4,
	}}
	uc.Replace(ctx, snapshot)

	lines := uc.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "p9", lines[0].ProductID)
	assert.Equal(t, 2, lines[0].Quantity)
}
