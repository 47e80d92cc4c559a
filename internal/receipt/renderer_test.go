package receipt

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/fekuna/omnipos-sale-terminal/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSale() *model.CompletedSale {
	return &model.CompletedSale{
		ReceiptNo:   "POS-20260301-0042",
		MerchantID:  "m1",
		StoreName:   "Corner Deli",
		CashierName: "Ana",
		Items: []model.SaleItem{
			{ProductID: "p1", Name: "Espresso", SKU: "ESP-1", Quantity: 2, UnitPrice: decimal.NewFromFloat(2.50), TaxRate: decimal.NewFromInt(10), Type: model.ProductTypePhysical},
			{ProductID: "p2", Name: "Croissant", SKU: "CRO-1", Quantity: 1, UnitPrice: decimal.NewFromFloat(3.00), Type: model.ProductTypePhysical},
		},
		Subtotal:      decimal.NewFromFloat(8.00),
		Tax:           decimal.NewFromFloat(0.50),
		Total:         decimal.NewFromFloat(8.50),
		PaymentMethod: model.MethodCash,
		CashReceived:  decimal.NewFromInt(10),
		ChangeAmount:  decimal.NewFromFloat(1.50),
		CreatedAt:     time.Date(2026, 3, 1, 14, 30, 0, 0, time.UTC),
	}
}

func TestRender(t *testing.T) {
	sale := sampleSale()
	doc := Render(sale, Header{StoreName: "Corner Deli", Phone: "555-0101"}, "Cash")

	assert.Equal(t, "POS-20260301-0042", doc.ReceiptNo)
	assert.Equal(t, "2026-03-01 14:30:00", doc.Date)
	require.Len(t, doc.Items, 2)
	assert.Equal(t, "2.50", doc.Items[0].UnitPrice)
	assert.Equal(t, "5.00", doc.Items[0].LineTotal)
	assert.Equal(t, "8.50", doc.Total)
	assert.True(t, doc.CashPayment)
	assert.Equal(t, "10.00", doc.Received)
	assert.Equal(t, "1.50", doc.Change)
}

func TestRender_NonCashOmitsTender(t *testing.T) {
	sale := sampleSale()
	sale.PaymentMethod = model.MethodCard
	doc := Render(sale, Header{StoreName: "Corner Deli"}, "Card")

	assert.False(t, doc.CashPayment)
	assert.Empty(t, doc.Received)
	assert.Empty(t, doc.Change)
}

func TestRender_Idempotent(t *testing.T) {
	sale := sampleSale()
	header := Header{StoreName: "Corner Deli"}
	first := Render(sale, header, "Cash")
	second := Render(sale, header, "Cash")
	assert.Equal(t, first, second)
	assert.Equal(t, first.Text(), second.Text())
}

func TestText_Layout(t *testing.T) {
	doc := Render(sampleSale(), Header{StoreName: "Corner Deli", TaxID: "TX-99"}, "Cash")
	text := doc.Text()

	assert.Contains(t, text, "Corner Deli")
	assert.Contains(t, text, "Tax ID: TX-99")
	assert.Contains(t, text, "Espresso")
	assert.Contains(t, text, "2 x 2.50")
	assert.Contains(t, text, "TOTAL")
	assert.Contains(t, text, "8.50")
	assert.Contains(t, text, "Change")
}

func TestSpoolPrinter(t *testing.T) {
	var buf bytes.Buffer
	printer := NewSpoolPrinter(&buf)
	doc := Render(sampleSale(), Header{StoreName: "Corner Deli"}, "Cash")

	require.NoError(t, printer.Print(context.Background(), doc))
	assert.Contains(t, buf.String(), "POS-20260301-0042")
	assert.True(t, bytes.HasSuffix(buf.Bytes(), []byte{'\f'}), "documents are form-feed separated")
}
