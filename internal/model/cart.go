package model

import "github.com/shopspring/decimal"

// CartLine is one product in the active cart. Name, SKU, price, tax rate and
// stock are captured when the line is created and never re-synced with the
// catalog; checkout consistency over live pricing.
type CartLine struct {
	ProductID     string          `json:"product_id"`
	Name          string          `json:"name"`
	SKU           string          `json:"sku"`
	Price         decimal.Decimal `json:"price"`
	Quantity      int             `json:"quantity"`
	Type          string          `json:"type"`
	StockSnapshot int             `json:"stock_snapshot"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
}

// StockTracked reports whether this line counts against a stock ceiling.
// Anything that is not a service is tracked, matching Product.IsService.
func (l *CartLine) StockTracked() bool {
	return l.Type != ProductTypeService
}

func (l *CartLine) LineSubtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

func (l *CartLine) LineTax() decimal.Decimal {
	return l.LineSubtotal().Mul(l.TaxRate).Div(decimal.NewFromInt(100))
}

type CartTotals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// TotalsOf derives the cart totals from a set of lines. Pure; recomputed on
// every mutation rather than cached.
func TotalsOf(lines []CartLine) CartTotals {
	subtotal := decimal.Zero
	tax := decimal.Zero
	for i := range lines {
		subtotal = subtotal.Add(lines[i].LineSubtotal())
		tax = tax.Add(lines[i].LineTax())
	}
	return CartTotals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}
