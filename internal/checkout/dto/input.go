package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SubmitItem carries name/sku redundantly with the product identity so the
// back office can keep a printable record even if catalog rows change.
type SubmitItem struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	TaxRate   decimal.Decimal `json:"tax_rate"`
	Type      string          `json:"type"`
}

type SubmitRequest struct {
	CashierID     string          `json:"cashier_id"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Tax           decimal.Decimal `json:"tax"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"payment_method"`
	CashReceived  decimal.Decimal `json:"cash_received"`
	ChangeAmount  decimal.Decimal `json:"change_amount"`
	Items         []SubmitItem    `json:"items"`
}

type SubmitResult struct {
	ReceiptNo string    `json:"receipt_no"`
	CreatedAt time.Time `json:"created_at"`
}
