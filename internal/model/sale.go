package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItem is a normalized cart line inside a completed sale. Name and SKU
// are carried redundantly so the record stays printable even if the catalog
// entry changes later.
type SaleItem struct {
	ProductID string          `db:"product_id" json:"product_id"`
	Name      string          `db:"name" json:"name"`
	SKU       string          `db:"sku" json:"sku"`
	Quantity  int             `db:"quantity" json:"quantity"`
	UnitPrice decimal.Decimal `db:"unit_price" json:"unit_price"`
	TaxRate   decimal.Decimal `db:"tax_rate" json:"tax_rate"`
	Type      string          `db:"type" json:"type"`
}

// CompletedSale is the immutable record produced once per successful
// checkout. Appended to the local sale history, most recent first.
type CompletedSale struct {
	ReceiptNo     string          `db:"receipt_no" json:"receipt_no"`
	MerchantID    string          `db:"merchant_id" json:"merchant_id"`
	StoreName     string          `db:"store_name" json:"store_name"`
	CashierID     string          `db:"cashier_id" json:"cashier_id"`
	CashierName   string          `db:"cashier_name" json:"cashier_name"`
	Items         []SaleItem      `db:"-" json:"items"`
	Subtotal      decimal.Decimal `db:"subtotal" json:"subtotal"`
	Tax           decimal.Decimal `db:"tax" json:"tax"`
	Total         decimal.Decimal `db:"total" json:"total"`
	PaymentMethod string          `db:"payment_method" json:"payment_method"`
	CashReceived  decimal.Decimal `db:"cash_received" json:"cash_received"`
	ChangeAmount  decimal.Decimal `db:"change_amount" json:"change_amount"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
}
