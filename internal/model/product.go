package model

import "github.com/shopspring/decimal"

const (
	ProductTypePhysical = "product"
	ProductTypeService  = "service"
)

const ProductStatusArchived = "archived"

// Product is the terminal's snapshot of a catalog entry. Price, tax rate and
// stock are whatever the back office reported at load time; stock is advisory
// only and re-validated server-side at checkout.
type Product struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku"`
	Barcode   *string         `json:"barcode,omitempty"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
	TaxRate   decimal.Decimal `json:"taxRate"`
	Type      string          `json:"type"`
	IsActive  bool            `json:"active"`
	Status    string          `json:"status"`
	Category  string          `json:"category"`
	ImagePath *string         `json:"imagePath"`
}

func (p *Product) IsService() bool {
	return p.Type == ProductTypeService
}

// Sellable reports whether a line may be added for this product.
func (p *Product) Sellable() bool {
	return p.IsActive && p.Status != ProductStatusArchived
}
