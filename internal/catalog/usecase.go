package catalog

import (
	"context"

	"github.com/fekuna/omnipos-sale-terminal/internal/catalog/dto"
	"github.com/fekuna/omnipos-sale-terminal/internal/model"
)

type UseCase interface {
	// Load fetches the catalog from the back office. Blocking; concurrent
	// calls are collapsed into one fetch.
	Load(ctx context.Context) error
	Loaded() bool

	Visible(filters *dto.ViewFilters) []model.Product
	Categories() []string
	Get(productID string) (*model.Product, bool)

	// DecrementStock lowers the local stock mirror after a sale. A cache
	// hint only; authoritative stock arrives on the next Load or via the
	// inventory listener.
	DecrementStock(productID string, qty int)
	ApplyStockLevel(productID string, level int)
}
