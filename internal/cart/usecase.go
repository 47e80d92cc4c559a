package cart

import (
	"context"
	"errors"

	"github.com/fekuna/omnipos-sale-terminal/internal/model"
)

var (
	ErrProductNotSellable = errors.New("product is not available for sale")
	ErrInsufficientStock  = errors.New("stock insufficient")
	ErrLineNotFound       = errors.New("cart line not found")
)

// UseCase is the cart ledger: the ordered lines of the sale in progress.
// Mutations are atomic with respect to each other; totals are derived, never
// cached.
type UseCase interface {
	AddLine(ctx context.Context, product *model.Product, requestedQty int) error
	UpdateQuantity(ctx context.Context, productID string, newQty int) error
	RemoveLine(ctx context.Context, productID string) error
	Clear(ctx context.Context)

	// ClearSubmitted subtracts the quantities of a submitted snapshot from
	// the live ledger. Lines added or grown while the submission was in
	// flight keep their remainder; an unchanged ledger ends up empty.
	ClearSubmitted(ctx context.Context, submitted []model.CartLine)

	// Replace swaps in a parked snapshot wholesale.
	Replace(ctx context.Context, lines []model.CartLine)

	Lines() []model.CartLine
	Totals() model.CartTotals
	IsEmpty() bool
}
