package checkout

import (
	"context"
	"errors"

	"github.com/fekuna/omnipos-sale-terminal/internal/model"
)

var (
	ErrEmptyCart        = errors.New("cart is empty")
	ErrInsufficientCash = errors.New("insufficient cash received")
	ErrNoSaleYet        = errors.New("no completed sale in this session")
)

type UseCase interface {
	// Checkout validates the cart and tender, submits the sale, and on
	// success runs the local side-effect sequence: history append, stock
	// mirror decrement, cart clear, receipt print. A submission failure
	// aborts the whole sequence; nothing local changes and nothing retries.
	Checkout(ctx context.Context) (*model.CompletedSale, error)

	History(ctx context.Context, limit int) ([]model.CompletedSale, error)
	LastSale() (*model.CompletedSale, error)
	ReprintLast(ctx context.Context) error
}
