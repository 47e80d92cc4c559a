package parked

import (
	"context"

	"github.com/fekuna/omnipos-sale-terminal/internal/model"
)

// RemoteStore is the back-office parked-cart collection. Any failure is a
// signal to fall back to the local store, not a hard error.
type RemoteStore interface {
	List(ctx context.Context, merchantID string) ([]model.ParkedCart, error)
	Create(ctx context.Context, merchantID string, cart model.ParkedCart) (*model.ParkedCart, error)
	Delete(ctx context.Context, merchantID, id string) error
}

// LocalStore persists the parked list on the terminal itself.
type LocalStore interface {
	Load(ctx context.Context, merchantID string) ([]model.ParkedCart, error)
	Save(ctx context.Context, merchantID string, carts []model.ParkedCart) error
}
