package catalog

import (
	"context"

	"github.com/fekuna/omnipos-sale-terminal/internal/model"
)

type Repository interface {
	ListProducts(ctx context.Context, merchantID string) ([]model.Product, error)
}
