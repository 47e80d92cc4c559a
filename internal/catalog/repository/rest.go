package repository

import (
	"context"
	"fmt"

	"github.com/fekuna/omnipos-sale-terminal/internal/backend/rest"
	"github.com/fekuna/omnipos-sale-terminal/internal/model"
)

type RESTRepository struct {
	client *rest.Client
}

func NewRESTRepository(client *rest.Client) *RESTRepository {
	return &RESTRepository{client: client}
}

func (r *RESTRepository) ListProducts(ctx context.Context, merchantID string) ([]model.Product, error) {
	var resp struct {
		Products []model.Product `json:"products"`
	}
	path := fmt.Sprintf("/merchants/%s/products", merchantID)
	if err := r.client.GetJSON(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp.Products, nil
}
