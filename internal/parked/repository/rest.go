package repository

import (
	"context"
	"fmt"

	"github.com/fekuna/omnipos-sale-terminal/internal/backend/rest"
	"github.com/fekuna/omnipos-sale-terminal/internal/model"
)

type RESTRemoteStore struct {
	client *rest.Client
}

func NewRESTRemoteStore(client *rest.Client) *RESTRemoteStore {
	return &RESTRemoteStore{client: client}
}

func (r *RESTRemoteStore) List(ctx context.Context, merchantID string) ([]model.ParkedCart, error) {
	var resp struct {
		ParkedCarts []model.ParkedCart `json:"parked_carts"`
	}
	path := fmt.Sprintf("/merchants/%s/parked-carts", merchantID)
	if err := r.client.GetJSON(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp.ParkedCarts, nil
}

func (r *RESTRemoteStore) Create(ctx context.Context, merchantID string, cart model.ParkedCart) (*model.ParkedCart, error) {
	var created model.ParkedCart
	path := fmt.Sprintf("/merchants/%s/parked-carts", merchantID)
	if err := r.client.PostJSON(ctx, path, cart, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *RESTRemoteStore) Delete(ctx context.Context, merchantID, id string) error {
	path := fmt.Sprintf("/merchants/%s/parked-carts/%s", merchantID, id)
	return r.client.Delete(ctx, path)
}
