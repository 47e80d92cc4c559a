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

func (r *RESTRepository) ListPaymentMethods(ctx context.Context, merchantID string) ([]model.PaymentMethod, error) {
	var resp struct {
		Methods []model.PaymentMethod `json:"methods"`
	}
	path := fmt.Sprintf("/merchants/%s/payment-methods", merchantID)
	if err := r.client.GetJSON(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp.Methods, nil
}
