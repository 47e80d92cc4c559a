package repository

import (
	"context"
	"fmt"

	"github.com/fekuna/omnipos-sale-terminal/internal/backend/rest"
	"github.com/fekuna/omnipos-sale-terminal/internal/checkout/dto"
)

type RESTSubmitter struct {
	client *rest.Client
}

func NewRESTSubmitter(client *rest.Client) *RESTSubmitter {
	return &RESTSubmitter{client: client}
}

func (r *RESTSubmitter) Submit(ctx context.Context, merchantID string, req *dto.SubmitRequest) (*dto.SubmitResult, error) {
	var result dto.SubmitResult
	path := fmt.Sprintf("/merchants/%s/sales", merchantID)
	if err := r.client.PostJSON(ctx, path, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
