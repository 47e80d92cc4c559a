package payment

import (
	"context"

	"github.com/fekuna/omnipos-sale-terminal/internal/model"
)

type Repository interface {
	ListPaymentMethods(ctx context.Context, merchantID string) ([]model.PaymentMethod, error)
}
