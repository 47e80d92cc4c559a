package checkout

import (
	"context"

	"github.com/fekuna/omnipos-sale-terminal/internal/checkout/dto"
	"github.com/fekuna/omnipos-sale-terminal/internal/model"
)

// Submitter hands the sale to the back office, which re-validates stock and
// owns the authoritative record.
type Submitter interface {
	Submit(ctx context.Context, merchantID string, req *dto.SubmitRequest) (*dto.SubmitResult, error)
}

// HistoryRepository is the append-only local sale log, most recent first.
type HistoryRepository interface {
	Append(ctx context.Context, sale *model.CompletedSale) error
	List(ctx context.Context, merchantID string, limit int) ([]model.CompletedSale, error)
}

// EventPublisher emits sale events for back-office consumers. Best effort;
// a broker outage never fails a checkout.
type EventPublisher interface {
	Publish(ctx context.Context, key string, payload any) error
}
