package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/fekuna/omnipos-sale-terminal/internal/model"
	"github.com/fekuna/omnipos-sale-terminal/pkg/localstore"
)

const historyKey = "sales:history"

// historyCap bounds the local log; older entries fall off the tail.
const historyCap = 200

// KVHistoryRepository keeps the sale log in the terminal's local store when
// no database is configured.
type KVHistoryRepository struct {
	store localstore.Store
}

func NewKVHistoryRepository(store localstore.Store) *KVHistoryRepository {
	return &KVHistoryRepository{store: store}
}

func (r *KVHistoryRepository) Append(ctx context.Context, sale *model.CompletedSale) error {
	sales, err := r.load(ctx, sale.MerchantID)
	if err != nil {
		return err
	}

	sales = append([]model.CompletedSale{*sale}, sales...)
	if len(sales) > historyCap {
		sales = sales[:historyCap]
	}

	data, err := json.Marshal(sales)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, sale.MerchantID, historyKey, data)
}

func (r *KVHistoryRepository) List(ctx context.Context, merchantID string, limit int) ([]model.CompletedSale, error) {
	sales, err := r.load(ctx, merchantID)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(sales) > limit {
		sales = sales[:limit]
	}
	return sales, nil
}

func (r *KVHistoryRepository) load(ctx context.Context, merchantID string) ([]model.CompletedSale, error) {
	data, err := r.store.Get(ctx, merchantID, historyKey)
	if errors.Is(err, localstore.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var sales []model.CompletedSale
	if err := json.Unmarshal(data, &sales); err != nil {
		return nil, err
	}
	return sales, nil
}
