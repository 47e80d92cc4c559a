package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/fekuna/omnipos-sale-terminal/internal/model"
	"github.com/fekuna/omnipos-sale-terminal/pkg/localstore"
)

const parkedKey = "parked:carts"

// KVLocalStore keeps the parked list as one JSON document in the terminal's
// local store, seeded from any previously saved data.
type KVLocalStore struct {
	store localstore.Store
}

func NewKVLocalStore(store localstore.Store) *KVLocalStore {
	return &KVLocalStore{store: store}
}

func (s *KVLocalStore) Load(ctx context.Context, merchantID string) ([]model.ParkedCart, error) {
	data, err := s.store.Get(ctx, merchantID, parkedKey)
	if errors.Is(err, localstore.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var carts []model.ParkedCart
	if err := json.Unmarshal(data, &carts); err != nil {
		return nil, err
	}
	return carts, nil
}

func (s *KVLocalStore) Save(ctx context.Context, merchantID string, carts []model.ParkedCart) error {
	data, err := json.Marshal(carts)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, merchantID, parkedKey, data)
}
