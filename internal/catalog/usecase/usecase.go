package usecase

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/fekuna/omnipos-sale-terminal/internal/catalog"
	"github.com/fekuna/omnipos-sale-terminal/internal/catalog/dto"
	"github.com/fekuna/omnipos-sale-terminal/internal/model"
	"github.com/fekuna/omnipos-sale-terminal/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

type catalogUseCase struct {
	repo       catalog.Repository
	merchantID string
	logger     logger.ZapLogger

	mu       sync.RWMutex
	products []model.Product
	byID     map[string]int
	loaded   bool

	sfg singleflight.Group // collapses concurrent loads
}

func NewCatalogUseCase(repo catalog.Repository, merchantID string, log logger.ZapLogger) catalog.UseCase {
	return &catalogUseCase{
		repo:       repo,
		merchantID: merchantID,
		logger:     log,
		byID:       make(map[string]int),
	}
}

func (uc *catalogUseCase) Load(ctx context.Context) error {
	_, err, _ := uc.sfg.Do("load", func() (interface{}, error) {
		products, err := uc.repo.ListProducts(ctx, uc.merchantID)
		if err != nil {
			return nil, err
		}

		uc.mu.Lock()
		uc.products = products
		uc.byID = make(map[string]int, len(products))
		for i := range products {
			uc.byID[products[i].ID] = i
		}
		uc.loaded = true
		uc.mu.Unlock()

		uc.logger.Info("catalog loaded", zap.Int("products", len(products)))
		return nil, nil
	})
	return err
}

func (uc *catalogUseCase) Loaded() bool {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.loaded
}

func (uc *catalogUseCase) Visible(filters *dto.ViewFilters) []model.Product {
	uc.mu.RLock()
	defer uc.mu.RUnlock()

	search := strings.ToLower(strings.TrimSpace(filters.SearchQuery))
	var out []model.Product
	for _, p := range uc.products {
		if !p.Sellable() {
			continue
		}
		if filters.Category != "" && p.Category != filters.Category {
			continue
		}
		if search != "" && !matchesSearch(&p, search) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesSearch(p *model.Product, search string) bool {
	if strings.Contains(strings.ToLower(p.Name), search) {
		return true
	}
	if strings.Contains(strings.ToLower(p.SKU), search) {
		return true
	}
	return p.Barcode != nil && strings.Contains(strings.ToLower(*p.Barcode), search)
}

func (uc *catalogUseCase) Categories() []string {
	uc.mu.RLock()
	defer uc.mu.RUnlock()

	seen := make(map[string]struct{})
	var out []string
	for _, p := range uc.products {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	sort.Strings(out)
	return out
}

func (uc *catalogUseCase) Get(productID string) (*model.Product, bool) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	i, ok := uc.byID[productID]
	if !ok {
		return nil, false
	}
	p := uc.products[i]
	return &p, true
}

func (uc *catalogUseCase) DecrementStock(productID string, qty int) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	i, ok := uc.byID[productID]
	if !ok {
		return
	}
	uc.products[i].Stock -= qty
	if uc.products[i].Stock < 0 {
		uc.products[i].Stock = 0
	}
}

func (uc *catalogUseCase) ApplyStockLevel(productID string, level int) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	i, ok := uc.byID[productID]
	if !ok {
		return
	}
	uc.products[i].Stock = level
}
