package usecase

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/fekuna/omnipos-sale-terminal/internal/cart"
	"github.com/fekuna/omnipos-sale-terminal/internal/model"
	"github.com/fekuna/omnipos-sale-terminal/internal/notice"
	"github.com/fekuna/omnipos-sale-terminal/pkg/localstore"
	"github.com/fekuna/omnipos-sale-terminal/pkg/logger"
	"go.uber.org/zap"
)

const badgeKey = "cart:badge"

type cartUseCase struct {
	notices    *notice.Bus
	store      localstore.Store
	merchantID string
	logger     logger.ZapLogger

	mu    sync.Mutex
	lines []model.CartLine
}

func NewCartUseCase(notices *notice.Bus, store localstore.Store, merchantID string, log logger.ZapLogger) cart.UseCase {
	return &cartUseCase{
		notices:    notices,
		store:      store,
		merchantID: merchantID,
		logger:     log,
	}
}

func (uc *cartUseCase) AddLine(ctx context.Context, product *model.Product, requestedQty int) error {
	if requestedQty <= 0 {
		requestedQty = 1
	}

	if !product.Sellable() {
		uc.notices.Notify(notice.ToneWarning, fmt.Sprintf("%s is not available for sale", product.Name))
		return cart.ErrProductNotSellable
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	idx := uc.indexOf(product.ID)
	if idx >= 0 {
		line := &uc.lines[idx]
		next := line.Quantity + requestedQty
		if line.StockTracked() && next > line.StockSnapshot {
			uc.notices.Notify(notice.ToneError,
				fmt.Sprintf("stock insufficient for %s: only %d available", line.Name, line.StockSnapshot))
			return cart.ErrInsufficientStock
		}
		line.Quantity = next
		uc.broadcastBadge(ctx)
		return nil
	}

	if !product.IsService() && requestedQty > product.Stock {
		uc.notices.Notify(notice.ToneError,
			fmt.Sprintf("stock insufficient for %s: only %d available", product.Name, product.Stock))
		return cart.ErrInsufficientStock
	}

	uc.lines = append(uc.lines, model.CartLine{
		ProductID:     product.ID,
		Name:          product.Name,
		SKU:           product.SKU,
		Price:         product.Price,
		Quantity:      requestedQty,
		Type:          product.Type,
		StockSnapshot: product.Stock,
		TaxRate:       product.TaxRate,
	})
	uc.broadcastBadge(ctx)
	return nil
}

func (uc *cartUseCase) UpdateQuantity(ctx context.Context, productID string, newQty int) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	idx := uc.indexOf(productID)
	if idx < 0 {
		return cart.ErrLineNotFound
	}

	if newQty <= 0 {
		return uc.removeLocked(ctx, idx)
	}

	line := &uc.lines[idx]
	if line.StockTracked() && newQty > line.StockSnapshot {
		uc.notices.Notify(notice.ToneError,
			fmt.Sprintf("stock insufficient for %s: only %d available", line.Name, line.StockSnapshot))
		return cart.ErrInsufficientStock
	}

	line.Quantity = newQty
	uc.broadcastBadge(ctx)
	return nil
}

func (uc *cartUseCase) RemoveLine(ctx context.Context, productID string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	idx := uc.indexOf(productID)
	if idx < 0 {
		return cart.ErrLineNotFound
	}
	return uc.removeLocked(ctx, idx)
}

func (uc *cartUseCase) removeLocked(ctx context.Context, idx int) error {
	name := uc.lines[idx].Name
	uc.lines = append(uc.lines[:idx], uc.lines[idx+1:]...)
	uc.notices.Notify(notice.ToneInfo, fmt.Sprintf("removed %s from cart", name))
	uc.broadcastBadge(ctx)
	return nil
}

func (uc *cartUseCase) Clear(ctx context.Context) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.lines = nil
	uc.broadcastBadge(ctx)
}

func (uc *cartUseCase) ClearSubmitted(ctx context.Context, submitted []model.CartLine) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	sold := make(map[string]int, len(submitted))
	for i := range submitted {
		sold[submitted[i].ProductID] += submitted[i].Quantity
	}

	remaining := uc.lines[:0]
	for _, line := range uc.lines {
		line.Quantity -= sold[line.ProductID]
		if line.Quantity > 0 {
			remaining = append(remaining, line)
		}
	}
	uc.lines = remaining
	uc.broadcastBadge(ctx)
}

func (uc *cartUseCase) Replace(ctx context.Context, lines []model.CartLine) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.lines = make([]model.CartLine, len(lines))
	copy(uc.lines, lines)
	uc.broadcastBadge(ctx)
}

func (uc *cartUseCase) Lines() []model.CartLine {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	out := make([]model.CartLine, len(uc.lines))
	copy(out, uc.lines)
	return out
}

func (uc *cartUseCase) Totals() model.CartTotals {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return model.TotalsOf(uc.lines)
}

func (uc *cartUseCase) IsEmpty() bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return len(uc.lines) == 0
}

func (uc *cartUseCase) indexOf(productID string) int {
	for i := range uc.lines {
		if uc.lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// broadcastBadge publishes the item count for the cart badge elsewhere in
// the shell. Best effort; a store outage must not fail a cart mutation.
func (uc *cartUseCase) broadcastBadge(ctx context.Context) {
	count := 0
	for i := range uc.lines {
		count += uc.lines[i].Quantity
	}
	if err := uc.store.Set(ctx, uc.merchantID, badgeKey, []byte(strconv.Itoa(count))); err != nil {
		uc.logger.Warn("failed to broadcast cart badge count", zap.Error(err))
	}
}
