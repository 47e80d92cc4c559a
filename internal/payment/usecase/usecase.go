package usecase

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/fekuna/omnipos-sale-terminal/internal/cart"
	"github.com/fekuna/omnipos-sale-terminal/internal/model"
	"github.com/fekuna/omnipos-sale-terminal/internal/payment"
	"github.com/fekuna/omnipos-sale-terminal/internal/payment/dto"
	"github.com/fekuna/omnipos-sale-terminal/pkg/localstore"
	"github.com/fekuna/omnipos-sale-terminal/pkg/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const methodsCacheKey = "payment:methods"

type paymentUseCase struct {
	repo       payment.Repository
	ledger     cart.UseCase
	store      localstore.Store
	merchantID string
	logger     logger.ZapLogger

	mu           sync.Mutex
	methods      []model.PaymentMethod
	selected     model.PaymentMethod
	cashReceived decimal.Decimal
	cashEntered  bool
}

func NewPaymentUseCase(repo payment.Repository, ledger cart.UseCase, store localstore.Store, merchantID string, log logger.ZapLogger) payment.UseCase {
	return &paymentUseCase{
		repo:       repo,
		ledger:     ledger,
		store:      store,
		merchantID: merchantID,
		logger:     log,
	}
}

func (uc *paymentUseCase) LoadMethods(ctx context.Context) {
	methods := model.DefaultPaymentMethods()

	if data, err := uc.store.Get(ctx, uc.merchantID, methodsCacheKey); err == nil {
		var cached []model.PaymentMethod
		if json.Unmarshal(data, &cached) == nil {
			if valid := validMethods(cached); len(valid) > 0 {
				methods = valid
			}
		}
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.applyLocked(methods)
}

func (uc *paymentUseCase) RefreshMethods(ctx context.Context) {
	fetched, err := uc.repo.ListPaymentMethods(ctx, uc.merchantID)
	if err != nil {
		// Soft degradation: keep whatever set is live, say nothing.
		uc.logger.Warn("payment method refresh failed, keeping current set", zap.Error(err))
		return
	}
	if ctx.Err() != nil {
		// Session ended while the request was in flight; discard the result.
		return
	}

	valid := validMethods(fetched)
	if len(valid) == 0 {
		uc.logger.Warn("backend returned no active payment methods, keeping current set")
		return
	}

	uc.mu.Lock()
	uc.applyLocked(valid)
	uc.mu.Unlock()

	if data, err := json.Marshal(valid); err == nil {
		if err := uc.store.Set(ctx, uc.merchantID, methodsCacheKey, data); err != nil {
			uc.logger.Warn("failed to cache payment methods", zap.Error(err))
		}
	}
}

// applyLocked installs a method set, re-pointing the selection at the set's
// first method when the current one disappeared.
func (uc *paymentUseCase) applyLocked(methods []model.PaymentMethod) {
	uc.methods = methods
	for _, m := range methods {
		if m.ID == uc.selected.ID {
			uc.selected = m
			return
		}
	}
	uc.selected = methods[0]
}

// validMethods drops inactive entries and ids outside the known enumeration.
func validMethods(in []model.PaymentMethod) []model.PaymentMethod {
	var out []model.PaymentMethod
	for _, m := range in {
		if m.Active && model.KnownMethodID(m.ID) {
			out = append(out, m)
		}
	}
	return out
}

func (uc *paymentUseCase) Methods() []model.PaymentMethod {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	out := make([]model.PaymentMethod, len(uc.methods))
	copy(out, uc.methods)
	return out
}

func (uc *paymentUseCase) Select(_ context.Context, methodID string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	for _, m := range uc.methods {
		if m.ID == methodID {
			// Cash input survives the switch so returning to cash restores it.
			uc.selected = m
			return nil
		}
	}
	return payment.ErrUnknownMethod
}

func (uc *paymentUseCase) SetCashReceived(_ context.Context, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return payment.ErrNegativeCash
	}
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.cashReceived = amount
	uc.cashEntered = true
	return nil
}

func (uc *paymentUseCase) ResetCash() {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.cashReceived = decimal.Zero
	uc.cashEntered = false
}

func (uc *paymentUseCase) Selection() dto.Selection {
	total := uc.ledger.Totals().Total

	uc.mu.Lock()
	defer uc.mu.Unlock()

	sel := dto.Selection{
		Method:       uc.selected,
		CashReceived: uc.cashReceived,
		CashEntered:  uc.cashEntered,
		Change:       decimal.Zero,
		Shortfall:    decimal.Zero,
	}
	if uc.selected.ID == model.MethodCash && uc.cashEntered {
		delta := uc.cashReceived.Sub(total)
		if delta.IsNegative() {
			sel.Shortfall = delta.Neg()
		} else {
			sel.Change = delta
		}
	}
	return sel
}
