package payment

import (
	"context"
	"errors"

	"github.com/fekuna/omnipos-sale-terminal/internal/model"
	"github.com/fekuna/omnipos-sale-terminal/internal/payment/dto"
	"github.com/shopspring/decimal"
)

var (
	ErrUnknownMethod = errors.New("unknown payment method")
	ErrNegativeCash  = errors.New("cash received cannot be negative")
)

type UseCase interface {
	// LoadMethods seeds the method set synchronously from the local cache,
	// falling back to the hardcoded defaults. Called once at session start.
	LoadMethods(ctx context.Context)
	// RefreshMethods replaces the set with the back-office configuration if
	// it returns at least one active method. Soft-fail: an unreachable
	// provider leaves the current set untouched and the user uninformed.
	RefreshMethods(ctx context.Context)

	Methods() []model.PaymentMethod
	Select(ctx context.Context, methodID string) error
	SetCashReceived(ctx context.Context, amount decimal.Decimal) error
	ResetCash()
	Selection() dto.Selection
}
