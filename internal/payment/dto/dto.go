package dto

import (
	"github.com/fekuna/omnipos-sale-terminal/internal/model"
	"github.com/shopspring/decimal"
)

// Selection is the current tender state. Change and Shortfall are only
// meaningful while cash is the selected method; both derive from the live
// cart total, unrounded until checkout.
type Selection struct {
	Method       model.PaymentMethod `json:"method"`
	CashReceived decimal.Decimal     `json:"cash_received"`
	CashEntered  bool                `json:"cash_entered"`
	Change       decimal.Decimal     `json:"change"`
	Shortfall    decimal.Decimal     `json:"shortfall"`
}
