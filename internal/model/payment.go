package model

const (
	MethodCash         = "cash"
	MethodCard         = "card"
	MethodMobileMoney  = "mobile_money"
	MethodBankTransfer = "bank_transfer"
	MethodVoucher      = "voucher"
)

type PaymentMethod struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Active bool   `json:"active"`
}

// DefaultPaymentMethods is the hardcoded fallback set offered when neither
// the local cache nor the back office yields an active configuration.
func DefaultPaymentMethods() []PaymentMethod {
	return []PaymentMethod{
		{ID: MethodCash, Label: "Cash", Active: true},
		{ID: MethodCard, Label: "Card", Active: true},
		{ID: MethodMobileMoney, Label: "Mobile Money", Active: true},
		{ID: MethodBankTransfer, Label: "Bank Transfer", Active: true},
		{ID: MethodVoucher, Label: "Voucher", Active: true},
	}
}

// KnownMethodID validates a method id against the tagged enumeration.
// Unknown ids from configuration are dropped at the boundary instead of
// being mapped to a near match.
func KnownMethodID(id string) bool {
	switch id {
	case MethodCash, MethodCard, MethodMobileMoney, MethodBankTransfer, MethodVoucher:
		return true
	}
	return false
}
