package auth

import (
	"context"
	"net/http"
)

type contextKey string

const (
	merchantIDKey contextKey = "merchant_id"
	cashierKey    contextKey = "cashier"
)

type Cashier struct {
	ID   string
	Name string
}

// Middleware populates merchant and cashier identity from request headers.
// Verification is owned by the shell in front of the terminal; absent
// headers fall back to the register's configured identity.
func Middleware(defaultMerchantID string, defaultCashier Cashier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			merchantID := r.Header.Get("X-Merchant-ID")
			if merchantID == "" {
				merchantID = defaultMerchantID
			}
			cashier := Cashier{
				ID:   r.Header.Get("X-Cashier-ID"),
				Name: r.Header.Get("X-Cashier-Name"),
			}
			if cashier.ID == "" {
				cashier = defaultCashier
			}

			ctx := context.WithValue(r.Context(), merchantIDKey, merchantID)
			ctx = context.WithValue(ctx, cashierKey, cashier)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetMerchantID(ctx context.Context) string {
	if val, ok := ctx.Value(merchantIDKey).(string); ok {
		return val
	}
	return ""
}

func GetCashier(ctx context.Context) Cashier {
	if val, ok := ctx.Value(cashierKey).(Cashier); ok {
		return val
	}
	return Cashier{}
}

// WithIdentity is used by tests and background jobs that have no request.
func WithIdentity(ctx context.Context, merchantID string, cashier Cashier) context.Context {
	ctx = context.WithValue(ctx, merchantIDKey, merchantID)
	return context.WithValue(ctx, cashierKey, cashier)
}
