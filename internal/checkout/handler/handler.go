package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/fekuna/omnipos-sale-terminal/internal/checkout"
	"github.com/fekuna/omnipos-sale-terminal/internal/delivery/httpserver"
	"github.com/fekuna/omnipos-sale-terminal/internal/model"
	"github.com/fekuna/omnipos-sale-terminal/pkg/logger"
	"go.uber.org/zap"
)

const defaultHistoryLimit = 50

type CheckoutHandler struct {
	uc     checkout.UseCase
	logger logger.ZapLogger
}

func NewCheckoutHandler(uc checkout.UseCase, log logger.ZapLogger) *CheckoutHandler {
	return &CheckoutHandler{uc: uc, logger: log}
}

func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	sale, err := h.uc.Checkout(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrEmptyCart):
			httpserver.RespondError(w, http.StatusUnprocessableEntity, "empty_cart", err.Error())
		case errors.Is(err, checkout.ErrInsufficientCash):
			httpserver.RespondError(w, http.StatusUnprocessableEntity, "insufficient_cash", err.Error())
		default:
			// Submission failures surface the back office's message so the
			// cashier knows what to fix before re-attempting.
			h.logger.Error("checkout failed", zap.Error(err))
			httpserver.RespondError(w, http.StatusBadGateway, "submission_failed", err.Error())
		}
		return
	}
	httpserver.RespondJSON(w, http.StatusCreated, sale)
}

func (h *CheckoutHandler) ListSales(w http.ResponseWriter, r *http.Request) {
	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			httpserver.RespondError(w, http.StatusBadRequest, "invalid_limit", "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	sales, err := h.uc.History(r.Context(), limit)
	if err != nil {
		h.logger.Error("failed to list sale history", zap.Error(err))
		httpserver.RespondError(w, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}
	if sales == nil {
		sales = []model.CompletedSale{}
	}
	httpserver.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"sales": sales,
		"total": len(sales),
	})
}

func (h *CheckoutHandler) LastSale(w http.ResponseWriter, r *http.Request) {
	sale, err := h.uc.LastSale()
	if err != nil {
		httpserver.RespondError(w, http.StatusNotFound, "no_sale", err.Error())
		return
	}
	httpserver.RespondJSON(w, http.StatusOK, sale)
}

func (h *CheckoutHandler) ReprintReceipt(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.ReprintLast(r.Context()); err != nil {
		if errors.Is(err, checkout.ErrNoSaleYet) {
			httpserver.RespondError(w, http.StatusNotFound, "no_sale", err.Error())
			return
		}
		h.logger.Error("receipt reprint failed", zap.Error(err))
		httpserver.RespondError(w, http.StatusInternalServerError, "print_failed", err.Error())
		return
	}
	httpserver.RespondJSON(w, http.StatusOK, map[string]string{"status": "printed"})
}
