package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fekuna/omnipos-sale-terminal/internal/delivery/httpserver"
	"github.com/fekuna/omnipos-sale-terminal/internal/payment"
	"github.com/fekuna/omnipos-sale-terminal/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type PaymentHandler struct {
	uc     payment.UseCase
	logger logger.ZapLogger
}

func NewPaymentHandler(uc payment.UseCase, log logger.ZapLogger) *PaymentHandler {
	return &PaymentHandler{uc: uc, logger: log}
}

func (h *PaymentHandler) ListMethods(w http.ResponseWriter, r *http.Request) {
	httpserver.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"methods": h.uc.Methods(),
	})
}

func (h *PaymentHandler) GetSelection(w http.ResponseWriter, r *http.Request) {
	httpserver.RespondJSON(w, http.StatusOK, h.uc.Selection())
}

func (h *PaymentHandler) SelectMethod(w http.ResponseWriter, r *http.Request) {
	methodID := chi.URLParam(r, "methodID")

	if err := h.uc.Select(r.Context(), methodID); err != nil {
		if errors.Is(err, payment.ErrUnknownMethod) {
			httpserver.RespondError(w, http.StatusNotFound, "unknown_method", err.Error())
			return
		}
		httpserver.RespondError(w, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}
	httpserver.RespondJSON(w, http.StatusOK, h.uc.Selection())
}

type cashInput struct {
	Amount decimal.Decimal `json:"amount"`
}

func (h *PaymentHandler) SetCash(w http.ResponseWriter, r *http.Request) {
	var input cashInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpserver.RespondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := h.uc.SetCashReceived(r.Context(), input.Amount); err != nil {
		if errors.Is(err, payment.ErrNegativeCash) {
			httpserver.RespondError(w, http.StatusBadRequest, "negative_cash", err.Error())
			return
		}
		httpserver.RespondError(w, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}
	httpserver.RespondJSON(w, http.StatusOK, h.uc.Selection())
}
