package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fekuna/omnipos-sale-terminal/internal/cart"
	"github.com/fekuna/omnipos-sale-terminal/internal/cart/dto"
	"github.com/fekuna/omnipos-sale-terminal/internal/catalog"
	"github.com/fekuna/omnipos-sale-terminal/internal/delivery/httpserver"
	"github.com/fekuna/omnipos-sale-terminal/internal/model"
	"github.com/fekuna/omnipos-sale-terminal/internal/payment"
	"github.com/fekuna/omnipos-sale-terminal/pkg/logger"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CartHandler struct {
	uc       cart.UseCase
	products catalog.UseCase
	selector payment.UseCase
	logger   logger.ZapLogger
}

func NewCartHandler(uc cart.UseCase, products catalog.UseCase, selector payment.UseCase, log logger.ZapLogger) *CartHandler {
	return &CartHandler{
		uc:       uc,
		products: products,
		selector: selector,
		logger:   log,
	}
}

type cartResponse struct {
	Lines  []model.CartLine `json:"lines"`
	Totals model.CartTotals `json:"totals"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	httpserver.RespondJSON(w, http.StatusOK, h.snapshot())
}

func (h *CartHandler) AddLine(w http.ResponseWriter, r *http.Request) {
	var input dto.AddLineInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpserver.RespondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if input.ProductID == "" {
		httpserver.RespondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}
	if input.Quantity <= 0 {
		input.Quantity = 1
	}

	product, ok := h.products.Get(input.ProductID)
	if !ok {
		httpserver.RespondError(w, http.StatusNotFound, "not_found", "product not found")
		return
	}

	if err := h.uc.AddLine(r.Context(), product, input.Quantity); err != nil {
		h.respondCartError(w, err)
		return
	}
	httpserver.RespondJSON(w, http.StatusCreated, h.snapshot())
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")

	var input dto.UpdateQuantityInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpserver.RespondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := h.uc.UpdateQuantity(r.Context(), productID, input.Quantity); err != nil {
		h.respondCartError(w, err)
		return
	}
	httpserver.RespondJSON(w, http.StatusOK, h.snapshot())
}

func (h *CartHandler) RemoveLine(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")

	if err := h.uc.RemoveLine(r.Context(), productID); err != nil {
		h.respondCartError(w, err)
		return
	}
	httpserver.RespondJSON(w, http.StatusOK, h.snapshot())
}

// ClearCart voids the sale in progress. The cash input goes with it; parked
// carts are untouched.
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.uc.Clear(r.Context())
	h.selector.ResetCash()
	httpserver.RespondJSON(w, http.StatusOK, h.snapshot())
}

func (h *CartHandler) snapshot() cartResponse {
	lines := h.uc.Lines()
	if lines == nil {
		lines = []model.CartLine{}
	}
	return cartResponse{Lines: lines, Totals: h.uc.Totals()}
}

func (h *CartHandler) respondCartError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, cart.ErrLineNotFound):
		httpserver.RespondError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, cart.ErrInsufficientStock):
		httpserver.RespondError(w, http.StatusConflict, "insufficient_stock", err.Error())
	case errors.Is(err, cart.ErrProductNotSellable):
		httpserver.RespondError(w, http.StatusUnprocessableEntity, "not_sellable", err.Error())
	default:
		h.logger.Error("cart operation failed", zap.Error(err))
		httpserver.RespondError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}
