package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fekuna/omnipos-sale-terminal/internal/delivery/httpserver"
	"github.com/fekuna/omnipos-sale-terminal/internal/model"
	"github.com/fekuna/omnipos-sale-terminal/internal/parked"
	"github.com/fekuna/omnipos-sale-terminal/pkg/logger"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ParkedHandler struct {
	uc     parked.UseCase
	logger logger.ZapLogger
}

func NewParkedHandler(uc parked.UseCase, log logger.ZapLogger) *ParkedHandler {
	return &ParkedHandler{uc: uc, logger: log}
}

func (h *ParkedHandler) List(w http.ResponseWriter, r *http.Request) {
	carts := h.uc.List()
	if carts == nil {
		carts = []model.ParkedCart{}
	}
	httpserver.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"parked_carts": carts,
		"mode":         h.uc.Mode(),
	})
}

type parkInput struct {
	Note string `json:"note"`
}

func (h *ParkedHandler) Park(w http.ResponseWriter, r *http.Request) {
	var input parkInput
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			httpserver.RespondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
			return
		}
	}

	slot, err := h.uc.Park(r.Context(), input.Note)
	if err != nil {
		if errors.Is(err, parked.ErrEmptyCart) {
			httpserver.RespondError(w, http.StatusUnprocessableEntity, "empty_cart", err.Error())
			return
		}
		h.logger.Error("failed to park cart", zap.Error(err))
		httpserver.RespondError(w, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}
	httpserver.RespondJSON(w, http.StatusCreated, slot)
}

func (h *ParkedHandler) Resume(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	note, err := h.uc.Resume(r.Context(), id)
	if err != nil {
		h.respondSlotError(w, err)
		return
	}
	httpserver.RespondJSON(w, http.StatusOK, map[string]string{"note": note})
}

func (h *ParkedHandler) Discard(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.uc.Discard(r.Context(), id); err != nil {
		h.respondSlotError(w, err)
		return
	}
	httpserver.RespondJSON(w, http.StatusNoContent, nil)
}

func (h *ParkedHandler) respondSlotError(w http.ResponseWriter, err error) {
	if errors.Is(err, parked.ErrSlotNotFound) {
		httpserver.RespondError(w, http.StatusNotFound, "not_found", err.Error())
		return
	}
	h.logger.Error("parked cart operation failed", zap.Error(err))
	httpserver.RespondError(w, http.StatusInternalServerError, "internal_error", err.Error())
}
