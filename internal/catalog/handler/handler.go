package handler

import (
	"net/http"

	"github.com/fekuna/omnipos-sale-terminal/internal/catalog"
	"github.com/fekuna/omnipos-sale-terminal/internal/catalog/dto"
	"github.com/fekuna/omnipos-sale-terminal/internal/delivery/httpserver"
	"github.com/fekuna/omnipos-sale-terminal/internal/model"
	"github.com/fekuna/omnipos-sale-terminal/pkg/logger"
	"go.uber.org/zap"
)

type CatalogHandler struct {
	uc     catalog.UseCase
	logger logger.ZapLogger
}

func NewCatalogHandler(uc catalog.UseCase, log logger.ZapLogger) *CatalogHandler {
	return &CatalogHandler{uc: uc, logger: log}
}

func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	if !h.uc.Loaded() {
		httpserver.RespondError(w, http.StatusServiceUnavailable, "catalog_unavailable", "product catalog is not loaded")
		return
	}

	filters := &dto.ViewFilters{
		SearchQuery: r.URL.Query().Get("search"),
		Category:    r.URL.Query().Get("category"),
	}

	products := h.uc.Visible(filters)
	if products == nil {
		products = []model.Product{}
	}
	httpserver.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"products": products,
		"total":    len(products),
	})
}

func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories := h.uc.Categories()
	if categories == nil {
		categories = []string{}
	}
	httpserver.RespondJSON(w, http.StatusOK, map[string]interface{}{"categories": categories})
}

// Reload refetches the catalog from the back office on demand, e.g. after
// connectivity returns.
func (h *CatalogHandler) Reload(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.Load(r.Context()); err != nil {
		h.logger.Error("catalog reload failed", zap.Error(err))
		httpserver.RespondError(w, http.StatusBadGateway, "catalog_reload_failed", err.Error())
		return
	}
	httpserver.RespondJSON(w, http.StatusOK, map[string]string{"status": "reloaded"})
}
