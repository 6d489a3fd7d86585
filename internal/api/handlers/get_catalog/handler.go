package get_catalog

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-DetailingBooking/internal/api/handlers"
	"github.com/m04kA/SMC-DetailingBooking/internal/service/shops"
)

const msgShopNotFound = "автомойка не найдена"

type Handler struct {
	service ShopService
	logger  Logger
}

func NewHandler(service ShopService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/public/shops/{slug}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	catalog, err := h.service.GetPublicCatalog(r.Context(), slug)
	if err != nil {
		switch {
		case errors.Is(err, shops.ErrShopNotFound):
			h.logger.Warn("GET /public/shops/{slug} - Shop not found: slug=%s", slug)
			handlers.RespondNotFound(w, msgShopNotFound)
		default:
			h.logger.Error("GET /public/shops/{slug} - Failed to get catalog: slug=%s, error=%v", slug, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /public/shops/{slug} - Catalog retrieved: slug=%s, services=%d", slug, len(catalog.Services))
	handlers.RespondJSON(w, http.StatusOK, catalog)
}
