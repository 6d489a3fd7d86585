package get_shop_settings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-DetailingBooking/internal/api/handlers"
	"github.com/m04kA/SMC-DetailingBooking/internal/api/middleware"
	"github.com/m04kA/SMC-DetailingBooking/internal/service/shops"
)

const (
	msgUnauthorized  = "требуется авторизация"
	msgInvalidShopID = "некорректный ID автомойки"
	msgShopNotFound  = "автомойка не найдена"
	msgAccessDenied  = "нет доступа к настройкам этой автомойки"
)

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

// Handle GET /api/v1/shops/{shopId}/settings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	shopID, err := handlers.PathInt64(r, "shopId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidShopID)
		return
	}

	shop, err := h.service.GetSettings(r.Context(), userID, shopID)
	if err != nil {
		switch {
		case errors.Is(err, shops.ErrShopNotFound):
			handlers.RespondNotFound(w, msgShopNotFound)
		case errors.Is(err, shops.ErrAccessDenied):
			h.logger.Warn("GET /shops/{shopId}/settings - Access denied: shop=%d, user=%d", shopID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)
		default:
			h.logger.Error("GET /shops/{shopId}/settings - Failed to get settings: shop=%d, error=%v", shopID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, shop)
}
