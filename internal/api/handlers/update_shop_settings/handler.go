package update_shop_settings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-DetailingBooking/internal/api/handlers"
	"github.com/m04kA/SMC-DetailingBooking/internal/api/middleware"
	"github.com/m04kA/SMC-DetailingBooking/internal/service/shops"
	"github.com/m04kA/SMC-DetailingBooking/internal/service/shops/models"
)

const (
	msgUnauthorized       = "требуется авторизация"
	msgInvalidShopID      = "некорректный ID автомойки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSettings    = "некорректные настройки бронирования: проверьте шаг слота, горизонт и вместимость"
	msgShopNotFound       = "автомойка не найдена"
	msgAccessDenied       = "нет доступа к настройкам этой автомойки"
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

// Handle PATCH /api/v1/shops/{shopId}/settings
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

	var req models.UpdateSettingsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /shops/{shopId}/settings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID
	req.ShopID = shopID

	shop, err := h.service.UpdateSettings(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, shops.ErrShopNotFound):
			handlers.RespondNotFound(w, msgShopNotFound)
		case errors.Is(err, shops.ErrAccessDenied):
			h.logger.Warn("PATCH /shops/{shopId}/settings - Access denied: shop=%d, user=%d", shopID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)
		case errors.Is(err, shops.ErrInvalidInput):
			h.logger.Warn("PATCH /shops/{shopId}/settings - Invalid settings: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSettings)
		default:
			h.logger.Error("PATCH /shops/{shopId}/settings - Failed to update settings: shop=%d, error=%v", shopID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /shops/{shopId}/settings - Settings updated: shop=%d", shopID)
	handlers.RespondJSON(w, http.StatusOK, shop)
}
