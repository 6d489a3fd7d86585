package replace_schedule

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
	msgInvalidSchedule    = "некорректное расписание: окна не должны пересекаться, открытие раньше закрытия"
	msgShopNotFound       = "автомойка не найдена"
	msgAccessDenied       = "нет доступа к расписанию этой автомойки"
	msgEmptyPublished     = "опубликованная автомойка должна работать хотя бы один день, сначала снимите её с публикации"
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

// Handle PUT /api/v1/shops/{shopId}/schedule
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

	var req ReplaceScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /shops/{shopId}/schedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	windows, err := h.service.ReplaceSchedule(r.Context(), &models.ReplaceScheduleRequest{
		UserID:  userID,
		ShopID:  shopID,
		Windows: req.Windows,
	})
	if err != nil {
		switch {
		case errors.Is(err, shops.ErrShopNotFound):
			handlers.RespondNotFound(w, msgShopNotFound)
		case errors.Is(err, shops.ErrAccessDenied):
			h.logger.Warn("PUT /shops/{shopId}/schedule - Access denied: shop=%d, user=%d", shopID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)
		case errors.Is(err, shops.ErrEmptyPublishedSchedule):
			handlers.RespondConflict(w, msgEmptyPublished)
		case errors.Is(err, shops.ErrInvalidInput):
			h.logger.Warn("PUT /shops/{shopId}/schedule - Invalid schedule: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSchedule)
		default:
			h.logger.Error("PUT /shops/{shopId}/schedule - Failed to replace schedule: shop=%d, error=%v", shopID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /shops/{shopId}/schedule - Schedule replaced: shop=%d, windows=%d", shopID, len(windows))
	handlers.RespondJSON(w, http.StatusOK, ScheduleResponse{Windows: windows})
}
