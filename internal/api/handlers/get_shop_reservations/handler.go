package get_shop_reservations

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-DetailingBooking/internal/api/handlers"
	"github.com/m04kA/SMC-DetailingBooking/internal/api/middleware"
	"github.com/m04kA/SMC-DetailingBooking/internal/service/reservations"
)

const (
	msgUnauthorized   = "требуется авторизация"
	msgInvalidShopID  = "некорректный ID автомойки"
	msgInvalidQuery   = "некорректные параметры запроса"
	msgShopNotFound   = "автомойка не найдена"
	msgAccessDenied   = "нет доступа к бронированиям этой автомойки"
	msgInvalidFilters = "некорректный фильтр: проверьте даты и статус"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/shops/{shopId}/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	shopID, err := handlers.PathInt64(r, "shopId")
	if err != nil {
		h.logger.Warn("GET /shops/{shopId}/reservations - Invalid shop ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidShopID)
		return
	}

	req, err := parseListRequest(r, userID, shopID)
	if err != nil {
		h.logger.Warn("GET /shops/{shopId}/reservations - Invalid query: shop=%d, error=%v", shopID, err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	list, err := h.service.ListForShop(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrShopNotFound):
			h.logger.Warn("GET /shops/{shopId}/reservations - Shop not found: shop=%d", shopID)
			handlers.RespondNotFound(w, msgShopNotFound)
		case errors.Is(err, reservations.ErrAccessDenied):
			h.logger.Warn("GET /shops/{shopId}/reservations - Access denied: shop=%d, user=%d", shopID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)
		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /shops/{shopId}/reservations - Invalid filters: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilters)
		default:
			h.logger.Error("GET /shops/{shopId}/reservations - Failed to list reservations: shop=%d, error=%v", shopID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /shops/{shopId}/reservations - Reservations listed: shop=%d, count=%d", shopID, len(list.Reservations))
	handlers.RespondJSON(w, http.StatusOK, list)
}
