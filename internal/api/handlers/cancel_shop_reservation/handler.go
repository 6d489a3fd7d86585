package cancel_shop_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-DetailingBooking/internal/api/handlers"
	"github.com/m04kA/SMC-DetailingBooking/internal/api/middleware"
	"github.com/m04kA/SMC-DetailingBooking/internal/service/reservations"
	"github.com/m04kA/SMC-DetailingBooking/internal/service/reservations/models"
)

const (
	msgUnauthorized        = "требуется авторизация"
	msgInvalidPath         = "некорректный ID автомойки или бронирования"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgReservationNotFound = "бронирование не найдено"
	msgAccessDenied        = "нет доступа к бронированиям этой автомойки"
	msgCannotCancel        = "бронирование не может быть отменено"
	msgInvalidInput        = "слишком длинная причина отмены"
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

// Handle POST /api/v1/shops/{shopId}/reservations/{reservationId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	shopID, err := handlers.PathInt64(r, "shopId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidPath)
		return
	}
	reservationID, err := handlers.PathInt64(r, "reservationId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidPath)
		return
	}

	var req CancelRequest
	if r.ContentLength != 0 {
		if err := handlers.DecodeJSON(r, &req); err != nil {
			h.logger.Warn("POST /shops/{shopId}/reservations/{reservationId}/cancel - Invalid request body: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
	}

	reservation, err := h.service.CancelByShop(r.Context(), &models.CancelByShopRequest{
		UserID:        userID,
		ShopID:        shopID,
		ReservationID: reservationID,
		Reason:        req.Reason,
	})
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound), errors.Is(err, reservations.ErrShopNotFound):
			h.logger.Warn("POST /shops/{shopId}/reservations/{reservationId}/cancel - Not found: shop=%d, id=%d", shopID, reservationID)
			handlers.RespondNotFound(w, msgReservationNotFound)
		case errors.Is(err, reservations.ErrAccessDenied):
			h.logger.Warn("POST /shops/{shopId}/reservations/{reservationId}/cancel - Access denied: shop=%d, user=%d", shopID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)
		case errors.Is(err, reservations.ErrCannotCancel):
			h.logger.Warn("POST /shops/{shopId}/reservations/{reservationId}/cancel - Cannot cancel: id=%d", reservationID)
			handlers.RespondConflict(w, msgCannotCancel)
		case errors.Is(err, reservations.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)
		default:
			h.logger.Error("POST /shops/{shopId}/reservations/{reservationId}/cancel - Failed to cancel: id=%d, error=%v", reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /shops/{shopId}/reservations/{reservationId}/cancel - Reservation cancelled by shop: id=%d", reservation.ID)
	handlers.RespondJSON(w, http.StatusOK, reservation)
}
