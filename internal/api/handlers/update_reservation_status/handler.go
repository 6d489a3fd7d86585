package update_reservation_status

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
	msgInvalidStatus       = "некорректный статус бронирования"
	msgInvalidTransition   = "недопустимая смена статуса"
	msgReservationNotFound = "бронирование не найдено"
	msgAccessDenied        = "нет доступа к бронированиям этой автомойки"
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

// Handle PATCH /api/v1/shops/{shopId}/reservations/{reservationId}/status
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

	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /shops/{shopId}/reservations/{reservationId}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	reservation, err := h.service.UpdateStatus(r.Context(), &models.UpdateStatusRequest{
		UserID:        userID,
		ShopID:        shopID,
		ReservationID: reservationID,
		Status:        req.Status,
	})
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound), errors.Is(err, reservations.ErrShopNotFound):
			h.logger.Warn("PATCH /shops/{shopId}/reservations/{reservationId}/status - Not found: shop=%d, id=%d", shopID, reservationID)
			handlers.RespondNotFound(w, msgReservationNotFound)
		case errors.Is(err, reservations.ErrAccessDenied):
			h.logger.Warn("PATCH /shops/{shopId}/reservations/{reservationId}/status - Access denied: shop=%d, user=%d", shopID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)
		case errors.Is(err, reservations.ErrInvalidTransition):
			h.logger.Warn("PATCH /shops/{shopId}/reservations/{reservationId}/status - Invalid transition: id=%d, status=%s", reservationID, req.Status)
			handlers.RespondConflict(w, msgInvalidTransition)
		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("PATCH /shops/{shopId}/reservations/{reservationId}/status - Invalid status: %s", req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)
		default:
			h.logger.Error("PATCH /shops/{shopId}/reservations/{reservationId}/status - Failed to update status: id=%d, error=%v", reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /shops/{shopId}/reservations/{reservationId}/status - Status updated: id=%d, status=%s", reservation.ID, reservation.Status)
	handlers.RespondJSON(w, http.StatusOK, reservation)
}
