package cancel_reservation

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-DetailingBooking/internal/api/handlers"
	"github.com/m04kA/SMC-DetailingBooking/internal/service/reservations"
	"github.com/m04kA/SMC-DetailingBooking/internal/service/reservations/models"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgReservationNotFound = "бронирование не найдено"
	msgCannotCancel        = "бронирование не может быть отменено"
	msgInvalidInput        = "некорректные данные отмены"
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

// Handle POST /api/v1/public/shops/{slug}/reservations/{reference}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	slug := vars["slug"]

	reference, err := uuid.Parse(vars["reference"])
	if err != nil {
		h.logger.Warn("POST /public/shops/{slug}/reservations/{reference}/cancel - Invalid reference: %s", vars["reference"])
		handlers.RespondNotFound(w, msgReservationNotFound)
		return
	}

	var req CancelReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /public/shops/{slug}/reservations/{reference}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	reservation, err := h.service.CancelByClient(r.Context(), &models.CancelByClientRequest{
		Slug:      slug,
		Reference: reference,
		Email:     req.Email,
		Reason:    req.Reason,
	})
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound), errors.Is(err, reservations.ErrShopNotFound):
			h.logger.Warn("POST /public/shops/{slug}/reservations/{reference}/cancel - Reservation not found: reference=%s", reference)
			handlers.RespondNotFound(w, msgReservationNotFound)
		case errors.Is(err, reservations.ErrCannotCancel):
			h.logger.Warn("POST /public/shops/{slug}/reservations/{reference}/cancel - Cannot cancel: reference=%s", reference)
			handlers.RespondConflict(w, msgCannotCancel)
		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("POST /public/shops/{slug}/reservations/{reference}/cancel - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)
		default:
			h.logger.Error("POST /public/shops/{slug}/reservations/{reference}/cancel - Failed to cancel: reference=%s, error=%v", reference, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /public/shops/{slug}/reservations/{reference}/cancel - Reservation cancelled by client: id=%d", reservation.ID)
	handlers.RespondJSON(w, http.StatusOK, reservation)
}
