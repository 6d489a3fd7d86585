package get_reservation

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-DetailingBooking/internal/api/handlers"
	"github.com/m04kA/SMC-DetailingBooking/internal/service/reservations"
)

const msgReservationNotFound = "бронирование не найдено"

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

// Handle GET /api/v1/public/shops/{slug}/reservations/{reference}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	slug, reference := vars["slug"], vars["reference"]

	reservation, err := h.service.GetByReference(r.Context(), slug, reference)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound), errors.Is(err, reservations.ErrShopNotFound):
			h.logger.Warn("GET /public/shops/{slug}/reservations/{reference} - Reservation not found: slug=%s, reference=%s", slug, reference)
			handlers.RespondNotFound(w, msgReservationNotFound)
		default:
			h.logger.Error("GET /public/shops/{slug}/reservations/{reference} - Failed to get reservation: reference=%s, error=%v", reference, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /public/shops/{slug}/reservations/{reference} - Reservation retrieved: id=%d", reservation.ID)
	handlers.RespondJSON(w, http.StatusOK, reservation)
}
