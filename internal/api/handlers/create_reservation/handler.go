package create_reservation

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-DetailingBooking/internal/api/handlers"
	"github.com/m04kA/SMC-DetailingBooking/internal/service/reservations/models"
	createReservation "github.com/m04kA/SMC-DetailingBooking/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени начала, ожидается HH:MM"
	msgInvalidClient      = "некорректные контактные данные: проверьте имя, email и телефон"
	msgSlotNotAvailable   = "выбранный временной слот недоступен"
	msgShopClosed         = "автомойка закрыта в выбранную дату"
	msgInvalidBookingDate = "некорректная дата бронирования"
	msgDateTooFar         = "дата бронирования слишком далеко в будущем"
	msgInvalidTimeSlot    = "некорректный временной слот"
	msgTooLateToBook      = "слишком поздно для бронирования этого слота"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/public/shops/{slug}/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /public/shops/{slug}/reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(slug)
	if err != nil {
		h.logger.Warn("POST /public/shops/{slug}/reservations - Failed to parse request: %v", err)
		var pe *parseError
		if errors.As(err, &pe) && pe.field == "startTime" {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		if handlers.RespondQuoteError(w, err) {
			h.logger.Warn("POST /public/shops/{slug}/reservations - Quote rejected: slug=%s, error=%v", slug, err)
			return
		}

		switch {
		case errors.Is(err, createReservation.ErrSlotNotAvailable):
			h.logger.Warn("POST /public/shops/{slug}/reservations - Slot not available: slug=%s, date=%s, time=%s",
				slug, req.Date, req.StartTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createReservation.ErrShopClosed):
			h.logger.Warn("POST /public/shops/{slug}/reservations - Shop closed: slug=%s, date=%s", slug, req.Date)
			handlers.RespondBadRequest(w, msgShopClosed)

		case errors.Is(err, createReservation.ErrInvalidDate):
			h.logger.Warn("POST /public/shops/{slug}/reservations - Invalid booking date: slug=%s, date=%s", slug, req.Date)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, createReservation.ErrDateTooFarInFuture):
			h.logger.Warn("POST /public/shops/{slug}/reservations - Date too far in future: slug=%s, date=%s", slug, req.Date)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createReservation.ErrInvalidTimeSlot):
			h.logger.Warn("POST /public/shops/{slug}/reservations - Invalid time slot: slug=%s, time=%s", slug, req.StartTime)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createReservation.ErrTooLateToBook):
			h.logger.Warn("POST /public/shops/{slug}/reservations - Too late to book: slug=%s, time=%s", slug, req.StartTime)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /public/shops/{slug}/reservations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidClient)

		default:
			h.logger.Error("POST /public/shops/{slug}/reservations - Failed to create reservation: slug=%s, error=%v", slug, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /public/shops/{slug}/reservations - Reservation created: id=%d, reference=%s, slug=%s",
		result.ID, result.Reference, slug)
	handlers.RespondJSON(w, http.StatusCreated, models.FromDomainReservation(result))
}
