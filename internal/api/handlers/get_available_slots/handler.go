package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-DetailingBooking/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-DetailingBooking/internal/usecase/get_available_slots"
)

const (
	msgInvalidSelection = "некорректные параметры услуги: serviceId обязателен, formulaId, vehicleSizeId и addOnIds опциональны"
	msgMissingDate      = "дата обязательна"
	msgInvalidDateFmt   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgDateInPast       = "дата в прошлом"
	msgDateTooFar       = "дата слишком далеко в будущем"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/public/shops/{slug}/available-slots
// Query params: serviceId (required), formulaId, vehicleSizeId, addOnIds (comma separated), date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	sel, err := handlers.SelectionFromQuery(r)
	if err != nil {
		h.logger.Warn("GET /public/shops/{slug}/available-slots - Invalid selection: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSelection)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /public/shops/{slug}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(slug, sel, dateStr)
	if err != nil {
		h.logger.Warn("GET /public/shops/{slug}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateFmt)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		if handlers.RespondQuoteError(w, err) {
			h.logger.Warn("GET /public/shops/{slug}/available-slots - Rejected: slug=%s, service_id=%d, error=%v",
				slug, sel.ServiceID, err)
			return
		}

		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /public/shops/{slug}/available-slots - Date in past: slug=%s, date=%s", slug, dateStr)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, getAvailableSlots.ErrDateTooFarInFuture):
			h.logger.Warn("GET /public/shops/{slug}/available-slots - Date too far: slug=%s, date=%s", slug, dateStr)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /public/shops/{slug}/available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSelection)

		default:
			h.logger.Error("GET /public/shops/{slug}/available-slots - Failed to get slots: slug=%s, service_id=%d, error=%v",
				slug, sel.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /public/shops/{slug}/available-slots - Slots retrieved: slug=%s, date=%s, slots_count=%d",
		slug, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
