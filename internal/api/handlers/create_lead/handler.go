package create_lead

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-DetailingBooking/internal/api/handlers"
	"github.com/m04kA/SMC-DetailingBooking/internal/service/leads"
	"github.com/m04kA/SMC-DetailingBooking/internal/service/leads/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные заявки: проверьте имя, email и телефон"
	msgShopNotFound       = "автомойка не найдена"
	msgServiceNotFound    = "услуга не найдена"
)

type Handler struct {
	service LeadService
	logger  Logger
}

func NewHandler(service LeadService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/public/shops/{slug}/leads
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	var req CreateLeadRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /public/shops/{slug}/leads - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	lead, err := h.service.Create(r.Context(), &models.CreateRequest{
		Slug:      slug,
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Message:   req.Message,
		ServiceID: req.ServiceID,
	})
	if err != nil {
		switch {
		case errors.Is(err, leads.ErrShopNotFound):
			h.logger.Warn("POST /public/shops/{slug}/leads - Shop not found: slug=%s", slug)
			handlers.RespondNotFound(w, msgShopNotFound)
		case errors.Is(err, leads.ErrServiceNotFound):
			h.logger.Warn("POST /public/shops/{slug}/leads - Service not found: slug=%s", slug)
			handlers.RespondNotFound(w, msgServiceNotFound)
		case errors.Is(err, leads.ErrInvalidInput):
			h.logger.Warn("POST /public/shops/{slug}/leads - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)
		default:
			h.logger.Error("POST /public/shops/{slug}/leads - Failed to create lead: slug=%s, error=%v", slug, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /public/shops/{slug}/leads - Lead created: id=%d, slug=%s", lead.ID, slug)
	handlers.RespondJSON(w, http.StatusCreated, lead)
}
