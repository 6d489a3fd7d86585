package get_shop_leads

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-DetailingBooking/internal/api/handlers"
	"github.com/m04kA/SMC-DetailingBooking/internal/api/middleware"
	"github.com/m04kA/SMC-DetailingBooking/internal/service/leads"
	"github.com/m04kA/SMC-DetailingBooking/internal/service/leads/models"
)

const (
	msgUnauthorized  = "требуется авторизация"
	msgInvalidShopID = "некорректный ID автомойки"
	msgInvalidQuery  = "некорректные параметры запроса"
	msgShopNotFound  = "автомойка не найдена"
	msgAccessDenied  = "нет доступа к заявкам этой автомойки"
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

// Handle GET /api/v1/shops/{shopId}/leads
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

	limit, offset, err := handlers.QueryPage(r)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	req := &models.ListRequest{UserID: userID, ShopID: shopID, Limit: limit, Offset: offset}
	if source := r.URL.Query().Get("source"); source != "" {
		req.Source = &source
	}

	list, err := h.service.ListForShop(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, leads.ErrShopNotFound):
			handlers.RespondNotFound(w, msgShopNotFound)
		case errors.Is(err, leads.ErrAccessDenied):
			h.logger.Warn("GET /shops/{shopId}/leads - Access denied: shop=%d, user=%d", shopID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)
		case errors.Is(err, leads.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidQuery)
		default:
			h.logger.Error("GET /shops/{shopId}/leads - Failed to list leads: shop=%d, error=%v", shopID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /shops/{shopId}/leads - Leads listed: shop=%d, count=%d", shopID, len(list.Leads))
	handlers.RespondJSON(w, http.StatusOK, list)
}
