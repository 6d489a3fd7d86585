package reorder_catalog

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-DetailingBooking/internal/api/handlers"
	"github.com/m04kA/SMC-DetailingBooking/internal/api/middleware"
	"github.com/m04kA/SMC-DetailingBooking/internal/service/shops"
	"github.com/m04kA/SMC-DetailingBooking/internal/service/shops/models"
)

const (
	msgUnauthorized       = "требуется авторизация"
	msgInvalidShopID      = "некорректный ID автомойки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректный список или набор id"
	msgMismatch           = "список id не совпадает с текущим содержимым списка"
	msgShopNotFound       = "автомойка не найдена"
	msgServiceNotFound    = "услуга не найдена"
	msgAccessDenied       = "нет доступа к каталогу этой автомойки"
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

// Handle PUT /api/v1/shops/{shopId}/reorder/{list}
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
	list := mux.Vars(r)["list"]

	var req ReorderRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /shops/{shopId}/reorder/{list} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	err = h.service.Reorder(r.Context(), &models.ReorderRequest{
		UserID:    userID,
		ShopID:    shopID,
		List:      list,
		ServiceID: req.ServiceID,
		IDs:       req.IDs,
	})
	if err != nil {
		switch {
		case errors.Is(err, shops.ErrShopNotFound):
			handlers.RespondNotFound(w, msgShopNotFound)
		case errors.Is(err, shops.ErrServiceNotFound):
			handlers.RespondNotFound(w, msgServiceNotFound)
		case errors.Is(err, shops.ErrAccessDenied):
			h.logger.Warn("PUT /shops/{shopId}/reorder/{list} - Access denied: shop=%d, user=%d", shopID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)
		case errors.Is(err, shops.ErrReorderMismatch):
			h.logger.Warn("PUT /shops/{shopId}/reorder/{list} - IDs mismatch: shop=%d, list=%s", shopID, list)
			handlers.RespondConflict(w, msgMismatch)
		case errors.Is(err, shops.ErrInvalidInput):
			h.logger.Warn("PUT /shops/{shopId}/reorder/{list} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)
		default:
			h.logger.Error("PUT /shops/{shopId}/reorder/{list} - Failed to reorder: shop=%d, list=%s, error=%v", shopID, list, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /shops/{shopId}/reorder/{list} - Reordered: shop=%d, list=%s, items=%d", shopID, list, len(req.IDs))
	w.WriteHeader(http.StatusNoContent)
}
