package publish_shop

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-DetailingBooking/internal/api/handlers"
	"github.com/m04kA/SMC-DetailingBooking/internal/api/middleware"
	"github.com/m04kA/SMC-DetailingBooking/internal/service/shops"
)

const (
	msgUnauthorized   = "требуется авторизация"
	msgInvalidShopID  = "некорректный ID автомойки"
	msgShopNotFound   = "автомойка не найдена"
	msgAccessDenied   = "нет доступа к этой автомойке"
	msgNotPublishable = "для публикации нужны расписание и хотя бы одна активная услуга"
)

// Handler публикует (POST) или скрывает (DELETE) страницу автомойки
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

// Handle POST|DELETE /api/v1/shops/{shopId}/publication
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

	publish := r.Method != http.MethodDelete
	action := h.service.Publish
	if !publish {
		action = h.service.Unpublish
	}

	shop, err := action(r.Context(), userID, shopID)
	if err != nil {
		switch {
		case errors.Is(err, shops.ErrShopNotFound):
			handlers.RespondNotFound(w, msgShopNotFound)
		case errors.Is(err, shops.ErrAccessDenied):
			h.logger.Warn("%s /shops/{shopId}/publication - Access denied: shop=%d, user=%d", r.Method, shopID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)
		case errors.Is(err, shops.ErrNotPublishable):
			h.logger.Warn("%s /shops/{shopId}/publication - Not publishable: shop=%d", r.Method, shopID)
			handlers.RespondConflict(w, msgNotPublishable)
		default:
			h.logger.Error("%s /shops/{shopId}/publication - Failed: shop=%d, error=%v", r.Method, shopID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s /shops/{shopId}/publication - Shop published=%t: shop=%d", r.Method, shop.IsPublished, shopID)
	handlers.RespondJSON(w, http.StatusOK, shop)
}
