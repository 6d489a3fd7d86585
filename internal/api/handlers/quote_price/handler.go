package quote_price

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-DetailingBooking/internal/api/handlers"
	quotePrice "github.com/m04kA/SMC-DetailingBooking/internal/usecase/quote_price"
)

const msgInvalidRequestBody = "некорректное тело запроса"

type Handler struct {
	useCase QuotePriceUseCase
	logger  Logger
}

func NewHandler(useCase QuotePriceUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/public/shops/{slug}/quote
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	var req handlers.SelectionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /public/shops/{slug}/quote - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &quotePrice.Request{Slug: slug, Selection: req.ToDomain()})
	if err != nil {
		if handlers.RespondQuoteError(w, err) {
			h.logger.Warn("POST /public/shops/{slug}/quote - Rejected: slug=%s, service_id=%d, error=%v", slug, req.ServiceID, err)
			return
		}
		h.logger.Error("POST /public/shops/{slug}/quote - Failed to quote: slug=%s, error=%v", slug, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /public/shops/{slug}/quote - Quote computed: slug=%s, total=%s",
		slug, result.Quote.TotalPrice.StringFixed(2))
	handlers.RespondJSON(w, http.StatusOK, handlers.FromQuote(result.Quote))
}
