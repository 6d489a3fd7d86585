package handlers

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
	quotePrice "github.com/m04kA/SMC-DetailingBooking/internal/usecase/quote_price"
)

const (
	msgShopNotFound        = "автомойка не найдена"
	msgServiceNotFound     = "услуга не найдена"
	msgFormulaNotFound     = "формула не найдена"
	msgVehicleSizeNotFound = "размер автомобиля не найден"
	msgAddOnNotFound       = "дополнительная опция не найдена"
	msgInvalidSelection    = "некорректный выбор услуги"
)

// SelectionRequest выбор клиента в теле запроса
type SelectionRequest struct {
	ServiceID     int64   `json:"serviceId"`
	FormulaID     *int64  `json:"formulaId,omitempty"`
	VehicleSizeID *int64  `json:"vehicleSizeId,omitempty"`
	AddOnIDs      []int64 `json:"addOnIds,omitempty"`
}

// ToDomain конвертирует выбор в domain модель
func (s SelectionRequest) ToDomain() domain.Selection {
	return domain.Selection{
		ServiceID:     s.ServiceID,
		FormulaID:     s.FormulaID,
		VehicleSizeID: s.VehicleSizeID,
		AddOnIDs:      s.AddOnIDs,
	}
}

// SelectionFromQuery читает выбор из query параметров serviceId, formulaId, vehicleSizeId, addOnIds
func SelectionFromQuery(r *http.Request) (domain.Selection, error) {
	serviceID, err := QueryInt64(r, "serviceId")
	if err != nil {
		return domain.Selection{}, err
	}
	if serviceID == nil {
		return domain.Selection{}, ErrMissingParam
	}
	formulaID, err := QueryInt64(r, "formulaId")
	if err != nil {
		return domain.Selection{}, err
	}
	sizeID, err := QueryInt64(r, "vehicleSizeId")
	if err != nil {
		return domain.Selection{}, err
	}
	addOnIDs, err := QueryInt64List(r, "addOnIds")
	if err != nil {
		return domain.Selection{}, err
	}
	return domain.Selection{ServiceID: *serviceID, FormulaID: formulaID, VehicleSizeID: sizeID, AddOnIDs: addOnIDs}, nil
}

// QuoteLineResponse строка сметы
type QuoteLineResponse struct {
	Kind            string `json:"kind"`
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Price           string `json:"price"`
	DurationMinutes int    `json:"durationMinutes"`
}

// QuoteResponse смета выбора
type QuoteResponse struct {
	ServiceID            int64               `json:"serviceId"`
	FormulaID            *int64              `json:"formulaId,omitempty"`
	VehicleSizeID        *int64              `json:"vehicleSizeId,omitempty"`
	AddOnIDs             []int64             `json:"addOnIds"`
	Lines                []QuoteLineResponse `json:"lines"`
	TotalPrice           string              `json:"totalPrice"`
	TotalDurationMinutes int                 `json:"totalDurationMinutes"`
}

// FromQuote конвертирует смету в DTO, цены строкой с двумя знаками
func FromQuote(q *domain.Quote) *QuoteResponse {
	if q == nil {
		return nil
	}
	resp := &QuoteResponse{
		ServiceID:            q.Selection.ServiceID,
		FormulaID:            q.Selection.FormulaID,
		VehicleSizeID:        q.Selection.VehicleSizeID,
		AddOnIDs:             q.Selection.AddOnIDs,
		Lines:                make([]QuoteLineResponse, 0, len(q.Lines)),
		TotalPrice:           q.TotalPrice.StringFixed(2),
		TotalDurationMinutes: q.TotalDurationMinutes,
	}
	if resp.AddOnIDs == nil {
		resp.AddOnIDs = []int64{}
	}
	for _, l := range q.Lines {
		resp.Lines = append(resp.Lines, QuoteLineResponse{
			Kind:            string(l.Kind),
			ID:              l.RefID,
			Name:            l.Name,
			Price:           l.Price.StringFixed(2),
			DurationMinutes: l.DurationMinutes,
		})
	}
	return resp
}

// RespondQuoteError отвечает на ошибки расчета сметы
// Возвращает false, если ошибка не относится к смете
func RespondQuoteError(w http.ResponseWriter, err error) bool {
	switch {
	case errors.Is(err, quotePrice.ErrShopNotFound):
		RespondNotFound(w, msgShopNotFound)
	case errors.Is(err, quotePrice.ErrServiceNotFound):
		RespondNotFound(w, msgServiceNotFound)
	case errors.Is(err, quotePrice.ErrFormulaNotFound):
		RespondNotFound(w, msgFormulaNotFound)
	case errors.Is(err, quotePrice.ErrVehicleSizeNotFound):
		RespondNotFound(w, msgVehicleSizeNotFound)
	case errors.Is(err, quotePrice.ErrAddOnNotFound):
		RespondNotFound(w, msgAddOnNotFound)
	case errors.Is(err, quotePrice.ErrInvalidSelection), errors.Is(err, quotePrice.ErrInvalidInput):
		RespondBadRequest(w, msgInvalidSelection)
	default:
		return false
	}
	return true
}
