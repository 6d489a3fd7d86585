package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-DetailingBooking/internal/api/handlers"
	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-DetailingBooking/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель слота
type SlotResponse struct {
	StartTime      string `json:"startTime"`
	EndTime        string `json:"endTime"`
	AvailableSpots int    `json:"availableSpots"`
	TotalSpots     int    `json:"totalSpots"`
}

// AvailableSlotsResponse HTTP модель ответа
type AvailableSlotsResponse struct {
	Date   string                  `json:"date"`
	Closed bool                    `json:"closed"`
	Quote  *handlers.QuoteResponse `json:"quote"`
	Slots  []SlotResponse          `json:"slots"`
}

// ToUseCaseRequest собирает запрос к use case (с парсингом даты)
func ToUseCaseRequest(slug string, sel domain.Selection, dateStr string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}
	return &getAvailableSlots.Request{Slug: slug, Selection: sel, Date: date}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			StartTime:      s.StartTime.String(),
			EndTime:        s.EndTime.String(),
			AvailableSpots: s.AvailableSpots,
			TotalSpots:     s.TotalSpots,
		})
	}

	return &AvailableSlotsResponse{
		Date:   resp.Date.Format(domain.DateFormat),
		Closed: resp.Closed,
		Quote:  handlers.FromQuote(resp.Quote),
		Slots:  slots,
	}
}
