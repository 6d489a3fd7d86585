package get_available_slots

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-DetailingBooking/internal/service/availability"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Slug == "" {
		return fmt.Errorf("%w: shop slug is required", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что дата подходит для бронирования
// now должен быть в часовом поясе автомойки
func validateDate(date, now time.Time, advanceBookingDays int) error {
	err := availability.CheckDate(date, now, advanceBookingDays)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, availability.ErrDateInPast):
		return fmt.Errorf("%w: %v", ErrInvalidDate, err)
	case errors.Is(err, availability.ErrDateTooFar):
		return fmt.Errorf("%w: %v", ErrDateTooFarInFuture, err)
	default:
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
