package create_reservation

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
	"github.com/m04kA/SMC-DetailingBooking/internal/service/availability"
	"github.com/m04kA/SMC-DetailingBooking/pkg/contact"
)

const maxVehicleFieldLen = 64

// validateRequest валидирует входные данные запроса и нормализует контакты клиента
func validateRequest(req *Request) error {
	if req.Slug == "" {
		return fmt.Errorf("%w: shop slug is required", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Проверяем, что время начала указано
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	// Валидируем формат времени
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	return ValidateClient(&req.Client)
}

// ValidateClient проверяет имя, email, телефон и заметки клиента
func ValidateClient(c *ClientInfo) error {
	c.Name = strings.TrimSpace(c.Name)
	nameLen := utf8.RuneCountInString(c.Name)
	if nameLen < domain.MinClientNameLength || nameLen > domain.MaxClientNameLength {
		return fmt.Errorf("%w: name must be %d..%d characters",
			ErrInvalidInput, domain.MinClientNameLength, domain.MaxClientNameLength)
	}

	email, err := contact.NormalizeEmail(c.Email)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	c.Email = email

	phone, err := contact.NormalizePhone(c.Phone)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	c.Phone = phone

	if c.Notes != nil && utf8.RuneCountInString(*c.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	for _, field := range []*string{c.VehicleMake, c.VehicleModel} {
		if field != nil && utf8.RuneCountInString(*field) > maxVehicleFieldLen {
			return fmt.Errorf("%w: vehicle make and model must be at most %d characters", ErrInvalidInput, maxVehicleFieldLen)
		}
	}

	return nil
}

// validateDate проверяет, что дата подходит для бронирования
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

// mapSlotError переводит отказ проверки слота в ошибку use case и причину для метрик
func mapSlotError(err error) (string, error) {
	switch {
	case errors.Is(err, availability.ErrSlotTaken):
		return "taken", fmt.Errorf("%w: %v", ErrSlotNotAvailable, err)
	case errors.Is(err, availability.ErrTooLate):
		return "too_late", fmt.Errorf("%w: %v", ErrTooLateToBook, err)
	case errors.Is(err, availability.ErrOutsideOpeningHours), errors.Is(err, availability.ErrNotOnGrid):
		return "invalid_time", fmt.Errorf("%w: %v", ErrInvalidTimeSlot, err)
	default:
		return "invalid_input", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
}
