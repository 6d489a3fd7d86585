package create_reservation

import "errors"

var (
	// ErrInvalidDate возвращается при дате в прошлом
	ErrInvalidDate = errors.New("create_reservation: invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("create_reservation: date is too far in the future")

	// ErrShopClosed возвращается, когда автомойка закрыта в указанную дату
	ErrShopClosed = errors.New("create_reservation: shop is closed on this date")

	// ErrSlotNotAvailable возвращается, когда выбранный слот уже занят
	ErrSlotNotAvailable = errors.New("create_reservation: slot is not available")

	// ErrInvalidTimeSlot возвращается, когда время вне сетки или рабочих часов
	ErrInvalidTimeSlot = errors.New("create_reservation: invalid time slot")

	// ErrTooLateToBook возвращается, когда бронирование нарушает minBookingNoticeMinutes
	ErrTooLateToBook = errors.New("create_reservation: too late to book this slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
