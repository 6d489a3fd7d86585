package availability

import "errors"

var (
	// ErrInvalidTime время начала в неверном формате
	ErrInvalidTime = errors.New("availability: invalid start time")

	// ErrInvalidDuration длительность услуги не положительна
	ErrInvalidDuration = errors.New("availability: duration must be positive")

	// ErrOutsideOpeningHours интервал не помещается ни в одно окно расписания
	ErrOutsideOpeningHours = errors.New("availability: outside opening hours")

	// ErrNotOnGrid время начала не попадает на сетку шага окна
	ErrNotOnGrid = errors.New("availability: start time is not on the slot grid")

	// ErrTooLate слот уже прошел или нарушает минимальное время до записи
	ErrTooLate = errors.New("availability: too late to book this slot")

	// ErrSlotTaken все места в слоте заняты пересекающимися бронированиями
	ErrSlotTaken = errors.New("availability: slot is already taken")

	// ErrDateInPast дата раньше сегодняшней
	ErrDateInPast = errors.New("availability: date is in the past")

	// ErrDateTooFar дата дальше горизонта записи
	ErrDateTooFar = errors.New("availability: date is too far in the future")
)
