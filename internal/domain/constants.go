package domain

// Значения по умолчанию для настроек бронирования
const (
	DefaultSlotStepMinutes           = 15
	DefaultMinBookingNoticeMinutes   = 60
	DefaultAdvanceBookingDays        = 60 // 0 = без ограничений
	DefaultMaxConcurrentReservations = 1
	DefaultTimezone                  = "UTC"
)

// Ограничения бизнес-валидации
const (
	MinSlotStepMinutes           = 5
	MaxSlotStepMinutes           = 120
	MinBookingNoticeMinutes      = 0
	MaxBookingNoticeMinutes      = 10080 // неделя
	MinAdvanceBookingDays        = 0
	MaxAdvanceBookingDays        = 365
	MinConcurrentReservations    = 1
	MaxConcurrentReservations    = 50
	MaxNotesLength               = 500
	MaxCancellationReasonLength  = 500
	MinClientNameLength          = 2
	MaxClientNameLength          = 100
	MaxLeadMessageLength         = 2000
	MaxAddOnsPerReservation      = 20
	MaxScheduleWindowsPerWeekday = 6
	MaxShopNameLength            = 120
)

// Форматы даты и времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses статусы, не занимающие слот
var InactiveStatuses = []ReservationStatus{
	StatusCancelledByClient,
	StatusCancelledByShop,
	StatusNoShow,
}

// ActiveStatuses статусы, занимающие слот
var ActiveStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}
