package shops

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
	"github.com/m04kA/SMC-DetailingBooking/internal/service/shops/models"
	"github.com/m04kA/SMC-DetailingBooking/pkg/types"
)

// ValidateSettings проверяет настройки бронирования
func ValidateSettings(s domain.BookingSettings) error {
	if !domain.IsValidSlotStep(s.SlotStepMinutes) {
		return fmt.Errorf("%w: slot step must be %d..%d minutes and divide an hour or be whole hours",
			ErrInvalidInput, domain.MinSlotStepMinutes, domain.MaxSlotStepMinutes)
	}

	if s.MinBookingNoticeMinutes < domain.MinBookingNoticeMinutes || s.MinBookingNoticeMinutes > domain.MaxBookingNoticeMinutes {
		return fmt.Errorf("%w: min booking notice must be %d..%d minutes",
			ErrInvalidInput, domain.MinBookingNoticeMinutes, domain.MaxBookingNoticeMinutes)
	}

	if s.AdvanceBookingDays < domain.MinAdvanceBookingDays || s.AdvanceBookingDays > domain.MaxAdvanceBookingDays {
		return fmt.Errorf("%w: advance booking days must be %d..%d",
			ErrInvalidInput, domain.MinAdvanceBookingDays, domain.MaxAdvanceBookingDays)
	}

	if s.MaxConcurrentReservations < domain.MinConcurrentReservations || s.MaxConcurrentReservations > domain.MaxConcurrentReservations {
		return fmt.Errorf("%w: max concurrent reservations must be %d..%d",
			ErrInvalidInput, domain.MinConcurrentReservations, domain.MaxConcurrentReservations)
	}

	return nil
}

// BuildSchedule проверяет окна и собирает недельное расписание
// Окна одного дня не пересекаются, их не больше MaxScheduleWindowsPerWeekday
func BuildSchedule(shopID int64, windows []models.WindowInput) (domain.WeeklySchedule, error) {
	schedule := make(domain.WeeklySchedule, 0, len(windows))

	for i, w := range windows {
		if w.Weekday < int(time.Sunday) || w.Weekday > int(time.Saturday) {
			return nil, fmt.Errorf("%w: window %d: weekday must be 0..6", ErrInvalidInput, i)
		}

		open, err := types.NewTimeStringFromString(w.OpenTime)
		if err != nil {
			return nil, fmt.Errorf("%w: window %d: invalid openTime: %v", ErrInvalidInput, i, err)
		}
		closeTime, err := types.NewTimeStringFromString(w.CloseTime)
		if err != nil {
			return nil, fmt.Errorf("%w: window %d: invalid closeTime: %v", ErrInvalidInput, i, err)
		}
		if !open.IsBefore(closeTime) {
			return nil, fmt.Errorf("%w: window %d: openTime must be before closeTime", ErrInvalidInput, i)
		}

		schedule = append(schedule, domain.ScheduleWindow{
			ShopID:    shopID,
			Weekday:   time.Weekday(w.Weekday),
			OpenTime:  open,
			CloseTime: closeTime,
		})
	}

	for day := time.Sunday; day <= time.Saturday; day++ {
		dayWindows := schedule.ForWeekday(day)
		if len(dayWindows) > domain.MaxScheduleWindowsPerWeekday {
			return nil, fmt.Errorf("%w: %s has more than %d windows", ErrInvalidInput, day, domain.MaxScheduleWindowsPerWeekday)
		}
		// Окна отсортированы: достаточно сравнить соседние
		for i := 1; i < len(dayWindows); i++ {
			if dayWindows[i].OpenTime.IsBefore(dayWindows[i-1].CloseTime) {
				return nil, fmt.Errorf("%w: %s windows %s-%s and %s-%s overlap", ErrInvalidInput, day,
					dayWindows[i-1].OpenTime, dayWindows[i-1].CloseTime, dayWindows[i].OpenTime, dayWindows[i].CloseTime)
			}
		}
	}

	return schedule, nil
}

// validateReorderIDs проверяет, что id положительные и без повторов
func validateReorderIDs(ids []int64) error {
	if len(ids) == 0 {
		return fmt.Errorf("%w: ids are required", ErrInvalidInput)
	}
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if id <= 0 {
			return fmt.Errorf("%w: invalid id %d", ErrInvalidInput, id)
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: duplicate id %d", ErrInvalidInput, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}
