package domain

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-DetailingBooking/pkg/types"
)

// ScheduleWindow is one open interval of a weekday
// A weekday may have several windows (e.g. a lunch break), a weekday without windows is closed
type ScheduleWindow struct {
	ShopID    int64
	Weekday   time.Weekday
	OpenTime  types.TimeString
	CloseTime types.TimeString
}

// DurationMinutes returns the length of the window
func (w ScheduleWindow) DurationMinutes() int {
	return w.CloseTime.Minutes() - w.OpenTime.Minutes()
}

// Contains returns true if [start, start+duration) fits inside the window
func (w ScheduleWindow) Contains(start types.TimeString, durationMinutes int) bool {
	s := start.Minutes()
	return s >= w.OpenTime.Minutes() && s+durationMinutes <= w.CloseTime.Minutes()
}

// WeeklySchedule all windows of a shop
type WeeklySchedule []ScheduleWindow

// ForWeekday returns the windows of a weekday sorted by opening time
func (s WeeklySchedule) ForWeekday(day time.Weekday) []ScheduleWindow {
	result := make([]ScheduleWindow, 0, 2)
	for _, w := range s {
		if w.Weekday == day {
			result = append(result, w)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].OpenTime.IsBefore(result[j].OpenTime)
	})
	return result
}

// IsOpenOn returns true if the shop has at least one window on the weekday
func (s WeeklySchedule) IsOpenOn(day time.Weekday) bool {
	for _, w := range s {
		if w.Weekday == day {
			return true
		}
	}
	return false
}
