package availability

import (
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
	"github.com/m04kA/SMC-DetailingBooking/pkg/types"
)

// Input данные для расчета слотов на одну дату
type Input struct {
	Date             time.Time      // дата записи, учитываются только год/месяц/день
	Now              time.Time      // текущий момент
	Location         *time.Location // часовой пояс автомойки, nil = UTC
	Windows          []domain.ScheduleWindow
	DurationMinutes  int // полная длительность выбранной услуги
	StepMinutes      int // шаг сетки, 0 = domain.DefaultSlotStepMinutes
	MinNoticeMinutes int
	Capacity         int // сколько машин обслуживается одновременно, 0 = 1
	Reservations     []*domain.Reservation
}

func (in Input) step() int {
	if in.StepMinutes <= 0 {
		return domain.DefaultSlotStepMinutes
	}
	return in.StepMinutes
}

func (in Input) capacity() int {
	if in.Capacity <= 0 {
		return 1
	}
	return in.Capacity
}

func (in Input) location() *time.Location {
	if in.Location == nil {
		return time.UTC
	}
	return in.Location
}

// WindowsFor возвращает окна расписания для дня недели даты
func WindowsFor(schedule domain.WeeklySchedule, date time.Time) []domain.ScheduleWindow {
	return schedule.ForWeekday(date.Weekday())
}

// Candidates генерирует возможные времена начала в каждом окне с шагом step
// Услуга должна целиком помещаться в одно окно, окна не склеиваются
func Candidates(windows []domain.ScheduleWindow, durationMinutes, step int) []types.TimeString {
	if durationMinutes <= 0 || step <= 0 {
		return []types.TimeString{}
	}

	sorted := make([]domain.ScheduleWindow, len(windows))
	copy(sorted, windows)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].OpenTime.IsBefore(sorted[j].OpenTime)
	})

	seen := make(map[int]struct{})
	starts := make([]int, 0)
	for _, w := range sorted {
		open, closeAt := w.OpenTime.Minutes(), w.CloseTime.Minutes()
		if open < 0 || closeAt < 0 {
			continue
		}
		for start := open; start+durationMinutes <= closeAt; start += step {
			if _, ok := seen[start]; ok {
				continue
			}
			seen[start] = struct{}{}
			starts = append(starts, start)
		}
	}
	sort.Ints(starts)

	result := make([]types.TimeString, 0, len(starts))
	for _, m := range starts {
		ts, err := types.NewTimeStringFromMinutes(m)
		if err != nil {
			continue
		}
		result = append(result, ts)
	}
	return result
}

// Overlaps проверяет пересечение полуоткрытых интервалов [start, start+dur)
// Интервалы, которые только касаются границами, не пересекаются
//
// Примеры:
// - 11:30-12:00 и 11:20-11:40 → пересекаются
// - 11:30-12:00 и 11:00-11:30 → нет (граничат)
func Overlaps(aStart types.TimeString, aDur int, bStart types.TimeString, bDur int) bool {
	a, b := aStart.Minutes(), bStart.Minutes()
	if a < 0 || b < 0 {
		return false
	}
	return a < b+bDur && b < a+aDur
}

// countOverlapping количество активных бронирований, пересекающихся с интервалом
func countOverlapping(start types.TimeString, durationMinutes int, reservations []*domain.Reservation) int {
	count := 0
	for _, r := range reservations {
		if r == nil || !r.IsActive() {
			continue
		}
		if Overlaps(start, durationMinutes, r.StartTime, r.DurationMinutes) {
			count++
		}
	}
	return count
}

// Compute возвращает свободные слоты на дату
// Кандидат убирается, если пересекающихся активных бронирований не меньше capacity
// На сегодня (в часовом поясе автомойки) убираются слоты раньше now + min notice
func Compute(in Input) []domain.Slot {
	slots := make([]domain.Slot, 0)
	if in.DurationMinutes <= 0 {
		return slots
	}

	loc := in.location()
	now := in.Now.In(loc)
	if isDateInPast(in.Date, now) {
		return slots
	}

	earliest := -1
	if isSameDay(in.Date, now) {
		earliest = minutesOfDay(now) + in.MinNoticeMinutes
	}

	capacity := in.capacity()
	for _, start := range Candidates(in.Windows, in.DurationMinutes, in.step()) {
		if start.Minutes() < earliest {
			continue
		}

		taken := countOverlapping(start, in.DurationMinutes, in.Reservations)
		if taken >= capacity {
			continue
		}

		end, err := start.AddMinutes(in.DurationMinutes)
		if err != nil {
			continue
		}

		slots = append(slots, domain.Slot{
			StartTime:      start,
			EndTime:        end,
			AvailableSpots: capacity - taken,
			TotalSpots:     capacity,
		})
	}

	return slots
}

// IsBookable проверяет одно время начала по тем же правилам, что и Compute
func IsBookable(in Input, start types.TimeString) error {
	if err := start.Validate(); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTime, start)
	}
	if in.DurationMinutes <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidDuration, in.DurationMinutes)
	}

	var window *domain.ScheduleWindow
	for i := range in.Windows {
		if in.Windows[i].Contains(start, in.DurationMinutes) {
			window = &in.Windows[i]
			break
		}
	}
	if window == nil {
		return fmt.Errorf("%w: %s for %d minutes", ErrOutsideOpeningHours, start, in.DurationMinutes)
	}

	if (start.Minutes()-window.OpenTime.Minutes())%in.step() != 0 {
		return fmt.Errorf("%w: %s with step %d from %s", ErrNotOnGrid, start, in.step(), window.OpenTime)
	}

	now := in.Now.In(in.location())
	if isDateInPast(in.Date, now) {
		return fmt.Errorf("%w: date %s has passed", ErrTooLate, in.Date.Format(domain.DateFormat))
	}
	if isSameDay(in.Date, now) && start.Minutes() < minutesOfDay(now)+in.MinNoticeMinutes {
		return fmt.Errorf("%w: %s requires %d minutes notice", ErrTooLate, start, in.MinNoticeMinutes)
	}

	if countOverlapping(start, in.DurationMinutes, in.Reservations) >= in.capacity() {
		return fmt.Errorf("%w: %s", ErrSlotTaken, start)
	}

	return nil
}

// CheckDate проверяет, что дату можно бронировать
// now должен быть в часовом поясе автомойки, advanceDays = 0 снимает ограничение
func CheckDate(date, now time.Time, advanceDays int) error {
	if isDateInPast(date, now) {
		return fmt.Errorf("%w: %s", ErrDateInPast, date.Format(domain.DateFormat))
	}
	if advanceDays <= 0 {
		return nil
	}

	maxDate := dateOnly(now, now.Location()).AddDate(0, 0, advanceDays)
	if dateOnly(date, now.Location()).After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFar, advanceDays)
	}
	return nil
}

// dateOnly переносит календарную дату в loc без времени
func dateOnly(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// isSameDay сравнивает календарные даты без учета часового пояса
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast календарная дата date раньше календарной даты now
func isDateInPast(date, now time.Time) bool {
	return dateOnly(date, time.UTC).Before(dateOnly(now, time.UTC))
}

func minutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
