package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
	"github.com/m04kA/SMC-DetailingBooking/pkg/types"
)

func window(open, closeAt string) domain.ScheduleWindow {
	return domain.ScheduleWindow{
		Weekday:   time.Monday,
		OpenTime:  types.MustTimeString(open),
		CloseTime: types.MustTimeString(closeAt),
	}
}

func reservation(start string, dur int, status domain.ReservationStatus) *domain.Reservation {
	return &domain.Reservation{StartTime: types.MustTimeString(start), DurationMinutes: dur, Status: status}
}

func starts(slots []domain.Slot) []types.TimeString {
	result := make([]types.TimeString, 0, len(slots))
	for _, s := range slots {
		result = append(result, s.StartTime)
	}
	return result
}

func ts(values ...string) []types.TimeString {
	result := make([]types.TimeString, 0, len(values))
	for _, v := range values {
		result = append(result, types.MustTimeString(v))
	}
	return result
}

// 2025-06-16 понедельник
var monday = time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)

func TestCandidates(t *testing.T) {
	tests := []struct {
		name     string
		windows  []domain.ScheduleWindow
		duration int
		step     int
		want     []types.TimeString
	}{
		{
			name:     "single window",
			windows:  []domain.ScheduleWindow{window("09:00", "10:00")},
			duration: 30,
			step:     15,
			want:     ts("09:00", "09:15", "09:30"),
		},
		{
			name:     "service longer than window",
			windows:  []domain.ScheduleWindow{window("09:00", "10:00")},
			duration: 90,
			step:     15,
			want:     ts(),
		},
		{
			name:     "windows never merge across lunch break",
			windows:  []domain.ScheduleWindow{window("14:00", "15:00"), window("08:00", "09:00")},
			duration: 60,
			step:     15,
			want:     ts("08:00", "14:00"),
		},
		{
			name:     "window ending at midnight",
			windows:  []domain.ScheduleWindow{window("23:00", "24:00")},
			duration: 30,
			step:     15,
			want:     ts("23:00", "23:15", "23:30"),
		},
		{
			name:     "overlapping windows do not duplicate",
			windows:  []domain.ScheduleWindow{window("09:00", "10:00"), window("09:00", "10:00")},
			duration: 60,
			step:     15,
			want:     ts("09:00"),
		},
		{
			name:     "zero duration",
			windows:  []domain.ScheduleWindow{window("09:00", "10:00")},
			duration: 0,
			step:     15,
			want:     ts(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Candidates(tt.windows, tt.duration, tt.step))
		})
	}
}

func TestOverlaps(t *testing.T) {
	at := types.MustTimeString

	assert.True(t, Overlaps(at("11:30"), 30, at("11:20"), 20))
	assert.True(t, Overlaps(at("10:00"), 120, at("10:30"), 15))
	assert.False(t, Overlaps(at("11:30"), 30, at("11:00"), 30))
	assert.False(t, Overlaps(at("11:30"), 30, at("12:00"), 30))
	assert.False(t, Overlaps(at("11:30"), 30, types.TimeString("bad"), 30))
}

func TestCompute_RemovesOverlappingCandidates(t *testing.T) {
	in := Input{
		Date:            monday,
		Now:             monday.AddDate(0, 0, -1),
		Windows:         []domain.ScheduleWindow{window("09:00", "12:00")},
		DurationMinutes: 60,
		StepMinutes:     15,
		Reservations: []*domain.Reservation{
			reservation("10:00", 30, domain.StatusConfirmed),
			reservation("09:00", 60, domain.StatusCancelledByClient),
		},
	}

	slots := Compute(in)

	assert.Equal(t, ts("09:00", "10:30", "10:45", "11:00"), starts(slots))
	assert.Equal(t, types.TimeString("10:00"), slots[0].EndTime)
	assert.Equal(t, 1, slots[0].TotalSpots)
	assert.Equal(t, 1, slots[0].AvailableSpots)
}

func TestCompute_Capacity(t *testing.T) {
	in := Input{
		Date:            monday,
		Now:             monday.AddDate(0, 0, -1),
		Windows:         []domain.ScheduleWindow{window("09:00", "11:00")},
		DurationMinutes: 60,
		StepMinutes:     60,
		Capacity:        2,
		Reservations: []*domain.Reservation{
			reservation("09:00", 60, domain.StatusPending),
			reservation("09:00", 60, domain.StatusConfirmed),
			reservation("10:00", 60, domain.StatusConfirmed),
		},
	}

	slots := Compute(in)

	require.Len(t, slots, 1)
	assert.Equal(t, types.TimeString("10:00"), slots[0].StartTime)
	assert.Equal(t, 1, slots[0].AvailableSpots)
	assert.Equal(t, 2, slots[0].TotalSpots)
}

func TestCompute_TodayAppliesNoticeInShopTimezone(t *testing.T) {
	paris, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)

	// 08:10 UTC = 10:10 в Париже летом
	now := time.Date(2025, 6, 16, 8, 10, 0, 0, time.UTC)
	in := Input{
		Date:             monday,
		Now:              now,
		Location:         paris,
		Windows:          []domain.ScheduleWindow{window("09:00", "13:00")},
		DurationMinutes:  60,
		StepMinutes:      30,
		MinNoticeMinutes: 60,
	}

	assert.Equal(t, ts("11:30", "12:00"), starts(Compute(in)))
}

func TestCompute_PastDate(t *testing.T) {
	in := Input{
		Date:            monday,
		Now:             monday.AddDate(0, 0, 1),
		Windows:         []domain.ScheduleWindow{window("09:00", "18:00")},
		DurationMinutes: 60,
	}
	assert.Empty(t, Compute(in))
}

func TestCompute_DefaultStep(t *testing.T) {
	in := Input{
		Date:            monday,
		Now:             monday.AddDate(0, 0, -1),
		Windows:         []domain.ScheduleWindow{window("09:00", "10:00")},
		DurationMinutes: 30,
	}
	assert.Equal(t, ts("09:00", "09:15", "09:30"), starts(Compute(in)))
}

func TestIsBookable(t *testing.T) {
	base := Input{
		Date:             monday,
		Now:              time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC),
		Windows:          []domain.ScheduleWindow{window("08:00", "12:00"), window("14:00", "18:00")},
		DurationMinutes:  60,
		StepMinutes:      15,
		MinNoticeMinutes: 30,
		Reservations:     []*domain.Reservation{reservation("15:00", 60, domain.StatusConfirmed)},
	}

	tests := []struct {
		name    string
		start   string
		mutate  func(in *Input)
		wantErr error
	}{
		{name: "free", start: "10:00"},
		{name: "adjacent to reservation", start: "16:00"},
		{name: "spans lunch break", start: "11:30", wantErr: ErrOutsideOpeningHours},
		{name: "before opening", start: "07:00", wantErr: ErrOutsideOpeningHours},
		{name: "off grid", start: "10:05", wantErr: ErrNotOnGrid},
		{name: "inside notice", start: "09:15", wantErr: ErrTooLate},
		{name: "overlaps reservation", start: "14:30", wantErr: ErrSlotTaken},
		{
			name:    "past date",
			start:   "10:00",
			mutate:  func(in *Input) { in.Now = in.Now.AddDate(0, 0, 2) },
			wantErr: ErrTooLate,
		},
		{
			name:   "capacity two",
			start:  "14:30",
			mutate: func(in *Input) { in.Capacity = 2 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base
			if tt.mutate != nil {
				tt.mutate(&in)
			}
			err := IsBookable(in, types.MustTimeString(tt.start))
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestIsBookable_InvalidInput(t *testing.T) {
	in := Input{Date: monday, Now: monday, Windows: []domain.ScheduleWindow{window("09:00", "18:00")}}

	assert.ErrorIs(t, IsBookable(in, "25:99"), ErrInvalidTime)
	assert.ErrorIs(t, IsBookable(in, "10:00"), ErrInvalidDuration)
}

func TestIsBookable_AgreesWithCompute(t *testing.T) {
	in := Input{
		Date:            monday,
		Now:             monday.AddDate(0, 0, -1),
		Windows:         []domain.ScheduleWindow{window("09:00", "12:00")},
		DurationMinutes: 45,
		StepMinutes:     15,
		Reservations:    []*domain.Reservation{reservation("10:15", 30, domain.StatusPending)},
	}

	free := make(map[types.TimeString]bool)
	for _, s := range Compute(in) {
		free[s.StartTime] = true
	}
	for _, c := range Candidates(in.Windows, in.DurationMinutes, in.StepMinutes) {
		assert.Equal(t, free[c], IsBookable(in, c) == nil, "start %s", c)
	}
}

func TestCheckDate(t *testing.T) {
	now := time.Date(2025, 6, 16, 18, 0, 0, 0, time.UTC)

	assert.NoError(t, CheckDate(monday, now, 30))
	assert.NoError(t, CheckDate(monday.AddDate(0, 0, 30), now, 30))
	assert.ErrorIs(t, CheckDate(monday.AddDate(0, 0, 31), now, 30), ErrDateTooFar)
	assert.NoError(t, CheckDate(monday.AddDate(1, 0, 0), now, 0))
	assert.ErrorIs(t, CheckDate(monday.AddDate(0, 0, -1), now, 30), ErrDateInPast)
}

func TestWindowsFor(t *testing.T) {
	schedule := domain.WeeklySchedule{
		window("14:00", "18:00"),
		{Weekday: time.Tuesday, OpenTime: "09:00", CloseTime: "12:00"},
		window("08:00", "12:00"),
	}

	got := WindowsFor(schedule, monday)
	require.Len(t, got, 2)
	assert.Equal(t, types.TimeString("08:00"), got[0].OpenTime)
	assert.Empty(t, WindowsFor(schedule, monday.AddDate(0, 0, 6)))
}
