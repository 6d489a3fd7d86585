package catalogimport

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
)

// File описание автомойки в TOML
//
//	[shop]
//	slug = "shine-lyon"
//	name = "Shine Lyon"
//	timezone = "Europe/Paris"
//
//	[[schedule]]
//	day = "monday"
//	open = "09:00"
//	close = "12:00"
//
//	[[vehicle_sizes]]
//	key = "suv"
//	name = "SUV"
//
//	[[services]]
//	name = "Lavage complet"
//	base_price = "49.90"
//	duration = 60
//	  [[services.supplements]]
//	  size = "suv"
//	  price = "15"
//	  duration = 15
//
// Цены задаются строками, чтобы не терять точность
type File struct {
	Shop         ShopSection     `toml:"shop"`
	Settings     *SettingsEntry  `toml:"settings"`
	Schedule     []WindowEntry   `toml:"schedule"`
	Categories   []CategoryEntry `toml:"categories"`
	VehicleSizes []SizeEntry     `toml:"vehicle_sizes"`
	Services     []ServiceEntry  `toml:"services"`
	AddOns       []AddOnEntry    `toml:"add_ons"`
}

type ShopSection struct {
	Slug        string  `toml:"slug"`
	Name        string  `toml:"name"`
	Timezone    string  `toml:"timezone"`
	Phone       *string `toml:"phone"`
	Email       *string `toml:"email"`
	AddressLine *string `toml:"address_line"`
	Published   bool    `toml:"published"`
}

// SettingsEntry переопределяет настройки по умолчанию, nil - оставить как есть
type SettingsEntry struct {
	SlotStepMinutes           *int  `toml:"slot_step_minutes"`
	MinBookingNoticeMinutes   *int  `toml:"min_booking_notice_minutes"`
	AdvanceBookingDays        *int  `toml:"advance_booking_days"`
	MaxConcurrentReservations *int  `toml:"max_concurrent_reservations"`
	AutoConfirm               *bool `toml:"auto_confirm"`
}

type WindowEntry struct {
	Day   string `toml:"day"` // "monday" или "mon"
	Open  string `toml:"open"`
	Close string `toml:"close"`
}

type CategoryEntry struct {
	Key  string `toml:"key"`
	Name string `toml:"name"`
}

type SizeEntry struct {
	Key         string  `toml:"key"`
	Name        string  `toml:"name"`
	Description *string `toml:"description"`
}

type ServiceEntry struct {
	Category    string            `toml:"category"` // key категории, пусто - без категории
	Name        string            `toml:"name"`
	Description *string           `toml:"description"`
	ImageURL    *string           `toml:"image_url"`
	BasePrice   decimal.Decimal   `toml:"base_price"`
	Duration    int               `toml:"duration"`
	Inactive    bool              `toml:"inactive"`
	Formulas    []FormulaEntry    `toml:"formulas"`
	Supplements []SupplementEntry `toml:"supplements"`
}

type FormulaEntry struct {
	Name        string          `toml:"name"`
	Description *string         `toml:"description"`
	Price       decimal.Decimal `toml:"price"`
	Duration    int             `toml:"duration"`
}

type SupplementEntry struct {
	Size     string          `toml:"size"` // key размера
	Price    decimal.Decimal `toml:"price"`
	Duration int             `toml:"duration"`
}

type AddOnEntry struct {
	Name        string          `toml:"name"`
	Description *string         `toml:"description"`
	Price       decimal.Decimal `toml:"price"`
	Duration    int             `toml:"duration"`
	Inactive    bool            `toml:"inactive"`
}

// Decode читает TOML, неизвестные ключи считаются ошибкой
func Decode(r io.Reader) (*File, error) {
	var f File
	md, err := toml.NewDecoder(r).Decode(&f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFile, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("%w: unknown keys: %s", ErrInvalidFile, strings.Join(keys, ", "))
	}
	return &f, nil
}

var weekdays = map[string]time.Weekday{
	"sunday": time.Sunday, "sun": time.Sunday,
	"monday": time.Monday, "mon": time.Monday,
	"tuesday": time.Tuesday, "tue": time.Tuesday,
	"wednesday": time.Wednesday, "wed": time.Wednesday,
	"thursday": time.Thursday, "thu": time.Thursday,
	"friday": time.Friday, "fri": time.Friday,
	"saturday": time.Saturday, "sat": time.Saturday,
}

func parseWeekday(s string) (time.Weekday, bool) {
	d, ok := weekdays[strings.ToLower(strings.TrimSpace(s))]
	return d, ok
}

// apply накладывает переопределения на настройки по умолчанию
func (s *SettingsEntry) apply(base domain.BookingSettings) domain.BookingSettings {
	if s == nil {
		return base
	}
	if s.SlotStepMinutes != nil {
		base.SlotStepMinutes = *s.SlotStepMinutes
	}
	if s.MinBookingNoticeMinutes != nil {
		base.MinBookingNoticeMinutes = *s.MinBookingNoticeMinutes
	}
	if s.AdvanceBookingDays != nil {
		base.AdvanceBookingDays = *s.AdvanceBookingDays
	}
	if s.MaxConcurrentReservations != nil {
		base.MaxConcurrentReservations = *s.MaxConcurrentReservations
	}
	if s.AutoConfirm != nil {
		base.AutoConfirm = *s.AutoConfirm
	}
	return base
}
