package models

import (
	"time"

	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
)

// Request модели

// UpdateSettingsRequest частичное обновление настроек бронирования
// nil означает "не менять"
type UpdateSettingsRequest struct {
	UserID                    int64
	ShopID                    int64
	SlotStepMinutes           *int  `json:"slotStepMinutes,omitempty"`
	MinBookingNoticeMinutes   *int  `json:"minBookingNoticeMinutes,omitempty"`
	AdvanceBookingDays        *int  `json:"advanceBookingDays,omitempty"`
	MaxConcurrentReservations *int  `json:"maxConcurrentReservations,omitempty"`
	AutoConfirm               *bool `json:"autoConfirm,omitempty"`
}

// IsEmpty возвращает true, если не передано ни одного поля
func (r *UpdateSettingsRequest) IsEmpty() bool {
	return r.SlotStepMinutes == nil && r.MinBookingNoticeMinutes == nil && r.AdvanceBookingDays == nil &&
		r.MaxConcurrentReservations == nil && r.AutoConfirm == nil
}

// Apply накладывает изменения на текущие настройки
func (r *UpdateSettingsRequest) Apply(current domain.BookingSettings) domain.BookingSettings {
	if r.SlotStepMinutes != nil {
		current.SlotStepMinutes = *r.SlotStepMinutes
	}
	if r.MinBookingNoticeMinutes != nil {
		current.MinBookingNoticeMinutes = *r.MinBookingNoticeMinutes
	}
	if r.AdvanceBookingDays != nil {
		current.AdvanceBookingDays = *r.AdvanceBookingDays
	}
	if r.MaxConcurrentReservations != nil {
		current.MaxConcurrentReservations = *r.MaxConcurrentReservations
	}
	if r.AutoConfirm != nil {
		current.AutoConfirm = *r.AutoConfirm
	}
	return current
}

// WindowInput окно расписания в запросе
type WindowInput struct {
	Weekday   int    `json:"weekday"`   // 0 = воскресенье
	OpenTime  string `json:"openTime"`  // "09:00"
	CloseTime string `json:"closeTime"` // "18:00"
}

// ReplaceScheduleRequest полная замена недельного расписания
type ReplaceScheduleRequest struct {
	UserID  int64
	ShopID  int64
	Windows []WindowInput
}

// ReorderRequest новый порядок элементов списка
type ReorderRequest struct {
	UserID    int64
	ShopID    int64
	List      string
	ServiceID *int64 // обязателен для формул
	IDs       []int64
}

// Response модели

// SettingsResponse настройки бронирования
type SettingsResponse struct {
	SlotStepMinutes           int  `json:"slotStepMinutes"`
	MinBookingNoticeMinutes   int  `json:"minBookingNoticeMinutes"`
	AdvanceBookingDays        int  `json:"advanceBookingDays"`
	MaxConcurrentReservations int  `json:"maxConcurrentReservations"`
	AutoConfirm               bool `json:"autoConfirm"`
}

// ShopResponse данные автомойки
type ShopResponse struct {
	ID          int64            `json:"id"`
	Slug        string           `json:"slug"`
	Name        string           `json:"name"`
	Timezone    string           `json:"timezone"`
	Phone       *string          `json:"phone,omitempty"`
	Email       *string          `json:"email,omitempty"`
	AddressLine *string          `json:"addressLine,omitempty"`
	IsPublished bool             `json:"isPublished"`
	Settings    SettingsResponse `json:"settings"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// WindowResponse окно расписания
type WindowResponse struct {
	Weekday   int    `json:"weekday"`
	OpenTime  string `json:"openTime"`
	CloseTime string `json:"closeTime"`
}

// CategoryResponse категория услуг
type CategoryResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Position int    `json:"position"`
}

// VehicleSizeResponse размер автомобиля
type VehicleSizeResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Position    int     `json:"position"`
}

// FormulaResponse формула услуги
type FormulaResponse struct {
	ID                        int64   `json:"id"`
	Name                      string  `json:"name"`
	Description               *string `json:"description,omitempty"`
	AdditionalPrice           string  `json:"additionalPrice"`
	AdditionalDurationMinutes int     `json:"additionalDurationMinutes"`
	Position                  int     `json:"position"`
}

// SupplementResponse надбавка за размер автомобиля
type SupplementResponse struct {
	VehicleSizeID             int64  `json:"vehicleSizeId"`
	AdditionalPrice           string `json:"additionalPrice"`
	AdditionalDurationMinutes int    `json:"additionalDurationMinutes"`
}

// ServiceResponse услуга с формулами и надбавками
type ServiceResponse struct {
	ID                  int64                `json:"id"`
	CategoryID          *int64               `json:"categoryId,omitempty"`
	Name                string               `json:"name"`
	Description         *string              `json:"description,omitempty"`
	ImageURL            *string              `json:"imageUrl,omitempty"`
	BasePrice           string               `json:"basePrice"`
	BaseDurationMinutes int                  `json:"baseDurationMinutes"`
	Position            int                  `json:"position"`
	Formulas            []FormulaResponse    `json:"formulas"`
	SizeSupplements     []SupplementResponse `json:"sizeSupplements"`
}

// AddOnResponse дополнительная опция
type AddOnResponse struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Description     *string `json:"description,omitempty"`
	Price           string  `json:"price"`
	DurationMinutes int     `json:"durationMinutes"`
	Position        int     `json:"position"`
}

// CatalogResponse публичный каталог автомойки
type CatalogResponse struct {
	Shop         ShopResponse          `json:"shop"`
	Categories   []CategoryResponse    `json:"categories"`
	VehicleSizes []VehicleSizeResponse `json:"vehicleSizes"`
	Services     []ServiceResponse     `json:"services"`
	AddOns       []AddOnResponse       `json:"addOns"`
	Schedule     []WindowResponse      `json:"schedule"`
}

// Методы конвертации

// FromDomainShop конвертирует domain модель в DTO
func FromDomainShop(s *domain.Shop) *ShopResponse {
	if s == nil {
		return nil
	}
	return &ShopResponse{
		ID:          s.ID,
		Slug:        s.Slug,
		Name:        s.Name,
		Timezone:    s.Timezone,
		Phone:       s.Phone,
		Email:       s.Email,
		AddressLine: s.AddressLine,
		IsPublished: s.IsPublished,
		Settings: SettingsResponse{
			SlotStepMinutes:           s.Settings.SlotStepMinutes,
			MinBookingNoticeMinutes:   s.Settings.MinBookingNoticeMinutes,
			AdvanceBookingDays:        s.Settings.AdvanceBookingDays,
			MaxConcurrentReservations: s.Settings.MaxConcurrentReservations,
			AutoConfirm:               s.Settings.AutoConfirm,
		},
		UpdatedAt: s.UpdatedAt,
	}
}

// FromDomainSchedule конвертирует расписание, сортируя окна по дню и времени открытия
func FromDomainSchedule(schedule domain.WeeklySchedule) []WindowResponse {
	result := make([]WindowResponse, 0, len(schedule))
	for day := time.Sunday; day <= time.Saturday; day++ {
		for _, w := range schedule.ForWeekday(day) {
			result = append(result, WindowResponse{
				Weekday:   int(w.Weekday),
				OpenTime:  w.OpenTime.String(),
				CloseTime: w.CloseTime.String(),
			})
		}
	}
	return result
}

// FromDomainCatalog конвертирует каталог в DTO
func FromDomainCatalog(c *domain.Catalog) *CatalogResponse {
	resp := &CatalogResponse{
		Shop:         *FromDomainShop(c.Shop),
		Categories:   make([]CategoryResponse, 0, len(c.Categories)),
		VehicleSizes: make([]VehicleSizeResponse, 0, len(c.VehicleSizes)),
		Services:     make([]ServiceResponse, 0, len(c.Services)),
		AddOns:       make([]AddOnResponse, 0, len(c.AddOns)),
		Schedule:     FromDomainSchedule(c.Schedule),
	}

	for _, cat := range c.Categories {
		resp.Categories = append(resp.Categories, CategoryResponse{ID: cat.ID, Name: cat.Name, Position: cat.Position})
	}

	for _, size := range c.VehicleSizes {
		resp.VehicleSizes = append(resp.VehicleSizes, VehicleSizeResponse{
			ID: size.ID, Name: size.Name, Description: size.Description, Position: size.Position,
		})
	}

	for _, svc := range c.Services {
		item := ServiceResponse{
			ID:                  svc.ID,
			CategoryID:          svc.CategoryID,
			Name:                svc.Name,
			Description:         svc.Description,
			ImageURL:            svc.ImageURL,
			BasePrice:           svc.BasePrice.StringFixed(2),
			BaseDurationMinutes: svc.BaseDurationMinutes,
			Position:            svc.Position,
			Formulas:            make([]FormulaResponse, 0, len(svc.Formulas)),
			SizeSupplements:     make([]SupplementResponse, 0, len(svc.SizeSupplements)),
		}
		for _, f := range svc.Formulas {
			item.Formulas = append(item.Formulas, FormulaResponse{
				ID:                        f.ID,
				Name:                      f.Name,
				Description:               f.Description,
				AdditionalPrice:           f.AdditionalPrice.StringFixed(2),
				AdditionalDurationMinutes: f.AdditionalDurationMinutes,
				Position:                  f.Position,
			})
		}
		for _, sup := range svc.SizeSupplements {
			item.SizeSupplements = append(item.SizeSupplements, SupplementResponse{
				VehicleSizeID:             sup.VehicleSizeID,
				AdditionalPrice:           sup.AdditionalPrice.StringFixed(2),
				AdditionalDurationMinutes: sup.AdditionalDurationMinutes,
			})
		}
		resp.Services = append(resp.Services, item)
	}

	for _, a := range c.AddOns {
		resp.AddOns = append(resp.AddOns, AddOnResponse{
			ID:              a.ID,
			Name:            a.Name,
			Description:     a.Description,
			Price:           a.Price.StringFixed(2),
			DurationMinutes: a.DurationMinutes,
			Position:        a.Position,
		})
	}

	return resp
}
