package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
)

// Request модели

// ListRequest запрос владельца на список бронирований автомойки
type ListRequest struct {
	UserID          int64
	ShopID          int64
	StartDate       *time.Time // начало периода (опционально)
	EndDate         *time.Time // конец периода (опционально)
	Status          *string    // фильтр по статусу (опционально)
	IncludeInactive bool       // включить отменённые и неявки
	Limit           uint64
	Offset          uint64
}

// UpdateStatusRequest запрос владельца на смену статуса
type UpdateStatusRequest struct {
	UserID        int64
	ShopID        int64
	ReservationID int64
	Status        string
}

// CancelByClientRequest отмена клиентом по публичному идентификатору
type CancelByClientRequest struct {
	Slug      string
	Reference uuid.UUID
	Email     string
	Reason    *string
}

// CancelByShopRequest отмена владельцем
type CancelByShopRequest struct {
	UserID        int64
	ShopID        int64
	ReservationID int64
	Reason        *string
}

// Response модели

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID              int64   `json:"id"`
	Reference       string  `json:"reference"`
	ShopID          int64   `json:"shopId"`
	ServiceID       int64   `json:"serviceId"`
	FormulaID       *int64  `json:"formulaId,omitempty"`
	VehicleSizeID   *int64  `json:"vehicleSizeId,omitempty"`
	AddOnIDs        []int64 `json:"addOnIds"`
	Date            string  `json:"date"`      // "2025-10-15"
	StartTime       string  `json:"startTime"` // "10:00"
	EndTime         string  `json:"endTime,omitempty"`
	DurationMinutes int     `json:"durationMinutes"`
	TotalPrice      string  `json:"totalPrice"` // "149.90"
	Status          string  `json:"status"`

	ClientName   string  `json:"clientName"`
	ClientEmail  string  `json:"clientEmail"`
	ClientPhone  string  `json:"clientPhone"`
	VehicleMake  *string `json:"vehicleMake,omitempty"`
	VehicleModel *string `json:"vehicleModel,omitempty"`
	Notes        *string `json:"notes,omitempty"`

	// Денормализованные данные
	ServiceName string  `json:"serviceName"`
	FormulaName *string `json:"formulaName,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReservationListResponse ответ со списком бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	addOnIDs := r.AddOnIDs
	if addOnIDs == nil {
		addOnIDs = []int64{}
	}

	resp := &ReservationResponse{
		ID:                 r.ID,
		Reference:          r.Reference.String(),
		ShopID:             r.ShopID,
		ServiceID:          r.ServiceID,
		FormulaID:          r.FormulaID,
		VehicleSizeID:      r.VehicleSizeID,
		AddOnIDs:           addOnIDs,
		Date:               r.Date.Format(domain.DateFormat),
		StartTime:          r.StartTime.String(),
		DurationMinutes:    r.DurationMinutes,
		TotalPrice:         r.TotalPrice.StringFixed(2),
		Status:             string(r.Status),
		ClientName:         r.ClientName,
		ClientEmail:        r.ClientEmail,
		ClientPhone:        r.ClientPhone,
		VehicleMake:        r.VehicleMake,
		VehicleModel:       r.VehicleModel,
		Notes:              r.Notes,
		ServiceName:        r.ServiceName,
		FormulaName:        r.FormulaName,
		CancellationReason: r.CancellationReason,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}

	if end, err := r.EndTime(); err == nil {
		resp.EndTime = end.String()
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if r.CancelledAt != nil {
		cancelledStr := r.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, 0, len(reservations)),
	}

	for _, r := range reservations {
		if item := FromDomainReservation(r); item != nil {
			resp.Reservations = append(resp.Reservations, *item)
		}
	}

	return resp
}
