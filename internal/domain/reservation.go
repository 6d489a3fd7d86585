package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-DetailingBooking/pkg/types"
)

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	StatusPending           ReservationStatus = "pending"
	StatusConfirmed         ReservationStatus = "confirmed"
	StatusCompleted         ReservationStatus = "completed"
	StatusCancelledByClient ReservationStatus = "cancelled_by_client"
	StatusCancelledByShop   ReservationStatus = "cancelled_by_shop"
	StatusNoShow            ReservationStatus = "no_show"
)

// allowedTransitions допустимые переходы статусов, выставляемые владельцем
var allowedTransitions = map[ReservationStatus][]ReservationStatus{
	StatusPending:   {StatusConfirmed, StatusCancelledByClient, StatusCancelledByShop},
	StatusConfirmed: {StatusCompleted, StatusNoShow, StatusCancelledByClient, StatusCancelledByShop},
}

// ParseReservationStatus validates a status string
func ParseReservationStatus(s string) (ReservationStatus, bool) {
	status := ReservationStatus(s)
	switch status {
	case StatusPending, StatusConfirmed, StatusCompleted,
		StatusCancelledByClient, StatusCancelledByShop, StatusNoShow:
		return status, true
	default:
		return "", false
	}
}

// CanTransitionTo returns true if the status can move to next
func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Reservation represents a booked time slot at a shop
type Reservation struct {
	ID            int64
	Reference     uuid.UUID
	ShopID        int64
	ServiceID     int64
	FormulaID     *int64
	VehicleSizeID *int64
	AddOnIDs      []int64

	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
	TotalPrice      decimal.Decimal
	Status          ReservationStatus

	// Client data entered in the booking flow
	ClientName   string
	ClientEmail  string
	ClientPhone  string
	VehicleMake  *string
	VehicleModel *string
	Notes        *string

	// Denormalized data for history
	ServiceName string
	FormulaName *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EndTime returns the end of the reserved interval
func (r *Reservation) EndTime() (types.TimeString, error) {
	return r.StartTime.AddMinutes(r.DurationMinutes)
}

// IsActive returns true if the reservation occupies its slot
func (r *Reservation) IsActive() bool {
	return r.Status != StatusCancelledByClient &&
		r.Status != StatusCancelledByShop &&
		r.Status != StatusNoShow
}

// CanBeCancelled returns true if the reservation can be cancelled
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// ReservationsFilter фильтр для получения бронирований автомойки
type ReservationsFilter struct {
	ShopID          int64              // Обязательный параметр
	StartDate       *time.Time         // Начало периода (опционально)
	EndDate         *time.Time         // Конец периода (опционально)
	Status          *ReservationStatus // Фильтр по статусу (опционально)
	IncludeInactive bool               // Включать ли отмененные и no-show
	Limit           uint64             // 0 = без ограничения
	Offset          uint64
}

// IsSingleDay returns true if the filter targets exactly one date
func (f ReservationsFilter) IsSingleDay() bool {
	return f.StartDate != nil && f.EndDate != nil && f.StartDate.Equal(*f.EndDate)
}
