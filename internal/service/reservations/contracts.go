package reservations

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	GetByReference(ctx context.Context, reference uuid.UUID) (*domain.Reservation, error)
	ListByShop(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error
	Cancel(ctx context.Context, id int64, status domain.ReservationStatus, reason *string) error
}

// ShopRepository интерфейс репозитория автомоек
type ShopRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Shop, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
