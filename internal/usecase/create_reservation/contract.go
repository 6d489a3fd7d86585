package create_reservation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
	ListForDay(ctx context.Context, shopID int64, date time.Time) ([]*domain.Reservation, error)
}

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	GetByShop(ctx context.Context, shopID int64) (domain.WeeklySchedule, error)
}

// LeadRepository интерфейс репозитория заявок
type LeadRepository interface {
	Create(ctx context.Context, lead *domain.Lead) (*domain.Lead, error)
}

// Quoter рассчитывает смету выбора клиента (use case quote_price)
type Quoter interface {
	GetPublishedShop(ctx context.Context, slug string) (*domain.Shop, error)
	QuoteForShop(ctx context.Context, shop *domain.Shop, sel domain.Selection) (*domain.Quote, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счетчики бизнес-метрик
type Metrics interface {
	ReservationCreated(status string)
	SlotConflict(reason string)
	LeadCreated(source string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
