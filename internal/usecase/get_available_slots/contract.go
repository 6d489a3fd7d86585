package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	// ListForDay получает активные бронирования автомойки на дату
	ListForDay(ctx context.Context, shopID int64, date time.Time) ([]*domain.Reservation, error)
}

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	GetByShop(ctx context.Context, shopID int64) (domain.WeeklySchedule, error)
}

// Quoter рассчитывает смету выбора клиента (use case quote_price)
type Quoter interface {
	GetPublishedShop(ctx context.Context, slug string) (*domain.Shop, error)
	QuoteForShop(ctx context.Context, shop *domain.Shop, sel domain.Selection) (*domain.Quote, error)
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
