package shops

import (
	"context"

	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
)

// ShopRepository интерфейс репозитория автомоек
type ShopRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Shop, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Shop, error)
	UpdateSettings(ctx context.Context, shopID int64, settings domain.BookingSettings) error
	SetPublished(ctx context.Context, shopID int64, published bool) error
}

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	GetByShop(ctx context.Context, shopID int64) (domain.WeeklySchedule, error)
	ReplaceForShop(ctx context.Context, shopID int64, schedule domain.WeeklySchedule) error
}

// CatalogRepository интерфейс репозитория каталога
type CatalogRepository interface {
	ListCategories(ctx context.Context, shopID int64) ([]domain.ServiceCategory, error)
	ListVehicleSizes(ctx context.Context, shopID int64) ([]domain.VehicleSize, error)
	ListServices(ctx context.Context, shopID int64, activeOnly bool) ([]*domain.Service, error)
	GetService(ctx context.Context, shopID, serviceID int64) (*domain.Service, error)
	ListAddOns(ctx context.Context, shopID int64, activeOnly bool) ([]domain.AddOn, error)
	Reorder(ctx context.Context, list domain.ReorderableList, parentID int64, ids []int64) error
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
