package leads

import (
	"context"

	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
)

// LeadRepository интерфейс репозитория заявок
type LeadRepository interface {
	Create(ctx context.Context, lead *domain.Lead) (*domain.Lead, error)
	ListByShop(ctx context.Context, filter domain.LeadsFilter) ([]*domain.Lead, error)
}

// ShopRepository интерфейс репозитория автомоек
type ShopRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Shop, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Shop, error)
}

// CatalogRepository проверка услуги, выбранной в форме
type CatalogRepository interface {
	GetService(ctx context.Context, shopID, serviceID int64) (*domain.Service, error)
}

// Metrics счетчики бизнес-метрик
type Metrics interface {
	LeadCreated(source string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
