package quote_price

import (
	"context"

	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
)

// ShopRepository интерфейс репозитория автомоек
type ShopRepository interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Shop, error)
}

// CatalogRepository интерфейс репозитория каталога
type CatalogRepository interface {
	GetService(ctx context.Context, shopID, serviceID int64) (*domain.Service, error)
	GetFormula(ctx context.Context, serviceID, formulaID int64) (*domain.Formula, error)
	GetVehicleSize(ctx context.Context, shopID, sizeID int64) (*domain.VehicleSize, error)
	GetAddOnsByIDs(ctx context.Context, shopID int64, ids []int64) ([]domain.AddOn, error)
}

// Metrics счетчики бизнес-метрик
type Metrics interface {
	QuoteServed(result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
