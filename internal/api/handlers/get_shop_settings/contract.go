package get_shop_settings

import (
	"context"

	"github.com/m04kA/SMC-DetailingBooking/internal/service/shops/models"
)

type ShopService interface {
	GetSettings(ctx context.Context, userID, shopID int64) (*models.ShopResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
