package reorder_catalog

import (
	"context"

	"github.com/m04kA/SMC-DetailingBooking/internal/service/shops/models"
)

type ShopService interface {
	Reorder(ctx context.Context, req *models.ReorderRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
