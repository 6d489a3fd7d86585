package replace_schedule

import (
	"context"

	"github.com/m04kA/SMC-DetailingBooking/internal/service/shops/models"
)

type ShopService interface {
	ReplaceSchedule(ctx context.Context, req *models.ReplaceScheduleRequest) ([]models.WindowResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
