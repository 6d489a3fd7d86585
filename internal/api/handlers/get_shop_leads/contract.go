package get_shop_leads

import (
	"context"

	"github.com/m04kA/SMC-DetailingBooking/internal/service/leads/models"
)

type LeadService interface {
	ListForShop(ctx context.Context, req *models.ListRequest) (*models.LeadListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
