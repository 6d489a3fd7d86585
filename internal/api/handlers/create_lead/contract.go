package create_lead

import (
	"context"

	"github.com/m04kA/SMC-DetailingBooking/internal/service/leads/models"
)

type LeadService interface {
	Create(ctx context.Context, req *models.CreateRequest) (*models.LeadResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
