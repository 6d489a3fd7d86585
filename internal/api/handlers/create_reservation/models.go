package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-DetailingBooking/internal/api/handlers"
	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
	"github.com/m04kA/SMC-DetailingBooking/pkg/types"
	createReservation "github.com/m04kA/SMC-DetailingBooking/internal/usecase/create_reservation"
)

// ClientRequest контактные данные клиента
type ClientRequest struct {
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Phone        string  `json:"phone"`
	VehicleMake  *string `json:"vehicleMake,omitempty"`
	VehicleModel *string `json:"vehicleModel,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	handlers.SelectionRequest
	Date      string        `json:"date"`      // "2025-10-15"
	StartTime string        `json:"startTime"` // "10:00"
	Client    ClientRequest `json:"client"`
}

// parseError ошибка разбора даты или времени
type parseError struct {
	field string
	err   error
}

func (e *parseError) Error() string { return e.field + ": " + e.err.Error() }

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(slug string) (*createReservation.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, &parseError{field: "date", err: err}
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, &parseError{field: "startTime", err: err}
	}

	return &createReservation.Request{
		Slug:      slug,
		Selection: r.SelectionRequest.ToDomain(),
		Date:      date,
		StartTime: startTime,
		Client: createReservation.ClientInfo{
			Name:         r.Client.Name,
			Email:        r.Client.Email,
			Phone:        r.Client.Phone,
			VehicleMake:  r.Client.VehicleMake,
			VehicleModel: r.Client.VehicleModel,
			Notes:        r.Client.Notes,
		},
	}, nil
}
