package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
	"github.com/m04kA/SMC-DetailingBooking/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	Slug      string           // публичный идентификатор автомойки
	Selection domain.Selection // услуга, формула, размер и опции
	Date      time.Time        // дата бронирования (без времени)
	StartTime types.TimeString // время начала слота (например, "10:00")
	Client    ClientInfo
}

// ClientInfo контактные данные клиента из формы бронирования
type ClientInfo struct {
	Name         string
	Email        string
	Phone        string
	VehicleMake  *string
	VehicleModel *string
	Notes        *string
}
