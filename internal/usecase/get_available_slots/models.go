package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	Slug      string           // публичный идентификатор автомойки
	Selection domain.Selection // услуга, формула, размер и опции
	Date      time.Time        // дата для получения слотов (без времени)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date   time.Time     // дата, на которую запрашивались слоты
	ShopID int64         // ID автомойки
	Quote  *domain.Quote // смета выбора, её длительность определяет слоты
	Closed bool          // автомойка не работает в этот день
	Slots  []domain.Slot // список доступных слотов
}
