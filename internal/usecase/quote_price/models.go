package quote_price

import "github.com/m04kA/SMC-DetailingBooking/internal/domain"

// Request модель запроса на расчет стоимости
type Request struct {
	Slug      string           // публичный идентификатор автомойки
	Selection domain.Selection // выбор клиента
}

// Response модель ответа со сметой
type Response struct {
	ShopID int64
	Quote  *domain.Quote
}
