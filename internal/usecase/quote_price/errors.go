package quote_price

import "errors"

var (
	// ErrShopNotFound возвращается, когда автомойка не найдена или не опубликована
	ErrShopNotFound = errors.New("quote_price: shop not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена или выключена
	ErrServiceNotFound = errors.New("quote_price: service not found")

	// ErrFormulaNotFound возвращается, когда формула не найдена у услуги
	ErrFormulaNotFound = errors.New("quote_price: formula not found")

	// ErrVehicleSizeNotFound возвращается, когда размер автомобиля не найден
	ErrVehicleSizeNotFound = errors.New("quote_price: vehicle size not found")

	// ErrAddOnNotFound возвращается, когда опция не найдена или выключена
	ErrAddOnNotFound = errors.New("quote_price: add-on not found")

	// ErrInvalidSelection возвращается, когда выбор дает некорректную смету (нулевая длительность, отрицательная цена)
	ErrInvalidSelection = errors.New("quote_price: selection does not produce a valid quote")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("quote_price: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("quote_price: internal error")
)
