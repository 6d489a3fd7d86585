package leads

import "errors"

var (
	// ErrShopNotFound возвращается, когда автомойка не найдена или не опубликована
	ErrShopNotFound = errors.New("shop not found")

	// ErrServiceNotFound возвращается, когда выбранная услуга не найдена
	ErrServiceNotFound = errors.New("service not found")

	// ErrAccessDenied возвращается, когда пользователь не владелец автомойки
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
