package shops

import "errors"

var (
	// ErrShopNotFound возвращается, когда автомойка не найдена или не опубликована
	ErrShopNotFound = errors.New("shop not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена у автомойки
	ErrServiceNotFound = errors.New("service not found")

	// ErrAccessDenied возвращается, когда пользователь не владелец автомойки
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrReorderMismatch возвращается, когда список id не совпадает с содержимым списка
	ErrReorderMismatch = errors.New("ids do not match the list")

	// ErrNotPublishable возвращается при публикации автомойки без расписания или активных услуг
	ErrNotPublishable = errors.New("shop is not ready to be published")

	// ErrEmptyPublishedSchedule возвращается при попытке закрыть все дни у опубликованной автомойки
	ErrEmptyPublishedSchedule = errors.New("published shop needs at least one schedule window")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
