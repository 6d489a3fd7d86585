package catalog

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена у автомойки
	ErrServiceNotFound = errors.New("catalog.repository: service not found")

	// ErrFormulaNotFound возвращается, когда формула не найдена у услуги
	ErrFormulaNotFound = errors.New("catalog.repository: formula not found")

	// ErrVehicleSizeNotFound возвращается, когда размер автомобиля не найден
	ErrVehicleSizeNotFound = errors.New("catalog.repository: vehicle size not found")

	// ErrAddOnNotFound возвращается, когда хотя бы одна опция не найдена
	ErrAddOnNotFound = errors.New("catalog.repository: add-on not found")

	// ErrReorderMismatch список id не совпадает с содержимым списка
	ErrReorderMismatch = errors.New("catalog.repository: ids do not match the list")

	// ErrUnknownList неизвестный список для сортировки
	ErrUnknownList = errors.New("catalog.repository: unknown list")

	// ErrTransactionRequired операция должна выполняться в транзакции
	ErrTransactionRequired = errors.New("catalog.repository: transaction required")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("catalog.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("catalog.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("catalog.repository: failed to scan row")
)
