package pricing

import "errors"

var (
	// ErrMissingService смета без услуги
	ErrMissingService = errors.New("pricing: service is required")

	// ErrInactiveService услуга выключена владельцем
	ErrInactiveService = errors.New("pricing: service is not active")

	// ErrFormulaMismatch формула принадлежит другой услуге
	ErrFormulaMismatch = errors.New("pricing: formula does not belong to the service")

	// ErrSupplementMismatch доплата за размер относится к другой услуге
	ErrSupplementMismatch = errors.New("pricing: size supplement does not belong to the service")

	// ErrDuplicateAddOn одна и та же опция выбрана дважды
	ErrDuplicateAddOn = errors.New("pricing: add-on selected twice")

	// ErrInactiveAddOn опция выключена владельцем
	ErrInactiveAddOn = errors.New("pricing: add-on is not active")

	// ErrTooManyAddOns превышено количество опций
	ErrTooManyAddOns = errors.New("pricing: too many add-ons")

	// ErrNonPositiveDuration итоговая длительность не положительна
	ErrNonPositiveDuration = errors.New("pricing: total duration must be positive")

	// ErrNegativePrice итоговая цена отрицательна
	ErrNegativePrice = errors.New("pricing: total price must not be negative")
)
