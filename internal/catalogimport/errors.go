package catalogimport

import "errors"

var (
	// ErrInvalidFile файл не разбирается или содержит некорректные данные
	ErrInvalidFile = errors.New("catalogimport: invalid catalog file")

	// ErrDuplicateSlug автомойка с таким slug уже существует
	ErrDuplicateSlug = errors.New("catalogimport: slug already taken")

	// ErrImport ошибка записи в базу
	ErrImport = errors.New("catalogimport: import failed")
)
