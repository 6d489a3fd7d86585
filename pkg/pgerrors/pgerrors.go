package pgerrors

import (
	"errors"

	"github.com/lib/pq"
)

// Коды SQLSTATE, которые обрабатываются приложением
const (
	UniqueViolation      pq.ErrorCode = "23505"
	ForeignKeyViolation  pq.ErrorCode = "23503"
	SerializationFailure pq.ErrorCode = "40001"
	DeadlockDetected     pq.ErrorCode = "40P01"
)

// Code возвращает SQLSTATE ошибки драйвера или пустую строку
func Code(err error) pq.ErrorCode {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code
	}
	return ""
}

// IsUniqueViolation нарушение уникального индекса
func IsUniqueViolation(err error) bool {
	return Code(err) == UniqueViolation
}

// IsForeignKeyViolation нарушение внешнего ключа
func IsForeignKeyViolation(err error) bool {
	return Code(err) == ForeignKeyViolation
}

// IsRetryable транзакцию можно повторить (конфликт сериализации или дедлок)
func IsRetryable(err error) bool {
	code := Code(err)
	return code == SerializationFailure || code == DeadlockDetected
}
