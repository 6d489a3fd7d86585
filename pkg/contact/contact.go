package contact

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
)

const (
	MinPhoneDigits = 7
	MaxPhoneDigits = 15
)

var (
	// ErrInvalidEmail некорректный адрес электронной почты
	ErrInvalidEmail = errors.New("contact: invalid email")

	// ErrInvalidPhone некорректный номер телефона
	ErrInvalidPhone = errors.New("contact: invalid phone")
)

// NormalizeEmail проверяет адрес и приводит его к нижнему регистру
// Отображаемое имя ("Ivan <ivan@example.com>") не допускается
func NormalizeEmail(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	addr, err := mail.ParseAddress(raw)
	if err != nil || addr.Address != raw || addr.Name != "" {
		return "", ErrInvalidEmail
	}
	return strings.ToLower(addr.Address), nil
}

// NormalizePhone обрезает пробелы по краям и проверяет номер
// Допускаются ведущий "+", цифры, пробелы, дефисы и скобки, от 7 до 15 цифр
func NormalizePhone(raw string) (string, error) {
	phone := strings.TrimSpace(raw)

	digits := 0
	for i, r := range phone {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '+' && i == 0:
		case r == ' ' || r == '-' || r == '(' || r == ')':
		default:
			return "", fmt.Errorf("%w: unexpected character %q", ErrInvalidPhone, r)
		}
	}
	if digits < MinPhoneDigits || digits > MaxPhoneDigits {
		return "", fmt.Errorf("%w: must contain %d..%d digits", ErrInvalidPhone, MinPhoneDigits, MaxPhoneDigits)
	}
	return phone, nil
}
