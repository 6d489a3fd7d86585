package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
)

// ErrMissingParam параметр не передан
var ErrMissingParam = errors.New("missing parameter")

// PathInt64 читает положительный числовой параметр пути
func PathInt64(r *http.Request, name string) (int64, error) {
	return parsePositive(mux.Vars(r)[name])
}

// QueryInt64 читает необязательный положительный числовой query параметр
func QueryInt64(r *http.Request, name string) (*int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := parsePositive(raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// QueryInt64List читает список id через запятую ("1,2,3")
func QueryInt64List(r *http.Request, name string) ([]int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		v, err := parsePositive(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		ids = append(ids, v)
	}
	return ids, nil
}

// QueryDate читает необязательную дату YYYY-MM-DD
func QueryDate(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	d, err := time.Parse(domain.DateFormat, raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// QueryPage читает limit и offset
func QueryPage(r *http.Request) (limit, offset uint64, err error) {
	q := r.URL.Query()
	if raw := q.Get("limit"); raw != "" {
		if limit, err = strconv.ParseUint(raw, 10, 64); err != nil {
			return 0, 0, err
		}
	}
	if raw := q.Get("offset"); raw != "" {
		if offset, err = strconv.ParseUint(raw, 10, 64); err != nil {
			return 0, 0, err
		}
	}
	return limit, offset, nil
}

func parsePositive(raw string) (int64, error) {
	if raw == "" {
		return 0, ErrMissingParam
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	if v <= 0 {
		return 0, errors.New("must be positive")
	}
	return v, nil
}
