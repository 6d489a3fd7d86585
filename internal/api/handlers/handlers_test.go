package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
	quotePrice "github.com/m04kA/SMC-DetailingBooking/internal/usecase/quote_price"
)

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondConflict(rec, "слот занят")

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, ErrorResponse{Code: http.StatusConflict, Message: "слот занят"}, body)
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"a"}`))
	require.NoError(t, DecodeJSON(r, &dst))
	assert.Equal(t, "a", dst.Name)

	for _, body := range []string{``, `{"name":"a","extra":1}`, `{"name":"a"}{"name":"b"}`, `[`} {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		assert.Error(t, DecodeJSON(r, &dst), body)
	}
}

func TestSelectionFromQuery(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?serviceId=5&formulaId=6&addOnIds=7,%208", nil)
	sel, err := SelectionFromQuery(r)
	require.NoError(t, err)
	assert.Equal(t, int64(5), sel.ServiceID)
	assert.Equal(t, int64(6), *sel.FormulaID)
	assert.Nil(t, sel.VehicleSizeID)
	assert.Equal(t, []int64{7, 8}, sel.AddOnIDs)

	for _, q := range []string{"", "?serviceId=x", "?serviceId=0", "?serviceId=5&addOnIds=1,,2", "?serviceId=5&vehicleSizeId=-1"} {
		_, err := SelectionFromQuery(httptest.NewRequest(http.MethodGet, "/"+q, nil))
		assert.Error(t, err, q)
	}
}

func TestPathInt64(t *testing.T) {
	r := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"shopId": "12"})
	id, err := PathInt64(r, "shopId")
	require.NoError(t, err)
	assert.Equal(t, int64(12), id)

	_, err = PathInt64(r, "missing")
	assert.ErrorIs(t, err, ErrMissingParam)
}

func TestQueryPage(t *testing.T) {
	limit, offset, err := QueryPage(httptest.NewRequest(http.MethodGet, "/?limit=20&offset=40", nil))
	require.NoError(t, err)
	assert.Equal(t, uint64(20), limit)
	assert.Equal(t, uint64(40), offset)

	_, _, err = QueryPage(httptest.NewRequest(http.MethodGet, "/?limit=-1", nil))
	assert.Error(t, err)
}

func TestFromQuote(t *testing.T) {
	resp := FromQuote(&domain.Quote{
		Selection:            domain.Selection{ServiceID: 5},
		Lines:                []domain.QuoteLine{{Kind: domain.LineService, RefID: 5, Name: "Lavage", Price: decimal.RequireFromString("25.5"), DurationMinutes: 45}},
		TotalPrice:           decimal.RequireFromString("25.5"),
		TotalDurationMinutes: 45,
	})

	assert.Equal(t, "25.50", resp.TotalPrice)
	assert.Equal(t, "25.50", resp.Lines[0].Price)
	assert.Equal(t, "service", resp.Lines[0].Kind)
	assert.Equal(t, []int64{}, resp.AddOnIDs)
}

func TestRespondQuoteError(t *testing.T) {
	tests := []struct {
		err     error
		handled bool
		status  int
	}{
		{err: fmt.Errorf("wrap: %w", quotePrice.ErrShopNotFound), handled: true, status: http.StatusNotFound},
		{err: quotePrice.ErrAddOnNotFound, handled: true, status: http.StatusNotFound},
		{err: quotePrice.ErrInvalidSelection, handled: true, status: http.StatusBadRequest},
		{err: errors.New("other"), handled: false},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		assert.Equal(t, tt.handled, RespondQuoteError(rec, tt.err))
		if tt.handled {
			assert.Equal(t, tt.status, rec.Code)
		}
	}
}
