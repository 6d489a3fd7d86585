package quote_price

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DetailingBooking/internal/api/handlers"
	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
	quotePrice "github.com/m04kA/SMC-DetailingBooking/internal/usecase/quote_price"
	"github.com/m04kA/SMC-DetailingBooking/pkg/logger"
)

type fakeUseCase struct {
	got *quotePrice.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *quotePrice.Request) (*quotePrice.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &quotePrice.Response{ShopID: 1, Quote: &domain.Quote{
		Selection:            req.Selection,
		TotalPrice:           decimal.RequireFromString("64.5"),
		TotalDurationMinutes: 75,
	}}, nil
}

func serve(uc *fakeUseCase, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/public/shops/{slug}/quote", NewHandler(uc, logger.NewNop()).Handle).Methods(http.MethodPost)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/public/shops/shine/quote", strings.NewReader(body)))
	return rec
}

func TestHandle_OK(t *testing.T) {
	uc := &fakeUseCase{}
	rec := serve(uc, `{"serviceId":5,"vehicleSizeId":3,"addOnIds":[9,8]}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "shine", uc.got.Slug)
	assert.Equal(t, []int64{9, 8}, uc.got.Selection.AddOnIDs)

	var resp handlers.QuoteResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "64.50", resp.TotalPrice)
	assert.Equal(t, 75, resp.TotalDurationMinutes)
	assert.Equal(t, int64(3), *resp.VehicleSizeID)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		err    error
		status int
	}{
		{name: "bad body", body: `{"serviceId":"five"}`, status: http.StatusBadRequest},
		{name: "unknown add-on", body: `{"serviceId":5,"addOnIds":[1]}`, err: quotePrice.ErrAddOnNotFound, status: http.StatusNotFound},
		{name: "invalid selection", body: `{"serviceId":5}`, err: quotePrice.ErrInvalidSelection, status: http.StatusBadRequest},
		{name: "internal", body: `{"serviceId":5}`, err: errors.New("boom"), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeUseCase{err: tt.err}, tt.body)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
