package replace_schedule

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DetailingBooking/internal/api/middleware"
	"github.com/m04kA/SMC-DetailingBooking/internal/service/shops"
	"github.com/m04kA/SMC-DetailingBooking/internal/service/shops/models"
	"github.com/m04kA/SMC-DetailingBooking/pkg/logger"
)

type fakeService struct {
	got *models.ReplaceScheduleRequest
	err error
}

func (f *fakeService) ReplaceSchedule(_ context.Context, req *models.ReplaceScheduleRequest) ([]models.WindowResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.WindowResponse, 0, len(req.Windows))
	for _, w := range req.Windows {
		out = append(out, models.WindowResponse{Weekday: w.Weekday, OpenTime: w.OpenTime, CloseTime: w.CloseTime})
	}
	return out, nil
}

func serve(svc *fakeService, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.Handle("/shops/{shopId}/schedule", middleware.Auth(http.HandlerFunc(NewHandler(svc, logger.NewNop()).Handle)))
	req := httptest.NewRequest(http.MethodPut, "/shops/4/schedule", strings.NewReader(body))
	req.Header.Set(middleware.UserIDHeader, "7")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Replaced(t *testing.T) {
	svc := &fakeService{}
	rec := serve(svc, `{"windows": [
		{"weekday": 1, "openTime": "09:00", "closeTime": "12:00"},
		{"weekday": 1, "openTime": "14:00", "closeTime": "18:00"}
	]}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(4), svc.got.ShopID)
	assert.Equal(t, int64(7), svc.got.UserID)
	require.Len(t, svc.got.Windows, 2)

	var resp ScheduleResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "14:00", resp.Windows[1].OpenTime)
}

func TestHandle_EmptyScheduleOfDraftShop(t *testing.T) {
	svc := &fakeService{}
	rec := serve(svc, `{"windows": []}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, svc.got.Windows)
	assert.JSONEq(t, `{"windows": []}`, rec.Body.String())
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "overlap", err: shops.ErrInvalidInput, status: http.StatusBadRequest},
		{name: "not owner", err: shops.ErrAccessDenied, status: http.StatusForbidden},
		{name: "published shop closed every day", err: shops.ErrEmptyPublishedSchedule, status: http.StatusConflict},
		{name: "missing shop", err: shops.ErrShopNotFound, status: http.StatusNotFound},
		{name: "internal", err: shops.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeService{err: tt.err}, `{"windows": []}`)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
