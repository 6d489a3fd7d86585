package get_shop_reservations

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DetailingBooking/internal/api/middleware"
	"github.com/m04kA/SMC-DetailingBooking/internal/service/reservations"
	"github.com/m04kA/SMC-DetailingBooking/internal/service/reservations/models"
	"github.com/m04kA/SMC-DetailingBooking/pkg/logger"
)

type fakeService struct {
	got *models.ListRequest
	err error
}

func (f *fakeService) ListForShop(_ context.Context, req *models.ListRequest) (*models.ReservationListResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.ReservationListResponse{Reservations: []models.ReservationResponse{{ID: 1}, {ID: 2}}}, nil
}

func serve(svc *fakeService, target string, userID string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	protected := r.PathPrefix("/shops").Subrouter()
	protected.Use(middleware.Auth)
	protected.HandleFunc("/{shopId}/reservations", NewHandler(svc, logger.NewNop()).Handle)

	req := httptest.NewRequest(http.MethodGet, target, nil)
	if userID != "" {
		req.Header.Set(middleware.UserIDHeader, userID)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_PassesFilters(t *testing.T) {
	svc := &fakeService{}
	rec := serve(svc, "/shops/4/reservations?startDate=2025-06-16&endDate=2025-06-22&status=pending&includeInactive=true&limit=10&offset=20", "7")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), svc.got.UserID)
	assert.Equal(t, int64(4), svc.got.ShopID)
	assert.Equal(t, "2025-06-16", svc.got.StartDate.Format("2006-01-02"))
	assert.Equal(t, "2025-06-22", svc.got.EndDate.Format("2006-01-02"))
	assert.Equal(t, "pending", *svc.got.Status)
	assert.True(t, svc.got.IncludeInactive)
	assert.Equal(t, uint64(10), svc.got.Limit)
	assert.Equal(t, uint64(20), svc.got.Offset)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		user   string
		err    error
		status int
	}{
		{name: "no user", target: "/shops/4/reservations", status: http.StatusUnauthorized},
		{name: "bad shop id", target: "/shops/x/reservations", user: "7", status: http.StatusBadRequest},
		{name: "bad date", target: "/shops/4/reservations?startDate=16.06", user: "7", status: http.StatusBadRequest},
		{name: "bad flag", target: "/shops/4/reservations?includeInactive=maybe", user: "7", status: http.StatusBadRequest},
		{name: "not owner", target: "/shops/4/reservations", user: "7", err: reservations.ErrAccessDenied, status: http.StatusForbidden},
		{name: "unknown shop", target: "/shops/4/reservations", user: "7", err: reservations.ErrShopNotFound, status: http.StatusNotFound},
		{name: "bad status", target: "/shops/4/reservations?status=lost", user: "7", err: reservations.ErrInvalidInput, status: http.StatusBadRequest},
		{name: "internal", target: "/shops/4/reservations", user: "7", err: reservations.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeService{err: tt.err}, tt.target, tt.user)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
