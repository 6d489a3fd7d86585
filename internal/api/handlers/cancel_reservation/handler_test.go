package cancel_reservation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DetailingBooking/internal/service/reservations"
	"github.com/m04kA/SMC-DetailingBooking/internal/service/reservations/models"
	"github.com/m04kA/SMC-DetailingBooking/pkg/logger"
)

type fakeService struct {
	got *models.CancelByClientRequest
	err error
}

func (f *fakeService) CancelByClient(_ context.Context, req *models.CancelByClientRequest) (*models.ReservationResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.ReservationResponse{ID: 3, Status: "cancelled_by_client"}, nil
}

const reference = "9d0c51f4-8f6a-4d52-9a34-3f1f3d7c2a10"

func serve(svc *fakeService, ref, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/public/shops/{slug}/reservations/{reference}/cancel", NewHandler(svc, logger.NewNop()).Handle)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/public/shops/shine/reservations/"+ref+"/cancel", strings.NewReader(body))
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Cancelled(t *testing.T) {
	svc := &fakeService{}
	rec := serve(svc, reference, `{"email": "anna@example.com", "reason": "sick"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "shine", svc.got.Slug)
	assert.Equal(t, reference, svc.got.Reference.String())
	assert.Equal(t, "sick", *svc.got.Reason)
	assert.Contains(t, rec.Body.String(), "cancelled_by_client")
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		ref    string
		body   string
		err    error
		status int
	}{
		{name: "malformed reference", ref: "nope", body: `{}`, status: http.StatusNotFound},
		{name: "bad body", ref: reference, body: `{"email": 1}`, status: http.StatusBadRequest},
		{name: "email mismatch", ref: reference, body: `{"email": "x@y.z"}`, err: reservations.ErrReservationNotFound, status: http.StatusNotFound},
		{name: "already completed", ref: reference, body: `{"email": "x@y.z"}`, err: reservations.ErrCannotCancel, status: http.StatusConflict},
		{name: "reason too long", ref: reference, body: `{"email": "x@y.z"}`, err: reservations.ErrInvalidInput, status: http.StatusBadRequest},
		{name: "internal", ref: reference, body: `{"email": "x@y.z"}`, err: reservations.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeService{err: tt.err}, tt.ref, tt.body)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
