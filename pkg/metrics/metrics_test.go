package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegisterer("test", reg)

	m.ObserveHTTP("GET", "/api/v1/public/shops/{slug}", 200, 10*time.Millisecond)
	m.ObserveHTTP("GET", "/api/v1/public/shops/{slug}", 200, 20*time.Millisecond)
	m.ObserveDB("select", time.Millisecond, errors.New("boom"))
	m.ReservationCreated("pending")
	m.SlotConflict("slot_taken")
	m.QuoteServed("ok")
	m.LeadCreated("contact_form")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/public/shops/{slug}", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DBQueryErrorsTotal.WithLabelValues("select")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReservationsCreatedTotal.WithLabelValues("pending")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SlotConflictsTotal.WithLabelValues("slot_taken")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.QuotesTotal.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LeadsCreatedTotal.WithLabelValues("contact_form")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveHTTP("GET", "/", 200, time.Millisecond)
		m.ObserveDB("select", time.Millisecond, nil)
		m.ReservationCreated("pending")
		m.SlotConflict("slot_taken")
		m.QuoteServed("ok")
		m.LeadCreated("booking_flow")
	})
}
