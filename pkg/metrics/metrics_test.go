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
	m := NewWithRegisterer("booking", prometheus.NewRegistry())

	m.IncBookingCreated()
	m.IncBookingCreated()
	m.IncBookingConflict()
	m.IncStatusTransition("pending", "confirmed")
	m.IncEventPublished("booking.created", true)
	m.IncEventPublished("booking.created", false)
	m.ObserveDB("SELECT", time.Millisecond, nil)
	m.ObserveDB("INSERT", time.Millisecond, errors.New("boom"))
	m.ObserveHTTP("GET", "/api/v1/bookings/{bookingId}", 200, 5*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.bookingsCreated.WithLabelValues("booking")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.bookingConflicts.WithLabelValues("booking")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.statusTransitions.WithLabelValues("booking", "pending", "confirmed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.eventsPublished.WithLabelValues("booking", "booking.created", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.dbQueriesTotal.WithLabelValues("booking", "INSERT", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("booking", "GET", "/api/v1/bookings/{bookingId}", "200")))
}

func TestMetrics_NilReceiver(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.IncBookingCreated()
		m.IncBookingConflict()
		m.IncStatusTransition("pending", "cancelled")
		m.IncEventPublished("booking.cancelled", true)
		m.IncCache("business", "hit")
		m.ObserveDB("SELECT", time.Millisecond, nil)
		m.ObserveHTTP("GET", "/", 200, time.Millisecond)
	})
}
