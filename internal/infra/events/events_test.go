package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/appointment-booking/internal/domain"
	"github.com/m04kA/appointment-booking/pkg/logger"
)

type recordingPublisher struct {
	events []domain.BookingEvent
	err    error
	ctxErr error
}

func (p *recordingPublisher) Publish(ctx context.Context, event domain.BookingEvent) error {
	p.ctxErr = ctx.Err()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

type recordingMetrics struct {
	ok, failed int
}

func (m *recordingMetrics) IncEventPublished(_ string, ok bool) {
	if ok {
		m.ok++
	} else {
		m.failed++
	}
}

func sampleEvent() domain.BookingEvent {
	return domain.BookingEvent{
		Type:       domain.EventBookingCreated,
		BookingID:  15,
		BusinessID: 3,
		UserID:     8,
		Date:       "2026-02-15",
		StartTime:  "10:00",
		Status:     domain.StatusPending,
		OccurredAt: time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestNotifier_AssignsIDAndPublishes(t *testing.T) {
	pub := &recordingPublisher{}
	metrics := &recordingMetrics{}
	n := NewNotifier(pub, metrics, logger.NewNop(), 0)

	n.Notify(context.Background(), sampleEvent())

	require.Len(t, pub.events, 1)
	assert.NotEmpty(t, pub.events[0].ID)
	assert.Equal(t, 1, metrics.ok)
}

func TestNotifier_IgnoresCancelledRequestContext(t *testing.T) {
	pub := &recordingPublisher{}
	n := NewNotifier(pub, nil, logger.NewNop(), time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	n.Notify(ctx, sampleEvent())

	require.Len(t, pub.events, 1)
	assert.NoError(t, pub.ctxErr)
}

func TestNotifier_SwallowsPublishErrors(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("broker down")}
	metrics := &recordingMetrics{}
	n := NewNotifier(pub, metrics, logger.NewNop(), time.Second)

	assert.NotPanics(t, func() { n.Notify(context.Background(), sampleEvent()) })
	assert.Equal(t, 1, metrics.failed)
}

func TestBuildKafkaMessage(t *testing.T) {
	event := sampleEvent()
	event.ID = "evt-1"

	msg, err := buildKafkaMessage(event)
	require.NoError(t, err)

	assert.Equal(t, "15", string(msg.Key))
	assert.Equal(t, event.OccurredAt, msg.Time)

	headers := map[string]string{}
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, "evt-1", headers[HeaderEventID])
	assert.Equal(t, "booking.created", headers[HeaderEventType])

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "booking.created", decoded["type"])
	assert.Equal(t, "10:00", decoded["startTime"])
	assert.Equal(t, "pending", decoded["status"])
}

func TestSplitBrokers(t *testing.T) {
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, SplitBrokers(" kafka-1:9092, ,kafka-2:9092 "))
	assert.Empty(t, SplitBrokers(""))
}

func TestNewKafkaPublisher_Validation(t *testing.T) {
	_, err := NewKafkaPublisher("", "bookings")
	assert.ErrorIs(t, err, ErrConnect)

	_, err = NewKafkaPublisher("localhost:9092", "")
	assert.ErrorIs(t, err, ErrConnect)

	p, err := NewKafkaPublisher("localhost:9092", "bookings")
	require.NoError(t, err)
	assert.Equal(t, KafkaBatchTimeout, p.writer.BatchTimeout)
	assert.NoError(t, p.Close())
}

func TestNoopPublisher(t *testing.T) {
	var p Publisher = NoopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), sampleEvent()))
	assert.NoError(t, p.Close())
}
