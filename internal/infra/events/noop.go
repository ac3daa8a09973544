package events

import (
	"context"

	"github.com/m04kA/appointment-booking/internal/domain"
)

// NoopPublisher отбрасывает события (драйвер "none")
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, domain.BookingEvent) error { return nil }

func (NoopPublisher) Close() error { return nil }
