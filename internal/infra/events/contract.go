package events

import (
	"context"

	"github.com/m04kA/appointment-booking/internal/domain"
)

// Publisher отправляет событие брокеру
type Publisher interface {
	Publish(ctx context.Context, event domain.BookingEvent) error
	Close() error
}

// Metrics счетчик опубликованных событий
type Metrics interface {
	IncEventPublished(eventType string, ok bool)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
