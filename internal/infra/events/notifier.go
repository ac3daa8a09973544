package events

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/appointment-booking/internal/domain"
)

// DefaultPublishTimeout ограничение времени на одну публикацию
const DefaultPublishTimeout = 3 * time.Second

// Notifier публикует события бронирований по принципу best-effort:
// вызывается после коммита, ошибки брокера логируются и не возвращаются.
type Notifier struct {
	publisher Publisher
	metrics   Metrics
	logger    Logger
	timeout   time.Duration
}

// NewNotifier создает notifier. timeout <= 0 заменяется на DefaultPublishTimeout.
func NewNotifier(publisher Publisher, metrics Metrics, logger Logger, timeout time.Duration) *Notifier {
	if timeout <= 0 {
		timeout = DefaultPublishTimeout
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &Notifier{
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
		timeout:   timeout,
	}
}

type noopMetrics struct{}

func (noopMetrics) IncEventPublished(string, bool) {}

// Notify присваивает событию ID и публикует его.
// Отмена контекста запроса не прерывает публикацию уже зафиксированного изменения.
func (n *Notifier) Notify(ctx context.Context, event domain.BookingEvent) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), n.timeout)
	defer cancel()

	if err := n.publisher.Publish(pubCtx, event); err != nil {
		n.metrics.IncEventPublished(string(event.Type), false)
		n.logger.Error("Notify: failed to publish %s for booking id=%d: %v", event.Type, event.BookingID, err)
		return
	}

	n.metrics.IncEventPublished(string(event.Type), true)
	n.logger.Info("Notify: published %s event_id=%s booking id=%d", event.Type, event.ID, event.BookingID)
}
