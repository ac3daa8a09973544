package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/m04kA/appointment-booking/internal/domain"
)

// Заголовки сообщений Kafka с метаданными события
const (
	HeaderEventID   = "event_id"
	HeaderEventType = "event_type"
)

// KafkaBatchTimeout предел ожидания пакета перед отправкой.
// Publish отправляет одно сообщение синхронно и ждёт не дольше этого значения.
const KafkaBatchTimeout = 10 * time.Millisecond

// KafkaPublisher публикует события в топик Kafka.
// Ключ сообщения - ID бронирования, поэтому события одного бронирования
// попадают в одну партицию и сохраняют порядок.
type KafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaPublisher создает writer для списка брокеров через запятую
func NewKafkaPublisher(brokers, topic string) (*KafkaPublisher, error) {
	addrs := SplitBrokers(brokers)
	if len(addrs) == 0 {
		return nil, fmt.Errorf("%w: no kafka brokers configured", ErrConnect)
	}
	if topic == "" {
		return nil, fmt.Errorf("%w: kafka topic is empty", ErrConnect)
	}

	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(addrs...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			BatchTimeout:           KafkaBatchTimeout,
			AllowAutoTopicCreation: true,
		},
	}, nil
}

// Publish отправляет событие синхронно
func (p *KafkaPublisher) Publish(ctx context.Context, event domain.BookingEvent) error {
	msg, err := buildKafkaMessage(event)
	if err != nil {
		return err
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("%w: kafka: %v", ErrPublish, err)
	}
	return nil
}

// Close сбрасывает буферы writer
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

func buildKafkaMessage(event domain.BookingEvent) (kafka.Message, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("%w: %v", ErrMarshal, err)
	}

	return kafka.Message{
		Key:   []byte(strconv.FormatInt(event.BookingID, 10)),
		Value: body,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: HeaderEventID, Value: []byte(event.ID)},
			{Key: HeaderEventType, Value: []byte(event.Type)},
		},
	}, nil
}

// SplitBrokers разбирает список брокеров "host1:9092, host2:9092"
func SplitBrokers(raw string) []string {
	var brokers []string
	for _, b := range strings.Split(raw, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
