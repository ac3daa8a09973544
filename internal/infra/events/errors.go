package events

import "errors"

var (
	// ErrConnect ошибка подключения к брокеру
	ErrConnect = errors.New("events: failed to connect to broker")

	// ErrPublish ошибка публикации события
	ErrPublish = errors.New("events: failed to publish event")

	// ErrMarshal ошибка сериализации события
	ErrMarshal = errors.New("events: failed to marshal event")

	// ErrUnknownDriver неизвестный драйвер брокера в конфигурации
	ErrUnknownDriver = errors.New("events: unknown driver")
)
