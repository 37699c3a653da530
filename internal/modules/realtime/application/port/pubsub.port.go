package port

import (
	"context"

	"pantryHub/internal/modules/realtime/domain"
)

// PubSubPort consumes external events (kafka).
type PubSubPort interface {
	Consume(ctx context.Context, handler func(*domain.Message) error) error
}

// Broadcaster delivers messages to connected websocket clients.
type Broadcaster interface {
	Broadcast(ctx context.Context, msg *domain.Message)
}

// TopicHandler is registered per kafka topic and receives every decoded event of that topic.
type TopicHandler interface {
	Topic() string
	Handle(ctx context.Context, msg *domain.Message) error
}
