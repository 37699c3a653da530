package infrastructure

import (
	"context"
	"log/slog"

	"pantryHub/internal/modules/realtime/application/port"
	"pantryHub/internal/modules/realtime/domain"
)

// HandlerRegistry routes consumed events to the handler registered for their source topic.
type HandlerRegistry struct {
	handlers map[string]port.TopicHandler
}

func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{handlers: make(map[string]port.TopicHandler)}
}

func (r *HandlerRegistry) Register(h port.TopicHandler) {
	r.handlers[h.Topic()] = h
}

// Topics lists the source topics with a registered handler.
func (r *HandlerRegistry) Topics() []string {
	topics := make([]string, 0, len(r.handlers))
	for topic := range r.handlers {
		topics = append(topics, topic)
	}
	return topics
}

// Dispatch hands msg, read from source, to its handler. Events from unknown sources are dropped.
func (r *HandlerRegistry) Dispatch(ctx context.Context, source string, msg *domain.Message) error {
	handler, ok := r.handlers[source]
	if !ok {
		slog.Debug("no handler for topic", slog.String("topic", source))
		return nil
	}
	return handler.Handle(ctx, msg)
}
