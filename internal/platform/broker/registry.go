package broker

import (
	"context"
	"log/slog"
	"sync"

	"pantryHub/internal/modules/realtime/domain"
	"pantryHub/internal/modules/realtime/infrastructure"
)

// StartKafkaConsumers starts one consumer per topic and returns a WaitGroup that completes once
// every consumer has stopped after ctx is cancelled.
func StartKafkaConsumers(
	ctx context.Context,
	registry *infrastructure.HandlerRegistry,
	brokers []string,
	groupID string,
	topics []string,
) *sync.WaitGroup {
	var wg sync.WaitGroup
	if len(brokers) == 0 {
		// kafka.NewReader panics on an empty broker list
		slog.Info("kafka disabled: no brokers configured")
		return &wg
	}
	for _, topic := range topics {
		wg.Add(1)
		go func(tp string) {
			defer wg.Done()
			consumer := NewKafkaConsumer(brokers, groupID, tp)
			err := consumer.Consume(ctx, func(msg *domain.Message) error {
				return registry.Dispatch(ctx, tp, msg)
			})
			slog.Info("kafka consumer stopped", slog.String("topic", tp), slog.Any("reason", err))
		}(topic)
	}
	return &wg
}
