package usecase

import (
	"context"
	"log/slog"

	"pantryHub/internal/modules/realtime/application/port"
	"pantryHub/internal/modules/realtime/domain"
)

type BroadcastUseCase struct {
	broadcaster port.Broadcaster
}

func NewBroadcastUseCase(b port.Broadcaster) *BroadcastUseCase {
	return &BroadcastUseCase{broadcaster: b}
}

// Execute fans msg out to every connected client interested in its topic.
func (uc *BroadcastUseCase) Execute(ctx context.Context, msg *domain.Message) {
	if msg == nil || msg.Topic == "" {
		slog.Debug("broadcast skipped message without topic")
		return
	}
	uc.broadcaster.Broadcast(ctx, msg)
}
