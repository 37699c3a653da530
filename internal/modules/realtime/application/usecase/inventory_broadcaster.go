package usecase

import (
	"context"
	"time"

	pantries "pantryHub/internal/modules/pantries/domain"
	"pantryHub/internal/modules/realtime/domain"
)

// InventoryBroadcaster pushes inventory mutations made through the REST API to the pantry room.
type InventoryBroadcaster struct {
	broadcast *BroadcastUseCase
	now       func() time.Time
}

func NewInventoryBroadcaster(broadcast *BroadcastUseCase, now func() time.Time) *InventoryBroadcaster {
	if now == nil {
		now = time.Now
	}
	return &InventoryBroadcaster{broadcast: broadcast, now: now}
}

func (b *InventoryBroadcaster) PublishInventory(ctx context.Context, action string, item pantries.InventoryItem) {
	b.broadcast.Execute(ctx, domain.BuildInventoryMessage(action, item, b.now()))
}
