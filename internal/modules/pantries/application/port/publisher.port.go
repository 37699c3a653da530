package port

import (
	"context"
	"time"

	"pantryHub/internal/modules/pantries/domain"
)

// InventoryPublisher notifies watchers of a pantry that its inventory changed.
type InventoryPublisher interface {
	PublishInventory(ctx context.Context, action string, item domain.InventoryItem)
}

// Clock supplies the current instant. Hours are always evaluated against it, never cached.
type Clock func() time.Time
