package port

import (
	"context"

	"github.com/google/uuid"

	"pantryHub/internal/modules/pantries/domain"
)

// PantryRepository persists pantry listings. Get returns domain.ErrPantryNotFound for unknown ids.
type PantryRepository interface {
	ListActive(ctx context.Context) ([]domain.Pantry, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Pantry, error)
	Create(ctx context.Context, pantry domain.Pantry) error
	Update(ctx context.Context, pantry domain.Pantry) error
}

// InventoryRepository persists inventory items. Lookups of unknown ids return
// domain.ErrInventoryItemNotFound.
type InventoryRepository interface {
	ListByPantry(ctx context.Context, pantryID uuid.UUID) ([]domain.InventoryItem, error)
	ListByPantries(ctx context.Context, pantryIDs []uuid.UUID) (map[uuid.UUID][]domain.InventoryItem, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.InventoryItem, error)
	Create(ctx context.Context, item domain.InventoryItem) error
	Update(ctx context.Context, item domain.InventoryItem) error
	Delete(ctx context.Context, id uuid.UUID) error
}
