package port

import (
	"context"

	pantries "pantryHub/internal/modules/pantries/domain"
)

// PantryViewer loads a pantry with its inventory and live hours status as seen by actor. Pantries
// the actor may not see are reported as pantries.ErrPantryNotFound.
type PantryViewer interface {
	Execute(ctx context.Context, actor pantries.Actor, pantryID string) (*pantries.PantryView, error)
}
