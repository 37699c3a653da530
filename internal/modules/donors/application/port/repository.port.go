package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"pantryHub/internal/modules/donors/domain"
	pantries "pantryHub/internal/modules/pantries/domain"
)

// DonorRepository persists donor contacts. Lookups of unknown ids return domain.ErrDonorNotFound.
type DonorRepository interface {
	ListByPantry(ctx context.Context, pantryID uuid.UUID) ([]domain.Donor, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Donor, error)
	Create(ctx context.Context, donor domain.Donor) error
	Update(ctx context.Context, donor domain.Donor) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PantryLookup resolves the pantry a donor belongs to so ownership can be checked. It returns
// pantries.ErrPantryNotFound for unknown ids.
type PantryLookup interface {
	Get(ctx context.Context, id uuid.UUID) (*pantries.Pantry, error)
}

type Clock func() time.Time
