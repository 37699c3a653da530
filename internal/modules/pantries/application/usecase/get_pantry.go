package usecase

import (
	"context"
	"fmt"
	"time"

	hours "pantryHub/internal/modules/hours/domain"
	"pantryHub/internal/modules/pantries/application/port"
	"pantryHub/internal/modules/pantries/domain"
)

// GetPantryUseCase loads the detail view of one pantry.
type GetPantryUseCase struct {
	Pantries  port.PantryRepository
	Inventory port.InventoryRepository
	Clock     port.Clock
	Location  *time.Location
}

func NewGetPantryUseCase(pantries port.PantryRepository, inventory port.InventoryRepository, clock port.Clock, loc *time.Location) *GetPantryUseCase {
	return &GetPantryUseCase{Pantries: pantries, Inventory: inventory, Clock: clock, Location: loc}
}

// Execute loads the pantry as seen by actor. Inactive pantries are reported as not found unless
// the actor manages them.
func (uc *GetPantryUseCase) Execute(ctx context.Context, actor domain.Actor, pantryID string) (*domain.PantryView, error) {
	pantry, err := visiblePantry(ctx, uc.Pantries, actor, pantryID)
	if err != nil {
		return nil, err
	}
	id := pantry.ID
	items, err := uc.Inventory.ListByPantry(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	view := domain.NewPantryView(*pantry, items, uc.Clock(), uc.Location)
	return &view, nil
}

// HoursStatusOutput is the hours badge of a pantry at a given instant.
type HoursStatusOutput struct {
	PantryID    string                `json:"pantryId"`
	EvaluatedAt time.Time             `json:"evaluatedAt"`
	Timezone    string                `json:"timezone"`
	Status      hours.Status          `json:"status"`
	Display     string                `json:"display"`
	Issues      []hours.ScheduleIssue `json:"issues,omitempty"`
}

// HoursStatusUseCase answers "is this pantry open" at now or at a caller supplied instant.
type HoursStatusUseCase struct {
	Pantries port.PantryRepository
	Clock    port.Clock
	Location *time.Location
}

func NewHoursStatusUseCase(pantries port.PantryRepository, clock port.Clock, loc *time.Location) *HoursStatusUseCase {
	return &HoursStatusUseCase{Pantries: pantries, Clock: clock, Location: loc}
}

// Execute evaluates the pantry's hours at at, or at the clock's now when at is zero.
func (uc *HoursStatusUseCase) Execute(ctx context.Context, actor domain.Actor, pantryID string, at time.Time) (*HoursStatusOutput, error) {
	pantry, err := visiblePantry(ctx, uc.Pantries, actor, pantryID)
	if err != nil {
		return nil, err
	}
	if at.IsZero() {
		at = uc.Clock()
	}
	loc := pantry.Location(uc.Location)
	local := at.In(loc)
	return &HoursStatusOutput{
		PantryID:    pantry.ID.String(),
		EvaluatedAt: local,
		Timezone:    loc.String(),
		Status:      hours.StatusAt(pantry.Hours, local),
		Display:     hours.Describe(pantry.Hours),
		Issues:      hours.ParseSchedule(pantry.Hours).Issues(),
	}, nil
}

func visiblePantry(ctx context.Context, pantries port.PantryRepository, actor domain.Actor, pantryID string) (*domain.Pantry, error) {
	id, err := domain.ParseID(pantryID, domain.ErrPantryNotFound)
	if err != nil {
		return nil, err
	}
	pantry, err := pantries.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanView(*pantry) {
		return nil, domain.ErrPantryNotFound
	}
	return pantry, nil
}
