package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"pantryHub/internal/modules/pantries/application/port"
	"pantryHub/internal/modules/pantries/domain"
)

// StatsUseCase computes the admin dashboard counters.
type StatsUseCase struct {
	Pantries  port.PantryRepository
	Inventory port.InventoryRepository
	Clock     port.Clock
	Location  *time.Location
}

func NewStatsUseCase(pantries port.PantryRepository, inventory port.InventoryRepository, clock port.Clock, loc *time.Location) *StatsUseCase {
	return &StatsUseCase{Pantries: pantries, Inventory: inventory, Clock: clock, Location: loc}
}

func (uc *StatsUseCase) Execute(ctx context.Context) (domain.Stats, error) {
	pantries, err := uc.Pantries.ListActive(ctx)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("list pantries: %w", err)
	}
	ids := make([]uuid.UUID, 0, len(pantries))
	for _, p := range pantries {
		ids = append(ids, p.ID)
	}
	byPantry, err := uc.Inventory.ListByPantries(ctx, ids)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("list inventory: %w", err)
	}

	now := uc.Clock()
	stats := domain.Stats{ActivePantries: len(pantries)}
	for _, p := range pantries {
		if p.HoursStatus(now, uc.Location).Open {
			stats.OpenNow++
		}
		for _, item := range byPantry[p.ID] {
			stats.TotalItems++
			if item.IsSurplus {
				stats.SurplusItems++
			}
			if item.IsLowStock() {
				stats.LowStockItems++
			}
		}
	}
	return stats, nil
}
