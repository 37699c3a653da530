package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"pantryHub/internal/modules/pantries/application/port"
	"pantryHub/internal/modules/pantries/domain"
)

// SearchPantriesUseCase powers the public pantry listing and its filters.
type SearchPantriesUseCase struct {
	Pantries  port.PantryRepository
	Inventory port.InventoryRepository
	Clock     port.Clock
	Location  *time.Location
}

func NewSearchPantriesUseCase(pantries port.PantryRepository, inventory port.InventoryRepository, clock port.Clock, loc *time.Location) *SearchPantriesUseCase {
	return &SearchPantriesUseCase{Pantries: pantries, Inventory: inventory, Clock: clock, Location: loc}
}

func (uc *SearchPantriesUseCase) Execute(ctx context.Context, cmd domain.SearchPantriesCommand) (domain.Page[domain.PantryView], error) {
	pantries, err := uc.Pantries.ListActive(ctx)
	if err != nil {
		return domain.Page[domain.PantryView]{}, fmt.Errorf("list pantries: %w", err)
	}

	matching := make([]domain.Pantry, 0, len(pantries))
	for _, p := range pantries {
		if p.MatchesSearch(cmd.Search) {
			matching = append(matching, p)
		}
	}

	ids := make([]uuid.UUID, 0, len(matching))
	for _, p := range matching {
		ids = append(ids, p.ID)
	}
	inventory, err := uc.Inventory.ListByPantries(ctx, ids)
	if err != nil {
		return domain.Page[domain.PantryView]{}, fmt.Errorf("list inventory: %w", err)
	}

	now := uc.Clock()
	views := make([]domain.PantryView, 0, len(matching))
	for _, p := range matching {
		view := domain.NewPantryView(p, inventory[p.ID], now, uc.Location)
		if cmd.OpenNow && !view.HoursStatus.Open {
			continue
		}
		if cmd.HasSurplus && !view.HasSurplus() {
			continue
		}
		if strings.TrimSpace(cmd.Category) != "" && !view.StocksCategory(cmd.Category) {
			continue
		}
		views = append(views, view)
	}

	sort.SliceStable(views, func(i, j int) bool {
		return strings.ToLower(views[i].Name) < strings.ToLower(views[j].Name)
	})

	page := domain.Paginate(views, cmd.PageQuery())
	slog.Debug("pantry search",
		slog.String("search", cmd.Search),
		slog.String("category", cmd.Category),
		slog.Bool("openNow", cmd.OpenNow),
		slog.Bool("hasSurplus", cmd.HasSurplus),
		slog.Int("total", page.Total),
	)
	return page, nil
}
