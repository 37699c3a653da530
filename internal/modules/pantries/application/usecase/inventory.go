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
	"pantryHub/internal/shared/validation"
)

// Inventory actions reported to the publisher.
const (
	InventoryCreated = "created"
	InventoryUpdated = "updated"
	InventoryDeleted = "deleted"
)

// ListInventoryQuery filters the inventory of one pantry.
type ListInventoryQuery struct {
	Category string `query:"category"`
	LowStock bool   `query:"lowStock"`
	Surplus  bool   `query:"surplus"`
}

// InventoryUseCase manages the stock of pantries and announces every change.
type InventoryUseCase struct {
	Pantries  port.PantryRepository
	Inventory port.InventoryRepository
	Publisher port.InventoryPublisher
	Clock     port.Clock
	NewID     func() uuid.UUID
}

func NewInventoryUseCase(pantries port.PantryRepository, inventory port.InventoryRepository, publisher port.InventoryPublisher, clock port.Clock) *InventoryUseCase {
	return &InventoryUseCase{Pantries: pantries, Inventory: inventory, Publisher: publisher, Clock: clock, NewID: uuid.New}
}

// List returns the pantry's items ordered by category then name.
func (uc *InventoryUseCase) List(ctx context.Context, actor domain.Actor, pantryID string, query ListInventoryQuery) ([]domain.InventoryItem, error) {
	pantry, err := visiblePantry(ctx, uc.Pantries, actor, pantryID)
	if err != nil {
		return nil, err
	}
	items, err := uc.Inventory.ListByPantry(ctx, pantry.ID)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	filtered := make([]domain.InventoryItem, 0, len(items))
	for _, item := range items {
		if !item.MatchesCategory(query.Category) {
			continue
		}
		if query.LowStock && !item.IsLowStock() {
			continue
		}
		if query.Surplus && !item.IsSurplus {
			continue
		}
		filtered = append(filtered, item)
	}
	sortItems(filtered)
	return filtered, nil
}

// LowStock lists the items across every active pantry that have fallen to their threshold.
func (uc *InventoryUseCase) LowStock(ctx context.Context) ([]domain.InventoryItem, error) {
	pantries, err := uc.Pantries.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pantries: %w", err)
	}
	ids := make([]uuid.UUID, 0, len(pantries))
	for _, p := range pantries {
		ids = append(ids, p.ID)
	}
	byPantry, err := uc.Inventory.ListByPantries(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	low := make([]domain.InventoryItem, 0)
	for _, items := range byPantry {
		for _, item := range items {
			if item.IsLowStock() {
				low = append(low, item)
			}
		}
	}
	sort.SliceStable(low, func(i, j int) bool {
		if low[i].Quantity != low[j].Quantity {
			return low[i].Quantity < low[j].Quantity
		}
		return strings.ToLower(low[i].Name) < strings.ToLower(low[j].Name)
	})
	return low, nil
}

func (uc *InventoryUseCase) Create(ctx context.Context, actor domain.Actor, pantryID string, cmd domain.CreateInventoryItemCommand) (*domain.InventoryItem, error) {
	pantry, err := uc.managedPantry(ctx, actor, pantryID)
	if err != nil {
		return nil, err
	}
	if err := validation.Struct(cmd, domain.ErrInvalidInventoryItem); err != nil {
		return nil, err
	}
	item, err := cmd.NewItem(uc.NewID(), pantry.ID, uc.now())
	if err != nil {
		return nil, err
	}
	if err := uc.Inventory.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create inventory item: %w", err)
	}
	uc.publish(ctx, InventoryCreated, item)
	return &item, nil
}

func (uc *InventoryUseCase) Update(ctx context.Context, actor domain.Actor, itemID string, cmd domain.UpdateInventoryItemCommand) (*domain.InventoryItem, error) {
	item, err := uc.managedItem(ctx, actor, itemID)
	if err != nil {
		return nil, err
	}
	if err := validation.Struct(cmd, domain.ErrInvalidInventoryItem); err != nil {
		return nil, err
	}
	if err := cmd.Apply(item, uc.now()); err != nil {
		return nil, err
	}
	if err := uc.Inventory.Update(ctx, *item); err != nil {
		return nil, fmt.Errorf("update inventory item: %w", err)
	}
	uc.publish(ctx, InventoryUpdated, *item)
	return item, nil
}

func (uc *InventoryUseCase) Delete(ctx context.Context, actor domain.Actor, itemID string) error {
	item, err := uc.managedItem(ctx, actor, itemID)
	if err != nil {
		return err
	}
	if err := uc.Inventory.Delete(ctx, item.ID); err != nil {
		return fmt.Errorf("delete inventory item: %w", err)
	}
	uc.publish(ctx, InventoryDeleted, *item)
	return nil
}

func (uc *InventoryUseCase) managedPantry(ctx context.Context, actor domain.Actor, pantryID string) (*domain.Pantry, error) {
	id, err := domain.ParseID(pantryID, domain.ErrPantryNotFound)
	if err != nil {
		return nil, err
	}
	pantry, err := uc.Pantries.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(*pantry) {
		return nil, domain.ErrNotPantryManager
	}
	return pantry, nil
}

func (uc *InventoryUseCase) managedItem(ctx context.Context, actor domain.Actor, itemID string) (*domain.InventoryItem, error) {
	id, err := domain.ParseID(itemID, domain.ErrInventoryItemNotFound)
	if err != nil {
		return nil, err
	}
	item, err := uc.Inventory.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := uc.managedPantry(ctx, actor, item.PantryID.String()); err != nil {
		return nil, err
	}
	return item, nil
}

func (uc *InventoryUseCase) publish(ctx context.Context, action string, item domain.InventoryItem) {
	slog.Info("inventory changed",
		slog.String("action", action),
		slog.String("pantryId", item.PantryID.String()),
		slog.String("itemId", item.ID.String()),
		slog.Int("quantity", item.Quantity),
	)
	if uc.Publisher == nil {
		return
	}
	uc.Publisher.PublishInventory(ctx, action, item)
}

func (uc *InventoryUseCase) now() time.Time {
	return uc.Clock().UTC()
}

func sortItems(items []domain.InventoryItem) {
	sort.SliceStable(items, func(i, j int) bool {
		ci, cj := strings.ToLower(items[i].Category), strings.ToLower(items[j].Category)
		if ci != cj {
			return ci < cj
		}
		return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
	})
}
