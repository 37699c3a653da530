package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	hours "pantryHub/internal/modules/hours/domain"
	"pantryHub/internal/modules/pantries/domain"
	"pantryHub/internal/modules/pantries/infrastructure"
)

// monday10 is Monday 8 January 2024, 10:00 UTC.
var monday10 = time.Date(2024, time.January, 8, 10, 0, 0, 0, time.UTC)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

type publishedEvent struct {
	action string
	item   domain.InventoryItem
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *recordingPublisher) PublishInventory(_ context.Context, action string, item domain.InventoryItem) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{action: action, item: item})
}

func (p *recordingPublisher) snapshot() []publishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]publishedEvent(nil), p.events...)
}

type fixture struct {
	repo      *infrastructure.MemoryRepository
	inventory *infrastructure.MemoryInventory
}

func newFixture() fixture {
	repo := infrastructure.NewMemoryRepository()
	return fixture{repo: repo, inventory: repo.Inventory()}
}

func (f fixture) addPantry(t *testing.T, name, city, manager string, schedule hours.WeeklySchedule) domain.Pantry {
	t.Helper()
	p := domain.Pantry{
		ID:        uuid.New(),
		Name:      name,
		City:      city,
		Hours:     schedule,
		Status:    domain.PantryStatusActive,
		ManagerID: manager,
		CreatedAt: monday10,
	}
	if err := f.repo.Create(context.Background(), p); err != nil {
		t.Fatalf("seed pantry: %v", err)
	}
	return p
}

func (f fixture) addItem(t *testing.T, pantryID uuid.UUID, category, name string, quantity int, surplus bool) domain.InventoryItem {
	t.Helper()
	item := domain.InventoryItem{
		ID:                uuid.New(),
		PantryID:          pantryID,
		Category:          category,
		Name:              name,
		Quantity:          quantity,
		Unit:              "lb",
		Status:            domain.ItemStatusAvailable,
		IsSurplus:         surplus,
		LowStockThreshold: domain.DefaultLowStockThreshold,
		LastUpdated:       monday10,
	}
	if err := f.inventory.Create(context.Background(), item); err != nil {
		t.Fatalf("seed item: %v", err)
	}
	return item
}
