package infrastructure

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	hours "pantryHub/internal/modules/hours/domain"
	"pantryHub/internal/modules/pantries/domain"
)

func TestMemoryRepositoryListsActivePantriesInInsertOrder(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewMemoryRepository()
	first := domain.Pantry{ID: uuid.New(), Name: "Northside", Status: domain.PantryStatusActive}
	hidden := domain.Pantry{ID: uuid.New(), Name: "Closed Down", Status: domain.PantryStatusInactive}
	second := domain.Pantry{ID: uuid.New(), Name: "Eastside", Status: domain.PantryStatusActive}
	for _, p := range []domain.Pantry{first, hidden, second} {
		if err := repo.Create(ctx, p); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	got, err := repo.ListActive(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0].ID != first.ID || got[1].ID != second.ID {
		t.Fatalf("unexpected pantries %+v", got)
	}
	if err := repo.Create(ctx, first); err == nil {
		t.Fatal("expected duplicate create to fail")
	}
}

func TestMemoryRepositoryReturnsCopies(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewMemoryRepository()
	p := domain.Pantry{
		ID:     uuid.New(),
		Status: domain.PantryStatusActive,
		Hours:  hours.ScheduleFromPairs("Monday", "9:00 AM - 5:00 PM"),
	}
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("create: %v", err)
	}

	loaded, err := repo.Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	loaded.Hours[0].Hours = "Closed"

	again, _ := repo.Get(ctx, p.ID)
	if again.Hours[0].Hours != "9:00 AM - 5:00 PM" {
		t.Fatalf("stored schedule was mutated: %+v", again.Hours)
	}
}

func TestMemoryRepositoryNotFound(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewMemoryRepository()
	inventory := repo.Inventory()

	if _, err := repo.Get(ctx, uuid.New()); !errors.Is(err, domain.ErrPantryNotFound) {
		t.Fatalf("expected ErrPantryNotFound, got %v", err)
	}
	if err := repo.Update(ctx, domain.Pantry{ID: uuid.New()}); !errors.Is(err, domain.ErrPantryNotFound) {
		t.Fatalf("expected ErrPantryNotFound on update, got %v", err)
	}
	if _, err := inventory.Get(ctx, uuid.New()); !errors.Is(err, domain.ErrInventoryItemNotFound) {
		t.Fatalf("expected ErrInventoryItemNotFound, got %v", err)
	}
	if err := inventory.Delete(ctx, uuid.New()); !errors.Is(err, domain.ErrInventoryItemNotFound) {
		t.Fatalf("expected ErrInventoryItemNotFound on delete, got %v", err)
	}
	orphan := domain.InventoryItem{ID: uuid.New(), PantryID: uuid.New()}
	if err := inventory.Create(ctx, orphan); !errors.Is(err, domain.ErrPantryNotFound) {
		t.Fatalf("expected items to require a pantry, got %v", err)
	}
}

func TestMemoryInventoryGroupsByPantry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewMemoryRepository()
	inventory := repo.Inventory()
	a := domain.Pantry{ID: uuid.New(), Status: domain.PantryStatusActive}
	b := domain.Pantry{ID: uuid.New(), Status: domain.PantryStatusActive}
	_ = repo.Create(ctx, a)
	_ = repo.Create(ctx, b)

	rice := domain.InventoryItem{ID: uuid.New(), PantryID: a.ID, Name: "Rice"}
	beans := domain.InventoryItem{ID: uuid.New(), PantryID: a.ID, Name: "Beans"}
	milk := domain.InventoryItem{ID: uuid.New(), PantryID: b.ID, Name: "Milk"}
	for _, item := range []domain.InventoryItem{rice, beans, milk} {
		if err := inventory.Create(ctx, item); err != nil {
			t.Fatalf("create item: %v", err)
		}
	}

	grouped, err := inventory.ListByPantries(ctx, []uuid.UUID{a.ID})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(grouped) != 1 || len(grouped[a.ID]) != 2 {
		t.Fatalf("unexpected grouping %+v", grouped)
	}

	if err := inventory.Delete(ctx, rice.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	remaining, _ := inventory.ListByPantry(ctx, a.ID)
	if len(remaining) != 1 || remaining[0].ID != beans.ID {
		t.Fatalf("unexpected remaining items %+v", remaining)
	}
}
