package infrastructure

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"pantryHub/internal/modules/pantries/domain"
)

// MemoryRepository keeps pantries and inventory in process. It backs local runs without
// DATABASE_URL and the handler tests.
type MemoryRepository struct {
	mu          sync.RWMutex
	pantries    map[uuid.UUID]domain.Pantry
	pantryOrder []uuid.UUID
	items       map[uuid.UUID]domain.InventoryItem
	itemOrder   []uuid.UUID
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		pantries: make(map[uuid.UUID]domain.Pantry),
		items:    make(map[uuid.UUID]domain.InventoryItem),
	}
}

func (r *MemoryRepository) ListActive(_ context.Context) ([]domain.Pantry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Pantry, 0, len(r.pantryOrder))
	for _, id := range r.pantryOrder {
		if p := r.pantries[id]; p.IsActive() {
			out = append(out, clonePantry(p))
		}
	}
	return out, nil
}

func (r *MemoryRepository) Get(_ context.Context, id uuid.UUID) (*domain.Pantry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.pantries[id]
	if !ok {
		return nil, domain.ErrPantryNotFound
	}
	p = clonePantry(p)
	return &p, nil
}

func (r *MemoryRepository) Create(_ context.Context, pantry domain.Pantry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.pantries[pantry.ID]; exists {
		return fmt.Errorf("pantry %s already exists", pantry.ID)
	}
	r.pantries[pantry.ID] = clonePantry(pantry)
	r.pantryOrder = append(r.pantryOrder, pantry.ID)
	return nil
}

func (r *MemoryRepository) Update(_ context.Context, pantry domain.Pantry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.pantries[pantry.ID]; !exists {
		return domain.ErrPantryNotFound
	}
	r.pantries[pantry.ID] = clonePantry(pantry)
	return nil
}

// Inventory returns a view of the repository satisfying port.InventoryRepository. Both views share
// the same lock so a pantry and its items are always read consistently.
func (r *MemoryRepository) Inventory() *MemoryInventory {
	return &MemoryInventory{repo: r}
}

// MemoryInventory is the inventory side of MemoryRepository.
type MemoryInventory struct {
	repo *MemoryRepository
}

func (m *MemoryInventory) ListByPantry(_ context.Context, pantryID uuid.UUID) ([]domain.InventoryItem, error) {
	r := m.repo
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.InventoryItem, 0)
	for _, id := range r.itemOrder {
		if item := r.items[id]; item.PantryID == pantryID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (m *MemoryInventory) ListByPantries(_ context.Context, pantryIDs []uuid.UUID) (map[uuid.UUID][]domain.InventoryItem, error) {
	r := m.repo
	r.mu.RLock()
	defer r.mu.RUnlock()

	wanted := make(map[uuid.UUID]struct{}, len(pantryIDs))
	for _, id := range pantryIDs {
		wanted[id] = struct{}{}
	}
	out := make(map[uuid.UUID][]domain.InventoryItem, len(pantryIDs))
	for _, id := range r.itemOrder {
		item := r.items[id]
		if _, ok := wanted[item.PantryID]; ok {
			out[item.PantryID] = append(out[item.PantryID], item)
		}
	}
	return out, nil
}

func (m *MemoryInventory) Get(_ context.Context, id uuid.UUID) (*domain.InventoryItem, error) {
	r := m.repo
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return nil, domain.ErrInventoryItemNotFound
	}
	return &item, nil
}

func (m *MemoryInventory) Create(_ context.Context, item domain.InventoryItem) error {
	r := m.repo
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.pantries[item.PantryID]; !ok {
		return domain.ErrPantryNotFound
	}
	if _, exists := r.items[item.ID]; exists {
		return fmt.Errorf("inventory item %s already exists", item.ID)
	}
	r.items[item.ID] = item
	r.itemOrder = append(r.itemOrder, item.ID)
	return nil
}

func (m *MemoryInventory) Update(_ context.Context, item domain.InventoryItem) error {
	r := m.repo
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; !exists {
		return domain.ErrInventoryItemNotFound
	}
	r.items[item.ID] = item
	return nil
}

func (m *MemoryInventory) Delete(_ context.Context, id uuid.UUID) error {
	r := m.repo
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[id]; !exists {
		return domain.ErrInventoryItemNotFound
	}
	delete(r.items, id)
	for i, existing := range r.itemOrder {
		if existing == id {
			r.itemOrder = append(r.itemOrder[:i], r.itemOrder[i+1:]...)
			break
		}
	}
	return nil
}

func clonePantry(p domain.Pantry) domain.Pantry {
	if p.Hours != nil {
		p.Hours = append(p.Hours[:0:0], p.Hours...)
	}
	if p.ServiceArea != nil {
		p.ServiceArea = append([]string(nil), p.ServiceArea...)
	}
	return p
}
