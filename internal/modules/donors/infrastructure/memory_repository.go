package infrastructure

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"pantryHub/internal/modules/donors/domain"
)

// MemoryRepository keeps donors in process, in insertion order.
type MemoryRepository struct {
	mu     sync.RWMutex
	donors map[uuid.UUID]domain.Donor
	order  []uuid.UUID
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{donors: make(map[uuid.UUID]domain.Donor)}
}

func (r *MemoryRepository) ListByPantry(_ context.Context, pantryID uuid.UUID) ([]domain.Donor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Donor, 0)
	for _, id := range r.order {
		if d := r.donors[id]; d.PantryID == pantryID {
			out = append(out, cloneDonor(d))
		}
	}
	return out, nil
}

func (r *MemoryRepository) Get(_ context.Context, id uuid.UUID) (*domain.Donor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.donors[id]
	if !ok {
		return nil, domain.ErrDonorNotFound
	}
	d = cloneDonor(d)
	return &d, nil
}

func (r *MemoryRepository) Create(_ context.Context, donor domain.Donor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.donors[donor.ID]; exists {
		return fmt.Errorf("donor %s already exists", donor.ID)
	}
	r.donors[donor.ID] = cloneDonor(donor)
	r.order = append(r.order, donor.ID)
	return nil
}

func (r *MemoryRepository) Update(_ context.Context, donor domain.Donor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.donors[donor.ID]; !exists {
		return domain.ErrDonorNotFound
	}
	r.donors[donor.ID] = cloneDonor(donor)
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.donors[id]; !exists {
		return domain.ErrDonorNotFound
	}
	delete(r.donors, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func cloneDonor(d domain.Donor) domain.Donor {
	if d.PreferredCategories != nil {
		d.PreferredCategories = append([]string(nil), d.PreferredCategories...)
	}
	return d
}
