package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"pantryHub/internal/modules/donors/domain"
	"pantryHub/internal/modules/donors/infrastructure"
	pantries "pantryHub/internal/modules/pantries/domain"
	pantryinfra "pantryHub/internal/modules/pantries/infrastructure"
)

// monday10 is Monday 8 January 2024, 10:00 UTC.
var monday10 = time.Date(2024, time.January, 8, 10, 0, 0, 0, time.UTC)

type fixture struct {
	uc     *ManageDonorsUseCase
	donors *infrastructure.MemoryRepository
	pantry pantries.Pantry
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	pantryRepo := pantryinfra.NewMemoryRepository()
	pantry := pantries.Pantry{
		ID:        uuid.New(),
		Name:      "Northside Pantry",
		Status:    pantries.PantryStatusActive,
		ManagerID: "manager-1",
		CreatedAt: monday10,
	}
	if err := pantryRepo.Create(context.Background(), pantry); err != nil {
		t.Fatalf("seed pantry: %v", err)
	}
	donors := infrastructure.NewMemoryRepository()
	uc := NewManageDonorsUseCase(donors, pantryRepo, func() time.Time { return monday10 })
	return fixture{uc: uc, donors: donors, pantry: pantry}
}

func (f fixture) addDonor(t *testing.T, name string, status domain.DonorStatus, categories ...string) domain.Donor {
	t.Helper()
	d := domain.Donor{
		ID:                  uuid.New(),
		PantryID:            f.pantry.ID,
		Name:                name,
		Email:               strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@example.org",
		PreferredCategories: categories,
		Status:              status,
		CreatedAt:           monday10,
	}
	if err := f.donors.Create(context.Background(), d); err != nil {
		t.Fatalf("seed donor: %v", err)
	}
	return d
}

var (
	manager      = pantries.Actor{UserID: "manager-1"}
	otherManager = pantries.Actor{UserID: "manager-2"}
	admin        = pantries.Actor{UserID: "admin-1", Admin: true}
)

func TestManageDonorsCreate(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	fixedID := uuid.MustParse("0b7c9c1e-2f4d-4b7a-8a11-5d2f7a3c9e01")
	f.uc.NewID = func() uuid.UUID { return fixedID }
	cmd := domain.CreateDonorCommand{
		PantryID:            f.pantry.ID.String(),
		Name:                "Green Grocers",
		Email:               "give@green.example",
		PreferredCategories: []string{"Produce"},
	}

	donor, err := f.uc.Create(context.Background(), manager, cmd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if donor.ID != fixedID || donor.PantryID != f.pantry.ID || donor.Status != domain.DonorStatusActive || !donor.CreatedAt.Equal(monday10) {
		t.Fatalf("unexpected donor %+v", donor)
	}
	if _, err := f.donors.Get(context.Background(), fixedID); err != nil {
		t.Fatalf("expected donor to be stored: %v", err)
	}

	t.Run("other manager refused", func(t *testing.T) {
		if _, err := f.uc.Create(context.Background(), otherManager, cmd); !errors.Is(err, pantries.ErrNotPantryManager) {
			t.Fatalf("expected ErrNotPantryManager, got %v", err)
		}
	})

	t.Run("unknown pantry", func(t *testing.T) {
		unknown := cmd
		unknown.PantryID = uuid.NewString()
		if _, err := f.uc.Create(context.Background(), admin, unknown); !errors.Is(err, pantries.ErrPantryNotFound) {
			t.Fatalf("expected ErrPantryNotFound, got %v", err)
		}
	})

	t.Run("validation", func(t *testing.T) {
		invalid := domain.CreateDonorCommand{PantryID: "not-a-uuid", Email: "nope"}
		_, err := f.uc.Create(context.Background(), admin, invalid)
		if !errors.Is(err, domain.ErrInvalidDonor) {
			t.Fatalf("expected ErrInvalidDonor, got %v", err)
		}
		for _, fragment := range []string{"name is required", "email must be a valid email address", "pantryID must be a UUID"} {
			if !strings.Contains(err.Error(), fragment) {
				t.Fatalf("expected %q in %q", fragment, err.Error())
			}
		}
	})
}

func TestManageDonorsList(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	produce := f.addDonor(t, "Green Grocers", domain.DonorStatusActive, "Produce")
	anything := f.addDonor(t, "Corner Church", domain.DonorStatusActive)
	retired := f.addDonor(t, "Old Mill", domain.DonorStatusInactive, "Bakery")
	id := f.pantry.ID.String()

	all, err := f.uc.List(context.Background(), manager, id, ListDonorsQuery{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 3 || all[0].ID != produce.ID || all[2].ID != retired.ID {
		t.Fatalf("expected every donor in insert order, got %+v", all)
	}

	byCategory, err := f.uc.List(context.Background(), admin, id, ListDonorsQuery{Category: "produce"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(byCategory) != 2 || byCategory[0].ID != produce.ID || byCategory[1].ID != anything.ID {
		t.Fatalf("expected produce donor and open donor, got %+v", byCategory)
	}

	inactive, err := f.uc.List(context.Background(), admin, id, ListDonorsQuery{Status: "inactive"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(inactive) != 1 || inactive[0].ID != retired.ID {
		t.Fatalf("expected retired donor only, got %+v", inactive)
	}

	if _, err := f.uc.List(context.Background(), otherManager, id, ListDonorsQuery{}); !errors.Is(err, pantries.ErrNotPantryManager) {
		t.Fatalf("expected ErrNotPantryManager, got %v", err)
	}
	if _, err := f.uc.List(context.Background(), admin, "bogus", ListDonorsQuery{}); !errors.Is(err, pantries.ErrPantryNotFound) {
		t.Fatalf("expected ErrPantryNotFound, got %v", err)
	}
}

func TestManageDonorsUpdateAndDelete(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	donor := f.addDonor(t, "Green Grocers", domain.DonorStatusActive, "Produce")
	status := "inactive"
	cmd := domain.UpdateDonorCommand{Status: &status}

	if _, err := f.uc.Update(context.Background(), otherManager, donor.ID.String(), cmd); !errors.Is(err, pantries.ErrNotPantryManager) {
		t.Fatalf("expected ErrNotPantryManager, got %v", err)
	}
	badEmail := "nope"
	if _, err := f.uc.Update(context.Background(), manager, donor.ID.String(), domain.UpdateDonorCommand{Email: &badEmail}); !errors.Is(err, domain.ErrInvalidDonor) {
		t.Fatalf("expected ErrInvalidDonor, got %v", err)
	}

	updated, err := f.uc.Update(context.Background(), manager, donor.ID.String(), cmd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != domain.DonorStatusInactive || updated.Name != "Green Grocers" || updated.PantryID != f.pantry.ID {
		t.Fatalf("unexpected donor %+v", updated)
	}

	if err := f.uc.Delete(context.Background(), otherManager, donor.ID.String()); !errors.Is(err, pantries.ErrNotPantryManager) {
		t.Fatalf("expected ErrNotPantryManager, got %v", err)
	}
	if err := f.uc.Delete(context.Background(), manager, donor.ID.String()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.uc.Delete(context.Background(), manager, donor.ID.String()); !errors.Is(err, domain.ErrDonorNotFound) {
		t.Fatalf("expected ErrDonorNotFound, got %v", err)
	}
	if _, err := f.uc.Update(context.Background(), admin, "not-a-uuid", cmd); !errors.Is(err, domain.ErrDonorNotFound) {
		t.Fatalf("expected ErrDonorNotFound for malformed id, got %v", err)
	}
}
