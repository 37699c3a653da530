package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	hours "pantryHub/internal/modules/hours/domain"
	"pantryHub/internal/modules/pantries/domain"
)

func validCreatePantry() domain.CreatePantryCommand {
	return domain.CreatePantryCommand{
		Name:   " Northside Pantry ",
		Street: "1 Main St",
		City:   "Springfield",
		State:  "IL",
		Zip:    "62701",
		Lat:    39.78,
		Lon:    -89.65,
		Hours:  hours.ScheduleFromPairs("Mon-Fri", "9:00 AM - 5:00 PM", "Saturday", "10-2"),
	}
}

func TestManagePantryCreate(t *testing.T) {
	t.Parallel()

	f := newFixture()
	fixedID := uuid.MustParse("6f1c1d7e-3c1a-4a53-9f0a-1f6c8f3b2a10")
	uc := NewManagePantryUseCase(f.repo, fixedClock(monday10))
	uc.NewID = func() uuid.UUID { return fixedID }

	result, err := uc.Create(context.Background(), domain.Actor{UserID: "staff-1"}, validCreatePantry())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Pantry.ID != fixedID || result.Pantry.Name != "Northside Pantry" {
		t.Fatalf("unexpected pantry %+v", result.Pantry)
	}
	if result.Pantry.ManagerID != "staff-1" || result.Pantry.Status != domain.PantryStatusActive {
		t.Fatalf("expected pantry-admin to manage the new active pantry, got %+v", result.Pantry)
	}
	if len(result.Warnings) != 2 {
		t.Fatalf("expected warnings for Mon-Fri and 10-2, got %+v", result.Warnings)
	}
	if result.Warnings[0].Kind != hours.IssueUnknownDays || !strings.Contains(result.Warnings[0].Hint, "Monday-Friday") {
		t.Fatalf("unexpected day warning %+v", result.Warnings[0])
	}

	stored, err := f.repo.Get(context.Background(), fixedID)
	if err != nil {
		t.Fatalf("expected pantry to be stored: %v", err)
	}
	if v, _ := stored.Hours.Lookup("Mon-Fri"); v != "9:00 AM - 5:00 PM" {
		t.Fatal("expected hours to be stored verbatim")
	}
}

func TestManagePantryCreateValidation(t *testing.T) {
	t.Parallel()

	uc := NewManagePantryUseCase(newFixture().repo, fixedClock(monday10))
	cmd := validCreatePantry()
	cmd.Name = ""
	cmd.Timezone = "Mars/Olympus"

	_, err := uc.Create(context.Background(), domain.Actor{Admin: true}, cmd)
	if !errors.Is(err, domain.ErrInvalidPantry) {
		t.Fatalf("expected ErrInvalidPantry, got %v", err)
	}
	if !strings.Contains(err.Error(), "name is required") || !strings.Contains(err.Error(), "timezone must be an IANA timezone") {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestManagePantryUpdate(t *testing.T) {
	t.Parallel()

	f := newFixture()
	p := f.addPantry(t, "Northside Pantry", "Springfield", "staff-1", nil)
	uc := NewManagePantryUseCase(f.repo, fixedClock(monday10))

	schedule := hours.ScheduleFromPairs("Monday-Friday", "9:00 AM - 5:00 PM")
	other := "staff-2"
	name := "Northside Community Pantry"
	cmd := domain.UpdatePantryCommand{Name: &name, Hours: &schedule, ManagerID: &other}

	t.Run("owner updates but cannot reassign", func(t *testing.T) {
		result, err := uc.Update(context.Background(), domain.Actor{UserID: "staff-1"}, p.ID.String(), cmd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Pantry.Name != name || result.Pantry.ManagerID != "staff-1" || len(result.Pantry.Hours) != 1 {
			t.Fatalf("unexpected pantry %+v", result.Pantry)
		}
		if len(result.Warnings) != 0 {
			t.Fatalf("expected no warnings, got %+v", result.Warnings)
		}
	})

	t.Run("other pantry admin is refused", func(t *testing.T) {
		_, err := uc.Update(context.Background(), domain.Actor{UserID: "staff-9"}, p.ID.String(), cmd)
		if !errors.Is(err, domain.ErrNotPantryManager) {
			t.Fatalf("expected ErrNotPantryManager, got %v", err)
		}
	})

	t.Run("admin reassigns", func(t *testing.T) {
		result, err := uc.Update(context.Background(), domain.Actor{UserID: "root", Admin: true}, p.ID.String(), cmd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Pantry.ManagerID != "staff-2" {
			t.Fatalf("expected reassignment, got %q", result.Pantry.ManagerID)
		}
	})

	t.Run("empty name rejected", func(t *testing.T) {
		empty := ""
		_, err := uc.Update(context.Background(), domain.Actor{Admin: true}, p.ID.String(), domain.UpdatePantryCommand{Name: &empty})
		if !errors.Is(err, domain.ErrInvalidPantry) {
			t.Fatalf("expected ErrInvalidPantry, got %v", err)
		}
	})

	t.Run("unknown pantry", func(t *testing.T) {
		_, err := uc.Update(context.Background(), domain.Actor{Admin: true}, uuid.NewString(), cmd)
		if !errors.Is(err, domain.ErrPantryNotFound) {
			t.Fatalf("expected ErrPantryNotFound, got %v", err)
		}
	})
}
