package domain

import (
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/google/uuid"

	hours "pantryHub/internal/modules/hours/domain"
)

func TestNormalizePantryStatus(t *testing.T) {
	cases := []struct {
		name     string
		input    any
		expected PantryStatus
	}{
		{name: "active", input: "active", expected: PantryStatusActive},
		{name: "inactive upper", input: " INACTIVE ", expected: PantryStatusInactive},
		{name: "unknown passthrough", input: "Seasonal", expected: PantryStatus("seasonal")},
		{name: "non string", input: 1, expected: PantryStatusUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizePantryStatus(tc.input); got != tc.expected {
				t.Fatalf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestNormalizeItemStatus(t *testing.T) {
	if got := NormalizeItemStatus("Reserved"); got != ItemStatusReserved {
		t.Fatalf("expected reserved, got %q", got)
	}
	if got := NormalizeItemStatus(nil); got != ItemStatusUnknown {
		t.Fatalf("expected unknown, got %q", got)
	}
}

func TestPantryHoursStatusUsesPantryTimezone(t *testing.T) {
	pantry := Pantry{
		Hours:    hours.ScheduleFromPairs("Monday", "9:00 AM - 5:00 PM"),
		Timezone: "America/Chicago",
	}
	// Monday 15:30 UTC is 09:30 in Chicago (CST, UTC-6).
	now := time.Date(2024, time.January, 8, 15, 30, 0, 0, time.UTC)
	if !pantry.HoursStatus(now, time.UTC).Open {
		t.Fatal("expected pantry to be open in its own timezone")
	}

	pantry.Timezone = ""
	// Monday 08:30 UTC is before opening when falling back to UTC.
	early := time.Date(2024, time.January, 8, 8, 30, 0, 0, time.UTC)
	if pantry.HoursStatus(early, time.UTC).Open {
		t.Fatal("expected pantry to be closed in fallback zone")
	}
}

func TestPantryLocationFallsBackOnUnknownZone(t *testing.T) {
	fallback := time.FixedZone("X", 3600)
	if got := (Pantry{Timezone: "Mars/Olympus"}).Location(fallback); got != fallback {
		t.Fatalf("expected fallback location, got %v", got)
	}
	if got := (Pantry{}).Location(nil); got != time.UTC {
		t.Fatalf("expected UTC, got %v", got)
	}
}

func TestPantryMatchesSearch(t *testing.T) {
	pantry := Pantry{Name: "Eastside Community Pantry", City: "Springfield"}
	for _, term := range []string{"", "eastside", "SPRING", " pantry "} {
		if !pantry.MatchesSearch(term) {
			t.Fatalf("expected %q to match", term)
		}
	}
	if pantry.MatchesSearch("shelbyville") {
		t.Fatal("expected no match")
	}
}

func TestInventoryItemLowStock(t *testing.T) {
	item := InventoryItem{Quantity: 10, LowStockThreshold: 10}
	if !item.IsLowStock() {
		t.Fatal("expected quantity equal to threshold to be low stock")
	}
	item.Quantity = 11
	if item.IsLowStock() {
		t.Fatal("expected quantity above threshold to be stocked")
	}
}

func TestPantryViewFilters(t *testing.T) {
	view := NewPantryView(Pantry{}, []InventoryItem{
		{Category: "Produce", Status: ItemStatusClaimed, IsSurplus: true},
		{Category: "Canned Goods", Status: ItemStatusAvailable},
	}, time.Now(), time.UTC)

	if !view.HasSurplus() {
		t.Fatal("expected surplus")
	}
	if !view.StocksCategory("canned goods") {
		t.Fatal("expected available canned goods")
	}
	if view.StocksCategory("produce") {
		t.Fatal("claimed produce must not count as stocked")
	}
	if view.HoursDisplay != hours.HoursNotAvailable {
		t.Fatalf("unexpected hours display %q", view.HoursDisplay)
	}
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	page := Paginate(items, PageQuery{Page: 2, Limit: 2})
	if page.Total != 5 || len(page.Items) != 2 || page.Items[0] != 3 {
		t.Fatalf("unexpected page %+v", page)
	}

	last := Paginate(items, PageQuery{Page: 3, Limit: 2})
	if len(last.Items) != 1 || last.Items[0] != 5 {
		t.Fatalf("unexpected last page %+v", last)
	}

	beyond := Paginate(items, PageQuery{Page: 9, Limit: 2})
	if beyond.Items == nil || len(beyond.Items) != 0 {
		t.Fatalf("expected empty non-nil items, got %+v", beyond)
	}

	defaults := PageQuery{Limit: 500}.Normalize()
	if defaults.Page != 1 || defaults.Limit != maxPageLimit {
		t.Fatalf("unexpected defaults %+v", defaults)
	}
}

func TestCreateInventoryItemCommandDefaults(t *testing.T) {
	now := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	item, err := CreateInventoryItemCommand{Category: " Dairy ", Name: "Milk", Quantity: 4, Unit: "gallons"}.
		NewItem(uuid.New(), uuid.New(), now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.Status != ItemStatusAvailable || item.LowStockThreshold != DefaultLowStockThreshold {
		t.Fatalf("unexpected defaults %+v", item)
	}
	if item.Category != "Dairy" || !item.LastUpdated.Equal(now) {
		t.Fatalf("unexpected item %+v", item)
	}
}

func TestUpdateInventoryItemCommandApply(t *testing.T) {
	expiry := "2024-06-30"
	quantity := 0
	surplus := true
	item := InventoryItem{Quantity: 12, Name: "Rice"}
	err := UpdateInventoryItemCommand{ExpirationDate: &expiry, Quantity: &quantity, IsSurplus: &surplus}.
		Apply(&item, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.Quantity != 0 || !item.IsSurplus || item.Name != "Rice" {
		t.Fatalf("unexpected item %+v", item)
	}
	if item.ExpirationDate == nil || item.ExpirationDate.Month() != time.June {
		t.Fatalf("unexpected expiration %v", item.ExpirationDate)
	}

	blank := ""
	if err := (UpdateInventoryItemCommand{ExpirationDate: &blank}).Apply(&item, time.Now()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.ExpirationDate != nil {
		t.Fatal("expected blank date to clear expiration")
	}

	bad := "06/30/2024"
	err = UpdateInventoryItemCommand{ExpirationDate: &bad}.Apply(&item, time.Now())
	if !errors.Is(err, ErrInvalidInventoryItem) {
		t.Fatalf("expected ErrInvalidInventoryItem, got %v", err)
	}
}

func TestUpdatePantryCommandApply(t *testing.T) {
	name := "  New Name "
	status := "INACTIVE"
	schedule := hours.ScheduleFromPairs("Saturday", "10 AM - 1 PM")
	pantry := Pantry{Name: "Old", City: "Springfield", Status: PantryStatusActive}

	UpdatePantryCommand{Name: &name, Status: &status, Hours: &schedule}.Apply(&pantry)

	if pantry.Name != "New Name" || pantry.City != "Springfield" {
		t.Fatalf("unexpected pantry %+v", pantry)
	}
	if pantry.Status != PantryStatusInactive || pantry.IsActive() {
		t.Fatalf("unexpected status %q", pantry.Status)
	}
	if got, _ := pantry.Hours.Lookup("Saturday"); got != "10 AM - 1 PM" {
		t.Fatalf("unexpected hours %q", got)
	}
}
