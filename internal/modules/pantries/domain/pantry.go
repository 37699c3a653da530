package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"

	hours "pantryHub/internal/modules/hours/domain"
)

// DefaultLowStockThreshold applies when an item is created without an explicit threshold.
const DefaultLowStockThreshold = 10

// Pantry is a food pantry listing. Hours are kept exactly as staff typed them.
type Pantry struct {
	ID           uuid.UUID            `json:"id"`
	Name         string               `json:"name"`
	Street       string               `json:"street"`
	City         string               `json:"city"`
	State        string               `json:"state"`
	Zip          string               `json:"zip"`
	Lat          float64              `json:"lat"`
	Lon          float64              `json:"lon"`
	Hours        hours.WeeklySchedule `json:"hours"`
	Timezone     string               `json:"timezone,omitempty"`
	ContactEmail string               `json:"contactEmail,omitempty"`
	ContactPhone string               `json:"contactPhone,omitempty"`
	ServiceArea  []string             `json:"serviceArea,omitempty"`
	Status       PantryStatus         `json:"status"`
	ManagerID    string               `json:"managerId,omitempty"`
	CreatedAt    time.Time            `json:"createdAt"`
}

// IsActive reports whether the pantry is publicly listed.
func (p Pantry) IsActive() bool {
	return p.Status == PantryStatusActive
}

// Location resolves the pantry's IANA timezone, falling back when unset or unknown.
func (p Pantry) Location(fallback *time.Location) *time.Location {
	if fallback == nil {
		fallback = time.UTC
	}
	name := strings.TrimSpace(p.Timezone)
	if name == "" {
		return fallback
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return fallback
	}
	return loc
}

// HoursStatus evaluates the pantry's schedule at now, read in the pantry's own timezone.
func (p Pantry) HoursStatus(now time.Time, fallback *time.Location) hours.Status {
	return hours.StatusAt(p.Hours, now.In(p.Location(fallback)))
}

// MatchesSearch reports whether term appears in the pantry's name or city, ignoring case.
func (p Pantry) MatchesSearch(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.City), term)
}

// InventoryItem is one stocked line at a pantry.
type InventoryItem struct {
	ID                uuid.UUID  `json:"id"`
	PantryID          uuid.UUID  `json:"pantryId"`
	Category          string     `json:"category"`
	Name              string     `json:"name"`
	Quantity          int        `json:"quantity"`
	Unit              string     `json:"unit"`
	ExpirationDate    *time.Time `json:"expirationDate,omitempty"`
	Status            ItemStatus `json:"status"`
	IsSurplus         bool       `json:"isSurplus"`
	LowStockThreshold int        `json:"lowStockThreshold"`
	Notes             string     `json:"notes,omitempty"`
	LastUpdated       time.Time  `json:"lastUpdated"`
}

// IsLowStock reports whether the quantity has fallen to the item's threshold.
func (i InventoryItem) IsLowStock() bool {
	return i.Quantity <= i.LowStockThreshold
}

// IsAvailable reports whether the item can currently be handed out.
func (i InventoryItem) IsAvailable() bool {
	return i.Status == ItemStatusAvailable
}

// MatchesCategory compares categories case-insensitively. An empty category matches everything.
func (i InventoryItem) MatchesCategory(category string) bool {
	category = strings.TrimSpace(category)
	if category == "" {
		return true
	}
	return strings.EqualFold(strings.TrimSpace(i.Category), category)
}

// PantryView is a pantry with its inventory and hours evaluated for the requested instant.
type PantryView struct {
	Pantry
	Inventory    []InventoryItem `json:"inventory"`
	HoursStatus  hours.Status    `json:"hoursStatus"`
	HoursDisplay string          `json:"hoursDisplay"`
}

// NewPantryView builds the read model for a pantry at now.
func NewPantryView(p Pantry, inventory []InventoryItem, now time.Time, fallback *time.Location) PantryView {
	if inventory == nil {
		inventory = []InventoryItem{}
	}
	return PantryView{
		Pantry:       p,
		Inventory:    inventory,
		HoursStatus:  p.HoursStatus(now, fallback),
		HoursDisplay: hours.Describe(p.Hours),
	}
}

// HasSurplus reports whether any listed item is flagged as surplus.
func (v PantryView) HasSurplus() bool {
	for _, item := range v.Inventory {
		if item.IsSurplus {
			return true
		}
	}
	return false
}

// StocksCategory reports whether an available item of category is on hand.
func (v PantryView) StocksCategory(category string) bool {
	for _, item := range v.Inventory {
		if item.IsAvailable() && item.MatchesCategory(category) {
			return true
		}
	}
	return false
}

// Stats are the admin dashboard aggregates.
type Stats struct {
	ActivePantries int `json:"activePantries"`
	OpenNow        int `json:"openNow"`
	TotalItems     int `json:"totalItems"`
	SurplusItems   int `json:"surplusItems"`
	LowStockItems  int `json:"lowStockItems"`
}
