package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	hours "pantryHub/internal/modules/hours/domain"
)

// DateLayout is the wire format of inventory expiration dates.
const DateLayout = "2006-01-02"

// SearchPantriesCommand represents the query string of the pantry listing.
type SearchPantriesCommand struct {
	Category   string `query:"category"`
	OpenNow    bool   `query:"openNow"`
	HasSurplus bool   `query:"hasSurplus"`
	Search     string `query:"q"`
	Page       int    `query:"page"`
	Limit      int    `query:"limit"`
}

// PageQuery returns the paging part of the command.
func (c SearchPantriesCommand) PageQuery() PageQuery {
	return PageQuery{Page: c.Page, Limit: c.Limit}
}

// CreatePantryCommand represents the payload staff submit to list a new pantry.
type CreatePantryCommand struct {
	Name         string               `json:"name" validate:"required,max=200"`
	Street       string               `json:"street" validate:"required,max=200"`
	City         string               `json:"city" validate:"required,max=100"`
	State        string               `json:"state" validate:"required,max=50"`
	Zip          string               `json:"zip" validate:"required,max=20"`
	Lat          float64              `json:"lat" validate:"latitude"`
	Lon          float64              `json:"lon" validate:"longitude"`
	Hours        hours.WeeklySchedule `json:"hours"`
	Timezone     string               `json:"timezone" validate:"omitempty,timezone"`
	ContactEmail string               `json:"contactEmail" validate:"omitempty,email"`
	ContactPhone string               `json:"contactPhone" validate:"omitempty,max=32"`
	ServiceArea  []string             `json:"serviceArea" validate:"omitempty,dive,required"`
	Status       string               `json:"status" validate:"omitempty,oneof=active inactive"`
	ManagerID    string               `json:"managerId" validate:"omitempty,max=100"`
}

// NewPantry builds the pantry record described by the command.
func (c CreatePantryCommand) NewPantry(id uuid.UUID, now time.Time) Pantry {
	status := NormalizePantryStatus(c.Status)
	if status == PantryStatusUnknown {
		status = PantryStatusActive
	}
	return Pantry{
		ID:           id,
		Name:         strings.TrimSpace(c.Name),
		Street:       strings.TrimSpace(c.Street),
		City:         strings.TrimSpace(c.City),
		State:        strings.TrimSpace(c.State),
		Zip:          strings.TrimSpace(c.Zip),
		Lat:          c.Lat,
		Lon:          c.Lon,
		Hours:        c.Hours,
		Timezone:     strings.TrimSpace(c.Timezone),
		ContactEmail: strings.TrimSpace(c.ContactEmail),
		ContactPhone: strings.TrimSpace(c.ContactPhone),
		ServiceArea:  c.ServiceArea,
		Status:       status,
		ManagerID:    strings.TrimSpace(c.ManagerID),
		CreatedAt:    now,
	}
}

// UpdatePantryCommand carries a partial update; nil fields are left untouched.
type UpdatePantryCommand struct {
	Name         *string               `json:"name" validate:"omitnil,min=1,max=200"`
	Street       *string               `json:"street" validate:"omitnil,min=1,max=200"`
	City         *string               `json:"city" validate:"omitnil,min=1,max=100"`
	State        *string               `json:"state" validate:"omitnil,min=1,max=50"`
	Zip          *string               `json:"zip" validate:"omitnil,min=1,max=20"`
	Lat          *float64              `json:"lat" validate:"omitempty,latitude"`
	Lon          *float64              `json:"lon" validate:"omitempty,longitude"`
	Hours        *hours.WeeklySchedule `json:"hours"`
	Timezone     *string               `json:"timezone" validate:"omitempty,timezone"`
	ContactEmail *string               `json:"contactEmail" validate:"omitempty,email"`
	ContactPhone *string               `json:"contactPhone" validate:"omitempty,max=32"`
	ServiceArea  []string              `json:"serviceArea" validate:"omitempty,dive,required"`
	Status       *string               `json:"status" validate:"omitempty,oneof=active inactive"`
	ManagerID    *string               `json:"managerId" validate:"omitempty,max=100"`
}

// Apply copies the provided fields onto p.
func (c UpdatePantryCommand) Apply(p *Pantry) {
	setTrimmed(&p.Name, c.Name)
	setTrimmed(&p.Street, c.Street)
	setTrimmed(&p.City, c.City)
	setTrimmed(&p.State, c.State)
	setTrimmed(&p.Zip, c.Zip)
	setTrimmed(&p.Timezone, c.Timezone)
	setTrimmed(&p.ContactEmail, c.ContactEmail)
	setTrimmed(&p.ContactPhone, c.ContactPhone)
	setTrimmed(&p.ManagerID, c.ManagerID)
	if c.Lat != nil {
		p.Lat = *c.Lat
	}
	if c.Lon != nil {
		p.Lon = *c.Lon
	}
	if c.Hours != nil {
		p.Hours = *c.Hours
	}
	if c.ServiceArea != nil {
		p.ServiceArea = c.ServiceArea
	}
	if c.Status != nil {
		p.Status = NormalizePantryStatus(*c.Status)
	}
}

// CreateInventoryItemCommand represents the payload for stocking a new item.
type CreateInventoryItemCommand struct {
	Category          string `json:"category" validate:"required,max=100"`
	Name              string `json:"name" validate:"required,max=200"`
	Quantity          int    `json:"quantity" validate:"gte=0"`
	Unit              string `json:"unit" validate:"required,max=50"`
	ExpirationDate    string `json:"expirationDate" validate:"omitempty,datetime=2006-01-02"`
	Status            string `json:"status" validate:"omitempty,oneof=available reserved claimed"`
	IsSurplus         bool   `json:"isSurplus"`
	LowStockThreshold *int   `json:"lowStockThreshold" validate:"omitempty,gte=0"`
	Notes             string `json:"notes" validate:"max=1000"`
}

// NewItem builds the inventory record described by the command.
func (c CreateInventoryItemCommand) NewItem(id, pantryID uuid.UUID, now time.Time) (InventoryItem, error) {
	expiration, err := ParseDate(c.ExpirationDate)
	if err != nil {
		return InventoryItem{}, err
	}
	status := NormalizeItemStatus(c.Status)
	if status == ItemStatusUnknown {
		status = ItemStatusAvailable
	}
	threshold := DefaultLowStockThreshold
	if c.LowStockThreshold != nil {
		threshold = *c.LowStockThreshold
	}
	return InventoryItem{
		ID:                id,
		PantryID:          pantryID,
		Category:          strings.TrimSpace(c.Category),
		Name:              strings.TrimSpace(c.Name),
		Quantity:          c.Quantity,
		Unit:              strings.TrimSpace(c.Unit),
		ExpirationDate:    expiration,
		Status:            status,
		IsSurplus:         c.IsSurplus,
		LowStockThreshold: threshold,
		Notes:             strings.TrimSpace(c.Notes),
		LastUpdated:       now,
	}, nil
}

// UpdateInventoryItemCommand carries a partial update. An empty expirationDate clears it.
type UpdateInventoryItemCommand struct {
	Category          *string `json:"category" validate:"omitnil,min=1,max=100"`
	Name              *string `json:"name" validate:"omitnil,min=1,max=200"`
	Quantity          *int    `json:"quantity" validate:"omitempty,gte=0"`
	Unit              *string `json:"unit" validate:"omitnil,min=1,max=50"`
	ExpirationDate    *string `json:"expirationDate"`
	Status            *string `json:"status" validate:"omitempty,oneof=available reserved claimed"`
	IsSurplus         *bool   `json:"isSurplus"`
	LowStockThreshold *int    `json:"lowStockThreshold" validate:"omitempty,gte=0"`
	Notes             *string `json:"notes" validate:"omitempty,max=1000"`
}

// Apply copies the provided fields onto item and stamps LastUpdated.
func (c UpdateInventoryItemCommand) Apply(item *InventoryItem, now time.Time) error {
	if c.ExpirationDate != nil {
		expiration, err := ParseDate(*c.ExpirationDate)
		if err != nil {
			return err
		}
		item.ExpirationDate = expiration
	}
	setTrimmed(&item.Category, c.Category)
	setTrimmed(&item.Name, c.Name)
	setTrimmed(&item.Unit, c.Unit)
	setTrimmed(&item.Notes, c.Notes)
	if c.Quantity != nil {
		item.Quantity = *c.Quantity
	}
	if c.Status != nil {
		item.Status = NormalizeItemStatus(*c.Status)
	}
	if c.IsSurplus != nil {
		item.IsSurplus = *c.IsSurplus
	}
	if c.LowStockThreshold != nil {
		item.LowStockThreshold = *c.LowStockThreshold
	}
	item.LastUpdated = now
	return nil
}

// ParseDate reads a YYYY-MM-DD date. Blank input yields nil.
func ParseDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(DateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("%w: expirationDate must be YYYY-MM-DD", ErrInvalidInventoryItem)
	}
	return &parsed, nil
}

func setTrimmed(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}
