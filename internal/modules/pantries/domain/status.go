package domain

import "strings"

// PantryStatus captures whether a pantry is listed to the public.
type PantryStatus string

const (
	PantryStatusUnknown  PantryStatus = ""
	PantryStatusActive   PantryStatus = "active"
	PantryStatusInactive PantryStatus = "inactive"
)

var allowedPantryStatuses = map[string]PantryStatus{
	string(PantryStatusActive):   PantryStatusActive,
	string(PantryStatusInactive): PantryStatusInactive,
}

// NormalizePantryStatus converts arbitrary inputs into a canonical pantry status while
// preserving unexpected custom values written by staff tooling.
func NormalizePantryStatus(value any) PantryStatus {
	s, ok := value.(string)
	if !ok {
		return PantryStatusUnknown
	}
	trimmed := strings.ToLower(strings.TrimSpace(s))
	if trimmed == "" {
		return PantryStatusUnknown
	}
	if status, ok := allowedPantryStatuses[trimmed]; ok {
		return status
	}
	return PantryStatus(trimmed)
}

// ItemStatus represents the lifecycle of an inventory item.
type ItemStatus string

const (
	ItemStatusUnknown   ItemStatus = ""
	ItemStatusAvailable ItemStatus = "available"
	ItemStatusReserved  ItemStatus = "reserved"
	ItemStatusClaimed   ItemStatus = "claimed"
)

var allowedItemStatuses = map[string]ItemStatus{
	string(ItemStatusAvailable): ItemStatusAvailable,
	string(ItemStatusReserved):  ItemStatusReserved,
	string(ItemStatusClaimed):   ItemStatusClaimed,
}

// NormalizeItemStatus returns the canonical ItemStatus for the given input.
// Unknown statuses are lowercased and returned as-is to avoid data loss.
func NormalizeItemStatus(value any) ItemStatus {
	s, ok := value.(string)
	if !ok {
		return ItemStatusUnknown
	}
	trimmed := strings.ToLower(strings.TrimSpace(s))
	if trimmed == "" {
		return ItemStatusUnknown
	}
	if status, ok := allowedItemStatuses[trimmed]; ok {
		return status
	}
	return ItemStatus(trimmed)
}
