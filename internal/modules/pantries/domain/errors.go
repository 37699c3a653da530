package domain

import "errors"

var (
	ErrPantryNotFound        = errors.New("pantry not found")
	ErrInventoryItemNotFound = errors.New("inventory item not found")
	ErrInvalidPantry         = errors.New("invalid pantry")
	ErrInvalidInventoryItem  = errors.New("invalid inventory item")
)

// ErrNotPantryManager is returned when a pantry-admin touches a pantry they do not manage.
var ErrNotPantryManager = errors.New("not the manager of this pantry")
