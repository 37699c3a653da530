package normalization

import "strings"

// entityAliases maps the entity names upstream producers use to the canonical realtime entity.
var entityAliases = map[string]string{
	"":        "",
	"-":       "",
	"default": "",

	// Pantries
	"pantry":        "pantry",
	"pantries":      "pantry",
	"food-pantry":   "pantry",
	"food-pantries": "pantry",

	// Inventory
	"inventory":       "inventory",
	"inventories":     "inventory",
	"inventory-item":  "inventory",
	"inventory-items": "inventory",
	"item":            "inventory",
	"items":           "inventory",
	"stock":           "inventory",

	// Hours
	"hours":         "hours",
	"schedule":      "hours",
	"schedules":     "hours",
	"opening-hours": "hours",

	// Announcements
	"announcement":  "announcement",
	"announcements": "announcement",
	"notice":        "announcement",
	"notices":       "announcement",
}

// NormalizeEntity converts producer entity names to their canonical form. It handles
// singular/plural forms and "_" or "-" separators.
//
// Example:
//
//	NormalizeEntity("Inventory_Items") => "inventory"
//	NormalizeEntity("food-pantries") => "pantry"
func NormalizeEntity(raw string) string {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(raw)), "_", "-")
	if canonical, found := entityAliases[normalized]; found {
		return canonical
	}
	return normalized
}

// IsKnownEntity reports whether raw names one of the realtime entities.
func IsKnownEntity(raw string) bool {
	normalized := NormalizeEntity(raw)
	if normalized == "" {
		return false
	}
	_, found := entityAliases[normalized]
	return found
}
