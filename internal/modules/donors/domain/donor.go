package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Donor is a contact a pantry reaches out to when stock runs low.
type Donor struct {
	ID                  uuid.UUID   `json:"id"`
	PantryID            uuid.UUID   `json:"pantryId"`
	Name                string      `json:"name"`
	Email               string      `json:"email"`
	Phone               string      `json:"phone,omitempty"`
	Organization        string      `json:"organization,omitempty"`
	PreferredCategories []string    `json:"preferredCategories,omitempty"`
	Status              DonorStatus `json:"status"`
	CreatedAt           time.Time   `json:"createdAt"`
}

// Prefers reports whether the donor listed category among the ones they like to give. A donor with
// no preferences is treated as giving anything.
func (d Donor) Prefers(category string) bool {
	if len(d.PreferredCategories) == 0 {
		return true
	}
	for _, preferred := range d.PreferredCategories {
		if strings.EqualFold(strings.TrimSpace(preferred), strings.TrimSpace(category)) {
			return true
		}
	}
	return false
}

// DonorStatus marks whether a donor is still contacted.
type DonorStatus string

const (
	DonorStatusUnknown  DonorStatus = ""
	DonorStatusActive   DonorStatus = "active"
	DonorStatusInactive DonorStatus = "inactive"
)

// NormalizeDonorStatus lowercases and trims value. Anything other than active or inactive is unknown.
func NormalizeDonorStatus(value string) DonorStatus {
	switch status := DonorStatus(strings.ToLower(strings.TrimSpace(value))); status {
	case DonorStatusActive, DonorStatusInactive:
		return status
	default:
		return DonorStatusUnknown
	}
}
