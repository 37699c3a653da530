package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// CreateDonorCommand represents the payload staff submit to add a donor to a pantry.
type CreateDonorCommand struct {
	PantryID            string   `json:"pantryId" validate:"required,uuid"`
	Name                string   `json:"name" validate:"required,max=200"`
	Email               string   `json:"email" validate:"required,email"`
	Phone               string   `json:"phone" validate:"omitempty,max=32"`
	Organization        string   `json:"organization" validate:"omitempty,max=200"`
	PreferredCategories []string `json:"preferredCategories" validate:"omitempty,dive,required,max=100"`
	Status              string   `json:"status" validate:"omitempty,oneof=active inactive"`
}

// NewDonor builds the donor record described by the command. pantryID is the parsed PantryID.
func (c CreateDonorCommand) NewDonor(id, pantryID uuid.UUID, now time.Time) Donor {
	status := NormalizeDonorStatus(c.Status)
	if status == DonorStatusUnknown {
		status = DonorStatusActive
	}
	return Donor{
		ID:                  id,
		PantryID:            pantryID,
		Name:                strings.TrimSpace(c.Name),
		Email:               strings.TrimSpace(c.Email),
		Phone:               strings.TrimSpace(c.Phone),
		Organization:        strings.TrimSpace(c.Organization),
		PreferredCategories: trimAll(c.PreferredCategories),
		Status:              status,
		CreatedAt:           now,
	}
}

// UpdateDonorCommand carries a partial update; nil fields are left untouched. A donor cannot move
// to another pantry.
type UpdateDonorCommand struct {
	Name                *string  `json:"name" validate:"omitnil,min=1,max=200"`
	Email               *string  `json:"email" validate:"omitnil,email"`
	Phone               *string  `json:"phone" validate:"omitnil,max=32"`
	Organization        *string  `json:"organization" validate:"omitnil,max=200"`
	PreferredCategories []string `json:"preferredCategories" validate:"omitempty,dive,required,max=100"`
	Status              *string  `json:"status" validate:"omitnil,oneof=active inactive"`
}

// Apply copies the provided fields onto d.
func (c UpdateDonorCommand) Apply(d *Donor) {
	setTrimmed(&d.Name, c.Name)
	setTrimmed(&d.Email, c.Email)
	setTrimmed(&d.Phone, c.Phone)
	setTrimmed(&d.Organization, c.Organization)
	if c.PreferredCategories != nil {
		d.PreferredCategories = trimAll(c.PreferredCategories)
	}
	if c.Status != nil {
		d.Status = NormalizeDonorStatus(*c.Status)
	}
}

func setTrimmed(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

func trimAll(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, strings.TrimSpace(v))
	}
	return out
}
