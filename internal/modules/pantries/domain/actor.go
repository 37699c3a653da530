package domain

import "github.com/google/uuid"

// Actor is the caller of an operation. The zero Actor is an anonymous visitor.
type Actor struct {
	UserID string
	Admin  bool
}

// CanManage reports whether the actor may change the pantry.
func (a Actor) CanManage(p Pantry) bool {
	if a.Admin {
		return true
	}
	return a.UserID != "" && a.UserID == p.ManagerID
}

// CanView reports whether the actor may see the pantry. Inactive pantries are visible to the
// people who manage them only.
func (a Actor) CanView(p Pantry) bool {
	return p.IsActive() || a.CanManage(p)
}

// ParseID reads a pantry, item or donor identifier. Malformed ids are reported as notFound, the
// same answer as a well-formed id that does not exist.
func ParseID(raw string, notFound error) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, notFound
	}
	return id, nil
}
