package domain

import (
	"strings"
	"time"

	hours "pantryHub/internal/modules/hours/domain"
	pantries "pantryHub/internal/modules/pantries/domain"
)

// HoursPayload is the data of a pantry status message.
type HoursPayload struct {
	Status  hours.Status `json:"status"`
	Display string       `json:"display"`
}

// Announcement is a short notice staff push to everyone watching a pantry.
type Announcement struct {
	Title    string    `json:"title"`
	Body     string    `json:"body"`
	Author   string    `json:"author,omitempty"`
	PostedAt time.Time `json:"postedAt"`
}

// BuildSnapshotMessage wraps the full pantry view sent when a watcher connects or asks for it.
func BuildSnapshotMessage(view *pantries.PantryView, at time.Time) *Message {
	if view == nil {
		return nil
	}
	id := view.ID.String()
	return &Message{
		Topic:      PantryTopic(id),
		Entity:     PantryEntity,
		Action:     ActionSnapshot,
		ResourceID: id,
		Metadata:   map[string]string{MetadataPantryID: id},
		Data:       view,
		Timestamp:  at.UTC(),
	}
}

// BuildStatusMessage carries the live hours badge of a pantry.
func BuildStatusMessage(view *pantries.PantryView, at time.Time) *Message {
	if view == nil {
		return nil
	}
	id := view.ID.String()
	return &Message{
		Topic:      PantryTopic(id),
		Entity:     HoursEntity,
		Action:     ActionStatus,
		ResourceID: id,
		Metadata:   map[string]string{MetadataPantryID: id},
		Data:       HoursPayload{Status: view.HoursStatus, Display: view.HoursDisplay},
		Timestamp:  at.UTC(),
	}
}

// BuildInventoryMessage announces a created, updated or deleted inventory item to the pantry room.
func BuildInventoryMessage(action string, item pantries.InventoryItem, at time.Time) *Message {
	pantryID := item.PantryID.String()
	metadata := map[string]string{MetadataPantryID: pantryID}
	if item.IsLowStock() {
		metadata["lowStock"] = "true"
	}
	return &Message{
		Topic:      PantryTopic(pantryID),
		Entity:     InventoryEntity,
		Action:     strings.ToLower(strings.TrimSpace(action)),
		ResourceID: item.ID.String(),
		Metadata:   metadata,
		Data:       item,
		Timestamp:  at.UTC(),
	}
}

// BuildAnnouncementMessage publishes an announcement in the pantry room.
func BuildAnnouncementMessage(pantryID string, announcement Announcement) *Message {
	pantryID = strings.TrimSpace(pantryID)
	return &Message{
		Topic:      PantryTopic(pantryID),
		Entity:     AnnouncementEntity,
		Action:     ActionPosted,
		ResourceID: pantryID,
		Metadata:   map[string]string{MetadataPantryID: pantryID},
		Data:       announcement,
		Timestamp:  announcement.PostedAt.UTC(),
	}
}

// BuildErrorMessage reports a failed client command back to the sender only.
func BuildErrorMessage(entity, sessionID, action, reason string, at time.Time) *Message {
	entity = strings.TrimSpace(entity)
	if entity == "" {
		entity = SystemEntity
	}
	metadata := map[string]string{"action": action}
	if sessionID != "" {
		metadata[MetadataSessionID] = sessionID
	}
	return &Message{
		Topic:     ErrorTopic(entity),
		Entity:    entity,
		Action:    ActionError,
		Metadata:  metadata,
		Data:      map[string]string{"error": reason},
		Timestamp: at.UTC(),
	}
}
