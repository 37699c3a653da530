package domain

import "strings"

const (
	SystemEntity       = "system"
	PantryEntity       = "pantry"
	InventoryEntity    = "inventory"
	HoursEntity        = "hours"
	AnnouncementEntity = "announcement"

	TopicSystemConnected = SystemEntity + ".connected"
	TopicSystemPong      = SystemEntity + ".pong"
	TopicSystemError     = SystemEntity + ".error"

	ActionConnected = "connected"
	ActionPong      = "pong"
	ActionError     = "error"
	ActionSnapshot  = "snapshot"
	ActionStatus    = "status"
	ActionCreated   = "created"
	ActionUpdated   = "updated"
	ActionDeleted   = "deleted"
	ActionPosted    = "posted"

	MetadataPantryID  = "pantryId"
	MetadataUserID    = "userId"
	MetadataSessionID = "sessionId"
)

// InventoryActions are the inventory event actions forwarded to pantry watchers.
var InventoryActions = []string{ActionCreated, ActionUpdated, ActionDeleted}

// PantryTopic returns the room every watcher of a pantry is attached to.
func PantryTopic(pantryID string) string {
	return buildEntityTopic(PantryEntity, pantryID)
}

// PantryIDFromTopic extracts the pantry identifier from a PantryTopic.
func PantryIDFromTopic(topic string) (string, bool) {
	id, ok := strings.CutPrefix(strings.TrimSpace(topic), PantryEntity+".")
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// ErrorTopic returns the canonical error topic for the given entity.
func ErrorTopic(entity string) string {
	return buildEntityTopic(entity, ActionError)
}

func buildEntityTopic(entity, action string) string {
	cleanEntity := strings.TrimSpace(entity)
	cleanAction := strings.TrimSpace(action)
	if cleanEntity == "" || cleanAction == "" {
		return ""
	}
	return cleanEntity + "." + cleanAction
}
