package handler

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"pantryHub/internal/modules/realtime/application/port"
	"pantryHub/internal/modules/realtime/application/usecase"
	"pantryHub/internal/modules/realtime/domain"
	"pantryHub/internal/shared/normalization"
)

// InventoryEventHandler forwards inventory events produced by other services (warehouse scanners,
// donation intake) from a kafka topic to the room of the affected pantry.
type InventoryEventHandler struct {
	kafkaTopic     string
	allowedActions map[string]struct{}
	broadcastUC    *usecase.BroadcastUseCase
}

func NewInventoryEventHandler(kafkaTopic string, allowedActions []string, broadcastUC *usecase.BroadcastUseCase) *InventoryEventHandler {
	if len(allowedActions) == 0 {
		allowedActions = domain.InventoryActions
	}
	actionSet := make(map[string]struct{}, len(allowedActions))
	for _, a := range allowedActions {
		if v := strings.TrimSpace(strings.ToLower(a)); v != "" {
			actionSet[v] = struct{}{}
		}
	}
	return &InventoryEventHandler{
		kafkaTopic:     strings.TrimSpace(kafkaTopic),
		allowedActions: actionSet,
		broadcastUC:    broadcastUC,
	}
}

func (h *InventoryEventHandler) Topic() string { return h.kafkaTopic }

func (h *InventoryEventHandler) Handle(ctx context.Context, msg *domain.Message) error {
	if msg == nil {
		return nil
	}
	action := strings.ToLower(strings.TrimSpace(msg.Action))
	if _, ok := h.allowedActions[action]; !ok {
		slog.Debug("inventory event ignored", slog.String("topic", h.kafkaTopic), slog.String("action", msg.Action))
		return nil
	}

	// unknown entity names pass; producers often leave it to the topic name
	if entity := normalization.NormalizeEntity(msg.Entity); normalization.IsKnownEntity(entity) && entity != domain.InventoryEntity {
		slog.Debug("inventory event ignored", slog.String("topic", h.kafkaTopic), slog.String("entity", msg.Entity))
		return nil
	}

	pantryID := pantryIDOf(msg)
	if pantryID == "" {
		return fmt.Errorf("inventory event %s/%s without pantry id", h.kafkaTopic, msg.ResourceID)
	}

	msg.Topic = domain.PantryTopic(pantryID)
	msg.Entity = domain.InventoryEntity
	msg.Action = action
	msg.SetMetadata(domain.MetadataPantryID, pantryID)
	// pantry rooms are public; producer identities must not narrow delivery
	delete(msg.Metadata, domain.MetadataUserID)
	delete(msg.Metadata, domain.MetadataSessionID)
	if isLowStock(msg) {
		msg.SetMetadata("lowStock", "true")
	}

	h.broadcastUC.Execute(ctx, msg)
	slog.Info("inventory event forwarded", slog.String("pantryId", pantryID), slog.String("action", action), slog.String("resourceId", msg.ResourceID))
	return nil
}

func pantryIDOf(msg *domain.Message) string {
	if id := strings.TrimSpace(msg.MetadataValue(domain.MetadataPantryID)); id != "" {
		return id
	}
	return normalization.FirstString(normalization.MapFromPayload(msg.Data), "pantryId", "pantry_id")
}

func isLowStock(msg *domain.Message) bool {
	if flagged, ok := normalization.AsBool(normalization.MapFromPayload(msg.Data)["lowStock"]); ok {
		return flagged
	}
	quantity, ok := quantityOf(msg)
	if !ok {
		return false
	}
	threshold, ok := thresholdOf(msg)
	return ok && quantity <= threshold
}

func quantityOf(msg *domain.Message) (int, bool) {
	return normalization.AsInt(normalization.MapFromPayload(msg.Data)["quantity"])
}

func thresholdOf(msg *domain.Message) (int, bool) {
	payload := normalization.MapFromPayload(msg.Data)
	if threshold, ok := normalization.AsInt(payload["lowStockThreshold"]); ok {
		return threshold, true
	}
	return normalization.AsInt(payload["low_stock_threshold"])
}

var _ port.TopicHandler = (*InventoryEventHandler)(nil)
