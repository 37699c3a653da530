package handler

import (
	"context"
	"sync"
	"testing"

	"pantryHub/internal/modules/realtime/application/usecase"
	"pantryHub/internal/modules/realtime/domain"
)

type recordingBroadcaster struct {
	mu   sync.Mutex
	msgs []*domain.Message
}

func (r *recordingBroadcaster) Broadcast(_ context.Context, msg *domain.Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
}

func TestInventoryEventHandlerForwardsToPantryRoom(t *testing.T) {
	t.Parallel()

	rec := &recordingBroadcaster{}
	h := NewInventoryEventHandler("pantry-inventory", nil, usecase.NewBroadcastUseCase(rec))

	cases := []struct {
		name string
		msg  *domain.Message
	}{
		{
			name: "pantry id in metadata",
			msg: &domain.Message{
				Action:     "Updated",
				ResourceID: "item-1",
				Metadata:   map[string]string{"pantryId": "p1"},
				Data:       map[string]any{"quantity": float64(3), "lowStockThreshold": float64(5)},
			},
		},
		{
			name: "pantry id in data envelope",
			msg: &domain.Message{
				Action:     "created",
				ResourceID: "item-2",
				Data:       map[string]any{"data": map[string]any{"pantry_id": "p1", "quantity": "40"}},
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := h.Handle(context.Background(), tc.msg); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}

	if len(rec.msgs) != 2 {
		t.Fatalf("expected 2 broadcasts, got %d", len(rec.msgs))
	}
	for _, msg := range rec.msgs {
		if msg.Topic != "pantry.p1" || msg.Entity != domain.InventoryEntity {
			t.Fatalf("unexpected envelope %+v", msg)
		}
	}
	if rec.msgs[0].Action != domain.ActionUpdated || rec.msgs[0].MetadataValue("lowStock") != "true" {
		t.Fatalf("expected low stock update, got %+v", rec.msgs[0])
	}
	if rec.msgs[1].MetadataValue("lowStock") != "" {
		t.Fatalf("did not expect low stock flag, got %+v", rec.msgs[1].Metadata)
	}
}

func TestInventoryEventHandlerFilters(t *testing.T) {
	t.Parallel()

	rec := &recordingBroadcaster{}
	h := NewInventoryEventHandler("pantry-inventory", []string{"deleted"}, usecase.NewBroadcastUseCase(rec))

	if err := h.Handle(context.Background(), &domain.Message{Action: "updated", Metadata: map[string]string{"pantryId": "p1"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := h.Handle(context.Background(), &domain.Message{Action: "deleted"}); err == nil {
		t.Fatal("expected an error for events without pantry id")
	}
	if err := h.Handle(context.Background(), &domain.Message{Entity: "pantries", Action: "deleted", Metadata: map[string]string{"pantryId": "p1"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rec.msgs) != 0 {
		t.Fatalf("expected nothing forwarded, got %d", len(rec.msgs))
	}
	if h.Topic() != "pantry-inventory" {
		t.Fatalf("unexpected topic %q", h.Topic())
	}
}
