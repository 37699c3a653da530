package infrastructure

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"pantryHub/internal/modules/realtime/domain"
)

func receive(t *testing.T, c *Client) domain.Message {
	t.Helper()
	select {
	case data, ok := <-c.send:
		if !ok {
			t.Fatal("client channel closed")
		}
		var msg domain.Message
		if err := json.Unmarshal(data, &msg); err != nil {
			t.Fatalf("decode: %v", err)
		}
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
	}
	return domain.Message{}
}

func assertEmpty(t *testing.T, c *Client) {
	t.Helper()
	select {
	case data := <-c.send:
		t.Fatalf("unexpected message %s", data)
	default:
	}
}

func TestHubBroadcastsToPantryWatchers(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	topic := domain.PantryTopic("p1")
	watcher := NewClient(hub, nil, "", "anon-1", "p1", 4, nil)
	other := NewClient(hub, nil, "", "anon-2", "p2", 4, nil)
	admin := NewClient(hub, nil, "admin-1", "notif-1", "", 4, nil)
	hub.AttachClient(watcher, []string{topic})
	hub.AttachClient(other, []string{domain.PantryTopic("p2")})
	hub.AttachClientToAll(admin)

	hub.Broadcast(context.Background(), &domain.Message{Topic: topic, Entity: domain.InventoryEntity, Action: domain.ActionUpdated})

	if got := receive(t, watcher); got.Topic != topic || got.Action != domain.ActionUpdated {
		t.Fatalf("unexpected message %+v", got)
	}
	if got := receive(t, admin); got.Topic != topic {
		t.Fatalf("expected global client to receive %s, got %+v", topic, got)
	}
	assertEmpty(t, other)

	if hub.Watchers(topic) != 1 || hub.ClientCount() != 3 {
		t.Fatalf("unexpected hub counts watchers=%d clients=%d", hub.Watchers(topic), hub.ClientCount())
	}
}

func TestHubHonoursSessionTargeting(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	topic := domain.PantryTopic("p1")
	first := NewClient(hub, nil, "", "anon-1", "p1", 4, nil)
	second := NewClient(hub, nil, "", "anon-2", "p1", 4, nil)
	hub.AttachClient(first, []string{topic})
	hub.AttachClient(second, []string{topic})

	msg := &domain.Message{Topic: topic, Entity: domain.HoursEntity, Action: domain.ActionStatus}
	msg.SetMetadata(domain.MetadataSessionID, "anon-2")
	hub.Broadcast(context.Background(), msg)

	assertEmpty(t, first)
	if got := receive(t, second); got.Action != domain.ActionStatus {
		t.Fatalf("unexpected message %+v", got)
	}
}

func TestHubDropsSlowClients(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	topic := domain.PantryTopic("p1")
	slow := NewClient(hub, nil, "", "anon-1", "p1", 1, nil)
	closed := make(chan struct{})
	slow.AddCloseHook(func(*Client) { close(closed) })
	hub.AttachClient(slow, []string{topic})

	msg := &domain.Message{Topic: topic, Entity: domain.InventoryEntity, Action: domain.ActionCreated}
	hub.Broadcast(context.Background(), msg)
	hub.Broadcast(context.Background(), msg)

	select {
	case <-closed:
	case <-time.After(time.Second):
		t.Fatal("expected slow client to be detached")
	}
	if hub.Watchers(topic) != 0 || hub.ClientCount() != 0 {
		t.Fatal("expected slow client to be removed from the hub")
	}
	// broadcasting after the detach must not panic
	hub.Broadcast(context.Background(), msg)
}

func TestHubReplacesDuplicateSession(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	topic := domain.PantryTopic("p1")
	stale := NewClient(hub, nil, "user-1", "sess-1", "p1", 4, nil)
	fresh := NewClient(hub, nil, "user-1", "sess-1", "p1", 4, nil)
	hub.AttachClient(stale, []string{topic})
	hub.AttachClient(fresh, []string{topic})

	if _, ok := <-stale.send; ok {
		t.Fatal("expected the stale client to be closed")
	}
	if hub.Watchers(topic) != 1 || hub.ClientCount() != 1 {
		t.Fatalf("unexpected hub state watchers=%d clients=%d", hub.Watchers(topic), hub.ClientCount())
	}
}

func TestCommandProcessor(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	fallback := make(chan Command, 1)
	client := NewClient(hub, nil, "", "anon-1", "p1", 4, func(_ context.Context, _ *Client, cmd Command) {
		fallback <- cmd
	})
	hub.AttachClient(client, []string{domain.PantryTopic("p1")})

	client.processCommand(Command{Action: " PING "})
	if got := receive(t, client); got.Topic != domain.TopicSystemPong {
		t.Fatalf("expected pong, got %+v", got)
	}

	client.processCommand(Command{Action: "subscribe", Topic: "pantry.p2"})
	if hub.Watchers("pantry.p2") != 1 {
		t.Fatal("expected subscription to pantry.p2")
	}
	client.processCommand(Command{Action: "subscribe", Topic: "admin.secrets"})
	if got := receive(t, client); got.Topic != domain.TopicSystemError {
		t.Fatalf("expected subscribe rejection, got %+v", got)
	}
	client.processCommand(Command{Action: "unsubscribe", Topic: "pantry.p2"})
	if hub.Watchers("pantry.p2") != 0 {
		t.Fatal("expected unsubscribe to remove the watcher")
	}

	client.processCommand(Command{Action: "status"})
	select {
	case cmd := <-fallback:
		if cmd.Action != "status" {
			t.Fatalf("unexpected fallback command %+v", cmd)
		}
	case <-time.After(time.Second):
		t.Fatal("expected fallback to run")
	}
}

func TestSubscribeAuthorizer(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	denied := errors.New("hidden pantry")
	client := NewClient(hub, nil, "", "anon-2", "p1", 4, nil, WithTopicAuthorizer(func(ctx context.Context, _ *Client, pantryID string) error {
		if _, ok := ctx.Deadline(); !ok {
			t.Error("expected authorizer context to carry a deadline")
		}
		if pantryID == "hidden" {
			return denied
		}
		return nil
	}))
	hub.AttachClient(client, []string{domain.PantryTopic("p1")})

	client.processCommand(Command{Action: "subscribe", Topic: "pantry.hidden"})
	got := receive(t, client)
	if got.Topic != domain.TopicSystemError || got.MetadataValue("topic") != "pantry.hidden" {
		t.Fatalf("expected subscribe rejection, got %+v", got)
	}
	if hub.Watchers("pantry.hidden") != 0 {
		t.Fatal("rejected subscription must not join the room")
	}

	client.processCommand(Command{Action: "subscribe", Topic: "pantry.open"})
	if hub.Watchers("pantry.open") != 1 {
		t.Fatal("expected subscription to pantry.open")
	}
}
