package infrastructure

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"pantryHub/internal/modules/realtime/domain"
)

type Command struct {
	Action  string          `json:"action"`
	Topic   string          `json:"topic,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func (c Command) actionKey() string {
	return normalizeAction(c.Action)
}

type CommandHandler func(ctx context.Context, client *Client, cmd Command)

// TopicAuthorizer decides whether client may join the room of pantryID. A non-nil error rejects
// the subscription.
type TopicAuthorizer func(ctx context.Context, client *Client, pantryID string) error

const authorizeTimeout = 5 * time.Second

// CommandProcessor routes client commands. subscribe, unsubscribe and ping are built in; anything
// else goes to the fallback on its own goroutine with a deadline.
type CommandProcessor struct {
	hub             *Hub
	handlers        map[string]CommandHandler
	fallback        CommandHandler
	fallbackTimeout time.Duration
	authorize       TopicAuthorizer
}

func NewCommandProcessor(hub *Hub, fallback CommandHandler) *CommandProcessor {
	processor := &CommandProcessor{
		hub:             hub,
		handlers:        make(map[string]CommandHandler),
		fallback:        fallback,
		fallbackTimeout: 10 * time.Second,
	}
	processor.Register("subscribe", processor.handleSubscribe)
	processor.Register("unsubscribe", processor.handleUnsubscribe)
	processor.Register("ping", processor.handlePing)
	return processor
}

func (p *CommandProcessor) Register(action string, handler CommandHandler) {
	if handler == nil {
		return
	}
	key := normalizeAction(action)
	if key == "" {
		return
	}
	p.handlers[key] = handler
}

func (p *CommandProcessor) Process(client *Client, cmd Command) {
	if client == nil {
		return
	}

	action := cmd.actionKey()
	if action == "" {
		return
	}

	if handler, ok := p.handlers[action]; ok {
		handler(context.Background(), client, cmd)
		return
	}

	if p.fallback == nil {
		slog.Debug("ws command ignored", slog.String("sessionId", client.sessionID), slog.String("pantryId", client.pantryID), slog.String("action", action))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.fallbackTimeout)
	go func() {
		defer cancel()
		p.fallback(ctx, client, cmd)
	}()
}

// handleSubscribe lets a watcher follow more pantries. Only pantry topics the authorizer accepts
// can be joined this way.
func (p *CommandProcessor) handleSubscribe(ctx context.Context, client *Client, cmd Command) {
	topic := strings.TrimSpace(cmd.Topic)
	pantryID, ok := domain.PantryIDFromTopic(topic)
	if !ok {
		rejectSubscribe(client, topic, "only pantry.<id> topics can be subscribed")
		return
	}
	if p.authorize != nil {
		authCtx, cancel := context.WithTimeout(ctx, authorizeTimeout)
		err := p.authorize(authCtx, client, pantryID)
		cancel()
		if err != nil {
			slog.Debug("ws subscribe denied", slog.String("sessionId", client.sessionID), slog.String("topic", topic), slog.Any("error", err))
			rejectSubscribe(client, topic, "pantry not found")
			return
		}
	}
	p.hub.subscribe(client, topic)
	slog.Debug("ws subscribe", slog.String("userId", client.userID), slog.String("sessionId", client.sessionID), slog.String("topic", topic))
}

func rejectSubscribe(client *Client, topic, reason string) {
	slog.Debug("ws subscribe rejected", slog.String("sessionId", client.sessionID), slog.String("topic", topic), slog.String("reason", reason))
	client.SendDomainMessage(&domain.Message{
		Topic:     domain.TopicSystemError,
		Entity:    domain.SystemEntity,
		Action:    domain.ActionError,
		Metadata:  map[string]string{"action": "subscribe", "topic": topic},
		Data:      map[string]string{"error": reason},
		Timestamp: time.Now().UTC(),
	})
}

func (p *CommandProcessor) handleUnsubscribe(_ context.Context, client *Client, cmd Command) {
	topic := strings.TrimSpace(cmd.Topic)
	if topic == "" {
		return
	}
	p.hub.unsubscribe(client, topic)
	slog.Debug("ws unsubscribe", slog.String("userId", client.userID), slog.String("sessionId", client.sessionID), slog.String("topic", topic))
}

func (p *CommandProcessor) handlePing(_ context.Context, client *Client, _ Command) {
	ack := domain.Message{
		Topic:     domain.TopicSystemPong,
		Entity:    domain.SystemEntity,
		Action:    domain.ActionPong,
		Timestamp: time.Now().UTC(),
	}
	client.SendDomainMessage(&ack)
}

func normalizeAction(action string) string {
	return strings.ToLower(strings.TrimSpace(action))
}
