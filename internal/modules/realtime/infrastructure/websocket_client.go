package infrastructure

import (
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"pantryHub/internal/modules/realtime/domain"
)

const (
	writeWait      = 5 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	maxMessageSize = 1 << 16
)

type Client struct {
	hub        *Hub
	conn       *websocket.Conn
	send       chan []byte
	userID     string
	sessionID  string
	pantryID   string
	commands   *CommandProcessor
	subscribed map[string]struct{}
	closeOnce  sync.Once
	receiveAll bool
	closeHooks []func(*Client)
	hookMu     sync.Mutex
}

// ClientOption customises a Client built by NewClient.
type ClientOption func(*Client)

// WithTopicAuthorizer checks every subscribe command before the client joins a pantry room.
func WithTopicAuthorizer(fn TopicAuthorizer) ClientOption {
	return func(c *Client) {
		c.commands.authorize = fn
	}
}

// NewClient builds a websocket client. userID is empty for anonymous pantry watchers, so sessionID
// must be unique per connection.
func NewClient(hub *Hub, conn *websocket.Conn, userID, sessionID, pantryID string, buf int, commandFn CommandHandler, opts ...ClientOption) *Client {
	if buf <= 0 {
		buf = 8
	}
	client := &Client{
		hub:        hub,
		conn:       conn,
		send:       make(chan []byte, buf),
		userID:     strings.TrimSpace(userID),
		sessionID:  strings.TrimSpace(sessionID),
		pantryID:   strings.TrimSpace(pantryID),
		subscribed: make(map[string]struct{}),
	}
	client.commands = NewCommandProcessor(hub, commandFn)
	for _, opt := range opts {
		opt(client)
	}
	return client
}

func (c *Client) UserID() string    { return c.userID }
func (c *Client) SessionID() string { return c.sessionID }
func (c *Client) PantryID() string  { return c.pantryID }

// EnableReceiveAll marks the client as a global subscriber that receives every broadcasted message
// regardless of topic-specific subscriptions.
func (c *Client) EnableReceiveAll() {
	c.receiveAll = true
}

func (c *Client) key() string {
	parts := []string{c.userID, c.sessionID}
	if c.pantryID != "" {
		parts = append(parts, c.pantryID)
	}
	return strings.Join(parts, ":")
}

func (c *Client) close() {
	c.closeOnce.Do(func() {
		close(c.send)
		if c.conn != nil {
			_ = c.conn.Close()
		}
		c.invokeCloseHooks()
	})
}

// AddCloseHook registers a callback that will be executed once when the client closes. Hooks may
// run with the hub locked and must not call back into it.
func (c *Client) AddCloseHook(fn func(*Client)) {
	if fn == nil {
		return
	}
	c.hookMu.Lock()
	c.closeHooks = append(c.closeHooks, fn)
	c.hookMu.Unlock()
}

func (c *Client) invokeCloseHooks() {
	c.hookMu.Lock()
	hooks := append([]func(*Client){}, c.closeHooks...)
	c.closeHooks = nil
	c.hookMu.Unlock()

	for _, hook := range hooks {
		func(h func(*Client)) {
			defer func() {
				if r := recover(); r != nil {
					slog.Warn("ws close hook panic", slog.Any("error", r))
				}
			}()
			h(c)
		}(hook)
	}
}

func (c *Client) SendDomainMessage(msg *domain.Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("websocket marshal error", slog.Any("error", err))
		return
	}
	if !c.enqueue(data) {
		slog.Warn("websocket send buffer full", slog.String("userId", c.userID), slog.String("sessionId", c.sessionID), slog.String("pantryId", c.pantryID))
		go c.hub.detachClient(c)
	}
}

// enqueue queues data without blocking. It reports false when the buffer is full; a client that
// was closed concurrently silently drops data.
func (c *Client) enqueue(data []byte) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ok = true
		}
	}()
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

func (c *Client) WritePump() {
	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				_ = c.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
				return
			}
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				slog.Warn("websocket write error", slog.Any("error", err))
				return
			}
		case <-ping.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				slog.Warn("websocket ping error", slog.Any("error", err))
				return
			}
		}
	}
}

func (c *Client) ReadPump() {
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	defer c.hub.detachClient(c)
	for {
		var cmd Command
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		if err := c.conn.ReadJSON(&cmd); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				slog.Warn("websocket read error", slog.String("userId", c.userID), slog.String("sessionId", c.sessionID), slog.String("pantryId", c.pantryID), slog.Any("error", err))
			}
			return
		}
		c.processCommand(cmd)
	}
}

func (c *Client) processCommand(cmd Command) {
	if c.commands == nil {
		return
	}
	c.commands.Process(c, cmd)
}
