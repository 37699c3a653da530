package transport

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	pantries "pantryHub/internal/modules/pantries/domain"
	"pantryHub/internal/modules/realtime/application/usecase"
	"pantryHub/internal/modules/realtime/domain"
	"pantryHub/internal/modules/realtime/infrastructure"
	"pantryHub/internal/shared/auth"
	"pantryHub/internal/shared/httputil"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

var connectErrors = httputil.NewErrorMapper().
	WithMapping(usecase.ErrMissingPantry, http.StatusBadRequest, "missing pantry id").
	WithMapping(auth.ErrInvalidToken, http.StatusUnauthorized, "invalid token").
	WithMapping(pantries.ErrPantryNotFound, http.StatusNotFound, "pantry not found").
	WithDefault(http.StatusInternalServerError, "unable to watch pantry")

// NewPantryWebsocketHandler exposes /ws/pantries/:pantryId. The token is optional: anyone may watch
// a listed pantry's inventory and hours. On connect the client receives system.connected followed by a
// pantry snapshot, then every message published to pantry.<id>.
func NewPantryWebsocketHandler(hub *infrastructure.Hub, watchUC *usecase.WatchPantryUseCase, now func() time.Time) echo.HandlerFunc {
	if now == nil {
		now = time.Now
	}
	return func(c echo.Context) error {
		pantryID := strings.TrimSpace(c.Param("pantryId"))
		token := auth.ExtractToken(c.Request(), "token")
		logger := c.Logger()
		requestID := c.Response().Header().Get(echo.HeaderXRequestID)
		peerIP := c.RealIP()

		ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
		defer cancel()

		output, err := watchUC.Execute(ctx, usecase.WatchPantryInput{Token: token, PantryID: pantryID})
		if err != nil {
			info := connectErrors.Map(err)
			slog.Warn("ws handler watch rejected", slog.String("pantryId", pantryID), slog.Int("status", info.Status), slog.Any("error", err))
			if info.Status >= http.StatusInternalServerError {
				logger.Errorf("ws watch failed pantry=%s ip=%s reqID=%s: %v", pantryID, peerIP, requestID, err)
			}
			return connectErrors.Respond(c, err)
		}

		conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
		if err != nil {
			slog.Error("ws handler upgrade failed", slog.String("pantryId", pantryID), slog.Any("error", err))
			return err
		}

		userID := output.Claims.UserID()
		sessionID := "anon-" + uuid.NewString()
		if output.Claims != nil && strings.TrimSpace(output.Claims.SessionID) != "" {
			sessionID = output.Claims.SessionID
		}
		pantryID = output.View.ID.String()
		topic := domain.PantryTopic(pantryID)

		claims := output.Claims
		client := infrastructure.NewClient(hub, conn, userID, sessionID, pantryID, 16, newPantryCommandHandler(watchUC, claims, now),
			infrastructure.WithTopicAuthorizer(func(ctx context.Context, _ *infrastructure.Client, id string) error {
				return watchUC.CanWatch(ctx, claims, id)
			}))
		client.AddCloseHook(func(cl *infrastructure.Client) {
			slog.Info("ws pantry watcher left", slog.String("pantryId", cl.PantryID()), slog.String("sessionId", cl.SessionID()))
		})
		hub.AttachClient(client, []string{topic})

		go client.WritePump()
		go client.ReadPump()

		connected := &domain.Message{
			Topic:  domain.TopicSystemConnected,
			Entity: domain.SystemEntity,
			Action: domain.ActionConnected,
			Metadata: map[string]string{
				domain.MetadataUserID:    userID,
				domain.MetadataSessionID: sessionID,
				domain.MetadataPantryID:  pantryID,
			},
			Data: map[string]any{
				"pantryId":      pantryID,
				"allowedTopics": []string{topic},
				"anonymous":     output.Claims == nil,
			},
			Timestamp: now().UTC(),
		}
		client.SendDomainMessage(connected)
		client.SendDomainMessage(domain.BuildSnapshotMessage(output.View, now()))

		logger.Infof("ws connected pantry=%s user=%s session=%s ip=%s reqID=%s", pantryID, userID, sessionID, peerIP, requestID)
		return nil
	}
}

type pantryCommandPayload struct {
	PantryID string `json:"pantryId"`
}

// newPantryCommandHandler answers the "status" and "snapshot" commands. Replies go to the asking
// client only and respect the same visibility as the connection's claims. Hours are re-evaluated on
// every request.
func newPantryCommandHandler(watchUC *usecase.WatchPantryUseCase, claims *auth.Claims, now func() time.Time) infrastructure.CommandHandler {
	return func(ctx context.Context, client *infrastructure.Client, cmd infrastructure.Command) {
		action := strings.ToLower(strings.TrimSpace(cmd.Action))
		pantryID := client.PantryID()
		if len(cmd.Payload) > 0 {
			var payload pantryCommandPayload
			if err := json.Unmarshal(cmd.Payload, &payload); err == nil && strings.TrimSpace(payload.PantryID) != "" {
				pantryID = strings.TrimSpace(payload.PantryID)
			}
		}

		switch action {
		case domain.ActionStatus, domain.ActionSnapshot:
		default:
			slog.Debug("ws handler unknown action", slog.String("pantryId", pantryID), slog.String("action", cmd.Action))
			client.SendDomainMessage(domain.BuildErrorMessage(domain.SystemEntity, client.SessionID(), action, "unsupported action", now()))
			return
		}

		view, err := watchUC.Snapshot(ctx, claims, pantryID)
		if err != nil {
			info := connectErrors.Map(err)
			slog.Warn("ws handler command failed", slog.String("pantryId", pantryID), slog.String("action", action), slog.Any("error", err))
			client.SendDomainMessage(domain.BuildErrorMessage(domain.PantryEntity, client.SessionID(), action, info.Message, now()))
			return
		}

		if action == domain.ActionStatus {
			client.SendDomainMessage(domain.BuildStatusMessage(view, now()))
			return
		}
		client.SendDomainMessage(domain.BuildSnapshotMessage(view, now()))
	}
}
