package transport

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/labstack/echo/v4"

	"pantryHub/internal/modules/realtime/domain"
	"pantryHub/internal/modules/realtime/infrastructure"
	"pantryHub/internal/shared/auth"
	"pantryHub/internal/shared/httputil"
)

var notificationCounter atomic.Uint64

var notificationErrors = httputil.NewErrorMapper().
	WithMapping(auth.ErrMissingToken, http.StatusUnauthorized, "invalid or missing token").
	WithMapping(auth.ErrInvalidToken, http.StatusUnauthorized, "invalid or missing token").
	WithMapping(auth.ErrForbidden, http.StatusForbidden, "forbidden")

// NewNotificationsWebsocketHandler exposes /ws/notifications to admins. The client receives every
// broadcasted message across all pantries.
func NewNotificationsWebsocketHandler(hub *infrastructure.Hub, validator auth.TokenValidator) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := c.Response().Header().Get(echo.HeaderXRequestID)
		peerIP := c.RealIP()

		claims, err := validator.Validate(auth.ExtractToken(c.Request(), "token"))
		if err != nil {
			slog.Warn("notifications ws auth failed", slog.String("ip", peerIP), slog.Any("error", err))
			return notificationErrors.Respond(c, err)
		}
		if !claims.HasAnyRole(auth.RoleAdmin) {
			slog.Warn("notifications ws role check failed", slog.String("userId", claims.UserID()), slog.Any("roles", claims.Roles))
			return notificationErrors.Respond(c, auth.ErrForbidden)
		}

		conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
		if err != nil {
			slog.Error("notifications ws upgrade failed", slog.String("ip", peerIP), slog.String("reqID", requestID), slog.Any("error", err))
			return err
		}

		userID := claims.UserID()
		sessionID := fmt.Sprintf("notif-%d", notificationCounter.Add(1))
		client := infrastructure.NewClient(hub, conn, userID, sessionID, "", 32, nil)
		hub.AttachClientToAll(client)

		go client.WritePump()
		go client.ReadPump()

		connected := &domain.Message{
			Topic:  domain.TopicSystemConnected,
			Entity: domain.SystemEntity,
			Action: domain.ActionConnected,
			Metadata: map[string]string{
				domain.MetadataSessionID: sessionID,
				domain.MetadataUserID:    userID,
			},
			Data: map[string]any{
				"mode":   "notifications",
				"topics": []string{"*"},
			},
			Timestamp: time.Now().UTC(),
		}
		client.SendDomainMessage(connected)

		slog.Info("notifications ws connected", slog.String("userId", userID), slog.String("sessionId", sessionID), slog.String("ip", peerIP), slog.String("reqID", requestID))
		return nil
	}
}
