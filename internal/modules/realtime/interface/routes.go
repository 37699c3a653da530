package transport

import (
	"time"

	"github.com/labstack/echo/v4"

	"pantryHub/internal/modules/realtime/application/usecase"
	"pantryHub/internal/modules/realtime/infrastructure"
	"pantryHub/internal/shared/auth"
)

// RegisterRoutes mounts the websocket endpoints and the announcements API.
func RegisterRoutes(e *echo.Echo, hub *infrastructure.Hub, watchUC *usecase.WatchPantryUseCase, announceUC *usecase.AnnounceUseCase, validator auth.TokenValidator, now func() time.Time) {
	e.GET("/ws/pantries/:pantryId", NewPantryWebsocketHandler(hub, watchUC, now))
	e.GET("/ws/notifications", NewNotificationsWebsocketHandler(hub, validator))
	e.POST("/api/pantries/:id/announcements", NewAnnouncementHTTPHandler(announceUC),
		auth.RequireRoles(validator, auth.RoleAdmin, auth.RolePantryAdmin))
}
