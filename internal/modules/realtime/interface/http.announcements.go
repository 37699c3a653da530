package transport

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	pantries "pantryHub/internal/modules/pantries/domain"
	"pantryHub/internal/modules/realtime/application/usecase"
	"pantryHub/internal/shared/auth"
	"pantryHub/internal/shared/httputil"
)

// AnnouncementRequest is the body of POST /api/pantries/:id/announcements.
type AnnouncementRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

var announcementErrors = httputil.NewErrorMapper().
	WithMapping(pantries.ErrPantryNotFound, http.StatusNotFound, "pantry not found").
	WithMapping(pantries.ErrNotPantryManager, http.StatusForbidden, "forbidden").
	WithExposedMapping(usecase.ErrInvalidAnnouncement, http.StatusBadRequest)

// NewAnnouncementHTTPHandler lets staff push a notice to everyone watching a pantry. It expects
// auth.RequireRoles to run first.
func NewAnnouncementHTTPHandler(announceUC *usecase.AnnounceUseCase) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req AnnouncementRequest
		if err := (&echo.DefaultBinder{}).BindBody(c, &req); err != nil {
			slog.Warn("announcement http: invalid request body", slog.Any("error", err))
			return c.JSON(http.StatusBadRequest, httputil.ErrorBody{Error: "invalid request body"})
		}

		actor := pantries.Actor{}
		if claims, ok := auth.ClaimsFrom(c); ok {
			actor = pantries.Actor{UserID: claims.UserID(), Admin: claims.HasAnyRole(auth.RoleAdmin)}
		}

		announcement, err := announceUC.Execute(c.Request().Context(), actor, usecase.AnnounceInput{
			PantryID: c.Param("id"),
			Title:    req.Title,
			Body:     req.Body,
		})
		if err != nil {
			return announcementErrors.Respond(c, err)
		}
		return c.JSON(http.StatusAccepted, announcement)
	}
}
