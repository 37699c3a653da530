package transport

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"pantryHub/internal/modules/pantries/domain"
	"pantryHub/internal/shared/auth"
	"pantryHub/internal/shared/httputil"
)

// ErrBadRequest wraps malformed bodies and query strings.
var ErrBadRequest = errors.New("bad request")

// NewErrorMapper maps pantry errors onto HTTP responses.
func NewErrorMapper() *httputil.ErrorMapper {
	return httputil.NewErrorMapper().
		WithMapping(domain.ErrPantryNotFound, http.StatusNotFound, "pantry not found").
		WithMapping(domain.ErrInventoryItemNotFound, http.StatusNotFound, "inventory item not found").
		WithMapping(domain.ErrNotPantryManager, http.StatusForbidden, "forbidden").
		WithExposedMapping(domain.ErrInvalidPantry, http.StatusBadRequest).
		WithExposedMapping(domain.ErrInvalidInventoryItem, http.StatusBadRequest).
		WithExposedMapping(ErrBadRequest, http.StatusBadRequest)
}

// actorFrom reads the caller placed on the context by auth.RequireRoles or auth.OptionalClaims.
func actorFrom(c echo.Context) domain.Actor {
	claims, ok := auth.ClaimsFrom(c)
	if !ok {
		return domain.Actor{}
	}
	return domain.Actor{UserID: claims.UserID(), Admin: claims.HasAnyRole(auth.RoleAdmin)}
}
