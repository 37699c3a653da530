package transport

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"pantryHub/internal/modules/donors/domain"
	pantries "pantryHub/internal/modules/pantries/domain"
	"pantryHub/internal/shared/auth"
	"pantryHub/internal/shared/httputil"
)

// ErrBadRequest wraps malformed bodies and query strings.
var ErrBadRequest = errors.New("bad request")

// NewErrorMapper maps donor errors onto HTTP responses.
func NewErrorMapper() *httputil.ErrorMapper {
	return httputil.NewErrorMapper().
		WithMapping(domain.ErrDonorNotFound, http.StatusNotFound, "donor not found").
		WithMapping(pantries.ErrPantryNotFound, http.StatusNotFound, "pantry not found").
		WithMapping(pantries.ErrNotPantryManager, http.StatusForbidden, "forbidden").
		WithExposedMapping(domain.ErrInvalidDonor, http.StatusBadRequest).
		WithExposedMapping(ErrBadRequest, http.StatusBadRequest)
}

func actorFrom(c echo.Context) pantries.Actor {
	claims, ok := auth.ClaimsFrom(c)
	if !ok {
		return pantries.Actor{}
	}
	return pantries.Actor{UserID: claims.UserID(), Admin: claims.HasAnyRole(auth.RoleAdmin)}
}
