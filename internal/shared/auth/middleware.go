package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

const claimsContextKey = "auth.claims"

// ClaimsFrom returns the claims stored by RequireRoles.
func ClaimsFrom(c echo.Context) (*Claims, bool) {
	claims, ok := c.Get(claimsContextKey).(*Claims)
	return claims, ok && claims != nil
}

// RequireRoles rejects requests without a valid bearer token carrying one of roles.
// With no roles any authenticated caller passes.
func RequireRoles(validator TokenValidator, roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := validator.Validate(ExtractToken(c.Request(), ""))
			if err != nil {
				status := http.StatusUnauthorized
				message := "invalid token"
				if errors.Is(err, ErrMissingToken) {
					message = "missing token"
				}
				slog.Debug("auth rejected request", slog.String("path", c.Path()), slog.Any("error", err))
				return c.JSON(status, map[string]string{"error": message})
			}
			if len(roles) > 0 && !claims.HasAnyRole(roles...) {
				slog.Warn("auth role check failed",
					slog.String("path", c.Path()),
					slog.String("userId", claims.UserID()),
					slog.Any("roles", claims.Roles),
					slog.Any("required", roles),
				)
				return c.JSON(http.StatusForbidden, map[string]string{"error": ErrForbidden.Error()})
			}
			c.Set(claimsContextKey, claims)
			return next(c)
		}
	}
}

// OptionalClaims stores the caller's claims when a bearer token is sent and lets anonymous
// requests through. A token that is present must be valid.
func OptionalClaims(validator TokenValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := ExtractToken(c.Request(), "")
			if token == "" {
				return next(c)
			}
			claims, err := validator.Validate(token)
			if err != nil {
				slog.Debug("auth rejected optional token", slog.String("path", c.Path()), slog.Any("error", err))
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid token"})
			}
			c.Set(claimsContextKey, claims)
			return next(c)
		}
	}
}
