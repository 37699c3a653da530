package transport

import (
	"github.com/labstack/echo/v4"

	"pantryHub/internal/modules/donors/application/usecase"
	"pantryHub/internal/shared/auth"
)

// RegisterRoutes mounts the donor contact routes under /api. Only staff reach them, and a
// pantry-admin only sees the donors of pantries they manage.
func RegisterRoutes(e *echo.Echo, uc *usecase.ManageDonorsUseCase, validator auth.TokenValidator) {
	staff := auth.RequireRoles(validator, auth.RoleAdmin, auth.RolePantryAdmin)
	h := NewDonorHandlers(uc, NewErrorMapper())

	api := e.Group("/api")
	api.GET("/pantries/:id/donors", h.List, staff)
	api.POST("/donors", h.Create, staff)
	api.PUT("/donors/:id", h.Update, staff)
	api.DELETE("/donors/:id", h.Delete, staff)
}
