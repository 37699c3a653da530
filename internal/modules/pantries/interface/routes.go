package transport

import (
	"github.com/labstack/echo/v4"

	"pantryHub/internal/modules/pantries/application/usecase"
	"pantryHub/internal/shared/auth"
)

// UseCases groups everything the REST routes need.
type UseCases struct {
	Search    *usecase.SearchPantriesUseCase
	Get       *usecase.GetPantryUseCase
	Hours     *usecase.HoursStatusUseCase
	Manage    *usecase.ManagePantryUseCase
	Inventory *usecase.InventoryUseCase
	Stats     *usecase.StatsUseCase
	Evaluate  *usecase.EvaluateHoursUseCase
}

// RegisterRoutes mounts the pantry API under /api. Reads are public, except inactive pantries
// which only their managers see; writes need staff roles.
func RegisterRoutes(e *echo.Echo, ucs UseCases, validator auth.TokenValidator) {
	errs := NewErrorMapper()
	staff := auth.RequireRoles(validator, auth.RoleAdmin, auth.RolePantryAdmin)
	admin := auth.RequireRoles(validator, auth.RoleAdmin)
	visitor := auth.OptionalClaims(validator)
	inventory := NewInventoryHandlers(ucs.Inventory, errs)

	api := e.Group("/api")
	api.GET("/pantries", NewSearchPantriesHandler(ucs.Search, errs))
	api.GET("/pantries/:id", NewGetPantryHandler(ucs.Get, errs), visitor)
	api.GET("/pantries/:id/hours", NewHoursStatusHandler(ucs.Hours, errs), visitor)
	api.GET("/pantries/:id/inventory", inventory.List, visitor)
	api.POST("/hours/evaluate", NewEvaluateHoursHandler(ucs.Evaluate, errs))

	api.POST("/pantries", NewCreatePantryHandler(ucs.Manage, errs), staff)
	api.PUT("/pantries/:id", NewUpdatePantryHandler(ucs.Manage, errs), staff)
	api.POST("/pantries/:id/inventory", inventory.Create, staff)
	api.PUT("/inventory/:id", inventory.Update, staff)
	api.DELETE("/inventory/:id", inventory.Delete, staff)

	api.GET("/admin/stats", NewStatsHandler(ucs.Stats, errs), admin)
	api.GET("/admin/low-stock", inventory.LowStock, admin)
}
