package transport

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"pantryHub/internal/modules/pantries/application/usecase"
	"pantryHub/internal/modules/pantries/domain"
	"pantryHub/internal/shared/httputil"
)

// InventoryHandlers exposes InventoryUseCase over REST.
type InventoryHandlers struct {
	uc   *usecase.InventoryUseCase
	errs *httputil.ErrorMapper
}

func NewInventoryHandlers(uc *usecase.InventoryUseCase, errs *httputil.ErrorMapper) *InventoryHandlers {
	return &InventoryHandlers{uc: uc, errs: errs}
}

// List serves GET /api/pantries/:id/inventory.
func (h *InventoryHandlers) List(c echo.Context) error {
	var query usecase.ListInventoryQuery
	if err := queryBinder.BindQueryParams(c, &query); err != nil {
		return h.errs.Respond(c, fmt.Errorf("%w: invalid query parameters", ErrBadRequest))
	}
	items, err := h.uc.List(c.Request().Context(), actorFrom(c), c.Param("id"), query)
	if err != nil {
		return h.errs.Respond(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// Create serves POST /api/pantries/:id/inventory.
func (h *InventoryHandlers) Create(c echo.Context) error {
	var cmd domain.CreateInventoryItemCommand
	if err := bindBody(c, &cmd); err != nil {
		return h.errs.Respond(c, err)
	}
	item, err := h.uc.Create(c.Request().Context(), actorFrom(c), c.Param("id"), cmd)
	if err != nil {
		return h.errs.Respond(c, err)
	}
	return c.JSON(http.StatusCreated, item)
}

// Update serves PUT /api/inventory/:id.
func (h *InventoryHandlers) Update(c echo.Context) error {
	var cmd domain.UpdateInventoryItemCommand
	if err := bindBody(c, &cmd); err != nil {
		return h.errs.Respond(c, err)
	}
	item, err := h.uc.Update(c.Request().Context(), actorFrom(c), c.Param("id"), cmd)
	if err != nil {
		return h.errs.Respond(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

// Delete serves DELETE /api/inventory/:id.
func (h *InventoryHandlers) Delete(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), actorFrom(c), c.Param("id")); err != nil {
		return h.errs.Respond(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// LowStock serves GET /api/admin/low-stock.
func (h *InventoryHandlers) LowStock(c echo.Context) error {
	items, err := h.uc.LowStock(c.Request().Context())
	if err != nil {
		slog.Error("inventory http: low stock failed", slog.Any("error", err))
		return h.errs.Respond(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// NewStatsHandler serves GET /api/admin/stats.
func NewStatsHandler(uc *usecase.StatsUseCase, errs *httputil.ErrorMapper) echo.HandlerFunc {
	return func(c echo.Context) error {
		stats, err := uc.Execute(c.Request().Context())
		if err != nil {
			slog.Error("admin http: stats failed", slog.Any("error", err))
			return errs.Respond(c, err)
		}
		return c.JSON(http.StatusOK, stats)
	}
}
