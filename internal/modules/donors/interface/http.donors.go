package transport

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"pantryHub/internal/modules/donors/application/usecase"
	"pantryHub/internal/modules/donors/domain"
	"pantryHub/internal/shared/httputil"
)

var binder = &echo.DefaultBinder{}

// DonorHandlers serves the donor contact routes.
type DonorHandlers struct {
	uc   *usecase.ManageDonorsUseCase
	errs *httputil.ErrorMapper
}

func NewDonorHandlers(uc *usecase.ManageDonorsUseCase, errs *httputil.ErrorMapper) *DonorHandlers {
	return &DonorHandlers{uc: uc, errs: errs}
}

// List serves GET /api/pantries/:id/donors with optional ?category= and ?status= filters.
func (h *DonorHandlers) List(c echo.Context) error {
	var query usecase.ListDonorsQuery
	if err := binder.BindQueryParams(c, &query); err != nil {
		return h.errs.Respond(c, fmt.Errorf("%w: invalid query parameters", ErrBadRequest))
	}
	donors, err := h.uc.List(c.Request().Context(), actorFrom(c), c.Param("id"), query)
	if err != nil {
		return h.errs.Respond(c, err)
	}
	return c.JSON(http.StatusOK, donors)
}

// Create serves POST /api/donors.
func (h *DonorHandlers) Create(c echo.Context) error {
	var cmd domain.CreateDonorCommand
	if err := bindBody(c, &cmd); err != nil {
		return h.errs.Respond(c, err)
	}
	donor, err := h.uc.Create(c.Request().Context(), actorFrom(c), cmd)
	if err != nil {
		return h.errs.Respond(c, err)
	}
	return c.JSON(http.StatusCreated, donor)
}

// Update serves PUT /api/donors/:id.
func (h *DonorHandlers) Update(c echo.Context) error {
	var cmd domain.UpdateDonorCommand
	if err := bindBody(c, &cmd); err != nil {
		return h.errs.Respond(c, err)
	}
	donor, err := h.uc.Update(c.Request().Context(), actorFrom(c), c.Param("id"), cmd)
	if err != nil {
		return h.errs.Respond(c, err)
	}
	return c.JSON(http.StatusOK, donor)
}

// Delete serves DELETE /api/donors/:id.
func (h *DonorHandlers) Delete(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), actorFrom(c), c.Param("id")); err != nil {
		return h.errs.Respond(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func bindBody(c echo.Context, dst any) error {
	if err := binder.BindBody(c, dst); err != nil {
		slog.Warn("donors http: invalid request body", slog.String("path", c.Path()), slog.Any("error", err))
		return fmt.Errorf("%w: invalid request body", ErrBadRequest)
	}
	return nil
}
