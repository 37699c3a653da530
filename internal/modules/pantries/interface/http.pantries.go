package transport

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"pantryHub/internal/modules/pantries/application/usecase"
	"pantryHub/internal/modules/pantries/domain"
	"pantryHub/internal/shared/httputil"
)

var queryBinder = &echo.DefaultBinder{}

// NewSearchPantriesHandler serves GET /api/pantries.
func NewSearchPantriesHandler(uc *usecase.SearchPantriesUseCase, errs *httputil.ErrorMapper) echo.HandlerFunc {
	return func(c echo.Context) error {
		var cmd domain.SearchPantriesCommand
		if err := queryBinder.BindQueryParams(c, &cmd); err != nil {
			slog.Debug("pantries http: invalid query", slog.Any("error", err))
			return errs.Respond(c, fmt.Errorf("%w: invalid query parameters", ErrBadRequest))
		}
		page, err := uc.Execute(c.Request().Context(), cmd)
		if err != nil {
			slog.Error("pantries http: search failed", slog.Any("error", err))
			return errs.Respond(c, err)
		}
		return c.JSON(http.StatusOK, page)
	}
}

// NewGetPantryHandler serves GET /api/pantries/:id.
func NewGetPantryHandler(uc *usecase.GetPantryUseCase, errs *httputil.ErrorMapper) echo.HandlerFunc {
	return func(c echo.Context) error {
		view, err := uc.Execute(c.Request().Context(), actorFrom(c), c.Param("id"))
		if err != nil {
			return errs.Respond(c, err)
		}
		return c.JSON(http.StatusOK, view)
	}
}

// NewHoursStatusHandler serves GET /api/pantries/:id/hours with an optional RFC 3339 ?at=.
func NewHoursStatusHandler(uc *usecase.HoursStatusUseCase, errs *httputil.ErrorMapper) echo.HandlerFunc {
	return func(c echo.Context) error {
		var at time.Time
		if raw := strings.TrimSpace(c.QueryParam("at")); raw != "" {
			parsed, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				return errs.Respond(c, fmt.Errorf("%w: at must be an RFC 3339 timestamp", ErrBadRequest))
			}
			at = parsed
		}
		out, err := uc.Execute(c.Request().Context(), actorFrom(c), c.Param("id"), at)
		if err != nil {
			return errs.Respond(c, err)
		}
		return c.JSON(http.StatusOK, out)
	}
}

// NewCreatePantryHandler serves POST /api/pantries.
func NewCreatePantryHandler(uc *usecase.ManagePantryUseCase, errs *httputil.ErrorMapper) echo.HandlerFunc {
	return func(c echo.Context) error {
		var cmd domain.CreatePantryCommand
		if err := bindBody(c, &cmd); err != nil {
			return errs.Respond(c, err)
		}
		result, err := uc.Create(c.Request().Context(), actorFrom(c), cmd)
		if err != nil {
			return errs.Respond(c, err)
		}
		return c.JSON(http.StatusCreated, result)
	}
}

// NewUpdatePantryHandler serves PUT /api/pantries/:id.
func NewUpdatePantryHandler(uc *usecase.ManagePantryUseCase, errs *httputil.ErrorMapper) echo.HandlerFunc {
	return func(c echo.Context) error {
		var cmd domain.UpdatePantryCommand
		if err := bindBody(c, &cmd); err != nil {
			return errs.Respond(c, err)
		}
		result, err := uc.Update(c.Request().Context(), actorFrom(c), c.Param("id"), cmd)
		if err != nil {
			return errs.Respond(c, err)
		}
		return c.JSON(http.StatusOK, result)
	}
}

// NewEvaluateHoursHandler serves POST /api/hours/evaluate.
func NewEvaluateHoursHandler(uc *usecase.EvaluateHoursUseCase, errs *httputil.ErrorMapper) echo.HandlerFunc {
	return func(c echo.Context) error {
		var input usecase.EvaluateHoursInput
		if err := bindBody(c, &input); err != nil {
			return errs.Respond(c, err)
		}
		out, err := uc.Execute(input)
		if err != nil {
			return errs.Respond(c, err)
		}
		return c.JSON(http.StatusOK, out)
	}
}

// bindBody decodes only the JSON body. c.Bind would also copy path params into the payload.
func bindBody(c echo.Context, dst any) error {
	if err := queryBinder.BindBody(c, dst); err != nil {
		slog.Warn("pantries http: invalid request body", slog.String("path", c.Path()), slog.Any("error", err))
		return fmt.Errorf("%w: invalid request body", ErrBadRequest)
	}
	return nil
}
