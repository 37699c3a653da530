package httputil

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// HTTPErrorInfo contains the HTTP status code and message for an error.
type HTTPErrorInfo struct {
	Status  int
	Message string
}

// ErrorMapping represents a single error to HTTP status/message mapping. When Expose is set the
// wrapped error text is returned instead of Message so validation details reach the caller.
type ErrorMapping struct {
	Error   error
	Status  int
	Message string
	Expose  bool
}

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error string `json:"error"`
}

// ErrorMapper maps domain errors to HTTP status codes and messages.
type ErrorMapper struct {
	mappings       []ErrorMapping
	defaultStatus  int
	defaultMessage string
}

// NewErrorMapper creates a new ErrorMapper with default settings.
func NewErrorMapper() *ErrorMapper {
	return &ErrorMapper{
		defaultStatus:  http.StatusInternalServerError,
		defaultMessage: "internal server error",
	}
}

// WithMapping adds an error mapping to the mapper.
func (m *ErrorMapper) WithMapping(err error, status int, message string) *ErrorMapper {
	m.mappings = append(m.mappings, ErrorMapping{Error: err, Status: status, Message: message})
	return m
}

// WithExposedMapping maps err to status and surfaces the full error text.
func (m *ErrorMapper) WithExposedMapping(err error, status int) *ErrorMapper {
	m.mappings = append(m.mappings, ErrorMapping{Error: err, Status: status, Expose: true})
	return m
}

// WithDefault sets the default status and message for unmatched errors.
func (m *ErrorMapper) WithDefault(status int, message string) *ErrorMapper {
	m.defaultStatus = status
	m.defaultMessage = message
	return m
}

// Map converts an error to HTTP status and message.
func (m *ErrorMapper) Map(err error) HTTPErrorInfo {
	if err == nil {
		return HTTPErrorInfo{Status: http.StatusOK}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return HTTPErrorInfo{Status: http.StatusGatewayTimeout, Message: "request timeout"}
	}
	if errors.Is(err, context.Canceled) {
		return HTTPErrorInfo{Status: http.StatusServiceUnavailable, Message: "request cancelled"}
	}

	for _, mapping := range m.mappings {
		if !errors.Is(err, mapping.Error) {
			continue
		}
		if mapping.Expose {
			return HTTPErrorInfo{Status: mapping.Status, Message: err.Error()}
		}
		return HTTPErrorInfo{Status: mapping.Status, Message: mapping.Message}
	}

	return HTTPErrorInfo{Status: m.defaultStatus, Message: m.defaultMessage}
}

// Respond writes err as an ErrorBody using the mapped status.
func (m *ErrorMapper) Respond(c echo.Context, err error) error {
	info := m.Map(err)
	return c.JSON(info.Status, ErrorBody{Error: info.Message})
}
