package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrorBody is the error payload returned by the API.
type ErrorBody struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

// OK writes the payload as-is with a 200 status.
func OK(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

// ErrorResponse writes an error payload with the given status.
func ErrorResponse(c echo.Context, status int, msg string) error {
	return c.JSON(status, ErrorBody{Error: msg})
}

// BadRequestResponse writes a 400 with validation details.
func BadRequestResponse(c echo.Context, details interface{}) error {
	return c.JSON(http.StatusBadRequest, ErrorBody{Error: "invalid request", Details: details})
}

// TooManyRequestsResponse writes a 429.
func TooManyRequestsResponse(c echo.Context) error {
	return ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded")
}

// AppErrorResponse maps an AppError to its status, anything else to a 500.
func AppErrorResponse(c echo.Context, err error) error {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return c.JSON(appErr.Status, ErrorBody{Error: appErr.Message})
	}
	return ErrorResponse(c, http.StatusInternalServerError, err.Error())
}
