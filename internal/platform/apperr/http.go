package apperr

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HTTPError converts err into the echo error the local API returns. The
// original error stays reachable through Unwrap.
func HTTPError(err error) *echo.HTTPError {
	code := http.StatusInternalServerError
	switch {
	case IsNotFound(err):
		code = http.StatusNotFound
	case Is(err, KindValidation):
		code = http.StatusBadRequest
	}
	return echo.NewHTTPError(code, err.Error()).SetInternal(err)
}
