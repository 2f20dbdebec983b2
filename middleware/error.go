package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/neha222222/property-listing-system/models"
	"github.com/neha222222/property-listing-system/utils"
)

// ErrorHandler is the single boundary that turns errors into response
// envelopes. Typed ApiErrors keep their status and messages; everything
// else is logged and answered with an opaque 500 so internals never leak.
func ErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		resp := models.Response{Success: false, Message: "Internal Server Error"}

		var apiErr *utils.ApiError
		var echoErr *echo.HTTPError
		switch {
		case errors.As(err, &apiErr):
			status = apiErr.StatusCode
			resp.Message = apiErr.Message
			resp.Errors = apiErr.Errs
		case errors.As(err, &echoErr):
			status = echoErr.Code
			if msg, ok := echoErr.Message.(string); ok {
				resp.Message = msg
			}
		default:
			logger.Error("unhandled error",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Error(err),
			)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, resp)
		}
		if err != nil {
			logger.Error("failed to write error response", zap.Error(err))
		}
	}
}
