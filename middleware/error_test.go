package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/neha222222/property-listing-system/models"
	"github.com/neha222222/property-listing-system/utils"
)

func handleError(t *testing.T, err error) (int, models.Response) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	ErrorHandler(zap.NewNop())(err, c)

	var resp models.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec.Code, resp
}

func TestErrorHandlerTypedError(t *testing.T) {
	code, resp := handleError(t, utils.NotFound("Property not found"))
	assert.Equal(t, http.StatusNotFound, code)
	assert.False(t, resp.Success)
	assert.Equal(t, "Property not found", resp.Message)
}

func TestErrorHandlerValidationErrors(t *testing.T) {
	code, resp := handleError(t, utils.BadRequest("Validation Error", "Email is required"))
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, []string{"Email is required"}, resp.Errors)
}

func TestErrorHandlerHidesInternals(t *testing.T) {
	code, resp := handleError(t, errors.New("mongo: connection refused at 10.1.2.3"))
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "Internal Server Error", resp.Message)
	assert.Empty(t, resp.Errors)
}

func TestErrorHandlerEchoHTTPError(t *testing.T) {
	code, resp := handleError(t, echo.NewHTTPError(http.StatusNotFound, "Not Found"))
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Not Found", resp.Message)
}
