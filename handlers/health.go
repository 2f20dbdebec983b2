package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/neha222222/property-listing-system/models"
)

func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, models.OK(map[string]string{"status": "ok"}))
}
