package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/neha222222/property-listing-system/cache"
	"github.com/neha222222/property-listing-system/config"
	"github.com/neha222222/property-listing-system/utils"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:    "test-secret",
		JWTExpiry:    time.Hour,
		ListCacheTTL: 5 * time.Minute,
		UserCacheTTL: time.Hour,
	}
}

func testCache() *cache.Cache {
	return cache.New(cache.NewMemoryStore(), zap.NewNop())
}

func newTestContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = utils.NewRequestValidator()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}
