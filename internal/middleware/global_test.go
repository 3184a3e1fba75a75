package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/gestion-projet/internal/config"
	"github.com/deppfellow/gestion-projet/internal/errs"
	"github.com/deppfellow/gestion-projet/internal/metrics"
	"github.com/deppfellow/gestion-projet/internal/server"
)

func newTestServer(rateLimit float64) *server.Server {
	logger := zerolog.Nop()
	return &server.Server{
		Config:  &config.Config{Server: config.ServerConfig{RateLimit: rateLimit}},
		Logger:  &logger,
		Metrics: metrics.New(),
	}
}

func serveError(t *testing.T, handlerErr error) (*httptest.ResponseRecorder, errs.HTTPError) {
	t.Helper()

	e := echo.New()
	e.HTTPErrorHandler = NewGlobalMiddlewares(newTestServer(0)).GlobalErrorHandler
	e.GET("/boom", func(c echo.Context) error { return handlerErr })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	var body errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestGlobalErrorHandler(t *testing.T) {
	t.Run("http error kept", func(t *testing.T) {
		rec, body := serveError(t, errs.NewBadRequestError("le projet de code 3 n'existe pas", true, nil, nil, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "le projet de code 3 n'existe pas", body.Message)
		assert.True(t, body.Override)
	})

	t.Run("no rows becomes 404", func(t *testing.T) {
		rec, body := serveError(t, pgx.ErrNoRows)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "NOT_FOUND", body.Code)
	})

	t.Run("unknown error becomes 500", func(t *testing.T) {
		rec, body := serveError(t, errors.New("boom"))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "INTERNAL_SERVER_ERROR", body.Code)
	})
}

func TestGlobalErrorHandler_RouteNotFound(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = NewGlobalMiddlewares(newTestServer(0)).GlobalErrorHandler

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Route not found")
}

func TestRateLimit(t *testing.T) {
	srv := newTestServer(1)
	e := echo.New()
	e.HTTPErrorHandler = NewGlobalMiddlewares(srv).GlobalErrorHandler
	e.Use(NewRateLimitMiddleware(srv).Limit())
	e.GET("/", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })

	codes := make([]int, 0, 4)
	for i := 0; i < 4; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, http.StatusNoContent, codes[0])
	assert.Contains(t, codes, http.StatusTooManyRequests)
}
