package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/gestion-projet/internal/middleware"
	"github.com/deppfellow/gestion-projet/internal/server"
)

type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

type checkResult struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
}

type healthResponse struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Checks      map[string]checkResult `json:"checks"`
}

// CheckHealth pings the database and Redis. An unreachable database makes
// the service unhealthy (503); Redis only carries notifications, so its
// failure is reported without changing the status.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	response := healthResponse{
		Status:      "healthy",
		Timestamp:   time.Now().UTC(),
		Environment: h.server.Config.Primary.Env,
		Checks:      make(map[string]checkResult),
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	dbResult := h.check(ctx, "database", h.server.DB.Pool.Ping)
	response.Checks["database"] = dbResult
	if dbResult.Status != "healthy" {
		response.Status = "unhealthy"
	}

	if h.server.Redis != nil {
		response.Checks["redis"] = h.check(ctx, "redis", func(ctx context.Context) error {
			return h.server.Redis.Ping(ctx).Err()
		})
	}

	if response.Status != "healthy" {
		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")
		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Debug().
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	return c.JSON(http.StatusOK, response)
}

func (h *HealthHandler) check(ctx context.Context, name string, ping func(context.Context) error) checkResult {
	start := time.Now()
	err := ping(ctx)
	elapsed := time.Since(start)

	if err == nil {
		return checkResult{Status: "healthy", ResponseTime: elapsed.String()}
	}

	h.server.Logger.Error().
		Err(err).
		Str("check_type", name).
		Dur("response_time", elapsed).
		Msg("health check failed")

	if h.server.LoggerService != nil && h.server.LoggerService.GetApplication() != nil {
		h.server.LoggerService.GetApplication().RecordCustomEvent(
			"HealthCheckError",
			map[string]any{
				"check_type":       name,
				"operation":        "health_check",
				"error_type":       name + "_unhealthy",
				"response_time_ms": elapsed.Milliseconds(),
				"error_message":    err.Error(),
			},
		)
	}

	return checkResult{Status: "unhealthy", ResponseTime: elapsed.String(), Error: err.Error()}
}
