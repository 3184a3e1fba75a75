package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/gestion-projet/internal/handler"
	"github.com/deppfellow/gestion-projet/internal/server"
)

func registerSystemRoutes(r *echo.Echo, s *server.Server, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)

	r.Static("/static", handler.StaticDir)

	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)

	r.GET("/metrics", echo.WrapHandler(s.Metrics.Handler()))
}
