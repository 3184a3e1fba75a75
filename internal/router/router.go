// Package router builds the Echo instance: global middlewares, system
// routes and the API routes.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/gestion-projet/internal/handler"
	"github.com/deppfellow/gestion-projet/internal/middleware"
	"github.com/deppfellow/gestion-projet/internal/server"
)

func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middlewares.RateLimit.Limit(),
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Tracing.RequestMetrics(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, s, h)

	api := router.Group("/api")
	registerGestionRoutes(api, h)

	return router
}
