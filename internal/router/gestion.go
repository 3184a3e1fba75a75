package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/gestion-projet/internal/handler"
	"github.com/deppfellow/gestion-projet/internal/model/participation"
)

func registerGestionRoutes(api *echo.Group, h *handler.Handlers) {
	gestion := api.Group("/gestion")

	gestion.POST("/participation", handler.Handle(
		h.Participation.Handler,
		h.Participation.RegisterParticipation,
		http.StatusOK,
		func() *participation.CreateParticipationRequest {
			return &participation.CreateParticipationRequest{}
		},
	))
}
