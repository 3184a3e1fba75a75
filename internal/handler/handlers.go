// Package handler is the HTTP layer: it binds and validates requests,
// calls the services and writes responses.
package handler

import (
	"github.com/deppfellow/gestion-projet/internal/server"
	"github.com/deppfellow/gestion-projet/internal/service"
)

type Handlers struct {
	Health        *HealthHandler
	OpenAPI       *OpenAPIHandler
	Participation *ParticipationHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:        NewHealthHandler(s),
		OpenAPI:       NewOpenAPIHandler(s),
		Participation: NewParticipationHandler(s, services.Participation),
	}
}
