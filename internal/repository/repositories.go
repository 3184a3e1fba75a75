package repository

import (
	"github.com/deppfellow/gestion-projet/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Person        *PersonRepository
	Project       *ProjectRepository
	Participation *ParticipationRepository
}

func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Person:        NewPersonRepository(s),
		Project:       NewProjectRepository(s),
		Participation: NewParticipationRepository(s),
	}
}
