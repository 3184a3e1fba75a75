package service

import (
	"github.com/deppfellow/gestion-projet/internal/database"
	"github.com/deppfellow/gestion-projet/internal/lib/job"
	"github.com/deppfellow/gestion-projet/internal/repository"
	"github.com/deppfellow/gestion-projet/internal/server"
)

type Services struct {
	Participation *ParticipationService
	Job           *job.JobService
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	participationService := NewParticipationService(
		s.Logger,
		database.NewTransaction(s.DB.Pool),
		repos.Person,
		repos.Project,
		repos.Participation,
		s.Job,
	)

	return &Services{
		Participation: participationService,
		Job:           s.Job,
	}, nil
}
