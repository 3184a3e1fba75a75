package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/deppfellow/gestion-projet/internal/errs"
	"github.com/deppfellow/gestion-projet/internal/lib/job"
	"github.com/deppfellow/gestion-projet/internal/model/participation"
	"github.com/deppfellow/gestion-projet/internal/sqlerr"
)

// MaxPourcentage is the share of a person's time all their participations
// may add up to.
const MaxPourcentage = 100.0

// pourcentageTolerance absorbs the rounding of sums of DOUBLE PRECISION
// shares, e.g. 0.2 + 83.9 = 84.10000000000001.
const pourcentageTolerance = 1e-9

// notifyTimeout bounds the enqueue so an unreachable Redis does not delay
// the response.
const notifyTimeout = 2 * time.Second

var frenchPrinter = message.NewPrinter(language.French)

// formatPourcentage renders a share with two decimals and a French
// decimal comma: 84,10.
func formatPourcentage(p float64) string {
	return frenchPrinter.Sprintf("%.2f", p)
}

type transactor interface {
	Execute(ctx context.Context, fn func(ctx context.Context) error) error
}

type personFinder interface {
	GetPersonForUpdate(ctx context.Context, matricule int64) (*participation.Person, error)
}

type projectFinder interface {
	GetProjectForShare(ctx context.Context, code int64) (*participation.Project, error)
}

type participationStore interface {
	SumPourcentageByPerson(ctx context.Context, matricule int64) (float64, error)
	CreateParticipation(ctx context.Context, input participation.RegisterParticipationInput) (*participation.Participation, error)
}

type participationNotifier interface {
	EnqueueParticipationRegistered(ctx context.Context, payload job.ParticipationRegisteredPayload) error
}

type ParticipationService struct {
	logger        *zerolog.Logger
	tx            transactor
	persons       personFinder
	projects      projectFinder
	participation participationStore
	notifier      participationNotifier
}

func NewParticipationService(
	logger *zerolog.Logger,
	tx transactor,
	persons personFinder,
	projects projectFinder,
	participations participationStore,
	notifier participationNotifier,
) *ParticipationService {
	return &ParticipationService{
		logger:        logger,
		tx:            tx,
		persons:       persons,
		projects:      projects,
		participation: participations,
		notifier:      notifier,
	}
}

// RegisterParticipation enrolls a person in a project.
//
// Every failure is an *errs.Error: KindNotFound for an unknown person or
// project, KindInvalidState for a pourcentage out of bounds or exceeding the
// person's remaining share, KindConflict when the person is already
// enrolled, KindUnexpected otherwise. Nothing is written on failure.
func (s *ParticipationService) RegisterParticipation(ctx context.Context, input participation.RegisterParticipationInput) (*participation.RegisteredParticipation, error) {
	if input.Pourcentage <= 0 || input.Pourcentage > MaxPourcentage {
		return nil, errs.InvalidState("le pourcentage doit être compris entre 0 (exclu) et %g", MaxPourcentage)
	}

	var registered participation.RegisteredParticipation

	err := s.tx.Execute(ctx, func(ctx context.Context) error {
		// Locks the person row so concurrent registrations for the same
		// person see each other's totals.
		person, err := s.persons.GetPersonForUpdate(ctx, input.Matricule)
		if err != nil {
			if sqlerr.IsNoRows(err) {
				return errs.NotFound("la personne de matricule %d n'existe pas", input.Matricule)
			}
			return errs.Unexpected(err, "recherche de la personne %d", input.Matricule)
		}

		project, err := s.projects.GetProjectForShare(ctx, input.CodeProjet)
		if err != nil {
			if sqlerr.IsNoRows(err) {
				return errs.NotFound("le projet de code %d n'existe pas", input.CodeProjet)
			}
			return errs.Unexpected(err, "recherche du projet %d", input.CodeProjet)
		}

		total, err := s.participation.SumPourcentageByPerson(ctx, input.Matricule)
		if err != nil {
			return errs.Unexpected(err, "calcul de la participation de la personne %d", input.Matricule)
		}

		if total+input.Pourcentage > MaxPourcentage+pourcentageTolerance {
			return errs.InvalidState(
				"la personne %d participe déjà à %s%%, impossible d'ajouter %s%%",
				input.Matricule, formatPourcentage(total), formatPourcentage(input.Pourcentage),
			)
		}

		created, err := s.participation.CreateParticipation(ctx, input)
		if err != nil {
			return classifyInsertError(err, input)
		}

		registered = participation.RegisteredParticipation{
			Participation: created,
			Person:        person,
			Project:       project,
		}
		return nil
	})
	if err != nil {
		var domainErr *errs.Error
		if !errors.As(err, &domainErr) {
			err = errs.Unexpected(err, "enregistrement de la participation")
		}
		return nil, err
	}

	s.notify(ctx, &registered, input.Role)

	return &registered, nil
}

// classifyInsertError reports every constraint violation as a conflict.
// Person and project rows are locked beforehand, so in practice only the
// (matricule, code_projet) unique constraint fires.
func classifyInsertError(err error, input participation.RegisterParticipationInput) error {
	dbErr := sqlerr.AsError(err)
	if dbErr == nil {
		return errs.Unexpected(err, "insertion de la participation")
	}

	if sqlerr.IsIntegrityViolation(dbErr) {
		return errs.Conflict(dbErr, "la personne %d est déjà inscrite au projet %d", input.Matricule, input.CodeProjet)
	}

	return errs.Unexpected(dbErr, "insertion de la participation")
}

// notify enqueues the confirmation email. Failures are only logged: the
// participation is already committed.
func (s *ParticipationService) notify(ctx context.Context, registered *participation.RegisteredParticipation, role string) {
	if s.notifier == nil || registered.Person.Email == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()

	err := s.notifier.EnqueueParticipationRegistered(ctx, job.ParticipationRegisteredPayload{
		To:          registered.Person.Email,
		Prenom:      registered.Person.Prenom,
		CodeProjet:  registered.Project.Code,
		NomProjet:   registered.Project.Nom,
		Role:        role,
		Pourcentage: registered.Participation.Pourcentage,
	})
	if err != nil {
		s.logger.Warn().
			Err(err).
			Int64("matricule", registered.Person.Matricule).
			Int64("code_projet", registered.Project.Code).
			Msg("failed to enqueue participation notification")
	}
}
