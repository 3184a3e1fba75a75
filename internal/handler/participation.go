package handler

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/gestion-projet/internal/errs"
	"github.com/deppfellow/gestion-projet/internal/metrics"
	"github.com/deppfellow/gestion-projet/internal/middleware"
	"github.com/deppfellow/gestion-projet/internal/model/participation"
	"github.com/deppfellow/gestion-projet/internal/server"
)

type participationRegistrar interface {
	RegisterParticipation(ctx context.Context, input participation.RegisterParticipationInput) (*participation.RegisteredParticipation, error)
}

type ParticipationHandler struct {
	Handler
	registrar participationRegistrar
}

func NewParticipationHandler(s *server.Server, registrar participationRegistrar) *ParticipationHandler {
	return &ParticipationHandler{
		Handler:   NewHandler(s),
		registrar: registrar,
	}
}

// RegisterParticipation handles POST /api/gestion/participation.
//
// A panic in the registration is answered like any unexpected failure.
func (h *ParticipationHandler) RegisterParticipation(c echo.Context, req *participation.CreateParticipationRequest) (res *participation.ParticipationResponse, err error) {
	defer func() {
		if r := recover(); r != nil {
			middleware.GetLogger(c).Error().
				Interface("panic", r).
				Bytes("stack", debug.Stack()).
				Msg("participation registration panicked")

			httpErr, outcome := registrationError(fmt.Errorf("%v", r))
			h.recordOutcome(outcome)
			res, err = nil, httpErr
		}
	}()

	if req.TauxParticipation != 0 {
		middleware.GetLogger(c).Debug().
			Float64("taux_participation", req.TauxParticipation).
			Msg("taux de participation ignored")
	}

	registered, err := h.registrar.RegisterParticipation(c.Request().Context(), req.ToInput())
	if err != nil {
		httpErr, outcome := registrationError(err)
		h.recordOutcome(outcome)
		return nil, httpErr
	}

	h.recordOutcome(metrics.OutcomeRegistered)

	return participation.NewParticipationResponse(registered.Participation), nil
}

func (h *ParticipationHandler) recordOutcome(outcome string) {
	if h.server.Metrics != nil {
		h.server.Metrics.RecordRegistration(outcome)
	}
}

// registrationError maps a registration failure to the response sent to
// the client and the metrics outcome.
func registrationError(err error) (*errs.HTTPError, string) {
	switch errs.KindOf(err) {
	case errs.KindNotFound:
		return errs.NewBadRequestError(errs.MessageOf(err), true, nil, nil, nil), metrics.OutcomeNotFound
	case errs.KindInvalidState:
		return errs.NewBadRequestError(errs.MessageOf(err), true, nil, nil, nil), metrics.OutcomeInvalidState
	case errs.KindConflict:
		return errs.NewBadRequestError(participation.MessageAlreadyRegistered, true, nil, nil, nil), metrics.OutcomeConflict
	default:
		return errs.NewInternalServerError().WithMessage(participation.MessageUnexpectedPrefix + err.Error()), metrics.OutcomeUnexpected
	}
}
