package job

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/deppfellow/gestion-projet/internal/lib/email"
)

const (
	TaskParticipationRegistered = "participation:registered"
)

// ParticipationRegisteredPayload is stored in Redis as JSON.
type ParticipationRegisteredPayload struct {
	To          string  `json:"to"`
	Prenom      string  `json:"prenom"`
	CodeProjet  int64   `json:"code_projet"`
	NomProjet   string  `json:"nom_projet"`
	Role        string  `json:"role"`
	Pourcentage float64 `json:"pourcentage"`
}

func NewParticipationRegisteredTask(payload ParticipationRegisteredPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskParticipationRegistered,
		data,
		asynq.MaxRetry(3),
		asynq.Queue(QueueDefault),
		asynq.Timeout(30*time.Second),
	), nil
}

// EnqueueParticipationRegistered schedules the notification email.
func (j *JobService) EnqueueParticipationRegistered(ctx context.Context, payload ParticipationRegisteredPayload) error {
	task, err := NewParticipationRegisteredTask(payload)
	if err != nil {
		return fmt.Errorf("create participation registered task: %w", err)
	}

	info, err := j.Client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("enqueue participation registered task: %w", err)
	}

	j.logger.Debug().
		Str("task_id", info.ID).
		Str("queue", info.Queue).
		Msg("participation registered task enqueued")

	return nil
}

func (j *JobService) handleParticipationRegisteredTask(ctx context.Context, t *asynq.Task) error {
	var p ParticipationRegisteredPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal participation registered payload: %w", err)
	}

	j.logger.Info().
		Str("type", TaskParticipationRegistered).
		Int64("code_projet", p.CodeProjet).
		Msg("processing participation registered task")

	err := j.mailer.SendParticipationRegisteredEmail(ctx, p.To, email.ParticipationRegisteredData{
		Prenom:      p.Prenom,
		NomProjet:   p.NomProjet,
		CodeProjet:  p.CodeProjet,
		Role:        p.Role,
		Pourcentage: p.Pourcentage,
	})
	if err != nil {
		j.logger.Error().
			Str("type", TaskParticipationRegistered).
			Int64("code_projet", p.CodeProjet).
			Err(err).
			Msg("failed to send participation registered email")
		return err
	}

	return nil
}

// logMailer stands in for the email client when Resend is not configured.
type logMailer struct {
	logger *zerolog.Logger
}

func (m logMailer) SendParticipationRegisteredEmail(_ context.Context, to string, data email.ParticipationRegisteredData) error {
	m.logger.Info().
		Str("to", to).
		Int64("code_projet", data.CodeProjet).
		Str("role", data.Role).
		Msg("participation registered email skipped")
	return nil
}
