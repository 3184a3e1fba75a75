// Package job runs background work on Asynq, a Redis-backed queue.
//
// The HTTP side enqueues tasks through JobService.Client; the worker
// server started by JobService.Start consumes them.
package job

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/deppfellow/gestion-projet/internal/config"
	"github.com/deppfellow/gestion-projet/internal/lib/email"
)

// Queue names, highest priority first.
const (
	QueueCritical = "critical"
	QueueDefault  = "default"
	QueueLow      = "low"
)

// ParticipationMailer sends the notification emails job handlers produce.
type ParticipationMailer interface {
	SendParticipationRegisteredEmail(ctx context.Context, to string, data email.ParticipationRegisteredData) error
}

type JobService struct {
	Client *asynq.Client

	server *asynq.Server
	logger *zerolog.Logger
	mailer ParticipationMailer
}

func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisAddr := cfg.Redis.Address

	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr: redisAddr,
	})

	server := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddr},
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				QueueCritical: 6,
				QueueDefault:  3,
				QueueLow:      1,
			},
		},
	)

	return &JobService{
		Client: client,
		server: server,
		logger: logger,
	}
}

// InitHandlers sets the dependencies task handlers rely on.
func (j *JobService) InitHandlers(cfg *config.Config, logger *zerolog.Logger) {
	if cfg.Integration.ResendAPIKey == "" {
		logger.Warn().Msg("resend api key not provided, participation emails are only logged")
		j.mailer = logMailer{logger: logger}
		return
	}
	j.mailer = email.NewClient(cfg, logger)
}

// Mux routes task types to their handlers.
func (j *JobService) Mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskParticipationRegistered, j.handleParticipationRegisteredTask)
	return mux
}

// Start runs the worker server in the background.
func (j *JobService) Start() error {
	j.logger.Info().Msg("starting background job server")

	return j.server.Start(j.Mux())
}

func (j *JobService) Stop() {
	j.logger.Info().Msg("stopping background job server")
	j.server.Shutdown()
	if err := j.Client.Close(); err != nil {
		j.logger.Error().Err(err).Msg("failed to close job client")
	}
}
