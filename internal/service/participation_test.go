package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/gestion-projet/internal/errs"
	"github.com/deppfellow/gestion-projet/internal/lib/job"
	"github.com/deppfellow/gestion-projet/internal/model"
	"github.com/deppfellow/gestion-projet/internal/model/participation"
)

type fakeTx struct {
	calls      int
	rolledBack bool
}

func (f *fakeTx) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	err := fn(ctx)
	f.rolledBack = err != nil
	return err
}

type fakeStore struct {
	persons   map[int64]*participation.Person
	projects  map[int64]*participation.Project
	total     float64
	personErr error
	sumErr    error
	createErr error
	created   []participation.RegisterParticipationInput
}

func (f *fakeStore) GetPersonForUpdate(_ context.Context, matricule int64) (*participation.Person, error) {
	if f.personErr != nil {
		return nil, f.personErr
	}
	p, ok := f.persons[matricule]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return p, nil
}

func (f *fakeStore) GetProjectForShare(_ context.Context, code int64) (*participation.Project, error) {
	p, ok := f.projects[code]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return p, nil
}

func (f *fakeStore) SumPourcentageByPerson(_ context.Context, _ int64) (float64, error) {
	return f.total, f.sumErr
}

func (f *fakeStore) CreateParticipation(_ context.Context, input participation.RegisterParticipationInput) (*participation.Participation, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, input)
	now := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	return &participation.Participation{
		ID:          int64(len(f.created)),
		Matricule:   input.Matricule,
		CodeProjet:  input.CodeProjet,
		Role:        input.Role,
		Pourcentage: input.Pourcentage,
		Timestamps:  model.Timestamps{CreatedAt: now, UpdatedAt: now},
	}, nil
}

type fakeNotifier struct {
	payloads    []job.ParticipationRegisteredPayload
	ctxErr      error
	deadline    time.Time
	hasDeadline bool
	err         error
}

func (f *fakeNotifier) EnqueueParticipationRegistered(ctx context.Context, payload job.ParticipationRegisteredPayload) error {
	f.payloads = append(f.payloads, payload)
	f.ctxErr = ctx.Err()
	f.deadline, f.hasDeadline = ctx.Deadline()
	return f.err
}

func newTestService(store *fakeStore, notifier *fakeNotifier) (*ParticipationService, *fakeTx) {
	logger := zerolog.Nop()
	tx := &fakeTx{}
	return NewParticipationService(&logger, tx, store, store, store, notifier), tx
}

func newStore() *fakeStore {
	return &fakeStore{
		persons: map[int64]*participation.Person{
			12: {Matricule: 12, Nom: "Martin", Prenom: "Alex", Email: "alex@example.com"},
			13: {Matricule: 13, Nom: "Durand", Prenom: "Sam"},
		},
		projects: map[int64]*participation.Project{
			3: {Code: 3, Nom: "Portail"},
		},
	}
}

func input(matricule, code int64, pourcentage float64) participation.RegisterParticipationInput {
	return participation.RegisterParticipationInput{Matricule: matricule, CodeProjet: code, Role: "dev", Pourcentage: pourcentage}
}

func TestRegisterParticipation_Success(t *testing.T) {
	store := newStore()
	store.total = 60
	notifier := &fakeNotifier{}
	svc, tx := newTestService(store, notifier)

	registered, err := svc.RegisterParticipation(context.Background(), input(12, 3, 40))
	require.NoError(t, err)

	assert.Equal(t, int64(12), registered.Participation.Matricule)
	assert.Equal(t, "dev", registered.Participation.Role)
	assert.Equal(t, 40.0, registered.Participation.Pourcentage)
	assert.Equal(t, "Portail", registered.Project.Nom)
	assert.Equal(t, 1, tx.calls)
	assert.False(t, tx.rolledBack)

	require.Len(t, notifier.payloads, 1)
	assert.Equal(t, job.ParticipationRegisteredPayload{
		To: "alex@example.com", Prenom: "Alex", CodeProjet: 3, NomProjet: "Portail", Role: "dev", Pourcentage: 40,
	}, notifier.payloads[0])
}

func TestRegisterParticipation_NoEmailSkipsNotification(t *testing.T) {
	notifier := &fakeNotifier{}
	svc, _ := newTestService(newStore(), notifier)

	_, err := svc.RegisterParticipation(context.Background(), input(13, 3, 10))
	require.NoError(t, err)
	assert.Empty(t, notifier.payloads)
}

func TestRegisterParticipation_NotificationFailureIsIgnored(t *testing.T) {
	svc, _ := newTestService(newStore(), &fakeNotifier{err: errors.New("redis down")})

	registered, err := svc.RegisterParticipation(context.Background(), input(12, 3, 10))
	require.NoError(t, err)
	assert.NotNil(t, registered)
}

func TestRegisterParticipation_Failures(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(*fakeStore)
		input   participation.RegisterParticipationInput
		kind    errs.Kind
		message string
	}{
		{
			name:    "zero pourcentage",
			input:   input(12, 3, 0),
			kind:    errs.KindInvalidState,
			message: "le pourcentage doit être compris entre 0 (exclu) et 100",
		},
		{
			name:  "pourcentage above 100",
			input: input(12, 3, 100.5),
			kind:  errs.KindInvalidState,
		},
		{
			name:    "unknown person",
			input:   input(99, 3, 10),
			kind:    errs.KindNotFound,
			message: "la personne de matricule 99 n'existe pas",
		},
		{
			name:    "unknown project",
			input:   input(12, 99, 10),
			kind:    errs.KindNotFound,
			message: "le projet de code 99 n'existe pas",
		},
		{
			name:    "total above 100",
			setup:   func(s *fakeStore) { s.total = 80 },
			input:   input(12, 3, 30),
			kind:    errs.KindInvalidState,
			message: "la personne 12 participe déjà à 80,00%, impossible d'ajouter 30,00%",
		},
		{
			name:  "already registered",
			setup: func(s *fakeStore) { s.createErr = &pgconn.PgError{Code: "23505"} },
			input: input(12, 3, 10),
			kind:  errs.KindConflict,
		},
		{
			name:  "foreign key violation",
			setup: func(s *fakeStore) { s.createErr = &pgconn.PgError{Code: "23503"} },
			input: input(12, 3, 10),
			kind:  errs.KindConflict,
		},
		{
			name:  "check violation",
			setup: func(s *fakeStore) { s.createErr = &pgconn.PgError{Code: "23514"} },
			input: input(12, 3, 10),
			kind:  errs.KindConflict,
		},
		{
			name:  "serialization failure",
			setup: func(s *fakeStore) { s.createErr = &pgconn.PgError{Code: "40001"} },
			input: input(12, 3, 10),
			kind:  errs.KindUnexpected,
		},
		{
			name:  "database failure",
			setup: func(s *fakeStore) { s.personErr = errors.New("connection reset") },
			input: input(12, 3, 10),
			kind:  errs.KindUnexpected,
		},
		{
			name:  "sum failure",
			setup: func(s *fakeStore) { s.sumErr = errors.New("timeout") },
			input: input(12, 3, 10),
			kind:  errs.KindUnexpected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newStore()
			if tt.setup != nil {
				tt.setup(store)
			}
			notifier := &fakeNotifier{}
			svc, _ := newTestService(store, notifier)

			registered, err := svc.RegisterParticipation(context.Background(), tt.input)
			require.Error(t, err)
			assert.Nil(t, registered)

			var domainErr *errs.Error
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, tt.kind, domainErr.Kind)
			if tt.message != "" {
				assert.Equal(t, tt.message, errs.MessageOf(err))
			}
			assert.Empty(t, store.created)
			assert.Empty(t, notifier.payloads)
		})
	}
}

func TestRegisterParticipation_TotalOfExactly100IsAccepted(t *testing.T) {
	store := newStore()
	store.total = 70
	svc, _ := newTestService(store, &fakeNotifier{})

	_, err := svc.RegisterParticipation(context.Background(), input(12, 3, 30))
	require.NoError(t, err)
	assert.Len(t, store.created, 1)
}

func TestRegisterParticipation_UnexpectedKeepsCause(t *testing.T) {
	store := newStore()
	store.personErr = errors.New("connection reset")
	svc, _ := newTestService(store, &fakeNotifier{})

	_, err := svc.RegisterParticipation(context.Background(), input(12, 3, 10))
	assert.ErrorContains(t, err, "connection reset")
}

func TestRegisterParticipation_DecimalSharesReachingExactly100(t *testing.T) {
	tests := []struct {
		name     string
		existing []float64
		add      float64
	}{
		{name: "0.2 + 83.9 + 15.9", existing: []float64{0.2, 83.9}, add: 15.9},
		{name: "0.1 + 0.2 + 99.7", existing: []float64{0.1, 0.2}, add: 99.7},
		{name: "33.3 + 33.3 + 33.4", existing: []float64{33.3, 33.3}, add: 33.4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newStore()
			for _, share := range tt.existing {
				store.total += share
			}
			svc, _ := newTestService(store, &fakeNotifier{})

			_, err := svc.RegisterParticipation(context.Background(), input(12, 3, tt.add))
			require.NoError(t, err)
			assert.Len(t, store.created, 1)
		})
	}
}

func TestRegisterParticipation_DecimalSharesAbove100(t *testing.T) {
	store := newStore()
	a, b := 0.2, 83.9
	store.total = a + b
	svc, _ := newTestService(store, &fakeNotifier{})

	_, err := svc.RegisterParticipation(context.Background(), input(12, 3, 15.91))

	require.Error(t, err)
	assert.Equal(t, errs.KindInvalidState, errs.KindOf(err))
	assert.Equal(t, "la personne 12 participe déjà à 84,10%, impossible d'ajouter 15,91%", errs.MessageOf(err))
	assert.Empty(t, store.created)
}

func TestRegisterParticipation_UnexpectedInsertNamesConstraint(t *testing.T) {
	store := newStore()
	store.createErr = &pgconn.PgError{Severity: "ERROR", Code: "40001", Message: "could not serialize access"}
	svc, _ := newTestService(store, &fakeNotifier{})

	_, err := svc.RegisterParticipation(context.Background(), input(12, 3, 10))

	require.Error(t, err)
	assert.Equal(t, errs.KindUnexpected, errs.KindOf(err))
	assert.Equal(t, "insertion de la participation: ERROR serialization_failure: could not serialize access (SQLSTATE 40001)", err.Error())
}

func TestRegisterParticipation_NotificationHasItsOwnDeadline(t *testing.T) {
	notifier := &fakeNotifier{}
	svc, _ := newTestService(newStore(), notifier)

	registered, err := svc.RegisterParticipation(context.Background(), input(12, 3, 10))
	require.NoError(t, err)
	require.NotNil(t, registered)

	require.Len(t, notifier.payloads, 1)
	require.True(t, notifier.hasDeadline)
	assert.WithinDuration(t, time.Now().Add(notifyTimeout), notifier.deadline, notifyTimeout)
}

func TestRegisterParticipation_CanceledRequestStillNotifies(t *testing.T) {
	notifier := &fakeNotifier{}
	svc, _ := newTestService(newStore(), notifier)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.RegisterParticipation(ctx, input(12, 3, 10))
	require.NoError(t, err)

	require.Len(t, notifier.payloads, 1)
	assert.NoError(t, notifier.ctxErr)
}
