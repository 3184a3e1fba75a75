package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/deppfellow/gestion-projet/internal/database"
	"github.com/deppfellow/gestion-projet/internal/model/participation"
	"github.com/deppfellow/gestion-projet/internal/server"
)

type ParticipationRepository struct {
	server *server.Server
}

func NewParticipationRepository(s *server.Server) *ParticipationRepository {
	return &ParticipationRepository{server: s}
}

// SumPourcentageByPerson returns the total share a person already commits
// across all projects, 0 when there is none.
func (r *ParticipationRepository) SumPourcentageByPerson(ctx context.Context, matricule int64) (float64, error) {
	query, args, err := sumPourcentageQuery(matricule).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build sql: %w", err)
	}

	var total float64
	if err := database.Conn(ctx, r.server.DB.Pool).QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum pourcentage of person %d: %w", matricule, err)
	}

	return total, nil
}

// CreateParticipation inserts a participation and returns it with the
// identity and timestamps assigned by the database. The driver error is
// returned untouched so callers can inspect constraint violations.
func (r *ParticipationRepository) CreateParticipation(ctx context.Context, input participation.RegisterParticipationInput) (*participation.Participation, error) {
	query, args, err := insertParticipationQuery(input).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sql: %w", err)
	}

	var p participation.Participation
	err = database.Conn(ctx, r.server.DB.Pool).
		QueryRow(ctx, query, args...).
		Scan(&p.ID, &p.Matricule, &p.CodeProjet, &p.Role, &p.Pourcentage, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert participation: %w", err)
	}

	return &p, nil
}

func sumPourcentageQuery(matricule int64) sq.SelectBuilder {
	return psql.
		Select("COALESCE(SUM(pourcentage), 0)").
		From("participations").
		Where(sq.Eq{"matricule": matricule})
}

func insertParticipationQuery(input participation.RegisterParticipationInput) sq.InsertBuilder {
	return psql.
		Insert("participations").
		Columns("matricule", "code_projet", "role", "pourcentage").
		Values(input.Matricule, input.CodeProjet, input.Role, input.Pourcentage).
		Suffix("RETURNING id, matricule, code_projet, role, pourcentage, created_at, updated_at")
}
