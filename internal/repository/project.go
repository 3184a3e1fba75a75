package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/deppfellow/gestion-projet/internal/database"
	"github.com/deppfellow/gestion-projet/internal/model/participation"
	"github.com/deppfellow/gestion-projet/internal/server"
)

type ProjectRepository struct {
	server *server.Server
}

func NewProjectRepository(s *server.Server) *ProjectRepository {
	return &ProjectRepository{server: s}
}

// GetProjectForShare loads a project and keeps it from being deleted until
// the end of the current transaction. Returns pgx.ErrNoRows when the code
// is unknown.
func (r *ProjectRepository) GetProjectForShare(ctx context.Context, code int64) (*participation.Project, error) {
	query, args, err := projectForShareQuery(code).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sql: %w", err)
	}

	var project participation.Project
	err = database.Conn(ctx, r.server.DB.Pool).
		QueryRow(ctx, query, args...).
		Scan(&project.Code, &project.Nom)
	if err != nil {
		return nil, fmt.Errorf("get project %d: %w", code, err)
	}

	return &project, nil
}

func projectForShareQuery(code int64) sq.SelectBuilder {
	return psql.
		Select("code", "nom").
		From("projects").
		Where(sq.Eq{"code": code}).
		Suffix("FOR SHARE")
}
