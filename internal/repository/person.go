package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/deppfellow/gestion-projet/internal/database"
	"github.com/deppfellow/gestion-projet/internal/model/participation"
	"github.com/deppfellow/gestion-projet/internal/server"
)

type PersonRepository struct {
	server *server.Server
}

func NewPersonRepository(s *server.Server) *PersonRepository {
	return &PersonRepository{server: s}
}

// GetPersonForUpdate loads a person and locks its row until the end of the
// current transaction. Returns pgx.ErrNoRows when the matricule is unknown.
func (r *PersonRepository) GetPersonForUpdate(ctx context.Context, matricule int64) (*participation.Person, error) {
	query, args, err := personForUpdateQuery(matricule).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sql: %w", err)
	}

	var (
		person participation.Person
		email  *string
	)
	err = database.Conn(ctx, r.server.DB.Pool).
		QueryRow(ctx, query, args...).
		Scan(&person.Matricule, &person.Nom, &person.Prenom, &email)
	if err != nil {
		return nil, fmt.Errorf("get person %d: %w", matricule, err)
	}

	if email != nil {
		person.Email = *email
	}

	return &person, nil
}

func personForUpdateQuery(matricule int64) sq.SelectBuilder {
	return psql.
		Select("matricule", "nom", "prenom", "email").
		From("persons").
		Where(sq.Eq{"matricule": matricule}).
		Suffix("FOR UPDATE")
}
