package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/gestion-projet/internal/model/participation"
)

func TestPersonForUpdateQuery(t *testing.T) {
	query, args, err := personForUpdateQuery(12).ToSql()
	require.NoError(t, err)

	assert.Equal(t, "SELECT matricule, nom, prenom, email FROM persons WHERE matricule = $1 FOR UPDATE", query)
	assert.Equal(t, []any{int64(12)}, args)
}

func TestProjectForShareQuery(t *testing.T) {
	query, args, err := projectForShareQuery(3).ToSql()
	require.NoError(t, err)

	assert.Equal(t, "SELECT code, nom FROM projects WHERE code = $1 FOR SHARE", query)
	assert.Equal(t, []any{int64(3)}, args)
}

func TestSumPourcentageQuery(t *testing.T) {
	query, args, err := sumPourcentageQuery(12).ToSql()
	require.NoError(t, err)

	assert.Equal(t, "SELECT COALESCE(SUM(pourcentage), 0) FROM participations WHERE matricule = $1", query)
	assert.Equal(t, []any{int64(12)}, args)
}

func TestInsertParticipationQuery(t *testing.T) {
	query, args, err := insertParticipationQuery(participation.RegisterParticipationInput{
		Matricule:   12,
		CodeProjet:  3,
		Role:        "développeur",
		Pourcentage: 40,
	}).ToSql()
	require.NoError(t, err)

	assert.Equal(t,
		"INSERT INTO participations (matricule,code_projet,role,pourcentage) VALUES ($1,$2,$3,$4) "+
			"RETURNING id, matricule, code_projet, role, pourcentage, created_at, updated_at",
		query,
	)
	assert.Equal(t, []any{int64(12), int64(3), "développeur", 40.0}, args)
}
