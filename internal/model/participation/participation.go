package participation

import "github.com/deppfellow/gestion-projet/internal/model"

// Participation links a person to a project with a role and a percentage share.
type Participation struct {
	ID          int64   `db:"id"`
	Matricule   int64   `db:"matricule"`
	CodeProjet  int64   `db:"code_projet"`
	Role        string  `db:"role"`
	Pourcentage float64 `db:"pourcentage"`
	model.Timestamps
}

// Person is read by the registration to check it exists and to notify it.
type Person struct {
	Matricule int64  `db:"matricule"`
	Nom       string `db:"nom"`
	Prenom    string `db:"prenom"`
	Email     string `db:"email"`
}

type Project struct {
	Code int64  `db:"code"`
	Nom  string `db:"nom"`
}

// RegisterParticipationInput is what the registration needs. The
// participation rate of the request is not part of it.
type RegisterParticipationInput struct {
	Matricule   int64
	CodeProjet  int64
	Role        string
	Pourcentage float64
}

// RegisteredParticipation is the outcome of a successful registration.
type RegisteredParticipation struct {
	Participation *Participation
	Person        *Person
	Project       *Project
}
