package participation

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Fixed client messages of the registration endpoint.
const (
	MessageAlreadyRegistered = "cette personne est déjà inscrite dans ce projet"
	MessageUnexpectedPrefix  = "une erreur inattendu est survenue : "
)

// CreateParticipationRequest is the body of POST /api/gestion/participation.
//
// TauxParticipation is accepted for compatibility with existing clients but
// is not used by the registration.
type CreateParticipationRequest struct {
	Matricule         int64   `json:"matricule" validate:"required"`
	CodeProjet        int64   `json:"codeProjet" validate:"required"`
	Role              string  `json:"role" validate:"required"`
	Pourcentage       float64 `json:"pourcentage"`
	TauxParticipation float64 `json:"tauxParticipation"`
}

func (r *CreateParticipationRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

func (r *CreateParticipationRequest) ToInput() RegisterParticipationInput {
	return RegisterParticipationInput{
		Matricule:   r.Matricule,
		CodeProjet:  r.CodeProjet,
		Role:        r.Role,
		Pourcentage: r.Pourcentage,
	}
}

type ParticipationResponse struct {
	ID          int64     `json:"id"`
	Matricule   int64     `json:"matricule"`
	CodeProjet  int64     `json:"codeProjet"`
	Role        string    `json:"role"`
	Pourcentage float64   `json:"pourcentage"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func NewParticipationResponse(p *Participation) *ParticipationResponse {
	return &ParticipationResponse{
		ID:          p.ID,
		Matricule:   p.Matricule,
		CodeProjet:  p.CodeProjet,
		Role:        p.Role,
		Pourcentage: p.Pourcentage,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
