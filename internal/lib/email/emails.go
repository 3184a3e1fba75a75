package email

import (
	"context"
	"fmt"
)

// ParticipationRegisteredData feeds the participation_registered template.
type ParticipationRegisteredData struct {
	Prenom      string
	NomProjet   string
	CodeProjet  int64
	Role        string
	Pourcentage float64
}

// SendParticipationRegisteredEmail tells a person they joined a project.
func (c *Client) SendParticipationRegisteredEmail(ctx context.Context, to string, data ParticipationRegisteredData) error {
	return c.SendEmail(
		ctx,
		to,
		fmt.Sprintf("Inscription au projet %s", data.NomProjet),
		TemplateParticipationRegistered,
		data,
	)
}
