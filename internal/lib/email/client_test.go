package email

import (
	"context"
	"errors"
	"testing"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	requests []*resend.SendEmailRequest
	err      error
}

func (f *fakeSender) SendWithContext(_ context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error) {
	f.requests = append(f.requests, params)
	if f.err != nil {
		return nil, f.err
	}
	return &resend.SendEmailResponse{Id: "email-1"}, nil
}

func TestRender_ParticipationRegistered(t *testing.T) {
	html, err := Render(TemplateParticipationRegistered, PreviewData[TemplateParticipationRegistered])
	require.NoError(t, err)

	assert.Contains(t, html, "Bonjour Camille")
	assert.Contains(t, html, "Refonte du portail")
	assert.Contains(t, html, "50.00")
}

func TestRender_UnknownTemplate(t *testing.T) {
	_, err := Render(Template("missing"), nil)
	assert.Error(t, err)
}

func TestClient_SendParticipationRegisteredEmail(t *testing.T) {
	sender := &fakeSender{}
	logger := zerolog.Nop()
	client := NewClientWithSender(sender, "Gestion <noreply@example.com>", &logger)

	err := client.SendParticipationRegisteredEmail(context.Background(), "camille@example.com", ParticipationRegisteredData{
		Prenom:      "Camille",
		NomProjet:   "Portail",
		CodeProjet:  7,
		Role:        "cheffe",
		Pourcentage: 20,
	})
	require.NoError(t, err)

	require.Len(t, sender.requests, 1)
	assert.Equal(t, []string{"camille@example.com"}, sender.requests[0].To)
	assert.Equal(t, "Gestion <noreply@example.com>", sender.requests[0].From)
	assert.Equal(t, "Inscription au projet Portail", sender.requests[0].Subject)
	assert.Contains(t, sender.requests[0].Html, "cheffe")
}

func TestClient_SendEmailError(t *testing.T) {
	sender := &fakeSender{err: errors.New("rate limited")}
	logger := zerolog.Nop()
	client := NewClientWithSender(sender, "Gestion <noreply@example.com>", &logger)

	err := client.SendEmail(context.Background(), "a@example.com", "s", TemplateParticipationRegistered, PreviewData[TemplateParticipationRegistered])
	assert.ErrorContains(t, err, "rate limited")
}
