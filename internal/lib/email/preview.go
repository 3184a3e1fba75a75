package email

// PreviewData holds sample data per template for local previews.
var PreviewData = map[Template]any{
	TemplateParticipationRegistered: ParticipationRegisteredData{
		Prenom:      "Camille",
		NomProjet:   "Refonte du portail",
		CodeProjet:  7,
		Role:        "développeuse",
		Pourcentage: 50,
	},
}
