package services

import (
	"github.com/intervalrain/chatbot-api/internal/models"
)

// DocumentProvider holds the fixed catalog of authorized documents. Admins
// see every entry; other users only the "General" category.
type DocumentProvider struct {
	documents []models.Document
}

func NewDocumentProvider() *DocumentProvider {
	return &DocumentProvider{
		documents: []models.Document{
			{Name: "40LP", Category: "General", Content: "40LP content"},
			{Name: "22eHV", Category: "Customized", Content: "22eHV content"},
			{Name: "28eHV", Category: "Customized", Content: "28eHV content"},
			{Name: "28HPC+", Category: "General", Content: "28HPC+ content"},
			{Name: "28HLP", Category: "General", Content: "28HLP content"},
		},
	}
}

// GetDocuments returns the catalog entries visible to the user.
func (p *DocumentProvider) GetDocuments(user *models.CurrentUser) []models.Document {
	if user.IsAdmin() {
		out := make([]models.Document, len(p.documents))
		copy(out, p.documents)
		return out
	}

	var out []models.Document
	for _, doc := range p.documents {
		if doc.Category == "General" {
			out = append(out, doc)
		}
	}
	return out
}
