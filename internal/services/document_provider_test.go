package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intervalrain/chatbot-api/internal/models"
)

func adminUser() *models.CurrentUser {
	return &models.CurrentUser{
		UserID: "00012345",
		Roles:  map[string]struct{}{"Admin": {}},
	}
}

func plainUser() *models.CurrentUser {
	return &models.CurrentUser{
		UserID: "00023412",
		Roles:  map[string]struct{}{"User": {}},
	}
}

func TestGetDocuments_AdminSeesAll(t *testing.T) {
	p := NewDocumentProvider()

	docs := p.GetDocuments(adminUser())
	assert.Len(t, docs, 5)
}

func TestGetDocuments_NonAdminSeesGeneralOnly(t *testing.T) {
	p := NewDocumentProvider()

	docs := p.GetDocuments(plainUser())
	require.Len(t, docs, 3)
	for _, doc := range docs {
		assert.Equal(t, "General", doc.Category)
	}

	names := []string{docs[0].Name, docs[1].Name, docs[2].Name}
	assert.Equal(t, []string{"40LP", "28HPC+", "28HLP"}, names)
}
