package handlers

import (
	"encoding/json"
	"net/http"

	middleware "github.com/intervalrain/chatbot-api/internal/api/middlewares"
	"github.com/intervalrain/chatbot-api/internal/models"
	"github.com/intervalrain/chatbot-api/internal/services"
)

type DocumentHandler struct {
	documents *services.DocumentService
	provider  *services.DocumentProvider
}

func NewDocumentHandler(documents *services.DocumentService, provider *services.DocumentProvider) *DocumentHandler {
	return &DocumentHandler{documents: documents, provider: provider}
}

// GetDocuments lists the generated DSM catalog for the current user.
func (h *DocumentHandler) GetDocuments(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUserFrom(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	docs := h.documents.GetDocuments(user.UserID)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(docs)
}

// GetAuthorizedDocuments lists the fixed catalog filtered by role.
func (h *DocumentHandler) GetAuthorizedDocuments(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUserFrom(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	docs := h.provider.GetDocuments(user)
	if docs == nil {
		docs = []models.Document{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(docs)
}
