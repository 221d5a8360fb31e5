package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/intervalrain/chatbot-api/internal/auth"
	"github.com/intervalrain/chatbot-api/internal/store"
)

type AuthHandler struct {
	users        *store.UserStore
	tokens       *auth.TokenService
	passwordHash []byte
	logger       *slog.Logger
}

// NewAuthHandler hashes the shared demo password once at construction so
// login compares against a bcrypt hash rather than the plaintext.
func NewAuthHandler(users *store.UserStore, tokens *auth.TokenService, password string, logger *slog.Logger) (*AuthHandler, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &AuthHandler{users: users, tokens: tokens, passwordHash: hash, logger: logger}, nil
}

type loginRequest struct {
	UserName string `json:"userName"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// Login exchanges a username/password pair for a signed bearer token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if req.UserName == "" || req.Password == "" {
		http.Error(w, "userName and password are required", http.StatusBadRequest)
		return
	}

	user, ok := h.users.GetUserByID(req.UserName)
	if !ok || bcrypt.CompareHashAndPassword(h.passwordHash, []byte(req.Password)) != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := h.tokens.IssueToken(user)
	if err != nil {
		h.logger.Error("issue token failed", "user_id", user.UserID, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(tokenResponse{Token: token})
}
