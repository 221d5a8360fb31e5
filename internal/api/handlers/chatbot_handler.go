package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	middleware "github.com/intervalrain/chatbot-api/internal/api/middlewares"
	"github.com/intervalrain/chatbot-api/internal/services"
	"github.com/intervalrain/chatbot-api/internal/streaming"
)

const defaultTopK = 5

type ChatBotHandler struct {
	chat        *services.ChatService
	streamDelay time.Duration
	logger      *slog.Logger
}

func NewChatBotHandler(chat *services.ChatService, streamDelay time.Duration, logger *slog.Logger) *ChatBotHandler {
	return &ChatBotHandler{chat: chat, streamDelay: streamDelay, logger: logger}
}

type chatRequest struct {
	UserPrompt     string              `json:"userPrompt"`
	SystemPrompt   string              `json:"systemPrompt"`
	MetaDataFilter map[string][]string `json:"metaDataFilter"`
	TopK           *int                `json:"topK"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

// Chat forwards a single prompt to the chat backend and returns the reply.
func (h *ChatBotHandler) Chat(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUserFrom(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.UserPrompt) == "" {
		http.Error(w, "userPrompt is required", http.StatusBadRequest)
		return
	}

	// An omitted topK keeps the contract default; an explicit value must be
	// inside the accepted range.
	topK := defaultTopK
	if req.TopK != nil {
		topK = *req.TopK
	}
	if topK < 1 || topK > 50 {
		http.Error(w, "topK must be between 1 and 50", http.StatusBadRequest)
		return
	}

	reply, err := h.chat.ProcessChat(r.Context(), req.UserPrompt, req.SystemPrompt, topK, req.MetaDataFilter)
	if err != nil {
		h.logger.Error("chat failed", "user_id", user.UserID, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(chatResponse{Reply: reply})
}

type completionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model    string              `json:"model"`
	Messages []completionMessage `json:"messages"`
	Stream   bool                `json:"stream"`
}

type completionChoice struct {
	Message completionMessage `json:"message"`
}

type completionResponse struct {
	Model   string             `json:"model"`
	Choices []completionChoice `json:"choices"`
}

// Completions answers in the OpenAI completion shape. With stream set it
// emits the canned document word by word over the event-stream protocol,
// otherwise it returns the whole text in one JSON response.
func (h *ChatBotHandler) Completions(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUserFrom(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req completionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if req.Model == "" {
		http.Error(w, "model is required", http.StatusBadRequest)
		return
	}
	if len(req.Messages) == 0 {
		http.Error(w, "messages is required", http.StatusBadRequest)
		return
	}

	text := h.chat.CompletionText()

	if !req.Stream {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(completionResponse{
			Model:   req.Model,
			Choices: []completionChoice{{Message: completionMessage{Role: "assistant", Content: text}}},
		})
		return
	}

	enc, err := streaming.NewEncoder(w)
	if err != nil {
		h.logger.Error("streaming unsupported", "user_id", user.UserID, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)

	if err := streaming.Stream(r.Context(), enc, text, h.streamDelay); err != nil {
		// Disconnects surface as context cancellation; nothing to send back.
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			h.logger.Debug("stream cancelled", "user_id", user.UserID)
			return
		}
		h.logger.Error("stream failed", "user_id", user.UserID, "error", err)
	}
}
