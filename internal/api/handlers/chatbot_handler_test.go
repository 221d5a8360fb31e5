package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	middleware "github.com/intervalrain/chatbot-api/internal/api/middlewares"
	"github.com/intervalrain/chatbot-api/internal/models"
	"github.com/intervalrain/chatbot-api/internal/services"
)

func currentUser() *models.CurrentUser {
	return &models.CurrentUser{
		UserID:  "00053997",
		EngName: "Rain Hu",
		Roles:   map[string]struct{}{"Admin": {}},
	}
}

func newChatBotHandler() *ChatBotHandler {
	return NewChatBotHandler(services.NewChatService(), 0, testLogger())
}

// authedRequest builds a request carrying a validated current user, as the
// JWT middleware would.
func authedRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	return req.WithContext(middleware.WithCurrentUser(req.Context(), currentUser()))
}

func TestChat_Success(t *testing.T) {
	h := newChatBotHandler()

	w := httptest.NewRecorder()
	h.Chat(w, authedRequest(http.MethodPost, "/api/ChatBot/chat", `{"userPrompt":"hello","topK":5}`))

	require.Equal(t, http.StatusOK, w.Code)
	var resp chatResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "Response to hello", resp.Reply)
}

func TestChat_DefaultTopK(t *testing.T) {
	h := newChatBotHandler()

	w := httptest.NewRecorder()
	h.Chat(w, authedRequest(http.MethodPost, "/api/ChatBot/chat", `{"userPrompt":"hello"}`))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestChat_TopKBounds(t *testing.T) {
	h := newChatBotHandler()

	cases := []struct {
		topK int
		want int
	}{
		{0, http.StatusBadRequest},
		{1, http.StatusOK},
		{50, http.StatusOK},
		{51, http.StatusBadRequest},
		{-3, http.StatusBadRequest},
	}
	for _, tc := range cases {
		body := fmt.Sprintf(`{"userPrompt":"hello","topK":%d}`, tc.topK)
		w := httptest.NewRecorder()
		h.Chat(w, authedRequest(http.MethodPost, "/api/ChatBot/chat", body))
		assert.Equal(t, tc.want, w.Code, "topK=%d", tc.topK)
	}
}

func TestChat_MissingPrompt(t *testing.T) {
	h := newChatBotHandler()

	for _, body := range []string{`{}`, `{"userPrompt":"   "}`, `{"userPrompt":""}`} {
		w := httptest.NewRecorder()
		h.Chat(w, authedRequest(http.MethodPost, "/api/ChatBot/chat", body))
		assert.Equal(t, http.StatusBadRequest, w.Code, "body %s", body)
	}
}

func TestChat_NoCurrentUser(t *testing.T) {
	h := newChatBotHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/ChatBot/chat", strings.NewReader(`{"userPrompt":"hello"}`))
	w := httptest.NewRecorder()
	h.Chat(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCompletions_Stream(t *testing.T) {
	h := newChatBotHandler()

	body := `{"model":"gpt-3.5-turbo","messages":[{"role":"user","content":"hi"}],"stream":true}`
	w := httptest.NewRecorder()
	h.Completions(w, authedRequest(http.MethodPost, "/api/ChatBot/completions", body))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))

	lines := strings.Split(strings.TrimSuffix(w.Body.String(), "\n\n"), "\n\n")
	words := strings.Fields(services.NewChatService().CompletionText())
	require.Len(t, lines, len(words)+1)
	assert.Equal(t, "data: [DONE]", lines[len(lines)-1])

	var rebuilt strings.Builder
	for _, line := range lines[:len(lines)-1] {
		payload := strings.TrimPrefix(line, "data: ")
		var c struct {
			Choices []struct {
				Delta struct {
					Content string `json:"content"`
				} `json:"delta"`
			} `json:"choices"`
		}
		require.NoError(t, json.Unmarshal([]byte(payload), &c))
		require.Len(t, c.Choices, 1)
		rebuilt.WriteString(c.Choices[0].Delta.Content)
	}
	assert.Equal(t, strings.Join(words, " ")+" ", rebuilt.String())
}

func TestCompletions_NonStream(t *testing.T) {
	h := newChatBotHandler()

	body := `{"model":"gpt-3.5-turbo","messages":[{"role":"user","content":"hi"}],"stream":false}`
	w := httptest.NewRecorder()
	h.Completions(w, authedRequest(http.MethodPost, "/api/ChatBot/completions", body))

	require.Equal(t, http.StatusOK, w.Code)

	var resp completionResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Len(t, resp.Choices, 1)
	assert.Equal(t, "assistant", resp.Choices[0].Message.Role)
	assert.NotEmpty(t, resp.Choices[0].Message.Content)
}

func TestCompletions_Validation(t *testing.T) {
	h := newChatBotHandler()

	cases := []string{
		`{"messages":[{"role":"user","content":"hi"}],"stream":true}`,
		`{"model":"gpt-3.5-turbo","messages":[],"stream":true}`,
		`{`,
	}
	for _, body := range cases {
		w := httptest.NewRecorder()
		h.Completions(w, authedRequest(http.MethodPost, "/api/ChatBot/completions", body))
		assert.Equal(t, http.StatusBadRequest, w.Code, "body %s", body)
	}
}
