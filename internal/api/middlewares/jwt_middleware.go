package middleware

import (
	"context"
	"net/http"

	"github.com/intervalrain/chatbot-api/internal/auth"
	"github.com/intervalrain/chatbot-api/internal/models"
)

type contextKey struct{}

var currentUserKey contextKey

// JWTMiddleware validates the Authorization header and attaches the current
// user to the request context. Any validation failure, including a token
// missing one of the single-valued claims, answers 401 without detail.
func JWTMiddleware(tokens *auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := tokens.ExtractCurrentUser(r.Header.Get("Authorization"))
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithCurrentUser(r.Context(), user)))
		})
	}
}

// WithCurrentUser stores the validated user in the context.
func WithCurrentUser(ctx context.Context, user *models.CurrentUser) context.Context {
	return context.WithValue(ctx, currentUserKey, user)
}

// CurrentUserFrom returns the validated user attached by JWTMiddleware.
func CurrentUserFrom(ctx context.Context) (*models.CurrentUser, bool) {
	user, ok := ctx.Value(currentUserKey).(*models.CurrentUser)
	return user, ok
}
