package app

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/intervalrain/chatbot-api/internal/auth"
	"github.com/intervalrain/chatbot-api/internal/config"
	"github.com/intervalrain/chatbot-api/internal/observability"
	"github.com/intervalrain/chatbot-api/internal/services"
	"github.com/intervalrain/chatbot-api/internal/store"
)

type App struct {
	Users  *store.UserStore
	Tokens *auth.TokenService
	Server *Server
	Logger *slog.Logger
}

func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	users := store.NewUserStore()
	tokens := auth.NewTokenService(cfg.JwtSecret, cfg.JwtIssuer, cfg.JwtAudience, cfg.JwtExpiryMinutes)

	seed := cfg.DocSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	chat := services.NewChatService()
	documents := services.NewDocumentService(seed)
	provider := services.NewDocumentProvider()
	metrics := observability.NewMetrics()

	server, err := NewServer(cfg, users, tokens, chat, documents, provider, metrics, logger)
	if err != nil {
		return nil, err
	}

	return &App{Users: users, Tokens: tokens, Server: server, Logger: logger}, nil
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (a *App) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return a.Server.Start()
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return a.Server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
