package app

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/intervalrain/chatbot-api/internal/api/handlers"
	appMiddleware "github.com/intervalrain/chatbot-api/internal/api/middlewares"
	"github.com/intervalrain/chatbot-api/internal/auth"
	"github.com/intervalrain/chatbot-api/internal/config"
	"github.com/intervalrain/chatbot-api/internal/observability"
	"github.com/intervalrain/chatbot-api/internal/services"
	"github.com/intervalrain/chatbot-api/internal/store"
)

// Server wraps the HTTP server instance and its handlers.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer builds and wires all routes.
func NewServer(cfg *config.Config, users *store.UserStore, tokens *auth.TokenService, chat *services.ChatService, documents *services.DocumentService, provider *services.DocumentProvider, metrics *observability.Metrics, logger *slog.Logger) (*Server, error) {
	authHandler, err := handlers.NewAuthHandler(users, tokens, cfg.AuthPassword, logger)
	if err != nil {
		return nil, err
	}
	chatBotHandler := handlers.NewChatBotHandler(chat, time.Duration(cfg.StreamDelayMs)*time.Millisecond, logger)
	docHandler := handlers.NewDocumentHandler(documents, provider)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8888"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Handle("/metrics", metrics.Handler())

	// Serve the single-page client from the web directory
	fileServer := http.FileServer(http.Dir("./web"))
	r.Handle("/*", fileServer)

	// API routes
	r.Route("/api", func(api chi.Router) {
		// public endpoints
		api.Post("/Auth/login", authHandler.Login)

		// protected endpoints
		api.Group(func(protected chi.Router) {
			protected.Use(appMiddleware.JWTMiddleware(tokens))
			protected.Post("/ChatBot/chat", chatBotHandler.Chat)
			protected.Post("/ChatBot/completions", chatBotHandler.Completions)
			protected.Get("/Document/getDocuments", docHandler.GetDocuments)
			protected.Get("/Document/getAuthorizedDocuments", docHandler.GetAuthorizedDocuments)
		})
	})

	httpSrv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	return &Server{httpServer: httpSrv, logger: logger}, nil
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	s.logger.Info("HTTP server listening", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}
