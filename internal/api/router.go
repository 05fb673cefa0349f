package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/tablekick/scoreboard/internal/api/handlers"
	"github.com/tablekick/scoreboard/internal/api/middleware"
	"github.com/tablekick/scoreboard/internal/config"
	"github.com/tablekick/scoreboard/internal/events"
	"github.com/tablekick/scoreboard/internal/repository"
	"github.com/tablekick/scoreboard/internal/service"
)

func NewRouter(services *service.Services, hub *events.Hub, repos *repository.Repositories, cfg *config.Config, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.CORS)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	matchHandler := handlers.NewMatchHandler(services.Ledger, hub, logger)
	historyHandler := handlers.NewHistoryHandler(services.History, logger)
	playerHandler := handlers.NewPlayerHandler(repos.Player, logger)
	wsHandler := handlers.NewWebSocketHandler(hub, cfg.JWTSecret, logger)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Match feed (token validated inside the handler, browsers cannot set
		// headers on websocket upgrades)
		r.Get("/ws", wsHandler.Handle)

		// Read views consumed by the dashboard
		r.Route("/players", func(r chi.Router) {
			r.Get("/", playerHandler.List)
			r.Get("/{playerId}", playerHandler.Get)
			r.Get("/{playerId}/matches", historyHandler.GetPlayerMatches)
			r.Get("/{playerId}/elo-history", historyHandler.GetPlayerEloHistory)
			r.Get("/{playerAId}/head-to-head/{playerBId}", historyHandler.GetHeadToHead)
		})

		// Writes require the authorization gate
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWTSecret, logger))
			r.Post("/matches", matchHandler.Submit)
		})
	})

	return r
}
