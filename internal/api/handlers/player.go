package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/tablekick/scoreboard/internal/domain"
	"github.com/tablekick/scoreboard/internal/repository"
)

// PlayerHandler serves read-only directory views for the dashboard. Creating
// and renaming players is owned by the external directory service.
type PlayerHandler struct {
	playerRepo repository.PlayerRepository
	logger     zerolog.Logger
}

func NewPlayerHandler(playerRepo repository.PlayerRepository, logger zerolog.Logger) *PlayerHandler {
	return &PlayerHandler{
		playerRepo: playerRepo,
		logger:     logger,
	}
}

// List returns all players in leaderboard order (combined rating descending).
func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	players, err := h.playerRepo.List(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list players")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(players)
}

// Get returns one player by id.
func (h *PlayerHandler) Get(w http.ResponseWriter, r *http.Request) {
	playerID, err := uuid.Parse(chi.URLParam(r, "playerId"))
	if err != nil {
		http.Error(w, "Invalid player ID", http.StatusBadRequest)
		return
	}

	player, err := h.playerRepo.GetByID(r.Context(), playerID)
	if errors.Is(err, domain.ErrPlayerNotFound) {
		http.Error(w, "Player not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.Error().Err(err).Str("player_id", playerID.String()).Msg("failed to load player")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(player)
}
