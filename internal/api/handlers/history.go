package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/tablekick/scoreboard/internal/domain"
	"github.com/tablekick/scoreboard/internal/service"
)

type HistoryHandler struct {
	history *service.HistoryService
	logger  zerolog.Logger
}

func NewHistoryHandler(history *service.HistoryService, logger zerolog.Logger) *HistoryHandler {
	return &HistoryHandler{
		history: history,
		logger:  logger,
	}
}

// GetPlayerMatches returns a player's match history, newest first.
func (h *HistoryHandler) GetPlayerMatches(w http.ResponseWriter, r *http.Request) {
	playerID, err := uuid.Parse(chi.URLParam(r, "playerId"))
	if err != nil {
		http.Error(w, "Invalid player ID", http.StatusBadRequest)
		return
	}

	limit, offset := parsePagination(r, 20)

	entries, err := h.history.GetPlayerMatchHistory(r.Context(), playerID, limit, offset)
	if err != nil {
		h.logger.Error().Err(err).Str("player_id", playerID.String()).Msg("failed to load match history")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entries)
}

// GetPlayerEloHistory returns a player's rating time-series, optionally
// filtered to one role via ?role=offense|defense.
func (h *HistoryHandler) GetPlayerEloHistory(w http.ResponseWriter, r *http.Request) {
	playerID, err := uuid.Parse(chi.URLParam(r, "playerId"))
	if err != nil {
		http.Error(w, "Invalid player ID", http.StatusBadRequest)
		return
	}

	var role *domain.Role
	if raw := r.URL.Query().Get("role"); raw != "" {
		parsed := domain.Role(raw)
		if !parsed.IsValid() {
			http.Error(w, "Invalid role", http.StatusBadRequest)
			return
		}
		role = &parsed
	}

	points, err := h.history.GetPlayerEloHistory(r.Context(), playerID, role)
	if err != nil {
		h.logger.Error().Err(err).Str("player_id", playerID.String()).Msg("failed to load elo history")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(points)
}

// GetHeadToHead returns the shared matches of two players.
func (h *HistoryHandler) GetHeadToHead(w http.ResponseWriter, r *http.Request) {
	playerAID, err := uuid.Parse(chi.URLParam(r, "playerAId"))
	if err != nil {
		http.Error(w, "Invalid player ID", http.StatusBadRequest)
		return
	}
	playerBID, err := uuid.Parse(chi.URLParam(r, "playerBId"))
	if err != nil {
		http.Error(w, "Invalid player ID", http.StatusBadRequest)
		return
	}

	limit, _ := parsePagination(r, 20)

	entries, err := h.history.GetHeadToHead(r.Context(), playerAID, playerBID, limit)
	if err != nil {
		h.logger.Error().Err(err).
			Str("player_a", playerAID.String()).
			Str("player_b", playerBID.String()).
			Msg("failed to load head-to-head")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entries)
}

func parsePagination(r *http.Request, defaultLimit int) (limit, offset int) {
	limit = defaultLimit
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}
	if o := r.URL.Query().Get("offset"); o != "" {
		if parsed, err := strconv.Atoi(o); err == nil && parsed >= 0 {
			offset = parsed
		}
	}
	return limit, offset
}
