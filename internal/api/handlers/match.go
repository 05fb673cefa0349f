package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/tablekick/scoreboard/internal/domain"
	"github.com/tablekick/scoreboard/internal/events"
	"github.com/tablekick/scoreboard/internal/service"
)

type MatchHandler struct {
	ledger *service.LedgerService
	hub    *events.Hub
	logger zerolog.Logger
}

func NewMatchHandler(ledger *service.LedgerService, hub *events.Hub, logger zerolog.Logger) *MatchHandler {
	return &MatchHandler{
		ledger: ledger,
		hub:    hub,
		logger: logger,
	}
}

type SubmitMatchRequest struct {
	WhiteDefenderID string `json:"whiteDefenderId"`
	WhiteAttackerID string `json:"whiteAttackerId"`
	BlueDefenderID  string `json:"blueDefenderId"`
	BlueAttackerID  string `json:"blueAttackerId"`
	WhiteScore      int    `json:"whiteScore"`
	BlueScore       int    `json:"blueScore"`
	PlayedAt        string `json:"playedAt,omitempty"` // RFC3339, defaults to now
}

// Submit records one match result.
func (h *MatchHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	in := service.SubmitMatchInput{
		WhiteScore: req.WhiteScore,
		BlueScore:  req.BlueScore,
	}

	ids := []struct {
		raw  string
		dest *uuid.UUID
	}{
		{req.WhiteDefenderID, &in.WhiteDefenderID},
		{req.WhiteAttackerID, &in.WhiteAttackerID},
		{req.BlueDefenderID, &in.BlueDefenderID},
		{req.BlueAttackerID, &in.BlueAttackerID},
	}
	for _, id := range ids {
		parsed, err := uuid.Parse(id.raw)
		if err != nil {
			http.Error(w, "Invalid player ID", http.StatusBadRequest)
			return
		}
		*id.dest = parsed
	}

	if req.PlayedAt != "" {
		playedAt, err := time.Parse(time.RFC3339, req.PlayedAt)
		if err != nil {
			http.Error(w, "Invalid playedAt, expected RFC3339", http.StatusBadRequest)
			return
		}
		in.PlayedAt = playedAt
	}

	result, err := h.ledger.Submit(r.Context(), in)
	switch {
	case errors.Is(err, domain.ErrMissingPlayer),
		errors.Is(err, domain.ErrDuplicatePlayer),
		errors.Is(err, domain.ErrInvalidScore):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, domain.ErrPlayerNotFound):
		http.Error(w, "Player not found", http.StatusNotFound)
		return
	case err != nil:
		h.logger.Error().Err(err).Msg("match submission failed")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.hub.Broadcast(events.Event{
		Type: events.MatchRecordedType,
		Payload: events.MatchRecorded{
			MatchID:       result.MatchID.String(),
			WhiteTeamName: result.WhiteTeamName,
			BlueTeamName:  result.BlueTeamName,
			WhiteScore:    result.WhiteScore,
			BlueScore:     result.BlueScore,
			PlayedAt:      result.PlayedAt,
		},
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(result)
}
