package handlers

import (
	"net/http"

	ws "github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/tablekick/scoreboard/internal/api/middleware"
	"github.com/tablekick/scoreboard/internal/events"
)

var upgrader = ws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // the CORS policy is the real gate; the feed is read-only
	},
}

type WebSocketHandler struct {
	hub       *events.Hub
	jwtSecret string
	logger    zerolog.Logger
}

func NewWebSocketHandler(hub *events.Hub, jwtSecret string, logger zerolog.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		hub:       hub,
		jwtSecret: jwtSecret,
		logger:    logger,
	}
}

// Handle upgrades the connection and subscribes it to the match feed.
func (h *WebSocketHandler) Handle(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "Token required", http.StatusUnauthorized)
		return
	}

	if _, err := middleware.ValidateToken(h.jwtSecret, token); err != nil {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error().Err(err).Msg("websocket upgrade failed")
		return
	}

	events.NewClient(h.hub, conn).Start()
}
