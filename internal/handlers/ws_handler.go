package handlers

import (
	"net/http"

	"dsaprep/internal/events"
	"dsaprep/internal/utils"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// WSHandler streams session events to connected clients.
type WSHandler struct {
	Bus       *events.Bus
	Logger    *zap.Logger
	JWTSecret string
	upgrader  websocket.Upgrader
}

func NewWSHandler(bus *events.Bus, logger *zap.Logger, jwtSecret string) *WSHandler {
	return &WSHandler{
		Bus:       bus,
		Logger:    logger,
		JWTSecret: jwtSecret,
		upgrader:  websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
	}
}

// SessionEventsWS pushes the caller's session events over a websocket.
// Browsers cannot set headers on websocket requests, so the token is
// also accepted as a query parameter.
func (h *WSHandler) SessionEventsWS(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("Authorization") == "" {
		if token := r.URL.Query().Get("token"); token != "" {
			r.Header.Set("Authorization", "Bearer "+token)
		}
	}
	claims, err := utils.VerifyToken(r, h.JWTSecret)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	uid, err := utils.GetUserIDFromClaims(claims)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.Logger.Error("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	ch, cancel := h.Bus.Subscribe()
	defer cancel()

	// drain client frames so close is noticed
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case <-r.Context().Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			if event.UID != uid {
				continue
			}
			if err := conn.WriteJSON(event); err != nil {
				return
			}
		}
	}
}
