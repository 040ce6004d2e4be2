package handlers

import (
	"log/slog"
	"net/http"

	"github.com/casey/kickball-cup/internal/api/middleware"
	ws "github.com/casey/kickball-cup/internal/websocket"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Session identity gates actions; the snapshot stream itself is not
		// origin-sensitive.
		return true
	},
}

type WebSocketHandler struct {
	hub *ws.Hub
	log *slog.Logger
}

func NewWebSocketHandler(hub *ws.Hub, log *slog.Logger) *WebSocketHandler {
	return &WebSocketHandler{hub: hub, log: log}
}

// Handle upgrades the connection and subscribes it to state broadcasts.
func (h *WebSocketHandler) Handle(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetCaller(r.Context())
	if !ok {
		http.Error(w, "Session required", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error("websocket upgrade failed", "error", err)
		return
	}

	client := ws.NewClient(h.hub, conn, caller.ID, h.log)
	client.Register()
}
