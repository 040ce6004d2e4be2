// Package websocket pushes tournament snapshots to connected browsers so
// clients see phase changes without polling.
package websocket

import (
	"encoding/json"
	"log/slog"
	"sync/atomic"

	"github.com/casey/kickball-cup/internal/domain"
)

// StateMessage is the only frame the server pushes.
type StateMessage struct {
	Type  string                  `json:"type"`
	Phase domain.Phase            `json:"phase"`
	State *domain.TournamentState `json:"state"`
}

type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	stop       chan struct{}
	done       chan struct{} // closed when Run() exits
	count      atomic.Int64
	log        *slog.Logger
}

func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 16),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
		log:        log,
	}
}

func (h *Hub) Run() {
	defer close(h.done)

	for {
		select {
		case <-h.stop:
			for client := range h.clients {
				client.Close()
			}
			h.clients = make(map[*Client]bool)
			h.count.Store(0)
			return

		case client := <-h.register:
			h.clients[client] = true
			h.count.Store(int64(len(h.clients)))
			h.log.Debug("websocket client connected", "clients", len(h.clients))

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				h.count.Store(int64(len(h.clients)))
				client.Close()
			}

		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Slow consumer; drop it rather than stall the hub.
					delete(h.clients, client)
					h.count.Store(int64(len(h.clients)))
					client.Close()
				}
			}
		}
	}
}

// ClientCount reports how many clients are attached.
func (h *Hub) ClientCount() int {
	return int(h.count.Load())
}

// Stop shuts the hub down and waits for Run to exit.
func (h *Hub) Stop() {
	close(h.stop)
	<-h.done
}

// BroadcastState fans the snapshot out to every connected client.
func (h *Hub) BroadcastState(state *domain.TournamentState) {
	msg := StateMessage{
		Type:  "state",
		Phase: state.Phase,
		State: state,
	}

	data, err := json.Marshal(msg)
	if err != nil {
		h.log.Error("failed to marshal state message", "error", err)
		return
	}

	select {
	case h.broadcast <- data:
	case <-h.done:
	}
}
