// Package bridge exposes the app over HTTP and fans stream events out to
// websocket listeners.
package bridge

import (
	"fmt"
	"net/http"
	"os"
	"sync"

	"github.com/baalimago/dlai/internal/models"
	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// streamChannel names the event channel listeners subscribe to. Every
// emitted frame carries it, the UI routes on it.
const streamChannel = "llm-stream"

// The server binds to loopback, upgrades from the desktop shell's origin
// are fine.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// envelope is the wire frame around every event.
type envelope struct {
	Channel string             `json:"channel"`
	Payload models.StreamEvent `json:"payload"`
}

// Hub tracks connected websocket clients and broadcasts stream events to
// all of them. Clients whose writes fail are dropped, a listener that went
// away does not stall the rest.
type Hub struct {
	mu    sync.Mutex
	conns map[string]*websocket.Conn
	debug bool
}

func NewHub() *Hub {
	return &Hub{
		conns: make(map[string]*websocket.Conn),
		debug: misc.Truthy(os.Getenv("DEBUG")),
	}
}

// Attach upgrades the request and registers the connection until the peer
// closes it. The upgrader writes the HTTP error response on failure.
func (h *Hub) Attach(w http.ResponseWriter, r *http.Request) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return fmt.Errorf("failed to upgrade connection: %w", err)
	}
	id := uuid.NewString()
	h.mu.Lock()
	h.conns[id] = conn
	h.mu.Unlock()
	if h.debug {
		ancli.Okf("websocket client attached: %v\n", id)
	}
	go h.discardUntilClose(id, conn)
	return nil
}

// discardUntilClose drains inbound frames, the protocol is one-way. The
// first read error means the peer is gone.
func (h *Hub) discardUntilClose(id string, conn *websocket.Conn) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.drop(id)
			return
		}
	}
}

func (h *Hub) drop(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conn, ok := h.conns[id]; ok {
		conn.Close()
		delete(h.conns, id)
	}
}

// Emit broadcasts event to every connected client. It satisfies
// dialogue.EventSink, the mutex serializes writes from concurrent streams.
func (h *Hub) Emit(event models.StreamEvent) {
	frame := envelope{Channel: streamChannel, Payload: event}
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, conn := range h.conns {
		if err := conn.WriteJSON(frame); err != nil {
			if h.debug {
				ancli.PrintWarn(fmt.Sprintf("dropping websocket client %v: %v\n", id, err))
			}
			conn.Close()
			delete(h.conns, id)
		}
	}
}

// Clients returns the number of attached listeners.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, conn := range h.conns {
		conn.Close()
		delete(h.conns, id)
	}
}
