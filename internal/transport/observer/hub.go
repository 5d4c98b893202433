// Package observer is the websocket fan-out for engine events. The core
// talks to it only through the injected broadcast func; a hub with no
// subscribers swallows events silently
package observer

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"shipmate/internal/platform/logger"
)

// Event is the wire envelope for every pushed event
type Event struct {
	ActorID string    `json:"actor_id"`
	Event   string    `json:"event"`
	Payload any       `json:"payload"`
	At      time.Time `json:"at"`
}

// outBuffer bounds how far a client may lag before it is dropped
const outBuffer = 64

type client struct {
	actorID string // "" subscribes to every actor
	out     chan []byte
}

// Hub tracks subscribers and fans events out to them
type Hub struct {
	log      *logger.Logger
	upgrader websocket.Upgrader
	now      func() time.Time

	mu      sync.Mutex
	clients map[*client]struct{}
}

// NewHub constructs an empty hub
func NewHub() *Hub {
	return &Hub{
		log: logger.Named("observer"),
		now: time.Now,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  16 * 1024,
			WriteBufferSize: 16 * 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		clients: make(map[*client]struct{}),
	}
}

// Broadcast satisfies modkit.Broadcaster. Marshals once and fans out
// without blocking; a subscriber that cannot keep up is dropped rather
// than allowed to stall the engine
func (h *Hub) Broadcast(actorID, event string, payload any) {
	raw, err := json.Marshal(Event{ActorID: actorID, Event: event, Payload: payload, At: h.now()})
	if err != nil {
		h.log.Warn().Err(err).Str("event", event).Msg("unmarshalable event payload")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		if c.actorID != "" && c.actorID != actorID {
			continue
		}
		select {
		case c.out <- raw:
		default:
			delete(h.clients, c)
			close(c.out)
			h.log.Warn().Str("actor_id", c.actorID).Msg("slow observer dropped")
		}
	}
}

// Subscribers reports the current subscriber count
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) register(actorID string) *client {
	c := &client{actorID: actorID, out: make(chan []byte, outBuffer)}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	return c
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.out)
	}
	h.mu.Unlock()
}

// Handler upgrades to websocket and streams events. An optional ?actor=
// query narrows the stream to one actor
func (h *Hub) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := h.upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		c := h.register(r.URL.Query().Get("actor"))
		defer h.unregister(c)

		done := make(chan struct{})

		// writer
		go func() {
			defer close(done)
			for b := range c.out {
				_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
				if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
					return
				}
			}
		}()

		// reader exists only to notice the peer going away
		for {
			_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}

		h.unregister(c)
		_ = conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"),
			time.Now().Add(time.Second),
		)
		select {
		case <-done:
		case <-time.After(500 * time.Millisecond):
		}
	}
}
