package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"brubeckscan/internal/dashboard"
	"brubeckscan/internal/observability"
)

const (
	// writeWait bounds every write, payloads and control frames alike.
	writeWait = 10 * time.Second

	// pongWait is how long a subscriber may stay silent before the
	// connection is considered dead.
	pongWait = 60 * time.Second

	// pingInterval must be shorter than pongWait.
	pingInterval = 30 * time.Second

	// sendBuffer absorbs publication bursts; a subscriber that stays behind
	// misses snapshots instead of stalling the broadcast.
	sendBuffer = 8
)

// liveMessage is the wire form of one publication on the live feed.
type liveMessage struct {
	Generation uint64       `json:"generation"`
	Record     nodeResponse `json:"record"`
}

type wsClient struct {
	conn *websocket.Conn
	send chan dashboard.Snapshot
	loc  *time.Location
}

// Hub fans accepted publications out to WebSocket subscribers.
type Hub struct {
	feed       <-chan dashboard.Snapshot
	cancelFeed func()
	logger     zerolog.Logger
	upgrader   websocket.Upgrader

	mu      sync.Mutex
	clients map[*wsClient]struct{}
}

// newHub registers on the service's publication feed immediately, so no
// record published after construction can slip past a started hub.
func newHub(service *dashboard.Service, logger zerolog.Logger) *Hub {
	h := &Hub{
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The feed is read-only public data; any origin may subscribe.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		clients: make(map[*wsClient]struct{}),
	}
	h.feed, h.cancelFeed = service.Subscribe(16)
	return h
}

// Run drains the publication feed and broadcasts it until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer h.cancelFeed()

	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case snap, ok := <-h.feed:
			if !ok {
				h.closeAll()
				return
			}
			h.broadcast(snap)
		}
	}
}

// serve upgrades the request and pumps publications to the subscriber until
// it disconnects. The display zone is fixed at upgrade time.
func (h *Hub) serve(c echo.Context, loc *time.Location) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return fmt.Errorf("websocket upgrade: %w", err)
	}

	client := &wsClient{
		conn: conn,
		send: make(chan dashboard.Snapshot, sendBuffer),
		loc:  loc,
	}
	h.register(client)

	go h.writeLoop(client)
	h.readLoop(client)
	return nil
}

func (h *Hub) register(client *wsClient) {
	h.mu.Lock()
	h.clients[client] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()

	observability.SetLiveSubscribers(n)
	h.logger.Debug().Int("subscribers", n).Msg("live subscriber connected")
}

// unregister is idempotent: the map guards the send channel against a double
// close when readLoop and closeAll race.
func (h *Hub) unregister(client *wsClient) {
	h.mu.Lock()
	_, registered := h.clients[client]
	if registered {
		delete(h.clients, client)
		close(client.send)
	}
	n := len(h.clients)
	h.mu.Unlock()

	if registered {
		observability.SetLiveSubscribers(n)
		h.logger.Debug().Int("subscribers", n).Msg("live subscriber disconnected")
	}
}

// broadcast offers the snapshot to every subscriber without blocking. Sends
// happen under the same mutex as unregister's close, so a send on a closed
// channel is impossible.
func (h *Hub) broadcast(snap dashboard.Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		select {
		case client.send <- snap:
		default:
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	for client := range h.clients {
		delete(h.clients, client)
		close(client.send)
	}
	h.mu.Unlock()

	observability.SetLiveSubscribers(0)
}

func (h *Hub) subscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// writeLoop owns all writes on the connection, including pings and the
// closing handshake.
func (h *Hub) writeLoop(client *wsClient) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	defer client.conn.Close()

	for {
		select {
		case snap, ok := <-client.send:
			client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				client.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}

			msg := liveMessage{
				Generation: snap.Generation,
				Record:     newNodeResponse(snap.Record, client.loc),
			}
			if err := client.conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readLoop discards inbound frames; its job is pong bookkeeping and
// noticing the disconnect.
func (h *Hub) readLoop(client *wsClient) {
	defer h.unregister(client)

	client.conn.SetReadLimit(512)
	client.conn.SetReadDeadline(time.Now().Add(pongWait))
	client.conn.SetPongHandler(func(string) error {
		return client.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			return
		}
	}
}
