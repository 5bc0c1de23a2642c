// internal/httpserver/ws.go
//
// WebSocket fan-out of session snapshots.
//
// Every session created by the server gets an OnChange hook that publishes
// its snapshot here; browsers watching GET /game/{id}/ws receive each one as
// a JSON text frame. The hub goroutine is the only owner of the client map.

package httpserver

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordlet/internal/game"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 32
)

// wsMessage is the frame pushed to clients.
type wsMessage struct {
	SessionID string         `json:"sessionId"`
	Event     string         `json:"event"`
	Snapshot  *game.Snapshot `json:"snapshot,omitempty"`
}

type wsClient struct {
	hub       *Hub
	conn      *websocket.Conn
	send      chan []byte
	sessionID string
}

type wsBroadcast struct {
	sessionID string
	data      []byte
}

// wsDirect is a frame for one client only.
type wsDirect struct {
	client *wsClient
	data   []byte
}

// Hub keeps the WebSocket clients grouped by session.
type Hub struct {
	sessions   map[string]map[*wsClient]struct{}
	broadcast  chan wsBroadcast
	direct     chan wsDirect
	register   chan *wsClient
	unregister chan *wsClient
	drop       chan string
	done       chan struct{}
	upgrader   websocket.Upgrader
}

// NewHub creates a hub; origin is the only cross-site origin allowed to connect.
func NewHub(origin string) *Hub {
	return &Hub{
		sessions:   make(map[string]map[*wsClient]struct{}),
		broadcast:  make(chan wsBroadcast),
		direct:     make(chan wsDirect),
		register:   make(chan *wsClient),
		unregister: make(chan *wsClient),
		drop:       make(chan string),
		done:       make(chan struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				o := r.Header.Get("Origin")
				return o == "" || o == origin || strings.HasSuffix(o, "://"+r.Host)
			},
		},
	}
}

// Run is the hub's event loop. It returns after Close.
func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			for id := range h.sessions {
				h.dropSession(id)
			}
			return
		case c := <-h.register:
			if h.sessions[c.sessionID] == nil {
				h.sessions[c.sessionID] = make(map[*wsClient]struct{})
			}
			h.sessions[c.sessionID][c] = struct{}{}
			log.Debug().Str("session", c.sessionID).Int("clients", len(h.sessions[c.sessionID])).Msg("ws client registered")
		case c := <-h.unregister:
			h.remove(c)
		case id := <-h.drop:
			h.dropSession(id)
		case m := <-h.broadcast:
			for c := range h.sessions[m.sessionID] {
				h.deliver(c, m.data)
			}
		case d := <-h.direct:
			if _, ok := h.sessions[d.client.sessionID][d.client]; ok {
				h.deliver(d.client, d.data)
			}
		}
	}
}

// Close stops Run and disconnects every client.
func (h *Hub) Close() {
	select {
	case <-h.done:
	default:
		close(h.done)
	}
}

func (h *Hub) deliver(c *wsClient, data []byte) {
	select {
	case c.send <- data:
	default:
		// slow reader
		h.remove(c)
	}
}

func (h *Hub) remove(c *wsClient) {
	clients, ok := h.sessions[c.sessionID]
	if !ok {
		return
	}
	if _, ok := clients[c]; !ok {
		return
	}
	delete(clients, c)
	close(c.send)
	if len(clients) == 0 {
		delete(h.sessions, c.sessionID)
	}
}

func (h *Hub) dropSession(id string) {
	for c := range h.sessions[id] {
		close(c.send)
	}
	delete(h.sessions, id)
}

// Publish sends a snapshot to every client watching the session.
func (h *Hub) Publish(sessionID string, snap game.Snapshot) {
	data, err := encodeFrame(sessionID, "snapshot", &snap)
	if err != nil {
		log.Error().Err(err).Str("session", sessionID).Msg("encode ws frame")
		return
	}
	select {
	case h.broadcast <- wsBroadcast{sessionID: sessionID, data: data}:
	case <-h.done:
	}
}

// DropSession disconnects the session's clients, e.g. after DELETE /game/{id}.
func (h *Hub) DropSession(sessionID string) {
	select {
	case h.drop <- sessionID:
	case <-h.done:
	}
}

func encodeFrame(sessionID, event string, snap *game.Snapshot) ([]byte, error) {
	return json.Marshal(wsMessage{SessionID: sessionID, Event: event, Snapshot: snap})
}

// serve upgrades the request and streams frames for sessionID. The client
// is registered before current is called, so no change published after the
// first frame's snapshot is missed.
func (h *Hub) serve(w http.ResponseWriter, r *http.Request, sessionID string, current func() (game.Snapshot, error)) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error
		log.Warn().Err(err).Str("session", sessionID).Msg("ws upgrade failed")
		return
	}
	c := &wsClient{hub: h, conn: conn, send: make(chan []byte, sendBuffer), sessionID: sessionID}
	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	}
	go c.writePump()
	go c.readPump()

	snap, err := current()
	if err != nil {
		// gone since the upgrade; closing send ends the write pump
		log.Debug().Err(err).Str("session", sessionID).Msg("ws initial snapshot")
		h.DropSession(sessionID)
		return
	}
	data, err := encodeFrame(sessionID, "snapshot", &snap)
	if err != nil {
		log.Error().Err(err).Str("session", sessionID).Msg("encode ws frame")
		return
	}
	select {
	case h.direct <- wsDirect{client: c, data: data}:
	case <-h.done:
	}
}

// readPump only keeps the connection alive; clients do not send commands.
func (c *wsClient) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Debug().Err(err).Str("session", c.sessionID).Msg("ws read")
			}
			return
		}
	}
}

func (c *wsClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
