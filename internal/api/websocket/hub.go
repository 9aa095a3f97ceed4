// Package websocket streams review workflow events to connected dashboards.
package websocket

import (
	"context"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	// EventConnected is sent to each client right after it registers
	EventConnected = "connection.established"

	broadcastBuffer = 256
	clientBuffer    = 32
	pingInterval    = 30 * time.Second
	writeWait       = 10 * time.Second
)

// Event is the JSON frame sent to clients
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data,omitempty"`
}

// Hub fans published events out to every subscribed client
type Hub struct {
	logger     *zap.Logger
	upgrader   websocket.Upgrader
	clients    map[uuid.UUID]*Client
	mu         sync.RWMutex
	broadcast  chan *Event
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
}

// NewHub creates a hub accepting connections from allowedOrigins.
// "*" allows any origin; requests without an Origin header are always accepted.
func NewHub(logger *zap.Logger, allowedOrigins []string) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Hub{
		logger:     logger,
		clients:    make(map[uuid.UUID]*Client),
		broadcast:  make(chan *Event, broadcastBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || slices.Contains(allowedOrigins, "*") || slices.Contains(allowedOrigins, origin)
		},
	}
	return h
}

// Run processes registrations and broadcasts until ctx ends.
func (h *Hub) Run(ctx context.Context) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return
		case client := <-h.register:
			h.registerClient(client)
		case client := <-h.unregister:
			h.unregisterClient(client)
		case event := <-h.broadcast:
			h.broadcastEvent(event)
		case <-ticker.C:
			h.pingClients()
		}
	}
}

// Publish queues an event for broadcast. It never blocks; events are dropped
// when the hub is stopped or its queue is full.
func (h *Hub) Publish(eventType string, payload interface{}) {
	event := &Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Data:      payload,
	}
	select {
	case <-h.done:
	case h.broadcast <- event:
	default:
		h.logger.Warn("event queue full, dropping event", zap.String("event_type", eventType))
	}
}

// ClientCount reports connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ServeHTTP upgrades the request and attaches the connection to the hub.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	select {
	case <-h.done:
		http.Error(w, "event stream unavailable", http.StatusServiceUnavailable)
		return
	default:
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("failed to upgrade websocket connection",
			zap.Error(err),
			zap.String("remote_addr", r.RemoteAddr),
		)
		return
	}

	client := newClient(conn, h)
	select {
	case h.register <- client:
	case <-h.done:
		_ = conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

func (h *Hub) unregisterClientAsync(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	h.clients[client.ID] = client
	h.mu.Unlock()

	h.logger.Info("websocket client registered",
		zap.String("client_id", client.ID.String()),
		zap.String("remote_addr", client.conn.RemoteAddr().String()),
	)

	welcome := &Event{
		ID:        uuid.NewString(),
		Type:      EventConnected,
		Timestamp: time.Now().UTC(),
		Data:      map[string]interface{}{"client_id": client.ID.String()},
	}
	select {
	case client.send <- welcome:
	default:
	}
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, exists := h.clients[client.ID]; exists {
		delete(h.clients, client.ID)
		close(client.send)
		h.logger.Info("websocket client unregistered", zap.String("client_id", client.ID.String()))
	}
}

func (h *Hub) broadcastEvent(event *Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients {
		if !client.wants(event.Type) {
			continue
		}
		select {
		case client.send <- event:
		default:
			h.logger.Warn("client send buffer full, disconnecting",
				zap.String("client_id", client.ID.String()))
			go h.unregisterClientAsync(client)
		}
	}
}

func (h *Hub) pingClients() {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients {
		if err := client.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
			h.logger.Debug("ping failed", zap.String("client_id", client.ID.String()), zap.Error(err))
			go h.unregisterClientAsync(client)
		}
	}
}

func (h *Hub) shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	close(h.done)
	for _, client := range h.clients {
		close(client.send)
	}
	h.clients = make(map[uuid.UUID]*Client)
}
