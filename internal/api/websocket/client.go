package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	pongWait       = 60 * time.Second
	maxMessageSize = 1024
)

// Client is one dashboard connection
type Client struct {
	ID   uuid.UUID
	conn *websocket.Conn
	send chan *Event
	hub  *Hub

	mu         sync.RWMutex
	eventTypes map[string]struct{}
}

// clientMessage is what dashboards may send
type clientMessage struct {
	Type       string   `json:"type"`
	EventTypes []string `json:"event_types"`
}

func newClient(conn *websocket.Conn, hub *Hub) *Client {
	return &Client{
		ID:   uuid.New(),
		conn: conn,
		send: make(chan *Event, clientBuffer),
		hub:  hub,
	}
}

// wants reports whether the client subscribed to eventType. No subscription means everything.
func (c *Client) wants(eventType string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.eventTypes) == 0 {
		return true
	}
	_, ok := c.eventTypes[eventType]
	return ok
}

func (c *Client) subscribe(eventTypes []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.eventTypes = make(map[string]struct{}, len(eventTypes))
	for _, t := range eventTypes {
		c.eventTypes[t] = struct{}{}
	}
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregisterClientAsync(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				c.hub.logger.Warn("websocket read error", zap.String("client_id", c.ID.String()), zap.Error(err))
			}
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			c.hub.logger.Debug("ignoring malformed client message", zap.String("client_id", c.ID.String()), zap.Error(err))
			continue
		}
		switch msg.Type {
		case "subscribe":
			c.subscribe(msg.EventTypes)
		case "ping":
			select {
			case c.send <- &Event{ID: uuid.NewString(), Type: "pong", Timestamp: time.Now().UTC()}:
			default:
			}
		}
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for event := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteJSON(event); err != nil {
			c.hub.logger.Debug("websocket write failed", zap.String("client_id", c.ID.String()), zap.Error(err))
			return
		}
	}
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
		time.Now().Add(writeWait))
}
