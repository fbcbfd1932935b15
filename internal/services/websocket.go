package services

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jstittsworth/contrarian-dfs/pkg/logger"
	"github.com/sirupsen/logrus"
)

const (
	// TopicPlayerTable carries table_refreshed events. New clients are
	// subscribed to it.
	TopicPlayerTable = "players"

	MessageTableRefreshed = "table_refreshed"

	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	sendBuffer = 256
)

type WebSocketHub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mu         sync.RWMutex
	log        *logrus.Entry
}

type Client struct {
	hub     *WebSocketHub
	conn    *websocket.Conn
	send    chan []byte
	subject string

	topicsMu sync.RWMutex
	topics   map[string]bool
}

type WebSocketMessage struct {
	Type      string          `json:"type"`
	Topic     string          `json:"topic"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

type Subscription struct {
	Action string   `json:"action"` // "subscribe" or "unsubscribe"
	Topics []string `json:"topics"`
}

// TableRefreshed is the payload of a table_refreshed message.
type TableRefreshed struct {
	Version string `json:"version"`
	Rows    int    `json:"rows"`
}

func NewWebSocketHub() *WebSocketHub {
	return &WebSocketHub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		log:        logger.WithComponent("websocket_hub"),
	}
}

// Run services registrations until ctx is cancelled, then closes every
// client's send channel.
func (h *WebSocketHub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.mu.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.log.WithField("subject", client.subject).Debug("Client registered")

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			h.log.WithField("subject", client.subject).Debug("Client unregistered")
		}
	}
}

// Register adds a new client to the hub. It returns false once the hub
// has stopped.
func (h *WebSocketHub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *WebSocketHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *WebSocketHub) BroadcastToTopic(topic string, messageType string, data interface{}) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	messageBytes, err := json.Marshal(WebSocketMessage{
		Type:      messageType,
		Topic:     topic,
		Data:      jsonData,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		if client.IsSubscribedTo(topic) {
			select {
			case client.send <- messageBytes:
			default:
				// Slow client; drop rather than block the broadcaster.
			}
		}
	}
	return nil
}

// NotifyTableRefreshed tells subscribers a new table version is available.
func (h *WebSocketHub) NotifyTableRefreshed(version string, rows int) {
	if err := h.BroadcastToTopic(TopicPlayerTable, MessageTableRefreshed, TableRefreshed{Version: version, Rows: rows}); err != nil {
		h.log.WithError(err).Warn("Failed to broadcast table refresh")
	}
}

func NewClient(hub *WebSocketHub, conn *websocket.Conn, subject string) *Client {
	return &Client{
		hub:     hub,
		conn:    conn,
		send:    make(chan []byte, sendBuffer),
		subject: subject,
		topics:  map[string]bool{TopicPlayerTable: true},
	}
}

// ReadPump applies subscription changes sent by the peer until the
// connection fails, then unregisters the client.
func (c *Client) ReadPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var sub Subscription
		if err := c.conn.ReadJSON(&sub); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.log.WithError(err).Warn("WebSocket read failed")
			}
			return
		}

		switch sub.Action {
		case "subscribe":
			c.setTopics(sub.Topics, true)
		case "unsubscribe":
			c.setTopics(sub.Topics, false)
		}
	}
}

func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) setTopics(topics []string, subscribed bool) {
	c.topicsMu.Lock()
	defer c.topicsMu.Unlock()
	for _, topic := range topics {
		if subscribed {
			c.topics[topic] = true
		} else {
			delete(c.topics, topic)
		}
	}
}

func (c *Client) IsSubscribedTo(topic string) bool {
	c.topicsMu.RLock()
	defer c.topicsMu.RUnlock()
	return c.topics[topic] || c.topics["*"] // "*" subscribes to all topics
}
