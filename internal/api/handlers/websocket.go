package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/jstittsworth/contrarian-dfs/internal/services"
	"github.com/jstittsworth/contrarian-dfs/pkg/logger"
)

type WebSocketHandler struct {
	hub      *services.WebSocketHub
	upgrader websocket.Upgrader
}

// NewWebSocketHandler accepts upgrades from the given origins; "*" accepts
// any origin. Requests without an Origin header (non-browser clients) are
// always accepted.
func NewWebSocketHandler(hub *services.WebSocketHub, allowedOrigins []string) *WebSocketHandler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}

	return &WebSocketHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowed["*"] || allowed[origin]
			},
		},
	}
}

// HandleWebSocket upgrades the connection and subscribes it to table
// refresh notifications.
func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	subject := c.GetString("user_id")
	if subject == "" {
		subject = "anonymous"
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.WithComponent("websocket").WithError(err).Warn("Failed to upgrade connection")
		return
	}

	welcome := gin.H{
		"type": "welcome",
		"data": gin.H{
			"message":   "Connected to contrarian-dfs table updates",
			"topics":    []string{services.TopicPlayerTable},
			"timestamp": time.Now().UTC(),
		},
	}
	if err := conn.WriteJSON(welcome); err != nil {
		conn.Close()
		return
	}

	client := services.NewClient(h.hub, conn, subject)
	if !h.hub.Register(client) {
		conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()
}
