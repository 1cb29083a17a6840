package controllers

import (
	"log"
	"net/http"

	"zhuangtai/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleWebSocket upgrades the connection and streams status reports.
// The token travels as a query parameter since browser WebSocket clients
// cannot set headers.
func HandleWebSocket(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}
	if _, err := services.ValidateToken(token); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	hub := services.GetWebSocketHub()
	if hub == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "websocket hub not running"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[WS] Upgrade failed: %v", err)
		return
	}

	client := &services.ClientConnection{
		ID:   uuid.NewString(),
		Conn: conn,
		Send: make(chan services.WebSocketMessage, 16),
	}
	hub.Register(client)

	// Writer: drain the send channel into the socket
	go func() {
		defer conn.Close()
		for msg := range client.Send {
			if err := conn.WriteJSON(msg); err != nil {
				return
			}
		}
	}()

	// Reader: detect disconnects; inbound payloads are ignored
	go func() {
		defer hub.Unregister(client.ID)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
