package services

import (
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// WebSocketMessage is the envelope sent to connected clients
type WebSocketMessage struct {
	Type      string    `json:"type"` // "report", "error"
	Timestamp time.Time `json:"timestamp"`
	Lines     []string  `json:"lines,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// ClientConnection represents one connected WebSocket client
type ClientConnection struct {
	ID   string
	Conn *websocket.Conn
	Send chan WebSocketMessage
}

// WebSocketHub pushes a freshly generated status report to every
// connected client on a fixed interval. Each push recomputes the
// snapshot from live platform reads; nothing is cached between pushes.
type WebSocketHub struct {
	clients    map[string]*ClientConnection
	register   chan *ClientConnection
	unregister chan string
	filter     FilterConfig
	interval   time.Duration
	mu         sync.RWMutex
	done       chan struct{}
}

var wsHub *WebSocketHub

// InitWebSocketHub starts the hub broadcasting reports built with the
// given filter table.
func InitWebSocketHub(filter FilterConfig, interval time.Duration) *WebSocketHub {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	wsHub = &WebSocketHub{
		clients:    make(map[string]*ClientConnection),
		register:   make(chan *ClientConnection),
		unregister: make(chan string),
		filter:     filter,
		interval:   interval,
		done:       make(chan struct{}),
	}
	go wsHub.run()
	return wsHub
}

func (h *WebSocketHub) run() {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-h.done:
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			total := len(h.clients)
			h.mu.Unlock()
			log.Printf("[WS] Client connected: %s (total: %d)", client.ID, total)

			// First report immediately, not after a full interval
			select {
			case client.Send <- snapshotForClient(h.filter):
			default:
			}

		case clientID := <-h.unregister:
			h.mu.Lock()
			if client, exists := h.clients[clientID]; exists {
				delete(h.clients, clientID)
				close(client.Send)
			}
			total := len(h.clients)
			h.mu.Unlock()
			log.Printf("[WS] Client disconnected: %s (total: %d)", clientID, total)

		case <-ticker.C:
			h.mu.RLock()
			idle := len(h.clients) == 0
			h.mu.RUnlock()
			if idle {
				continue
			}

			msg := WebSocketMessage{
				Type:      "report",
				Timestamp: time.Now(),
				Lines:     StatusReportLines(GetSystemStatus(h.filter)),
			}

			h.mu.RLock()
			for _, client := range h.clients {
				select {
				case client.Send <- msg:
				default:
					// Client's send channel is full, skip this push
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a new client to the hub
func (h *WebSocketHub) Register(client *ClientConnection) {
	h.register <- client
}

// Unregister removes a client from the hub
func (h *WebSocketHub) Unregister(clientID string) {
	h.unregister <- clientID
}

// GetWebSocketHub returns the running hub, nil before initialization
func GetWebSocketHub() *WebSocketHub {
	return wsHub
}

// StopWebSocketHub gracefully stops the hub
func StopWebSocketHub() {
	if wsHub != nil {
		close(wsHub.done)
	}
}

// snapshotForClient builds a one-off report message for a client that
// just connected, so it does not wait a full interval for data.
func snapshotForClient(filter FilterConfig) WebSocketMessage {
	return WebSocketMessage{
		Type:      "report",
		Timestamp: time.Now(),
		Lines:     StatusReportLines(GetSystemStatus(filter)),
	}
}
