package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"BakeryApp/app/models"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// MessageType represents the type of WebSocket message
type MessageType string

const (
	// Message types
	TypeStockAlert        MessageType = "stock_alert"
	TypeProductionCreated MessageType = "production_created"
	TypeHeartbeat         MessageType = "heartbeat"
)

// Message represents a WebSocket message
type Message struct {
	Type      MessageType `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data,omitempty"`
}

// Client represents a connected WebSocket client
type Client struct {
	ID          string
	Connection  *websocket.Conn
	Send        chan []byte
	ConnectedAt time.Time
}

// Hub broadcasts stock and production events to connected clients
type Hub struct {
	clients    map[string]*Client
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	upgrader   websocket.Upgrader
	mu         sync.RWMutex
}

// NewHub creates a new broadcast hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		broadcast:  make(chan []byte, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Run processes register/unregister/broadcast events. Call in a goroutine.
func (h *Hub) Run() {
	heartbeat := time.NewTicker(30 * time.Second)
	defer heartbeat.Stop()

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			h.mu.Unlock()
			log.Printf("WebSocket client connected: %s (total: %d)", client.ID, h.ClientCount())

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.ID]; ok {
				delete(h.clients, client.ID)
				close(client.Send)
			}
			h.mu.Unlock()
			log.Printf("WebSocket client disconnected: %s (total: %d)", client.ID, h.ClientCount())

		case payload := <-h.broadcast:
			h.mu.RLock()
			for _, client := range h.clients {
				select {
				case client.Send <- payload:
				default:
					// Slow consumer, drop the message for this client
				}
			}
			h.mu.RUnlock()

		case <-heartbeat.C:
			h.Broadcast(Message{Type: TypeHeartbeat, Timestamp: time.Now()})
		}
	}
}

// HandleConnection upgrades an HTTP request to a websocket client
func (h *Hub) HandleConnection(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := &Client{
		ID:          uuid.NewString(),
		Connection:  conn,
		Send:        make(chan []byte, 16),
		ConnectedAt: time.Now(),
	}

	h.register <- client

	go h.writePump(client)
	go h.readPump(client)
}

// Broadcast sends a message to every connected client
func (h *Hub) Broadcast(message Message) {
	payload, err := json.Marshal(message)
	if err != nil {
		log.Printf("Error marshaling websocket message: %v", err)
		return
	}
	select {
	case h.broadcast <- payload:
	default:
		log.Printf("WebSocket broadcast queue full, dropping %s message", message.Type)
	}
}

// NotifyStockAlert broadcasts a low-stock warning for an ingredient
func (h *Hub) NotifyStockAlert(ingredient models.Ingredient) {
	unit := ""
	if ingredient.Unit != nil {
		unit = ingredient.Unit.Abbreviation
	}
	h.Broadcast(Message{
		Type:      TypeStockAlert,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"ingredient_id":   ingredient.ID,
			"ingredient_name": ingredient.Name,
			"current_stock":   ingredient.CurrentStock,
			"min_stock":       ingredient.MinStock,
			"unit":            unit,
		},
	})
}

// NotifyProductionCreated broadcasts a newly created production run
func (h *Hub) NotifyProductionCreated(production models.Production, movements int) {
	h.Broadcast(Message{
		Type:      TypeProductionCreated,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"production_id":    production.ID,
			"batch_number":     production.BatchNumber,
			"status":           production.Status,
			"quantity_planned": production.QuantityPlanned,
			"movements":        movements,
		},
	})
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) writePump(client *Client) {
	ticker := time.NewTicker(45 * time.Second)
	defer func() {
		ticker.Stop()
		client.Connection.Close()
	}()

	for {
		select {
		case payload, ok := <-client.Send:
			client.Connection.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				client.Connection.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := client.Connection.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			client.Connection.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := client.Connection.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *Hub) readPump(client *Client) {
	defer func() {
		h.unregister <- client
		client.Connection.Close()
	}()

	client.Connection.SetReadLimit(4096)
	client.Connection.SetReadDeadline(time.Now().Add(90 * time.Second))
	client.Connection.SetPongHandler(func(string) error {
		client.Connection.SetReadDeadline(time.Now().Add(90 * time.Second))
		return nil
	})

	for {
		// Clients only listen; inbound frames just keep the connection alive
		if _, _, err := client.Connection.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			return
		}
		client.Connection.SetReadDeadline(time.Now().Add(90 * time.Second))
	}
}
