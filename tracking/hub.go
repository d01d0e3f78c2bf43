// Package tracking pushes live order status updates to customers over websockets.
package tracking

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/abhisheksh99/Food-Delivery-App-v2/models"
)

const (
	writeWait  = 10 * time.Second
	sendBuffer = 16
)

type StatusUpdate struct {
	OrderID     string             `json:"orderId"`
	Status      models.OrderStatus `json:"status"`
	TotalAmount int64              `json:"totalAmount"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub tracks open connections per user id.
type Hub struct {
	mu       sync.Mutex
	clients  map[string]map[*client]struct{}
	upgrader websocket.Upgrader
}

// NewHub accepts upgrades from allowedOrigin only. An empty origin allows any.
func NewHub(allowedOrigin string) *Hub {
	return &Hub{
		clients: make(map[string]map[*client]struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return allowedOrigin == "" || origin == "" || origin == allowedOrigin
			},
		},
	}
}

// ServeWS upgrades the request and blocks until the client goes away.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, userID string) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	h.register(userID, c)
	go c.writePump()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.unregister(userID, c)
			return nil
		}
	}
}

func (c *client) writePump() {
	for msg := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

func (h *Hub) register(userID string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[userID] == nil {
		h.clients[userID] = make(map[*client]struct{})
	}
	h.clients[userID][c] = struct{}{}
}

func (h *Hub) unregister(userID string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[userID][c]; !ok {
		return
	}
	delete(h.clients[userID], c)
	if len(h.clients[userID]) == 0 {
		delete(h.clients, userID)
	}
	close(c.send)
}

func (h *Hub) Connections(userID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients[userID])
}

// OrderStatusChanged sends the update to every connection of the order's customer.
// Slow clients whose buffer is full miss the update.
func (h *Hub) OrderStatusChanged(ctx context.Context, order models.Order) error {
	payload, err := json.Marshal(StatusUpdate{
		OrderID:     order.ID.Hex(),
		Status:      order.Status,
		TotalAmount: order.TotalAmount,
		UpdatedAt:   order.Updated_at,
	})
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients[order.User.Hex()] {
		select {
		case c.send <- payload:
		default:
			slog.WarnContext(ctx, "tracking buffer full, update dropped", "orderId", order.ID.Hex())
		}
	}
	return nil
}
