package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"fleetflow-service/internal/domain/fleet"

	"go.uber.org/zap"
)

// Event is one message pushed to connected dashboards.
type Event struct {
	Type string      `json:"type"` // "alerts", "activity"
	Data interface{} `json:"data"`
	At   time.Time   `json:"at"`
}

// Hub fans fleet events out to every connected dashboard client.
type Hub struct {
	clients map[*Client]bool
	mu      sync.RWMutex

	register   chan *Client
	unregister chan *Client
	broadcast  chan *Event

	logger *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *Event, 256),
		logger:     logger,
	}
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case evt := <-h.broadcast:
			h.send(evt)
		}
	}
}

// BroadcastAlerts pushes the current prioritized alert feed.
func (h *Hub) BroadcastAlerts(alerts []fleet.SystemAlert) {
	h.enqueue(&Event{Type: "alerts", Data: alerts, At: time.Now()})
}

// BroadcastActivity pushes one audit-feed entry.
func (h *Hub) BroadcastActivity(activity *fleet.Activity) {
	h.enqueue(&Event{Type: "activity", Data: activity, At: time.Now()})
}

func (h *Hub) enqueue(evt *Event) {
	select {
	case h.broadcast <- evt:
	default:
		h.logger.Warn("event dropped, broadcast queue full", zap.String("type", evt.Type))
	}
}

func (h *Hub) TotalClients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client] = true
	h.logger.Info("websocket client connected",
		zap.String("operator", client.email), zap.Int("total", len(h.clients)))
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		client.close()
		h.logger.Info("websocket client disconnected",
			zap.String("operator", client.email), zap.Int("total", len(h.clients)))
	}
}

func (h *Hub) send(evt *Event) {
	raw, err := json.Marshal(evt)
	if err != nil {
		h.logger.Error("failed to marshal event", zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		select {
		case client.send <- raw:
		default:
			// slow client, drop the frame instead of blocking the hub
			h.logger.Warn("frame dropped for slow client", zap.String("operator", client.email))
		}
	}
}

func (h *Hub) shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		client.close()
		delete(h.clients, client)
	}
	h.logger.Info("websocket hub stopped")
}
