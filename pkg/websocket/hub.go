package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Hub tracks open connections per user and fans messages out to them.
type Hub struct {
	userClients map[string]map[*Client]struct{}
	register    chan *Client
	unregister  chan *Client
	done        chan struct{}
	mu          sync.RWMutex
	logger      *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		userClients: make(map[string]map[*Client]struct{}),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		done:        make(chan struct{}),
		logger:      logger,
	}
}

// Run serves register/unregister requests until ctx is cancelled. Run must be called once.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case client := <-h.register:
			h.mu.Lock()
			set, ok := h.userClients[client.UserID]
			if !ok {
				set = make(map[*Client]struct{})
				h.userClients[client.UserID] = set
			}
			set[client] = struct{}{}
			h.mu.Unlock()
			h.logger.Debug("websocket client registered", zap.String("userID", client.UserID))
		case client := <-h.unregister:
			h.remove(client)
		}
	}
}

// Register attaches client to the hub. It returns false when the hub has stopped; the caller
// then owns the connection and must close it.
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

// Unregister detaches client and closes its Send channel. After the hub stopped it is a no-op,
// since shutdown already closed every channel.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Done is closed once Run has returned.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.userClients[client.UserID]
	if !ok {
		return
	}
	if _, ok := set[client]; !ok {
		return
	}
	delete(set, client)
	close(client.Send)
	if len(set) == 0 {
		delete(h.userClients, client.UserID)
	}
	h.logger.Debug("websocket client unregistered", zap.String("userID", client.UserID))
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for userID, set := range h.userClients {
		for c := range set {
			close(c.Send)
		}
		delete(h.userClients, userID)
	}
}

// Connections returns the number of open connections of userID.
func (h *Hub) Connections(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.userClients[userID])
}

// SendMessageToUser delivers payload to every open connection of userID and returns how many
// connections received it. Slow connections whose buffer is full are skipped.
func (h *Hub) SendMessageToUser(userID string, payload interface{}, messageType string) (int, error) {
	messageBytes, err := json.Marshal(Envelope{
		Type:      messageType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		return 0, err
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for client := range h.userClients[userID] {
		select {
		case client.Send <- messageBytes:
			delivered++
		default:
			h.logger.Warn("websocket send buffer full, dropping message", zap.String("userID", userID))
		}
	}
	return delivered, nil
}
