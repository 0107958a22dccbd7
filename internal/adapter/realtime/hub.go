// Package realtime pushes change events to connected browser sessions
// over websockets. Delivery is best-effort: a slow or dead connection
// is dropped rather than allowed to stall a mutation.
package realtime

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"github.com/moneyman/moneyman/internal/domain"
	"github.com/moneyman/moneyman/internal/infrastructure/metrics"
)

// sendBuffer bounds the per-connection outbound queue. A full buffer
// marks the connection as too slow to keep.
const sendBuffer = 32

type envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

// Hub tracks live connections per user and implements usecase.Notifier.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*client]struct{}
	logger  zerolog.Logger
	metrics *metrics.Metrics
}

// NewHub creates an empty Hub. metrics may be nil.
func NewHub(logger zerolog.Logger, m *metrics.Metrics) *Hub {
	return &Hub{
		clients: make(map[string]map[*client]struct{}),
		logger:  logger.With().Str("component", "realtime").Logger(),
		metrics: m,
	}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns, ok := h.clients[c.userID]
	if !ok {
		conns = make(map[*client]struct{})
		h.clients[c.userID] = conns
	}
	conns[c] = struct{}{}

	if h.metrics != nil {
		h.metrics.WebsocketConnections.Inc()
	}
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns, ok := h.clients[c.userID]
	if !ok {
		return
	}
	if _, ok := conns[c]; !ok {
		return
	}
	delete(conns, c)
	close(c.send)
	if len(conns) == 0 {
		delete(h.clients, c.userID)
	}

	if h.metrics != nil {
		h.metrics.WebsocketConnections.Dec()
	}
}

// Connections reports how many live connections a user has.
func (h *Hub) Connections(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

// publish fans the event out to every connection of the user. Slow
// connections are disconnected instead of blocking the caller.
func (h *Hub) publish(userID, event string, data any) {
	payload, err := json.Marshal(envelope{Event: event, Data: data})
	if err != nil {
		h.logger.Error().Err(err).Str("event", event).Msg("failed to encode event")
		return
	}

	h.mu.RLock()
	stalled := make([]*client, 0)
	for c := range h.clients[userID] {
		select {
		case c.send <- payload:
			if h.metrics != nil {
				h.metrics.EventsPushed.WithLabelValues(event).Inc()
			}
		default:
			stalled = append(stalled, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range stalled {
		h.logger.Warn().
			Str("user_id", userID).
			Str("event", event).
			Msg("dropping stalled websocket connection")
		h.unregister(c)
	}
}

// AccountsChanged notifies the user's devices that account state moved.
func (h *Hub) AccountsChanged(userID string) {
	h.publish(userID, domain.EventAccountsUpdated, nil)
}

// TransactionsChanged notifies the user's devices the ledger moved.
func (h *Hub) TransactionsChanged(userID string) {
	h.publish(userID, domain.EventTransactionsUpdated, nil)
}

// DashboardChanged notifies the user's devices that aggregates moved.
func (h *Hub) DashboardChanged(userID string) {
	h.publish(userID, domain.EventDashboardUpdated, nil)
}

// CategoriesChanged notifies the user's devices the category set moved.
func (h *Hub) CategoriesChanged(userID string) {
	h.publish(userID, domain.EventCategoriesUpdated, nil)
}

// AccessRequested pushes a pending pairing request to the owner.
func (h *Hub) AccessRequested(ownerID string, event domain.AccessRequestEvent) {
	h.publish(ownerID, domain.EventAccessRequest, event)
}

// AccessCodeIssued pushes the one-time code to the owner's devices.
func (h *Hub) AccessCodeIssued(ownerID string, event domain.AccessCodeEvent) {
	h.publish(ownerID, domain.EventAccessCode, event)
}

// NotificationCreated pushes a new feed item.
func (h *Hub) NotificationCreated(userID string, n *domain.Notification) {
	h.publish(userID, domain.EventNotification, map[string]any{
		"id":      n.ID,
		"type":    n.Type,
		"title":   n.Title,
		"message": n.Message,
		"icon":    n.Icon,
		"meta":    n.Meta,
	})
}
