package ws

import (
	"encoding/json"
	"sync"
	"time"

	"artdex/internal/models"
	"artdex/pkg/hexid"
)

// Review feed event types pushed to staff dashboards.
const (
	EventPending  = "art.pending"
	EventApproved = "art.approved"
	EventRejected = "art.rejected"
)

// ReviewEvent is one moderation-feed message.
type ReviewEvent struct {
	Type      string `json:"type"`
	EntryID   uint   `json:"entry_id"`
	HexID     string `json:"hex_id"`
	BallID    uint   `json:"ball_id"`
	Ball      string `json:"ball,omitempty"`
	Title     string `json:"title,omitempty"`
	Status    string `json:"status"`
	Timestamp int64  `json:"timestamp"`
}

// Client is one staff websocket connection.
type Client struct {
	UserID uint
	Send   chan []byte

	hub    *ReviewHub
	mu     sync.Mutex
	closed bool
}

func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.Send)
	if c.hub != nil {
		c.hub.unregister(c)
	}
}

// ReviewHub fans moderation events out to connected staff clients.
type ReviewHub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
}

func NewReviewHub() *ReviewHub {
	return &ReviewHub{clients: make(map[*Client]struct{})}
}

func (h *ReviewHub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c.hub = h
	h.clients[c] = struct{}{}
}

func (h *ReviewHub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, c)
}

func (h *ReviewHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Publish broadcasts an event built from an entry. Slow clients are skipped
// rather than blocking the review path.
func (h *ReviewHub) Publish(eventType string, entry *models.ArtEntry) {
	ev := ReviewEvent{
		Type:      eventType,
		EntryID:   entry.ID,
		HexID:     hexid.Format(entry.ID),
		BallID:    entry.BallID,
		Ball:      entry.Ball.Country,
		Title:     entry.Title,
		Status:    entry.Status,
		Timestamp: time.Now().Unix(),
	}
	data, _ := json.Marshal(ev)
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()
	for _, c := range clients {
		select {
		case c.Send <- data:
		default:
		}
	}
}
