package ws

import (
	"encoding/json"
	"testing"

	"artdex/internal/models"
)

func TestHubPublish(t *testing.T) {
	hub := NewReviewHub()
	client := &Client{UserID: 1, Send: make(chan []byte, 4)}
	hub.Register(client)
	if hub.ClientCount() != 1 {
		t.Fatalf("clients = %d, want 1", hub.ClientCount())
	}

	entry := &models.ArtEntry{
		ID:     26,
		BallID: 3,
		Title:  "midnight dragon",
		Status: "PENDING",
		Ball:   models.Ball{Country: "Atlantis"},
	}
	hub.Publish(EventPending, entry)

	select {
	case data := <-client.Send:
		var ev ReviewEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			t.Fatalf("unmarshal event: %v", err)
		}
		if ev.Type != EventPending {
			t.Errorf("type = %q, want %q", ev.Type, EventPending)
		}
		if ev.EntryID != 26 || ev.HexID != "#1A" {
			t.Errorf("entry id = %d hex %q, want 26 / #1A", ev.EntryID, ev.HexID)
		}
		if ev.Ball != "Atlantis" || ev.Status != "PENDING" {
			t.Errorf("event = %+v", ev)
		}
	default:
		t.Fatal("no event delivered")
	}
}

// A client with a full buffer is skipped, not blocked on.
func TestHubPublishSkipsSlowClient(t *testing.T) {
	hub := NewReviewHub()
	slow := &Client{UserID: 1, Send: make(chan []byte)}
	fast := &Client{UserID: 2, Send: make(chan []byte, 1)}
	hub.Register(slow)
	hub.Register(fast)

	hub.Publish(EventApproved, &models.ArtEntry{ID: 1, Status: "APPROVED"})

	if len(fast.Send) != 1 {
		t.Errorf("fast client got %d events, want 1", len(fast.Send))
	}
	if len(slow.Send) != 0 {
		t.Errorf("slow client got %d events, want 0", len(slow.Send))
	}
}

func TestClientCloseUnregisters(t *testing.T) {
	hub := NewReviewHub()
	client := &Client{UserID: 1, Send: make(chan []byte, 1)}
	hub.Register(client)

	client.Close()
	if hub.ClientCount() != 0 {
		t.Errorf("clients = %d, want 0", hub.ClientCount())
	}
	// Closing twice is a no-op rather than a panic.
	client.Close()
}
