package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/coder/websocket"
)

func dialHub(t *testing.T, hub *Hub) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(hub.HandleWS))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	c, _, err := websocket.Dial(ctx, "ws"+srv.URL[len("http"):], nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { c.Close(websocket.StatusNormalClosure, "") })
	return c
}

func waitForConnections(t *testing.T, hub *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for hub.ConnectionCount() != want {
		if time.Now().After(deadline) {
			t.Fatalf("connection count = %d, want %d", hub.ConnectionCount(), want)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestBroadcastEventReachesClient(t *testing.T) {
	hub := NewHub()
	c := dialHub(t, hub)
	waitForConnections(t, hub, 1)

	hub.BroadcastEvent(context.Background(), EventPromptSaved, PromptEvent{ID: "p1", Folder: "writing"})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, data, err := c.Read(ctx)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	if msg.Type != EventPromptSaved {
		t.Errorf("type = %q, want %q", msg.Type, EventPromptSaved)
	}
	var payload PromptEvent
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if payload.ID != "p1" || payload.Folder != "writing" {
		t.Errorf("payload = %+v", payload)
	}
}

func TestDisconnectRemovesConnection(t *testing.T) {
	hub := NewHub()
	c := dialHub(t, hub)
	waitForConnections(t, hub, 1)

	c.Close(websocket.StatusNormalClosure, "")
	waitForConnections(t, hub, 0)
}

func TestBroadcastWithNoConnections(t *testing.T) {
	hub := NewHub()
	// Must not panic or block.
	hub.BroadcastEvent(context.Background(), EventSyncCompleted, SyncEvent{Direction: "upload"})
	if hub.ConnectionCount() != 0 {
		t.Fatalf("count = %d", hub.ConnectionCount())
	}
}
