package ws

import (
	"context"
	"encoding/json"
	"log/slog"
)

// Event type constants for WebSocket messages.
const (
	EventPromptSaved    = "prompt.saved"
	EventPromptDeleted  = "prompt.deleted"
	EventFoldersChanged = "folders.changed"
	EventSyncCompleted  = "sync.completed"
	EventAuthChanged    = "auth.changed"
)

// PromptEvent is broadcast when a prompt is saved or deleted.
type PromptEvent struct {
	ID     string `json:"id"`
	Folder string `json:"folder,omitempty"`
}

// FoldersEvent is broadcast when the folder list changes.
type FoldersEvent struct {
	Folders []string `json:"folders"`
}

// SyncEvent is broadcast when an explicit bulk sync completes.
type SyncEvent struct {
	Direction string `json:"direction"` // "upload" or "download"
}

// AuthEvent is broadcast when the sync auth state changes.
type AuthEvent struct {
	Authenticated bool   `json:"authenticated"`
	UserID        string `json:"userId,omitempty"`
}

// BroadcastEvent marshals a typed event and broadcasts it.
func (h *Hub) BroadcastEvent(ctx context.Context, eventType string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		slog.Error("marshal ws event payload", "type", eventType, "error", err)
		return
	}

	h.Broadcast(ctx, Message{
		Type:    eventType,
		Payload: json.RawMessage(data),
	})
}
