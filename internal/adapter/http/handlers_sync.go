package http

import (
	"net/http"

	"github.com/promptdeck/promptdeck/internal/adapter/ws"
)

type authRequest struct {
	UserID string `json:"userId"`
	Token  string `json:"idToken"`
}

type tokenRequest struct {
	Token string `json:"idToken"`
}

type syncStatus struct {
	Authenticated bool   `json:"authenticated"`
	UserID        string `json:"userId,omitempty"`
}

// SetSyncAuth stores credentials, switches to the user's partition, and
// pulls the cloud copy down. The download error is deliberately ignored:
// the cloud is source of truth after sign-in, but a failed pull must not
// fail the sign-in itself; the user can trigger a manual sync.
func (h *Handlers) SetSyncAuth(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[authRequest](w, r)
	if !ok {
		return
	}
	if req.UserID == "" || req.Token == "" {
		writeError(w, http.StatusBadRequest, "userId and idToken are required")
		return
	}

	h.Sync.SetAuth(req.UserID, req.Token)
	_ = h.Settings.SetSyncEnabled(true)
	_ = h.Sync.SyncFromCloud(r.Context())

	if h.Hub != nil {
		h.Hub.BroadcastEvent(r.Context(), ws.EventAuthChanged,
			ws.AuthEvent{Authenticated: true, UserID: req.UserID})
	}
	w.WriteHeader(http.StatusNoContent)
}

// ClearSyncAuth drops credentials and switches back to the anonymous
// partition. Local data is untouched.
func (h *Handlers) ClearSyncAuth(w http.ResponseWriter, r *http.Request) {
	h.Sync.ClearAuth()
	_ = h.Settings.SetSyncEnabled(false)

	if h.Hub != nil {
		h.Hub.BroadcastEvent(r.Context(), ws.EventAuthChanged, ws.AuthEvent{})
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpdateSyncToken replaces the stored token after a refresh.
func (h *Handlers) UpdateSyncToken(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[tokenRequest](w, r)
	if !ok {
		return
	}
	if req.Token == "" {
		writeError(w, http.StatusBadRequest, "idToken is required")
		return
	}
	h.Sync.UpdateToken(req.Token)
	w.WriteHeader(http.StatusNoContent)
}

// SyncStatus reports whether sync is authenticated and for whom.
func (h *Handlers) SyncStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, syncStatus{
		Authenticated: h.Sync.IsAuthenticated(),
		UserID:        h.Sync.CurrentUserID(),
	})
}

// SyncUpload uploads the full local library to the cloud.
func (h *Handlers) SyncUpload(w http.ResponseWriter, r *http.Request) {
	if err := h.Sync.SyncToCloud(r.Context()); err != nil {
		writeDomainError(w, err)
		return
	}
	_ = h.Settings.StampLastSync()
	if h.Hub != nil {
		h.Hub.BroadcastEvent(r.Context(), ws.EventSyncCompleted, ws.SyncEvent{Direction: "upload"})
	}
	w.WriteHeader(http.StatusNoContent)
}

// SyncDownload replaces the local library with the cloud copy.
func (h *Handlers) SyncDownload(w http.ResponseWriter, r *http.Request) {
	if err := h.Sync.SyncFromCloud(r.Context()); err != nil {
		writeDomainError(w, err)
		return
	}
	_ = h.Settings.StampLastSync()
	if h.Hub != nil {
		h.Hub.BroadcastEvent(r.Context(), ws.EventSyncCompleted, ws.SyncEvent{Direction: "download"})
	}
	w.WriteHeader(http.StatusNoContent)
}
