package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/promptdeck/promptdeck/internal/adapter/ws"
	"github.com/promptdeck/promptdeck/internal/domain/prompt"
	"github.com/promptdeck/promptdeck/internal/domain/settings"
	"github.com/promptdeck/promptdeck/internal/service"
)

// Handlers bundles the services the command surface depends on.
type Handlers struct {
	Sync     *service.SyncService
	Settings *service.SettingsService
	Hub      *ws.Hub
}

// broadcastFolders pushes the current folder list to connected windows.
func (h *Handlers) broadcastFolders(r *http.Request) {
	if h.Hub == nil {
		return
	}
	folders, err := h.Sync.GetFolders()
	if err != nil {
		return
	}
	h.Hub.BroadcastEvent(r.Context(), ws.EventFoldersChanged, ws.FoldersEvent{Folders: folders})
}

// GetIndex returns the full index: all prompt metadata plus folders.
func (h *Handlers) GetIndex(w http.ResponseWriter, _ *http.Request) {
	ix, err := h.Sync.GetIndex()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ix)
}

// GetFolders returns the folder list.
func (h *Handlers) GetFolders(w http.ResponseWriter, _ *http.Request) {
	folders, err := h.Sync.GetFolders()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, folders)
}

// GetPrompt returns one prompt including its content.
func (h *Handlers) GetPrompt(w http.ResponseWriter, r *http.Request) {
	p, err := h.Sync.GetPrompt(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// SavePrompt creates or updates a prompt and returns the stored metadata.
func (h *Handlers) SavePrompt(w http.ResponseWriter, r *http.Request) {
	p, ok := readJSON[prompt.Prompt](w, r)
	if !ok {
		return
	}
	if p.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if p.Folder == "" {
		p.Folder = prompt.FolderUncategorized
	}

	meta, err := h.Sync.SavePrompt(p)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if h.Hub != nil {
		h.Hub.BroadcastEvent(r.Context(), ws.EventPromptSaved,
			ws.PromptEvent{ID: meta.ID, Folder: meta.Folder})
	}
	writeJSON(w, http.StatusOK, meta)
}

// DeletePrompt removes a prompt.
func (h *Handlers) DeletePrompt(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Sync.DeletePrompt(id); err != nil {
		writeDomainError(w, err)
		return
	}
	if h.Hub != nil {
		h.Hub.BroadcastEvent(r.Context(), ws.EventPromptDeleted, ws.PromptEvent{ID: id})
	}
	w.WriteHeader(http.StatusNoContent)
}

// RecordUsage bumps a prompt's usage stats.
func (h *Handlers) RecordUsage(w http.ResponseWriter, r *http.Request) {
	if err := h.Sync.RecordUsage(chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Search runs a query against the active partition. An empty q returns
// the recency-ordered browse list.
func (h *Handlers) Search(w http.ResponseWriter, r *http.Request) {
	results, err := h.Sync.Search(r.URL.Query().Get("q"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

type folderRequest struct {
	Name string `json:"name"`
}

// AddFolder creates a folder.
func (h *Handlers) AddFolder(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[folderRequest](w, r)
	if !ok {
		return
	}
	if err := h.Sync.AddFolder(req.Name); err != nil {
		writeDomainError(w, err)
		return
	}
	h.broadcastFolders(r)
	w.WriteHeader(http.StatusCreated)
}

// RenameFolder renames a folder; the new name comes from the body.
func (h *Handlers) RenameFolder(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[folderRequest](w, r)
	if !ok {
		return
	}
	if err := h.Sync.RenameFolder(chi.URLParam(r, "name"), req.Name); err != nil {
		writeDomainError(w, err)
		return
	}
	h.broadcastFolders(r)
	w.WriteHeader(http.StatusNoContent)
}

// DeleteFolder removes a folder, moving its prompts to uncategorized.
func (h *Handlers) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	if err := h.Sync.DeleteFolder(chi.URLParam(r, "name")); err != nil {
		writeDomainError(w, err)
		return
	}
	h.broadcastFolders(r)
	w.WriteHeader(http.StatusNoContent)
}

// GetSettings returns the settings document.
func (h *Handlers) GetSettings(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.Settings.Load())
}

// SaveSettings persists the settings document.
func (h *Handlers) SaveSettings(w http.ResponseWriter, r *http.Request) {
	cfg, ok := readJSON[settings.Settings](w, r)
	if !ok {
		return
	}
	if err := h.Settings.Save(cfg); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
