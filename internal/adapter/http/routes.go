package http

import (
	"github.com/go-chi/chi/v5"
)

// MountRoutes registers all API routes on the given chi router.
func MountRoutes(r chi.Router, h *Handlers) {
	r.Route("/api", func(r chi.Router) {
		// Index
		r.Get("/index", h.GetIndex)
		r.Get("/search", h.Search)

		// Prompts
		r.Post("/prompts", h.SavePrompt)
		r.Get("/prompts/{id}", h.GetPrompt)
		r.Delete("/prompts/{id}", h.DeletePrompt)
		r.Post("/prompts/{id}/usage", h.RecordUsage)

		// Folders
		r.Get("/folders", h.GetFolders)
		r.Post("/folders", h.AddFolder)
		r.Put("/folders/{name}", h.RenameFolder)
		r.Delete("/folders/{name}", h.DeleteFolder)

		// Settings
		r.Get("/settings", h.GetSettings)
		r.Put("/settings", h.SaveSettings)

		// Sync
		r.Get("/sync/status", h.SyncStatus)
		r.Post("/sync/auth", h.SetSyncAuth)
		r.Delete("/sync/auth", h.ClearSyncAuth)
		r.Put("/sync/token", h.UpdateSyncToken)
		r.Post("/sync/upload", h.SyncUpload)
		r.Post("/sync/download", h.SyncDownload)
	})
}
