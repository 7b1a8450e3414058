// Package datastore defines the storage-operations port consumed by the
// command surface. Two implementations exist: the direct file-backed store
// (adapter/localfs) and the sync decorator that wraps the same interface
// with best-effort remote mirroring (service.SyncService).
package datastore

import (
	"github.com/promptdeck/promptdeck/internal/domain/prompt"
)

// Store is the interface over one identity partition's prompt library.
// Operations are synchronous blocking file I/O; callers invoke them off
// the UI event loop. Network mirroring, where present, happens behind
// these calls and never affects their results.
type Store interface {
	// GetIndex loads the full index, seeding sample prompts on first run.
	GetIndex() (prompt.Index, error)

	// SaveIndex persists the whole index.
	SaveIndex(ix prompt.Index) error

	// GetPrompt returns a prompt with its content. A missing content file
	// yields empty content, not an error.
	GetPrompt(id string) (prompt.Prompt, error)

	// SavePrompt creates (empty id) or updates a prompt and returns the
	// resulting metadata.
	SavePrompt(p prompt.Prompt) (prompt.Metadata, error)

	// DeletePrompt removes a prompt and its content file.
	DeletePrompt(id string) error

	// AddFolder creates a new folder. Names are trimmed and lowercased.
	AddFolder(name string) error

	// RenameFolder renames a folder and reassigns its prompts.
	RenameFolder(oldName, newName string) error

	// DeleteFolder removes a folder, moving its prompts to uncategorized.
	DeleteFolder(name string) error

	// RecordUsage increments a prompt's use count and stamps lastUsed.
	RecordUsage(id string) error

	// Search scores prompts against the query. An empty query returns all
	// prompts ordered by recency.
	Search(query string) ([]prompt.SearchResult, error)

	// GetFolders returns the folder list from the index.
	GetFolders() ([]string, error)
}
