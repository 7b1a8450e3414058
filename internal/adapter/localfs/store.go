// Package localfs implements the file-backed data store. Each identity
// partition is a directory holding index.json plus one content file per
// prompt under prompts/<folder>/<filename>.
package localfs

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/promptdeck/promptdeck/internal/domain"
	"github.com/promptdeck/promptdeck/internal/domain/prompt"
	"github.com/promptdeck/promptdeck/internal/port/cache"
	"github.com/promptdeck/promptdeck/internal/port/datastore"
)

const indexFile = "index.json"

var _ datastore.Store = (*Store)(nil)

// Store is the file-backed prompt store for one identity partition.
// Mutating operations are serialized internally; the command surface may
// call concurrently.
type Store struct {
	mu     sync.Mutex
	dir    string
	userID string
	cache  cache.Cache
}

// Option configures a Store.
type Option func(*Store)

// WithContentCache attaches a content cache used by the search engine's
// lazy content tier.
func WithContentCache(c cache.Cache) Option {
	return func(s *Store) { s.cache = c }
}

// New creates a store rooted at dir, the partition directory for the
// anonymous identity.
func New(dir string, opts ...Option) *Store {
	s := &Store{dir: dir}
	for _, o := range opts {
		o(s)
	}
	return s
}

// NewForUser creates a store rooted at dir for the given authenticated
// user id.
func NewForUser(dir, userID string, opts ...Option) *Store {
	s := New(dir, opts...)
	s.userID = userID
	return s
}

// Dir returns the partition directory.
func (s *Store) Dir() string { return s.dir }

// UserID returns the owning user id, empty for the anonymous partition.
func (s *Store) UserID() string { return s.userID }

// HasData reports whether this partition has an index file.
func (s *Store) HasData() bool {
	_, err := os.Stat(s.indexPath())
	return err == nil
}

func (s *Store) indexPath() string {
	return filepath.Join(s.dir, indexFile)
}

func (s *Store) promptsDir() string {
	return filepath.Join(s.dir, "prompts")
}

// loadIndex reads the index, seeding sample prompts when the partition is
// fresh. An index that is empty but already seeded is returned as-is: the
// user cleared their library on purpose.
func (s *Store) loadIndex() (prompt.Index, error) {
	data, err := os.ReadFile(s.indexPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s.seed()
		}
		return prompt.Index{}, fmt.Errorf("read index: %w", err)
	}

	var ix prompt.Index
	if err := json.Unmarshal(data, &ix); err != nil {
		return prompt.Index{}, fmt.Errorf("parse index: %w", err)
	}

	if len(ix.Prompts) == 0 && !ix.Seeded {
		return s.seed()
	}
	return ix, nil
}

// saveIndex serializes the whole index, creating the partition directory
// if needed.
func (s *Store) saveIndex(ix prompt.Index) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	data, err := json.MarshalIndent(ix, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize index: %w", err)
	}
	if err := os.WriteFile(s.indexPath(), data, 0o644); err != nil {
		return fmt.Errorf("write index: %w", err)
	}
	return nil
}

// seed writes the sample prompts and a seeded index.
func (s *Store) seed() (prompt.Index, error) {
	ix, contents := prompt.Samples()
	for i, meta := range ix.Prompts {
		if err := s.writeContent(meta.Folder, meta.Filename, contents[i]); err != nil {
			return prompt.Index{}, err
		}
	}
	if err := s.saveIndex(ix); err != nil {
		return prompt.Index{}, err
	}
	return ix, nil
}

// GetIndex loads the index, seeding sample prompts on first run.
func (s *Store) GetIndex() (prompt.Index, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadIndex()
}

// SaveIndex persists the whole index.
func (s *Store) SaveIndex(ix prompt.Index) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveIndex(ix)
}

// GetFolders returns the folder list from the index.
func (s *Store) GetFolders() ([]string, error) {
	ix, err := s.GetIndex()
	if err != nil {
		return nil, err
	}
	return ix.Folders, nil
}

// GetPrompt returns the prompt with the given id, including content. A
// missing content file yields empty content.
func (s *Store) GetPrompt(id string) (prompt.Prompt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ix, err := s.loadIndex()
	if err != nil {
		return prompt.Prompt{}, err
	}
	meta := ix.Find(id)
	if meta == nil {
		return prompt.Prompt{}, fmt.Errorf("%w: prompt %s", domain.ErrNotFound, id)
	}
	content, err := s.readContent(meta.Folder, meta.Filename)
	if err != nil {
		return prompt.Prompt{}, err
	}
	return prompt.Prompt{Metadata: *meta, Content: content}, nil
}

// SavePrompt creates or updates a prompt. Creation assigns a UUID and a
// slug-derived filename; updates preserve created and refresh updated and
// lastUsed so edited prompts resurface in recency views. Content is
// written before the index so a content failure cannot orphan index state.
func (s *Store) SavePrompt(p prompt.Prompt) (prompt.Metadata, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ix, err := s.loadIndex()
	if err != nil {
		return prompt.Metadata{}, err
	}
	now := prompt.Now()

	var meta prompt.Metadata
	if existing := ix.Find(p.ID); existing != nil {
		meta = p.Metadata
		meta.Created = existing.Created
		meta.Updated = now
		meta.LastUsed = now
		*existing = meta

		if !ix.HasFolder(meta.Folder) {
			ix.Folders = append(ix.Folders, meta.Folder)
		}
	} else {
		meta = p.Metadata
		if meta.ID == "" {
			meta.ID = uuid.NewString()
		}
		if meta.Filename == "" {
			meta.Filename = prompt.Slugify(meta.Name) + prompt.ContentExt
		}
		meta.UseCount = 0
		meta.Created = now
		meta.Updated = now
		meta.LastUsed = now

		if !ix.HasFolder(meta.Folder) {
			ix.Folders = append(ix.Folders, meta.Folder)
		}
		ix.Prompts = append(ix.Prompts, meta)
	}

	if err := s.writeContent(meta.Folder, meta.Filename, p.Content); err != nil {
		return prompt.Metadata{}, err
	}
	if err := s.saveIndex(ix); err != nil {
		return prompt.Metadata{}, err
	}
	return meta, nil
}

// DeletePrompt removes a prompt's metadata and content file. An already
// missing content file is tolerated.
func (s *Store) DeletePrompt(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ix, err := s.loadIndex()
	if err != nil {
		return err
	}

	idx := -1
	for i := range ix.Prompts {
		if ix.Prompts[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: prompt %s", domain.ErrNotFound, id)
	}

	meta := ix.Prompts[idx]
	ix.Prompts = append(ix.Prompts[:idx], ix.Prompts[idx+1:]...)

	if err := s.deleteContent(meta.Folder, meta.Filename); err != nil {
		return err
	}
	return s.saveIndex(ix)
}

// RecordUsage increments a prompt's use count and stamps lastUsed.
func (s *Store) RecordUsage(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ix, err := s.loadIndex()
	if err != nil {
		return err
	}
	meta := ix.Find(id)
	if meta == nil {
		return fmt.Errorf("%w: prompt %s", domain.ErrNotFound, id)
	}
	meta.UseCount++
	meta.LastUsed = prompt.Now()
	return s.saveIndex(ix)
}
