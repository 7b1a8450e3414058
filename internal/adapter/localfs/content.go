package localfs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// contentKey is the cache key for a prompt body. The cache is shared
// across partition stores, so the key carries the partition directory:
// identical (folder, filename) pairs in different partitions must never
// alias each other.
func (s *Store) contentKey(folder, filename string) string {
	return s.dir + "/" + folder + "/" + filename
}

// readContent reads a prompt body. A missing file yields an empty string,
// not an error.
func (s *Store) readContent(folder, filename string) (string, error) {
	key := s.contentKey(folder, filename)
	if s.cache != nil {
		if data, ok := s.cache.Get(key); ok {
			return string(data), nil
		}
	}

	data, err := os.ReadFile(filepath.Join(s.promptsDir(), folder, filename))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("read prompt file: %w", err)
	}
	if s.cache != nil {
		s.cache.Set(key, data)
	}
	return string(data), nil
}

// writeContent writes a prompt body, creating the folder directory if
// needed.
func (s *Store) writeContent(folder, filename, content string) error {
	dir := filepath.Join(s.promptsDir(), folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create folder %s: %w", folder, err)
	}
	if err := os.WriteFile(filepath.Join(dir, filename), []byte(content), 0o644); err != nil {
		return fmt.Errorf("write prompt file: %w", err)
	}
	if s.cache != nil {
		s.cache.Set(s.contentKey(folder, filename), []byte(content))
	}
	return nil
}

// WriteContent writes a prompt body. Used by the sync service when
// rewriting local content from downloaded records.
func (s *Store) WriteContent(folder, filename, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeContent(folder, filename, content)
}

// deleteContent removes a prompt body, tolerating an already missing file.
func (s *Store) deleteContent(folder, filename string) error {
	err := os.Remove(filepath.Join(s.promptsDir(), folder, filename))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete prompt file: %w", err)
	}
	if s.cache != nil {
		s.cache.Delete(s.contentKey(folder, filename))
	}
	return nil
}

// invalidateFolder drops every cached body for prompts in the given
// folder. Called on folder rename and delete, which move files on disk.
func (s *Store) invalidateFolder(folder string, filenames []string) {
	if s.cache == nil {
		return
	}
	for _, fn := range filenames {
		s.cache.Delete(s.contentKey(folder, fn))
	}
}
