package localfs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/promptdeck/promptdeck/internal/domain"
	"github.com/promptdeck/promptdeck/internal/domain/prompt"
)

// normalizeFolder applies the canonical folder-name normalization: trim
// whitespace, lowercase.
func normalizeFolder(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// AddFolder creates a new folder, its on-disk directory, and the index
// entry.
func (s *Store) AddFolder(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ix, err := s.loadIndex()
	if err != nil {
		return err
	}

	folder := normalizeFolder(name)
	if folder == "" {
		return fmt.Errorf("%w: folder name cannot be empty", domain.ErrValidation)
	}
	if ix.HasFolder(folder) {
		return fmt.Errorf("%w: folder %s", domain.ErrAlreadyExists, folder)
	}

	if err := os.MkdirAll(filepath.Join(s.promptsDir(), folder), 0o755); err != nil {
		return fmt.Errorf("create folder directory: %w", err)
	}
	ix.Folders = append(ix.Folders, folder)
	return s.saveIndex(ix)
}

// RenameFolder renames a folder's directory, reassigns its prompts, and
// updates the folder list in place.
func (s *Store) RenameFolder(oldName, newName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ix, err := s.loadIndex()
	if err != nil {
		return err
	}

	oldFolder := normalizeFolder(oldName)
	newFolder := normalizeFolder(newName)

	if newFolder == "" {
		return fmt.Errorf("%w: folder name cannot be empty", domain.ErrValidation)
	}
	if !ix.HasFolder(oldFolder) {
		return fmt.Errorf("%w: folder %s", domain.ErrNotFound, oldFolder)
	}
	if ix.HasFolder(newFolder) {
		return fmt.Errorf("%w: folder %s", domain.ErrAlreadyExists, newFolder)
	}

	oldPath := filepath.Join(s.promptsDir(), oldFolder)
	if _, statErr := os.Stat(oldPath); statErr == nil {
		if err := os.Rename(oldPath, filepath.Join(s.promptsDir(), newFolder)); err != nil {
			return fmt.Errorf("rename folder directory: %w", err)
		}
	}

	var moved []string
	for i := range ix.Prompts {
		if ix.Prompts[i].Folder == oldFolder {
			ix.Prompts[i].Folder = newFolder
			moved = append(moved, ix.Prompts[i].Filename)
		}
	}
	s.invalidateFolder(oldFolder, moved)

	for i, f := range ix.Folders {
		if f == oldFolder {
			ix.Folders[i] = newFolder
			break
		}
	}
	return s.saveIndex(ix)
}

// DeleteFolder removes a folder, moving every contained prompt's content
// file to uncategorized and reassigning the metadata. The index is only
// persisted after all moves succeeded; a failed move aborts the whole
// operation. Moves already performed are not rolled back.
func (s *Store) DeleteFolder(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ix, err := s.loadIndex()
	if err != nil {
		return err
	}

	folder := normalizeFolder(name)
	if folder == prompt.FolderUncategorized {
		return fmt.Errorf("%w: cannot delete the uncategorized folder", domain.ErrValidation)
	}
	if !ix.HasFolder(folder) {
		return fmt.Errorf("%w: folder %s", domain.ErrNotFound, folder)
	}

	folderPath := filepath.Join(s.promptsDir(), folder)
	uncatPath := filepath.Join(s.promptsDir(), prompt.FolderUncategorized)
	if err := os.MkdirAll(uncatPath, 0o755); err != nil {
		return fmt.Errorf("create uncategorized folder: %w", err)
	}

	var moved []string
	for i := range ix.Prompts {
		if ix.Prompts[i].Folder != folder {
			continue
		}
		src := filepath.Join(folderPath, ix.Prompts[i].Filename)
		dst := filepath.Join(uncatPath, ix.Prompts[i].Filename)
		if _, statErr := os.Stat(src); statErr == nil {
			if err := os.Rename(src, dst); err != nil {
				return fmt.Errorf("move prompt file: %w", err)
			}
		}
		ix.Prompts[i].Folder = prompt.FolderUncategorized
		moved = append(moved, ix.Prompts[i].Filename)
	}
	s.invalidateFolder(folder, moved)

	if err := os.RemoveAll(folderPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove folder directory: %w", err)
	}

	kept := ix.Folders[:0]
	for _, f := range ix.Folders {
		if f != folder {
			kept = append(kept, f)
		}
	}
	ix.Folders = kept

	return s.saveIndex(ix)
}
