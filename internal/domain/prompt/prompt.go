// Package prompt defines the record model for the prompt library: prompt
// metadata, the per-partition index, folder metadata, and search results.
//
// Metadata and content are split: metadata lives in the aggregate index
// (one JSON document per identity partition), while content lives in
// individually addressable files keyed by (folder, filename).
package prompt

import (
	"strings"
	"time"
)

// FolderUncategorized is the protected default folder. It always exists,
// cannot be deleted, and receives the prompts of deleted folders.
const FolderUncategorized = "uncategorized"

// ContentExt is the file extension for prompt content files.
const ContentExt = ".md"

// Metadata describes a prompt without its content body.
type Metadata struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Folder      string `json:"folder"`
	Description string `json:"description"`
	Filename    string `json:"filename"`
	UseCount    uint32 `json:"useCount"`
	LastUsed    string `json:"lastUsed,omitempty"`
	Created     string `json:"created"`
	Updated     string `json:"updated"`
	Icon        string `json:"icon,omitempty"`
	Color       string `json:"color,omitempty"`
}

// Prompt is a full record: metadata plus the text content body.
type Prompt struct {
	Metadata
	Content string `json:"content"`
}

// SearchResult pairs a prompt's metadata with its relevance score.
// Transient, never persisted.
type SearchResult struct {
	Prompt Metadata `json:"prompt"`
	Score  float64  `json:"score"`
}

// FolderMeta holds cosmetic folder attributes, keyed by folder id.
type FolderMeta struct {
	Name  string `json:"name"`
	Icon  string `json:"icon,omitempty"`
	Color string `json:"color,omitempty"`
}

// Index is the aggregate document for one identity partition: metadata for
// every prompt plus the folder list. It is the atomic unit of persistence
// for structural changes.
type Index struct {
	Prompts    []Metadata            `json:"prompts"`
	Folders    []string              `json:"folders"`
	FolderMeta map[string]FolderMeta `json:"folderMeta,omitempty"`
	// Seeded is set once sample prompts have been created for this
	// partition. It stays true even after the user deletes everything, so
	// an intentionally emptied library is never re-seeded.
	Seeded bool `json:"seeded"`
}

// NewIndex returns an empty unseeded index containing only the protected
// uncategorized folder.
func NewIndex() Index {
	return Index{
		Prompts: []Metadata{},
		Folders: []string{FolderUncategorized},
	}
}

// Find returns a pointer into Prompts for the entry with the given id,
// or nil if absent.
func (ix *Index) Find(id string) *Metadata {
	for i := range ix.Prompts {
		if ix.Prompts[i].ID == id {
			return &ix.Prompts[i]
		}
	}
	return nil
}

// HasFolder reports whether the folder list contains name.
func (ix *Index) HasFolder(name string) bool {
	for _, f := range ix.Folders {
		if f == name {
			return true
		}
	}
	return false
}

// Now returns the current time formatted the way all record timestamps are
// stored: RFC 3339 in UTC. Lexicographic order on these strings matches
// chronological order.
func Now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// Slugify converts a display name to a filename-safe slug: lowercased,
// every run of non-alphanumeric characters collapsed to a single hyphen,
// no leading or trailing hyphens.
func Slugify(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteRune('-')
		}
	}
	parts := strings.FieldsFunc(b.String(), func(r rune) bool { return r == '-' })
	return strings.Join(parts, "-")
}

// Samples returns the starter index and content bodies seeded into a fresh
// partition. The contents slice is parallel to the returned index.Prompts.
func Samples() (Index, []string) {
	now := Now()

	metas := []Metadata{
		{
			ID:          "summarize",
			Name:        "Summarize",
			Folder:      "writing",
			Description: "Summarize text concisely",
			Filename:    "summarize" + ContentExt,
			Created:     now,
			Updated:     now,
		},
		{
			ID:          "improve-writing",
			Name:        "Improve Writing",
			Folder:      "writing",
			Description: "Polish and improve written content",
			Filename:    "improve-writing" + ContentExt,
			Created:     now,
			Updated:     now,
		},
	}

	contents := []string{
		"Please summarize the following text. Provide:\n\n1. A brief one-sentence summary\n2. Key points (3-5 bullet points)\n3. Any important details or nuances\n\nText to summarize:\n",
		"Please improve the following text for clarity, conciseness, and impact. Maintain the original meaning and tone while making it more effective.\n\nText to improve:\n",
	}

	return Index{
		Prompts: metas,
		Folders: []string{"writing", FolderUncategorized},
		Seeded:  true,
	}, contents
}
