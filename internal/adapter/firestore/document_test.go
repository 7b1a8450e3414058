package firestore

import (
	"testing"

	"github.com/promptdeck/promptdeck/internal/domain/prompt"
)

func TestDocFromPromptRoundTrip(t *testing.T) {
	p := prompt.Prompt{
		Metadata: prompt.Metadata{
			ID:          "abc",
			Name:        "Summarize",
			Folder:      "writing",
			Description: "short summaries",
			Filename:    "summarize.md",
			UseCount:    7,
			LastUsed:    "2026-01-02T03:04:05Z",
			Created:     "2025-01-01T00:00:00Z",
			Updated:     "2026-01-02T03:04:05Z",
			Icon:        "pen",
			Color:       "#aabbcc",
		},
		Content: "Summarize the following:\n",
	}

	doc := docFromPrompt(p)
	if got := doc.getString("useCount"); got != "" {
		t.Errorf("useCount must be an integerValue, got stringValue %q", got)
	}
	if doc.Fields["useCount"].IntegerValue == nil || *doc.Fields["useCount"].IntegerValue != "7" {
		t.Error("useCount must travel as the decimal string 7")
	}

	got, ok := promptFromDoc(doc)
	if !ok {
		t.Fatal("round trip rejected its own document")
	}
	if got != p {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, p)
	}
}

func TestDocFromPromptOmitsEmptyOptionalFields(t *testing.T) {
	doc := docFromPrompt(prompt.Prompt{
		Metadata: prompt.Metadata{ID: "a", Name: "A", Folder: "f", Filename: "a.md"},
	})
	for _, key := range []string{"lastUsed", "icon", "color"} {
		if _, ok := doc.Fields[key]; ok {
			t.Errorf("empty optional field %q must be omitted", key)
		}
	}
}

func TestPromptFromDocRequiresIdentity(t *testing.T) {
	base := func() Document {
		return docFromPrompt(prompt.Prompt{
			Metadata: prompt.Metadata{ID: "a", Name: "A", Folder: "f", Filename: "a.md"},
		})
	}

	for _, key := range []string{"id", "name", "folder", "filename"} {
		doc := base()
		delete(doc.Fields, key)
		if _, ok := promptFromDoc(doc); ok {
			t.Errorf("document without %q must be rejected", key)
		}
	}
}

func TestGetUint32FallsBackToZero(t *testing.T) {
	junk := "not-a-number"
	doc := Document{Fields: map[string]Value{
		"useCount": {IntegerValue: &junk},
	}}
	if got := doc.getUint32("useCount"); got != 0 {
		t.Errorf("malformed useCount = %d, want 0", got)
	}
	if got := doc.getUint32("absent"); got != 0 {
		t.Errorf("absent useCount = %d, want 0", got)
	}
}

func TestMetaRoundTrip(t *testing.T) {
	meta := UserMeta{
		Folders: []string{"writing", "uncategorized"},
		FolderMeta: map[string]prompt.FolderMeta{
			"writing": {Name: "Writing", Icon: "pen", Color: "#fff"},
		},
	}

	got := metaFromDoc(docFromMeta(meta))
	if len(got.Folders) != 2 || got.Folders[0] != "writing" {
		t.Fatalf("folders = %v", got.Folders)
	}
	fm, ok := got.FolderMeta["writing"]
	if !ok || fm.Name != "Writing" || fm.Icon != "pen" || fm.Color != "#fff" {
		t.Fatalf("folder meta = %+v", got.FolderMeta)
	}
}

func TestMetaFromDocDefaultsToUncategorized(t *testing.T) {
	got := metaFromDoc(Document{Fields: map[string]Value{}})
	if len(got.Folders) != 1 || got.Folders[0] != prompt.FolderUncategorized {
		t.Fatalf("folders = %v, want just uncategorized", got.Folders)
	}
}
