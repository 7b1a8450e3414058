package prompt

import (
	"testing"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Summarize", "summarize"},
		{"Improve Writing", "improve-writing"},
		{"  Hello,   World!  ", "hello-world"},
		{"Already-Slugged", "already-slugged"},
		{"--weird__chars//", "weird-chars"},
		{"UPPER case 123", "upper-case-123"},
		{"!!!", ""},
	}

	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNewIndex(t *testing.T) {
	ix := NewIndex()
	if len(ix.Prompts) != 0 {
		t.Fatalf("expected empty prompts, got %d", len(ix.Prompts))
	}
	if !ix.HasFolder(FolderUncategorized) {
		t.Fatal("expected uncategorized folder in new index")
	}
	if ix.Seeded {
		t.Fatal("new index must not be marked seeded")
	}
}

func TestIndexFind(t *testing.T) {
	ix := NewIndex()
	ix.Prompts = append(ix.Prompts, Metadata{ID: "a", Name: "Alpha"})

	if got := ix.Find("a"); got == nil || got.Name != "Alpha" {
		t.Fatalf("expected to find prompt a, got %v", got)
	}
	if got := ix.Find("missing"); got != nil {
		t.Fatalf("expected nil for missing id, got %v", got)
	}

	// Find must return a pointer into the index, not a copy.
	ix.Find("a").Name = "Renamed"
	if ix.Prompts[0].Name != "Renamed" {
		t.Fatal("Find returned a copy instead of a pointer into Prompts")
	}
}

func TestSamples(t *testing.T) {
	ix, contents := Samples()

	if len(ix.Prompts) != len(contents) {
		t.Fatalf("prompts (%d) and contents (%d) must be parallel", len(ix.Prompts), len(contents))
	}
	if !ix.Seeded {
		t.Fatal("sample index must be marked seeded")
	}
	if !ix.HasFolder(FolderUncategorized) {
		t.Fatal("sample index must contain uncategorized")
	}

	seen := make(map[string]bool)
	for i, meta := range ix.Prompts {
		if seen[meta.ID] {
			t.Fatalf("duplicate sample id %q", meta.ID)
		}
		seen[meta.ID] = true
		if !ix.HasFolder(meta.Folder) {
			t.Fatalf("sample %q references folder %q missing from folder list", meta.ID, meta.Folder)
		}
		if meta.Filename == "" || contents[i] == "" {
			t.Fatalf("sample %q has empty filename or content", meta.ID)
		}
	}
}
