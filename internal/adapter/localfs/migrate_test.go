package localfs

import (
	"path/filepath"
	"testing"

	"github.com/promptdeck/promptdeck/internal/domain/prompt"
)

func TestMigrateCopiesAnonymousData(t *testing.T) {
	base := t.TempDir()
	stores := NewFactory(base, nil)

	anon := stores.Anonymous()
	ix := prompt.NewIndex()
	ix.Seeded = true
	if err := anon.SaveIndex(ix); err != nil {
		t.Fatal(err)
	}
	meta := mustSave(t, anon, prompt.Prompt{
		Metadata: prompt.Metadata{Name: "Carry Me", Folder: prompt.FolderUncategorized},
		Content:  "body",
	})

	user := stores.ForUser("u1")
	migrated, err := Migrate(anon, user)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if !migrated {
		t.Fatal("expected migration to run")
	}

	got, err := user.GetPrompt(meta.ID)
	if err != nil {
		t.Fatalf("migrated prompt missing: %v", err)
	}
	if got.Content != "body" {
		t.Errorf("migrated content = %q, want body", got.Content)
	}

	// The anonymous partition is left in place.
	if _, err := anon.GetPrompt(meta.ID); err != nil {
		t.Errorf("source partition must be untouched: %v", err)
	}
	if user.Dir() != filepath.Join(base, "users", "u1") {
		t.Errorf("user dir = %q", user.Dir())
	}
}

func TestMigrateSkipsWhenUserHasData(t *testing.T) {
	stores := NewFactory(t.TempDir(), nil)

	anon := stores.Anonymous()
	if _, err := anon.GetIndex(); err != nil {
		t.Fatal(err)
	}

	user := stores.ForUser("u1")
	ix := prompt.NewIndex()
	ix.Seeded = true
	ix.Prompts = append(ix.Prompts, prompt.Metadata{ID: "mine", Name: "Mine", Folder: prompt.FolderUncategorized})
	if err := user.SaveIndex(ix); err != nil {
		t.Fatal(err)
	}

	migrated, err := Migrate(anon, user)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if migrated {
		t.Fatal("migration must not overwrite existing user data")
	}

	got, err := user.GetIndex()
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Prompts) != 1 || got.Prompts[0].ID != "mine" {
		t.Fatalf("user index clobbered: %+v", got.Prompts)
	}
}

func TestMigrateSkipsWhenAnonymousEmpty(t *testing.T) {
	stores := NewFactory(t.TempDir(), nil)

	migrated, err := Migrate(stores.Anonymous(), stores.ForUser("u1"))
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if migrated {
		t.Fatal("nothing to migrate from a partition with no index")
	}
}
