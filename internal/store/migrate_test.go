package store

import (
	"os"
	"testing"
)

const legacyV0Doc = `{
  "todo": {
    "items": [
      {"id": "todo-1", "text": "Buy milk", "done": false, "html": ""},
      {"text": "No id yet"}
    ],
    "archive": [
      {"id": "todo-2", "text": "Done long ago", "archived_at": 1600000000, "html": ""}
    ]
  },
  "categories": {
    "Work": {"html": "<p>old blob</p>"},
    "Home": {
      "items": [{"title": "Chores", "html": ""}]
    }
  },
  "category_order": ["Work"],
  "memo2": {"html": "<p>free</p>"}
}`

func TestMigrateLegacyDocument(t *testing.T) {
	s := testStore(t)
	if err := s.Ensure(); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(s.DocumentPath(), []byte(legacyV0Doc), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, info, err := s.LoadDocument()
	if err != nil {
		t.Fatalf("LoadDocument error: %v", err)
	}
	if !info.Migrated {
		t.Fatalf("expected migration")
	}

	// v0: text -> title.
	if got := doc.Todo.Items[0].Title; got != "Buy milk" {
		t.Fatalf("expected text->title migration; got %q", got)
	}
	if doc.Todo.Items[0].ID != "todo-1" {
		t.Fatalf("migration must not replace existing ids")
	}
	if doc.Todo.Items[1].ID == "" {
		t.Fatalf("expected fresh id for item without one")
	}
	if got := doc.Todo.Archive[0].Title; got != "Done long ago" {
		t.Fatalf("archive title migration; got %q", got)
	}

	// v0: memo2 -> free_note.
	if doc.FreeNote.HTML != "<p>free</p>" {
		t.Fatalf("expected memo2 -> free_note; got %q", doc.FreeNote.HTML)
	}

	// v1: blob category -> item collection.
	work := doc.Categories["Work"]
	if work == nil || len(work.Items) != 1 {
		t.Fatalf("expected Work blob converted to one item; got %+v", work)
	}
	if work.Items[0].HTML != "<p>old blob</p>" || work.Items[0].ID == "" {
		t.Fatalf("blob item = %+v", work.Items[0])
	}
	if work.Archive == nil {
		t.Fatalf("expected archive initialized")
	}

	// v2: defaults + order completion ("Home" appended).
	home := doc.Categories["Home"]
	if home.Items[0].ID == "" {
		t.Fatalf("expected id defaulted for Home item")
	}
	if len(doc.CategoryOrder) != 2 || doc.CategoryOrder[0] != "Work" || doc.CategoryOrder[1] != "Home" {
		t.Fatalf("category_order = %v", doc.CategoryOrder)
	}

	// Migration re-persists: a second load is clean.
	doc2, info2, err := s.LoadDocument()
	if err != nil {
		t.Fatal(err)
	}
	if info2.Migrated || info2.Fresh {
		t.Fatalf("expected clean reload after re-persist; got %+v", info2)
	}
	if !doc.Equal(doc2) {
		t.Fatalf("re-persisted document differs from migrated one")
	}
}

func TestMigrateCurrentVersionIsUntouched(t *testing.T) {
	s := testStore(t)
	if err := s.SaveDocument(sampleDocument()); err != nil {
		t.Fatal(err)
	}
	raw, err := os.ReadFile(s.DocumentPath())
	if err != nil {
		t.Fatal(err)
	}
	out, migrated, err := Migrate(raw)
	if err != nil {
		t.Fatal(err)
	}
	if migrated {
		t.Fatalf("current-version document should not migrate")
	}
	if string(out) != string(raw) {
		t.Fatalf("current-version document bytes changed")
	}
}
