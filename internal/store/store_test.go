package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"memopad/internal/model"
)

func testStore(t *testing.T) Store {
	t.Helper()
	return Store{Dir: t.TempDir()}
}

func sampleDocument() *model.Document {
	doc := model.NewDocument()
	milk := model.NewItem("Buy milk", "<p>2 liters</p>")
	milk.Done = true
	milk.Color = "#fff8c6"
	doc.Todo.Items = append(doc.Todo.Items, milk, model.NewItem("Call bank", ""))
	doc.Todo.Archive = append(doc.Todo.Archive, model.ArchivedItem{
		Item: model.NewItem("Old task", ""), ArchivedAt: 1700000000,
	})
	doc.Categories["Work"] = &model.Category{
		Items: []model.Item{model.NewItem("Report", "<p>draft</p>")},
		Archive: []model.ArchivedItem{{
			Item: model.NewItem("Retired", ""), ArchivedAt: 1700000100, OriginalCategory: "Work",
		}},
	}
	doc.FreeNote.HTML = "<p>scratch</p>"
	doc.Normalize()
	return doc
}

func TestLoadDocumentMissingFileYieldsDefault(t *testing.T) {
	s := testStore(t)
	doc, info, err := s.LoadDocument()
	if err != nil {
		t.Fatalf("LoadDocument error: %v", err)
	}
	if !info.Fresh {
		t.Fatalf("expected Fresh for missing file")
	}
	if len(doc.Todo.Items) != 0 || len(doc.Categories) != 0 {
		t.Fatalf("expected empty default document")
	}
}

func TestLoadDocumentCorruptFileYieldsDefaultWithWarning(t *testing.T) {
	s := testStore(t)
	if err := s.Ensure(); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(s.DocumentPath(), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	doc, info, err := s.LoadDocument()
	if err != nil {
		t.Fatalf("LoadDocument error: %v", err)
	}
	if !info.Fresh || info.Warning == "" {
		t.Fatalf("expected fresh doc with warning; got %+v", info)
	}
	if len(doc.Todo.Items) != 0 {
		t.Fatalf("expected empty default document")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := testStore(t)
	doc := sampleDocument()
	if err := s.SaveDocument(doc); err != nil {
		t.Fatalf("SaveDocument error: %v", err)
	}

	got, info, err := s.LoadDocument()
	if err != nil {
		t.Fatalf("LoadDocument error: %v", err)
	}
	if info.Fresh || info.Migrated {
		t.Fatalf("unexpected load info %+v", info)
	}
	if !doc.Equal(got) {
		t.Fatalf("round trip mismatch:\nsaved  %+v\nloaded %+v", doc, got)
	}
}

func TestSaveSkipsUnchangedWrite(t *testing.T) {
	s := testStore(t)
	doc := sampleDocument()
	if err := s.SaveDocument(doc); err != nil {
		t.Fatal(err)
	}
	st1, err := os.Stat(s.DocumentPath())
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SaveDocument(doc); err != nil {
		t.Fatal(err)
	}
	st2, err := os.Stat(s.DocumentPath())
	if err != nil {
		t.Fatal(err)
	}
	if !st1.ModTime().Equal(st2.ModTime()) {
		t.Fatalf("expected unchanged save to skip the write")
	}
	// A changed save leaves a .bak of the previous contents.
	doc.FreeNote.HTML = "<p>changed</p>"
	if err := s.SaveDocument(doc); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(s.DocumentPath() + ".bak"); err != nil {
		t.Fatalf("expected .bak after changed save: %v", err)
	}
}

func TestCrashedWriterLeavesCanonicalFileIntact(t *testing.T) {
	s := testStore(t)
	doc := sampleDocument()
	if err := s.SaveDocument(doc); err != nil {
		t.Fatal(err)
	}

	// Simulate a writer that died between temp-file write and rename.
	stray := filepath.Join(s.Dir, "notes.json.123.tmp")
	if err := os.WriteFile(stray, []byte("{\"todo\":"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, info, err := s.LoadDocument()
	if err != nil {
		t.Fatalf("LoadDocument error: %v", err)
	}
	if info.Fresh {
		t.Fatalf("canonical file should have survived the crash")
	}
	if !doc.Equal(got) {
		t.Fatalf("document corrupted by crashed writer")
	}
}

func TestDocumentFileIsPrettyPrintedJSON(t *testing.T) {
	s := testStore(t)
	if err := s.SaveDocument(sampleDocument()); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(s.DocumentPath())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), "\n  \"todo\"") {
		t.Fatalf("expected indented JSON; got %q", string(b[:min(len(b), 80)]))
	}
}

func TestDataDirEnvOverride(t *testing.T) {
	t.Setenv("MEMOPAD_DATA_DIR", "/tmp/memopad-test")
	dir, err := DataDir()
	if err != nil {
		t.Fatal(err)
	}
	if dir != "/tmp/memopad-test" {
		t.Fatalf("DataDir = %q", dir)
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
