package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func runCLI(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--dir", dir, "--yes"}, args...))
	if err := cmd.Execute(); err != nil {
		t.Fatalf("memopad %s: %v\noutput: %s", strings.Join(args, " "), err, out.String())
	}
	return out.String()
}

func dataOf(t *testing.T, raw string) any {
	t.Helper()
	var envelope map[string]any
	if err := json.Unmarshal([]byte(raw), &envelope); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, raw)
	}
	return envelope["data"]
}

func TestInitAndStatus(t *testing.T) {
	dir := t.TempDir()

	data := dataOf(t, runCLI(t, dir, "init")).(map[string]any)
	if data["created"] != true {
		t.Fatalf("init data = %v", data)
	}
	data = dataOf(t, runCLI(t, dir, "init")).(map[string]any)
	if data["created"] != false {
		t.Fatal("second init must not report created")
	}

	data = dataOf(t, runCLI(t, dir, "status")).(map[string]any)
	if data["todos"] != float64(0) || data["categories"] != float64(0) {
		t.Fatalf("status = %v", data)
	}
}

func TestTodoLifecycleThroughCLI(t *testing.T) {
	dir := t.TempDir()

	added := dataOf(t, runCLI(t, dir, "todo", "add", "Buy", "milk")).(map[string]any)
	if added["title"] != "Buy milk" {
		t.Fatalf("added = %v", added)
	}
	id := added["id"].(string)

	toggled := dataOf(t, runCLI(t, dir, "todo", "toggle", id[:8])).(map[string]any)
	if toggled["done"] != true {
		t.Fatalf("toggled = %v", toggled)
	}

	runCLI(t, dir, "todo", "done")
	if list := dataOf(t, runCLI(t, dir, "todo", "list")).([]any); len(list) != 0 {
		t.Fatalf("todo list = %v, want empty after archive pass", list)
	}
	archived := dataOf(t, runCLI(t, dir, "todo", "archive", "list")).([]any)
	if len(archived) != 1 {
		t.Fatalf("archive list = %v", archived)
	}

	restored := dataOf(t, runCLI(t, dir, "todo", "archive", "restore", id)).(map[string]any)
	if restored["id"] != id {
		t.Fatalf("restored = %v", restored)
	}
	runCLI(t, dir, "todo", "delete", id)
	if list := dataOf(t, runCLI(t, dir, "todo", "list")).([]any); len(list) != 0 {
		t.Fatalf("todo list = %v after delete", list)
	}
}

func TestResolveByTitle(t *testing.T) {
	dir := t.TempDir()
	runCLI(t, dir, "todo", "add", "Call bank")
	toggled := dataOf(t, runCLI(t, dir, "todo", "toggle", "Call bank")).(map[string]any)
	if toggled["done"] != true {
		t.Fatalf("toggle by title = %v", toggled)
	}
}

func TestCategoryAndItemFlow(t *testing.T) {
	dir := t.TempDir()

	runCLI(t, dir, "category", "add", "Work")
	item := dataOf(t, runCLI(t, dir, "item", "add", "Work", "Quarterly", "report")).(map[string]any)
	id := item["id"].(string)

	runCLI(t, dir, "item", "edit", "Work", id, "--body", "draft notes")
	shown := dataOf(t, runCLI(t, dir, "item", "show", "Work", id)).(map[string]any)
	if !strings.Contains(shown["html"].(string), "draft notes") {
		t.Fatalf("shown = %v", shown)
	}

	runCLI(t, dir, "item", "archive", "Work", id)
	rows := dataOf(t, runCLI(t, dir, "archive", "list")).([]any)
	if len(rows) != 1 {
		t.Fatalf("archive list = %v", rows)
	}
	row := rows[0].(map[string]any)
	if row["originalCategory"] != "Work" {
		t.Fatalf("row = %v", row)
	}

	runCLI(t, dir, "category", "rename", "Work", "Office")
	restored := dataOf(t, runCLI(t, dir, "archive", "restore", id)).(map[string]any)
	if restored["id"] != id {
		t.Fatalf("restored = %v", restored)
	}
	items := dataOf(t, runCLI(t, dir, "item", "list", "Office")).([]any)
	if len(items) != 1 {
		t.Fatalf("Office items = %v", items)
	}
}

func TestCategoryDeleteDiscardsArchive(t *testing.T) {
	dir := t.TempDir()
	runCLI(t, dir, "category", "add", "Work")
	item := dataOf(t, runCLI(t, dir, "item", "add", "Work", "Report")).(map[string]any)
	id := item["id"].(string)
	runCLI(t, dir, "item", "archive", "Work", id)

	runCLI(t, dir, "category", "delete", "Work")
	rows := dataOf(t, runCLI(t, dir, "archive", "list")).([]any)
	if len(rows) != 0 {
		t.Fatalf("archive rows = %v, want none after category delete", rows)
	}
}

func TestNoteSetAndShow(t *testing.T) {
	dir := t.TempDir()
	runCLI(t, dir, "note", "set", "remember the milk")
	data := dataOf(t, runCLI(t, dir, "note", "show")).(map[string]any)
	if !strings.Contains(data["html"].(string), "remember the milk") {
		t.Fatalf("note = %v", data)
	}
}

func TestEventsRecorded(t *testing.T) {
	dir := t.TempDir()
	runCLI(t, dir, "todo", "add", "logged")
	events := dataOf(t, runCLI(t, dir, "events")).([]any)
	if len(events) == 0 {
		t.Fatal("no events recorded")
	}
	first := events[0].(map[string]any)
	if first["type"] != "todo.add" {
		t.Fatalf("event = %v", first)
	}
}

func TestPrefsEditorBG(t *testing.T) {
	dir := t.TempDir()
	data := dataOf(t, runCLI(t, dir, "prefs", "editor-bg", "note", "#e4f0ff")).(map[string]any)
	bg := data["editor_bg"].(map[string]any)
	if bg["note"] != "#e4f0ff" {
		t.Fatalf("prefs = %v", data)
	}
	data = dataOf(t, runCLI(t, dir, "prefs", "editor-bg", "note", "none")).(map[string]any)
	if _, ok := data["editor_bg"]; ok {
		t.Fatalf("prefs after clear = %v", data)
	}
}
