package session

import (
	"context"
	"os"
	"testing"
	"time"

	"memopad/internal/model"
	"memopad/internal/store"
)

func testSession(t *testing.T, opts Options) *Session {
	t.Helper()
	st := store.Store{Dir: t.TempDir()}
	s, err := Open(context.Background(), st, opts)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close(context.Background()) })
	return s
}

func TestApplySchedulesSave(t *testing.T) {
	s := testSession(t, Options{NoEventLog: true, SaveDebounce: 20 * time.Millisecond})
	ctx := context.Background()

	res, err := s.Apply(ctx, AddTodo{Title: "Buy milk"})
	if err != nil || !res.Changed || res.Item == nil {
		t.Fatalf("Apply: res=%+v err=%v", res, err)
	}
	if !s.Dirty() {
		t.Fatal("session should be dirty after a change")
	}

	deadline := time.Now().Add(2 * time.Second)
	for s.Dirty() {
		if time.Now().After(deadline) {
			t.Fatal("autosave never fired")
		}
		time.Sleep(5 * time.Millisecond)
	}

	doc, _, err := s.Store().LoadDocument()
	if err != nil {
		t.Fatalf("LoadDocument: %v", err)
	}
	if len(doc.Todo.Items) != 1 || doc.Todo.Items[0].Title != "Buy milk" {
		t.Fatalf("persisted doc = %+v", doc.Todo)
	}
}

func TestApplyRecordsEvents(t *testing.T) {
	s := testSession(t, Options{SaveDebounce: time.Hour})
	ctx := context.Background()

	res, err := s.Apply(ctx, AddTodo{Title: "Call bank"})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if _, err := s.Apply(ctx, ToggleTodo{ID: res.Item.ID}); err != nil {
		t.Fatalf("Apply toggle: %v", err)
	}

	events, err := s.Events().Tail(ctx, 0)
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].Type != "todo.toggle" || events[1].Type != "todo.add" {
		t.Fatalf("events = %q, %q", events[0].Type, events[1].Type)
	}
}

func TestBindFlushesPreviousTarget(t *testing.T) {
	s := testSession(t, Options{NoEventLog: true, SaveDebounce: time.Hour, EditDebounce: time.Hour})
	ctx := context.Background()

	a, _ := s.Apply(ctx, AddTodo{Title: "first"})
	b, _ := s.Apply(ctx, AddTodo{Title: "second"})

	s.Bind(ctx, RefTodo{ID: a.Item.ID})
	s.SetBuffer("<p>for first</p>")
	// Rebinding before the debounce fires must still land the text on the
	// first item, never on the new target.
	s.Bind(ctx, RefTodo{ID: b.Item.ID})

	doc := s.Document()
	first, _ := doc.FindTodo(a.Item.ID)
	second, _ := doc.FindTodo(b.Item.ID)
	if first.HTML != "<p>for first</p>" {
		t.Fatalf("first body = %q", first.HTML)
	}
	if second.HTML != "" {
		t.Fatalf("second body = %q, want untouched", second.HTML)
	}
}

func TestEditDebounceCoalesces(t *testing.T) {
	s := testSession(t, Options{NoEventLog: true, SaveDebounce: time.Hour, EditDebounce: 20 * time.Millisecond})
	ctx := context.Background()

	res, _ := s.Apply(ctx, AddTodo{Title: "draft"})
	s.Bind(ctx, RefTodo{ID: res.Item.ID})

	for _, text := range []string{"a", "ab", "abc"} {
		s.SetBuffer(text)
	}
	item, _ := s.Document().FindTodo(res.Item.ID)
	if item.HTML != "" {
		t.Fatalf("body flushed too early: %q", item.HTML)
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		if item, _ := s.Document().FindTodo(res.Item.ID); item.HTML == "abc" {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("debounced flush never happened")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestFlushDropsVanishedTarget(t *testing.T) {
	s := testSession(t, Options{NoEventLog: true, SaveDebounce: time.Hour, EditDebounce: time.Hour})
	ctx := context.Background()

	res, _ := s.Apply(ctx, AddTodo{Title: "doomed"})
	s.Bind(ctx, RefTodo{ID: res.Item.ID})
	s.SetBuffer("<p>late text</p>")
	if _, err := s.Apply(ctx, DeleteTodo{ID: res.Item.ID}); err != nil {
		t.Fatalf("DeleteTodo: %v", err)
	}

	s.FlushBuffer(ctx)
	if len(s.Document().Todo.Items) != 0 {
		t.Fatal("flush must not resurrect a deleted item")
	}
}

func TestFreeNoteBinding(t *testing.T) {
	s := testSession(t, Options{NoEventLog: true, SaveDebounce: time.Hour, EditDebounce: time.Hour})
	ctx := context.Background()

	s.Bind(ctx, RefFreeNote{})
	s.SetBuffer("<p>scratch</p>")
	s.Unbind(ctx)

	if s.Document().FreeNote.HTML != "<p>scratch</p>" {
		t.Fatalf("free note = %q", s.Document().FreeNote.HTML)
	}
}

func TestReloadIfChanged(t *testing.T) {
	s := testSession(t, Options{NoEventLog: true, SaveDebounce: time.Hour})
	ctx := context.Background()

	if _, err := s.Apply(ctx, AddTodo{Title: "mine"}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if reloaded, _ := s.ReloadIfChanged(); reloaded {
		t.Fatal("dirty session must not reload")
	}
	if err := s.Save(ctx); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// Another process rewrites the file.
	other := model.NewDocument()
	other.Todo.Items = append(other.Todo.Items, model.NewItem("theirs", ""))
	if err := s.Store().SaveDocument(other); err != nil {
		t.Fatalf("SaveDocument: %v", err)
	}
	future := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(s.Store().DocumentPath(), future, future); err != nil {
		t.Fatalf("Chtimes: %v", err)
	}

	reloaded, err := s.ReloadIfChanged()
	if err != nil || !reloaded {
		t.Fatalf("reload: reloaded=%v err=%v", reloaded, err)
	}
	if len(s.Document().Todo.Items) != 1 || s.Document().Todo.Items[0].Title != "theirs" {
		t.Fatalf("doc after reload = %+v", s.Document().Todo.Items)
	}
}

func TestCloseFlushesEverything(t *testing.T) {
	st := store.Store{Dir: t.TempDir()}
	ctx := context.Background()
	s, err := Open(ctx, st, Options{NoEventLog: true, SaveDebounce: time.Hour, EditDebounce: time.Hour})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	res, _ := s.Apply(ctx, AddTodo{Title: "keep me"})
	s.Bind(ctx, RefTodo{ID: res.Item.ID})
	s.SetBuffer("<p>body</p>")
	if err := s.Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}

	doc, _, err := st.LoadDocument()
	if err != nil {
		t.Fatalf("LoadDocument: %v", err)
	}
	if len(doc.Todo.Items) != 1 || doc.Todo.Items[0].HTML != "<p>body</p>" {
		t.Fatalf("persisted = %+v", doc.Todo.Items)
	}
}
