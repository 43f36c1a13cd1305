package mutate

import (
	"errors"
	"testing"

	"memopad/internal/model"
)

func threeTodos(t *testing.T) (*model.Document, []string) {
	t.Helper()
	doc := model.NewDocument()
	var ids []string
	for _, title := range []string{"a", "b", "c"} {
		res, err := AddTodo(doc, title, "")
		if err != nil {
			t.Fatalf("AddTodo: %v", err)
		}
		ids = append(ids, res.Item.ID)
	}
	return doc, ids
}

func TestReorderTodos(t *testing.T) {
	doc, ids := threeTodos(t)

	res, err := ReorderTodos(doc, []string{ids[2], ids[0], ids[1]})
	if err != nil || !res.Changed {
		t.Fatalf("reorder: err=%v changed=%v", err, res.Changed)
	}
	got := []string{doc.Todo.Items[0].Title, doc.Todo.Items[1].Title, doc.Todo.Items[2].Title}
	want := []string{"c", "a", "b"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}

	res, err = ReorderTodos(doc, []string{ids[2], ids[0], ids[1]})
	if err != nil || res.Changed {
		t.Fatalf("identical order: err=%v changed=%v", err, res.Changed)
	}
}

func TestReorderTodosMismatch(t *testing.T) {
	doc, ids := threeTodos(t)

	cases := map[string][]string{
		"missing one":  {ids[0], ids[1]},
		"duplicate id": {ids[0], ids[1], ids[1]},
		"unknown id":   {ids[0], ids[1], "no-such-id"},
		"too many":     {ids[0], ids[1], ids[2], "extra"},
	}
	for name, order := range cases {
		if _, err := ReorderTodos(doc, order); !errors.Is(err, ErrReorderMismatch) {
			t.Fatalf("%s: err = %v, want ErrReorderMismatch", name, err)
		}
	}
	if doc.Todo.Items[0].Title != "a" {
		t.Fatal("failed reorder must leave the list untouched")
	}
}

func TestReorderCategories(t *testing.T) {
	doc := model.NewDocument()
	for _, name := range []string{"Work", "Home", "Ideas"} {
		if _, err := AddCategory(doc, name); err != nil {
			t.Fatalf("AddCategory: %v", err)
		}
	}

	if _, err := ReorderCategories(doc, []string{"Home", "Work"}); !errors.Is(err, ErrReorderMismatch) {
		t.Fatalf("short order err = %v", err)
	}
	if _, err := ReorderCategories(doc, []string{"Home", "Work", "Nope"}); !errors.Is(err, ErrReorderMismatch) {
		t.Fatalf("unknown name err = %v", err)
	}

	res, err := ReorderCategories(doc, []string{"Ideas", "Work", "Home"})
	if err != nil || !res.Changed {
		t.Fatalf("reorder: err=%v changed=%v", err, res.Changed)
	}
	if doc.CategoryOrder[0] != "Ideas" {
		t.Fatalf("order = %v", doc.CategoryOrder)
	}
}

func TestMoveCategoryClampsIndex(t *testing.T) {
	doc := model.NewDocument()
	for _, name := range []string{"Work", "Home", "Ideas"} {
		AddCategory(doc, name)
	}

	if _, err := MoveCategory(doc, "Ideas", 0); err != nil {
		t.Fatalf("MoveCategory: %v", err)
	}
	if doc.CategoryOrder[0] != "Ideas" {
		t.Fatalf("order = %v", doc.CategoryOrder)
	}
	if _, err := MoveCategory(doc, "Ideas", 99); err != nil {
		t.Fatalf("MoveCategory past end: %v", err)
	}
	if doc.CategoryOrder[len(doc.CategoryOrder)-1] != "Ideas" {
		t.Fatalf("order = %v", doc.CategoryOrder)
	}
}

func TestSetFreeNote(t *testing.T) {
	doc := model.NewDocument()
	res, err := SetFreeNote(doc, "<p>scratch</p>")
	if err != nil || !res.Changed {
		t.Fatalf("SetFreeNote: err=%v changed=%v", err, res.Changed)
	}
	res, err = SetFreeNote(doc, "<p>scratch</p>")
	if err != nil || res.Changed {
		t.Fatalf("same body: err=%v changed=%v", err, res.Changed)
	}
}
