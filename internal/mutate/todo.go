// Package mutate holds the pure operations on a Document. Every function
// takes the document plus arguments and reports whether anything changed;
// persistence and event logging stay with the caller.
package mutate

import (
	"regexp"
	"strings"
	"time"

	"memopad/internal/model"
)

// Result is the common outcome of a mutation. EventPayload is what the
// caller records in the event log when Changed is true.
type Result struct {
	Item         *model.Item
	Changed      bool
	EventPayload map[string]any
}

var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

func validColor(color string) bool {
	return color == "" || colorPattern.MatchString(color)
}

func AddTodo(doc *model.Document, title, html string) (Result, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Result{}, ErrEmptyTitle
	}
	item := model.NewItem(title, html)
	doc.Todo.Items = append(doc.Todo.Items, item)
	added := &doc.Todo.Items[len(doc.Todo.Items)-1]
	return Result{
		Item:         added,
		Changed:      true,
		EventPayload: map[string]any{"title": title},
	}, nil
}

func ToggleTodo(doc *model.Document, id string) (Result, error) {
	item, ok := doc.FindTodo(id)
	if !ok {
		return Result{}, NotFoundError{Kind: "todo", ID: id}
	}
	item.Done = !item.Done
	return Result{
		Item:         item,
		Changed:      true,
		EventPayload: map[string]any{"done": item.Done},
	}, nil
}

func RenameTodo(doc *model.Document, id, title string) (Result, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Result{}, ErrEmptyTitle
	}
	item, ok := doc.FindTodo(id)
	if !ok {
		return Result{}, NotFoundError{Kind: "todo", ID: id}
	}
	if item.Title == title {
		return Result{Item: item}, nil
	}
	item.Title = title
	return Result{
		Item:         item,
		Changed:      true,
		EventPayload: map[string]any{"title": title},
	}, nil
}

func RecolorTodo(doc *model.Document, id, color string) (Result, error) {
	if !validColor(color) {
		return Result{}, InvalidColorError{Color: color}
	}
	item, ok := doc.FindTodo(id)
	if !ok {
		return Result{}, NotFoundError{Kind: "todo", ID: id}
	}
	if item.Color == color {
		return Result{Item: item}, nil
	}
	item.Color = color
	return Result{
		Item:         item,
		Changed:      true,
		EventPayload: map[string]any{"color": color},
	}, nil
}

func DeleteTodo(doc *model.Document, id string) (Result, error) {
	for i := range doc.Todo.Items {
		if doc.Todo.Items[i].ID == id {
			doc.Todo.Items = append(doc.Todo.Items[:i], doc.Todo.Items[i+1:]...)
			return Result{
				Changed:      true,
				EventPayload: map[string]any{"deleted": true},
			}, nil
		}
	}
	return Result{}, NotFoundError{Kind: "todo", ID: id}
}

// ArchiveDoneResult reports which items ArchiveDoneTodos moved. All moved
// items share one ArchivedAt stamp.
type ArchiveDoneResult struct {
	ArchivedIDs []string
	Changed     bool
}

// ArchiveDoneTodos moves every done item to the todo archive, preserving
// their relative order. A pass with nothing done is not an error.
func ArchiveDoneTodos(doc *model.Document) (ArchiveDoneResult, error) {
	now := time.Now().Unix()
	var res ArchiveDoneResult
	remaining := doc.Todo.Items[:0]
	for _, item := range doc.Todo.Items {
		if !item.Done {
			remaining = append(remaining, item)
			continue
		}
		doc.Todo.Archive = append(doc.Todo.Archive, model.ArchivedItem{
			Item:       item,
			ArchivedAt: now,
		})
		res.ArchivedIDs = append(res.ArchivedIDs, item.ID)
	}
	doc.Todo.Items = remaining
	res.Changed = len(res.ArchivedIDs) > 0
	return res, nil
}

// RestoreTodoArchive moves an archived todo back to the active list. The
// restored item keeps its id, color and done flag but loses the archive
// stamp.
func RestoreTodoArchive(doc *model.Document, id string) (Result, error) {
	for i := range doc.Todo.Archive {
		if doc.Todo.Archive[i].ID != id {
			continue
		}
		item := doc.Todo.Archive[i].Item
		doc.Todo.Archive = append(doc.Todo.Archive[:i], doc.Todo.Archive[i+1:]...)
		doc.Todo.Items = append(doc.Todo.Items, item)
		restored := &doc.Todo.Items[len(doc.Todo.Items)-1]
		return Result{
			Item:         restored,
			Changed:      true,
			EventPayload: map[string]any{"restored": true},
		}, nil
	}
	return Result{}, NotFoundError{Kind: "todo archive entry", ID: id}
}

func DeleteTodoArchive(doc *model.Document, id string) (Result, error) {
	for i := range doc.Todo.Archive {
		if doc.Todo.Archive[i].ID == id {
			doc.Todo.Archive = append(doc.Todo.Archive[:i], doc.Todo.Archive[i+1:]...)
			return Result{
				Changed:      true,
				EventPayload: map[string]any{"deleted": true},
			}, nil
		}
	}
	return Result{}, NotFoundError{Kind: "todo archive entry", ID: id}
}

// EditArchivedTodo updates an archived entry in place without restoring it.
func EditArchivedTodo(doc *model.Document, id, title, html string) (Result, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Result{}, ErrEmptyTitle
	}
	for i := range doc.Todo.Archive {
		if doc.Todo.Archive[i].ID != id {
			continue
		}
		entry := &doc.Todo.Archive[i]
		if entry.Title == title && entry.HTML == html {
			return Result{Item: &entry.Item}, nil
		}
		entry.Title = title
		entry.HTML = html
		return Result{
			Item:         &entry.Item,
			Changed:      true,
			EventPayload: map[string]any{"title": title},
		}, nil
	}
	return Result{}, NotFoundError{Kind: "todo archive entry", ID: id}
}
