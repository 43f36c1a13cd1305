package session

import (
	"memopad/internal/model"
	"memopad/internal/mutate"
)

// Command is one named mutation of the document. Name doubles as the event
// type recorded when the command changes anything.
type Command interface {
	Name() string
	run(doc *model.Document) (applied, error)
}

type applied struct {
	changed  bool
	entityID string
	payload  map[string]any
	item     *model.Item
}

// Result is what Apply reports back to the caller.
type Result struct {
	Changed  bool
	Item     *model.Item
	EntityID string
}

func fromResult(res mutate.Result, entityID string) applied {
	if res.Item != nil && entityID == "" {
		entityID = res.Item.ID
	}
	return applied{
		changed:  res.Changed,
		entityID: entityID,
		payload:  res.EventPayload,
		item:     res.Item,
	}
}

type AddTodo struct {
	Title string
	HTML  string
}

func (AddTodo) Name() string { return "todo.add" }
func (c AddTodo) run(doc *model.Document) (applied, error) {
	res, err := mutate.AddTodo(doc, c.Title, c.HTML)
	if err != nil {
		return applied{}, err
	}
	return fromResult(res, ""), nil
}

type ToggleTodo struct{ ID string }

func (ToggleTodo) Name() string { return "todo.toggle" }
func (c ToggleTodo) run(doc *model.Document) (applied, error) {
	res, err := mutate.ToggleTodo(doc, c.ID)
	if err != nil {
		return applied{}, err
	}
	return fromResult(res, c.ID), nil
}

type RenameTodo struct {
	ID    string
	Title string
}

func (RenameTodo) Name() string { return "todo.rename" }
func (c RenameTodo) run(doc *model.Document) (applied, error) {
	res, err := mutate.RenameTodo(doc, c.ID, c.Title)
	if err != nil {
		return applied{}, err
	}
	return fromResult(res, c.ID), nil
}

type RecolorTodo struct {
	ID    string
	Color string
}

func (RecolorTodo) Name() string { return "todo.color" }
func (c RecolorTodo) run(doc *model.Document) (applied, error) {
	res, err := mutate.RecolorTodo(doc, c.ID, c.Color)
	if err != nil {
		return applied{}, err
	}
	return fromResult(res, c.ID), nil
}

type DeleteTodo struct{ ID string }

func (DeleteTodo) Name() string { return "todo.delete" }
func (c DeleteTodo) run(doc *model.Document) (applied, error) {
	res, err := mutate.DeleteTodo(doc, c.ID)
	if err != nil {
		return applied{}, err
	}
	return fromResult(res, c.ID), nil
}

type ArchiveDoneTodos struct{}

func (ArchiveDoneTodos) Name() string { return "todo.archive_done" }
func (ArchiveDoneTodos) run(doc *model.Document) (applied, error) {
	res, err := mutate.ArchiveDoneTodos(doc)
	if err != nil {
		return applied{}, err
	}
	return applied{
		changed: res.Changed,
		payload: map[string]any{"count": len(res.ArchivedIDs), "ids": res.ArchivedIDs},
	}, nil
}

type RestoreTodoArchive struct{ ID string }

func (RestoreTodoArchive) Name() string { return "todo.restore" }
func (c RestoreTodoArchive) run(doc *model.Document) (applied, error) {
	res, err := mutate.RestoreTodoArchive(doc, c.ID)
	if err != nil {
		return applied{}, err
	}
	return fromResult(res, c.ID), nil
}

type DeleteTodoArchive struct{ ID string }

func (DeleteTodoArchive) Name() string { return "todo.archive_delete" }
func (c DeleteTodoArchive) run(doc *model.Document) (applied, error) {
	res, err := mutate.DeleteTodoArchive(doc, c.ID)
	if err != nil {
		return applied{}, err
	}
	return fromResult(res, c.ID), nil
}

type EditArchivedTodo struct {
	ID    string
	Title string
	HTML  string
}

func (EditArchivedTodo) Name() string { return "todo.archive_edit" }
func (c EditArchivedTodo) run(doc *model.Document) (applied, error) {
	res, err := mutate.EditArchivedTodo(doc, c.ID, c.Title, c.HTML)
	if err != nil {
		return applied{}, err
	}
	return fromResult(res, c.ID), nil
}

type ReorderTodos struct{ IDs []string }

func (ReorderTodos) Name() string { return "todo.reorder" }
func (c ReorderTodos) run(doc *model.Document) (applied, error) {
	res, err := mutate.ReorderTodos(doc, c.IDs)
	if err != nil {
		return applied{}, err
	}
	return fromResult(res, ""), nil
}

type AddItem struct {
	Category string
	Title    string
	HTML     string
}

func (AddItem) Name() string { return "item.add" }
func (c AddItem) run(doc *model.Document) (applied, error) {
	res, err := mutate.AddResident(doc, c.Category, c.Title, c.HTML)
	if err != nil {
		return applied{}, err
	}
	return fromResult(res, ""), nil
}

type RenameItem struct {
	Category string
	ID       string
	Title    string
}

func (RenameItem) Name() string { return "item.rename" }
func (c RenameItem) run(doc *model.Document) (applied, error) {
	res, err := mutate.RenameResident(doc, c.Category, c.ID, c.Title)
	if err != nil {
		return applied{}, err
	}
	return fromResult(res, c.ID), nil
}

type RecolorItem struct {
	Category string
	ID       string
	Color    string
}

func (RecolorItem) Name() string { return "item.color" }
func (c RecolorItem) run(doc *model.Document) (applied, error) {
	res, err := mutate.RecolorResident(doc, c.Category, c.ID, c.Color)
	if err != nil {
		return applied{}, err
	}
	return fromResult(res, c.ID), nil
}

type DeleteItem struct {
	Category string
	ID       string
}

func (DeleteItem) Name() string { return "item.delete" }
func (c DeleteItem) run(doc *model.Document) (applied, error) {
	res, err := mutate.DeleteResident(doc, c.Category, c.ID)
	if err != nil {
		return applied{}, err
	}
	return fromResult(res, c.ID), nil
}

type ArchiveItem struct {
	Category string
	ID       string
}

func (ArchiveItem) Name() string { return "item.archive" }
func (c ArchiveItem) run(doc *model.Document) (applied, error) {
	res, err := mutate.ArchiveResident(doc, c.Category, c.ID)
	if err != nil {
		return applied{}, err
	}
	return fromResult(res, c.ID), nil
}

type RestoreArchive struct{ ID string }

func (RestoreArchive) Name() string { return "archive.restore" }
func (c RestoreArchive) run(doc *model.Document) (applied, error) {
	res, err := mutate.RestoreResidentArchive(doc, c.ID)
	if err != nil {
		return applied{}, err
	}
	return fromResult(res, c.ID), nil
}

type DeleteArchive struct{ ID string }

func (DeleteArchive) Name() string { return "archive.delete" }
func (c DeleteArchive) run(doc *model.Document) (applied, error) {
	res, err := mutate.DeleteResidentArchive(doc, c.ID)
	if err != nil {
		return applied{}, err
	}
	return fromResult(res, c.ID), nil
}

type EditArchive struct {
	ID    string
	Title string
	HTML  string
}

func (EditArchive) Name() string { return "archive.edit" }
func (c EditArchive) run(doc *model.Document) (applied, error) {
	res, err := mutate.EditResidentArchive(doc, c.ID, c.Title, c.HTML)
	if err != nil {
		return applied{}, err
	}
	return fromResult(res, c.ID), nil
}

type ReorderItems struct {
	Category string
	IDs      []string
}

func (ReorderItems) Name() string { return "item.reorder" }
func (c ReorderItems) run(doc *model.Document) (applied, error) {
	res, err := mutate.ReorderResidents(doc, c.Category, c.IDs)
	if err != nil {
		return applied{}, err
	}
	return fromResult(res, ""), nil
}

type AddCategory struct{ CategoryName string }

func (AddCategory) Name() string { return "category.add" }
func (c AddCategory) run(doc *model.Document) (applied, error) {
	res, err := mutate.AddCategory(doc, c.CategoryName)
	if err != nil {
		return applied{}, err
	}
	return applied{changed: res.Changed, entityID: res.Name, payload: res.EventPayload}, nil
}

type RenameCategory struct {
	From string
	To   string
}

func (RenameCategory) Name() string { return "category.rename" }
func (c RenameCategory) run(doc *model.Document) (applied, error) {
	res, err := mutate.RenameCategory(doc, c.From, c.To)
	if err != nil {
		return applied{}, err
	}
	return applied{changed: res.Changed, entityID: res.Name, payload: res.EventPayload}, nil
}

type DeleteCategory struct{ CategoryName string }

func (DeleteCategory) Name() string { return "category.delete" }
func (c DeleteCategory) run(doc *model.Document) (applied, error) {
	res, err := mutate.DeleteCategory(doc, c.CategoryName)
	if err != nil {
		return applied{}, err
	}
	return applied{changed: res.Changed, entityID: res.Name, payload: res.EventPayload}, nil
}

type MoveCategory struct {
	CategoryName string
	To           int
}

func (MoveCategory) Name() string { return "category.move" }
func (c MoveCategory) run(doc *model.Document) (applied, error) {
	res, err := mutate.MoveCategory(doc, c.CategoryName, c.To)
	if err != nil {
		return applied{}, err
	}
	return applied{changed: res.Changed, entityID: c.CategoryName, payload: res.EventPayload}, nil
}

type ReorderCategories struct{ Order []string }

func (ReorderCategories) Name() string { return "category.reorder" }
func (c ReorderCategories) run(doc *model.Document) (applied, error) {
	res, err := mutate.ReorderCategories(doc, c.Order)
	if err != nil {
		return applied{}, err
	}
	return applied{changed: res.Changed, payload: res.EventPayload}, nil
}

type SetFreeNote struct{ HTML string }

func (SetFreeNote) Name() string { return "note.set" }
func (c SetFreeNote) run(doc *model.Document) (applied, error) {
	res, err := mutate.SetFreeNote(doc, c.HTML)
	if err != nil {
		return applied{}, err
	}
	return fromResult(res, ""), nil
}
