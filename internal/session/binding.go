package session

import "memopad/internal/model"

// Ref names the edit target a detail buffer is bound to. RefNone means the
// buffer is parked and SetBuffer calls are ignored.
type Ref interface {
	isRef()
}

type RefNone struct{}

// RefTodo binds the buffer to a todo item's body.
type RefTodo struct {
	ID string
}

// RefResident binds the buffer to an item inside a category.
type RefResident struct {
	Category string
	ID       string
}

// RefFreeNote binds the buffer to the free-form note pane.
type RefFreeNote struct{}

func (RefNone) isRef()     {}
func (RefTodo) isRef()     {}
func (RefResident) isRef() {}
func (RefFreeNote) isRef() {}

// resolve returns a pointer to the HTML field the ref addresses, or nil
// when the target no longer exists in the document.
func resolve(doc *model.Document, ref Ref) *string {
	switch r := ref.(type) {
	case RefTodo:
		if item, ok := doc.FindTodo(r.ID); ok {
			return &item.HTML
		}
	case RefResident:
		if item, _, ok := doc.FindResident(r.Category, r.ID); ok {
			return &item.HTML
		}
	case RefFreeNote:
		return &doc.FreeNote.HTML
	}
	return nil
}
