// Package model defines the in-memory document tree: the to-do list,
// resident categories, their archives, and the free-form note.
//
// The document is a plain value; all mutation lives in internal/mutate and
// all persistence in internal/store.
package model

import "github.com/google/uuid"

// Item is a to-do entry or a resident reference note. Identity is the UUID,
// assigned once at creation and never reused. Done is only meaningful for
// to-do items; Color is an optional background hex like "#ffcccc".
type Item struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	HTML  string `json:"html"`
	Done  bool   `json:"done,omitempty"`
	Color string `json:"color,omitempty"`
}

// ArchivedItem is an Item moved out of its active list. ArchivedAt is epoch
// seconds. OriginalCategory is set for resident items only and names the
// category to restore into.
type ArchivedItem struct {
	Item
	ArchivedAt       int64  `json:"archived_at"`
	OriginalCategory string `json:"original_category,omitempty"`
}

// Category holds the active and archived resident items for one tab.
// The tab order across categories lives in Document.CategoryOrder.
type Category struct {
	Items   []Item         `json:"items"`
	Archive []ArchivedItem `json:"archive"`
}

// TodoList is the to-do pane: active items plus its own archive.
type TodoList struct {
	Items   []Item         `json:"items"`
	Archive []ArchivedItem `json:"archive"`
}

// FreeNote is the single free-form rich note.
type FreeNote struct {
	HTML string `json:"html"`
}

// ArchiveCategoryName is the synthetic always-last tab showing all resident
// archives. It is not a real category and the name is reserved.
const ArchiveCategoryName = "Archive"

// Document is the root of all persisted note state.
//
// Invariants:
//   - every Item/ArchivedItem id is unique within its owning collection
//   - an item is never in both an active list and its archive
//   - CategoryOrder is a permutation of the Categories keys
type Document struct {
	Todo          TodoList             `json:"todo"`
	Categories    map[string]*Category `json:"categories"`
	CategoryOrder []string             `json:"category_order"`
	FreeNote      FreeNote             `json:"free_note"`
}

// NewDocument returns an empty document with all collections initialized.
func NewDocument() *Document {
	return &Document{
		Todo:          TodoList{Items: []Item{}, Archive: []ArchivedItem{}},
		Categories:    map[string]*Category{},
		CategoryOrder: []string{},
	}
}

// NewItem creates an item with a fresh UUID.
func NewItem(title, html string) Item {
	return Item{ID: uuid.NewString(), Title: title, HTML: html}
}

// Normalize repairs nil slices/maps and reconciles CategoryOrder with the
// Categories keys: unknown names are dropped, missing names appended.
// Existing order is preserved.
func (d *Document) Normalize() {
	if d.Todo.Items == nil {
		d.Todo.Items = []Item{}
	}
	if d.Todo.Archive == nil {
		d.Todo.Archive = []ArchivedItem{}
	}
	if d.Categories == nil {
		d.Categories = map[string]*Category{}
	}
	for _, cat := range d.Categories {
		if cat.Items == nil {
			cat.Items = []Item{}
		}
		if cat.Archive == nil {
			cat.Archive = []ArchivedItem{}
		}
	}

	order := make([]string, 0, len(d.Categories))
	for _, name := range d.CategoryOrder {
		if _, ok := d.Categories[name]; ok && !contains(order, name) {
			order = append(order, name)
		}
	}
	for name := range d.Categories {
		if !contains(order, name) {
			order = append(order, name)
		}
	}
	d.CategoryOrder = order
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}

// FindTodo returns a pointer into the active to-do list.
func (d *Document) FindTodo(id string) (*Item, bool) {
	return findItem(d.Todo.Items, id)
}

// FindResident returns the active resident item and its owning category name.
// When category is empty, all categories are searched in tab order.
func (d *Document) FindResident(category, id string) (*Item, string, bool) {
	if category != "" {
		cat, ok := d.Categories[category]
		if !ok {
			return nil, "", false
		}
		it, ok := findItem(cat.Items, id)
		return it, category, ok
	}
	for _, name := range d.CategoryOrder {
		if it, ok := findItem(d.Categories[name].Items, id); ok {
			return it, name, true
		}
	}
	return nil, "", false
}

// FindTodoArchive returns a pointer into the to-do archive.
func (d *Document) FindTodoArchive(id string) (*ArchivedItem, bool) {
	return findArchived(d.Todo.Archive, id)
}

// FindResidentArchive searches every category archive for id. The returned
// category name is where the entry currently lives, which can differ from
// its OriginalCategory after renames.
func (d *Document) FindResidentArchive(id string) (*ArchivedItem, string, bool) {
	for _, name := range d.CategoryOrder {
		if ai, ok := findArchived(d.Categories[name].Archive, id); ok {
			return ai, name, true
		}
	}
	return nil, "", false
}

func findItem(items []Item, id string) (*Item, bool) {
	for i := range items {
		if items[i].ID == id {
			return &items[i], true
		}
	}
	return nil, false
}

func findArchived(items []ArchivedItem, id string) (*ArchivedItem, bool) {
	for i := range items {
		if items[i].ID == id {
			return &items[i], true
		}
	}
	return nil, false
}

// ResidentArchiveEntry pairs an archived resident item with the category it
// is currently stored under, for flattened listings.
type ResidentArchiveEntry struct {
	ArchivedItem
	StoredCategory string
}

// AllResidentArchives flattens every category archive, newest-first.
func (d *Document) AllResidentArchives() []ResidentArchiveEntry {
	var out []ResidentArchiveEntry
	for _, name := range d.CategoryOrder {
		for _, ai := range d.Categories[name].Archive {
			out = append(out, ResidentArchiveEntry{ArchivedItem: ai, StoredCategory: name})
		}
	}
	// Archives are small; a stable insertion sort avoids pulling in sort for
	// a three-line ordering.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].ArchivedAt > out[j-1].ArchivedAt; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	out := &Document{
		Todo: TodoList{
			Items:   append([]Item{}, d.Todo.Items...),
			Archive: append([]ArchivedItem{}, d.Todo.Archive...),
		},
		Categories:    make(map[string]*Category, len(d.Categories)),
		CategoryOrder: append([]string{}, d.CategoryOrder...),
		FreeNote:      d.FreeNote,
	}
	for name, cat := range d.Categories {
		out.Categories[name] = &Category{
			Items:   append([]Item{}, cat.Items...),
			Archive: append([]ArchivedItem{}, cat.Archive...),
		}
	}
	return out
}

// Equal reports whether two documents hold the same data.
func (d *Document) Equal(o *Document) bool {
	if d == nil || o == nil {
		return d == o
	}
	if !itemsEqual(d.Todo.Items, o.Todo.Items) || !archivesEqual(d.Todo.Archive, o.Todo.Archive) {
		return false
	}
	if d.FreeNote != o.FreeNote {
		return false
	}
	if len(d.CategoryOrder) != len(o.CategoryOrder) || len(d.Categories) != len(o.Categories) {
		return false
	}
	for i := range d.CategoryOrder {
		if d.CategoryOrder[i] != o.CategoryOrder[i] {
			return false
		}
	}
	for name, cat := range d.Categories {
		ocat, ok := o.Categories[name]
		if !ok || !itemsEqual(cat.Items, ocat.Items) || !archivesEqual(cat.Archive, ocat.Archive) {
			return false
		}
	}
	return true
}

func itemsEqual(a, b []Item) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func archivesEqual(a, b []ArchivedItem) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
