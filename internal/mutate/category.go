package mutate

import (
	"strings"

	"memopad/internal/model"
)

// CategoryResult is the outcome of a category mutation.
type CategoryResult struct {
	Name         string
	Changed      bool
	EventPayload map[string]any
}

func AddCategory(doc *model.Document, name string) (CategoryResult, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return CategoryResult{}, ErrEmptyTitle
	}
	if name == model.ArchiveCategoryName {
		return CategoryResult{}, ErrReservedName
	}
	if _, exists := doc.Categories[name]; exists {
		return CategoryResult{}, CategoryExistsError{Name: name}
	}
	doc.Categories[name] = &model.Category{
		Items:   []model.Item{},
		Archive: []model.ArchivedItem{},
	}
	doc.CategoryOrder = append(doc.CategoryOrder, name)
	return CategoryResult{
		Name:         name,
		Changed:      true,
		EventPayload: map[string]any{"name": name},
	}, nil
}

// RenameCategory also rewrites the OriginalCategory stamp on archived items
// everywhere, so restores after the rename still land in the right place.
func RenameCategory(doc *model.Document, oldName, newName string) (CategoryResult, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return CategoryResult{}, ErrEmptyTitle
	}
	if newName == model.ArchiveCategoryName {
		return CategoryResult{}, ErrReservedName
	}
	cat, ok := doc.Categories[oldName]
	if !ok {
		return CategoryResult{}, NotFoundError{Kind: "category", ID: oldName}
	}
	if newName == oldName {
		return CategoryResult{Name: oldName}, nil
	}
	if _, exists := doc.Categories[newName]; exists {
		return CategoryResult{}, CategoryExistsError{Name: newName}
	}
	delete(doc.Categories, oldName)
	doc.Categories[newName] = cat
	for i, name := range doc.CategoryOrder {
		if name == oldName {
			doc.CategoryOrder[i] = newName
		}
	}
	for _, c := range doc.Categories {
		for i := range c.Archive {
			if c.Archive[i].OriginalCategory == oldName {
				c.Archive[i].OriginalCategory = newName
			}
		}
	}
	return CategoryResult{
		Name:         newName,
		Changed:      true,
		EventPayload: map[string]any{"from": oldName, "to": newName},
	}, nil
}

// DeleteCategory discards the category together with its items and its
// archive. Entries archived from it under other categories keep their
// stamp; restoring them later fails with ErrCategoryVanished.
func DeleteCategory(doc *model.Document, name string) (CategoryResult, error) {
	if _, ok := doc.Categories[name]; !ok {
		return CategoryResult{}, NotFoundError{Kind: "category", ID: name}
	}
	delete(doc.Categories, name)
	for i, n := range doc.CategoryOrder {
		if n == name {
			doc.CategoryOrder = append(doc.CategoryOrder[:i], doc.CategoryOrder[i+1:]...)
			break
		}
	}
	return CategoryResult{
		Name:         name,
		Changed:      true,
		EventPayload: map[string]any{"deleted": true},
	}, nil
}

// ReorderCategories replaces the tab order. The new order must be a
// permutation of the current one.
func ReorderCategories(doc *model.Document, newOrder []string) (CategoryResult, error) {
	if len(newOrder) != len(doc.CategoryOrder) {
		return CategoryResult{}, ErrReorderMismatch
	}
	seen := make(map[string]bool, len(newOrder))
	for _, name := range newOrder {
		if _, ok := doc.Categories[name]; !ok || seen[name] {
			return CategoryResult{}, ErrReorderMismatch
		}
		seen[name] = true
	}
	changed := false
	for i, name := range newOrder {
		if doc.CategoryOrder[i] != name {
			changed = true
			break
		}
	}
	if !changed {
		return CategoryResult{}, nil
	}
	doc.CategoryOrder = append([]string(nil), newOrder...)
	return CategoryResult{
		Changed:      true,
		EventPayload: map[string]any{"order": newOrder},
	}, nil
}

// MoveCategory shifts one category to a new position in the tab order.
func MoveCategory(doc *model.Document, name string, to int) (CategoryResult, error) {
	if _, ok := doc.Categories[name]; !ok {
		return CategoryResult{}, NotFoundError{Kind: "category", ID: name}
	}
	from := -1
	for i, n := range doc.CategoryOrder {
		if n == name {
			from = i
			break
		}
	}
	if from < 0 {
		return CategoryResult{}, NotFoundError{Kind: "category", ID: name}
	}
	if to < 0 {
		to = 0
	}
	if to >= len(doc.CategoryOrder) {
		to = len(doc.CategoryOrder) - 1
	}
	if to == from {
		return CategoryResult{Name: name}, nil
	}
	order := append([]string(nil), doc.CategoryOrder...)
	order = append(order[:from], order[from+1:]...)
	order = append(order[:to], append([]string{name}, order[to:]...)...)
	return ReorderCategories(doc, order)
}
