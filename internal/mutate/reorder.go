package mutate

import "memopad/internal/model"

// reorderItems rebuilds a collection in the requested id order. The order
// must reference every stored item exactly once; anything else means the
// caller's view has drifted from the document and it should resync instead
// of guessing.
func reorderItems(items []model.Item, orderedIDs []string) ([]model.Item, error) {
	if len(orderedIDs) != len(items) {
		return nil, ErrReorderMismatch
	}
	byID := make(map[string]model.Item, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}
	if len(byID) != len(items) {
		return nil, ErrReorderMismatch
	}
	out := make([]model.Item, 0, len(items))
	for _, id := range orderedIDs {
		item, ok := byID[id]
		if !ok {
			return nil, ErrReorderMismatch
		}
		delete(byID, id)
		out = append(out, item)
	}
	return out, nil
}

func sameOrder(items []model.Item, orderedIDs []string) bool {
	for i := range items {
		if items[i].ID != orderedIDs[i] {
			return false
		}
	}
	return true
}

// ReorderTodos replaces the todo list order with the given id sequence.
func ReorderTodos(doc *model.Document, orderedIDs []string) (Result, error) {
	items, err := reorderItems(doc.Todo.Items, orderedIDs)
	if err != nil {
		return Result{}, err
	}
	if sameOrder(doc.Todo.Items, orderedIDs) {
		return Result{}, nil
	}
	doc.Todo.Items = items
	return Result{
		Changed:      true,
		EventPayload: map[string]any{"order": orderedIDs},
	}, nil
}

// ReorderResidents replaces a category's item order.
func ReorderResidents(doc *model.Document, category string, orderedIDs []string) (Result, error) {
	cat, err := residentCategory(doc, category)
	if err != nil {
		return Result{}, err
	}
	items, err := reorderItems(cat.Items, orderedIDs)
	if err != nil {
		return Result{}, err
	}
	if sameOrder(cat.Items, orderedIDs) {
		return Result{}, nil
	}
	cat.Items = items
	return Result{
		Changed:      true,
		EventPayload: map[string]any{"category": category, "order": orderedIDs},
	}, nil
}
