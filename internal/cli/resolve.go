package cli

import (
	"fmt"
	"strings"

	"memopad/internal/model"
)

// resolveID maps a user-supplied reference to one item id. Accepted forms,
// in order: exact id, unique id prefix, unique exact title. Ambiguity is an
// error rather than a guess.
func resolveID(items []model.Item, ref string) (string, error) {
	for _, item := range items {
		if item.ID == ref {
			return item.ID, nil
		}
	}
	var matches []string
	for _, item := range items {
		if strings.HasPrefix(item.ID, ref) {
			matches = append(matches, item.ID)
		}
	}
	if len(matches) == 1 {
		return matches[0], nil
	}
	if len(matches) > 1 {
		return "", fmt.Errorf("ambiguous id prefix %q (%d matches)", ref, len(matches))
	}
	for _, item := range items {
		if item.Title == ref {
			matches = append(matches, item.ID)
		}
	}
	if len(matches) == 1 {
		return matches[0], nil
	}
	if len(matches) > 1 {
		return "", fmt.Errorf("ambiguous title %q (%d matches)", ref, len(matches))
	}
	return "", errNotFound("item", ref)
}

func archivedAsItems(entries []model.ArchivedItem) []model.Item {
	out := make([]model.Item, len(entries))
	for i, e := range entries {
		out[i] = e.Item
	}
	return out
}

type notFoundError struct {
	kind string
	id   string
}

func (e notFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.kind, e.id)
}

func errNotFound(kind, id string) error {
	return notFoundError{kind: kind, id: id}
}
