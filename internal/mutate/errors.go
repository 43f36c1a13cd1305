package mutate

import (
	"errors"
	"fmt"
)

type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

type CategoryExistsError struct {
	Name string
}

func (e CategoryExistsError) Error() string {
	return fmt.Sprintf("category already exists: %s", e.Name)
}

type InvalidColorError struct {
	Color string
}

func (e InvalidColorError) Error() string {
	return fmt.Sprintf("invalid color %q (expected #rrggbb or empty)", e.Color)
}

var (
	// ErrEmptyTitle rejects blank titles and category names.
	ErrEmptyTitle = errors.New("title is empty")

	// ErrReservedName rejects the synthetic archive tab name as a category.
	ErrReservedName = errors.New("name is reserved for the archive view")

	// ErrCategoryVanished is the user-visible restore failure when an
	// archived item's original category has since been deleted.
	ErrCategoryVanished = errors.New("original category no longer exists")

	// ErrReorderMismatch signals that a requested order is not a
	// permutation of the stored collection. Callers recover by rebuilding
	// their presentation from the canonical document.
	ErrReorderMismatch = errors.New("reorder does not match the stored items")
)
