package mutate

import (
	"strings"
	"time"

	"memopad/internal/model"
)

func residentCategory(doc *model.Document, name string) (*model.Category, error) {
	cat, ok := doc.Categories[name]
	if !ok {
		return nil, NotFoundError{Kind: "category", ID: name}
	}
	return cat, nil
}

func AddResident(doc *model.Document, category, title, html string) (Result, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Result{}, ErrEmptyTitle
	}
	cat, err := residentCategory(doc, category)
	if err != nil {
		return Result{}, err
	}
	item := model.NewItem(title, html)
	cat.Items = append(cat.Items, item)
	added := &cat.Items[len(cat.Items)-1]
	return Result{
		Item:         added,
		Changed:      true,
		EventPayload: map[string]any{"category": category, "title": title},
	}, nil
}

func RenameResident(doc *model.Document, category, id, title string) (Result, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Result{}, ErrEmptyTitle
	}
	cat, err := residentCategory(doc, category)
	if err != nil {
		return Result{}, err
	}
	for i := range cat.Items {
		if cat.Items[i].ID != id {
			continue
		}
		item := &cat.Items[i]
		if item.Title == title {
			return Result{Item: item}, nil
		}
		item.Title = title
		return Result{
			Item:         item,
			Changed:      true,
			EventPayload: map[string]any{"category": category, "title": title},
		}, nil
	}
	return Result{}, NotFoundError{Kind: "item", ID: id}
}

func RecolorResident(doc *model.Document, category, id, color string) (Result, error) {
	if !validColor(color) {
		return Result{}, InvalidColorError{Color: color}
	}
	cat, err := residentCategory(doc, category)
	if err != nil {
		return Result{}, err
	}
	for i := range cat.Items {
		if cat.Items[i].ID != id {
			continue
		}
		item := &cat.Items[i]
		if item.Color == color {
			return Result{Item: item}, nil
		}
		item.Color = color
		return Result{
			Item:         item,
			Changed:      true,
			EventPayload: map[string]any{"category": category, "color": color},
		}, nil
	}
	return Result{}, NotFoundError{Kind: "item", ID: id}
}

func DeleteResident(doc *model.Document, category, id string) (Result, error) {
	cat, err := residentCategory(doc, category)
	if err != nil {
		return Result{}, err
	}
	for i := range cat.Items {
		if cat.Items[i].ID == id {
			cat.Items = append(cat.Items[:i], cat.Items[i+1:]...)
			return Result{
				Changed:      true,
				EventPayload: map[string]any{"category": category, "deleted": true},
			}, nil
		}
	}
	return Result{}, NotFoundError{Kind: "item", ID: id}
}

// ArchiveResident moves an item out of its category and stamps where it
// came from so a later restore can put it back.
func ArchiveResident(doc *model.Document, category, id string) (Result, error) {
	cat, err := residentCategory(doc, category)
	if err != nil {
		return Result{}, err
	}
	for i := range cat.Items {
		if cat.Items[i].ID != id {
			continue
		}
		item := cat.Items[i]
		cat.Items = append(cat.Items[:i], cat.Items[i+1:]...)
		cat.Archive = append(cat.Archive, model.ArchivedItem{
			Item:             item,
			ArchivedAt:       time.Now().Unix(),
			OriginalCategory: category,
		})
		return Result{
			Changed:      true,
			EventPayload: map[string]any{"category": category, "archived": true},
		}, nil
	}
	return Result{}, NotFoundError{Kind: "item", ID: id}
}

// RestoreResidentArchive moves an archived item back to its original
// category. The entry may be stored under any category's archive; the
// restore target is its OriginalCategory stamp. If that category has been
// deleted since, the entry stays archived and ErrCategoryVanished is
// returned for the caller to show.
func RestoreResidentArchive(doc *model.Document, id string) (Result, error) {
	for _, name := range doc.CategoryOrder {
		cat := doc.Categories[name]
		if cat == nil {
			continue
		}
		for i := range cat.Archive {
			if cat.Archive[i].ID != id {
				continue
			}
			entry := cat.Archive[i]
			target := entry.OriginalCategory
			if target == "" {
				target = name
			}
			dest, ok := doc.Categories[target]
			if !ok {
				return Result{}, ErrCategoryVanished
			}
			cat.Archive = append(cat.Archive[:i], cat.Archive[i+1:]...)
			item := entry.Item
			dest.Items = append(dest.Items, item)
			restored := &dest.Items[len(dest.Items)-1]
			return Result{
				Item:         restored,
				Changed:      true,
				EventPayload: map[string]any{"category": target, "restored": true},
			}, nil
		}
	}
	return Result{}, NotFoundError{Kind: "archive entry", ID: id}
}

func DeleteResidentArchive(doc *model.Document, id string) (Result, error) {
	for _, name := range doc.CategoryOrder {
		cat := doc.Categories[name]
		if cat == nil {
			continue
		}
		for i := range cat.Archive {
			if cat.Archive[i].ID == id {
				cat.Archive = append(cat.Archive[:i], cat.Archive[i+1:]...)
				return Result{
					Changed:      true,
					EventPayload: map[string]any{"deleted": true},
				}, nil
			}
		}
	}
	return Result{}, NotFoundError{Kind: "archive entry", ID: id}
}

// EditResidentArchive updates an archived entry in place.
func EditResidentArchive(doc *model.Document, id, title, html string) (Result, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Result{}, ErrEmptyTitle
	}
	for _, name := range doc.CategoryOrder {
		cat := doc.Categories[name]
		if cat == nil {
			continue
		}
		for i := range cat.Archive {
			if cat.Archive[i].ID != id {
				continue
			}
			entry := &cat.Archive[i]
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
	}
	return Result{}, NotFoundError{Kind: "archive entry", ID: id}
}
