package tui

import (
	"strings"
	"time"

	"memopad/internal/model"
	"memopad/internal/richtext"
)

type todoRowItem struct {
	item model.Item
}

func (i todoRowItem) FilterValue() string { return i.item.Title }
func (i todoRowItem) Title() string {
	box := "[ ]"
	title := i.item.Title
	if i.item.Done {
		box = "[x]"
		title = doneStyle.Render(title)
	}
	return colorSwatch(i.item.Color) + box + " " + title
}
func (i todoRowItem) Description() string {
	return snippet(i.item.HTML)
}

type residentRowItem struct {
	item     model.Item
	category string
}

func (i residentRowItem) FilterValue() string { return i.item.Title }
func (i residentRowItem) Title() string {
	return colorSwatch(i.item.Color) + i.item.Title
}
func (i residentRowItem) Description() string {
	return snippet(i.item.HTML)
}

type todoArchiveRowItem struct {
	entry model.ArchivedItem
}

func (i todoArchiveRowItem) FilterValue() string { return i.entry.Title }
func (i todoArchiveRowItem) Title() string       { return i.entry.Title }
func (i todoArchiveRowItem) Description() string {
	return archivedAtLabel(i.entry.ArchivedAt)
}

type archiveRowItem struct {
	entry model.ResidentArchiveEntry
}

func (i archiveRowItem) FilterValue() string {
	return i.entry.Title + " " + i.entry.OriginalCategory
}
func (i archiveRowItem) Title() string { return i.entry.Title }
func (i archiveRowItem) Description() string {
	from := i.entry.OriginalCategory
	if from == "" {
		from = i.entry.StoredCategory
	}
	return from + "  " + archivedAtLabel(i.entry.ArchivedAt)
}

func archivedAtLabel(unix int64) string {
	if unix == 0 {
		return ""
	}
	return time.Unix(unix, 0).Format("2006-01-02 15:04")
}

// snippet shows the first body line under the title.
func snippet(html string) string {
	plain := strings.TrimSpace(richtext.ToPlain(html))
	if plain == "" {
		return ""
	}
	if i := strings.IndexByte(plain, '\n'); i >= 0 {
		plain = plain[:i]
	}
	return plain
}
