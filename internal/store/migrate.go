package store

import (
	"encoding/json"
	"sort"

	"github.com/google/uuid"
)

// CurrentSchemaVersion is the document schema this build reads and writes.
//
// Version history:
//
//	0: legacy: to-do items keyed by "text", free note under "memo2",
//	   no schema_version field
//	1: "text" renamed to "title", free note under "free_note"
//	2: categories hold item collections instead of a bare html blob
//	3: every item has id/title/html, every category has an archive, and
//	   category_order covers all categories
const CurrentSchemaVersion = 3

const (
	defaultItemTitle = "Untitled"
	defaultBlobTitle = "Note"
)

type migrationStep struct {
	to    int
	apply func(doc map[string]any) bool
}

// Steps are applied in sequence; each upgrades from version to-1 to version to.
var migrationSteps = []migrationStep{
	{to: 1, apply: migrateTextToTitle},
	{to: 2, apply: migrateCategoryBlobs},
	{to: 3, apply: migrateDefaults},
}

// Migrate upgrades a raw document file to the current schema. It returns the
// upgraded JSON and whether anything had to change (version bump included,
// so pre-versioning files are always re-persisted once).
func Migrate(raw []byte) ([]byte, bool, error) {
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, false, err
	}

	version := 0
	if v, ok := doc["schema_version"].(float64); ok {
		version = int(v)
	}
	if version >= CurrentSchemaVersion {
		return raw, false, nil
	}

	for _, step := range migrationSteps {
		if version >= step.to {
			continue
		}
		step.apply(doc)
		version = step.to
	}
	doc["schema_version"] = CurrentSchemaVersion

	out, err := json.Marshal(doc)
	if err != nil {
		return nil, false, err
	}
	return out, true, nil
}

// v0 -> v1: to-do items used "text" for the display title, and the free note
// lived under "memo2".
func migrateTextToTitle(doc map[string]any) bool {
	changed := false
	if todo := asMap(doc["todo"]); todo != nil {
		for _, key := range []string{"items", "archive"} {
			for _, v := range asSlice(todo[key]) {
				it := asMap(v)
				if it == nil {
					continue
				}
				if _, ok := it["title"]; !ok {
					if text, ok := it["text"].(string); ok {
						it["title"] = text
					} else {
						it["title"] = ""
					}
					delete(it, "text")
					changed = true
				}
			}
		}
	}
	if memo := asMap(doc["memo2"]); memo != nil {
		if _, ok := doc["free_note"]; !ok {
			doc["free_note"] = memo
		}
		delete(doc, "memo2")
		changed = true
	}
	return changed
}

// v1 -> v2: a category used to be a single rich-text blob {"html": ...}.
// A non-empty blob becomes the category's first item.
func migrateCategoryBlobs(doc map[string]any) bool {
	changed := false
	cats := asMap(doc["categories"])
	for name, v := range cats {
		cat := asMap(v)
		if cat == nil {
			continue
		}
		if _, ok := cat["items"]; ok {
			continue
		}
		items := []any{}
		if html, ok := cat["html"].(string); ok && html != "" {
			items = append(items, map[string]any{
				"id":    uuid.NewString(),
				"title": defaultBlobTitle,
				"html":  html,
			})
		}
		cats[name] = map[string]any{"items": items, "archive": []any{}}
		changed = true
	}
	return changed
}

// v2 -> v3: fill structural gaps left by older writers: missing ids and
// titles, absent category archives, and category_order entries.
func migrateDefaults(doc map[string]any) bool {
	changed := false

	fill := func(v any) {
		it := asMap(v)
		if it == nil {
			return
		}
		if s, ok := it["id"].(string); !ok || s == "" {
			it["id"] = uuid.NewString()
			changed = true
		}
		if _, ok := it["title"].(string); !ok {
			it["title"] = defaultItemTitle
			changed = true
		}
		if _, ok := it["html"].(string); !ok {
			it["html"] = ""
			changed = true
		}
	}

	if todo := asMap(doc["todo"]); todo != nil {
		for _, key := range []string{"items", "archive"} {
			for _, v := range asSlice(todo[key]) {
				fill(v)
			}
		}
	}

	cats := asMap(doc["categories"])
	for _, v := range cats {
		cat := asMap(v)
		if cat == nil {
			continue
		}
		for _, iv := range asSlice(cat["items"]) {
			fill(iv)
		}
		if _, ok := cat["archive"]; !ok {
			cat["archive"] = []any{}
			changed = true
		} else {
			for _, av := range asSlice(cat["archive"]) {
				fill(av)
			}
		}
	}

	// Append categories missing from the order, sorted for a stable result.
	order := []string{}
	for _, v := range asSlice(doc["category_order"]) {
		if s, ok := v.(string); ok {
			order = append(order, s)
		}
	}
	var missing []string
	for name := range cats {
		found := false
		for _, o := range order {
			if o == name {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		out := make([]any, 0, len(order)+len(missing))
		for _, o := range order {
			out = append(out, o)
		}
		for _, m := range missing {
			out = append(out, m)
		}
		doc["category_order"] = out
		changed = true
	}

	return changed
}

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func asSlice(v any) []any {
	s, _ := v.([]any)
	return s
}
