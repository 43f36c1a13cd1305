package mutate

import "memopad/internal/model"

// SetFreeNote replaces the free-form note body.
func SetFreeNote(doc *model.Document, html string) (Result, error) {
	if doc.FreeNote.HTML == html {
		return Result{}, nil
	}
	doc.FreeNote.HTML = html
	return Result{
		Changed:      true,
		EventPayload: map[string]any{"bytes": len(html)},
	}, nil
}
