package store

import (
	"encoding/json"
	"errors"
	"os"
)

// Prefs stores window geometry and small session state for restoring the
// last screen on relaunch.
//
// Unlike the document, prefs are written immediately on every change (no
// debounce): resize/move events are infrequent and high value. Loads are
// best-effort: callers always get a usable value.
type Prefs struct {
	Version int `json:"version"`

	// Geometry is the last window rectangle.
	Geometry *Rect `json:"geometry,omitempty"`

	// EditorBG maps editor pane ("detail", "note") to a background hex color.
	EditorBG map[string]string `json:"editor_bg,omitempty"`

	// Last is the selection to restore at startup.
	Last LastView `json:"last,omitempty"`
}

type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// LastView records what was on screen when the app exited.
type LastView struct {
	// Tab is "todo", "todo-archive", "archive", or a category name.
	Tab string `json:"tab,omitempty"`
	// TodoID is the selected to-do item id, if any.
	TodoID string `json:"todo_id,omitempty"`
	// Category and ItemID identify the selected resident item, if any.
	Category string `json:"category,omitempty"`
	ItemID   string `json:"item_id,omitempty"`
}

// LoadPrefs reads window.json. Missing or corrupt files yield defaults.
func (s Store) LoadPrefs() (*Prefs, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(s.PrefsPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Prefs{Version: 1}, nil
		}
		return nil, err
	}
	var p Prefs
	if err := json.Unmarshal(b, &p); err != nil {
		// Best-effort; if corrupted, treat as missing.
		return &Prefs{Version: 1}, nil
	}
	if p.Version == 0 {
		p.Version = 1
	}
	return &p, nil
}

// SavePrefs writes window.json atomically, immediately.
func (s Store) SavePrefs(p *Prefs) error {
	if p == nil {
		return nil
	}
	if err := s.Ensure(); err != nil {
		return err
	}
	if p.Version == 0 {
		p.Version = 1
	}
	b, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(s.PrefsPath(), append(b, '\n'), 0o644)
}

// SetEditorBG records an editor background color; empty clears the pane.
func (p *Prefs) SetEditorBG(pane, color string) {
	if p.EditorBG == nil {
		p.EditorBG = map[string]string{}
	}
	if color == "" {
		delete(p.EditorBG, pane)
		return
	}
	p.EditorBG[pane] = color
}
