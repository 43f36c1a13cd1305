package store

import (
	"os"
	"testing"
)

func TestPrefsRoundTrip(t *testing.T) {
	s := testStore(t)
	p := &Prefs{
		Geometry: &Rect{X: 10, Y: 20, Width: 800, Height: 600},
		Last:     LastView{Tab: "Work", Category: "Work", ItemID: "abc"},
	}
	p.SetEditorBG("detail", "#e4f0ff")
	if err := s.SavePrefs(p); err != nil {
		t.Fatalf("SavePrefs error: %v", err)
	}

	got, err := s.LoadPrefs()
	if err != nil {
		t.Fatalf("LoadPrefs error: %v", err)
	}
	if got.Version != 1 {
		t.Fatalf("Version = %d", got.Version)
	}
	if got.Geometry == nil || *got.Geometry != (Rect{X: 10, Y: 20, Width: 800, Height: 600}) {
		t.Fatalf("Geometry = %+v", got.Geometry)
	}
	if got.EditorBG["detail"] != "#e4f0ff" {
		t.Fatalf("EditorBG = %v", got.EditorBG)
	}
	if got.Last.Tab != "Work" || got.Last.ItemID != "abc" {
		t.Fatalf("Last = %+v", got.Last)
	}
}

func TestLoadPrefsToleratesMissingAndCorrupt(t *testing.T) {
	s := testStore(t)
	p, err := s.LoadPrefs()
	if err != nil || p == nil {
		t.Fatalf("missing prefs: %v %v", p, err)
	}

	if err := os.WriteFile(s.PrefsPath(), []byte("garbage"), 0o644); err != nil {
		t.Fatal(err)
	}
	p, err = s.LoadPrefs()
	if err != nil {
		t.Fatalf("corrupt prefs should not error: %v", err)
	}
	if p.Version != 1 || p.Geometry != nil {
		t.Fatalf("expected defaults for corrupt prefs; got %+v", p)
	}
}

func TestSetEditorBGClearsOnEmpty(t *testing.T) {
	p := &Prefs{}
	p.SetEditorBG("free", "#ffffff")
	p.SetEditorBG("free", "")
	if _, ok := p.EditorBG["free"]; ok {
		t.Fatalf("expected cleared background")
	}
}
