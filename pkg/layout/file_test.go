package layout

import (
	"path/filepath"
	"testing"
)

func TestPositionsFileRoundTrip(t *testing.T) {
	positions := map[string]Point{
		"game/intro": {X: 0, Y: -90},
		"game/end":   {X: 360, Y: -60},
	}

	path := filepath.Join(t.TempDir(), "layout.json")
	if err := WritePositionsFile(positions, path); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := ReadPositionsFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != len(positions) {
		t.Fatalf("expected %d positions, got %d", len(positions), len(got))
	}
	for id, p := range positions {
		if got[id] != p {
			t.Errorf("position %s = %+v, want %+v", id, got[id], p)
		}
	}
}

func TestReadPositionsFileMissing(t *testing.T) {
	if _, err := ReadPositionsFile(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
