package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/plotweave/plotweave/pkg/script"
	"github.com/plotweave/plotweave/pkg/story"
)

func analyzedResult(t *testing.T) *story.Result {
	t.Helper()
	units := []script.Unit{
		{ID: "A", FilePath: "game/a.rpy", Text: "label start:\n    menu:\n        \"Left\":\n            jump left\n        \"Right\":\n            jump right"},
		{ID: "B", FilePath: "game/b.rpy", Text: "label left:\n    return\n\nlabel right:\n    return"},
	}
	return story.Analyze(units, story.Options{})
}

func TestSummarizeRoutes(t *testing.T) {
	r := analyzedResult(t)
	summaries := summarizeRoutes(r)

	if len(summaries) != 2 {
		t.Fatalf("expected 2 routes, got %d", len(summaries))
	}
	for _, s := range summaries {
		if len(s.Labels) < 2 {
			t.Errorf("route %s has too few labels: %v", s.ID, s.Labels)
		}
		if s.Labels[0] != "start" {
			t.Errorf("route %s should begin at start, got %q", s.ID, s.Labels[0])
		}
		if s.Color == "" {
			t.Errorf("route %s has no color", s.ID)
		}
		if len(s.Kinds) != len(s.Labels)-1 {
			t.Errorf("route %s: %d kinds for %d labels", s.ID, len(s.Kinds), len(s.Labels))
		}
	}
}

func TestRouteSummaryPath(t *testing.T) {
	s := routeSummary{Labels: []string{"start", "middle", "ending"}}

	full := s.path(0)
	if !strings.Contains(full, "start") || !strings.Contains(full, "ending") {
		t.Errorf("path missing labels: %q", full)
	}

	short := s.path(10)
	if len([]rune(short)) > 10 {
		t.Errorf("path not truncated: %q", short)
	}
	if !strings.HasSuffix(short, "…") {
		t.Errorf("truncated path should end with ellipsis: %q", short)
	}
}

func TestRouteBrowserNavigation(t *testing.T) {
	summaries := []routeSummary{
		{ID: "r1", Color: "#ff0000", Labels: []string{"start", "left"}, Kinds: []string{"jump"}},
		{ID: "r2", Color: "#00ff00", Labels: []string{"start", "right"}, Kinds: []string{"jump"}},
	}
	m := newRouteBrowser(summaries)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(RouteBrowserModel)
	if m.Cursor != 1 {
		t.Errorf("cursor should move down, got %d", m.Cursor)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(RouteBrowserModel)
	if m.Cursor != 1 {
		t.Errorf("cursor should clamp at last route, got %d", m.Cursor)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(RouteBrowserModel)
	if !m.Expanded {
		t.Error("enter should expand the selected route")
	}

	view := m.View()
	if !strings.Contains(view, "r2") {
		t.Errorf("view missing selected route: %q", view)
	}
	if !strings.Contains(view, "right") {
		t.Errorf("expanded view missing label sequence: %q", view)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(RouteBrowserModel)
	if m.Cursor != 0 || m.Expanded {
		t.Errorf("up should move cursor and collapse detail, got cursor=%d expanded=%v", m.Cursor, m.Expanded)
	}
}
