package routes

import (
	"testing"

	"github.com/plotweave/plotweave/pkg/script"
)

// extract builds the facts map the way story.Analyze does, so graph tests
// exercise the same inputs the engine sees.
func extract(units []script.Unit) map[string]script.Facts {
	facts := make(map[string]script.Facts, len(units))
	for _, u := range units {
		facts[u.ID] = script.Extract(u)
	}
	return facts
}

func TestBuildNodes(t *testing.T) {
	units := []script.Unit{
		{ID: "a", Text: "label start:\n    jump b\nlabel epilogue:\n    return"},
		{ID: "b", Text: "label b:\n    return"},
	}
	g := Build(units, extract(units))

	if len(g.Nodes) != 3 {
		t.Fatalf("nodes = %d, want 3", len(g.Nodes))
	}
	if g.Nodes[0].ID != "a:start" || g.Nodes[0].UnitID != "a" || g.Nodes[0].Label != "start" {
		t.Errorf("node = %+v", g.Nodes[0])
	}
	if g.Nodes[0].StartLine != 0 || g.Nodes[1].StartLine != 2 {
		t.Errorf("start lines = %d, %d", g.Nodes[0].StartLine, g.Nodes[1].StartLine)
	}
}

func TestBuildExplicitEdges(t *testing.T) {
	units := []script.Unit{
		{ID: "a", Text: "label start:\n    jump middle\nlabel middle:\n    call finale"},
		{ID: "b", Text: "label finale:\n    return"},
	}
	g := Build(units, extract(units))

	if len(g.Edges) != 2 {
		t.Fatalf("edges = %d, want 2: %+v", len(g.Edges), g.Edges)
	}
	if g.Edges[0].Source != "a:start" || g.Edges[0].Target != "a:middle" || g.Edges[0].Kind != EdgeJump {
		t.Errorf("edge = %+v", g.Edges[0])
	}
	if g.Edges[1].Source != "a:middle" || g.Edges[1].Target != "b:finale" || g.Edges[1].Kind != EdgeCall {
		t.Errorf("edge = %+v", g.Edges[1])
	}
}

func TestBuildEdgeDedup(t *testing.T) {
	units := []script.Unit{
		{ID: "a", Text: "label start:\n    jump b\n    jump b\n    jump b"},
		{ID: "b", Text: "label b:\n    return"},
	}
	g := Build(units, extract(units))

	if len(g.Edges) != 1 {
		t.Errorf("edges = %d, want 1 after dedup", len(g.Edges))
	}
}

func TestBuildImplicitEdges(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantKinds []EdgeKind
	}{
		{
			name:      "FallThrough",
			text:      "label one:\n    \"no terminal here\"\nlabel two:\n    return",
			wantKinds: []EdgeKind{EdgeImplicit},
		},
		{
			name:      "ReturnBlocksFallThrough",
			text:      "label one:\n    return\nlabel two:\n    return",
			wantKinds: nil,
		},
		{
			name:      "JumpBlocksFallThrough",
			text:      "label one:\n    jump two\nlabel two:\n    return",
			wantKinds: []EdgeKind{EdgeJump},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			units := []script.Unit{{ID: "u", Text: tt.text}}
			g := Build(units, extract(units))

			var kinds []EdgeKind
			for _, e := range g.Edges {
				kinds = append(kinds, e.Kind)
			}
			if len(kinds) != len(tt.wantKinds) {
				t.Fatalf("edges = %+v, want kinds %v", g.Edges, tt.wantKinds)
			}
			for i := range kinds {
				if kinds[i] != tt.wantKinds[i] {
					t.Errorf("kind[%d] = %s, want %s", i, kinds[i], tt.wantKinds[i])
				}
			}
		})
	}
}

func TestBuildUnresolvedTargetNoEdge(t *testing.T) {
	units := []script.Unit{
		{ID: "a", Text: "label start:\n    jump missing_label"},
	}
	g := Build(units, extract(units))

	if len(g.Edges) != 0 {
		t.Errorf("edges = %+v, want none for unresolved target", g.Edges)
	}
}

func TestBuildTransferBeforeFirstLabel(t *testing.T) {
	// A transfer above every label has no owner and produces no edge.
	units := []script.Unit{
		{ID: "a", Text: "jump b\nlabel start:\n    return"},
		{ID: "b", Text: "label b:\n    return"},
	}
	g := Build(units, extract(units))

	if len(g.Edges) != 0 {
		t.Errorf("edges = %+v, want none", g.Edges)
	}
}

func TestEntries(t *testing.T) {
	t.Run("StartLabelWins", func(t *testing.T) {
		units := []script.Unit{
			{ID: "a", Text: "label intro:\n    jump start\nlabel start:\n    return"},
		}
		g := Build(units, extract(units))
		entries := g.Entries()
		if len(entries) != 1 || entries[0] != "a:start" {
			t.Errorf("entries = %v, want [a:start]", entries)
		}
	})

	t.Run("FallbackToZeroInDegree", func(t *testing.T) {
		units := []script.Unit{
			{ID: "a", Text: "label intro:\n    jump finale"},
			{ID: "b", Text: "label finale:\n    return"},
		}
		g := Build(units, extract(units))
		entries := g.Entries()
		if len(entries) != 1 || entries[0] != "a:intro" {
			t.Errorf("entries = %v, want [a:intro]", entries)
		}
	})
}

func TestTerminals(t *testing.T) {
	units := []script.Unit{
		{ID: "a", Text: "label start:\n    jump b"},
		{ID: "b", Text: "label b:\n    return"},
	}
	g := Build(units, extract(units))

	terminals := g.Terminals()
	if len(terminals) != 1 || terminals[0] != "b:b" {
		t.Errorf("terminals = %v, want [b:b]", terminals)
	}
}
