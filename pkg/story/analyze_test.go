package story

import (
	"testing"

	"github.com/plotweave/plotweave/pkg/script"
)

func unit(id, path, text string) script.Unit {
	return script.Unit{ID: id, FilePath: path, Text: text}
}

func TestAnalyzeSingleLink(t *testing.T) {
	r := Analyze([]script.Unit{
		unit("A", "game/a.rpy", "label start:\n    jump b"),
		unit("B", "game/b.rpy", "label b:\n    return"),
	}, Options{})

	if len(r.Links) != 1 {
		t.Fatalf("expected 1 link, got %d: %+v", len(r.Links), r.Links)
	}
	l := r.Links[0]
	if l.Source != "A" || l.Target != "B" || l.Label != "b" {
		t.Errorf("unexpected link %+v", l)
	}

	if !r.Classes.Root["A"] {
		t.Error("A should be root")
	}
	if r.Classes.Root["B"] {
		t.Error("B should not be root")
	}
	if !r.Classes.Leaf["B"] {
		t.Error("B should be leaf")
	}
	if r.Classes.Leaf["A"] {
		t.Error("A should not be leaf")
	}

	if len(r.Routes) != 1 {
		t.Fatalf("expected 1 route, got %d", len(r.Routes))
	}
	route := r.Routes[0]
	if len(route.EdgeIDs) != 1 {
		t.Fatalf("expected 1 edge in route, got %d", len(route.EdgeIDs))
	}
	for _, e := range r.RouteEdges {
		if e.ID == route.EdgeIDs[0] {
			if e.Source != "A:start" || e.Target != "B:b" {
				t.Errorf("route edge %s -> %s, want A:start -> B:b", e.Source, e.Target)
			}
			return
		}
	}
	t.Fatalf("route edge %s not found in edge list", route.EdgeIDs[0])
}

func TestAnalyzeCharacterNotVariable(t *testing.T) {
	r := Analyze([]script.Unit{
		unit("A", "game/chars.rpy", `define e = Character("Eileen", color="#ff0000")`),
	}, Options{})

	c, ok := r.Characters["e"]
	if !ok {
		t.Fatal("character e not found")
	}
	if c.DisplayName != "Eileen" {
		t.Errorf("display name = %q, want Eileen", c.DisplayName)
	}
	if c.Color != "#ff0000" {
		t.Errorf("color = %q, want #ff0000", c.Color)
	}
	if _, ok := r.Variables["e"]; ok {
		t.Error("character tag must not appear in the variable table")
	}
}

func TestAnalyzeInvalidJumps(t *testing.T) {
	r := Analyze([]script.Unit{
		unit("A", "game/a.rpy", "label start:\n    jump nowhere\n    jump nowhere\n    jump expression target_var"),
		unit("B", "game/b.rpy", "label b:\n    return"),
	}, Options{})

	got := r.InvalidJumps["A"]
	if len(got) != 1 || got[0] != "nowhere" {
		t.Fatalf("invalid jumps for A = %v, want [nowhere]", got)
	}
	for unitID, names := range r.InvalidJumps {
		for _, name := range names {
			if _, ok := r.Labels[name]; ok {
				t.Errorf("unit %s: %q is in the label index and cannot be invalid", unitID, name)
			}
		}
	}
	if len(r.Links) != 0 {
		t.Errorf("expected no links, got %+v", r.Links)
	}
}

func TestAnalyzeSameUnitTransferIsLeaf(t *testing.T) {
	r := Analyze([]script.Unit{
		unit("A", "game/a.rpy", "label start:\n    jump again\nlabel again:\n    return"),
	}, Options{})

	if len(r.Links) != 0 {
		t.Fatalf("same-unit transfer must not produce links, got %+v", r.Links)
	}
	if !r.Classes.Leaf["A"] {
		t.Error("A contributed no links and must be a leaf")
	}
	if !r.Classes.Root["A"] {
		t.Error("A is never a target and must be a root")
	}
}

func TestAnalyzeLabelIndexLastWriteWins(t *testing.T) {
	r := Analyze([]script.Unit{
		unit("A", "game/a.rpy", "label dupe:\n    return"),
		unit("B", "game/b.rpy", "label dupe:\n    return"),
	}, Options{})

	if got := r.Labels["dupe"].UnitID; got != "B" {
		t.Errorf("label index entry owned by %s, want B", got)
	}
}

func TestAnalyzeDebugPathFiltered(t *testing.T) {
	r := Analyze([]script.Unit{
		unit("A", "game/a.rpy", "label start:\n    return"),
		unit("S", DefaultDebugPath, "label scratch:\n    return"),
	}, Options{})

	if len(r.Units) != 1 || r.Units[0].ID != "A" {
		t.Fatalf("scratch unit must be filtered, got %+v", r.Units)
	}
	if _, ok := r.Labels["scratch"]; ok {
		t.Error("labels from the debug unit must not enter the index")
	}
}

func TestAnalyzeDialogue(t *testing.T) {
	r := Analyze([]script.Unit{
		unit("C", "game/chars.rpy", `define e = Character("Eileen")`),
		unit("A", "game/a.rpy", "label start:\n    e \"Hello.\"\n    e \"Again.\"\n    x \"Unknown tag.\"\n    \"Plain narration.\""),
	}, Options{})

	if got := len(r.Dialogue["A"]); got != 2 {
		t.Fatalf("expected 2 dialogue lines, got %d", got)
	}
	if r.CharacterUse["e"] != 2 {
		t.Errorf("character use for e = %d, want 2", r.CharacterUse["e"])
	}
	if r.CharacterUse["x"] != 0 {
		t.Error("unknown tag must not count as a character use")
	}

	has := func(unitID string, ct script.ContentType) bool {
		for _, c := range r.Content[unitID] {
			if c == ct {
				return true
			}
		}
		return false
	}
	if !has("A", script.ContentDialogue) {
		t.Error("unit A should carry dialogue content")
	}
	if !has("A", script.ContentNarration) {
		t.Error("unit A should carry narration content")
	}
}

func TestAnalyzeClassification(t *testing.T) {
	r := Analyze([]script.Unit{
		unit("M", "game/menu.rpy", "label start:\n    menu:\n        \"Left\":\n            jump left\n        \"Right\":\n            jump right"),
		unit("L", "game/left.rpy", "label left:\n    return"),
		unit("R", "game/right.rpy", "label right:\n    return"),
		unit("V", "game/variables.rpy", "define score = 0"),
		unit("S", "game/ui.rpy", "screen stats():\n    text \"hi\""),
		unit("C", "game/options.rpy", "define config.name = \"demo\""),
	}, Options{})

	if !r.Classes.Branching["M"] {
		t.Error("menu unit must be branching")
	}
	if !r.Classes.Story["M"] || !r.Classes.Story["L"] {
		t.Error("labeled units must be story")
	}
	if !r.Classes.Story["V"] {
		t.Error("variables file is always story even without labels")
	}
	if !r.Classes.Screen["S"] {
		t.Error("screen-defining unit without labels must be screen-only")
	}
	if r.Classes.Story["S"] {
		t.Error("screen-only unit must not also be story")
	}
	if !r.Classes.Config["C"] {
		t.Error("residual unit must be config")
	}
}

func TestAnalyzeStoryPathsDisabled(t *testing.T) {
	r := Analyze([]script.Unit{
		unit("V", "game/variables.rpy", "define score = 0"),
	}, Options{StoryPaths: []string{}})

	if r.Classes.Story["V"] {
		t.Error("empty allow-list disables the always-story paths")
	}
	if !r.Classes.Config["V"] {
		t.Error("unit without labels or screens must fall back to config")
	}
}

func TestAnalyzeMultiTargetBranching(t *testing.T) {
	r := Analyze([]script.Unit{
		unit("A", "game/a.rpy", "label start:\n    call left\n    jump right"),
		unit("L", "game/left.rpy", "label left:\n    return"),
		unit("R", "game/right.rpy", "label right:\n    return"),
	}, Options{})

	if !r.Classes.Branching["A"] {
		t.Error("unit with two distinct resolved targets must be branching")
	}
	if r.Classes.Branching["L"] {
		t.Error("leaf unit must not be branching")
	}
}

func TestAnalyzeVariableUse(t *testing.T) {
	r := Analyze([]script.Unit{
		unit("V", "game/variables.rpy", "default score = 0"),
		unit("A", "game/a.rpy", "label start:\n    $ score += 1\n    if score > 2:\n        jump end\nlabel end:\n    return"),
	}, Options{})

	v, ok := r.Variables["score"]
	if !ok {
		t.Fatal("variable score not found")
	}
	if v.Kind != script.VariableDefault {
		t.Errorf("kind = %q, want default", v.Kind)
	}

	uses := r.VariableUse["score"]
	var inA int
	for _, u := range uses {
		if u.UnitID == "A" {
			inA++
		}
	}
	if inA != 2 {
		t.Errorf("expected 2 usages in unit A, got %d (%+v)", inA, uses)
	}
	// "scores" must not count as a use of "score"
	r2 := Analyze([]script.Unit{
		unit("V", "game/variables.rpy", "default score = 0"),
		unit("B", "game/b.rpy", "label start:\n    $ scores = 1"),
	}, Options{})
	for _, u := range r2.VariableUse["score"] {
		if u.UnitID == "B" {
			t.Errorf("substring match counted as usage: %+v", u)
		}
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	units := []script.Unit{
		unit("A", "game/a.rpy", "label start:\n    menu:\n        \"a\":\n            jump b\n        \"b\":\n            jump c"),
		unit("B", "game/b.rpy", "label b:\n    jump c"),
		unit("C", "game/c.rpy", "label c:\n    return"),
	}

	first := Analyze(units, Options{})
	for i := 0; i < 5; i++ {
		again := Analyze(units, Options{})
		if len(again.Links) != len(first.Links) {
			t.Fatal("link count varies across runs")
		}
		for j := range first.Links {
			if again.Links[j] != first.Links[j] {
				t.Fatalf("link order varies across runs: %+v vs %+v", again.Links[j], first.Links[j])
			}
		}
		if len(again.Routes) != len(first.Routes) {
			t.Fatal("route count varies across runs")
		}
		for j := range first.Routes {
			if again.Routes[j].Color != first.Routes[j].Color {
				t.Fatal("route colors vary across runs")
			}
		}
	}
}

func TestAnalyzeCustomPalette(t *testing.T) {
	units := []script.Unit{
		unit("A", "game/a.rpy", "label start:\n    jump b"),
		unit("B", "game/b.rpy", "label b:\n    return"),
	}

	r := Analyze(units, Options{Palette: []string{"#123456"}})
	if len(r.Routes) != 1 {
		t.Fatalf("expected 1 route, got %d", len(r.Routes))
	}
	if r.Routes[0].Color != "#123456" {
		t.Errorf("route color = %s, want palette override", r.Routes[0].Color)
	}
}
