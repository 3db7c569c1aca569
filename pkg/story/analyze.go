package story

import (
	"regexp"
	"strings"

	"github.com/plotweave/plotweave/pkg/routes"
	"github.com/plotweave/plotweave/pkg/script"
)

// Analyze runs the full engine pass over an ordered collection of units.
// It never fails: malformed script text degrades to best-effort facts, and
// unresolved references become data in the result.
func Analyze(units []script.Unit, opts Options) *Result {
	debugPath := opts.debugPath()

	kept := make([]script.Unit, 0, len(units))
	for _, u := range units {
		if u.FilePath == debugPath {
			continue
		}
		kept = append(kept, u)
	}

	facts := make(map[string]script.Facts, len(kept))
	for _, u := range kept {
		facts[u.ID] = script.Extract(u)
	}

	r := &Result{
		Units:        kept,
		InvalidJumps: make(map[string][]string),
		Labels:       make(map[string]script.Label),
		FirstLabels:  make(map[string]string),
		Transfers:    make(map[string][]script.Transfer),
		Content:      make(map[string][]script.ContentType),
		Characters:   make(map[string]script.CharacterDef),
		Variables:    make(map[string]script.VariableDef),
		Screens:      make(map[string]script.ScreenDef),
		Images:       make(map[string]bool),
		Dialogue:     make(map[string][]DialogueLine),
		CharacterUse: make(map[string]int),
		VariableUse:  make(map[string][]Usage),
	}

	collectDefinitions(r, kept, facts)
	collectDialogue(r, kept, facts)
	buildLinks(r, kept, facts)
	classify(r, kept, facts, opts.storyPaths())
	scanVariableUse(r, kept)

	g := routes.Build(kept, facts)
	r.LabelNodes = g.Nodes
	r.RouteEdges = g.Edges
	r.Routes = g.EnumerateWith(opts.Palette)

	return r
}

// collectDefinitions merges per-unit facts into the global tables. Labels
// share one namespace: a later label with the same name overwrites the
// earlier one in the index (the nodes of both still exist in the label
// graph).
func collectDefinitions(r *Result, units []script.Unit, facts map[string]script.Facts) {
	for _, u := range units {
		f := facts[u.ID]

		for _, l := range f.Labels {
			r.Labels[l.Name] = l
		}
		if f.FirstLabel != "" {
			r.FirstLabels[u.ID] = f.FirstLabel
		}
		if len(f.Transfers) > 0 {
			r.Transfers[u.ID] = f.Transfers
		}
		for _, c := range f.Characters {
			r.Characters[c.Tag] = c
		}
		for _, v := range f.Variables {
			r.Variables[v.Name] = v
		}
		for _, s := range f.Screens {
			r.Screens[s.Name] = s
		}
		for _, img := range f.Images {
			r.Images[img] = true
		}
	}

	// The character pass and the define/default pass can both match around
	// the same lines; a name that is also a character tag is a character,
	// not a variable.
	for name := range r.Variables {
		if _, isCharacter := r.Characters[name]; isCharacter {
			delete(r.Variables, name)
		}
	}
}

// collectDialogue resolves speaker lines against the character table.
// Speaker lines with unknown tags are neither dialogue nor narration; bare
// quoted lines were already recorded as narration by the extractor.
func collectDialogue(r *Result, units []script.Unit, facts map[string]script.Facts) {
	for _, u := range units {
		f := facts[u.ID]

		content := f.Content
		for _, s := range f.Speakers {
			if _, known := r.Characters[s.Tag]; !known {
				continue
			}
			r.Dialogue[u.ID] = append(r.Dialogue[u.ID], DialogueLine{
				UnitID: u.ID,
				Line:   s.Line,
				Tag:    s.Tag,
			})
			r.CharacterUse[s.Tag]++
			content[script.ContentDialogue] = true
		}
		if len(f.Narration) > 0 {
			content[script.ContentNarration] = true
		}

		types := make([]script.ContentType, 0, len(content))
		for _, ct := range []script.ContentType{
			script.ContentMenu,
			script.ContentTransfers,
			script.ContentPython,
			script.ContentDialogue,
			script.ContentNarration,
		} {
			if content[ct] {
				types = append(types, ct)
			}
		}
		if len(types) > 0 {
			r.Content[u.ID] = types
		}
	}
}

// buildLinks turns cross-unit transfers into deduplicated unit links and
// records unresolved targets as invalid jumps. Same-unit transfers never
// become links, and dynamic transfers are decoration unless their literal
// target happens to resolve.
func buildLinks(r *Result, units []script.Unit, facts map[string]script.Facts) {
	linkSeen := make(map[[2]string]bool)
	invalidSeen := make(map[string]map[string]bool)

	for _, u := range units {
		for _, t := range facts[u.ID].Transfers {
			target, ok := r.Labels[t.Target]
			if !ok {
				if t.Dynamic {
					continue // expression target, not a broken reference
				}
				if invalidSeen[u.ID] == nil {
					invalidSeen[u.ID] = make(map[string]bool)
				}
				if !invalidSeen[u.ID][t.Target] {
					invalidSeen[u.ID][t.Target] = true
					r.InvalidJumps[u.ID] = append(r.InvalidJumps[u.ID], t.Target)
				}
				continue
			}

			if target.UnitID == u.ID {
				continue
			}
			key := [2]string{u.ID, target.UnitID}
			if linkSeen[key] {
				continue
			}
			linkSeen[key] = true
			r.Links = append(r.Links, UnitLink{
				Source: u.ID,
				Target: target.UnitID,
				Label:  t.Target,
			})
		}
	}
}

// scanVariableUse records every occurrence of each variable name across all
// unit texts. This is deliberately O(variables × lines): full passes are
// infrequent, and the simple scan beats maintaining an index.
func scanVariableUse(r *Result, units []script.Unit) {
	for name := range r.Variables {
		re := regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\b`)
		for _, u := range units {
			for i, line := range strings.Split(u.Text, "\n") {
				if re.MatchString(line) {
					r.VariableUse[name] = append(r.VariableUse[name], Usage{UnitID: u.ID, Line: i})
				}
			}
		}
	}
}
