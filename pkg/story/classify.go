package story

import "github.com/plotweave/plotweave/pkg/script"

// classify assigns each unit to the role sets once all links are known.
//
// A unit is a leaf when it contributed no links as a source, and a root when
// it never appears as a link target. Same-unit or unresolved transfers do
// not disqualify a leaf: only resolved cross-unit edges count.
func classify(r *Result, units []script.Unit, facts map[string]script.Facts, storyPaths []string) {
	c := Classification{
		Root:      make(map[string]bool),
		Leaf:      make(map[string]bool),
		Branching: make(map[string]bool),
		Story:     make(map[string]bool),
		Screen:    make(map[string]bool),
		Config:    make(map[string]bool),
	}

	sources := make(map[string]bool)
	targets := make(map[string]bool)
	outTargets := make(map[string]map[string]bool)
	for _, l := range r.Links {
		sources[l.Source] = true
		targets[l.Target] = true
		if outTargets[l.Source] == nil {
			outTargets[l.Source] = make(map[string]bool)
		}
		outTargets[l.Source][l.Target] = true
	}

	alwaysStory := make(map[string]bool, len(storyPaths))
	for _, p := range storyPaths {
		alwaysStory[p] = true
	}

	for _, u := range units {
		f := facts[u.ID]

		if !targets[u.ID] {
			c.Root[u.ID] = true
		}
		if !sources[u.ID] {
			c.Leaf[u.ID] = true
		}
		if f.Content[script.ContentMenu] || len(outTargets[u.ID]) > 1 {
			c.Branching[u.ID] = true
		}

		story := len(f.Labels) > 0 || alwaysStory[u.FilePath]
		switch {
		case story:
			c.Story[u.ID] = true
		case len(f.Screens) > 0:
			c.Screen[u.ID] = true
		default:
			c.Config[u.ID] = true
		}
	}

	r.Classes = c
}
