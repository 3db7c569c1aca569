package pipeline

import (
	"github.com/plotweave/plotweave/pkg/layout"
	"github.com/plotweave/plotweave/pkg/story"
)

// ComputeLayout positions every unit of an analysis result.
func ComputeLayout(analysis *story.Result, opts Options) map[string]layout.Point {
	nodes := make([]layout.Node, 0, len(analysis.Units))
	for _, u := range analysis.Units {
		nodes = append(nodes, layout.Node{ID: u.ID})
	}

	edges := make([]layout.Edge, 0, len(analysis.Links))
	for _, l := range analysis.Links {
		edges = append(edges, layout.Edge{Source: l.Source, Target: l.Target})
	}

	return layout.Compute(nodes, edges, opts.LayoutOptions())
}
