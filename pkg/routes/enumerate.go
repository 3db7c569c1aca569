package routes

import (
	"fmt"
	"slices"
	"strings"

	"github.com/plotweave/plotweave/pkg/palette"
)

// Enumerate discovers every distinct simple path from the graph's entry
// nodes to nodes with no outgoing edges.
//
// The traversal is depth-first and carries two things: the ordered edge IDs
// taken so far and the ordered node IDs on the current path. An edge whose
// target is already on the current path is pruned, which guarantees
// termination on cyclic graphs while still allowing the same node to appear
// on multiple distinct routes. Zero-length paths (an entry that is itself a
// dead end) are discarded, and recorded paths are deduplicated by their full
// node-id sequence.
//
// Colors cycle through the fixed palette by discovery index, so the same
// input always yields the same coloring.
func (g *Graph) Enumerate() []Route {
	return g.EnumerateWith(nil)
}

// EnumerateWith is like [Graph.Enumerate] but cycles route colors through
// colors instead of the default palette. An empty slice means the default.
func (g *Graph) EnumerateWith(colors []string) []Route {
	var discovered []Route
	seen := make(map[string]bool) // node-sequence key -> recorded

	var walk func(node string, edgeIDs, path []string)
	walk = func(node string, edgeIDs, path []string) {
		path = append(path, node)

		out := g.out[node]
		if len(out) == 0 {
			if len(edgeIDs) == 0 {
				return
			}
			key := strings.Join(path, "\x00")
			if seen[key] {
				return
			}
			seen[key] = true
			idx := len(discovered)
			discovered = append(discovered, Route{
				ID:      fmt.Sprintf("route-%d", idx),
				Color:   palette.IndexIn(colors, idx),
				EdgeIDs: slices.Clone(edgeIDs),
			})
			return
		}

		for _, e := range out {
			if slices.Contains(path, e.Target) {
				continue // path-local cycle, prune
			}
			walk(e.Target, append(slices.Clone(edgeIDs), e.ID), slices.Clone(path))
		}
	}

	for _, entry := range g.Entries() {
		walk(entry, nil, nil)
	}

	return discovered
}
