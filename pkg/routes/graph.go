package routes

import (
	"fmt"
	"strings"

	"github.com/plotweave/plotweave/pkg/script"
)

// EntryLabel is the label name that, when present, becomes the sole set of
// entry points for route enumeration.
const EntryLabel = "start"

// Node is one label in the label-level graph. Its ID is the unit ID and the
// label name joined by a colon, which is unique as long as a unit does not
// define the same label twice.
type Node struct {
	ID        string `json:"id" bson:"id"`
	UnitID    string `json:"unit_id" bson:"unit_id"`
	Label     string `json:"label" bson:"label"`
	StartLine int    `json:"start_line" bson:"start_line"`
}

// EdgeKind distinguishes explicit jumps and calls from implicit fall-through.
type EdgeKind string

// Edge kinds.
const (
	EdgeJump     EdgeKind = "jump"
	EdgeCall     EdgeKind = "call"
	EdgeImplicit EdgeKind = "implicit"
)

// Edge is a directed connection between two label nodes.
type Edge struct {
	ID     string   `json:"id" bson:"id"`
	Source string   `json:"source" bson:"source"`
	Target string   `json:"target" bson:"target"`
	Kind   EdgeKind `json:"kind" bson:"kind"`
}

// Route is one complete, distinct narrative path from an entry node to a
// terminal node. EdgeIDs lists the edges taken, in order.
type Route struct {
	ID      string   `json:"id" bson:"id"`
	Color   string   `json:"color" bson:"color"`
	EdgeIDs []string `json:"edge_ids" bson:"edge_ids"`
}

// Graph is the label-level graph. Construction order is source order, which
// keeps every downstream computation deterministic.
type Graph struct {
	Nodes []Node
	Edges []Edge

	out      map[string][]Edge
	inDegree map[string]int
	byLabel  map[string][]string // label name -> node IDs carrying it
}

// NodeID builds the canonical node ID for a label within a unit.
func NodeID(unitID, label string) string {
	return unitID + ":" + label
}

// Build constructs the label graph from per-unit facts. The facts map must
// come from [script.Extract]; units absent from it contribute nothing.
// Units are processed in the order given, labels in source order.
func Build(units []script.Unit, facts map[string]script.Facts) *Graph {
	g := &Graph{
		out:      make(map[string][]Edge),
		inDegree: make(map[string]int),
		byLabel:  make(map[string][]string),
	}

	// Global label resolution index: last write wins, mirroring the label
	// namespace of the scripting language itself.
	resolve := make(map[string]string) // label name -> node ID
	for _, u := range units {
		for _, l := range facts[u.ID].Labels {
			id := NodeID(u.ID, l.Name)
			g.Nodes = append(g.Nodes, Node{
				ID:        id,
				UnitID:    u.ID,
				Label:     l.Name,
				StartLine: l.Line,
			})
			resolve[l.Name] = id
			g.byLabel[l.Name] = append(g.byLabel[l.Name], id)
		}
	}

	seen := make(map[string]bool) // dedup edges by (source, target, kind)
	addEdge := func(source, target string, kind EdgeKind) {
		id := fmt.Sprintf("%s->%s:%s", source, target, kind)
		if seen[id] {
			return
		}
		seen[id] = true
		e := Edge{ID: id, Source: source, Target: target, Kind: kind}
		g.Edges = append(g.Edges, e)
		g.out[source] = append(g.out[source], e)
		g.inDegree[target]++
	}

	for _, u := range units {
		f := facts[u.ID]
		bodies := labelBodies(u, f)

		// Explicit edges: each transfer is attributed to the nearest label
		// above it; unresolved targets simply produce no edge.
		for _, t := range f.Transfers {
			owner := owningLabel(f.Labels, t.Line)
			if owner < 0 {
				continue
			}
			targetID, ok := resolve[t.Target]
			if !ok {
				continue
			}
			addEdge(NodeID(u.ID, f.Labels[owner].Name), targetID, EdgeKind(t.Kind))
		}

		// Implicit edges: a label body with no jump, call, or return falls
		// through into the next label below it in the same unit.
		for i := 0; i+1 < len(f.Labels); i++ {
			if bodies[i].hasTerminal {
				continue
			}
			addEdge(NodeID(u.ID, f.Labels[i].Name), NodeID(u.ID, f.Labels[i+1].Name), EdgeImplicit)
		}
	}

	return g
}

// body describes one label's line range and its terminal statements.
type body struct {
	start, end  int // [start, end) line range, end exclusive
	hasTerminal bool
	hasReturn   bool
}

// labelBodies computes, for each label in order, the line range until the
// next label (or end of unit) and whether that range contains a jump, call,
// or return.
//
// hasReturn is retained for diagnostics only: hasTerminal already covers
// return, so (hasReturn && !hasTerminal) can never hold. Terminal nodes are
// determined solely by out-degree (see [Graph.Terminals]).
func labelBodies(u script.Unit, f script.Facts) []body {
	lineCount := strings.Count(u.Text, "\n") + 1

	bodies := make([]body, len(f.Labels))
	for i, l := range f.Labels {
		end := lineCount
		if i+1 < len(f.Labels) {
			end = f.Labels[i+1].Line
		}
		b := body{start: l.Line, end: end}
		for _, t := range f.Transfers {
			if t.Line >= b.start && t.Line < b.end {
				b.hasTerminal = true
				break
			}
		}
		for _, r := range f.Returns {
			if r >= b.start && r < b.end {
				b.hasTerminal = true
				b.hasReturn = true
				break
			}
		}
		bodies[i] = b
	}
	return bodies
}

// owningLabel returns the index of the nearest label at or above line, or -1
// when the line precedes every label in the unit.
func owningLabel(labels []script.Label, line int) int {
	owner := -1
	for i, l := range labels {
		if l.Line <= line {
			owner = i
		}
	}
	return owner
}

// Out returns the outgoing edges of a node in construction order.
func (g *Graph) Out(nodeID string) []Edge { return g.out[nodeID] }

// InDegree returns the number of incoming edges of a node.
func (g *Graph) InDegree(nodeID string) int { return g.inDegree[nodeID] }

// Entries returns the route enumeration entry points: every node carrying
// the label "start" when one exists, otherwise every node with zero
// incoming edges. Order follows node construction order.
func (g *Graph) Entries() []string {
	if starts := g.byLabel[EntryLabel]; len(starts) > 0 {
		return starts
	}
	var entries []string
	for _, n := range g.Nodes {
		if g.inDegree[n.ID] == 0 {
			entries = append(entries, n.ID)
		}
	}
	return entries
}

// Terminals returns the IDs of all nodes with zero outgoing edges.
func (g *Graph) Terminals() []string {
	var terminals []string
	for _, n := range g.Nodes {
		if len(g.out[n.ID]) == 0 {
			terminals = append(terminals, n.ID)
		}
	}
	return terminals
}
