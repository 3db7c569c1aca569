package render

import (
	"bytes"
	"fmt"

	"github.com/plotweave/plotweave/pkg/routes"
	"github.com/plotweave/plotweave/pkg/story"
)

// Options configures diagram generation.
type Options struct {
	// Detailed includes file paths and content types in unit labels.
	// When false, only the unit's first label (or id) is shown.
	Detailed bool
}

// UnitsDOT converts the unit-level graph to Graphviz DOT format. Units are
// boxes styled by classification; links carry the target label name.
// The resulting DOT string can be rendered using [SVG] or [PNG].
func UnitsDOT(r *story.Result, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph units {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.4;\n")
	buf.WriteString("\n")

	for _, u := range r.Units {
		fmt.Fprintf(&buf, "  %q [%s];\n", u.ID, unitAttrs(r, u.ID, opts))
	}

	buf.WriteString("\n")
	for _, l := range r.Links {
		fmt.Fprintf(&buf, "  %q -> %q [label=%q, fontsize=10];\n", l.Source, l.Target, l.Label)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func unitAttrs(r *story.Result, unitID string, opts Options) string {
	label := unitID
	if first, ok := r.FirstLabels[unitID]; ok {
		label = first
	}
	if opts.Detailed {
		for _, ct := range r.Content[unitID] {
			label += "\n" + string(ct)
		}
	}

	attrs := fmt.Sprintf("label=%q", label)

	switch {
	case r.Classes.Branching[unitID]:
		attrs += `, fillcolor="#fdf2cc"`
	case r.Classes.Screen[unitID]:
		attrs += `, fillcolor="#e8e0f5"`
	case r.Classes.Config[unitID]:
		attrs += `, fillcolor="#eeeeee", fontcolor="#666666"`
	}
	if r.Classes.Root[unitID] {
		attrs += ", penwidth=2"
	}
	if r.Classes.Leaf[unitID] {
		attrs += `, style="rounded,filled,bold"`
	}

	return attrs
}

// RoutesDOT converts the label-level graph to Graphviz DOT format. Each
// edge takes the color of the first route that traverses it; implicit
// fall-through edges are dashed.
func RoutesDOT(r *story.Result) string {
	edgeColor := make(map[string]string)
	for _, route := range r.Routes {
		for _, id := range route.EdgeIDs {
			if _, taken := edgeColor[id]; !taken {
				edgeColor[id] = route.Color
			}
		}
	}

	var buf bytes.Buffer
	buf.WriteString("digraph routes {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=ellipse, style=filled, fillcolor=white, fontsize=12];\n")
	buf.WriteString("\n")

	for _, n := range r.LabelNodes {
		fmt.Fprintf(&buf, "  %q [label=%q];\n", n.ID, n.Label)
	}

	buf.WriteString("\n")
	for _, e := range r.RouteEdges {
		attrs := ""
		if color, ok := edgeColor[e.ID]; ok {
			attrs = fmt.Sprintf("color=%q, ", color)
		}
		if e.Kind == routes.EdgeImplicit {
			attrs += "style=dashed, "
		}
		fmt.Fprintf(&buf, "  %q -> %q [%slabel=%q, fontsize=9];\n",
			e.Source, e.Target, attrs, string(e.Kind))
	}

	buf.WriteString("}\n")
	return buf.String()
}
