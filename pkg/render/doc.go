// Package render turns analysis results into Graphviz diagrams.
//
// # Overview
//
// Two diagram flavors are produced from one analysis result:
//
//   - the unit graph: one box per script unit, styled by classification,
//     connected by the deduplicated unit links
//   - the route graph: one node per label, connected by explicit and
//     implicit route edges, colored by the routes that traverse them
//
// # Usage
//
// Convert a result to DOT, then render in-process:
//
//	dot := render.UnitsDOT(result, render.Options{})
//	svg, err := render.SVG(ctx, dot)
//	png, err := render.PNG(ctx, dot)
//
// The DOT source can also be saved and processed with external Graphviz
// tools.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG and
// PNG rendering, so no graphviz installation is required.
package render
