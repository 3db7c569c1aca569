// Package pkg provides the core libraries for the Plotweave narrative graph engine.
//
// # Overview
//
// Plotweave analyzes Ren'Py-style branching-narrative scripts. It extracts
// structural facts from raw script text, builds graph representations of the
// story, enumerates every distinct narrative route, and computes deterministic
// diagram layouts. The pkg directory is organized into five main areas:
//
//  1. [script] - Structural extraction (labels, transfers, characters, variables)
//  2. [story] - Unit graph construction, classification, and the analysis result
//  3. [routes] - Label-level graph and route enumeration
//  4. [layout] - Deterministic layered layout for the unit graph
//  5. [pipeline] - Orchestration (analyze → layout → render) with caching
//
// # Architecture
//
// The typical data flow through Plotweave:
//
//	Script units (raw text)
//	         ↓
//	    [script] package (extract structural facts)
//	         ↓
//	    [story] package (unit links + classification)
//	         ↓
//	    [routes] package (label graph + route enumeration)
//	         ↓
//	    [layout] / [render] packages (positions, DOT, SVG/PNG)
//
// The whole pipeline is a pure function of its input collection of script
// units: every pass recomputes all derived entities from scratch, and no
// state is carried between passes.
//
// # Quick Start
//
// Analyze a set of script units and enumerate routes:
//
//	import (
//	    "github.com/plotweave/plotweave/pkg/routes"
//	    "github.com/plotweave/plotweave/pkg/script"
//	    "github.com/plotweave/plotweave/pkg/story"
//	)
//
//	units := []script.Unit{
//	    {ID: "a", Text: "label start:\n    jump b"},
//	    {ID: "b", Text: "label b:\n    return"},
//	}
//
//	result := story.Analyze(units, story.Options{})
//	for _, r := range result.Routes {
//	    fmt.Println(r.ID, r.Color)
//	}
//
// # Main Packages
//
// [script] - Pattern-matches raw script text into structural facts: labels,
// control transfers, character/variable/screen definitions, and dialogue.
// Malformed input degrades gracefully and never produces an error.
//
// [story] - Turns cross-unit transfers into deduplicated unit links,
// classifies each unit by its graph role (root, leaf, branching, story,
// screen, config), and assembles the full AnalysisResult.
//
// [routes] - Builds the label-level graph with explicit (jump/call) and
// implicit (fall-through) edges and enumerates all distinct simple paths
// with deterministic palette colors. Cycle-safe by construction.
//
// [layout] - Kahn-style topological layering with centered vertical packing.
// Handles cyclic unit graphs via a minimum-in-degree fallback seed.
//
// [render] - DOT generation and Graphviz-based SVG/PNG rendering for both
// the unit graph and the label/route graph.
//
// [palette] - The fixed color palette shared by routes and characters.
//
// [pipeline] - Complete analysis pipeline (analyze → layout → render) used
// by CLI and API. Content-hash memoization is the only performance device.
//
// [cache] - Cache backends: file (CLI), Redis and MongoDB (server), null
// (testing), with SHA-256 content keys and scoped namespaces.
//
// [config] - Project configuration (plotweave.toml): story-path allow-list,
// layout paddings, palette overrides.
//
// [errors] - Structured error codes shared by CLI and API boundaries. The
// engine itself never fails on malformed script input; unresolved targets
// are data, not errors.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/routes/...    # Specific package
package pkg
