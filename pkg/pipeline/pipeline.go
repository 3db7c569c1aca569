// Package pipeline provides the core analysis pipeline for Plotweave.
//
// This package implements the complete analyze → layout → render pipeline
// that can be used by CLI and API components. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Analyze: Extract structure from script units and build the graphs
//  2. Layout: Compute diagram positions for the unit graph
//  3. Render: Generate output in various formats (SVG, PNG, DOT, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Dir:     "game",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Analysis only
//	analysis, err := runner.Analyze(ctx, opts)
//
//	// Layout with an existing analysis
//	positions, err := runner.ComputeLayout(ctx, analysis, opts)
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/plotweave/plotweave/pkg/cache"
	"github.com/plotweave/plotweave/pkg/layout"
	"github.com/plotweave/plotweave/pkg/script"
	"github.com/plotweave/plotweave/pkg/story"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// Graph constants for the diagram flavor.
const (
	GraphUnits  = "units"
	GraphRoutes = "routes"
)

// DefaultGraph is the diagram rendered when none is requested.
const DefaultGraph = GraphUnits

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatDOT:  true,
	FormatJSON: true,
}

// ValidGraphs is the set of supported diagram flavors.
var ValidGraphs = map[string]bool{
	GraphUnits:  true,
	GraphRoutes: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the analysis pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Analyze options. Exactly one input source is required: a project
	// directory, explicit files, or pre-loaded units.
	Dir        string        `json:"dir,omitempty"`
	Files      []string      `json:"files,omitempty"`
	Units      []script.Unit `json:"units,omitempty"`
	DebugPath  string        `json:"debug_path,omitempty"`
	StoryPaths []string      `json:"story_paths,omitempty"`
	Palette    []string      `json:"palette,omitempty"`
	Refresh    bool          `json:"refresh,omitempty"`

	// Layout options
	NodeWidth  float64 `json:"node_width,omitempty"`
	NodeHeight float64 `json:"node_height,omitempty"`
	HPadding   float64 `json:"h_padding,omitempty"`
	VPadding   float64 `json:"v_padding,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Graph    string   `json:"graph,omitempty"`
	Detailed bool     `json:"detailed,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Analysis is the full analysis result.
	Analysis *story.Result

	// AnalysisHash is the content hash of the analysis result.
	AnalysisHash string

	// Positions maps unit ids to computed diagram positions.
	Positions map[string]layout.Point

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	UnitCount   int
	LinkCount   int
	RouteCount  int
	AnalyzeTime time.Duration
	LayoutTime  time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	AnalyzeHit bool // Whether the analysis came from cache
	LayoutHit  bool // Whether the layout came from cache
	RenderHit  bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: svg, png, dot, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateGraph checks that a diagram flavor is valid.
func ValidateGraph(graph string) error {
	if !ValidGraphs[graph] {
		return fmt.Errorf("invalid graph: %q (must be one of: units, routes)", graph)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForAnalyze(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForAnalyze checks required fields for the analysis stage.
func (o *Options) ValidateForAnalyze() error {
	if o.Dir == "" && len(o.Files) == 0 && len(o.Units) == 0 {
		return fmt.Errorf("dir, files, or units is required")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Graph == "" {
		o.Graph = DefaultGraph
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	return ValidateGraph(o.Graph)
}

// AnalysisOptions converts pipeline options into engine options.
func (o *Options) AnalysisOptions() story.Options {
	return story.Options{
		DebugPath:  o.DebugPath,
		StoryPaths: o.StoryPaths,
		Palette:    o.Palette,
	}
}

// LayoutOptions converts pipeline options into layout options.
func (o *Options) LayoutOptions() layout.Options {
	return layout.Options{
		NodeWidth:  o.NodeWidth,
		NodeHeight: o.NodeHeight,
		HPadding:   o.HPadding,
		VPadding:   o.VPadding,
	}
}

// AnalysisKeyOpts returns cache key options for the analysis stage.
func (o *Options) AnalysisKeyOpts() cache.AnalysisKeyOpts {
	return cache.AnalysisKeyOpts{
		DebugPath:  o.DebugPath,
		StoryPaths: o.StoryPaths,
		Palette:    o.Palette,
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		NodeWidth:  o.NodeWidth,
		NodeHeight: o.NodeHeight,
		HPadding:   o.HPadding,
		VPadding:   o.VPadding,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:   format,
		Graph:    o.Graph,
		Detailed: o.Detailed,
	}
}
