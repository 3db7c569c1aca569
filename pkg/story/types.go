package story

import (
	"github.com/plotweave/plotweave/pkg/routes"
	"github.com/plotweave/plotweave/pkg/script"
)

// DefaultDebugPath is the reserved file path of the scratch unit the editor
// uses for experiments. Units carrying it are skipped entirely.
const DefaultDebugPath = "game/_scratch.rpy"

// DefaultStoryPaths lists file paths that classify as story even when they
// define no labels, typically the dedicated character and variable files.
var DefaultStoryPaths = []string{
	"game/characters.rpy",
	"game/variables.rpy",
}

// Options configures an analysis pass. The zero value applies the defaults
// above.
type Options struct {
	// DebugPath is the reserved file path to skip. Empty means
	// DefaultDebugPath.
	DebugPath string

	// StoryPaths is the always-story allow-list. Nil means
	// DefaultStoryPaths; an explicit empty slice disables the list.
	StoryPaths []string

	// Palette overrides the route color palette. Empty means the
	// built-in palette.
	Palette []string
}

func (o Options) debugPath() string {
	if o.DebugPath == "" {
		return DefaultDebugPath
	}
	return o.DebugPath
}

func (o Options) storyPaths() []string {
	if o.StoryPaths == nil {
		return DefaultStoryPaths
	}
	return o.StoryPaths
}

// UnitLink is one deduplicated edge between two script units. Label names
// the target label that produced the link first; additional transfers
// between the same unit pair do not add links.
type UnitLink struct {
	Source string `json:"source" bson:"source"`
	Target string `json:"target" bson:"target"`
	Label  string `json:"label" bson:"label"`
}

// DialogueLine is a line spoken by a known character.
type DialogueLine struct {
	UnitID string `json:"unit_id" bson:"unit_id"`
	Line   int    `json:"line" bson:"line"`
	Tag    string `json:"tag" bson:"tag"`
}

// Usage is one occurrence of a variable name inside a unit's text.
type Usage struct {
	UnitID string `json:"unit_id" bson:"unit_id"`
	Line   int    `json:"line" bson:"line"`
}

// Classification groups unit IDs by graph role. Root/Leaf/Branching are
// derived from the link structure; Story/Screen/Config partition the units
// by content. A unit appears in exactly one of Story, Screen, Config, and
// in any subset of Root, Leaf, Branching.
type Classification struct {
	Root      map[string]bool `json:"root" bson:"root"`
	Leaf      map[string]bool `json:"leaf" bson:"leaf"`
	Branching map[string]bool `json:"branching" bson:"branching"`
	Story     map[string]bool `json:"story" bson:"story"`
	Screen    map[string]bool `json:"screen" bson:"screen"`
	Config    map[string]bool `json:"config" bson:"config"`
}

// Result is the complete output of one analysis pass: the derived views
// every consumer reads. It is safe to share between goroutines once
// returned; nothing in it is mutated afterwards.
type Result struct {
	// Units echoes the analyzed units, minus any skipped debug unit.
	Units []script.Unit `json:"units" bson:"units"`

	// Unit graph
	Links        []UnitLink          `json:"links" bson:"links"`
	InvalidJumps map[string][]string `json:"invalid_jumps" bson:"invalid_jumps"`
	Classes      Classification      `json:"classes" bson:"classes"`

	// Structural indexes
	Labels      map[string]script.Label         `json:"labels" bson:"labels"` // global, last write wins
	FirstLabels map[string]string               `json:"first_labels" bson:"first_labels"`
	Transfers   map[string][]script.Transfer    `json:"transfers" bson:"transfers"`
	Content     map[string][]script.ContentType `json:"content" bson:"content"`

	// Definitions
	Characters map[string]script.CharacterDef `json:"characters" bson:"characters"`
	Variables  map[string]script.VariableDef  `json:"variables" bson:"variables"`
	Screens    map[string]script.ScreenDef    `json:"screens" bson:"screens"`
	Images     map[string]bool                `json:"images" bson:"images"`

	// Dialogue
	Dialogue     map[string][]DialogueLine `json:"dialogue" bson:"dialogue"`
	CharacterUse map[string]int            `json:"character_use" bson:"character_use"`

	// Variable usage (O(variables × lines), recomputed per pass)
	VariableUse map[string][]Usage `json:"variable_use" bson:"variable_use"`

	// Label-level graph
	LabelNodes []routes.Node  `json:"label_nodes" bson:"label_nodes"`
	RouteEdges []routes.Edge  `json:"route_edges" bson:"route_edges"`
	Routes     []routes.Route `json:"routes" bson:"routes"`
}
