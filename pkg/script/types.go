package script

// Unit is one chunk of narrative script text with an identity, roughly one
// file in the authoring tool. Units are immutable inputs owned by the
// caller's storage layer; the engine only reads them.
type Unit struct {
	ID       string `json:"id" bson:"id"`
	Text     string `json:"text" bson:"text"`
	FilePath string `json:"file_path,omitempty" bson:"file_path,omitempty"`
}

// LabelKind distinguishes plain labels from labels introduced by a named menu.
type LabelKind string

// Label kinds.
const (
	LabelPlain LabelKind = "plain"
	LabelMenu  LabelKind = "menu"
)

// Label is a named entry point within a unit's text.
// Line and Column are zero-based; Column points at the label name.
type Label struct {
	Name   string    `json:"name" bson:"name"`
	UnitID string    `json:"unit_id" bson:"unit_id"`
	Line   int       `json:"line" bson:"line"`
	Column int       `json:"column" bson:"column"`
	Kind   LabelKind `json:"kind" bson:"kind"`
}

// TransferKind distinguishes jumps from calls.
type TransferKind string

// Transfer kinds.
const (
	TransferJump TransferKind = "jump"
	TransferCall TransferKind = "call"
)

// Transfer is a jump or call reference from one point in the text to a label.
// A dynamic transfer (`jump expression foo`) has an unresolved literal target
// and is tracked for editor decoration, not for graph edges, unless the
// target happens to resolve to a known label name.
type Transfer struct {
	UnitID   string       `json:"unit_id" bson:"unit_id"`
	Target   string       `json:"target" bson:"target"`
	Kind     TransferKind `json:"kind" bson:"kind"`
	Dynamic  bool         `json:"dynamic,omitempty" bson:"dynamic,omitempty"`
	Line     int          `json:"line" bson:"line"`
	ColStart int          `json:"col_start" bson:"col_start"`
	ColEnd   int          `json:"col_end" bson:"col_end"`
}

// CharacterDef is a character parsed from a constructor-call-like statement:
//
//	define e = Character("Eileen", color="#ff0000")
//
// Positional argument 0 becomes DisplayName; the color keyword becomes Color;
// all other keyword arguments land in Attrs verbatim. A comment line of the
// exact form `# profile: <text>` directly above the definition (blank lines
// ignored) attaches ProfileNote.
type CharacterDef struct {
	Tag         string            `json:"tag" bson:"tag"`
	DisplayName string            `json:"display_name" bson:"display_name"`
	Color       string            `json:"color,omitempty" bson:"color,omitempty"`
	ProfileNote string            `json:"profile_note,omitempty" bson:"profile_note,omitempty"`
	UnitID      string            `json:"unit_id" bson:"unit_id"`
	Attrs       map[string]string `json:"attrs,omitempty" bson:"attrs,omitempty"`
}

// VariableKind distinguishes define statements from default statements.
type VariableKind string

// Variable kinds.
const (
	VariableDefine  VariableKind = "define"
	VariableDefault VariableKind = "default"
)

// VariableDef is a define/default statement whose right-hand side is not a
// character constructor.
type VariableDef struct {
	Name   string       `json:"name" bson:"name"`
	Kind   VariableKind `json:"kind" bson:"kind"`
	Value  string       `json:"value" bson:"value"`
	UnitID string       `json:"unit_id" bson:"unit_id"`
	Line   int          `json:"line" bson:"line"`
}

// ScreenDef is a screen header with its optional parameter list.
type ScreenDef struct {
	Name   string `json:"name" bson:"name"`
	Params string `json:"params,omitempty" bson:"params,omitempty"`
	UnitID string `json:"unit_id" bson:"unit_id"`
	Line   int    `json:"line" bson:"line"`
}

// SpeakerLine is a line opening with an identifier followed by a quoted
// string. Whether it is dialogue (known character tag) or just a prefixed
// string is decided later against the global character table.
type SpeakerLine struct {
	Line int    `json:"line" bson:"line"`
	Tag  string `json:"tag" bson:"tag"`
}

// ContentType flags the kinds of content a unit contains. The unit graph
// builder uses these for unit classification.
type ContentType string

// Content types observed during the line scan.
const (
	ContentMenu      ContentType = "menu"
	ContentTransfers ContentType = "transfers"
	ContentPython    ContentType = "python"
	ContentDialogue  ContentType = "dialogue"
	ContentNarration ContentType = "narration"
)

// Facts holds everything extracted from a single unit. All slices preserve
// source order. Facts are derived fresh on every pass and are never mutated
// after extraction.
type Facts struct {
	UnitID     string
	Labels     []Label
	FirstLabel string // name of the first label encountered, "" if none
	Transfers  []Transfer
	Characters []CharacterDef
	Variables  []VariableDef
	Screens    []ScreenDef
	Images     []string // defined image tags
	Speakers   []SpeakerLine
	Narration  []int // zero-based lines holding unattributed quoted strings
	Returns    []int // zero-based lines holding return statements
	Content    map[ContentType]bool
	Shows      []AssetRef // show statements, for the asset punch list
	Plays      []AssetRef // play music/sound statements
}

// AssetRef is a reference to an asset from a show or play statement.
type AssetRef struct {
	Name   string `json:"name" bson:"name"`
	UnitID string `json:"unit_id" bson:"unit_id"`
	Line   int    `json:"line" bson:"line"`
}
