package script

import "regexp"

// Line-oriented patterns. All of these are anchored to the start of a line
// (after indentation) and are applied independently to each line, mirroring
// how the scripting language itself is line-based.
var (
	// label header: `label branch_two:` (optional parameter list tolerated)
	labelRe = regexp.MustCompile(`^(\s*)label\s+([a-zA-Z_]\w*)\s*(?:\([^)]*\))?\s*:`)

	// named menu header: `menu confront_villain:`, which introduces a menu label
	menuLabelRe = regexp.MustCompile(`^(\s*)menu\s+([a-zA-Z_]\w*)\s*:`)

	// anonymous menu: `menu:`
	menuRe = regexp.MustCompile(`^\s*menu\s*:`)

	// screen header: `screen inventory(items, page=0):`
	screenRe = regexp.MustCompile(`^\s*screen\s+([a-zA-Z_]\w*)\s*(?:\(([^)]*)\))?\s*:`)

	// define/default statement: `default points = 0`
	// Go's regexp has no negative lookahead, so the character-constructor
	// guard is a separate prefix test on the captured right-hand side.
	defineRe = regexp.MustCompile(`^\s*(define|default)\s+([a-zA-Z_][\w.]*)\s*=\s*(.+?)\s*$`)

	// right-hand sides that are actually character constructors
	characterRHSRe = regexp.MustCompile(`^Character\s*\(`)

	// transfer: `jump ending_good`, `call chapter_two`, `jump expression dest`
	// Matched repeatedly across each line, not just at line start, so that
	// transfers inside menu choices are found too.
	transferRe = regexp.MustCompile(`\b(jump|call)\s+(expression\s+)?([a-zA-Z_]\w*)`)

	// return statement (terminates the current label body)
	returnRe = regexp.MustCompile(`^\s*return\b`)

	// dialogue: `e "Hello!"`, an identifier followed by a quoted string
	speakerRe = regexp.MustCompile(`^\s*([a-zA-Z_]\w*)\s+"(?:[^"\\]|\\.)*"`)

	// narration: a bare quoted string
	narrationRe = regexp.MustCompile(`^\s*"(?:[^"\\]|\\.)*"`)

	// image definition: `image eileen happy = "eileen_happy.png"`
	imageRe = regexp.MustCompile(`^\s*image\s+([\w][\w ]*?)\s*=`)

	// show statement: `show eileen happy at left`
	showRe = regexp.MustCompile(`^\s*show\s+([\w][\w ]*?)(?:\s+(?:at|with|behind|as|onlayer)\b.*)?$`)

	// play statement: `play music "theme.ogg"` or `play music theme_var`
	playRe = regexp.MustCompile(`^\s*play\s+(?:music|sound|audio)\s+(?:"([^"]+)"|([a-zA-Z_]\w*))`)

	// embedded python block: `python:` or `init python:`
	pythonRe = regexp.MustCompile(`^\s*(?:init(?:\s+-?\d+)?\s+)?python\s*:`)

	// profile note comment: `# profile: the chronically late best friend`
	profileRe = regexp.MustCompile(`^\s*#\s*profile:\s*(.+?)\s*$`)

	// blank or whitespace-only line
	blankRe = regexp.MustCompile(`^\s*$`)
)

// Whole-text pattern for pass 1. Captures the tag and leaves the argument
// list to the balanced scanner, since constructors may span multiple lines.
var characterDefRe = regexp.MustCompile(`(?m)^\s*define\s+([a-zA-Z_]\w*)\s*=\s*Character\s*\(`)

// keyword argument shape: `name = value`
var keywordArgRe = regexp.MustCompile(`^([a-zA-Z_]\w*)\s*=\s*(.*)$`)
