// Package palette provides the fixed color palette shared by route and
// character coloring.
//
// Two assignment schemes exist, and they are intentionally different:
//
//   - Routes are colored by discovery order: the first route enumerated gets
//     the first palette entry, the second gets the second, and so on, cycling
//     through the palette. Given the same input scripts, enumeration order is
//     deterministic, so route colors are stable across runs.
//
//   - Characters are colored by a string hash of their tag, so a character
//     keeps the same color no matter how many characters exist or in which
//     order they were defined.
package palette

// Default is the fixed, ordered route palette. Route N is assigned
// Default[N % len(Default)].
var Default = []string{
	"#e6194b", // red
	"#3cb44b", // green
	"#4363d8", // blue
	"#f58231", // orange
	"#911eb4", // purple
	"#42d4f4", // cyan
	"#f032e6", // magenta
	"#bfef45", // lime
	"#fabed4", // pink
	"#469990", // teal
	"#9a6324", // brown
	"#800000", // maroon
	"#808000", // olive
	"#000075", // navy
}

// Index returns the palette color for a zero-based discovery index,
// cycling through the palette. Negative indices are treated as zero.
func Index(i int) string {
	if i < 0 {
		i = 0
	}
	return Default[i%len(Default)]
}

// IndexIn is like Index but cycles through colors instead of the default
// palette. An empty colors slice falls back to the default palette.
func IndexIn(colors []string, i int) string {
	if len(colors) == 0 {
		return Index(i)
	}
	if i < 0 {
		i = 0
	}
	return colors[i%len(colors)]
}

// ForTag returns the deterministic color for a character tag.
// The same tag always yields the same color across runs and inputs.
//
// The hash folds each character code as hash = code + (hash<<5 - hash),
// the classic djb-style string fold, then indexes the palette with the
// absolute value modulo the palette size.
func ForTag(tag string) string {
	return Default[tagIndex(tag, len(Default))]
}

func tagIndex(tag string, n int) int {
	var hash int32
	for _, r := range tag {
		hash = int32(r) + (hash<<5 - hash)
	}
	idx := int(hash) % n
	if idx < 0 {
		idx = -idx
	}
	return idx
}
