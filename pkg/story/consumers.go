package story

import (
	"regexp"
	"strings"

	"github.com/plotweave/plotweave/pkg/script"
)

// Ancestors walks the link list backwards from a unit and returns every
// unit id reachable against edge direction, in breadth-first order. The
// starting unit is not included. A depth of 0 or less means unbounded.
//
// This is a consumer helper over the result's link list, for example to
// gather upstream context for a selected unit.
func Ancestors(links []UnitLink, unitID string, depth int) []string {
	parents := make(map[string][]string)
	for _, l := range links {
		parents[l.Target] = append(parents[l.Target], l.Source)
	}

	var out []string
	seen := map[string]bool{unitID: true}
	frontier := []string{unitID}
	for level := 0; len(frontier) > 0 && (depth <= 0 || level < depth); level++ {
		var next []string
		for _, id := range frontier {
			for _, p := range parents[id] {
				if seen[p] {
					continue
				}
				seen[p] = true
				out = append(out, p)
				next = append(next, p)
			}
		}
		frontier = next
	}
	return out
}

// MissingAssets cross-references show and play statements against the
// defined images and variables and returns the references with no matching
// definition, in unit order. Shows resolve against image tags (the first
// word of a multi-word image name is its tag), bare-identifier plays
// against the variable table. Quoted plays name files directly and are
// not checked.
func MissingAssets(units []script.Unit, r *Result) []script.AssetRef {
	tags := make(map[string]bool, len(r.Images))
	for name := range r.Images {
		tags[name] = true
		if tag, _, found := strings.Cut(name, " "); found {
			tags[tag] = true
		}
	}

	var missing []script.AssetRef
	for _, u := range units {
		f := script.Extract(u)
		for _, s := range f.Shows {
			tag, _, _ := strings.Cut(s.Name, " ")
			if !tags[s.Name] && !tags[tag] {
				missing = append(missing, s)
			}
		}
		for _, p := range f.Plays {
			if !identRe.MatchString(p.Name) {
				continue
			}
			if _, ok := r.Variables[p.Name]; !ok {
				missing = append(missing, p)
			}
		}
	}
	return missing
}

var identRe = regexp.MustCompile(`^[a-zA-Z_]\w*$`)
