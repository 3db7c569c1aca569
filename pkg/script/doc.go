// Package script extracts structural facts from raw Ren'Py-style script text.
//
// The extractor is the leaf of the analysis pipeline: it knows nothing about
// graphs or routes, it only pattern-matches text into facts: labels, control
// transfers, character/variable/screen definitions, dialogue and narration
// lines, and defined image tags.
//
// # Extraction Passes
//
// Each unit is scanned twice:
//
//  1. A whole-text pass matches character constructors. Constructors may span
//     multiple lines, so their argument lists are tokenized by a small
//     hand-rolled scanner that tracks quote state and parenthesis depth
//     (see [ScanArgs]).
//
//  2. A line-by-line pass matches everything that is strictly line-oriented:
//     label headers, screen headers, define/default statements, transfers,
//     dialogue, narration, and image definitions.
//
// # Error Handling
//
// Extraction never fails. Malformed constructor argument lists degrade to
// best-effort parses (an unmatched quote simply extends to end of input),
// unresolved transfer targets are recorded as facts for the caller to judge,
// and unrecognized lines are ignored. There is no error return anywhere in
// this package.
package script
