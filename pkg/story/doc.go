// Package story builds the unit-level narrative graph and assembles the
// complete analysis result.
//
// [Analyze] is the single entry point of the engine: it takes an ordered
// collection of script units and returns a fully derived [Result]. The pass
// is synchronous, single-threaded, and pure: it owns no state between
// calls, and a new input collection yields a brand-new result. Callers that
// want to avoid recomputation memoize at the boundary (see pkg/pipeline).
//
// # Unit Links and Classification
//
// Every transfer whose target resolves in the global label index and lands
// in a different unit becomes a unit link, deduplicated by (source, target)
// pair. Unresolved targets are recorded per unit as invalid jumps, which are
// data, not errors. Once all links are known, each unit is classified by its graph
// role: root, leaf, branching, story, screen, or config.
//
// # Determinism
//
// All maps in the result are keyed lookups; every slice preserves input or
// source order. Given the same unit collection, Analyze returns an
// identical result, including route colors and link order.
package story
