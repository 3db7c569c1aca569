// Package routes builds the label-level narrative graph and enumerates
// every distinct route through it.
//
// Where the unit graph (package story) has one node per script unit, the
// label graph has one node per label, which makes it fine enough to follow
// individual narrative paths. Edges come in two flavors:
//
//   - explicit: a jump or call statement, attributed to the nearest label
//     above it, pointing at the node of the label it targets
//   - implicit: a label whose body contains no jump, call, or return falls
//     through into the label physically below it in the same unit
//
// # Route Enumeration
//
// Routes are enumerated by depth-first traversal from every entry node. The
// traversal carries the ordered list of nodes on the current path; any edge
// leading back to a node already on that path is pruned immediately. This is
// path-local cycle detection: the same node may still appear on multiple
// distinct discovered routes. A global visited set would be wrong here: it
// would under-count valid distinct routes that share a prefix.
//
// Enumeration is fully deterministic: nodes, edges, and entries are visited
// in construction order, and each unique route is colored by its discovery
// index into the fixed palette.
package routes
