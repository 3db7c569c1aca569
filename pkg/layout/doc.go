// Package layout positions script units for diagram rendering.
//
// Units are assigned to vertical layers by a breadth-first pass over the
// unit-link edges, then each layer is stacked as a centered column and the
// columns are placed left to right. The pass tolerates cyclic and
// disconnected input: a fully cyclic graph is seeded from its least-entered
// unit, and anything the traversal never reaches lands in one trailing
// layer.
//
// The same input always yields the same positions.
package layout
