// Package wfg defines the wait-for graph (WFG) used throughout lockgraph:
// a simple directed graph over transaction IDs where an edge A→B means
// transaction A is blocked waiting on a resource currently held by B.
//
// What:
//
//   - Graph: the capability contract every representation implements —
//     idempotent AddNode/AddEdge, tolerant RemoveEdge, RemoveNode with
//     incident-edge sweep, sorted Nodes/Neighbors enumeration, HasEdge,
//     Clear, and node/edge counts.
//   - AdjacencyList: map-of-sets storage; the default representation.
//   - AdjacencyMatrix: index map + dense boolean rows; constant-time
//     HasEdge for dense graphs.
//   - EdgeList: flat ordered-pair slice; minimal memory for sparse graphs.
//
// Why three representations:
//
//	All detection, coloring, and victim-selection algorithms operate only
//	through the Graph interface and never assume internal layout. For any
//	identical operation sequence, every representation reports identical
//	Nodes() and Neighbors() results — a differential-testing contract
//	enforced by this package's test suite.
//
// Determinism:
//
//   - Nodes() and Neighbors() return IDs sorted lexicographically ascending
//     in every implementation.
//
// Constraints:
//
//   - At most one edge per ordered pair (simple graph; AddEdge is idempotent).
//   - Self-loops are rejected with ErrSelfLoop: a transaction cannot wait
//     on itself.
//
// Complexity (V = nodes, E = edges):
//
//   - AdjacencyList:   AddEdge/RemoveEdge/HasEdge O(1); Neighbors O(d log d)
//   - AdjacencyMatrix: AddEdge/RemoveEdge/HasEdge O(1) amortized;
//     RemoveNode O(V²) (row/column compaction)
//   - EdgeList:        AddEdge/RemoveEdge/HasEdge O(E); Neighbors O(E + d log d)
//
// Errors:
//
//   - ErrEmptyNodeID — a node or edge endpoint ID is the empty string.
//   - ErrSelfLoop    — AddEdge called with from == to.
package wfg
