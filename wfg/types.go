// Package wfg declares the Graph contract, sentinel errors, and the
// shared Edge value type. Concrete representations live in
// adjacency_list.go, adjacency_matrix.go, and edge_list.go.
package wfg

import "errors"

// Sentinel errors for wait-for graph mutation.
var (
	// ErrEmptyNodeID indicates a node or edge endpoint ID was the empty string.
	ErrEmptyNodeID = errors.New("wfg: node ID is empty")

	// ErrSelfLoop indicates AddEdge was called with identical endpoints.
	// A transaction cannot wait on itself, so the WFG refuses self-loops
	// at the boundary instead of asking every algorithm to skip them.
	ErrSelfLoop = errors.New("wfg: self-loop not allowed")
)

// Edge is one ordered waits-for pair: From waits on a resource held by To.
type Edge struct {
	// From is the waiting transaction ID.
	From string

	// To is the holding transaction ID.
	To string
}

// Graph is the wait-for graph capability set. Every representation
// implements it with identical observable behavior: for any identical
// operation sequence, Nodes() and Neighbors() results match across
// implementations element-for-element.
//
// All enumeration methods return IDs sorted lexicographically ascending.
type Graph interface {
	// AddNode registers id as a known node. Idempotent.
	// Returns ErrEmptyNodeID if id is empty.
	AddNode(id string) error

	// AddEdge inserts the directed edge from→to, creating missing
	// endpoints. Idempotent: re-adding an existing edge is a no-op.
	// Returns ErrEmptyNodeID or ErrSelfLoop on invalid input.
	AddEdge(from, to string) error

	// RemoveEdge deletes the edge from→to. No-op if absent.
	RemoveEdge(from, to string)

	// RemoveNode deletes id and every incident edge in both directions.
	// Reports whether the node existed; no side effects when it did not.
	RemoveNode(id string) bool

	// Neighbors returns the sorted direct successors of id,
	// or an empty slice if id is unknown or has no successors.
	Neighbors(id string) []string

	// Nodes returns all known node IDs, sorted.
	Nodes() []string

	// HasEdge reports whether the edge from→to exists.
	HasEdge(from, to string) bool

	// Edges returns every edge sorted by (From, To).
	Edges() []Edge

	// NodeCount returns the number of known nodes.
	NodeCount() int

	// EdgeCount returns the number of edges.
	EdgeCount() int

	// Clear resets the graph to empty.
	Clear()
}

// validateEdge applies the shared AddEdge argument rules.
func validateEdge(from, to string) error {
	if from == "" || to == "" {
		return ErrEmptyNodeID
	}
	if from == to {
		return ErrSelfLoop
	}

	return nil
}
