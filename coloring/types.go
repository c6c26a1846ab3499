// Package coloring declares the result types and sentinel errors for
// conflict coloring.
package coloring

import "errors"

// ErrGraphNil is returned when a nil Graph is passed to Color.
var ErrGraphNil = errors.New("coloring: graph is nil")

// Result is a complete color assignment over the wait-for graph's nodes.
type Result struct {
	// Colors maps each node ID to its color index (0-based).
	Colors map[string]int

	// Groups lists, per color, the nodes holding it in assignment order.
	// Each group is a safe concurrent batch: no two members share any
	// direct or transitive wait relationship in either direction.
	Groups [][]string

	// ChromaticNumber is the count of distinct colors used. Greedy
	// coloring is order-dependent, so this is an upper bound on the
	// conflict graph's true chromatic number, not guaranteed minimal.
	ChromaticNumber int
}
