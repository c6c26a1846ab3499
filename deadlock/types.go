// Package deadlock defines types and options for cycle detection over a
// wait-for graph: visitation states, streaming trace events, functional
// options, and the result structs of both detection variants.
package deadlock

import (
	"context"
	"errors"
)

// DFS visitation states of a node.
const (
	White = iota // White: the node has not been visited yet.
	Gray         // Gray: the node is on the current DFS path (visiting).
	Black        // Black: the node and all its descendants are fully explored.
)

var (
	// ErrGraphNil is returned when a nil Graph is passed to FirstCycle,
	// SCC, or DeadlockSets.
	ErrGraphNil = errors.New("deadlock: graph is nil")

	// ErrTraceSink wraps an error returned by a caller-supplied trace sink;
	// the sink aborting is how early cancellation of the trace stream works.
	ErrTraceSink = errors.New("deadlock: trace sink aborted")
)

// TraceKind discriminates trace events emitted during the DFS.
type TraceKind uint8

const (
	// TraceVisit is emitted when a node turns Gray (enters the DFS path).
	TraceVisit TraceKind = iota

	// TraceEdge is emitted when an outgoing edge is examined.
	TraceEdge

	// TraceBacktrack is emitted when a node turns Black (leaves the path).
	TraceBacktrack
)

// String returns the lowercase event name.
func (k TraceKind) String() string {
	switch k {
	case TraceVisit:
		return "visit"
	case TraceEdge:
		return "edge"
	case TraceBacktrack:
		return "backtrack"
	default:
		return "unknown"
	}
}

// TraceEvent is one step of the DFS, streamed to the caller-supplied sink
// instead of being accumulated centrally. For TraceVisit and TraceBacktrack
// only From is set; for TraceEdge both endpoints are set.
type TraceEvent struct {
	Kind TraceKind
	From string
	To   string
}

// Option configures optional behavior of FirstCycle.
type Option func(*Options)

// Options holds configurable parameters for first-cycle detection.
type Options struct {
	// Ctx allows cancellation; defaults to context.Background().
	Ctx context.Context

	// OnTrace, if non-nil, receives every trace event in traversal order.
	// Returning an error aborts detection with that error wrapped in
	// ErrTraceSink.
	OnTrace func(TraceEvent) error
}

// DefaultOptions returns Options with a background context and no sink.
func DefaultOptions() Options {
	return Options{Ctx: context.Background()}
}

// WithContext sets the context for cancellation.
// Passing a nil context has no effect (Background is retained).
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithTraceSink installs fn as the trace event sink.
func WithTraceSink(fn func(TraceEvent) error) Option {
	return func(o *Options) {
		o.OnTrace = fn
	}
}

// Result captures the outcome of first-cycle detection.
type Result struct {
	// Cycle is the first cycle found in traversal order, as a closed node
	// sequence (first element == last element), or nil if the graph is
	// acyclic.
	Cycle []string

	// VisitedCount is the number of distinct nodes that entered the DFS
	// before detection stopped.
	VisitedCount int
}

// HasCycle reports whether a cycle was found.
func (r *Result) HasCycle() bool { return len(r.Cycle) > 0 }

// SCCResult captures the outcome of the Tarjan pass.
type SCCResult struct {
	// Components lists every strongly connected component in completion
	// order; members within a component are sorted for determinism.
	Components [][]string

	// DeadlockSets is the subset of Components with more than one member —
	// each is a set of transactions that can never all progress.
	DeadlockSets [][]string
}
