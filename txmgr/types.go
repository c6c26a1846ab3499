// Package txmgr declares transaction/resource state types, sentinel
// errors, and Manager construction options.
package txmgr

import (
	"errors"

	"go.uber.org/zap"

	"github.com/katalvlaran/lockgraph/wfg"
)

// Sentinel errors for manager operations. All are local and recoverable:
// a failed call leaves the wait-for graph and lock tables unchanged.
var (
	// ErrEmptyID indicates a transaction or resource ID was the empty string.
	ErrEmptyID = errors.New("txmgr: ID is empty")

	// ErrUnknownTransaction indicates an operation referenced a transaction
	// ID that was never registered.
	ErrUnknownTransaction = errors.New("txmgr: unknown transaction")

	// ErrUnknownResource indicates an operation referenced a resource ID
	// that was never registered.
	ErrUnknownResource = errors.New("txmgr: unknown resource")

	// ErrTerminalTransaction indicates an acquire on an aborted transaction.
	// Aborted is terminal.
	ErrTerminalTransaction = errors.New("txmgr: transaction is aborted")

	// ErrNotHolder indicates a release of a lock the transaction does not
	// hold.
	ErrNotHolder = errors.New("txmgr: resource not held by transaction")
)

// Status is the lifecycle state of a transaction.
type Status uint8

const (
	// StatusActive: running; may acquire and release locks.
	StatusActive Status = iota

	// StatusWaiting: enqueued behind a held resource.
	StatusWaiting

	// StatusBlocked: flagged by the resolver as a member of a detected
	// deadlock cycle. Diagnostic refinement of waiting; a grant promotes
	// it back to active like any waiter.
	StatusBlocked

	// StatusAborted: terminal. No further transitions.
	StatusAborted
)

// String returns the lowercase status name.
func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusWaiting:
		return "waiting"
	case StatusBlocked:
		return "blocked"
	case StatusAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transitions are possible.
func (s Status) Terminal() bool { return s == StatusAborted }

// Transaction is a read-only snapshot of one transaction.
type Transaction struct {
	// ID is the unique transaction identifier.
	ID string

	// Status is the current lifecycle state.
	Status Status

	// HeldLocks lists the resource IDs this transaction holds, sorted.
	HeldLocks []string

	// WaitingFor is the resource the transaction is queued behind,
	// or empty when not waiting.
	WaitingFor string
}

// Resource is a read-only snapshot of one lockable resource.
type Resource struct {
	// ID is the unique resource identifier.
	ID string

	// LockedBy is the holding transaction ID, or empty when free.
	LockedBy string

	// WaitQueue lists queued transaction IDs in FIFO order, no duplicates.
	WaitQueue []string
}

// Option configures a Manager before first use.
type Option func(*Manager)

// WithGraph selects the wait-for graph representation. Any wfg.Graph
// works; the default is an adjacency list. Passing nil has no effect.
func WithGraph(g wfg.Graph) Option {
	return func(m *Manager) {
		if g != nil {
			m.graph = g
		}
	}
}

// WithLogger installs a zap logger for operation logging. The default is
// a no-op logger: the core stays silent unless asked.
func WithLogger(lg *zap.Logger) Option {
	return func(m *Manager) {
		if lg != nil {
			m.log = lg
		}
	}
}
