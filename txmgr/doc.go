// Package txmgr is the lock-manager state machine at the heart of
// lockgraph: it owns transactions, resources, and their FIFO wait queues,
// and keeps the wait-for graph consistent as a side effect of every lock
// operation.
//
// State machine per transaction:
//
//	active → waiting   on a blocking acquire
//	waiting → active   on grant (release or abort of the holder)
//	waiting → blocked  when the resolver flags a detected cycle
//	any     → aborted  at any time; aborted is terminal
//
// Per resource: free ↔ held by exactly one transaction, with a FIFO wait
// queue (no duplicates).
//
// Wait-for graph invariant: every waiting transaction has exactly one
// outgoing edge, pointing at the CURRENT holder of the resource it waits
// for — never a stale prior holder. Edges appear on a blocking acquire
// and vanish on grant, holder change (queue promotion re-points every
// remaining waiter to the new holder), or abort (both directions).
//
// Concurrency model: execution is single-threaded and step-driven —
// "waiting" is a data state, not a parked goroutine, and simulated time
// advances when the caller issues the next operation. Every exported
// operation still runs under one Manager-wide mutex, so embedding in a
// multi-threaded host keeps each operation one atomic critical section;
// partial execution would violate the holder-pointer invariant.
//
// Detection vs resolution are strictly separated: DetectDeadlock and
// DeadlockSets never mutate; Resolve composes detect → select victim →
// abort.
//
// Errors: ErrUnknownTransaction / ErrUnknownResource (invalid reference),
// ErrTerminalTransaction / ErrNotHolder (invalid state). A failed call
// leaves the wait-for graph and lock tables unchanged.
package txmgr
