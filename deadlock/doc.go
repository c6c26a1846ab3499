// Package deadlock detects cycles in a wait-for graph — the defining
// condition of transaction deadlock.
//
// What:
//
//   - FirstCycle: iterative white/gray/black DFS over nodes in sorted
//     order, stopping at the first back edge. Returns the cycle as a
//     closed node sequence plus the visit count, and streams visit / edge
//     / backtrack trace events through a caller-supplied sink
//     (WithTraceSink), enabling early cancellation. Deliberately not
//     exhaustive.
//   - SCC / DeadlockSets: Tarjan index/lowlink pass computing all strongly
//     connected components in one O(V+E) sweep; every component with more
//     than one member is a deadlock set. The exhaustive counterpart to
//     FirstCycle — the two granularities are distinct entry points, never
//     conflated.
//
// Why:
//
//   - FirstCycle answers "is anyone stuck right now, and on which loop?"
//     cheaply after each mutating lock operation.
//   - DeadlockSets answers "what is every independent deadlock?" when the
//     resolver must break all of them in one pass.
//
// Guarantees:
//
//   - Detection is read-only: the graph is never mutated.
//   - No node is revisited once finalized (Black / component-assigned).
//   - Empty graph → no cycle, zero visited, no components.
//   - Deterministic output: roots in sorted node order, sorted successor
//     lists, sorted component members.
//
// Complexity:
//
//   - FirstCycle: Time O(V+E), Memory O(V)
//   - SCC:        Time O(V+E), Memory O(V)
//
// Errors:
//
//   - ErrGraphNil       — nil graph argument.
//   - ErrTraceSink      — the trace sink returned an error (wrapped).
//   - context.Canceled  — the WithContext context was cancelled.
package deadlock
