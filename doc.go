// Package lockgraph is a deterministic, in-memory simulation of
// transaction concurrency control — exclusive locks, wait-for graphs,
// deadlock detection and resolution, and conflict batching.
//
// 🚀 What is lockgraph?
//
//	A single-threaded, step-driven model of a lock manager that brings together:
//		• wfg/      — the wait-for graph contract with three interchangeable
//		              representations (adjacency list, adjacency matrix, edge list)
//		• deadlock/ — first-cycle DFS with a streaming trace, plus Tarjan SCC
//		              for exhaustive deadlock-set enumeration
//		• victim/   — heuristics choosing which cycle member to abort
//		• coloring/ — transitive-reachability conflict graph + greedy coloring
//		              into safe concurrent batches
//		• txmgr/    — the lock-manager state machine that mutates the WFG as a
//		              side effect of acquire/release/abort
//		• scenario/ — deterministic TOML operation sequences replayed against
//		              a manager (no randomness inside the core)
//
// ✨ Why choose lockgraph?
//
//   - Deterministic – sorted node order everywhere, identical output across
//     graph representations, no randomness, no wall-clock dependence in results
//   - Composable – all algorithms speak only the wfg.Graph interface and
//     never assume a concrete layout
//   - Observable – streaming trace hooks, per-call metrics, full state
//     snapshots after every mutating operation
//
// "Waiting" here is a data-model state, not a suspended goroutine: advancing
// simulated time means the caller issuing the next acquire/release/abort call.
// Each manager operation is one atomic critical section.
//
//	go get github.com/katalvlaran/lockgraph
package lockgraph
