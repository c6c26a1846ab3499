package wfg

import "sort"

// AdjacencyList stores successor sets keyed by node ID.
//
// Description:
//
//	The default, general-purpose representation: a map from node ID to the
//	set of its direct successors. Node membership is tracked separately so
//	isolated nodes (no edges) survive enumeration.
//
// Use AdjacencyList when the graph is sparse and mutation-heavy — the
// common shape of a wait-for graph, where most transactions wait on at
// most one holder.
//
// Time complexity:
//   - AddNode/AddEdge/RemoveEdge/HasEdge: O(1)
//   - RemoveNode: O(V)
//   - Neighbors: O(d log d), Nodes: O(V log V)
//
// Memory:
//   - O(V + E).
type AdjacencyList struct {
	nodes map[string]struct{}
	succ  map[string]map[string]struct{}
	edges int
}

// compile-time contract check
var _ Graph = (*AdjacencyList)(nil)

// NewAdjacencyList returns an empty adjacency-list WFG.
func NewAdjacencyList() *AdjacencyList {
	return &AdjacencyList{
		nodes: make(map[string]struct{}),
		succ:  make(map[string]map[string]struct{}),
	}
}

// AddNode registers id. Idempotent.
func (l *AdjacencyList) AddNode(id string) error {
	if id == "" {
		return ErrEmptyNodeID
	}
	l.nodes[id] = struct{}{}

	return nil
}

// AddEdge inserts from→to, creating missing endpoints. Idempotent.
func (l *AdjacencyList) AddEdge(from, to string) error {
	if err := validateEdge(from, to); err != nil {
		return err
	}
	l.nodes[from] = struct{}{}
	l.nodes[to] = struct{}{}

	set, ok := l.succ[from]
	if !ok {
		set = make(map[string]struct{})
		l.succ[from] = set
	}
	if _, dup := set[to]; dup {
		return nil // already present; simple graph
	}
	set[to] = struct{}{}
	l.edges++

	return nil
}

// RemoveEdge deletes from→to. No-op if absent.
func (l *AdjacencyList) RemoveEdge(from, to string) {
	set, ok := l.succ[from]
	if !ok {
		return
	}
	if _, present := set[to]; !present {
		return
	}
	delete(set, to)
	l.edges--
	if len(set) == 0 {
		delete(l.succ, from)
	}
}

// RemoveNode deletes id and all incident edges in both directions.
func (l *AdjacencyList) RemoveNode(id string) bool {
	if _, ok := l.nodes[id]; !ok {
		return false
	}
	// outgoing
	l.edges -= len(l.succ[id])
	delete(l.succ, id)
	// incoming: sweep every successor set
	for from, set := range l.succ {
		if _, present := set[id]; present {
			delete(set, id)
			l.edges--
			if len(set) == 0 {
				delete(l.succ, from)
			}
		}
	}
	delete(l.nodes, id)

	return true
}

// Neighbors returns the sorted successors of id.
func (l *AdjacencyList) Neighbors(id string) []string {
	set := l.succ[id]
	out := make([]string, 0, len(set))
	for to := range set {
		out = append(out, to)
	}
	sort.Strings(out)

	return out
}

// Nodes returns all node IDs, sorted.
func (l *AdjacencyList) Nodes() []string {
	out := make([]string, 0, len(l.nodes))
	for id := range l.nodes {
		out = append(out, id)
	}
	sort.Strings(out)

	return out
}

// HasEdge reports whether from→to exists.
func (l *AdjacencyList) HasEdge(from, to string) bool {
	_, ok := l.succ[from][to]

	return ok
}

// Edges returns every edge sorted by (From, To).
func (l *AdjacencyList) Edges() []Edge {
	out := make([]Edge, 0, l.edges)
	for _, from := range l.Nodes() {
		for _, to := range l.Neighbors(from) {
			out = append(out, Edge{From: from, To: to})
		}
	}

	return out
}

// NodeCount returns the number of nodes.
func (l *AdjacencyList) NodeCount() int { return len(l.nodes) }

// EdgeCount returns the number of edges.
func (l *AdjacencyList) EdgeCount() int { return l.edges }

// Clear resets the graph to empty.
func (l *AdjacencyList) Clear() {
	l.nodes = make(map[string]struct{})
	l.succ = make(map[string]map[string]struct{})
	l.edges = 0
}
