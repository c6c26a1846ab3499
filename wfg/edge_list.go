package wfg

import "sort"

// EdgeList stores edges as a flat slice of ordered pairs.
//
// Description:
//
//	The minimal representation: a node set plus an unordered slice of
//	(from, to) pairs. Every edge query is a linear scan.
//
// Use EdgeList when graphs stay tiny (a handful of transactions) or as
// the reference implementation in differential tests — its behavior is
// trivially auditable.
//
// Time complexity:
//   - AddNode: O(1)
//   - AddEdge/RemoveEdge/HasEdge: O(E)
//   - RemoveNode: O(E)
//   - Neighbors: O(E + d log d), Nodes: O(V log V)
//
// Memory:
//   - O(V + E).
type EdgeList struct {
	nodes map[string]struct{}
	pairs []Edge
}

var _ Graph = (*EdgeList)(nil)

// NewEdgeList returns an empty edge-list WFG.
func NewEdgeList() *EdgeList {
	return &EdgeList{nodes: make(map[string]struct{})}
}

// AddNode registers id. Idempotent.
func (e *EdgeList) AddNode(id string) error {
	if id == "" {
		return ErrEmptyNodeID
	}
	e.nodes[id] = struct{}{}

	return nil
}

// AddEdge inserts from→to, creating missing endpoints. Idempotent.
func (e *EdgeList) AddEdge(from, to string) error {
	if err := validateEdge(from, to); err != nil {
		return err
	}
	e.nodes[from] = struct{}{}
	e.nodes[to] = struct{}{}
	if e.HasEdge(from, to) {
		return nil
	}
	e.pairs = append(e.pairs, Edge{From: from, To: to})

	return nil
}

// RemoveEdge deletes from→to. No-op if absent.
func (e *EdgeList) RemoveEdge(from, to string) {
	for i, p := range e.pairs {
		if p.From == from && p.To == to {
			e.pairs = append(e.pairs[:i], e.pairs[i+1:]...)

			return
		}
	}
}

// RemoveNode deletes id and all incident edges in both directions.
func (e *EdgeList) RemoveNode(id string) bool {
	if _, ok := e.nodes[id]; !ok {
		return false
	}
	kept := e.pairs[:0]
	for _, p := range e.pairs {
		if p.From != id && p.To != id {
			kept = append(kept, p)
		}
	}
	e.pairs = kept
	delete(e.nodes, id)

	return true
}

// Neighbors returns the sorted successors of id.
func (e *EdgeList) Neighbors(id string) []string {
	out := []string{}
	for _, p := range e.pairs {
		if p.From == id {
			out = append(out, p.To)
		}
	}
	sort.Strings(out)

	return out
}

// Nodes returns all node IDs, sorted.
func (e *EdgeList) Nodes() []string {
	out := make([]string, 0, len(e.nodes))
	for id := range e.nodes {
		out = append(out, id)
	}
	sort.Strings(out)

	return out
}

// HasEdge reports whether from→to exists.
func (e *EdgeList) HasEdge(from, to string) bool {
	for _, p := range e.pairs {
		if p.From == from && p.To == to {
			return true
		}
	}

	return false
}

// Edges returns every edge sorted by (From, To).
func (e *EdgeList) Edges() []Edge {
	out := make([]Edge, len(e.pairs))
	copy(out, e.pairs)
	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}

		return out[i].To < out[j].To
	})

	return out
}

// NodeCount returns the number of nodes.
func (e *EdgeList) NodeCount() int { return len(e.nodes) }

// EdgeCount returns the number of edges.
func (e *EdgeList) EdgeCount() int { return len(e.pairs) }

// Clear resets the graph to empty.
func (e *EdgeList) Clear() {
	e.nodes = make(map[string]struct{})
	e.pairs = nil
}
