// Package coloring groups transactions into safe concurrent batches: two
// transactions may share a batch only if neither can reach the other in
// the wait-for graph, directly or transitively.
//
// Algorithm:
//
//  1. For every node, compute its full reachability set with a BFS over
//     the wait-for graph.
//  2. Build an undirected conflict graph: edge (a, b) iff a reaches b or
//     b reaches a.
//  3. Greedily color: process nodes in the graph's sorted node order and
//     assign each the smallest color index unused by already-colored
//     conflict neighbors.
//
// The greedy pass is order-dependent; with the deterministic node order
// the whole assignment is reproducible run to run and representation to
// representation.
//
// Complexity:
//
//   - Time:   O(V·(V + E)) for the reachability sets, plus O(V²) for the
//     conflict scan and greedy pass.
//   - Memory: O(V²) for the reachability and conflict sets.
package coloring

import (
	"github.com/katalvlaran/lockgraph/wfg"
)

// Color computes the conflict coloring of g. Nodes sharing a color have
// no wait relationship in either direction. The graph is never mutated;
// an empty graph yields an empty result with ChromaticNumber zero.
func Color(g wfg.Graph) (*Result, error) {
	if g == nil {
		return nil, ErrGraphNil
	}

	nodes := g.Nodes()
	n := len(nodes)

	// 1. Reachability set per node.
	reach := make(map[string]map[string]bool, n)
	for _, id := range nodes {
		reach[id] = reachable(g, id)
	}

	// 2. Undirected conflict adjacency.
	conflict := make(map[string][]string, n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			a, b := nodes[i], nodes[j]
			if reach[a][b] || reach[b][a] {
				conflict[a] = append(conflict[a], b)
				conflict[b] = append(conflict[b], a)
			}
		}
	}

	// 3. Greedy assignment in node order.
	res := &Result{Colors: make(map[string]int, n)}
	for _, id := range nodes {
		used := make(map[int]bool, len(conflict[id]))
		for _, nbr := range conflict[id] {
			if c, done := res.Colors[nbr]; done {
				used[c] = true
			}
		}
		color := 0
		for used[color] {
			color++
		}
		res.Colors[id] = color
		if color == len(res.Groups) {
			res.Groups = append(res.Groups, nil)
		}
		res.Groups[color] = append(res.Groups[color], id)
	}
	res.ChromaticNumber = len(res.Groups)

	return res, nil
}

// reachable returns every node reachable from start by one or more edges.
// start itself appears only if it lies on a cycle.
func reachable(g wfg.Graph, start string) map[string]bool {
	out := make(map[string]bool)
	queue := g.Neighbors(start)
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if out[cur] {
			continue
		}
		out[cur] = true
		queue = append(queue, g.Neighbors(cur)...)
	}

	return out
}
