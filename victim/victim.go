// Package victim chooses which member of a wait-for cycle to abort.
//
// Two heuristics are provided:
//
//   - ByDegree: score(n) = outDegree(n) + 0.5·inDegree(n) over the FULL
//     wait-for graph (not just the cycle); the maximum wins, ties broken
//     by first occurrence in the cycle. Intuition: the most entangled
//     transaction frees the most waiters when aborted.
//   - ByDistanceSum: for each cycle member, a BFS over the wait-for graph
//     sums all finite distances to reachable nodes; the maximum sum wins —
//     a proxy for "breaks the most indirect waits". When no member scores
//     positive (isolated cycle members), it falls back to ByDegree.
//
// Contract: the selection is always a member of the given cycle; the only
// failure on well-formed input is an empty cycle (ErrEmptyCycle). The
// graph is never mutated.
//
// Complexity:
//
//   - ByDegree:      Time O(V + E), Memory O(V)
//   - ByDistanceSum: Time O(C·(V + E)) for C cycle members, Memory O(V)
package victim

import (
	"github.com/katalvlaran/lockgraph/wfg"
)

// ByDegree selects the cycle member with the highest
// outDegree + 0.5·inDegree computed over the full graph.
// Ties break toward the earliest occurrence in the cycle.
func ByDegree(g wfg.Graph, cycle []string) (string, error) {
	if g == nil {
		return "", ErrGraphNil
	}
	cands := members(cycle)
	if len(cands) == 0 {
		return "", ErrEmptyCycle
	}

	inDeg := inDegrees(g)
	best, bestScore := "", -1.0
	for _, n := range cands {
		score := float64(len(g.Neighbors(n))) + 0.5*float64(inDeg[n])
		if score > bestScore {
			best, bestScore = n, score
		}
	}

	return best, nil
}

// ByDistanceSum selects the cycle member whose BFS distance sum over the
// full graph is largest. Ties break toward the earliest occurrence in the
// cycle; when no member has a positive sum, ByDegree decides.
func ByDistanceSum(g wfg.Graph, cycle []string) (string, error) {
	if g == nil {
		return "", ErrGraphNil
	}
	cands := members(cycle)
	if len(cands) == 0 {
		return "", ErrEmptyCycle
	}

	best, bestSum := "", 0
	for _, n := range cands {
		if sum := distanceSum(g, n); sum > bestSum {
			best, bestSum = n, sum
		}
	}
	if bestSum <= 0 {
		// nobody reaches anything: degree heuristic as the arbiter
		return ByDegree(g, cycle)
	}

	return best, nil
}

// members returns the distinct cycle nodes in first-occurrence order,
// dropping the closing duplicate of a closed sequence.
func members(cycle []string) []string {
	seen := make(map[string]struct{}, len(cycle))
	out := make([]string, 0, len(cycle))
	for _, n := range cycle {
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}

	return out
}

// inDegrees counts incoming edges for every node in one sweep.
func inDegrees(g wfg.Graph) map[string]int {
	in := make(map[string]int, g.NodeCount())
	for _, from := range g.Nodes() {
		for _, to := range g.Neighbors(from) {
			in[to]++
		}
	}

	return in
}

// distanceSum runs an unweighted BFS from start and sums the finite
// distances of every reached node.
func distanceSum(g wfg.Graph, start string) int {
	type item struct {
		id    string
		depth int
	}
	visited := map[string]bool{start: true}
	queue := []item{{id: start}}
	sum := 0

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		sum += cur.depth
		for _, nbr := range g.Neighbors(cur.id) {
			if !visited[nbr] {
				visited[nbr] = true
				queue = append(queue, item{id: nbr, depth: cur.depth + 1})
			}
		}
	}

	return sum
}
