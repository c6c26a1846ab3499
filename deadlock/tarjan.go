// Tarjan strongly-connected-components pass: the exhaustive counterpart
// to FirstCycle. Every SCC with more than one member is a deadlock set.
// Self-loops are out of scope — the wfg package rejects them, so a
// single-member SCC is never a deadlock here.
//
// Implemented iteratively (explicit frame stack) like FirstCycle, so
// recursion depth never bounds the graph size.
//
// Complexity:
//
//   - Time:   O(V + E), single pass
//   - Memory: O(V).
package deadlock

import (
	"sort"

	"github.com/katalvlaran/lockgraph/wfg"
)

// tarjanState carries the classic index/lowlink/on-stack bookkeeping.
type tarjanState struct {
	graph   wfg.Graph
	next    int            // next DFS index to assign
	index   map[string]int // node → DFS index (presence == discovered)
	lowlink map[string]int // node → smallest index reachable from it
	onStack map[string]bool
	stack   []string // Tarjan's component stack
	frames  []frame
	res     *SCCResult
}

// SCC computes all strongly connected components of g in one O(V+E) pass
// and the deadlock subset (components of size > 1). Roots are taken in
// sorted node order and successor lists are sorted, so output is
// deterministic. An empty graph yields empty results; detection never
// mutates the graph.
func SCC(g wfg.Graph) (*SCCResult, error) {
	if g == nil {
		return nil, ErrGraphNil
	}

	nodes := g.Nodes()
	ts := &tarjanState{
		graph:   g,
		index:   make(map[string]int, len(nodes)),
		lowlink: make(map[string]int, len(nodes)),
		onStack: make(map[string]bool, len(nodes)),
		res:     &SCCResult{},
	}

	for _, root := range nodes {
		if _, seen := ts.index[root]; !seen {
			ts.strongConnect(root)
		}
	}

	return ts.res, nil
}

// DeadlockSets is a convenience wrapper around SCC returning only the
// components larger than one node.
func DeadlockSets(g wfg.Graph) ([][]string, error) {
	res, err := SCC(g)
	if err != nil {
		return nil, err
	}

	return res.DeadlockSets, nil
}

// strongConnect runs the iterative Tarjan visit rooted at root.
func (ts *tarjanState) strongConnect(root string) {
	ts.discover(root)

	for len(ts.frames) > 0 {
		f := &ts.frames[len(ts.frames)-1]

		if f.next < len(f.nbrs) {
			nbr := f.nbrs[f.next]
			f.next++
			if _, seen := ts.index[nbr]; !seen {
				ts.discover(nbr)
			} else if ts.onStack[nbr] {
				if ts.index[nbr] < ts.lowlink[f.id] {
					ts.lowlink[f.id] = ts.index[nbr]
				}
			}

			continue
		}

		// f.id is fully explored: close its component if it is a root,
		// then propagate its lowlink to the parent frame.
		id := f.id
		ts.frames = ts.frames[:len(ts.frames)-1]

		if ts.lowlink[id] == ts.index[id] {
			ts.popComponent(id)
		}
		if len(ts.frames) > 0 {
			parent := ts.frames[len(ts.frames)-1].id
			if ts.lowlink[id] < ts.lowlink[parent] {
				ts.lowlink[parent] = ts.lowlink[id]
			}
		}
	}
}

// discover assigns index/lowlink to id and opens its frame.
func (ts *tarjanState) discover(id string) {
	ts.index[id] = ts.next
	ts.lowlink[id] = ts.next
	ts.next++
	ts.stack = append(ts.stack, id)
	ts.onStack[id] = true
	ts.frames = append(ts.frames, frame{id: id, nbrs: ts.graph.Neighbors(id)})
}

// popComponent unwinds the component stack down to root and records the
// component (members sorted), flagging it as a deadlock set when > 1.
func (ts *tarjanState) popComponent(root string) {
	var members []string
	for {
		top := ts.stack[len(ts.stack)-1]
		ts.stack = ts.stack[:len(ts.stack)-1]
		ts.onStack[top] = false
		members = append(members, top)
		if top == root {
			break
		}
	}
	sort.Strings(members)

	ts.res.Components = append(ts.res.Components, members)
	if len(members) > 1 {
		ts.res.DeadlockSets = append(ts.res.DeadlockSets, members)
	}
}
