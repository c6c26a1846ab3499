// Package deadlock implements first-cycle detection on a wait-for graph
// using iterative white/gray/black DFS with an explicit path stack.
//
// FirstCycle stops at the FIRST cycle found in traversal order — it is
// deliberately not exhaustive. The exhaustive counterpart is SCC /
// DeadlockSets in tarjan.go.
//
// Complexity:
//
//   - Time:   O(V + E)
//   - Memory: O(V) for the state map, path stack, and frame stack.
package deadlock

import (
	"fmt"

	"github.com/katalvlaran/lockgraph/wfg"
)

// frame is one level of the explicit DFS stack: a node and a cursor into
// its (pre-fetched, sorted) successor list.
type frame struct {
	id   string
	nbrs []string
	next int
}

// walker encapsulates mutable DFS state.
type walker struct {
	graph  wfg.Graph
	opts   Options
	state  map[string]int
	path   []string // current DFS path, root to top
	frames []frame
	res    *Result
}

// FirstCycle runs depth-first search over g's nodes in sorted order and
// returns the first cycle encountered, the visit count, and nothing else:
// detection never mutates the graph.
//
// The returned cycle is a closed sequence [v, ..., v]: the current DFS
// path sliced at the first occurrence of the back-edge target, then
// closed. Trace events stream through the sink installed with
// WithTraceSink; a sink error or context cancellation aborts detection
// and returns the partial Result alongside the error.
//
// An empty graph yields no cycle and zero visited nodes.
func FirstCycle(g wfg.Graph, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	nodes := g.Nodes() // fixed, documented traversal order: sorted ascending
	w := &walker{
		graph: g,
		opts:  o,
		state: make(map[string]int, len(nodes)),
		path:  make([]string, 0, len(nodes)),
		res:   &Result{},
	}

	for _, root := range nodes {
		if w.state[root] != White {
			continue
		}
		done, err := w.explore(root)
		if err != nil {
			return w.res, err
		}
		if done {
			return w.res, nil
		}
	}

	return w.res, nil
}

// explore runs one DFS tree from root. It returns done == true as soon as
// a cycle is recorded, or an error on cancellation or sink abort.
func (w *walker) explore(root string) (bool, error) {
	if err := w.push(root); err != nil {
		return false, err
	}

	for len(w.frames) > 0 {
		// cancellation check (once per step)
		select {
		case <-w.opts.Ctx.Done():
			return false, w.opts.Ctx.Err()
		default:
		}

		f := &w.frames[len(w.frames)-1]
		if f.next >= len(f.nbrs) {
			if err := w.pop(f.id); err != nil {
				return false, err
			}
			continue
		}

		nbr := f.nbrs[f.next]
		f.next++
		if err := w.emit(TraceEvent{Kind: TraceEdge, From: f.id, To: nbr}); err != nil {
			return false, err
		}

		switch w.state[nbr] {
		case White:
			if err := w.push(nbr); err != nil {
				return false, err
			}
		case Gray:
			// Back edge to a node on the current path: the cycle is the
			// path suffix from nbr's first occurrence through f.id,
			// closed back to nbr. The path stack makes the slice point
			// unambiguous — nbr is always present while Gray.
			w.res.Cycle = closeCycle(w.path, nbr)

			return true, nil
		}
		// Black: finalized earlier, never revisited.
	}

	return false, nil
}

// push marks id Gray, records it on the path, and opens its frame.
func (w *walker) push(id string) error {
	w.state[id] = Gray
	w.res.VisitedCount++
	w.path = append(w.path, id)
	w.frames = append(w.frames, frame{id: id, nbrs: w.graph.Neighbors(id)})

	return w.emit(TraceEvent{Kind: TraceVisit, From: id})
}

// pop finalizes id: marks it Black and unwinds the path and frame stacks.
func (w *walker) pop(id string) error {
	w.state[id] = Black
	w.path = w.path[:len(w.path)-1]
	w.frames = w.frames[:len(w.frames)-1]

	return w.emit(TraceEvent{Kind: TraceBacktrack, From: id})
}

// emit forwards ev to the sink, wrapping any abort error.
func (w *walker) emit(ev TraceEvent) error {
	if w.opts.OnTrace == nil {
		return nil
	}
	if err := w.opts.OnTrace(ev); err != nil {
		return fmt.Errorf("%w: %s %s→%s: %v", ErrTraceSink, ev.Kind, ev.From, ev.To, err)
	}

	return nil
}

// closeCycle copies the path suffix starting at the first occurrence of
// target and appends target to close the loop.
func closeCycle(path []string, target string) []string {
	idx := 0
	for i, id := range path {
		if id == target {
			idx = i
			break
		}
	}
	out := make([]string, 0, len(path)-idx+1)
	out = append(out, path[idx:]...)
	out = append(out, target)

	return out
}
