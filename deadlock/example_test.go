package deadlock_test

import (
	"fmt"

	"github.com/katalvlaran/lockgraph/deadlock"
	"github.com/katalvlaran/lockgraph/wfg"
)

// ExampleFirstCycle detects the classic three-transaction deadlock:
// T1 waits on T2, T2 on T3, T3 on T1.
func ExampleFirstCycle() {
	g := wfg.NewAdjacencyList()
	_ = g.AddEdge("T1", "T2")
	_ = g.AddEdge("T2", "T3")
	_ = g.AddEdge("T3", "T1")

	res, err := deadlock.FirstCycle(g)
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	fmt.Println("cycle:", res.Cycle)
	fmt.Println("visited:", res.VisitedCount)
	// Output:
	// cycle: [T1 T2 T3 T1]
	// visited: 3
}

// ExampleFirstCycle_trace streams the DFS as it happens — useful for
// animating detection step by step.
func ExampleFirstCycle_trace() {
	g := wfg.NewAdjacencyList()
	_ = g.AddEdge("T1", "T2")
	_ = g.AddEdge("T2", "T1")

	_, _ = deadlock.FirstCycle(g, deadlock.WithTraceSink(func(ev deadlock.TraceEvent) error {
		if ev.Kind == deadlock.TraceEdge {
			fmt.Printf("%s %s→%s\n", ev.Kind, ev.From, ev.To)
		} else {
			fmt.Printf("%s %s\n", ev.Kind, ev.From)
		}

		return nil
	}))
	// Output:
	// visit T1
	// edge T1→T2
	// visit T2
	// edge T2→T1
}

// ExampleDeadlockSets enumerates every independent deadlock at once.
func ExampleDeadlockSets() {
	g := wfg.NewAdjacencyList()
	_ = g.AddEdge("T1", "T2")
	_ = g.AddEdge("T2", "T1")
	_ = g.AddEdge("T3", "T4")
	_ = g.AddEdge("T4", "T3")
	_ = g.AddEdge("T5", "T1") // waits into the first cycle, but is not deadlocked

	sets, _ := deadlock.DeadlockSets(g)
	fmt.Println(sets)
	// Output:
	// [[T1 T2] [T3 T4]]
}
