package victim_test

import (
	"fmt"

	"github.com/katalvlaran/lockgraph/deadlock"
	"github.com/katalvlaran/lockgraph/victim"
	"github.com/katalvlaran/lockgraph/wfg"
)

// ExampleByDegree detects a deadlock, then picks the most entangled cycle
// member — the one whose abort frees the most waiters.
func ExampleByDegree() {
	g := wfg.NewAdjacencyList()
	_ = g.AddEdge("T1", "T2")
	_ = g.AddEdge("T2", "T3")
	_ = g.AddEdge("T3", "T1")
	_ = g.AddEdge("T7", "T3") // outside waiter queued behind T3
	_ = g.AddEdge("T8", "T3") // another one

	res, _ := deadlock.FirstCycle(g)
	v, _ := victim.ByDegree(g, res.Cycle)
	fmt.Println("victim:", v)

	g.RemoveNode(v)
	after, _ := deadlock.FirstCycle(g)
	fmt.Println("still deadlocked:", after.HasCycle())
	// Output:
	// victim: T3
	// still deadlocked: false
}
