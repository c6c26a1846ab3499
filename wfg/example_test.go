package wfg_test

import (
	"fmt"

	"github.com/katalvlaran/lockgraph/wfg"
)

// ExampleAdjacencyList models three transactions queued into a wait chain:
// T2 waits on T1, T3 waits on T2. Aborting T2 sweeps both of its edges.
func ExampleAdjacencyList() {
	g := wfg.NewAdjacencyList()
	_ = g.AddEdge("T2", "T1")
	_ = g.AddEdge("T3", "T2")

	fmt.Println("nodes:", g.Nodes())
	fmt.Println("T3 waits on:", g.Neighbors("T3"))

	g.RemoveNode("T2")
	fmt.Println("after abort of T2:", g.Nodes(), g.EdgeCount())
	// Output:
	// nodes: [T1 T2 T3]
	// T3 waits on: [T2]
	// after abort of T2: [T1 T3] 0
}

// ExampleGraph shows the representation-independence contract: the same
// operation sequence gives the same observations on every implementation.
func ExampleGraph() {
	for _, g := range []wfg.Graph{
		wfg.NewAdjacencyList(),
		wfg.NewAdjacencyMatrix(),
		wfg.NewEdgeList(),
	} {
		_ = g.AddEdge("T1", "T2")
		_ = g.AddEdge("T1", "T2") // idempotent
		_ = g.AddNode("T3")
		fmt.Println(g.Nodes(), g.Neighbors("T1"), g.EdgeCount())
	}
	// Output:
	// [T1 T2 T3] [T2] 1
	// [T1 T2 T3] [T2] 1
	// [T1 T2 T3] [T2] 1
}
