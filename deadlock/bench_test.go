package deadlock_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/lockgraph/deadlock"
	"github.com/katalvlaran/lockgraph/wfg"
)

// buildRing wires N transactions into one long wait cycle.
func buildRing(n int) wfg.Graph {
	g := wfg.NewAdjacencyList()
	for i := 0; i < n; i++ {
		_ = g.AddEdge(fmt.Sprintf("T%05d", i), fmt.Sprintf("T%05d", (i+1)%n))
	}

	return g
}

// buildChain wires N transactions into an acyclic wait chain (worst case
// for FirstCycle: everything is visited, nothing found).
func buildChain(n int) wfg.Graph {
	g := wfg.NewAdjacencyList()
	for i := 0; i < n-1; i++ {
		_ = g.AddEdge(fmt.Sprintf("T%05d", i), fmt.Sprintf("T%05d", i+1))
	}

	return g
}

// BenchmarkFirstCycle_Ring measures detection on a single 10k-node cycle.
func BenchmarkFirstCycle_Ring(b *testing.B) {
	g := buildRing(10000)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = deadlock.FirstCycle(g)
	}
}

// BenchmarkFirstCycle_Chain measures the acyclic full traversal.
func BenchmarkFirstCycle_Chain(b *testing.B) {
	g := buildChain(10000)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = deadlock.FirstCycle(g)
	}
}

// BenchmarkSCC_Ring measures the exhaustive Tarjan pass on the same ring.
func BenchmarkSCC_Ring(b *testing.B) {
	g := buildRing(10000)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = deadlock.SCC(g)
	}
}
