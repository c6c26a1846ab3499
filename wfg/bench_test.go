package wfg_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/lockgraph/wfg"
)

// buildStar wires N waiters behind one holder plus a chain among waiters,
// a typical contended-lock shape.
func buildStar(g wfg.Graph, n int) {
	for i := 1; i <= n; i++ {
		_ = g.AddEdge(fmt.Sprintf("T%04d", i), "T0000")
	}
}

// BenchmarkAddEdge_AdjacencyList measures edge insertion on the map-backed form.
func BenchmarkAddEdge_AdjacencyList(b *testing.B) {
	const n = 1000
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		g := wfg.NewAdjacencyList()
		buildStar(g, n)
	}
}

// BenchmarkAddEdge_AdjacencyMatrix measures edge insertion with row growth.
func BenchmarkAddEdge_AdjacencyMatrix(b *testing.B) {
	const n = 1000
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		g := wfg.NewAdjacencyMatrix()
		buildStar(g, n)
	}
}

// BenchmarkHasEdge compares edge lookup across representations.
func BenchmarkHasEdge(b *testing.B) {
	const n = 500
	impls := map[string]wfg.Graph{
		"AdjacencyList":   wfg.NewAdjacencyList(),
		"AdjacencyMatrix": wfg.NewAdjacencyMatrix(),
		"EdgeList":        wfg.NewEdgeList(),
	}
	for name, g := range impls {
		buildStar(g, n)
		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = g.HasEdge("T0250", "T0000")
			}
		})
	}
}
