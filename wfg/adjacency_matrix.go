package wfg

import "sort"

// AdjacencyMatrix stores edges as dense boolean rows over an index map.
//
// Description:
//
//	Each known node is assigned a row/column index; cell data[i][j] is
//	true iff the edge ids[i]→ids[j] exists. The matrix grows as nodes are
//	added and compacts when a node is removed.
//
// Use AdjacencyMatrix for constant-time edge queries on dense wait
// patterns (many transactions queued behind few holders).
//
// Time complexity:
//   - AddEdge/RemoveEdge/HasEdge: O(1) amortized
//   - AddNode: O(V) amortized (row growth)
//   - RemoveNode: O(V²) (row and column compaction)
//   - Neighbors: O(V + d log d), Nodes: O(V log V)
//
// Memory:
//   - O(V²).
type AdjacencyMatrix struct {
	index map[string]int // node ID → row/column index
	ids   []string       // index → node ID
	data  [][]bool       // data[i][j] == true iff ids[i]→ids[j]
	edges int
}

var _ Graph = (*AdjacencyMatrix)(nil)

// NewAdjacencyMatrix returns an empty matrix-backed WFG.
func NewAdjacencyMatrix() *AdjacencyMatrix {
	return &AdjacencyMatrix{index: make(map[string]int)}
}

// ensure registers id if missing and returns its index.
func (m *AdjacencyMatrix) ensure(id string) int {
	if i, ok := m.index[id]; ok {
		return i
	}
	i := len(m.ids)
	m.index[id] = i
	m.ids = append(m.ids, id)
	// widen existing rows, then append the new zero row
	for r := range m.data {
		m.data[r] = append(m.data[r], false)
	}
	m.data = append(m.data, make([]bool, i+1))

	return i
}

// AddNode registers id. Idempotent.
func (m *AdjacencyMatrix) AddNode(id string) error {
	if id == "" {
		return ErrEmptyNodeID
	}
	m.ensure(id)

	return nil
}

// AddEdge inserts from→to, creating missing endpoints. Idempotent.
func (m *AdjacencyMatrix) AddEdge(from, to string) error {
	if err := validateEdge(from, to); err != nil {
		return err
	}
	i, j := m.ensure(from), m.ensure(to)
	if !m.data[i][j] {
		m.data[i][j] = true
		m.edges++
	}

	return nil
}

// RemoveEdge deletes from→to. No-op if absent.
func (m *AdjacencyMatrix) RemoveEdge(from, to string) {
	i, ok := m.index[from]
	if !ok {
		return
	}
	j, ok := m.index[to]
	if !ok {
		return
	}
	if m.data[i][j] {
		m.data[i][j] = false
		m.edges--
	}
}

// RemoveNode deletes id, its row, and its column.
func (m *AdjacencyMatrix) RemoveNode(id string) bool {
	i, ok := m.index[id]
	if !ok {
		return false
	}
	// recount edges lost with the row and column
	for j := range m.data[i] {
		if m.data[i][j] {
			m.edges--
		}
	}
	for r := range m.data {
		if r != i && m.data[r][i] {
			m.edges--
		}
	}
	// compact: drop row i, then column i from every remaining row
	m.data = append(m.data[:i], m.data[i+1:]...)
	for r := range m.data {
		m.data[r] = append(m.data[r][:i], m.data[r][i+1:]...)
	}
	m.ids = append(m.ids[:i], m.ids[i+1:]...)
	delete(m.index, id)
	for k := i; k < len(m.ids); k++ {
		m.index[m.ids[k]] = k
	}

	return true
}

// Neighbors returns the sorted successors of id.
func (m *AdjacencyMatrix) Neighbors(id string) []string {
	i, ok := m.index[id]
	if !ok {
		return []string{}
	}
	var out []string
	for j, set := range m.data[i] {
		if set {
			out = append(out, m.ids[j])
		}
	}
	sort.Strings(out)
	if out == nil {
		out = []string{}
	}

	return out
}

// Nodes returns all node IDs, sorted.
func (m *AdjacencyMatrix) Nodes() []string {
	out := make([]string, len(m.ids))
	copy(out, m.ids)
	sort.Strings(out)

	return out
}

// HasEdge reports whether from→to exists.
func (m *AdjacencyMatrix) HasEdge(from, to string) bool {
	i, ok := m.index[from]
	if !ok {
		return false
	}
	j, ok := m.index[to]
	if !ok {
		return false
	}

	return m.data[i][j]
}

// Edges returns every edge sorted by (From, To).
func (m *AdjacencyMatrix) Edges() []Edge {
	out := make([]Edge, 0, m.edges)
	for _, from := range m.Nodes() {
		for _, to := range m.Neighbors(from) {
			out = append(out, Edge{From: from, To: to})
		}
	}

	return out
}

// NodeCount returns the number of nodes.
func (m *AdjacencyMatrix) NodeCount() int { return len(m.ids) }

// EdgeCount returns the number of edges.
func (m *AdjacencyMatrix) EdgeCount() int { return m.edges }

// Clear resets the graph to empty.
func (m *AdjacencyMatrix) Clear() {
	m.index = make(map[string]int)
	m.ids = nil
	m.data = nil
	m.edges = 0
}
