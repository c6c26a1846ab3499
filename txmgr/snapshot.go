package txmgr

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/lockgraph/wfg"
)

// Transaction returns a read-only snapshot of one transaction.
func (m *Manager) Transaction(id string) (Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.txs[id]
	if !ok {
		return Transaction{}, fmt.Errorf("%w: %q", ErrUnknownTransaction, id)
	}

	return t.snapshot(), nil
}

// Transactions returns snapshots of every transaction, sorted by ID.
func (m *Manager) Transactions() []Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Transaction, 0, len(m.txs))
	for _, t := range m.txs {
		out = append(out, t.snapshot())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}

// Resource returns a read-only snapshot of one resource.
func (m *Manager) Resource(id string) (Resource, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.resources[id]
	if !ok {
		return Resource{}, fmt.Errorf("%w: %q", ErrUnknownResource, id)
	}

	return r.snapshot(), nil
}

// Resources returns snapshots of every resource, sorted by ID.
func (m *Manager) Resources() []Resource {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Resource, 0, len(m.resources))
	for _, r := range m.resources {
		out = append(out, r.snapshot())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}

// GraphSnapshot returns the current wait-for graph's node and edge lists,
// both sorted — the state a renderer draws after each mutating call.
func (m *Manager) GraphSnapshot() ([]string, []wfg.Edge) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.graph.Nodes(), m.graph.Edges()
}

// Graph exposes the live wait-for graph for read-only consumers such as
// the coloring and victim packages. Callers must not mutate it; all
// mutation flows through Manager operations.
func (m *Manager) Graph() wfg.Graph { return m.graph }

func (t *txState) snapshot() Transaction {
	held := make([]string, 0, len(t.held))
	for resID := range t.held {
		held = append(held, resID)
	}
	sort.Strings(held)

	return Transaction{
		ID:         t.id,
		Status:     t.status,
		HeldLocks:  held,
		WaitingFor: t.waitingFor,
	}
}

func (r *resState) snapshot() Resource {
	queue := make([]string, len(r.queue))
	copy(queue, r.queue)

	return Resource{
		ID:        r.id,
		LockedBy:  r.holder,
		WaitQueue: queue,
	}
}
