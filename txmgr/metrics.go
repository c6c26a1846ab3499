package txmgr

import (
	"time"

	"github.com/montanaflynn/stats"
)

// Approximate per-entry byte costs for the estimated-memory model.
// A count model keeps the core deterministic — no runtime introspection.
// latencyWindow bounds the latency sample ring: AvgLatency and
// P95Latency cover the most recent latencyWindow operations.
const latencyWindow = 1024

const (
	bytesPerTx         = 96
	bytesPerResource   = 96
	bytesPerHeldLock   = 24
	bytesPerQueueEntry = 16
	bytesPerGraphNode  = 48
	bytesPerGraphEdge  = 32
)

// Metrics is a point-in-time snapshot of the manager's counters.
type Metrics struct {
	// Operations counts completed (successful) mutating calls.
	Operations uint64

	// Conflicts counts acquires that blocked behind a holder.
	Conflicts uint64

	// DeadlocksDetected counts cycles reported by DetectDeadlock, sets
	// reported by DeadlockSets, and cycles broken by Resolve.
	DeadlocksDetected uint64

	// AvgLatency is the mean duration over the recent-operation window.
	AvgLatency time.Duration

	// P95Latency is the 95th-percentile duration over the same window.
	P95Latency time.Duration

	// EstimatedBytes approximates resident state size from entry counts.
	EstimatedBytes int64
}

// Metrics returns the current counter snapshot. Latency figures are
// computed over the latencyWindow most recent completed operations.
func (m *Manager) Metrics() Metrics {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := Metrics{
		Operations:        m.ops,
		Conflicts:         m.conflicts,
		DeadlocksDetected: m.deadlocks,
		EstimatedBytes:    m.estimatedBytes(),
	}
	if len(m.latencies) > 0 {
		if mean, err := stats.Mean(m.latencies); err == nil {
			out.AvgLatency = time.Duration(mean)
		}
		if p95, err := stats.Percentile(m.latencies, 95); err == nil {
			out.P95Latency = time.Duration(p95)
		}
	}

	return out
}

// estimatedBytes tallies the count model over all live state.
func (m *Manager) estimatedBytes() int64 {
	var n int64
	n += int64(len(m.txs)) * bytesPerTx
	for _, t := range m.txs {
		n += int64(len(t.held)) * bytesPerHeldLock
	}
	n += int64(len(m.resources)) * bytesPerResource
	for _, r := range m.resources {
		n += int64(len(r.queue)) * bytesPerQueueEntry
	}
	n += int64(m.graph.NodeCount()) * bytesPerGraphNode
	n += int64(m.graph.EdgeCount()) * bytesPerGraphEdge

	return n
}
