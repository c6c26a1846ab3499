package txmgr_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lockgraph/txmgr"
	"github.com/katalvlaran/lockgraph/victim"
	"github.com/katalvlaran/lockgraph/wfg"
)

// newManager populates a manager with transactions T1..Tn and resources
// R1..Rn ready for scripting.
func newManager(t *testing.T, txs, resources []string, opts ...txmgr.Option) *txmgr.Manager {
	t.Helper()
	m := txmgr.NewManager(opts...)
	for _, id := range txs {
		require.NoError(t, m.AddTransaction(id))
	}
	for _, id := range resources {
		require.NoError(t, m.AddResource(id))
	}

	return m
}

// TestManager_Registration covers idempotence and empty-ID rejection.
func TestManager_Registration(t *testing.T) {
	m := txmgr.NewManager()
	assert.ErrorIs(t, m.AddTransaction(""), txmgr.ErrEmptyID)
	assert.ErrorIs(t, m.AddResource(""), txmgr.ErrEmptyID)

	require.NoError(t, m.AddTransaction("T1"))
	require.NoError(t, m.AddTransaction("T1")) // idempotent
	require.NoError(t, m.AddResource("R1"))
	require.NoError(t, m.AddResource("R1"))

	assert.Len(t, m.Transactions(), 1)
	assert.Len(t, m.Resources(), 1)

	nodes, edges := m.GraphSnapshot()
	assert.Equal(t, []string{"T1"}, nodes)
	assert.Empty(t, edges)
}

// TestAcquire_InvalidReference: unknown IDs fail without side effects.
func TestAcquire_InvalidReference(t *testing.T) {
	m := newManager(t, []string{"T1"}, []string{"R1"})

	assert.ErrorIs(t, m.Acquire("T9", "R1"), txmgr.ErrUnknownTransaction)
	assert.ErrorIs(t, m.Acquire("T1", "R9"), txmgr.ErrUnknownResource)

	r, err := m.Resource("R1")
	require.NoError(t, err)
	assert.Empty(t, r.LockedBy, "failed acquire must not take the lock")
	assert.Zero(t, m.Metrics().Operations)
}

// TestAcquire_TerminalTransaction: acquiring on an aborted transaction is
// an invalid state.
func TestAcquire_TerminalTransaction(t *testing.T) {
	m := newManager(t, []string{"T1"}, []string{"R1"})
	require.NoError(t, m.Abort("T1"))

	assert.ErrorIs(t, m.Acquire("T1", "R1"), txmgr.ErrTerminalTransaction)
}

// TestAcquire_ImmediateGrant: free resource is granted at once; repeat
// acquire by the holder is a no-op success.
func TestAcquire_ImmediateGrant(t *testing.T) {
	m := newManager(t, []string{"T1"}, []string{"R1"})

	require.NoError(t, m.Acquire("T1", "R1"))
	require.NoError(t, m.Acquire("T1", "R1")) // no-op

	tx, err := m.Transaction("T1")
	require.NoError(t, err)
	assert.Equal(t, txmgr.StatusActive, tx.Status)
	assert.Equal(t, []string{"R1"}, tx.HeldLocks)
	assert.Empty(t, tx.WaitingFor)

	r, err := m.Resource("R1")
	require.NoError(t, err)
	assert.Equal(t, "T1", r.LockedBy)
	assert.Empty(t, r.WaitQueue)
	assert.Zero(t, m.Metrics().Conflicts)
}

// TestAcquire_BlockingScenario is the canonical contention script:
// acquire(T1,R1) then acquire(T2,R1) — T2 becomes waiting with edge
// T2→T1; release(T1,R1) grants R1 to T2, clears that edge, T2 active.
func TestAcquire_BlockingScenario(t *testing.T) {
	m := newManager(t, []string{"T1", "T2"}, []string{"R1"})

	require.NoError(t, m.Acquire("T1", "R1"))
	require.NoError(t, m.Acquire("T2", "R1"))

	tx2, err := m.Transaction("T2")
	require.NoError(t, err)
	assert.Equal(t, txmgr.StatusWaiting, tx2.Status)
	assert.Equal(t, "R1", tx2.WaitingFor)
	assert.True(t, m.Graph().HasEdge("T2", "T1"))

	r, err := m.Resource("R1")
	require.NoError(t, err)
	assert.Equal(t, []string{"T2"}, r.WaitQueue)
	assert.Equal(t, uint64(1), m.Metrics().Conflicts)

	require.NoError(t, m.Release("T1", "R1"))

	tx2, err = m.Transaction("T2")
	require.NoError(t, err)
	assert.Equal(t, txmgr.StatusActive, tx2.Status)
	assert.Equal(t, []string{"R1"}, tx2.HeldLocks)
	assert.Empty(t, tx2.WaitingFor)
	assert.False(t, m.Graph().HasEdge("T2", "T1"))

	r, err = m.Resource("R1")
	require.NoError(t, err)
	assert.Equal(t, "T2", r.LockedBy)
	assert.Empty(t, r.WaitQueue)
}

// TestAcquire_QueueDedup: re-issuing a blocked acquire does not duplicate
// the queue entry or the edge.
func TestAcquire_QueueDedup(t *testing.T) {
	m := newManager(t, []string{"T1", "T2"}, []string{"R1"})

	require.NoError(t, m.Acquire("T1", "R1"))
	require.NoError(t, m.Acquire("T2", "R1"))
	require.NoError(t, m.Acquire("T2", "R1"))

	r, err := m.Resource("R1")
	require.NoError(t, err)
	assert.Equal(t, []string{"T2"}, r.WaitQueue)
	assert.Equal(t, 1, m.Graph().EdgeCount())
}

// TestRelease_InvalidState: releasing a lock not held fails and changes
// nothing, including when the resource is free or held by someone else.
func TestRelease_InvalidState(t *testing.T) {
	m := newManager(t, []string{"T1", "T2"}, []string{"R1"})

	assert.ErrorIs(t, m.Release("T1", "R1"), txmgr.ErrNotHolder)

	require.NoError(t, m.Acquire("T1", "R1"))
	assert.ErrorIs(t, m.Release("T2", "R1"), txmgr.ErrNotHolder)

	r, err := m.Resource("R1")
	require.NoError(t, err)
	assert.Equal(t, "T1", r.LockedBy, "failed release must not clear the holder")

	assert.ErrorIs(t, m.Release("T9", "R1"), txmgr.ErrUnknownTransaction)
	assert.ErrorIs(t, m.Release("T1", "R9"), txmgr.ErrUnknownResource)
}

// TestRelease_QueuePromotion: with two queued waiters, the head is
// granted FIFO and the remaining waiter's edge is re-pointed to the new
// holder — the holder-pointer invariant under promotion.
func TestRelease_QueuePromotion(t *testing.T) {
	m := newManager(t, []string{"T1", "T2", "T3"}, []string{"R1"})

	require.NoError(t, m.Acquire("T1", "R1"))
	require.NoError(t, m.Acquire("T2", "R1"))
	require.NoError(t, m.Acquire("T3", "R1"))
	assert.True(t, m.Graph().HasEdge("T2", "T1"))
	assert.True(t, m.Graph().HasEdge("T3", "T1"))

	require.NoError(t, m.Release("T1", "R1"))

	r, err := m.Resource("R1")
	require.NoError(t, err)
	assert.Equal(t, "T2", r.LockedBy, "FIFO: first waiter wins")
	assert.Equal(t, []string{"T3"}, r.WaitQueue)

	// T3's edge must point at the new holder, never the stale one
	assert.True(t, m.Graph().HasEdge("T3", "T2"))
	assert.False(t, m.Graph().HasEdge("T3", "T1"))
	assert.False(t, m.Graph().HasEdge("T2", "T1"))

	tx3, err := m.Transaction("T3")
	require.NoError(t, err)
	assert.Equal(t, txmgr.StatusWaiting, tx3.Status)
	assert.Equal(t, "R1", tx3.WaitingFor)
}

// TestAbort_ReleasesEverything: aborting a holder frees its locks with
// promotion, clears its queue entries, and erases its node.
func TestAbort_ReleasesEverything(t *testing.T) {
	m := newManager(t, []string{"T1", "T2", "T3"}, []string{"R1", "R2"})

	require.NoError(t, m.Acquire("T1", "R1"))
	require.NoError(t, m.Acquire("T1", "R2"))
	require.NoError(t, m.Acquire("T2", "R1"))
	require.NoError(t, m.Acquire("T3", "R2"))

	require.NoError(t, m.Abort("T1"))
	require.NoError(t, m.Abort("T1")) // idempotent

	tx1, err := m.Transaction("T1")
	require.NoError(t, err)
	assert.Equal(t, txmgr.StatusAborted, tx1.Status)
	assert.Empty(t, tx1.HeldLocks)

	r1, err := m.Resource("R1")
	require.NoError(t, err)
	assert.Equal(t, "T2", r1.LockedBy, "waiter promoted on abort")
	r2, err := m.Resource("R2")
	require.NoError(t, err)
	assert.Equal(t, "T3", r2.LockedBy)

	nodes, edges := m.GraphSnapshot()
	assert.NotContains(t, nodes, "T1")
	assert.Empty(t, edges)
}

// TestAbort_WaiterLeavesQueue: aborting a queued waiter removes it from
// the wait queue without disturbing the holder.
func TestAbort_WaiterLeavesQueue(t *testing.T) {
	m := newManager(t, []string{"T1", "T2", "T3"}, []string{"R1"})

	require.NoError(t, m.Acquire("T1", "R1"))
	require.NoError(t, m.Acquire("T2", "R1"))
	require.NoError(t, m.Acquire("T3", "R1"))

	require.NoError(t, m.Abort("T2"))

	r, err := m.Resource("R1")
	require.NoError(t, err)
	assert.Equal(t, "T1", r.LockedBy)
	assert.Equal(t, []string{"T3"}, r.WaitQueue)
	assert.False(t, m.Graph().HasEdge("T2", "T1"))
}

// deadlockTwo scripts the minimal two-transaction deadlock:
// T1 holds R1, T2 holds R2, then each acquires the other's resource.
func deadlockTwo(t *testing.T, m *txmgr.Manager) {
	t.Helper()
	require.NoError(t, m.Acquire("T1", "R1"))
	require.NoError(t, m.Acquire("T2", "R2"))
	require.NoError(t, m.Acquire("T1", "R2"))
	require.NoError(t, m.Acquire("T2", "R1"))
}

// TestDetectDeadlock_FindsCycle: lock operations alone must weave the
// cycle, and detection must not mutate any state.
func TestDetectDeadlock_FindsCycle(t *testing.T) {
	m := newManager(t, []string{"T1", "T2"}, []string{"R1", "R2"})
	deadlockTwo(t, m)

	res, err := m.DetectDeadlock()
	require.NoError(t, err)
	require.True(t, res.HasCycle())
	assert.Equal(t, []string{"T1", "T2", "T1"}, res.Cycle)
	assert.Equal(t, uint64(1), m.Metrics().DeadlocksDetected)

	// detection is read-only: both remain waiting, locks unchanged
	for _, id := range []string{"T1", "T2"} {
		tx, err := m.Transaction(id)
		require.NoError(t, err)
		assert.Equal(t, txmgr.StatusWaiting, tx.Status)
		assert.Len(t, tx.HeldLocks, 1)
	}
}

// TestDeadlockSets_Exhaustive: two disjoint deadlocks enumerate together.
func TestDeadlockSets_Exhaustive(t *testing.T) {
	m := newManager(t,
		[]string{"T1", "T2", "T3", "T4"},
		[]string{"R1", "R2", "R3", "R4"})
	deadlockTwo(t, m)
	require.NoError(t, m.Acquire("T3", "R3"))
	require.NoError(t, m.Acquire("T4", "R4"))
	require.NoError(t, m.Acquire("T3", "R4"))
	require.NoError(t, m.Acquire("T4", "R3"))

	sets, err := m.DeadlockSets()
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"T1", "T2"}, {"T3", "T4"}}, sets)
	assert.Equal(t, uint64(2), m.Metrics().DeadlocksDetected)
}

// TestAbort_BreaksDetectedCycle: after aborting a cycle member, a re-run
// must not mention the aborted ID.
func TestAbort_BreaksDetectedCycle(t *testing.T) {
	m := newManager(t, []string{"T1", "T2"}, []string{"R1", "R2"})
	deadlockTwo(t, m)

	res, err := m.DetectDeadlock()
	require.NoError(t, err)
	require.True(t, res.HasCycle())

	require.NoError(t, m.Abort("T1"))

	after, err := m.DetectDeadlock()
	require.NoError(t, err)
	assert.False(t, after.HasCycle())
	assert.NotContains(t, after.Cycle, "T1")
	nodes, _ := m.GraphSnapshot()
	assert.NotContains(t, nodes, "T1")

	// the survivor was promoted onto the freed resource
	tx2, err := m.Transaction("T2")
	require.NoError(t, err)
	assert.Equal(t, txmgr.StatusActive, tx2.Status)
	assert.ElementsMatch(t, []string{"R1", "R2"}, tx2.HeldLocks)
}

// TestResolve_AbortsVictim: detect → select → abort in one step, leaving
// a cycle-free graph and an aborted victim from inside the cycle.
func TestResolve_AbortsVictim(t *testing.T) {
	m := newManager(t, []string{"T1", "T2"}, []string{"R1", "R2"})
	deadlockTwo(t, m)

	v, cycle, err := m.Resolve(victim.ByDegree)
	require.NoError(t, err)
	assert.Contains(t, []string{"T1", "T2"}, v)
	assert.Equal(t, []string{"T1", "T2", "T1"}, cycle)

	vt, err := m.Transaction(v)
	require.NoError(t, err)
	assert.Equal(t, txmgr.StatusAborted, vt.Status)

	after, err := m.DetectDeadlock()
	require.NoError(t, err)
	assert.False(t, after.HasCycle())
}

// TestResolve_NoDeadlock returns empty values on a healthy graph.
func TestResolve_NoDeadlock(t *testing.T) {
	m := newManager(t, []string{"T1", "T2"}, []string{"R1"})
	require.NoError(t, m.Acquire("T1", "R1"))
	require.NoError(t, m.Acquire("T2", "R1"))

	v, cycle, err := m.Resolve(victim.ByDegree)
	require.NoError(t, err)
	assert.Empty(t, v)
	assert.Nil(t, cycle)
}

// TestResolve_MarksSurvivorsBlocked: surviving cycle members that are
// still queued carry the blocked flag until their next grant.
func TestResolve_MarksSurvivorsBlocked(t *testing.T) {
	m := newManager(t, []string{"T1", "T2", "T3"}, []string{"R1", "R2", "R3"})
	// three-way cycle: T1→T2→T3→T1
	require.NoError(t, m.Acquire("T1", "R1"))
	require.NoError(t, m.Acquire("T2", "R2"))
	require.NoError(t, m.Acquire("T3", "R3"))
	require.NoError(t, m.Acquire("T1", "R2"))
	require.NoError(t, m.Acquire("T2", "R3"))
	require.NoError(t, m.Acquire("T3", "R1"))

	v, cycle, err := m.Resolve(victim.ByDistanceSum)
	require.NoError(t, err)
	require.Len(t, cycle, 4)
	require.Contains(t, []string{"T1", "T2", "T3"}, v)

	granted := 0
	for _, id := range []string{"T1", "T2", "T3"} {
		if id == v {
			continue
		}
		tx, err := m.Transaction(id)
		require.NoError(t, err)
		switch tx.Status {
		case txmgr.StatusActive:
			granted++ // promoted onto the victim's freed lock
		case txmgr.StatusBlocked:
			// survivor still queued, flagged from the resolved cycle
		default:
			t.Fatalf("unexpected status %v for %s", tx.Status, id)
		}
	}
	assert.Equal(t, 1, granted, "exactly one survivor takes the freed lock")

	after, err := m.DetectDeadlock()
	require.NoError(t, err)
	assert.False(t, after.HasCycle())
}

// TestAcquire_SwitchWaitTarget: a waiter re-targeted to another resource
// leaves the old queue and keeps exactly one outgoing edge.
func TestAcquire_SwitchWaitTarget(t *testing.T) {
	m := newManager(t, []string{"T1", "T2", "T3"}, []string{"R1", "R2"})

	require.NoError(t, m.Acquire("T1", "R1"))
	require.NoError(t, m.Acquire("T2", "R2"))
	require.NoError(t, m.Acquire("T3", "R1")) // waits on T1
	require.NoError(t, m.Acquire("T3", "R2")) // switches to waiting on T2

	r1, err := m.Resource("R1")
	require.NoError(t, err)
	assert.Empty(t, r1.WaitQueue, "switching must leave the old queue")

	assert.Equal(t, []string{"T2"}, m.Graph().Neighbors("T3"))

	tx3, err := m.Transaction("T3")
	require.NoError(t, err)
	assert.Equal(t, "R2", tx3.WaitingFor)
}

// TestAcquire_GrantClearsStaleQueueEntry: a queued waiter granted a
// different free resource must leave the old queue. A stale entry there
// would be promoted later into a phantom edge for an active transaction
// and detection would report a cycle that is not a deadlock.
func TestAcquire_GrantClearsStaleQueueEntry(t *testing.T) {
	m := newManager(t, []string{"T1", "T2", "T3"}, []string{"R1", "R2"})

	require.NoError(t, m.Acquire("T1", "R1"))
	require.NoError(t, m.Acquire("T2", "R1"))
	require.NoError(t, m.Acquire("T3", "R1"))
	require.NoError(t, m.Acquire("T3", "R2")) // free: granted immediately

	tx3, err := m.Transaction("T3")
	require.NoError(t, err)
	assert.Equal(t, txmgr.StatusActive, tx3.Status)
	assert.Equal(t, []string{"R2"}, tx3.HeldLocks)
	assert.Empty(t, tx3.WaitingFor)
	assert.Empty(t, m.Graph().Neighbors("T3"))

	r1, err := m.Resource("R1")
	require.NoError(t, err)
	assert.Equal(t, []string{"T2"}, r1.WaitQueue, "grant must leave the old queue")

	// promotion must not resurrect T3 as a waiter of R1
	require.NoError(t, m.Release("T1", "R1"))
	assert.False(t, m.Graph().HasEdge("T3", "T2"))

	// T2 now holds R1 and waits on T3's R2: a plain chain, no cycle
	require.NoError(t, m.Acquire("T2", "R2"))
	assert.True(t, m.Graph().HasEdge("T2", "T3"))

	res, err := m.DetectDeadlock()
	require.NoError(t, err)
	assert.False(t, res.HasCycle())
}

// TestResolve_FailedSelectionLeavesStatuses: a heuristic error aborts
// resolution before any member is flagged or aborted.
func TestResolve_FailedSelectionLeavesStatuses(t *testing.T) {
	m := newManager(t, []string{"T1", "T2"}, []string{"R1", "R2"})
	deadlockTwo(t, m)

	failing := func(_ wfg.Graph, _ []string) (string, error) {
		return "", errors.New("no candidate")
	}
	v, cycle, err := m.Resolve(failing)
	require.Error(t, err)
	assert.Empty(t, v)
	assert.Equal(t, []string{"T1", "T2", "T1"}, cycle)

	for _, id := range []string{"T1", "T2"} {
		tx, terr := m.Transaction(id)
		require.NoError(t, terr)
		assert.Equal(t, txmgr.StatusWaiting, tx.Status,
			"failed selection must not flag %s", id)
	}
}

// TestManager_RepresentationPluggable: the manager behaves identically on
// any wfg.Graph implementation.
func TestManager_RepresentationPluggable(t *testing.T) {
	impls := map[string]func() wfg.Graph{
		"AdjacencyList":   func() wfg.Graph { return wfg.NewAdjacencyList() },
		"AdjacencyMatrix": func() wfg.Graph { return wfg.NewAdjacencyMatrix() },
		"EdgeList":        func() wfg.Graph { return wfg.NewEdgeList() },
	}
	for name, mk := range impls {
		t.Run(name, func(t *testing.T) {
			m := newManager(t, []string{"T1", "T2"}, []string{"R1", "R2"},
				txmgr.WithGraph(mk()))
			deadlockTwo(t, m)

			res, err := m.DetectDeadlock()
			require.NoError(t, err)
			assert.Equal(t, []string{"T1", "T2", "T1"}, res.Cycle)
		})
	}
}
