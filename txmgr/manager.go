package txmgr

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/katalvlaran/lockgraph/deadlock"
	"github.com/katalvlaran/lockgraph/victim"
	"github.com/katalvlaran/lockgraph/wfg"
)

// txState is the mutable record behind a Transaction snapshot.
type txState struct {
	id         string
	status     Status
	held       map[string]struct{}
	waitingFor string
}

// resState is the mutable record behind a Resource snapshot.
type resState struct {
	id     string
	holder string   // empty when free
	queue  []string // FIFO, no duplicates
}

// Manager drives lock acquisition, release, and abort over a set of
// registered transactions and resources, mutating the wait-for graph to
// mirror every blocking relationship. All methods are safe for concurrent
// use; each runs as one atomic critical section under a single mutex.
type Manager struct {
	mu    sync.Mutex
	graph wfg.Graph
	log   *zap.Logger

	txs       map[string]*txState
	resources map[string]*resState

	ops       uint64
	conflicts uint64
	deadlocks uint64
	latencies []float64 // ring of recent operation durations, ns
	latNext   int       // next ring slot to overwrite once full
}

// NewManager creates an empty Manager. By default it uses an
// adjacency-list wait-for graph and a no-op logger.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		graph:     wfg.NewAdjacencyList(),
		log:       zap.NewNop(),
		txs:       make(map[string]*txState),
		resources: make(map[string]*resState),
	}
	for _, opt := range opts {
		opt(m)
	}

	return m
}

// AddTransaction registers a transaction in the active state and as a
// node of the wait-for graph. Idempotent: re-adding an existing ID is a
// no-op, whatever its state.
func (m *Manager) AddTransaction(id string) error {
	if id == "" {
		return ErrEmptyID
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, dup := m.txs[id]; dup {
		return nil
	}
	m.txs[id] = &txState{id: id, status: StatusActive, held: make(map[string]struct{})}
	_ = m.graph.AddNode(id)
	m.log.Debug("transaction registered", zap.String("tx", id))

	return nil
}

// AddResource registers a free resource. Idempotent.
func (m *Manager) AddResource(id string) error {
	if id == "" {
		return ErrEmptyID
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, dup := m.resources[id]; dup {
		return nil
	}
	m.resources[id] = &resState{id: id}
	m.log.Debug("resource registered", zap.String("res", id))

	return nil
}

// Acquire requests an exclusive lock on resID for txID.
//
// Grants immediately when the resource is free or already held by txID
// (no-op success). Otherwise the transaction is enqueued FIFO (no
// duplicates), marked waiting, and one wait-for edge txID→holder is
// added; the conflict counter increments on this blocking path.
//
// Errors: ErrUnknownTransaction / ErrUnknownResource on unknown IDs,
// ErrTerminalTransaction when txID is aborted. Failed calls mutate
// nothing.
func (m *Manager) Acquire(txID, resID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	start := time.Now()

	t, ok := m.txs[txID]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTransaction, txID)
	}
	r, ok := m.resources[resID]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownResource, resID)
	}
	if t.status.Terminal() {
		return fmt.Errorf("%w: %q", ErrTerminalTransaction, txID)
	}

	if _, held := t.held[resID]; held {
		m.observe(start)

		return nil // already the holder
	}

	if r.holder == "" {
		m.grant(t, r)
		m.log.Debug("lock granted", zap.String("tx", txID), zap.String("res", resID))
	} else {
		m.block(t, r)
		m.conflicts++
		m.log.Debug("lock contended",
			zap.String("tx", txID),
			zap.String("res", resID),
			zap.String("holder", r.holder))
	}
	m.observe(start)

	return nil
}

// Release gives up txID's lock on resID. When waiters are queued, the
// head waiter W is granted atomically in the same call: W becomes active,
// its outgoing edge vanishes, and every remaining waiter's edge is
// re-pointed to W — the new holder — so no stale holder pointer survives.
//
// Errors: ErrUnknownTransaction / ErrUnknownResource on unknown IDs,
// ErrNotHolder when txID does not hold resID. Failed calls mutate nothing.
func (m *Manager) Release(txID, resID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	start := time.Now()

	t, ok := m.txs[txID]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTransaction, txID)
	}
	r, ok := m.resources[resID]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownResource, resID)
	}
	if r.holder != txID {
		return fmt.Errorf("%w: %q on %q", ErrNotHolder, txID, resID)
	}

	delete(t.held, resID)
	r.holder = ""
	m.log.Debug("lock released", zap.String("tx", txID), zap.String("res", resID))
	if len(r.queue) > 0 {
		m.promote(r, txID)
	}
	m.observe(start)

	return nil
}

// Abort terminates txID: status becomes aborted (idempotent, terminal),
// every held lock is released with full queue promotion, the transaction
// leaves every wait queue, and its node — with all incident edges in both
// directions — vanishes from the wait-for graph, and therefore from all
// subsequent detection and coloring.
func (m *Manager) Abort(txID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	start := time.Now()

	t, ok := m.txs[txID]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTransaction, txID)
	}
	if t.status.Terminal() {
		return nil // idempotent
	}

	t.status = StatusAborted
	t.waitingFor = ""

	// leave every wait queue before any promotion can run
	for _, r := range m.resources {
		r.queue = remove(r.queue, txID)
	}

	// release held locks in sorted order for reproducible promotions
	held := make([]string, 0, len(t.held))
	for resID := range t.held {
		held = append(held, resID)
	}
	sort.Strings(held)
	for _, resID := range held {
		r := m.resources[resID]
		delete(t.held, resID)
		r.holder = ""
		if len(r.queue) > 0 {
			m.promote(r, txID)
		}
	}

	m.graph.RemoveNode(txID)
	m.log.Info("transaction aborted", zap.String("tx", txID))
	m.observe(start)

	return nil
}

// DetectDeadlock runs first-cycle detection over the current wait-for
// graph. Detection performs no mutation — resolution is a separate step.
// The deadlock counter increments when a cycle is found.
func (m *Manager) DetectDeadlock(opts ...deadlock.Option) (*deadlock.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	res, err := deadlock.FirstCycle(m.graph, opts...)
	if err != nil {
		return res, err
	}
	if res.HasCycle() {
		m.deadlocks++
		m.log.Info("deadlock detected", zap.Strings("cycle", res.Cycle))
	}

	return res, nil
}

// DeadlockSets runs the exhaustive Tarjan pass, returning every
// independent deadlock set. The counter increments once per set found.
func (m *Manager) DeadlockSets() ([][]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sets, err := deadlock.DeadlockSets(m.graph)
	if err != nil {
		return nil, err
	}
	m.deadlocks += uint64(len(sets))

	return sets, nil
}

// Resolve composes detection and resolution: it finds the first cycle,
// selects a victim with h, flags the waiting cycle members blocked, and
// aborts the victim. Returns the victim and the cycle, or empty values
// when no deadlock exists. A failed selection leaves every status
// untouched; surviving members stay blocked until their next grant.
func (m *Manager) Resolve(h victim.Heuristic) (string, []string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	res, err := deadlock.FirstCycle(m.graph)
	if err != nil {
		return "", nil, err
	}
	if !res.HasCycle() {
		return "", nil, nil
	}
	m.deadlocks++

	v, err := h(m.graph, res.Cycle)
	if err != nil {
		return "", res.Cycle, err
	}
	// flag only once a victim is secured: a failed selection leaves
	// every member's status untouched
	for _, id := range res.Cycle {
		if t, ok := m.txs[id]; ok && t.status == StatusWaiting {
			t.status = StatusBlocked
		}
	}
	if err = m.abortLocked(v); err != nil {
		return "", res.Cycle, err
	}
	m.log.Info("deadlock resolved",
		zap.Strings("cycle", res.Cycle),
		zap.String("victim", v))

	return v, res.Cycle, nil
}

// abortLocked is Abort without re-locking, for use inside Resolve.
func (m *Manager) abortLocked(txID string) error {
	t, ok := m.txs[txID]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTransaction, txID)
	}
	if t.status.Terminal() {
		return nil
	}
	t.status = StatusAborted
	t.waitingFor = ""
	for _, r := range m.resources {
		r.queue = remove(r.queue, txID)
	}
	held := make([]string, 0, len(t.held))
	for resID := range t.held {
		held = append(held, resID)
	}
	sort.Strings(held)
	for _, resID := range held {
		r := m.resources[resID]
		delete(t.held, resID)
		r.holder = ""
		if len(r.queue) > 0 {
			m.promote(r, txID)
		}
	}
	m.graph.RemoveNode(txID)

	return nil
}

// grant hands r to t immediately: t turns active, its outgoing edges
// vanish (it waits on nothing now). A waiter granted a different
// resource leaves its old queue first — a stale entry there would be
// promoted later into a phantom edge for an active transaction.
func (m *Manager) grant(t *txState, r *resState) {
	m.detach(t, r.id)
	r.holder = t.id
	t.held[r.id] = struct{}{}
	t.status = StatusActive
	t.waitingFor = ""
	m.clearOutgoing(t.id)
}

// block enqueues t behind r's holder and records the wait-for edge.
// A transaction switching to a new wait target first detaches cleanly
// from the old queue so the one-outgoing-edge invariant holds.
func (m *Manager) block(t *txState, r *resState) {
	m.detach(t, r.id)
	if !contains(r.queue, t.id) {
		r.queue = append(r.queue, t.id)
	}
	t.waitingFor = r.id
	t.status = StatusWaiting
	m.clearOutgoing(t.id)
	_ = m.graph.AddEdge(t.id, r.holder)
}

// promote dequeues the head waiter of r and grants it the lock, then
// re-points every remaining waiter's edge from the departing holder to
// the new one — the holder-pointer invariant survives the handoff.
func (m *Manager) promote(r *resState, departing string) {
	next := r.queue[0]
	r.queue = r.queue[1:]
	w := m.txs[next]
	m.grant(w, r)
	for _, queued := range r.queue {
		m.graph.RemoveEdge(queued, departing)
		_ = m.graph.AddEdge(queued, next)
	}
	m.log.Debug("lock promoted",
		zap.String("res", r.id),
		zap.String("to", next),
		zap.Int("queued_behind", len(r.queue)))
}

// detach removes t from the queue of its previous wait target when it
// moves on to a different resource. No-op for non-waiting transactions
// and for re-requests of the same resource.
func (m *Manager) detach(t *txState, newRes string) {
	if t.waitingFor == "" || t.waitingFor == newRes {
		return
	}
	if prev, ok := m.resources[t.waitingFor]; ok {
		prev.queue = remove(prev.queue, t.id)
	}
}

// clearOutgoing removes every outgoing edge of id.
func (m *Manager) clearOutgoing(id string) {
	for _, to := range m.graph.Neighbors(id) {
		m.graph.RemoveEdge(id, to)
	}
}

// observe records one completed operation's latency in the sample ring.
// The ring holds the latencyWindow most recent samples so a long replay
// never grows the manager's footprint.
func (m *Manager) observe(start time.Time) {
	m.ops++
	v := float64(time.Since(start).Nanoseconds())
	if len(m.latencies) < latencyWindow {
		m.latencies = append(m.latencies, v)
	} else {
		m.latencies[m.latNext] = v
	}
	m.latNext = (m.latNext + 1) % latencyWindow
}

// remove returns q without any occurrence of id, preserving order.
func remove(q []string, id string) []string {
	out := q[:0]
	for _, x := range q {
		if x != id {
			out = append(out, x)
		}
	}

	return out
}

// contains reports whether q holds id.
func contains(q []string, id string) bool {
	for _, x := range q {
		if x == id {
			return true
		}
	}

	return false
}
