// Package scenario feeds a Manager a deterministic operation sequence —
// the explicit replacement for random workload generation: the core never
// rolls dice, the scenario file spells out every step.
//
// A scenario is a TOML document:
//
//	transactions = ["T1", "T2"]
//	resources    = ["R1", "R2"]
//
//	[[ops]]
//	kind = "acquire"
//	tx   = "T1"
//	res  = "R1"
//
//	[[ops]]
//	kind = "detect"
//
// Kinds: acquire, release (tx + res), abort (tx), detect (no fields).
// Replay applies ops in order; operation-level failures (unknown IDs,
// invalid states) are recoverable by design, so they are recorded in the
// per-op outcome and replay continues — only malformed scenarios and
// cancellation stop it.
package scenario

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"

	"github.com/katalvlaran/lockgraph/txmgr"
)

// Operation kinds accepted in scenario files.
const (
	KindAcquire = "acquire"
	KindRelease = "release"
	KindAbort   = "abort"
	KindDetect  = "detect"
)

var (
	// ErrUnknownOpKind indicates an op kind outside the accepted set.
	ErrUnknownOpKind = errors.New("scenario: unknown op kind")

	// ErrMissingField indicates an op lacking a required tx/res field.
	ErrMissingField = errors.New("scenario: missing op field")

	// ErrNilManager indicates Replay was handed a nil manager.
	ErrNilManager = errors.New("scenario: manager is nil")
)

// Op is one scripted step.
type Op struct {
	// Kind selects the operation: acquire, release, abort, or detect.
	Kind string `toml:"kind"`

	// Tx is the transaction ID (acquire, release, abort).
	Tx string `toml:"tx"`

	// Res is the resource ID (acquire, release).
	Res string `toml:"res"`
}

// Scenario is the initial population plus the ordered op sequence.
type Scenario struct {
	Transactions []string `toml:"transactions"`
	Resources    []string `toml:"resources"`
	Ops          []Op     `toml:"ops"`
}

// Outcome reports how one op fared during replay.
type Outcome struct {
	// Index is the op's position in the scenario.
	Index int

	// Op is the step that ran.
	Op Op

	// Err is the recoverable operation error, nil on success.
	Err error

	// Cycle holds the detected cycle for detect ops, nil otherwise.
	Cycle []string
}

// Load reads and validates a scenario from a TOML file.
func Load(path string) (*Scenario, error) {
	var sc Scenario
	if _, err := toml.DecodeFile(path, &sc); err != nil {
		return nil, fmt.Errorf("scenario: decode %s: %w", path, err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}

	return &sc, nil
}

// Decode reads and validates a scenario from r.
func Decode(r io.Reader) (*Scenario, error) {
	var sc Scenario
	if _, err := toml.NewDecoder(r).Decode(&sc); err != nil {
		return nil, fmt.Errorf("scenario: decode: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}

	return &sc, nil
}

// Validate checks every op for an accepted kind and its required fields.
func (s *Scenario) Validate() error {
	for i, op := range s.Ops {
		switch op.Kind {
		case KindAcquire, KindRelease:
			if op.Tx == "" || op.Res == "" {
				return fmt.Errorf("%w: op %d (%s) needs tx and res", ErrMissingField, i, op.Kind)
			}
		case KindAbort:
			if op.Tx == "" {
				return fmt.Errorf("%w: op %d (abort) needs tx", ErrMissingField, i)
			}
		case KindDetect:
			// no fields
		default:
			return fmt.Errorf("%w: op %d kind %q", ErrUnknownOpKind, i, op.Kind)
		}
	}

	return nil
}

// Replay registers the scenario's transactions and resources on m, then
// applies every op in order. Per-op failures are captured in the returned
// outcomes; replay stops early only on context cancellation.
func Replay(ctx context.Context, m *txmgr.Manager, sc *Scenario) ([]Outcome, error) {
	if m == nil {
		return nil, ErrNilManager
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	for _, id := range sc.Transactions {
		if err := m.AddTransaction(id); err != nil {
			return nil, err
		}
	}
	for _, id := range sc.Resources {
		if err := m.AddResource(id); err != nil {
			return nil, err
		}
	}

	outcomes := make([]Outcome, 0, len(sc.Ops))
	for i, op := range sc.Ops {
		select {
		case <-ctx.Done():
			return outcomes, ctx.Err()
		default:
		}

		out := Outcome{Index: i, Op: op}
		switch op.Kind {
		case KindAcquire:
			out.Err = m.Acquire(op.Tx, op.Res)
		case KindRelease:
			out.Err = m.Release(op.Tx, op.Res)
		case KindAbort:
			out.Err = m.Abort(op.Tx)
		case KindDetect:
			res, err := m.DetectDeadlock()
			out.Err = err
			if err == nil {
				out.Cycle = res.Cycle
			}
		}
		outcomes = append(outcomes, out)
	}

	return outcomes, nil
}
