// Package victim declares the heuristic contract and sentinel errors for
// deadlock victim selection.
package victim

import (
	"errors"

	"github.com/katalvlaran/lockgraph/wfg"
)

var (
	// ErrGraphNil is returned when a nil Graph is passed to a heuristic.
	ErrGraphNil = errors.New("victim: graph is nil")

	// ErrEmptyCycle is returned when the cycle has no members — the only
	// failure mode of victim selection.
	ErrEmptyCycle = errors.New("victim: cycle is empty")

	// ErrUnknownHeuristic is returned by ByName for unrecognized names.
	ErrUnknownHeuristic = errors.New("victim: unknown heuristic")
)

// Heuristic picks the cycle member to abort so the deadlock breaks.
// Implementations must return a member of cycle and may consult the full
// wait-for graph, never mutating it.
type Heuristic func(g wfg.Graph, cycle []string) (string, error)

// ByName resolves a heuristic by its CLI-facing name:
// "degree" → ByDegree, "distance" → ByDistanceSum.
func ByName(name string) (Heuristic, error) {
	switch name {
	case "degree":
		return ByDegree, nil
	case "distance":
		return ByDistanceSum, nil
	default:
		return nil, ErrUnknownHeuristic
	}
}
