// Package solver wraps the external CP-SAT engine behind a small interface
// so the encoding pipeline never talks to the engine directly and tests can
// substitute their own implementation.
package solver

import (
	"time"

	cmpb "github.com/google/or-tools/ortools/sat/proto/cpmodel"
)

// Status is the coarse outcome of a solve.
type Status int

const (
	// StatusOptimal means a provably best solution was found (or, with no
	// objective, the model was satisfied and proven so).
	StatusOptimal Status = iota
	// StatusFeasible means a valid but not necessarily optimal solution was
	// found; only meaningful when an objective was set or time ran out with a
	// solution in hand.
	StatusFeasible
	// StatusInfeasible means no satisfying assignment exists.
	StatusInfeasible
	// StatusUnknown means the budget was exhausted without an answer either
	// way; the problem might be solvable given more time.
	StatusUnknown
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusFeasible:
		return "feasible"
	case StatusInfeasible:
		return "infeasible"
	case StatusUnknown:
		return "unknown"
	}
	return "invalid"
}

// HasSolution reports whether an assignment can be read back.
func (s Status) HasSolution() bool {
	return s == StatusOptimal || s == StatusFeasible
}

// Options bound a single solve. TimeLimit must be finite: variable counts
// grow combinatorially and unbounded solves are not acceptable.
type Options struct {
	TimeLimit time.Duration
	Workers   int
	Seed      int
}

// Outcome carries the mapped status plus the raw engine response for
// solution read-back.
type Outcome struct {
	Status    Status
	Response  *cmpb.CpSolverResponse
	WallTime  time.Duration
	Objective float64
}

// Solver runs one fully built model to completion within the given bounds.
// Implementations must be safe for use from concurrent solves, each with its
// own model.
type Solver interface {
	Solve(model *cmpb.CpModelProto, opts Options) (Outcome, error)
}
