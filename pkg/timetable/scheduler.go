// Package timetable turns a declarative problem description (rooms, subjects,
// batches, weekly grid) into a CP-SAT model, delegates the combinatorial
// search to the external engine, and translates the satisfying assignment
// back into lecture records.
package timetable

import (
	"fmt"
	"strings"

	log "github.com/golang/glog"
	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/Bashame05/final-timetable/pkg/solver"
)

// Scheduler is the synchronous solve-and-return pipeline. Each Generate call
// builds its own fresh model, so a single Scheduler may serve concurrent
// requests; throttling them is the caller's concern.
type Scheduler interface {
	// Generate runs the whole pipeline and always returns a structured
	// Result; no failure mode escapes as a raw fault.
	Generate(request Request) Result

	// Verify checks an emitted timetable against the request's hard rules:
	// exact hours, no double-booking, room types, lunch exclusion and block
	// integrity.
	Verify(lectures []Lecture, request Request) bool
}

func NewScheduler(engine solver.Solver, cfg Config) Scheduler {
	return &cpScheduler{engine: engine, cfg: cfg.withDefaults()}
}

type cpScheduler struct {
	engine solver.Solver
	cfg    Config
}

func (s *cpScheduler) batchesFor(request Request) []string {
	if len(request.Batches) > 0 {
		return request.Batches
	}
	return s.cfg.DefaultBatches
}

func (s *cpScheduler) Generate(request Request) (result Result) {
	// The pipeline boundary: anything unexpected below becomes a failed
	// result instead of a fault in the transport layer.
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("timetable generation panicked: %v", r)
			result = failedResult(newFailure(FailureInternal, "internal error: %v", r))
		}
	}()

	request.normalize()
	if failure := request.validate(); failure != nil {
		return failedResult(failure)
	}

	batches := s.batchesFor(request)
	g := buildGrid(request.WeekConfig)
	units := expandUnits(request.Subjects, request.Rooms, s.cfg)

	if failure := checkFeasibility(units, batches, g); failure != nil {
		return failedResult(failure)
	}

	builder := cpmodel.NewCpModelBuilder()
	vs := enumerateVariables(builder, units, batches, g)

	if defective := unscheduledUnits(units, vs); len(defective) > 0 {
		for _, name := range defective {
			log.Warningf("subject %s has no valid slot/room combination", name)
		}
		return failedResult(newFailure(FailureModeling,
			"no valid slot/room combination for: %s", strings.Join(defective, ", ")))
	}

	enc := &encoder{builder: builder, vs: vs, units: units, batches: batches, grid: g, cfg: s.cfg}
	enc.encode()

	if s.cfg.Objective {
		buildObjective(builder, vs, g)
	}

	model, err := builder.Model()
	if err != nil {
		return failedResult(newFailure(FailureInternal, "failed to instantiate the CP model: %v", err))
	}

	outcome, err := s.engine.Solve(model, solver.Options{
		TimeLimit: s.cfg.TimeLimit,
		Workers:   s.cfg.Workers,
		Seed:      s.cfg.Seed,
	})
	if err != nil {
		return failedResult(newFailure(FailureInternal, "solver error: %v", err))
	}

	switch outcome.Status {
	case solver.StatusOptimal, solver.StatusFeasible:
		log.Infof("solution found: status=%v wall=%v objective=%v", outcome.Status, outcome.WallTime, outcome.Objective)
	case solver.StatusInfeasible:
		return failedResult(newFailure(FailureInfeasible,
			"no feasible solution: the hard constraints (room types, synchronization, hour totals) cannot all be met"))
	default:
		return failedResult(newFailure(FailureTimeout,
			"no solution within the %v time budget; the problem may be solvable given more time", s.cfg.TimeLimit))
	}

	lectures, stats := extractSolution(vs, units, batches, g, outcome.Response)
	return successResult(lectures, stats)
}

func (s *cpScheduler) Verify(lectures []Lecture, request Request) bool {
	request.normalize()
	return verifyTimetable(lectures, request, s.batchesFor(request), s.cfg) == nil
}

// VerifyWithReason is Verify with the first violated property spelled out,
// for tests and diagnostics.
func VerifyWithReason(lectures []Lecture, request Request, cfg Config) error {
	cfg = cfg.withDefaults()
	request.normalize()
	batches := request.Batches
	if len(batches) == 0 {
		batches = cfg.DefaultBatches
	}
	if err := verifyTimetable(lectures, request, batches, cfg); err != nil {
		return fmt.Errorf("timetable verification failed: %w", err)
	}
	return nil
}
