package solver

import (
	"fmt"
	"time"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"
	cmpb "github.com/google/or-tools/ortools/sat/proto/cpmodel"
	sppb "github.com/google/or-tools/ortools/sat/proto/satparameters"
	"google.golang.org/protobuf/proto"
)

const defaultTimeLimit = 180 * time.Second

type cpSatSolver struct{}

// NewCpSatSolver returns a Solver backed by the CP-SAT engine.
func NewCpSatSolver() Solver {
	return &cpSatSolver{}
}

func buildParameters(opts Options) *sppb.SatParameters {
	limit := opts.TimeLimit
	if limit <= 0 {
		limit = defaultTimeLimit
	}
	params := &sppb.SatParameters{
		MaxTimeInSeconds: proto.Float64(limit.Seconds()),
	}
	if opts.Workers > 0 {
		params.NumWorkers = proto.Int32(int32(opts.Workers))
	}
	if opts.Seed != 0 {
		params.RandomSeed = proto.Int32(int32(opts.Seed))
	}
	return params
}

func mapStatus(status cmpb.CpSolverStatus) Status {
	switch status {
	case cmpb.CpSolverStatus_OPTIMAL:
		return StatusOptimal
	case cmpb.CpSolverStatus_FEASIBLE:
		return StatusFeasible
	case cmpb.CpSolverStatus_INFEASIBLE:
		return StatusInfeasible
	default:
		return StatusUnknown
	}
}

func (s *cpSatSolver) Solve(model *cmpb.CpModelProto, opts Options) (Outcome, error) {
	response, err := cpmodel.SolveCpModelWithParameters(model, buildParameters(opts))
	if err != nil {
		return Outcome{}, fmt.Errorf("cp-sat solve failed: %w", err)
	}
	if response.GetStatus() == cmpb.CpSolverStatus_MODEL_INVALID {
		return Outcome{}, fmt.Errorf("cp-sat rejected the model as invalid")
	}

	return Outcome{
		Status:    mapStatus(response.GetStatus()),
		Response:  response,
		WallTime:  time.Duration(response.GetWallTime() * float64(time.Second)),
		Objective: response.GetObjectiveValue(),
	}, nil
}
