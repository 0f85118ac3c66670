package timetable

import (
	log "github.com/golang/glog"
	"github.com/samber/lo"
)

// checkFeasibility is a cheap necessary-condition gate run before any model
// is built. Class-wide sessions occupy every batch at once, so each batch
// must fit the sum of all class-wide and its own per-batch hours into the
// per-day grid. Passing says nothing about satisfiability; room scarcity and
// synchronization can still make the encoded model infeasible.
func checkFeasibility(units []courseUnit, batches []string, g *grid) *Failure {
	if len(g.days) == 0 {
		return newFailure(FailureCapacity, "no working days specified")
	}
	if len(g.slots) == 0 {
		return newFailure(FailureCapacity, "no available time slots: the working day is empty or fully covered by lunch")
	}
	if len(batches) == 0 {
		return newFailure(FailureCapacity, "no batches specified")
	}

	perBatchLoad := lo.SumBy(units, func(unit courseUnit) int { return unit.hours })
	slotsPerBatch := len(g.slots)
	if perBatchLoad > slotsPerBatch {
		return newFailure(FailureCapacity,
			"insufficient capacity: each batch requires %d lecture-hours but only %d slots are available",
			perBatchLoad, slotsPerBatch)
	}

	log.Infof("feasibility pre-check passed: %d hours per batch over %d slots", perBatchLoad, slotsPerBatch)
	return nil
}
