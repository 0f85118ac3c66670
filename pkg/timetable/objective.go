package timetable

import (
	"github.com/google/or-tools/ortools/sat/go/cpmodel"
)

// buildObjective attaches the front-loading soft objective: earlier days
// weigh far more than earlier hours, so feasible solutions compact towards
// the start of the week and the start of the day. A pure tie-breaker among
// feasible solutions; it never affects feasibility.
func buildObjective(builder *cpmodel.Builder, vs *varSet, g *grid) {
	if len(vs.vars) == 0 {
		return
	}

	objective := cpmodel.NewLinearExpr()
	for _, v := range vs.vars {
		dayScore := (len(g.days) - 1 - g.dayIndex[v.day]) * 100
		hourScore := g.maxHour - v.hour
		objective.AddTerm(v.lit, int64(dayScore+hourScore))
	}
	builder.Maximize(objective)
}
