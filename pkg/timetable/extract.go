package timetable

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"
	cmpb "github.com/google/or-tools/ortools/sat/proto/cpmodel"
	"github.com/samber/lo"
)

func formatHour(hour int) string {
	return fmt.Sprintf("%02d:00", hour)
}

// extractSolution reads back the true variables and reconstructs the
// timetable: one Lecture per batch a variable applies to, with class-wide
// variables fanned out to every batch. The output is sorted by (day index,
// start hour, batch) for deterministic, human-readable order.
func extractSolution(vs *varSet, units []courseUnit, batches []string, g *grid, response *cmpb.CpSolverResponse) ([]Lecture, Stats) {
	lectures := []Lecture{}

	emit := func(v variable, batch string) {
		unit := units[v.unit]
		lectures = append(lectures, Lecture{
			Day:       v.day,
			StartHour: v.hour,
			EndHour:   v.hour + v.duration,
			StartTime: formatHour(v.hour),
			EndTime:   formatHour(v.hour + v.duration),
			Subject:   unit.subject,
			Room:      v.room,
			Batch:     batch,
			Type:      unit.kind,
			Duration:  v.duration,
		})
	}

	for _, v := range vs.vars {
		if !cpmodel.SolutionBooleanValue(response, v.lit) {
			continue
		}
		if v.attend.IsClassWide() {
			for _, batch := range batches {
				emit(v, batch)
			}
		} else {
			emit(v, v.attend.Batch())
		}
	}

	slices.SortFunc(lectures, func(a, b Lecture) int {
		if c := g.dayIndex[a.Day] - g.dayIndex[b.Day]; c != 0 {
			return c
		}
		if c := a.StartHour - b.StartHour; c != 0 {
			return c
		}
		return strings.Compare(a.Batch, b.Batch)
	})

	stats := Stats{
		TotalSlots:        len(lectures),
		SubjectsScheduled: len(lo.UniqBy(lectures, func(l Lecture) string { return l.Subject })),
		BatchesScheduled:  len(lo.UniqBy(lectures, func(l Lecture) string { return l.Batch })),
	}
	return lectures, stats
}
