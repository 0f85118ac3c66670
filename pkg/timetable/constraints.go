package timetable

import (
	log "github.com/golang/glog"
	"github.com/google/or-tools/ortools/sat/go/cpmodel"
)

type unitAttend struct {
	unit   int
	attend Attendance
}

type unitAttendDay struct {
	unit   int
	attend Attendance
	day    string
}

// encoder adds the hard rules to the CP model. Each method covers one
// constraint class; the order they run in only matters for log readability.
type encoder struct {
	builder *cpmodel.Builder
	vs      *varSet
	units   []courseUnit
	batches []string
	grid    *grid
	cfg     Config
}

func (e *encoder) encode() {
	e.noRoomOverlap()
	e.noAttendanceOverlap()
	e.roomTypeCompatibility()
	e.exactHours()
	e.sessionShape()
	e.lunchExclusion()
	if e.cfg.SyncBatches {
		e.batchSynchronization()
	}
	e.dailyHourCap()
	if e.cfg.Fatigue {
		e.fatigue()
	}
}

func (e *encoder) lits(ids []int) []cpmodel.BoolVar {
	lits := make([]cpmodel.BoolVar, len(ids))
	for i, id := range ids {
		lits[i] = e.vs.vars[id].lit
	}
	return lits
}

// forceFalse pins a variable to zero. Used for defense-in-depth rules that
// enumeration already filters: harmless on an empty set, load-bearing if the
// arena is ever built from a looser enumeration.
func (e *encoder) forceFalse(v variable) {
	e.builder.AddBoolAnd(v.lit.Not())
}

// noRoomOverlap: at most one session touching any (day, hour, room). A
// variable of duration d touches every hour in [start, start+d), which the
// slot-keyed lookup already accounts for.
func (e *encoder) noRoomOverlap() {
	count := 0
	for _, ids := range e.vs.byRoomSlot {
		if len(ids) > 1 {
			e.builder.AddAtMostOne(e.lits(ids)...)
			count++
		}
	}
	log.Infof("added %d room no-overlap constraints", count)
}

// noAttendanceOverlap: at most one session touching any (day, hour, batch).
// Class-wide variables sit in every batch's group, so a class-wide theory
// hour excludes both other class-wide lectures and any batch's practical at
// that hour.
func (e *encoder) noAttendanceOverlap() {
	count := 0
	for _, ids := range e.vs.byAttendSlot {
		if len(ids) > 1 {
			e.builder.AddAtMostOne(e.lits(ids)...)
			count++
		}
	}
	log.Infof("added %d attendance no-overlap constraints", count)
}

// roomTypeCompatibility forces false any variable whose room type mismatches
// its unit's kind. Redundant with the enumerator's pool filtering, kept as an
// invariant on the arena itself.
func (e *encoder) roomTypeCompatibility() {
	for _, v := range e.vs.vars {
		kind := e.units[v.unit].kind
		if (kind == SessionTheory && v.roomType == RoomLab) ||
			(kind == SessionPractical && v.roomType == RoomClassroom) {
			e.forceFalse(v)
		}
	}
}

// exactHours: for every unit and every attendance group taking it, the
// solved durations must sum to the unit's weekly hours exactly. "At most"
// or "at least" would silently under- or over-schedule.
func (e *encoder) exactHours() {
	groups := make(map[unitAttend]*cpmodel.LinearExpr)
	for _, v := range e.vs.vars {
		key := unitAttend{unit: v.unit, attend: v.attend}
		expr, ok := groups[key]
		if !ok {
			expr = cpmodel.NewLinearExpr()
			groups[key] = expr
		}
		expr.AddTerm(v.lit, int64(v.duration))
	}

	for key, expr := range groups {
		hours := int64(e.units[key.unit].hours)
		e.builder.AddEquality(expr, cpmodel.NewConstant(hours))
	}
	log.Infof("added %d exact-hours constraints", len(groups))
}

// sessionShape: a practical runs as exactly one contiguous block per week.
// Its variables are the block candidates (duration equals the weekly hours),
// so exactly one of them is true per attendance group. Theory sessions are
// bounded by a sliding window: within any maxConsecutive+1 adjacent same-day
// hours a unit may occupy at most maxConsecutive.
func (e *encoder) sessionShape() {
	blockGroups := make(map[unitAttend][]int)
	for _, v := range e.vs.vars {
		if e.units[v.unit].perBatch {
			key := unitAttend{unit: v.unit, attend: v.attend}
			blockGroups[key] = append(blockGroups[key], v.id)
		}
	}
	for _, ids := range blockGroups {
		e.builder.AddExactlyOne(e.lits(ids)...)
	}
	log.Infof("added %d practical block constraints", len(blockGroups))

	windows := 0
	maxConsecutive := e.cfg.MaxConsecutiveTheory
	for unitID, unit := range e.units {
		if unit.perBatch {
			continue
		}
		for _, day := range e.grid.days {
			for _, run := range e.grid.hourRuns(day) {
				for i := 0; i+maxConsecutive < len(run); i++ {
					window := run[i : i+maxConsecutive+1]
					if e.addWindowCap(unitID, day, window, maxConsecutive) {
						windows++
					}
				}
			}
		}
	}
	log.Infof("added %d theory consecutive-hour windows", windows)
}

// addWindowCap bounds the hours a unit occupies inside a window of adjacent
// same-day hours. Each variable contributes the number of window hours it
// touches.
func (e *encoder) addWindowCap(unitID int, day string, window []int, limit int) bool {
	inWindow := make(map[int]bool, len(window))
	for _, hour := range window {
		inWindow[hour] = true
	}

	expr := cpmodel.NewLinearExpr()
	terms := 0
	for _, id := range e.vs.byUnit[unitID] {
		v := e.vs.vars[id]
		if v.day != day {
			continue
		}
		touched := 0
		for h := v.hour; h < v.hour+v.duration; h++ {
			if inWindow[h] {
				touched++
			}
		}
		if touched > 0 {
			expr.AddTerm(v.lit, int64(touched))
			terms++
		}
	}
	if terms < 2 {
		return false
	}
	e.builder.AddLessOrEqual(expr, cpmodel.NewConstant(int64(limit)))
	return true
}

// lunchExclusion forces false any variable overlapping the lunch interval.
// The grid generator already refuses such slots; this re-asserts the rule in
// case variables are ever built from a different grid source.
func (e *encoder) lunchExclusion() {
	for _, v := range e.vs.vars {
		if e.grid.inLunch(v.hour, v.duration) {
			e.forceFalse(v)
		}
	}
}

// batchSynchronization: a per-batch practical runs once for every batch, all
// at the same time in different labs. Encoded as equality of the per-batch
// occupancy sums at every (unit, day, start hour): if one batch starts its
// block there, all do. Equality rather than "each equals one" keeps slots
// without the session legal.
func (e *encoder) batchSynchronization() {
	type unitSlot struct {
		unit int
		day  string
		hour int
	}
	groups := make(map[unitSlot]map[Attendance][]int)
	for _, v := range e.vs.vars {
		if !e.units[v.unit].perBatch {
			continue
		}
		key := unitSlot{unit: v.unit, day: v.day, hour: v.hour}
		if groups[key] == nil {
			groups[key] = make(map[Attendance][]int)
		}
		groups[key][v.attend] = append(groups[key][v.attend], v.id)
	}

	count := 0
	for _, perBatch := range groups {
		if len(perBatch) != len(e.batches) {
			// Some batch has no candidate here; the slot cannot host a
			// synchronized session at all.
			for _, ids := range perBatch {
				for _, id := range ids {
					e.forceFalse(e.vs.vars[id])
				}
			}
			continue
		}

		var first *cpmodel.LinearExpr
		for _, batch := range e.batches {
			ids := perBatch[PerBatch(batch)]
			expr := cpmodel.NewLinearExpr()
			for _, id := range ids {
				expr.Add(e.vs.vars[id].lit)
			}
			if first == nil {
				first = expr
				continue
			}
			e.builder.AddEquality(first, expr)
			count++
		}
	}
	log.Infof("added %d batch synchronization constraints", count)
}

// dailyHourCap: one unit may occupy at most the configured hours per day for
// one attendance group, so no subject monopolizes a day.
func (e *encoder) dailyHourCap() {
	groups := make(map[unitAttendDay]*cpmodel.LinearExpr)
	attainable := make(map[unitAttendDay]int64)
	for _, v := range e.vs.vars {
		key := unitAttendDay{unit: v.unit, attend: v.attend, day: v.day}
		expr, ok := groups[key]
		if !ok {
			expr = cpmodel.NewLinearExpr()
			groups[key] = expr
		}
		expr.AddTerm(v.lit, int64(v.duration))
		attainable[key] += int64(v.duration)
	}

	limit := int64(e.cfg.DailyHourCap)
	added := 0
	for key, expr := range groups {
		// A practical block may legitimately exceed the cap; its length is
		// already fixed by the shape constraint.
		if unit := e.units[key.unit]; unit.perBatch && int64(unit.hours) > limit {
			continue
		}
		// A group that cannot exceed the limit even with every variable true
		// needs no constraint.
		if attainable[key] <= limit {
			continue
		}
		e.builder.AddLessOrEqual(expr, cpmodel.NewConstant(limit))
		added++
	}
	log.Infof("added %d daily-hour caps", added)
}

// fatigue treats each subject as a teacher proxy and forbids occupying three
// consecutive same-day hours, across attendance groups.
func (e *encoder) fatigue() {
	windows := 0
	for unitID := range e.units {
		for _, day := range e.grid.days {
			for _, run := range e.grid.hourRuns(day) {
				for i := 0; i+2 < len(run); i++ {
					if e.addWindowCap(unitID, day, run[i:i+3], 2) {
						windows++
					}
				}
			}
		}
	}
	log.Infof("added %d fatigue windows", windows)
}
