package timetable

import (
	"fmt"

	log "github.com/golang/glog"
	"github.com/google/or-tools/ortools/sat/go/cpmodel"
)

// Attendance distinguishes class-wide sessions (all batches together) from
// per-batch ones. The zero value is class-wide; the type system carries the
// distinction instead of a sentinel batch name.
type Attendance struct {
	batch string
}

// ClassWide is the attendance of sessions the whole class takes together.
var ClassWide = Attendance{}

func PerBatch(batch string) Attendance {
	return Attendance{batch: batch}
}

func (a Attendance) IsClassWide() bool {
	return a.batch == ""
}

// Batch returns the batch name of a per-batch attendance; empty for
// class-wide.
func (a Attendance) Batch() string {
	return a.batch
}

func (a Attendance) String() string {
	if a.IsClassWide() {
		return "class"
	}
	return a.batch
}

// occupants returns the batch attendances a session blocks: a per-batch
// session blocks its own batch, a class-wide one blocks every batch at once.
func (a Attendance) occupants(batches []string) []Attendance {
	if !a.IsClassWide() {
		return []Attendance{a}
	}
	occupants := make([]Attendance, len(batches))
	for i, batch := range batches {
		occupants[i] = PerBatch(batch)
	}
	return occupants
}

// variable is one boolean decision: "this unit holds a session for this
// attendance group, in this room, starting at (day, hour), for duration
// hours." Variables live only for one model build.
type variable struct {
	id       int
	unit     int
	attend   Attendance
	room     string
	roomType RoomType
	day      string
	hour     int
	duration int
	lit      cpmodel.BoolVar
}

type roomSlotKey struct {
	day  string
	hour int
	room string
}

type attendSlotKey struct {
	day    string
	hour   int
	attend Attendance
}

// varSet is the variable arena plus the lookup maps that constraint assembly
// needs, all built once during enumeration. The slot-keyed maps index every
// hour a variable touches, not just its start hour, so a two-hour session
// appears under both of its hours. The attendance map is keyed by batch:
// class-wide variables are indexed under every batch's key, so one group per
// batch covers theory-theory and theory-practical collisions alike.
type varSet struct {
	vars         []variable
	byRoomSlot   map[roomSlotKey][]int
	byAttendSlot map[attendSlotKey][]int
	byUnit       [][]int
}

// attendances returns the attendance groups a unit is scheduled for: the
// single class-wide group for theory, one group per batch for practicals.
func (unit courseUnit) attendances(batches []string) []Attendance {
	if !unit.perBatch {
		return []Attendance{ClassWide}
	}
	attends := make([]Attendance, len(batches))
	for i, batch := range batches {
		attends[i] = PerBatch(batch)
	}
	return attends
}

// durations returns the candidate session lengths of a unit. Theory sessions
// come in one- or two-hour runs; a practical is a single contiguous block of
// exactly its weekly hours.
func (unit courseUnit) durations() []int {
	if unit.perBatch {
		return []int{unit.hours}
	}
	return []int{1, 2}
}

// enumerateVariables creates one boolean per admissible (unit, attendance,
// room, day, hour, duration) combination. Combinations whose hour run would
// leave the grid (end-of-day or lunch) or whose room type is incompatible
// are never created, so the arena holds no two variables with the same key.
func enumerateVariables(builder *cpmodel.Builder, units []courseUnit, batches []string, g *grid) *varSet {
	vs := &varSet{
		byRoomSlot:   make(map[roomSlotKey][]int),
		byAttendSlot: make(map[attendSlotKey][]int),
		byUnit:       make([][]int, len(units)),
	}

	for unitID, unit := range units {
		for _, attend := range unit.attendances(batches) {
			occupants := attend.occupants(batches)
			for _, slot := range g.slots {
				for _, duration := range unit.durations() {
					if !g.fits(slot.Day, slot.Hour, duration) {
						continue
					}
					for _, room := range unit.rooms {
						name := fmt.Sprintf("x_%s_%s_%s_%s_%s_%d_%d",
							unit.subject, unit.kind, attend, room.Name, slot.Day, slot.Hour, duration)

						v := variable{
							id:       len(vs.vars),
							unit:     unitID,
							attend:   attend,
							room:     room.Name,
							roomType: room.Type,
							day:      slot.Day,
							hour:     slot.Hour,
							duration: duration,
							lit:      builder.NewBoolVar().WithName(name),
						}
						vs.vars = append(vs.vars, v)
						vs.byUnit[unitID] = append(vs.byUnit[unitID], v.id)
						for h := slot.Hour; h < slot.Hour+duration; h++ {
							roomKey := roomSlotKey{day: slot.Day, hour: h, room: room.Name}
							vs.byRoomSlot[roomKey] = append(vs.byRoomSlot[roomKey], v.id)
							for _, occupant := range occupants {
								attendKey := attendSlotKey{day: slot.Day, hour: h, attend: occupant}
								vs.byAttendSlot[attendKey] = append(vs.byAttendSlot[attendKey], v.id)
							}
						}
					}
				}
			}
		}
	}

	log.Infof("enumerated %d decision variables for %d units", len(vs.vars), len(units))
	return vs
}

// unscheduledUnits reports units that require hours yet ended up with zero
// candidate variables, which is a modeling defect: the solver would only
// report a bare infeasibility for them.
func unscheduledUnits(units []courseUnit, vs *varSet) []string {
	var names []string
	for unitID, unit := range units {
		if unit.hours > 0 && len(vs.byUnit[unitID]) == 0 {
			names = append(names, fmt.Sprintf("%s (%s)", unit.subject, unit.kind))
		}
	}
	return names
}
