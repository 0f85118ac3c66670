package timetable

import (
	"math"

	"github.com/samber/lo"
)

// courseUnit is an internally schedulable requirement. Plain theory and
// practical subjects map to one unit each; a theory+lab subject is pre-split
// into a theory unit and a practical unit whose hours sum to the subject's
// total. Units keep the parent subject's name so emitted lectures read
// naturally.
type courseUnit struct {
	subject  string
	kind     SessionKind
	hours    int
	perBatch bool
	rooms    []Room
}

// roomPool applies the type-compatibility rule: theory units draw from
// classrooms, practical units from labs.
func roomPool(kind SessionKind, rooms []Room) []Room {
	wanted := RoomClassroom
	if kind == SessionPractical {
		wanted = RoomLab
	}
	return lo.Filter(rooms, func(room Room, _ int) bool { return room.Type == wanted })
}

// expandUnits turns the declared subjects into course units. Subjects with
// zero hours produce no units. The theory+lab split ratio comes from the
// configuration; the theory part is floored at one hour and the practical
// part receives the remainder so the total is conserved.
func expandUnits(subjects []Subject, rooms []Room, cfg Config) []courseUnit {
	var units []courseUnit

	appendUnit := func(subject string, kind SessionKind, hours int) {
		if hours <= 0 {
			return
		}
		units = append(units, courseUnit{
			subject:  subject,
			kind:     kind,
			hours:    hours,
			perBatch: kind == SessionPractical,
			rooms:    roomPool(kind, rooms),
		})
	}

	for _, subject := range subjects {
		switch subject.Type {
		case SubjectTheory:
			appendUnit(subject.Name, SessionTheory, subject.HoursPerWeek)
		case SubjectPractical:
			appendUnit(subject.Name, SessionPractical, subject.HoursPerWeek)
		case SubjectTheoryLab:
			if subject.HoursPerWeek == 0 {
				continue
			}
			theoryHours := int(math.Floor(float64(subject.HoursPerWeek) * cfg.TheoryShare))
			if theoryHours < 1 {
				theoryHours = 1
			}
			appendUnit(subject.Name, SessionTheory, theoryHours)
			appendUnit(subject.Name, SessionPractical, subject.HoursPerWeek-theoryHours)
		}
	}

	return units
}
