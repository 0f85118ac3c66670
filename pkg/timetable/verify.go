package timetable

import (
	"fmt"
)

// verifyTimetable treats the pipeline's guarantees as checkable
// postconditions over an emitted timetable rather than hopes: hour totals,
// double-booking, room-type compliance, lunch exclusion and practical block
// integrity are all re-derived from the lectures themselves.
func verifyTimetable(lectures []Lecture, request Request, batches []string, cfg Config) error {
	roomTypes := make(map[string]RoomType, len(request.Rooms))
	for _, room := range request.Rooms {
		roomTypes[room.Name] = room.Type
	}

	lunchStart, _ := parseHour(request.WeekConfig.LunchStart)
	lunchEnd, _ := parseHour(request.WeekConfig.LunchEnd)

	type occupancy struct {
		day  string
		hour int
		key  string
	}
	seen := make(map[occupancy]bool)

	type subjectBatchKind struct {
		subject string
		batch   string
		kind    SessionKind
	}
	hours := make(map[subjectBatchKind]int)
	entries := make(map[subjectBatchKind]int)

	for _, lecture := range lectures {
		if lecture.EndHour != lecture.StartHour+lecture.Duration {
			return fmt.Errorf("lecture %s/%s on %s: end hour %d does not match start %d + duration %d",
				lecture.Subject, lecture.Batch, lecture.Day, lecture.EndHour, lecture.StartHour, lecture.Duration)
		}

		roomType, known := roomTypes[lecture.Room]
		if !known {
			return fmt.Errorf("lecture %s/%s: unknown room %q", lecture.Subject, lecture.Batch, lecture.Room)
		}
		if lecture.Type == SessionTheory && roomType != RoomClassroom {
			return fmt.Errorf("theory lecture %s/%s held in non-classroom %q", lecture.Subject, lecture.Batch, lecture.Room)
		}
		if lecture.Type == SessionPractical && roomType != RoomLab {
			return fmt.Errorf("practical lecture %s/%s held in non-lab %q", lecture.Subject, lecture.Batch, lecture.Room)
		}

		if lecture.StartHour < lunchEnd && lecture.EndHour > lunchStart && lunchStart != lunchEnd {
			return fmt.Errorf("lecture %s/%s on %s overlaps lunch", lecture.Subject, lecture.Batch, lecture.Day)
		}

		for h := lecture.StartHour; h < lecture.EndHour; h++ {
			batchSlot := occupancy{day: lecture.Day, hour: h, key: "batch:" + lecture.Batch}
			if seen[batchSlot] {
				return fmt.Errorf("batch %s double-booked on %s at %02d:00", lecture.Batch, lecture.Day, h)
			}
			seen[batchSlot] = true

			// A class-wide theory session legitimately reuses one room for
			// every batch's fanned-out lecture; any other sharing is a
			// double-booking.
			anyRoom := occupancy{day: lecture.Day, hour: h, key: "room:" + lecture.Room}
			if lecture.Type == SessionPractical {
				if seen[anyRoom] {
					return fmt.Errorf("room %s double-booked on %s at %02d:00", lecture.Room, lecture.Day, h)
				}
			} else {
				sessionSlot := occupancy{day: lecture.Day, hour: h, key: "session:" + lecture.Room + "|" + lecture.Subject}
				if seen[anyRoom] && !seen[sessionSlot] {
					return fmt.Errorf("room %s double-booked on %s at %02d:00", lecture.Room, lecture.Day, h)
				}
				seen[sessionSlot] = true
			}
			seen[anyRoom] = true
		}

		key := subjectBatchKind{subject: lecture.Subject, batch: lecture.Batch, kind: lecture.Type}
		hours[key] += lecture.Duration
		entries[key]++
	}

	units := expandUnits(request.Subjects, request.Rooms, cfg)
	for _, unit := range units {
		for _, batch := range batches {
			key := subjectBatchKind{subject: unit.subject, batch: batch, kind: unit.kind}
			if hours[key] != unit.hours {
				return fmt.Errorf("subject %s (%s) batch %s: scheduled %d hours, declared %d",
					unit.subject, unit.kind, batch, hours[key], unit.hours)
			}
			if unit.perBatch && entries[key] != 1 {
				return fmt.Errorf("practical %s batch %s: expected one contiguous block, found %d sessions",
					unit.subject, batch, entries[key])
			}
		}
	}

	return nil
}
