package timetable

import (
	"strconv"

	log "github.com/golang/glog"
)

// Slot is one schedulable (day, hour) unit of the weekly grid.
type Slot struct {
	Day  string
	Hour int
}

// grid is the ordered set of schedulable slots derived from a WeekConfig,
// with lookup structure for enumeration and constraint assembly. Immutable
// once built.
type grid struct {
	slots      []Slot
	days       []string
	dayIndex   map[string]int
	hours      map[string]bool
	lunchStart int
	lunchEnd   int
	minHour    int
	maxHour    int
}

// buildGrid turns a validated WeekConfig into the weekly slot grid, one entry
// per whole hour in [start, end) per working day, minus hours starting inside
// the lunch interval. Deterministic for a given config; an empty grid is a
// legal output caught later by the feasibility check.
func buildGrid(cfg WeekConfig) *grid {
	start, _ := parseHour(cfg.StartTime)
	end, _ := parseHour(cfg.EndTime)
	lunchStart, _ := parseHour(cfg.LunchStart)
	lunchEnd, _ := parseHour(cfg.LunchEnd)

	g := &grid{
		days:       append([]string(nil), cfg.WorkingDays...),
		dayIndex:   make(map[string]int, len(cfg.WorkingDays)),
		hours:      make(map[string]bool),
		lunchStart: lunchStart,
		lunchEnd:   lunchEnd,
		minHour:    start,
		maxHour:    end - 1,
	}
	for i, day := range g.days {
		g.dayIndex[day] = i
	}

	for _, day := range g.days {
		for hour := start; hour < end; hour++ {
			if hour >= lunchStart && hour < lunchEnd {
				continue
			}
			g.slots = append(g.slots, Slot{Day: day, Hour: hour})
			g.hours[slotID(day, hour)] = true
		}
	}

	log.Infof("generated %d time slots across %d working days", len(g.slots), len(g.days))
	return g
}

func slotID(day string, hour int) string {
	return day + "#" + strconv.Itoa(hour)
}

func (g *grid) hasSlot(day string, hour int) bool {
	return g.hours[slotID(day, hour)]
}

// fits reports whether a session of the given duration starting at (day,
// hour) stays inside the grid, i.e. every occupied hour is a schedulable slot
// of the same day. Lunch and end-of-day gaps both break a run.
func (g *grid) fits(day string, hour, duration int) bool {
	for h := hour; h < hour+duration; h++ {
		if !g.hasSlot(day, h) {
			return false
		}
	}
	return true
}

// inLunch reports whether any hour of [hour, hour+duration) falls inside the
// lunch interval.
func (g *grid) inLunch(hour, duration int) bool {
	for h := hour; h < hour+duration; h++ {
		if h >= g.lunchStart && h < g.lunchEnd {
			return true
		}
	}
	return false
}

// hourRuns returns the maximal runs of numerically consecutive schedulable
// hours of a day, in order. Windows for consecutive-hour constraints slide
// within a run, never across lunch.
func (g *grid) hourRuns(day string) [][]int {
	var runs [][]int
	var current []int
	for hour := g.minHour; hour <= g.maxHour; hour++ {
		if g.hasSlot(day, hour) {
			current = append(current, hour)
			continue
		}
		if len(current) > 0 {
			runs = append(runs, current)
			current = nil
		}
	}
	if len(current) > 0 {
		runs = append(runs, current)
	}
	return runs
}
