package timetable

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
)

type RoomType string

const (
	RoomClassroom RoomType = "classroom"
	RoomLab       RoomType = "lab"
)

type SubjectType string

const (
	SubjectTheory    SubjectType = "theory"
	SubjectPractical SubjectType = "practical"
	SubjectTheoryLab SubjectType = "theory+lab"
)

// SessionKind is the kind of an emitted session. A theory+lab subject is
// split internally and emits lectures of both kinds.
type SessionKind string

const (
	SessionTheory    SessionKind = "theory"
	SessionPractical SessionKind = "practical"
)

type Room struct {
	Name     string   `json:"name" mapstructure:"name"`
	Type     RoomType `json:"type" mapstructure:"type"`
	Capacity int      `json:"capacity" mapstructure:"capacity"`
}

type Subject struct {
	Name         string      `json:"name" mapstructure:"name"`
	Type         SubjectType `json:"type" mapstructure:"type"`
	HoursPerWeek int         `json:"hours_per_week" mapstructure:"hours_per_week"`
}

// WeekConfig describes the weekly grid. Times are whole-hour "HH:MM" strings;
// the lunch interval must lie within [start, end).
type WeekConfig struct {
	StartTime   string   `json:"start_time" mapstructure:"start_time"`
	EndTime     string   `json:"end_time" mapstructure:"end_time"`
	LunchStart  string   `json:"lunch_start" mapstructure:"lunch_start"`
	LunchEnd    string   `json:"lunch_end" mapstructure:"lunch_end"`
	WorkingDays []string `json:"working_days" mapstructure:"working_days"`
}

// Request is the full problem description consumed by a Scheduler.
type Request struct {
	WeekConfig WeekConfig `json:"week_config" mapstructure:"week_config"`
	Rooms      []Room     `json:"rooms" mapstructure:"rooms"`
	Subjects   []Subject  `json:"subjects" mapstructure:"subjects"`
	// Batches is optional; when empty the scheduler's configured default
	// batch set is used.
	Batches []string `json:"batches,omitempty" mapstructure:"batches"`
}

var validDays = map[string]bool{
	"Mon": true, "Tue": true, "Wed": true, "Thu": true,
	"Fri": true, "Sat": true, "Sun": true,
}

// parseHour parses a "HH:MM" string into its hour component. Minutes other
// than 00 are rejected since the grid is whole-hour.
func parseHour(value string) (int, error) {
	parts := strings.Split(value, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", value)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid time %q: bad hour", value)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute != 0 {
		return 0, fmt.Errorf("invalid time %q: grid slots start on the hour", value)
	}
	return hour, nil
}

// normalize rewrites accepted input aliases into canonical form. Clients
// send "lab" and "practical" interchangeably.
func (request *Request) normalize() {
	for i, subject := range request.Subjects {
		if string(subject.Type) == "lab" {
			request.Subjects[i].Type = SubjectPractical
		}
	}
}

// validate performs field-level checks that must hold before any model is
// built. Every violation is a configuration failure.
func (request *Request) validate() *Failure {
	cfg := request.WeekConfig

	for _, value := range []string{cfg.StartTime, cfg.EndTime, cfg.LunchStart, cfg.LunchEnd} {
		if _, err := parseHour(value); err != nil {
			return newFailure(FailureConfig, "week_config: %v", err)
		}
	}
	start, _ := parseHour(cfg.StartTime)
	end, _ := parseHour(cfg.EndTime)
	lunchStart, _ := parseHour(cfg.LunchStart)
	lunchEnd, _ := parseHour(cfg.LunchEnd)
	if lunchStart > lunchEnd {
		return newFailure(FailureConfig, "week_config: lunch_start %q is after lunch_end %q", cfg.LunchStart, cfg.LunchEnd)
	}
	if lunchStart != lunchEnd && (lunchStart < start || lunchEnd > end) {
		return newFailure(FailureConfig, "week_config: lunch interval [%s, %s) is outside the working day [%s, %s)",
			cfg.LunchStart, cfg.LunchEnd, cfg.StartTime, cfg.EndTime)
	}

	seenDays := make(map[string]bool)
	for _, day := range cfg.WorkingDays {
		if !validDays[day] {
			return newFailure(FailureConfig, "week_config: unknown day %q", day)
		}
		if seenDays[day] {
			return newFailure(FailureConfig, "week_config: duplicate day %q", day)
		}
		seenDays[day] = true
	}

	if len(request.Rooms) == 0 {
		return newFailure(FailureConfig, "no rooms supplied")
	}
	seenRooms := make(map[string]bool)
	for _, room := range request.Rooms {
		if room.Name == "" {
			return newFailure(FailureConfig, "room with empty name")
		}
		if seenRooms[room.Name] {
			return newFailure(FailureConfig, "duplicate room %q", room.Name)
		}
		seenRooms[room.Name] = true
		if room.Type != RoomClassroom && room.Type != RoomLab {
			return newFailure(FailureConfig, "room %q: unknown type %q", room.Name, room.Type)
		}
		if room.Capacity <= 0 {
			return newFailure(FailureConfig, "room %q: capacity must be positive", room.Name)
		}
	}

	if len(request.Subjects) == 0 {
		return newFailure(FailureConfig, "no subjects supplied")
	}
	seenSubjects := make(map[string]bool)
	for _, subject := range request.Subjects {
		if subject.Name == "" {
			return newFailure(FailureConfig, "subject with empty name")
		}
		if seenSubjects[subject.Name] {
			return newFailure(FailureConfig, "duplicate subject %q", subject.Name)
		}
		seenSubjects[subject.Name] = true
		switch subject.Type {
		case SubjectTheory, SubjectPractical, SubjectTheoryLab:
		default:
			return newFailure(FailureConfig, "subject %q: unknown type %q", subject.Name, subject.Type)
		}
		if subject.HoursPerWeek < 0 {
			return newFailure(FailureConfig, "subject %q: hours_per_week must be non-negative", subject.Name)
		}
	}

	for _, batch := range request.Batches {
		if batch == "" {
			return newFailure(FailureConfig, "batch with empty name")
		}
	}
	if duplicated := lo.FindDuplicates(request.Batches); len(duplicated) > 0 {
		return newFailure(FailureConfig, "duplicate batch %q", duplicated[0])
	}

	return nil
}

// RequestFromJSON reads a problem description from a JSON file.
func RequestFromJSON(file string) (Request, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return Request{}, fmt.Errorf("cannot read input file: %w", err)
	}

	var inputJson map[string]any
	if err := json.Unmarshal(bytes, &inputJson); err != nil {
		return Request{}, fmt.Errorf("cannot parse input file: %w", err)
	}

	var request Request
	if err := mapstructure.Decode(inputJson, &request); err != nil {
		return Request{}, fmt.Errorf("cannot decode input file: %w", err)
	}

	return request, nil
}
