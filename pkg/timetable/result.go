package timetable

import "fmt"

// FailureKind classifies why a generation attempt produced no timetable.
type FailureKind int

const (
	// FailureConfig marks malformed input detected before model construction.
	FailureConfig FailureKind = iota
	// FailureCapacity marks the cheap pre-check rejecting the instance.
	FailureCapacity
	// FailureModeling marks a subject left with zero candidate variables.
	FailureModeling
	// FailureInfeasible marks a fully encoded model with no satisfying assignment.
	FailureInfeasible
	// FailureTimeout marks an exhausted solve budget with no full solution.
	FailureTimeout
	// FailureInternal marks an unexpected fault recovered at the pipeline boundary.
	FailureInternal
)

func (kind FailureKind) String() string {
	switch kind {
	case FailureConfig:
		return "config"
	case FailureCapacity:
		return "capacity"
	case FailureModeling:
		return "modeling"
	case FailureInfeasible:
		return "infeasible"
	case FailureTimeout:
		return "timeout"
	case FailureInternal:
		return "internal"
	}
	return "unknown"
}

// Failure is the structured error carried by a failed Result.
type Failure struct {
	Kind   FailureKind
	Reason string
}

func (failure *Failure) Error() string {
	return fmt.Sprintf("%v: %v", failure.Kind, failure.Reason)
}

func newFailure(kind FailureKind, format string, args ...any) *Failure {
	return &Failure{Kind: kind, Reason: fmt.Sprintf(format, args...)}
}

// Lecture is one scheduled session for one batch. Class-wide theory sessions
// are fanned out into one Lecture per batch before emission.
type Lecture struct {
	Day       string      `json:"day"`
	StartHour int         `json:"start_hour"`
	EndHour   int         `json:"end_hour"`
	StartTime string      `json:"start_time"`
	EndTime   string      `json:"end_time"`
	Subject   string      `json:"subject"`
	Room      string      `json:"room"`
	Batch     string      `json:"batch"`
	Type      SessionKind `json:"type"`
	Duration  int         `json:"duration"`
}

type Stats struct {
	TotalSlots        int `json:"total_slots"`
	SubjectsScheduled int `json:"subjects_scheduled"`
	BatchesScheduled  int `json:"batches_scheduled"`
}

const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// Result is the single outcome shape of a generation attempt. Nothing
// propagates out of the pipeline as a raw fault; every failure mode collapses
// into a failed Result with a reason.
type Result struct {
	Status    string    `json:"status"`
	Timetable []Lecture `json:"timetable,omitempty"`
	Stats     *Stats    `json:"stats,omitempty"`
	Reason    string    `json:"reason,omitempty"`

	// Failure carries the structured error for failed results. Callers that
	// only need the wire shape can ignore it.
	Failure *Failure `json:"-"`
}

func successResult(lectures []Lecture, stats Stats) Result {
	return Result{Status: StatusSuccess, Timetable: lectures, Stats: &stats}
}

func failedResult(failure *Failure) Result {
	return Result{Status: StatusFailed, Reason: failure.Reason, Failure: failure}
}
