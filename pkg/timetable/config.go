package timetable

import "time"

// Config collects the policy knobs of the pipeline. The former solver
// variants (strict/relaxed/fixed) differ only in these values.
type Config struct {
	// MaxConsecutiveTheory bounds same-day consecutive hours of one theory
	// subject.
	MaxConsecutiveTheory int
	// DailyHourCap bounds the hours one subject may occupy per day for one
	// attendance group.
	DailyHourCap int
	// TheoryShare is the fraction of a theory+lab subject's weekly hours
	// assigned to its theory part, floored at one hour. The remainder goes to
	// the practical part; the split always conserves the total.
	TheoryShare float64
	// SyncBatches requires per-batch practicals to run simultaneously for all
	// batches, each in its own lab.
	SyncBatches bool
	// Fatigue forbids three consecutive same-day hours of one subject,
	// treating the subject as a teacher proxy.
	Fatigue bool
	// Objective enables the front-loading soft objective. Disabling it turns
	// the solve into a pure satisfaction problem.
	Objective bool

	// TimeLimit bounds the solver's wall clock. Must be finite; a
	// non-positive value falls back to the default.
	TimeLimit time.Duration
	// Workers is the solver's internal parallelism.
	Workers int
	// Seed fixes the solver's random seed for reproducible runs; zero leaves
	// the solver default.
	Seed int

	// DefaultBatches is used when a request does not name its batches.
	DefaultBatches []string
}

func DefaultConfig() Config {
	return Config{
		MaxConsecutiveTheory: 2,
		DailyHourCap:         2,
		TheoryShare:          0.5,
		SyncBatches:          true,
		Fatigue:              false,
		Objective:            true,
		TimeLimit:            180 * time.Second,
		Workers:              4,
		DefaultBatches:       []string{"Batch A", "Batch B", "Batch C"},
	}
}

func (cfg Config) withDefaults() Config {
	base := DefaultConfig()
	if cfg.MaxConsecutiveTheory <= 0 {
		cfg.MaxConsecutiveTheory = base.MaxConsecutiveTheory
	}
	if cfg.DailyHourCap <= 0 {
		cfg.DailyHourCap = base.DailyHourCap
	}
	if cfg.TheoryShare <= 0 || cfg.TheoryShare >= 1 {
		cfg.TheoryShare = base.TheoryShare
	}
	if cfg.TimeLimit <= 0 {
		cfg.TimeLimit = base.TimeLimit
	}
	if cfg.Workers <= 0 {
		cfg.Workers = base.Workers
	}
	if len(cfg.DefaultBatches) == 0 {
		cfg.DefaultBatches = base.DefaultBatches
	}
	return cfg
}
