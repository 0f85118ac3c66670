package timetable

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckFeasibility(t *testing.T) {
	//** Arrange
	rooms := []Room{
		{Name: "Room 101", Type: RoomClassroom, Capacity: 60},
		{Name: "CS Lab 1", Type: RoomLab, Capacity: 30},
	}
	batches := []string{"Batch A", "Batch B"}

	t.Run("FitsComfortably", func(t *testing.T) {
		//** Arrange
		g := buildGrid(standardWeek())
		units := expandUnits([]Subject{{Name: "OS", Type: SubjectTheory, HoursPerWeek: 3}}, rooms, DefaultConfig())

		//** Act
		failure := checkFeasibility(units, batches, g)

		//** Assert
		assert.Nil(t, failure)
	})

	t.Run("NoWorkingDays", func(t *testing.T) {
		//** Arrange
		cfg := standardWeek()
		cfg.WorkingDays = nil
		g := buildGrid(cfg)

		//** Act
		failure := checkFeasibility(nil, batches, g)

		//** Assert
		assert.NotNil(t, failure)
		assert.Equal(t, FailureCapacity, failure.Kind)
		assert.Contains(t, failure.Reason, "no working days")
	})

	t.Run("LunchSwallowsTheDay", func(t *testing.T) {
		//** Arrange
		cfg := standardWeek()
		cfg.LunchStart = "09:00"
		cfg.LunchEnd = "16:00"
		g := buildGrid(cfg)

		//** Act
		failure := checkFeasibility(nil, batches, g)

		//** Assert
		assert.NotNil(t, failure)
		assert.Contains(t, failure.Reason, "no available time slots")
	})

	t.Run("NoBatches", func(t *testing.T) {
		//** Arrange
		g := buildGrid(standardWeek())

		//** Act
		failure := checkFeasibility(nil, nil, g)

		//** Assert
		assert.NotNil(t, failure)
		assert.Contains(t, failure.Reason, "no batches")
	})

	t.Run("OverLoadedBatch", func(t *testing.T) {
		//** Arrange: two days of two hours each = 4 slots, 8 required hours
		cfg := standardWeek()
		cfg.StartTime = "09:00"
		cfg.EndTime = "11:00"
		cfg.LunchStart = "11:00"
		cfg.LunchEnd = "11:00"
		cfg.WorkingDays = []string{"Mon", "Tue"}
		g := buildGrid(cfg)

		subjects := []Subject{
			{Name: "OS", Type: SubjectTheory, HoursPerWeek: 2},
			{Name: "DB", Type: SubjectTheory, HoursPerWeek: 2},
			{Name: "Networks", Type: SubjectTheory, HoursPerWeek: 2},
			{Name: "Compilers", Type: SubjectTheory, HoursPerWeek: 2},
		}
		units := expandUnits(subjects, rooms, DefaultConfig())

		//** Act
		failure := checkFeasibility(units, batches, g)

		//** Assert
		assert.NotNil(t, failure)
		assert.Equal(t, FailureCapacity, failure.Kind)
		assert.Contains(t, failure.Reason, "insufficient capacity")
	})
}
