package timetable

import (
	"testing"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"
	cmpb "github.com/google/or-tools/ortools/sat/proto/cpmodel"
	"github.com/stretchr/testify/assert"
)

type constraintCensus struct {
	atMostOne  int
	exactlyOne int
	linear     int
	boolAnd    int
}

func census(model *cmpb.CpModelProto) constraintCensus {
	var c constraintCensus
	for _, constraint := range model.GetConstraints() {
		switch {
		case constraint.GetAtMostOne() != nil:
			c.atMostOne++
		case constraint.GetExactlyOne() != nil:
			c.exactlyOne++
		case constraint.GetLinear() != nil:
			c.linear++
		case constraint.GetBoolAnd() != nil:
			c.boolAnd++
		}
	}
	return c
}

// encodeScenario builds and encodes the reference scenario: one class-wide
// theory subject and one synchronized practical over the four-slot grid, two
// batches, one classroom and two labs.
func encodeScenario(t *testing.T, cfg Config) (*cpmodel.Builder, *varSet, *grid) {
	t.Helper()

	g := buildGrid(twoDayWeek())
	rooms := []Room{
		{Name: "Room 101", Type: RoomClassroom, Capacity: 60},
		{Name: "CS Lab 1", Type: RoomLab, Capacity: 30},
		{Name: "CS Lab 2", Type: RoomLab, Capacity: 30},
	}
	subjects := []Subject{
		{Name: "OS", Type: SubjectTheory, HoursPerWeek: 2},
		{Name: "DB Lab", Type: SubjectPractical, HoursPerWeek: 2},
	}
	batches := []string{"Batch A", "Batch B"}

	units := expandUnits(subjects, rooms, cfg)
	builder := cpmodel.NewCpModelBuilder()
	vs := enumerateVariables(builder, units, batches, g)

	enc := &encoder{builder: builder, vs: vs, units: units, batches: batches, grid: g, cfg: cfg}
	enc.encode()
	return builder, vs, g
}

func TestEncode(t *testing.T) {
	//** Arrange + Act
	builder, vs, _ := encodeScenario(t, DefaultConfig())
	model, err := builder.Model()
	assert.NoError(t, err)

	//** Assert: 6 theory variables plus 2 batches x 2 days x 2 labs block
	// candidates
	assert.Len(t, vs.vars, 14)

	counts := census(model)

	// 12 room no-overlap groups plus 8 batch no-overlap groups (2 days x 2
	// hours x 2 batches; class-wide theory sits inside each batch's group)
	assert.Equal(t, 20, counts.atMostOne)

	// one block pick per practical attendance group
	assert.Equal(t, 2, counts.exactlyOne)

	// 3 exact-hours equalities, 2 synchronization equalities (one per extra
	// batch per candidate start), 6 daily caps; the two-slot days are too
	// short for any theory window
	assert.Equal(t, 11, counts.linear)

	// enumeration already filtered rooms and lunch, nothing to pin false
	assert.Equal(t, 0, counts.boolAnd)
}

func TestEncodeWithoutSynchronization(t *testing.T) {
	//** Arrange
	cfg := DefaultConfig()
	cfg.SyncBatches = false

	//** Act
	builder, _, _ := encodeScenario(t, cfg)
	model, err := builder.Model()
	assert.NoError(t, err)

	//** Assert: only the synchronization equalities disappear
	assert.Equal(t, 9, census(model).linear)
}

func TestTheoryConsecutiveWindows(t *testing.T) {
	//** Arrange: a single 4-hour day gives a 3-hour run nowhere to hide; with
	// the cap at 2 there are two sliding windows of 3 adjacent hours
	cfg := DefaultConfig()
	cfg.SyncBatches = false
	g := buildGrid(WeekConfig{
		StartTime: "09:00", EndTime: "13:00",
		LunchStart: "13:00", LunchEnd: "13:00",
		WorkingDays: []string{"Mon"},
	})
	rooms := []Room{{Name: "Room 101", Type: RoomClassroom, Capacity: 60}}
	units := expandUnits([]Subject{{Name: "OS", Type: SubjectTheory, HoursPerWeek: 3}}, rooms, cfg)

	builder := cpmodel.NewCpModelBuilder()
	vs := enumerateVariables(builder, units, []string{"Batch A"}, g)
	before, err := builder.Model()
	assert.NoError(t, err)
	baseline := census(before)

	//** Act
	enc := &encoder{builder: builder, vs: vs, units: units, batches: []string{"Batch A"}, grid: g, cfg: cfg}
	enc.sessionShape()

	//** Assert
	after, err := builder.Model()
	assert.NoError(t, err)
	assert.Equal(t, baseline.linear+2, census(after).linear)
}

func TestDailyHourCap(t *testing.T) {
	capCount := func(t *testing.T, hours int, limit int) int {
		t.Helper()

		//** Arrange: a single day of the given length, one theory subject
		g := buildGrid(WeekConfig{
			StartTime: "09:00", EndTime: formatHour(9 + hours),
			LunchStart: "09:00", LunchEnd: "09:00",
			WorkingDays: []string{"Mon"},
		})
		cfg := DefaultConfig()
		cfg.DailyHourCap = limit
		rooms := []Room{{Name: "Room 101", Type: RoomClassroom, Capacity: 60}}
		units := expandUnits([]Subject{{Name: "OS", Type: SubjectTheory, HoursPerWeek: 2}}, rooms, cfg)

		builder := cpmodel.NewCpModelBuilder()
		vs := enumerateVariables(builder, units, []string{"Batch A"}, g)
		enc := &encoder{builder: builder, vs: vs, units: units, batches: []string{"Batch A"}, grid: g, cfg: cfg}

		//** Act
		enc.dailyHourCap()
		model, err := builder.Model()
		assert.NoError(t, err)
		return census(model).linear
	}

	t.Run("CappedWhenAttainableExceedsLimit", func(t *testing.T) {
		//** Assert: three hours of candidates against a cap of 2
		assert.Equal(t, 1, capCount(t, 3, 2))
	})

	t.Run("TwoHourBlockCaughtByCapOfOne", func(t *testing.T) {
		//** Assert: even the lone two-hour candidate must be bounded
		assert.Equal(t, 1, capCount(t, 2, 1))
	})

	t.Run("SkippedWhenLimitUnreachable", func(t *testing.T) {
		//** Assert: a one-hour day cannot exceed a cap of 2
		assert.Equal(t, 0, capCount(t, 1, 2))
	})
}

func TestObjective(t *testing.T) {
	t.Run("CoversEveryVariable", func(t *testing.T) {
		//** Arrange
		g := buildGrid(twoDayWeek())
		rooms := []Room{{Name: "Room 101", Type: RoomClassroom, Capacity: 60}}
		units := expandUnits([]Subject{{Name: "OS", Type: SubjectTheory, HoursPerWeek: 2}}, rooms, DefaultConfig())
		builder := cpmodel.NewCpModelBuilder()
		vs := enumerateVariables(builder, units, []string{"Batch A"}, g)

		//** Act
		buildObjective(builder, vs, g)
		model, err := builder.Model()

		//** Assert
		assert.NoError(t, err)
		assert.NotNil(t, model.GetObjective())
		assert.Len(t, model.GetObjective().GetVars(), len(vs.vars))
	})

	t.Run("EarlierDaysWeighMore", func(t *testing.T) {
		//** Arrange
		g := buildGrid(twoDayWeek())
		rooms := []Room{{Name: "Room 101", Type: RoomClassroom, Capacity: 60}}
		units := expandUnits([]Subject{{Name: "OS", Type: SubjectTheory, HoursPerWeek: 2}}, rooms, DefaultConfig())
		builder := cpmodel.NewCpModelBuilder()
		vs := enumerateVariables(builder, units, []string{"Batch A"}, g)

		//** Act
		buildObjective(builder, vs, g)
		model, err := builder.Model()
		assert.NoError(t, err)

		//** Assert: maximization is stored negated with a -1 scaling factor, so
		// compare magnitudes; any Monday variable must outweigh any Tuesday one
		objective := model.GetObjective()
		assert.Equal(t, float64(-1), objective.GetScalingFactor())

		weights := make(map[int]int64, len(vs.vars))
		for i, varIndex := range objective.GetVars() {
			weights[int(varIndex)] = -objective.GetCoeffs()[i]
		}
		for _, v := range vs.vars {
			for _, w := range vs.vars {
				if v.day == "Mon" && w.day == "Tue" {
					assert.Greater(t, weights[v.id], weights[w.id])
				}
			}
		}
	})
}
