package roster

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhollis/wardshift/pkg/core/model"
)

func eitherPool(ids ...string) []model.Worker {
	workers := make([]model.Worker, len(ids))
	for i, id := range ids {
		workers[i] = model.Worker{ID: id, Name: "Worker " + id, Preference: model.PreferenceEither}
	}
	return workers
}

func TestGenerate_GridShape(t *testing.T) {
	outcome := Generate(GenerateConfig{
		Year:    2024,
		Month:   time.February,
		Name:    "February 2024",
		Workers: eitherPool("a", "b", "c", "d"),
		Seed:    1,
	})

	v := outcome.Version
	require.NotNil(t, v)
	assert.NotEmpty(t, v.ID)
	assert.Equal(t, "February 2024", v.Name)
	assert.Equal(t, 2024, v.Year)
	assert.Equal(t, time.February, v.Month)

	require.Len(t, v.Days, 35)
	assert.Equal(t, "2024-01-28", v.Days[0].Date)
	assert.Equal(t, "2024-03-02", v.Days[34].Date)
	assert.True(t, v.Days[0].OutsideMonth)
	assert.False(t, v.Days[4].OutsideMonth, "February 1st is in-month")
	assert.False(t, v.Days[32].OutsideMonth, "February 29th is in-month")
	assert.True(t, v.Days[33].OutsideMonth)
}

func TestGenerate_FillsDefaultRequirements(t *testing.T) {
	outcome := Generate(GenerateConfig{
		Year:    2024,
		Month:   time.June,
		Workers: eitherPool("a", "b", "c", "d", "e"),
		Seed:    7,
	})

	assert.True(t, outcome.Complete)
	assert.Empty(t, outcome.Shortfalls)
	for _, day := range outcome.Version.Days {
		assert.Len(t, day.DayShift, 1, "date %s", day.Date)
		assert.Len(t, day.NightShift, 1, "date %s", day.Date)
	}
}

func TestGenerate_NoDoubleBooking(t *testing.T) {
	outcome := Generate(GenerateConfig{
		Year:         2024,
		Month:        time.March,
		Workers:      eitherPool("a", "b", "c"),
		Requirements: model.Requirements{},
		Seed:         3,
	})

	for _, day := range outcome.Version.Days {
		for _, id := range day.NightShift {
			assert.NotContains(t, day.DayShift, id, "date %s", day.Date)
		}
	}
}

func TestGenerate_HonorsWeekdayRequirements(t *testing.T) {
	outcome := Generate(GenerateConfig{
		Year:    2024,
		Month:   time.June,
		Workers: eitherPool("a", "b", "c", "d", "e", "f"),
		Requirements: model.Requirements{
			time.Saturday: {Day: 2, Night: 1},
			time.Sunday:   {Day: 2, Night: 2},
		},
		Seed: 11,
	})

	require.True(t, outcome.Complete)
	for _, day := range outcome.Version.Days {
		date, err := time.ParseInLocation("2006-01-02", day.Date, time.Local)
		require.NoError(t, err)

		switch date.Weekday() {
		case time.Saturday:
			assert.Len(t, day.DayShift, 2, "date %s", day.Date)
			assert.Len(t, day.NightShift, 1, "date %s", day.Date)
		case time.Sunday:
			assert.Len(t, day.DayShift, 2, "date %s", day.Date)
			assert.Len(t, day.NightShift, 2, "date %s", day.Date)
		default:
			assert.Len(t, day.DayShift, 1, "date %s", day.Date)
			assert.Len(t, day.NightShift, 1, "date %s", day.Date)
		}
	}
}

func TestGenerate_RequirementOverride(t *testing.T) {
	two := 2
	zero := 0
	outcome := Generate(GenerateConfig{
		Year:    2024,
		Month:   time.June,
		Workers: eitherPool("a", "b", "c", "d"),
		RequirementOverrides: []RequirementOverride{
			{
				AppliesTo: func(date string) bool { return date == "2024-06-10" },
				Day:       &two,
				Night:     &zero,
			},
		},
		Seed: 5,
	})

	for _, day := range outcome.Version.Days {
		if day.Date != "2024-06-10" {
			continue
		}
		assert.Len(t, day.DayShift, 2)
		assert.Empty(t, day.NightShift)
		return
	}
	t.Fatal("2024-06-10 missing from the grid")
}

func TestGenerate_ManualAssignmentsVerbatim(t *testing.T) {
	outcome := Generate(GenerateConfig{
		Year:    2024,
		Month:   time.June,
		Workers: eitherPool("a", "b", "c"),
		Manual: model.ManualAssignments{
			// Deliberately over-staffed and repeating a worker across both
			// shifts: pins are taken as given, constraints notwithstanding
			"2024-06-15": {DayShift: []string{"a", "b"}, NightShift: []string{"a"}},
		},
		Seed: 9,
	})

	for _, day := range outcome.Version.Days {
		if day.Date != "2024-06-15" {
			continue
		}
		assert.Equal(t, []string{"a", "b"}, day.DayShift)
		assert.Equal(t, []string{"a"}, day.NightShift)
		return
	}
	t.Fatal("2024-06-15 missing from the grid")
}

func TestGenerate_ManualAssignmentOnPaddingDate(t *testing.T) {
	outcome := Generate(GenerateConfig{
		Year:    2024,
		Month:   time.February,
		Workers: eitherPool("a", "b", "c"),
		Manual: model.ManualAssignments{
			"2024-01-29": {DayShift: []string{"c"}, NightShift: []string{"a"}},
		},
		Seed: 2,
	})

	day := outcome.Version.Days[1]
	require.Equal(t, "2024-01-29", day.Date)
	assert.True(t, day.OutsideMonth)
	assert.Equal(t, []string{"c"}, day.DayShift)
	assert.Equal(t, []string{"a"}, day.NightShift)
}

func TestGenerate_HistoryBlocksFirstDayShift(t *testing.T) {
	// Only worker "a" can take day shifts, but the history says "a" closed
	// the previous window on a night shift, so the first grid date's day
	// shift must go unfilled rather than break the adjacency rule.
	pool := []model.Worker{
		{ID: "a", Name: "A", Preference: model.PreferenceDayOnly},
		{ID: "n", Name: "N", Preference: model.PreferenceNightOnly},
	}

	outcome := Generate(GenerateConfig{
		Year:    2024,
		Month:   time.February,
		Workers: pool,
		History: &model.HistoricalContext{
			Counts:            map[string]model.ShiftCounts{},
			ConsecutiveDays:   map[string]int{},
			LastNightShiftIDs: []string{"a"},
		},
		Seed: 1,
	})

	first := outcome.Version.Days[0]
	assert.Empty(t, first.DayShift, "the carried-over night worker cannot open on a day shift")
	assert.False(t, outcome.Complete)
	require.NotEmpty(t, outcome.Shortfalls)
	assert.Equal(t, first.Date, outcome.Shortfalls[0].Date)
	assert.Equal(t, model.DayShift, outcome.Shortfalls[0].Shift)

	// The block applies to the first date only
	second := outcome.Version.Days[1]
	assert.Equal(t, []string{"a"}, second.DayShift)
}

func TestGenerate_HistoryStreakCarriesOver(t *testing.T) {
	// Worker "a" arrives at the cap; "b" arrives fresh. "a" must rest on the
	// first date.
	pool := eitherPool("a", "b")
	outcome := Generate(GenerateConfig{
		Year:    2024,
		Month:   time.June,
		Workers: pool,
		Requirements: model.Requirements{
			// One slot a day keeps the scenario readable
			time.Sunday: {Day: 1, Night: 0}, time.Monday: {Day: 1, Night: 0},
			time.Tuesday: {Day: 1, Night: 0}, time.Wednesday: {Day: 1, Night: 0},
			time.Thursday: {Day: 1, Night: 0}, time.Friday: {Day: 1, Night: 0},
			time.Saturday: {Day: 1, Night: 0},
		},
		History: &model.HistoricalContext{
			Counts:          map[string]model.ShiftCounts{},
			ConsecutiveDays: map[string]int{"a": DefaultMaxConsecutiveDays},
		},
		Seed: 4,
	})

	first := outcome.Version.Days[0]
	assert.Equal(t, []string{"b"}, first.DayShift)
}

func TestGenerate_SameSeedSameSchedule(t *testing.T) {
	cfg := GenerateConfig{
		Year:    2024,
		Month:   time.February,
		Workers: eitherPool("a", "b", "c", "d", "e"),
		Seed:    1234,
	}

	first := Generate(cfg)
	second := Generate(cfg)

	require.Len(t, second.Version.Days, len(first.Version.Days))
	for i := range first.Version.Days {
		assert.Equal(t, first.Version.Days[i].DayShift, second.Version.Days[i].DayShift)
		assert.Equal(t, first.Version.Days[i].NightShift, second.Version.Days[i].NightShift)
	}
	assert.NotEqual(t, first.Version.ID, second.Version.ID, "each run is its own version")
}

func TestGenerate_EmptyPoolReportsEveryShortfall(t *testing.T) {
	outcome := Generate(GenerateConfig{
		Year:  2024,
		Month: time.February,
		Seed:  1,
	})

	assert.False(t, outcome.Complete)
	// One day and one night shortfall per grid date
	assert.Len(t, outcome.Shortfalls, 70)
	for _, sf := range outcome.Shortfalls {
		assert.Zero(t, sf.Assigned)
		assert.Equal(t, 1, sf.Required)
	}
}

func TestGenerate_StatsAttached(t *testing.T) {
	pool := eitherPool("a", "b", "c", "d")
	outcome := Generate(GenerateConfig{
		Year:    2024,
		Month:   time.February,
		Workers: pool,
		Seed:    6,
	})

	require.Len(t, outcome.Version.Stats, len(pool))

	total := 0
	for _, w := range pool {
		s := outcome.Version.Stats[w.ID]
		assert.Equal(t, s.TotalShifts, s.DayShifts+s.NightShifts, "worker %s", w.ID)
		total += s.TotalShifts
	}
	// 29 in-month days, one day and one night worker each
	assert.Equal(t, 58, total)
}
