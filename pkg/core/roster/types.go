// Package roster implements the monthly schedule generator: a greedy,
// seed-deterministic heuristic that fills day and night shifts across a
// full-week calendar grid, subject to hard rest/availability constraints
// and soft fairness and pacing goals.
package roster

import (
	"time"

	"github.com/mhollis/wardshift/pkg/core/model"
)

const (
	// DefaultMaxConsecutiveDays is the consecutive-working-day cap: a worker
	// already at the cap is excluded from extending the run further
	DefaultMaxConsecutiveDays = 5

	// eitherDayShiftBonus is subtracted from an either-preference worker's
	// total when comparing candidates for a day shift, if the option is on
	eitherDayShiftBonus = 2

	// pacingTolerance is how far a worker's actual count may drift from the
	// interpolated expected count before they are bucketed as urgent or
	// cool-down
	pacingTolerance = 0.8
)

// Options tune the generation heuristics
type Options struct {
	// PrioritizeEitherForDay biases either-preference workers toward day
	// shifts, keeping day-only and night-only workers free for the slots
	// only they can fill
	PrioritizeEitherForDay bool

	// MaxConsecutiveDays overrides the consecutive-working-day cap.
	// Zero means DefaultMaxConsecutiveDays.
	MaxConsecutiveDays int
}

// RequirementOverride adjusts the required headcount for dates matched by
// AppliesTo, taking precedence over the weekday requirements table
type RequirementOverride struct {
	// AppliesTo returns true if this override applies to the given ISO date
	AppliesTo func(date string) bool

	// Day and Night override the respective headcounts when set
	Day   *int
	Night *int
}

// GenerateConfig contains everything one generation run needs. The
// generator reads the config and never mutates it.
type GenerateConfig struct {
	// Year and Month identify the target month
	Year  int
	Month time.Month

	// Name is the human label stored on the resulting version
	Name string

	// Workers is the scheduling pool
	Workers []model.Worker

	// Requirements is the weekday headcount table (missing entries
	// default to one worker per shift)
	Requirements model.Requirements

	// RequirementOverrides adjust headcounts for specific dates
	RequirementOverrides []RequirementOverride

	// History seeds running counts, streaks, and the night-to-day
	// adjacency rule across the month boundary. Nil means a cold start.
	History *model.HistoricalContext

	// Manual pins specific dates to explicit assignments, bypassing
	// filtering and ranking for those dates entirely
	Manual model.ManualAssignments

	// Options tune the ranking heuristics
	Options Options

	// Seed drives the ranking tie-break. The same config and seed always
	// produce the same schedule.
	Seed int64
}

// Shortfall records a slot the generator could not fill to its required
// headcount. Infeasibility is reported, never raised as an error.
type Shortfall struct {
	Date     string
	Shift    model.ShiftType
	Required int
	Assigned int
}

// Outcome is the result of one generation run
type Outcome struct {
	// Version is the generated schedule. Always populated; the generator
	// completes for any valid input.
	Version *model.ScheduleVersion

	// Shortfalls lists under-filled slots, in date order
	Shortfalls []Shortfall

	// Complete is true when every generated slot reached its required
	// headcount
	Complete bool
}
