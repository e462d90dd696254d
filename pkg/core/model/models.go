package model

import (
	"time"
)

type ShiftPreference string

const (
	PreferenceDayOnly   ShiftPreference = "day"
	PreferenceNightOnly ShiftPreference = "night"
	PreferenceEither    ShiftPreference = "either"
)

func (p ShiftPreference) IsValid() bool {
	return p == PreferenceDayOnly || p == PreferenceNightOnly || p == PreferenceEither
}

// AllowsDay reports whether a worker with this preference may take a day shift
func (p ShiftPreference) AllowsDay() bool {
	return p == PreferenceDayOnly || p == PreferenceEither
}

// AllowsNight reports whether a worker with this preference may take a night shift
func (p ShiftPreference) AllowsNight() bool {
	return p == PreferenceNightOnly || p == PreferenceEither
}

type ShiftType string

const (
	DayShift   ShiftType = "day"
	NightShift ShiftType = "night"
)

// Worker represents a member of the scheduling pool.
// The core reads workers and never mutates them.
type Worker struct {
	ID   string
	Name string

	// Preference restricts which shift types the worker may be assigned
	Preference ShiftPreference

	// DaysOff is the set of weekdays the worker is never scheduled on
	DaysOff []time.Weekday

	// TargetShifts is the optional monthly quota. Nil means no target;
	// targets bias ranking but are never enforced as a hard cap.
	TargetShifts *int
}

// HasDayOff reports whether the worker is unavailable on the given weekday
func (w Worker) HasDayOff(day time.Weekday) bool {
	for _, off := range w.DaysOff {
		if off == day {
			return true
		}
	}
	return false
}

// DayRequirement is the required headcount for one weekday
type DayRequirement struct {
	Day   int
	Night int
}

// Requirements maps a weekday to its required headcounts.
// Missing weekdays default to one worker per shift.
type Requirements map[time.Weekday]DayRequirement

// For returns the requirement for the given weekday, defaulting to {1, 1}
func (r Requirements) For(day time.Weekday) DayRequirement {
	if req, ok := r[day]; ok {
		return req
	}
	return DayRequirement{Day: 1, Night: 1}
}

// ShiftCounts accumulates per-worker shift totals
type ShiftCounts struct {
	Day   int
	Night int
	Total int
}

// HistoricalContext carries per-worker state across a month boundary so the
// generator can honor constraints that span it (streaks, the night-to-day
// adjacency rule).
type HistoricalContext struct {
	// Counts holds accumulated day/night/total shifts per worker ID.
	// Every worker in the current pool has an entry, zero if absent
	// from the history source.
	Counts map[string]ShiftCounts

	// ConsecutiveDays is each worker's consecutive-working-day count as of
	// the end of the historical window
	ConsecutiveDays map[string]int

	// LastNightShiftIDs are the workers on the night shift of the final
	// historical day. They must not open the new schedule on a day shift.
	LastNightShiftIDs []string

	// Source labels where the context came from (file name, manual entry)
	Source string

	// UnresolvedCells counts grid cells whose worker name matched nobody
	// in the current pool. Parsing tolerates these silently; callers may
	// want to surface the count.
	UnresolvedCells int
}

// WorkedLastNight reports whether the worker closed the historical window on
// a night shift
func (h *HistoricalContext) WorkedLastNight(workerID string) bool {
	if h == nil {
		return false
	}
	for _, id := range h.LastNightShiftIDs {
		if id == workerID {
			return true
		}
	}
	return false
}

// ManualAssignment pins one date's shifts to explicit worker IDs,
// bypassing filtering and ranking entirely
type ManualAssignment struct {
	DayShift   []string
	NightShift []string
}

// ManualAssignments maps ISO dates (YYYY-MM-DD) to their pinned assignments
type ManualAssignments map[string]ManualAssignment

// DailySchedule is one calendar date's assignment
type DailySchedule struct {
	// Date is the ISO date key (YYYY-MM-DD, local calendar)
	Date string

	// DayShift and NightShift are ordered worker IDs
	DayShift   []string
	NightShift []string

	// OutsideMonth marks padding dates included only to complete
	// calendar weeks
	OutsideMonth bool
}

// Includes reports whether the worker is on either shift of this date
func (d DailySchedule) Includes(workerID string) bool {
	for _, id := range d.DayShift {
		if id == workerID {
			return true
		}
	}
	for _, id := range d.NightShift {
		if id == workerID {
			return true
		}
	}
	return false
}

// WorkerStats summarizes one worker's load over a generated schedule.
// Shift counts cover in-month dates only; the longest streak scans padding
// dates too, because fatigue crossing the month boundary is real even when
// it does not count toward the quota.
type WorkerStats struct {
	TotalShifts   int
	DayShifts     int
	NightShifts   int
	LongestStreak int
}

// ScheduleVersion is an immutable generation result. The generator never
// mutates a version after returning it; edits are the caller's concern.
type ScheduleVersion struct {
	ID        string
	CreatedAt time.Time
	Name      string
	Year      int
	Month     time.Month
	Days      []DailySchedule
	Stats     map[string]WorkerStats
}
