package roster

import (
	"time"

	"github.com/google/uuid"

	"github.com/mhollis/wardshift/pkg/core/calendar"
	"github.com/mhollis/wardshift/pkg/core/model"
)

// Generate runs one scheduling pass over the target month's full-week grid
// and returns the resulting schedule version plus a shortfall report.
//
// Generation always completes: an empty pool or an infeasible slot produces
// under-filled shift lists, never an error. Inputs are read, never mutated,
// so callers may re-generate with different parameters freely.
func Generate(cfg GenerateConfig) *Outcome {
	grid := calendar.MonthGrid(cfg.Year, cfg.Month)
	daysInMonth := calendar.DaysInMonth(cfg.Year, cfg.Month)
	st := newRunState(cfg.Workers, cfg.History, cfg.Seed)

	days := make([]model.DailySchedule, 0, len(grid))
	var shortfalls []Shortfall

	for i, day := range grid {
		req := resolveRequirement(cfg, day)

		var dayIDs, nightIDs []string
		if manual, pinned := cfg.Manual[day.Key]; pinned {
			// Pinned dates are taken verbatim: no filtering, no ranking,
			// padding dates included
			dayIDs = append([]string(nil), manual.DayShift...)
			nightIDs = append([]string(nil), manual.NightShift...)
		} else {
			// The carried-over adjacency rule: workers who closed the
			// historical window on a night shift cannot open this
			// schedule on a day shift
			forbidden := make(map[string]bool)
			if i == 0 && cfg.History != nil {
				for _, id := range cfg.History.LastNightShiftIDs {
					forbidden[id] = true
				}
			}

			daySlot := slot{
				day:         day,
				shift:       model.DayShift,
				count:       req.Day,
				exclude:     forbidden,
				dayPosition: pacingPosition(day, daysInMonth),
				daysInMonth: daysInMonth,
			}
			dayIDs = pickShiftWorkers(daySlot, st, cfg.Workers, cfg.Options)

			// Night shift excludes the day picks: nobody works both
			// shifts of the same date
			exclude := make(map[string]bool, len(dayIDs))
			for _, id := range dayIDs {
				exclude[id] = true
			}

			nightSlot := daySlot
			nightSlot.shift = model.NightShift
			nightSlot.count = req.Night
			nightSlot.exclude = exclude
			nightIDs = pickShiftWorkers(nightSlot, st, cfg.Workers, cfg.Options)

			if len(dayIDs) < req.Day {
				shortfalls = append(shortfalls, Shortfall{
					Date: day.Key, Shift: model.DayShift,
					Required: req.Day, Assigned: len(dayIDs),
				})
			}
			if len(nightIDs) < req.Night {
				shortfalls = append(shortfalls, Shortfall{
					Date: day.Key, Shift: model.NightShift,
					Required: req.Night, Assigned: len(nightIDs),
				})
			}
		}

		updateWorkerState(st, cfg.Workers, day, dayIDs, nightIDs)

		days = append(days, model.DailySchedule{
			Date:         day.Key,
			DayShift:     dayIDs,
			NightShift:   nightIDs,
			OutsideMonth: !day.InMonth,
		})
	}

	version := &model.ScheduleVersion{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		Name:      cfg.Name,
		Year:      cfg.Year,
		Month:     cfg.Month,
		Days:      days,
		Stats:     ComputeStats(days, cfg.Workers),
	}

	return &Outcome{
		Version:    version,
		Shortfalls: shortfalls,
		Complete:   len(shortfalls) == 0,
	}
}

// resolveRequirement returns the headcounts for the date: the weekday table
// first, then any matching requirement override on top
func resolveRequirement(cfg GenerateConfig, day calendar.Day) model.DayRequirement {
	req := cfg.Requirements.For(day.Weekday)

	for _, override := range cfg.RequirementOverrides {
		if override.AppliesTo == nil || !override.AppliesTo(day.Key) {
			continue
		}
		if override.Day != nil {
			req.Day = *override.Day
		}
		if override.Night != nil {
			req.Night = *override.Night
		}
	}

	return req
}

// updateWorkerState applies one date's assignments to the running state for
// every worker in the pool. Workers off today have their streak and
// last-shift tracker reset.
func updateWorkerState(st *runState, pool []model.Worker, day calendar.Day, dayIDs, nightIDs []string) {
	onDay := make(map[string]bool, len(dayIDs))
	for _, id := range dayIDs {
		onDay[id] = true
	}
	onNight := make(map[string]bool, len(nightIDs))
	for _, id := range nightIDs {
		onNight[id] = true
	}

	for _, w := range pool {
		switch {
		case onDay[w.ID]:
			st.markWorked(w.ID, day.Key, model.DayShift, day.InMonth)
		case onNight[w.ID]:
			st.markWorked(w.ID, day.Key, model.NightShift, day.InMonth)
		default:
			st.markRested(w.ID)
		}
	}
}

// pacingPosition clamps a grid date to a day-of-month position inside the
// target month, so leading padding interpolates from day 1 and trailing
// padding from the final day
func pacingPosition(day calendar.Day, daysInMonth int) int {
	if day.InMonth {
		return day.Date.Day()
	}
	if day.Date.Day() > 7 {
		// Leading padding: tail of the previous month
		return 1
	}
	return daysInMonth
}
