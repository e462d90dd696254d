package roster

import (
	"fmt"
	"time"

	"github.com/mhollis/wardshift/pkg/core/calendar"
	"github.com/mhollis/wardshift/pkg/core/model"
)

// ScheduleViolation describes one rule broken by a finished schedule
type ScheduleViolation struct {
	DayIndex    int
	Date        string
	Rule        string
	Description string
}

// VerifySchedule audits a generated schedule against the hard constraints
// and reports every violation found. Generation itself never breaks these
// rules, but manual assignments bypass them by design, so callers use the
// report to warn about what the pins introduced.
func VerifySchedule(version *model.ScheduleVersion, workers []model.Worker, opts Options) []ScheduleViolation {
	maxConsecutive := opts.MaxConsecutiveDays
	if maxConsecutive <= 0 {
		maxConsecutive = DefaultMaxConsecutiveDays
	}

	workersByID := make(map[string]model.Worker, len(workers))
	for _, w := range workers {
		workersByID[w.ID] = w
	}

	var violations []ScheduleViolation

	for i, day := range version.Days {
		// Nobody works both shifts of the same date
		onDay := make(map[string]bool, len(day.DayShift))
		for _, id := range day.DayShift {
			onDay[id] = true
		}
		for _, id := range day.NightShift {
			if onDay[id] {
				violations = append(violations, ScheduleViolation{
					DayIndex: i, Date: day.Date, Rule: "DoubleBooking",
					Description: fmt.Sprintf("worker %s is on both shifts", workerLabel(workersByID, id)),
				})
			}
		}

		// No day shift immediately after a night shift
		if i > 0 {
			prev := version.Days[i-1]
			for _, id := range day.DayShift {
				if contains(prev.NightShift, id) {
					violations = append(violations, ScheduleViolation{
						DayIndex: i, Date: day.Date, Rule: "DayAfterNight",
						Description: fmt.Sprintf("worker %s has a day shift directly after the %s night shift", workerLabel(workersByID, id), prev.Date),
					})
				}
			}
		}

		// Days off are honored
		if weekday, ok := parseWeekday(day.Date); ok {
			for _, id := range append(append([]string(nil), day.DayShift...), day.NightShift...) {
				w, known := workersByID[id]
				if known && w.HasDayOff(weekday) {
					violations = append(violations, ScheduleViolation{
						DayIndex: i, Date: day.Date, Rule: "DayOff",
						Description: fmt.Sprintf("worker %s is scheduled on their %s off", workerLabel(workersByID, id), weekday),
					})
				}
			}
		}
	}

	// Consecutive-day cap, scanned across the whole grid
	for _, w := range workers {
		streak := 0
		for i, day := range version.Days {
			if !day.Includes(w.ID) {
				streak = 0
				continue
			}
			streak++
			if streak == maxConsecutive+1 {
				violations = append(violations, ScheduleViolation{
					DayIndex: i, Date: day.Date, Rule: "ConsecutiveDays",
					Description: fmt.Sprintf("worker %s exceeds %d consecutive working days", w.Name, maxConsecutive),
				})
			}
		}
	}

	return violations
}

func workerLabel(workersByID map[string]model.Worker, id string) string {
	if w, ok := workersByID[id]; ok {
		return w.Name
	}
	return id
}

func parseWeekday(dateKey string) (time.Weekday, bool) {
	t, err := time.ParseInLocation(calendar.ISODate, dateKey, time.Local)
	if err != nil {
		return 0, false
	}
	return t.Weekday(), true
}
