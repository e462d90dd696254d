package roster

import (
	"github.com/mhollis/wardshift/pkg/core/model"
)

// ComputeStats derives per-worker statistics from a generated day sequence.
//
// Shift counts cover in-month dates only. The longest streak scans the full
// sequence, padding dates included: a run that starts before the 1st and
// continues into the month is real fatigue the viewer should see, even
// though the padding days do not count toward the monthly totals.
func ComputeStats(days []model.DailySchedule, workers []model.Worker) map[string]model.WorkerStats {
	stats := make(map[string]model.WorkerStats, len(workers))

	for _, w := range workers {
		var s model.WorkerStats
		streak := 0

		for _, day := range days {
			if !day.Includes(w.ID) {
				streak = 0
				continue
			}

			streak++
			if streak > s.LongestStreak {
				s.LongestStreak = streak
			}

			if day.OutsideMonth {
				continue
			}

			s.TotalShifts++
			if contains(day.DayShift, w.ID) {
				s.DayShifts++
			} else {
				s.NightShifts++
			}
		}

		stats[w.ID] = s
	}

	return stats
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
