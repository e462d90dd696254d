package roster

import (
	"math/rand"

	"github.com/mhollis/wardshift/pkg/core/model"
)

// runState is the ephemeral per-run bookkeeping the generator owns
// exclusively for the duration of one Generate call. Nothing else observes
// it mid-run, so plain in-place mutation is safe.
type runState struct {
	// worked maps worker ID to the set of date keys worked so far
	worked map[string]map[string]bool

	// lastShift is the shift type last worked, reset to empty whenever a
	// day is skipped. A value of model.NightShift therefore means the
	// worker's most recent night shift was yesterday.
	lastShift map[string]model.ShiftType

	// consecutive is the current consecutive-working-day counter
	consecutive map[string]int

	// counts accumulates day/night/total shifts used for fairness ranking.
	// Seeded from historical context; incremented only for in-month dates.
	counts map[string]model.ShiftCounts

	// rng drives the ranking tie-break shuffle
	rng *rand.Rand
}

func newRunState(workers []model.Worker, history *model.HistoricalContext, seed int64) *runState {
	st := &runState{
		worked:      make(map[string]map[string]bool, len(workers)),
		lastShift:   make(map[string]model.ShiftType, len(workers)),
		consecutive: make(map[string]int, len(workers)),
		counts:      make(map[string]model.ShiftCounts, len(workers)),
		rng:         rand.New(rand.NewSource(seed)),
	}

	for _, w := range workers {
		st.worked[w.ID] = make(map[string]bool)
		st.consecutive[w.ID] = 0
		st.counts[w.ID] = model.ShiftCounts{}

		if history != nil {
			if c, ok := history.Counts[w.ID]; ok {
				st.counts[w.ID] = c
			}
			if streak, ok := history.ConsecutiveDays[w.ID]; ok {
				st.consecutive[w.ID] = streak
			}
			if history.WorkedLastNight(w.ID) {
				st.lastShift[w.ID] = model.NightShift
			}
		}
	}

	return st
}

// markWorked records a worked date for the worker. Fairness counts only
// move for in-month dates; padding work still extends the streak.
func (st *runState) markWorked(workerID, dateKey string, shift model.ShiftType, inMonth bool) {
	st.worked[workerID][dateKey] = true
	st.consecutive[workerID]++
	st.lastShift[workerID] = shift

	if !inMonth {
		return
	}

	c := st.counts[workerID]
	switch shift {
	case model.DayShift:
		c.Day++
	case model.NightShift:
		c.Night++
	}
	c.Total++
	st.counts[workerID] = c
}

// markRested resets the streak and the last-shift tracker. A gap day breaks
// both the consecutive run and the night-to-day adjacency condition.
func (st *runState) markRested(workerID string) {
	st.consecutive[workerID] = 0
	st.lastShift[workerID] = ""
}

// workedOn reports whether the worker has a recorded shift on the date
func (st *runState) workedOn(workerID, dateKey string) bool {
	return st.worked[workerID][dateKey]
}
