package roster

import (
	"sort"

	"github.com/mhollis/wardshift/pkg/core/calendar"
	"github.com/mhollis/wardshift/pkg/core/model"
)

// slot is one (date, shift type) pair requiring a headcount of workers
type slot struct {
	day   calendar.Day
	shift model.ShiftType

	// count is the required headcount
	count int

	// exclude holds worker IDs barred from this slot outright: already
	// assigned elsewhere on the date, or carried over from history on the
	// first date of the run
	exclude map[string]bool

	// dayPosition is the day-of-month position used for pacing, clamped
	// to [1, daysInMonth] so padding dates interpolate sanely
	dayPosition int

	// daysInMonth is the length of the target month
	daysInMonth int
}

// pickShiftWorkers filters the pool by the hard constraints, ranks the
// survivors by the fairness/pacing comparator, and returns up to count
// worker IDs. An impossible slot returns fewer than requested; it never
// fails.
func pickShiftWorkers(s slot, st *runState, pool []model.Worker, opts Options) []string {
	maxConsecutive := opts.MaxConsecutiveDays
	if maxConsecutive <= 0 {
		maxConsecutive = DefaultMaxConsecutiveDays
	}

	prevKey := s.day.Date.AddDate(0, 0, -1).Format(calendar.ISODate)

	candidates := make([]model.Worker, 0, len(pool))
	for _, w := range pool {
		if !eligible(w, s, st, maxConsecutive, prevKey) {
			continue
		}
		candidates = append(candidates, w)
	}

	// Seeded shuffle, then a stable multi-key sort: candidates the
	// comparator cannot separate keep their shuffled order, so ties break
	// randomly but reproducibly for a given seed
	st.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	sort.SliceStable(candidates, func(i, j int) bool {
		return rankBefore(candidates[i], candidates[j], s, st, opts)
	})

	if len(candidates) > s.count {
		candidates = candidates[:s.count]
	}

	ids := make([]string, len(candidates))
	for i, w := range candidates {
		ids[i] = w.ID
	}
	return ids
}

// eligible applies the hard constraints. A worker violating any of them is
// excluded from the slot, not just deprioritized.
func eligible(w model.Worker, s slot, st *runState, maxConsecutive int, prevKey string) bool {
	if s.exclude[w.ID] {
		return false
	}

	switch s.shift {
	case model.DayShift:
		if !w.Preference.AllowsDay() {
			return false
		}
	case model.NightShift:
		if !w.Preference.AllowsNight() {
			return false
		}
	}

	if w.HasDayOff(s.day.Weekday) {
		return false
	}

	// A worker already at the cap must rest before working again
	if st.consecutive[w.ID] >= maxConsecutive {
		return false
	}

	// No day shift immediately after a night shift. lastShift survives
	// only across worked days, so a night value means the most recent
	// night shift was the immediately preceding date.
	if s.shift == model.DayShift &&
		st.lastShift[w.ID] == model.NightShift &&
		st.workedOn(w.ID, prevKey) {
		return false
	}

	return true
}

// rankBefore is the multi-key comparator: true means a is assigned before b.
// Each tier only breaks ties left by the previous one.
func rankBefore(a, b model.Worker, s slot, st *runState, opts Options) bool {
	// Tier 1: workers who already met a positive target rank after those
	// who have not. Workers without a target count as not met.
	aMet := quotaMet(a, st)
	bMet := quotaMet(b, st)
	if aMet != bMet {
		return !aMet
	}

	// Tier 2: pacing category, urgent before on-pace before cool-down
	aPace := pacingBucket(a, s, st)
	bPace := pacingBucket(b, s, st)
	if aPace != bPace {
		return aPace < bPace
	}

	// Tier 3: fewer total shifts first, with an optional bias that pulls
	// either-preference workers into day shifts
	aTotal := adjustedTotal(a, s, st, opts)
	bTotal := adjustedTotal(b, s, st, opts)
	if aTotal != bTotal {
		return aTotal < bTotal
	}

	// Tier 4: between two either-preference workers, fewer shifts of this
	// slot's own type first
	if a.Preference == model.PreferenceEither && b.Preference == model.PreferenceEither {
		aType := typeCount(a.ID, s.shift, st)
		bType := typeCount(b.ID, s.shift, st)
		if aType != bType {
			return aType < bType
		}
	}

	// Remaining ties keep their pre-sort shuffled order
	return false
}

func quotaMet(w model.Worker, st *runState) bool {
	if w.TargetShifts == nil || *w.TargetShifts <= 0 {
		return false
	}
	return st.counts[w.ID].Total >= *w.TargetShifts
}

// Pacing buckets, ordered by assignment priority
const (
	paceUrgent   = 0 // behind the interpolated target
	paceOnTrack  = 1
	paceCoolDown = 2 // ahead of the interpolated target
)

// pacingBucket compares a worker's actual count against the linearly
// interpolated expected count for their target and the elapsed days.
// Workers without a target are always on track.
func pacingBucket(w model.Worker, s slot, st *runState) int {
	if w.TargetShifts == nil || *w.TargetShifts <= 0 {
		return paceOnTrack
	}

	expected := float64(*w.TargetShifts) * float64(s.dayPosition) / float64(s.daysInMonth)
	drift := float64(st.counts[w.ID].Total) - expected

	switch {
	case drift < -pacingTolerance:
		return paceUrgent
	case drift > pacingTolerance:
		return paceCoolDown
	default:
		return paceOnTrack
	}
}

func adjustedTotal(w model.Worker, s slot, st *runState, opts Options) int {
	total := st.counts[w.ID].Total
	if opts.PrioritizeEitherForDay &&
		s.shift == model.DayShift &&
		w.Preference == model.PreferenceEither {
		total -= eitherDayShiftBonus
	}
	return total
}

func typeCount(workerID string, shift model.ShiftType, st *runState) int {
	if shift == model.DayShift {
		return st.counts[workerID].Day
	}
	return st.counts[workerID].Night
}
