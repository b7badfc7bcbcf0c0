package report

import (
	"cmp"
	"slices"

	"github.com/2beens/endurancetraininglog/internal/duration"
	"github.com/2beens/endurancetraininglog/internal/traininglog"
)

// PhasesByDistance returns a new slice with the phases of the activity,
// longest first. Phases without a distance go last, keeping their order.
// The input slice is left untouched.
func PhasesByDistance(phases []traininglog.Phase, activity string) []traininglog.Phase {
	return rankDescending(phases, activity, distanceKey)
}

// PhasesByTime returns a new slice with the phases of the activity,
// longest duration first. Phases without a time go last.
func PhasesByTime(phases []traininglog.Phase, activity string) []traininglog.Phase {
	return rankDescending(phases, activity, timeKey)
}

func distanceKey(p traininglog.Phase) (float64, bool) {
	if !p.HasDistance() {
		return 0, false
	}
	km, err := ParseDistanceKm(p.Distance)
	if err != nil {
		return 0, false
	}
	return km, true
}

func timeKey(p traininglog.Phase) (float64, bool) {
	if !p.HasTime() {
		return 0, false
	}
	secs, err := duration.ParseSeconds(p.Time)
	if err != nil {
		return 0, false
	}
	return float64(secs), true
}

func rankDescending(
	phases []traininglog.Phase,
	activity string,
	key func(traininglog.Phase) (float64, bool),
) []traininglog.Phase {
	var result []traininglog.Phase
	for _, p := range phases {
		if p.Activity == activity {
			result = append(result, p)
		}
	}

	slices.SortStableFunc(result, func(a, b traininglog.Phase) int {
		keyA, okA := key(a)
		keyB, okB := key(b)
		switch {
		case okA && okB:
			return cmp.Compare(keyB, keyA)
		case okA:
			return -1
		case okB:
			return 1
		default:
			return 0
		}
	})

	return result
}
