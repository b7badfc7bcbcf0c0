package report

import "github.com/2beens/endurancetraininglog/internal/traininglog"

// LifetimeActivityTotal is the all-time summary of one activity.
type LifetimeActivityTotal struct {
	Days   map[traininglog.CalendarDay]struct{}
	Phases []traininglog.Phase
	Km     float64
	// Seconds holds the time of the last phase that had one, it is
	// not a sum. Summed durations live in the year buckets.
	Seconds int
}

func newLifetimeActivityTotal() *LifetimeActivityTotal {
	return &LifetimeActivityTotal{
		Days: make(map[traininglog.CalendarDay]struct{}),
	}
}

// Add accounts the phase to this activity. Weight is not looked at.
func (t *LifetimeActivityTotal) Add(p traininglog.Phase) error {
	m, err := measureEffort(p)
	if err != nil {
		return err
	}
	t.record(p, m)
	return nil
}

func (t *LifetimeActivityTotal) record(p traininglog.Phase, m measurement) {
	t.Days[p.CalendarDay()] = struct{}{}
	t.Phases = append(t.Phases, p)
	if m.hasKm {
		t.Km += m.km
	}
	if m.hasTime {
		t.Seconds = m.seconds
	}
}

func (t *LifetimeActivityTotal) DayCount() int {
	return len(t.Days)
}
