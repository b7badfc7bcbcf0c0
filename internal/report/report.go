package report

import (
	"context"
	"errors"
	"slices"
	"sort"
	"time"

	"github.com/2beens/endurancetraininglog/internal/telemetry/metrics"
	"github.com/2beens/endurancetraininglog/internal/telemetry/tracing"
	"github.com/2beens/endurancetraininglog/internal/traininglog"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

var ErrAlreadyCalculated = errors.New("report already calculated")

// Report performs the analytics over an aggregated training log.
// It is built once per run and is read-only after Calculate.
type Report struct {
	phases         []traininglog.Phase
	totals         *Totals
	metricsManager *metrics.Manager
}

func NewReport(phases []traininglog.Phase, metricsManager *metrics.Manager) *Report {
	return &Report{
		phases:         slices.Clone(phases),
		metricsManager: metricsManager,
	}
}

// Calculate walks all phases exactly once. On error nothing is kept.
func (r *Report) Calculate(ctx context.Context) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "report.calculate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("phases", len(r.phases)))

	if r.totals != nil {
		return ErrAlreadyCalculated
	}

	start := time.Now()
	log.Printf("processing all %d phases ...", len(r.phases))

	totals := NewTotals()
	for _, p := range r.phases {
		if err := ctx.Err(); err != nil {
			return err
		}
		log.Tracef("  %d/%d/%d %s", p.Year, p.Month, p.Day, p.Activity)
		if err := totals.Ingest(p); err != nil {
			return err
		}
	}
	r.totals = totals

	r.observe(time.Since(start))

	log.Debugf("totals per year: %d years, %d activity types", len(totals.ByYear), len(totals.ActivityTypes))
	log.Debugf("active days: %d, sick days: %d", len(totals.ActiveDays), len(totals.SickDays))

	return nil
}

func (r *Report) observe(took time.Duration) {
	if r.metricsManager == nil {
		return
	}
	for activity, lifetime := range r.totals.Lifetime {
		r.metricsManager.CounterPhases.WithLabelValues(activity).Add(float64(len(lifetime.Phases)))
	}
	r.metricsManager.CounterSickPhases.Add(float64(r.totals.sickPhases))
	r.metricsManager.GaugeActivityTypes.Set(float64(len(r.totals.ActivityTypes)))
	r.metricsManager.GaugeYears.Set(float64(len(r.totals.ByYear)))
	r.metricsManager.HistCalculationDuration.Observe(took.Seconds())
}

func (r *Report) Calculated() bool {
	return r.totals != nil
}

func (r *Report) state() *Totals {
	if r.totals == nil {
		// not calculated yet, behave as an empty log
		return NewTotals()
	}
	return r.totals
}

// Phases returns a copy of all phases in load order.
func (r *Report) Phases() []traininglog.Phase {
	return slices.Clone(r.phases)
}

func (r *Report) ByYear() map[int]*Bucket {
	return r.state().ByYear
}

func (r *Report) ByYearMonth() map[int]map[int]*Bucket {
	return r.state().ByYearMonth
}

func (r *Report) ByYearWeek() map[int]map[int]*Bucket {
	return r.state().ByYearWeek
}

// MonthTotal is the distance of all activities in the month.
func (r *Report) MonthTotal(year, month int) float64 {
	return r.Month(year, month).TotalKm()
}

func (r *Report) WeekTotal(year, week int) float64 {
	return r.Week(year, week).TotalKm()
}

func (r *Report) Year(year int) *Bucket {
	return r.state().ByYear[year]
}

func (r *Report) Month(year, month int) *Bucket {
	return r.state().ByYearMonth[year][month]
}

func (r *Report) Week(year, week int) *Bucket {
	return r.state().ByYearWeek[year][week]
}

// Years returns the years with at least one training phase, ascending.
func (r *Report) Years() []int {
	years := make([]int, 0, len(r.state().ByYear))
	for year := range r.state().ByYear {
		years = append(years, year)
	}
	sort.Ints(years)
	return years
}

// Weeks returns the ISO weeks of the year with at least one phase, ascending.
func (r *Report) Weeks(year int) []int {
	byWeek := r.state().ByYearWeek[year]
	weeks := make([]int, 0, len(byWeek))
	for week := range byWeek {
		weeks = append(weeks, week)
	}
	sort.Ints(weeks)
	return weeks
}

// ActivityTypes returns the activity names found in the log, sorted.
func (r *Report) ActivityTypes() []string {
	types := make([]string, 0, len(r.state().ActivityTypes))
	for activity := range r.state().ActivityTypes {
		types = append(types, activity)
	}
	sort.Strings(types)
	return types
}

func (r *Report) Lifetime() map[string]*LifetimeActivityTotal {
	return r.state().Lifetime
}

func (r *Report) LifetimeTotal(activity string) (*LifetimeActivityTotal, bool) {
	lt, ok := r.state().Lifetime[activity]
	return lt, ok
}

// YearDuration sums the durations of the activity over all years.
func (r *Report) YearDuration(activity string) int {
	var secs int
	for _, bucket := range r.state().ByYear {
		secs += bucket.Activity(activity).DurationSeconds
	}
	return secs
}

func (r *Report) ActiveDays() []traininglog.CalendarDay {
	return sortedDays(r.state().ActiveDays)
}

func (r *Report) SickDays() []traininglog.CalendarDay {
	return sortedDays(r.state().SickDays)
}

func (r *Report) PhasesByDistance(activity string) []traininglog.Phase {
	return PhasesByDistance(r.phases, activity)
}

func (r *Report) PhasesByTime(activity string) []traininglog.Phase {
	return PhasesByTime(r.phases, activity)
}

func sortedDays(days daySet) []traininglog.CalendarDay {
	result := make([]traininglog.CalendarDay, 0, len(days))
	for day := range days {
		result = append(result, day)
	}
	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		if a.Month != b.Month {
			return a.Month < b.Month
		}
		return a.Day < b.Day
	})
	return result
}
