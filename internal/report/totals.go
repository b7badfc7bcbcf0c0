package report

import (
	"fmt"
	"time"

	"github.com/2beens/endurancetraininglog/internal/traininglog"
)

type daySet map[traininglog.CalendarDay]struct{}

// Totals keeps three bucket tables in lock-step: by year, by year and
// month, by year and ISO week. Weight is a body measurement, so it is
// tracked per bucket, never per activity.
type Totals struct {
	// 2005 > summary
	ByYear map[int]*Bucket
	// 2005 > 3 > summary
	ByYearMonth map[int]map[int]*Bucket
	// 2005 > 22 > summary
	ByYearWeek map[int]map[int]*Bucket

	ActiveDays    daySet
	SickDays      daySet
	ActivityTypes map[string]struct{}
	Lifetime      map[string]*LifetimeActivityTotal

	sickPhases int
}

func NewTotals() *Totals {
	return &Totals{
		ByYear:        make(map[int]*Bucket),
		ByYearMonth:   make(map[int]map[int]*Bucket),
		ByYearWeek:    make(map[int]map[int]*Bucket),
		ActiveDays:    make(daySet),
		SickDays:      make(daySet),
		ActivityTypes: make(map[string]struct{}),
		Lifetime:      make(map[string]*LifetimeActivityTotal),
	}
}

// ISOWeek returns the ISO 8601 week number of the date. Late December days
// may land in week 1 and early January days in week 52 or 53, the week is
// still filed under the calendar year of the date.
func ISOWeek(year, month, day int) (int, error) {
	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if date.Year() != year || int(date.Month()) != month || date.Day() != day {
		return 0, fmt.Errorf("no such date: %d/%d/%d", year, month, day)
	}
	_, week := date.ISOWeek()
	return week, nil
}

// Ingest accounts one phase. A phase that fails leaves no trace.
func (t *Totals) Ingest(p traininglog.Phase) error {
	if err := p.Validate(); err != nil {
		return &PhaseError{Phase: p, Err: err}
	}

	week, err := ISOWeek(p.Year, p.Month, p.Day)
	if err != nil {
		return &PhaseError{Phase: p, Field: "date", Err: err}
	}

	if p.IsSick() {
		t.SickDays[p.CalendarDay()] = struct{}{}
		t.sickPhases++
		return nil
	}

	m, err := measure(p)
	if err != nil {
		return err
	}

	t.ActiveDays[p.CalendarDay()] = struct{}{}

	lifetime, ok := t.Lifetime[p.Activity]
	if !ok {
		t.ActivityTypes[p.Activity] = struct{}{}
		lifetime = newLifetimeActivityTotal()
		t.Lifetime[p.Activity] = lifetime
	}
	lifetime.record(p, m)

	for _, bucket := range []*Bucket{
		t.yearBucket(p.Year),
		t.monthBucket(p.Year, p.Month),
		t.weekBucket(p.Year, week),
	} {
		bucket.observe(p.Activity, m)
	}

	return nil
}

func (t *Totals) yearBucket(year int) *Bucket {
	b, ok := t.ByYear[year]
	if !ok {
		b = newBucket()
		t.ByYear[year] = b
	}
	return b
}

func (t *Totals) monthBucket(year, month int) *Bucket {
	return nestedBucket(t.ByYearMonth, year, month)
}

func (t *Totals) weekBucket(year, week int) *Bucket {
	return nestedBucket(t.ByYearWeek, year, week)
}

func nestedBucket(table map[int]map[int]*Bucket, year, key int) *Bucket {
	byKey, ok := table[year]
	if !ok {
		byKey = make(map[int]*Bucket)
		table[year] = byKey
	}
	b, ok := byKey[key]
	if !ok {
		b = newBucket()
		byKey[key] = b
	}
	return b
}
