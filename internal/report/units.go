package report

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/2beens/endurancetraininglog/internal/duration"
	"github.com/2beens/endurancetraininglog/internal/traininglog"
)

const (
	unitKm = "km"
	unitKg = "kg"
)

var ErrNotFinite = errors.New("not a finite number")

// ParseDistanceKm parses 10.5km to 10.5
func ParseDistanceKm(s string) (float64, error) {
	return parseUnit(s, unitKm)
}

// ParseWeightKg parses 80.1kg to 80.1
func ParseWeightKg(s string) (float64, error) {
	return parseUnit(s, unitKg)
}

func parseUnit(s, unit string) (float64, error) {
	number, found := strings.CutSuffix(s, unit)
	if !found {
		return 0, &UnitError{Value: s, Unit: unit}
	}
	v, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", number, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid number %q: %w", number, ErrNotFinite)
	}
	return v, nil
}

// measurement holds the parsed optional fields of one phase.
type measurement struct {
	km        float64
	hasKm     bool
	seconds   int
	hasTime   bool
	kg        float64
	hasWeight bool
}

// measure parses everything a phase contributes before anything is
// accumulated, so a bad field never leaves a phase half counted.
func measure(p traininglog.Phase) (measurement, error) {
	m, err := measureEffort(p)
	if err != nil {
		return m, err
	}
	if p.HasWeight() {
		if m.kg, err = ParseWeightKg(p.Weight); err != nil {
			return m, &PhaseError{Phase: p, Field: "weight", Err: err}
		}
		m.hasWeight = true
	}
	return m, nil
}

// measureEffort parses distance and time only.
func measureEffort(p traininglog.Phase) (measurement, error) {
	var m measurement
	var err error

	if p.HasDistance() {
		if m.km, err = ParseDistanceKm(p.Distance); err != nil {
			return m, &PhaseError{Phase: p, Field: "distance", Err: err}
		}
		m.hasKm = true
	}
	if p.HasTime() {
		if m.seconds, err = duration.ParseSeconds(p.Time); err != nil {
			return m, &PhaseError{Phase: p, Field: "time", Err: err}
		}
		m.hasTime = true
	}

	return m, nil
}
