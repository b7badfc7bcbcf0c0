package report

import (
	"fmt"

	"github.com/2beens/endurancetraininglog/internal/traininglog"
)

// UnitError is returned for a distance or weight without its expected unit.
type UnitError struct {
	Value string
	Unit  string
}

func (e *UnitError) Error() string {
	return fmt.Sprintf("unknown unit used in %q, expected %s", e.Value, e.Unit)
}

// PhaseError pins a failure to the phase and field that caused it.
type PhaseError struct {
	Phase traininglog.Phase
	Field string
	Err   error
}

func (e *PhaseError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("phase %s: %s", e.Phase, e.Err)
	}
	return fmt.Sprintf("phase %s: %s: %s", e.Phase, e.Field, e.Err)
}

func (e *PhaseError) Unwrap() error {
	return e.Err
}

// MissingFieldError is surfaced by Calculate for a phase lacking its
// activity or date.
type MissingFieldError = traininglog.MissingFieldError
