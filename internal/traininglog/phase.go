package traininglog

import "fmt"

// ActivitySick marks a day lost to illness, it is never a training phase.
const ActivitySick = "sick"

// Phase is one logged entry for one day: a training session, rest note
// or an illness marker. Optional fields are empty when not recorded.
type Phase struct {
	Year  int    `yaml:"-"`
	Month int    `yaml:"-"`
	Day   int    `yaml:"-"`
	Date  string `yaml:"date"`

	Activity    string `yaml:"activity"`
	Distance    string `yaml:"distance,omitempty"`
	Time        string `yaml:"time,omitempty"`
	Weight      string `yaml:"weight,omitempty"`
	Description string `yaml:"description,omitempty"`
	Track       string `yaml:"track,omitempty"`
}

// CalendarDay identifies the day a phase belongs to.
type CalendarDay struct {
	Year  int
	Month int
	Day   int
}

func (d CalendarDay) String() string {
	return fmt.Sprintf("%d/%d/%d", d.Year, d.Month, d.Day)
}

func (p Phase) CalendarDay() CalendarDay {
	return CalendarDay{Year: p.Year, Month: p.Month, Day: p.Day}
}

func (p Phase) IsSick() bool {
	return p.Activity == ActivitySick
}

func (p Phase) HasDistance() bool {
	return p.Distance != ""
}

func (p Phase) HasTime() bool {
	return p.Time != ""
}

func (p Phase) HasWeight() bool {
	return p.Weight != ""
}

func (p Phase) String() string {
	return fmt.Sprintf("%s %s", p.CalendarDay(), p.Activity)
}

// MissingFieldError reports a phase without a field every phase must have.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

// Validate checks the fields the analytics cannot do without.
func (p Phase) Validate() error {
	switch {
	case p.Activity == "":
		return &MissingFieldError{Field: "activity"}
	case p.Year == 0:
		return &MissingFieldError{Field: "year"}
	case p.Month == 0:
		return &MissingFieldError{Field: "month"}
	case p.Day == 0:
		return &MissingFieldError{Field: "day"}
	}
	if p.Month < 1 || p.Month > 12 {
		return fmt.Errorf("invalid month: %d", p.Month)
	}
	if p.Day < 1 || p.Day > 31 {
		return fmt.Errorf("invalid day: %d", p.Day)
	}
	return nil
}
