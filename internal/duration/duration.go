package duration

import (
	"fmt"
	"strconv"
	"strings"
)

// Duration is a parsed training log time, e.g. 1h3'10.7
type Duration struct {
	Hours   int
	Minutes int
	Seconds int
	// Tenths are kept as written, they never make it into TotalSeconds()
	Tenths int
}

type FormatError struct {
	Value   string
	Segment string
	Err     error
}

func (e *FormatError) Error() string {
	if e.Segment == "" {
		return fmt.Sprintf("invalid duration %q", e.Value)
	}
	return fmt.Sprintf("invalid duration %q: bad segment %q", e.Value, e.Segment)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// Parse parses any of the following:
//
//	1h3'10.7
//	1h4'
//	3'10.7
//	10.7
//	11
//	3'
//	3'10
//	1h3'
//	1h
func Parse(s string) (Duration, error) {
	var d Duration
	if s == "" {
		return d, &FormatError{Value: s}
	}

	rest := s
	if hours, afterHours, found := strings.Cut(rest, "h"); found {
		h, err := segment(s, hours)
		if err != nil {
			return Duration{}, err
		}
		d.Hours = h
		rest = afterHours
		if rest == "" {
			return d, nil
		}
	}

	if minutes, afterMinutes, found := strings.Cut(rest, "'"); found {
		m, err := segment(s, minutes)
		if err != nil {
			return Duration{}, err
		}
		d.Minutes = m
		rest = afterMinutes
		if rest == "" {
			return d, nil
		}
	}

	if seconds, tenths, found := strings.Cut(rest, "."); found {
		sec, err := segment(s, seconds)
		if err != nil {
			return Duration{}, err
		}
		t, err := segment(s, tenths)
		if err != nil {
			return Duration{}, err
		}
		d.Seconds = sec
		d.Tenths = t
		return d, nil
	}

	sec, err := segment(s, rest)
	if err != nil {
		return Duration{}, err
	}
	d.Seconds = sec

	return d, nil
}

// ParseSeconds is a shortcut for Parse(s).TotalSeconds()
func ParseSeconds(s string) (int, error) {
	d, err := Parse(s)
	if err != nil {
		return 0, err
	}
	return d.TotalSeconds(), nil
}

func segment(value, seg string) (int, error) {
	if seg == "" || strings.ContainsAny(seg, "+-") {
		return 0, &FormatError{Value: value, Segment: seg}
	}
	n, err := strconv.Atoi(seg)
	if err != nil {
		return 0, &FormatError{Value: value, Segment: seg, Err: err}
	}
	return n, nil
}

func (d Duration) TotalSeconds() int {
	return d.Hours*60*60 + d.Minutes*60 + d.Seconds
}

func (d Duration) String() string {
	s := Format(d.TotalSeconds())
	if d.Tenths == 0 {
		return s
	}
	if d.Seconds == 0 && strings.HasSuffix(s, "'") {
		s += "0"
	} else if strings.HasSuffix(s, "h") {
		s += "0'0"
	}
	return fmt.Sprintf("%s.%d", s, d.Tenths)
}

// Format renders whole seconds in the training log grammar,
// so that Parse(Format(n)).TotalSeconds() == n.
func Format(seconds int) string {
	if seconds <= 0 {
		return "0"
	}

	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60

	var sb strings.Builder
	if h > 0 {
		sb.WriteString(strconv.Itoa(h))
		sb.WriteString("h")
	}
	if m > 0 {
		sb.WriteString(strconv.Itoa(m))
		sb.WriteString("'")
	}
	if s > 0 {
		sb.WriteString(strconv.Itoa(s))
	}

	return sb.String()
}
