package duration_test

import (
	"errors"
	"strconv"
	"testing"

	"github.com/2beens/endurancetraininglog/internal/duration"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		in      string
		want    duration.Duration
		seconds int
	}{
		{in: "1h", want: duration.Duration{Hours: 1}, seconds: 3600},
		{in: "5'", want: duration.Duration{Minutes: 5}, seconds: 300},
		{in: "5'10", want: duration.Duration{Minutes: 5, Seconds: 10}, seconds: 310},
		{in: "5'10.7", want: duration.Duration{Minutes: 5, Seconds: 10, Tenths: 7}, seconds: 310},
		{in: "13", want: duration.Duration{Seconds: 13}, seconds: 13},
		{in: "10.7", want: duration.Duration{Seconds: 10, Tenths: 7}, seconds: 10},
		{in: "1h10'", want: duration.Duration{Hours: 1, Minutes: 10}, seconds: 4200},
		{in: "1h10'5", want: duration.Duration{Hours: 1, Minutes: 10, Seconds: 5}, seconds: 4205},
		{in: "1h10'6.7", want: duration.Duration{Hours: 1, Minutes: 10, Seconds: 6, Tenths: 7}, seconds: 4206},
		{in: "1h3'10.7", want: duration.Duration{Hours: 1, Minutes: 3, Seconds: 10, Tenths: 7}, seconds: 3790},
		{in: "2h5", want: duration.Duration{Hours: 2, Seconds: 5}, seconds: 7205},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			d, err := duration.Parse(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, d)
			assert.Equal(t, tc.seconds, d.TotalSeconds())
			assert.Equal(t, tc.want.Hours*3600+tc.want.Minutes*60+tc.want.Seconds, d.TotalSeconds())
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, in := range []string{
		"",
		"h",
		"1h'",
		"abc",
		"5'x",
		"1.2.3",
		"5.",
		"-5",
		"1h 10'",
		"10km",
	} {
		t.Run(in, func(t *testing.T) {
			_, err := duration.Parse(in)
			require.Error(t, err)
			var formatErr *duration.FormatError
			require.True(t, errors.As(err, &formatErr))
			assert.Equal(t, in, formatErr.Value)
		})
	}
}

func TestParse_NumericCauseIsKept(t *testing.T) {
	_, err := duration.Parse("5'x")
	require.Error(t, err)
	var numErr *strconv.NumError
	assert.True(t, errors.As(err, &numErr))
}

func TestParseSeconds(t *testing.T) {
	secs, err := duration.ParseSeconds("25'30")
	require.NoError(t, err)
	assert.Equal(t, 1530, secs)

	secs, err = duration.ParseSeconds("35'")
	require.NoError(t, err)
	assert.Equal(t, 2100, secs)

	_, err = duration.ParseSeconds("")
	assert.Error(t, err)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "0", duration.Format(0))
	assert.Equal(t, "0", duration.Format(-10))
	assert.Equal(t, "13", duration.Format(13))
	assert.Equal(t, "5'", duration.Format(300))
	assert.Equal(t, "5'10", duration.Format(310))
	assert.Equal(t, "1h", duration.Format(3600))
	assert.Equal(t, "1h10'", duration.Format(4200))
	assert.Equal(t, "1h2'3", duration.Format(3723))
	assert.Equal(t, "1h5", duration.Format(3605))

	for _, secs := range []int{1, 59, 60, 61, 3599, 3600, 3601, 7981, 86400, 123456} {
		parsed, err := duration.ParseSeconds(duration.Format(secs))
		require.NoError(t, err)
		assert.Equal(t, secs, parsed)
	}
}

func TestDuration_String(t *testing.T) {
	assert.Equal(t, "5'10.7", duration.Duration{Minutes: 5, Seconds: 10, Tenths: 7}.String())
	assert.Equal(t, "5'0.7", duration.Duration{Minutes: 5, Tenths: 7}.String())
	assert.Equal(t, "1h0'0.7", duration.Duration{Hours: 1, Tenths: 7}.String())
	assert.Equal(t, "0.7", duration.Duration{Tenths: 7}.String())
	assert.Equal(t, "1h3'10", duration.Duration{Hours: 1, Minutes: 3, Seconds: 10}.String())
}
