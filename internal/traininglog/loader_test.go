package traininglog_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/2beens/endurancetraininglog/internal/importer"
	"github.com/2beens/endurancetraininglog/internal/traininglog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const (
	testConfiguration = `inputs:
  - training-log-file: 2019.yaml
  - training-log-file: 2020.yaml
  - training-log-file: 2019.yaml
  - training-log-file: 2021-strava.csv
`
	test2019 = `year: 2019
log:
  - date: 12/30
    activity: running
    distance: 6km
    time: 30'10
    weight: 80.1kg
  - date: 12/31
    activity: sick
`
	test2020 = `year: 2020
log:
  - date: 3/2
    activity: running
    distance: 5km
    time: 25'30
    description: easy
  - date: 3/9
    activity: swimming
    time: 35'
    track: lake
`
	test2021 = "year,month,day,activity,distance_meters,time_seconds,weight,route\n" +
		"2021,5,3,biking,42195,3723,79.5,around the lake\n"
)

func writeTrainingLog(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}
	return dir
}

func TestLoader_Load(t *testing.T) {
	dir := writeTrainingLog(t, map[string]string{
		traininglog.ConfigurationFileName: testConfiguration,
		"2019.yaml":                       test2019,
		"2020.yaml":                       test2020,
		"2021-strava.csv":                 test2021,
	})

	tl, err := traininglog.NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, []int{2019, 2020, 2021}, tl.Years())
	require.Len(t, tl.Phases, 5)
	assert.Len(t, tl.YearToPhases[2019], 2)

	first := tl.Phases[0]
	assert.Equal(t, 2019, first.Year)
	assert.Equal(t, 12, first.Month)
	assert.Equal(t, 30, first.Day)
	assert.Equal(t, "running", first.Activity)
	assert.Equal(t, "6km", first.Distance)
	assert.Equal(t, "30'10", first.Time)
	assert.Equal(t, "80.1kg", first.Weight)

	assert.True(t, tl.Phases[1].IsSick())
	assert.False(t, tl.Phases[1].HasDistance())

	swim := tl.Phases[3]
	assert.Equal(t, "swimming", swim.Activity)
	assert.False(t, swim.HasDistance())
	assert.Equal(t, "lake", swim.Track)

	bike := tl.Phases[4]
	assert.Equal(t, traininglog.CalendarDay{Year: 2021, Month: 5, Day: 3}, bike.CalendarDay())
	assert.Equal(t, "42.195km", bike.Distance)
	assert.Equal(t, "1h2'3", bike.Time)
	assert.Equal(t, "79.5kg", bike.Weight)
	assert.Equal(t, "around the lake", bike.Track)
	assert.Equal(t, "5/3", bike.Date)
}

func TestLoader_Load_MissingActivity(t *testing.T) {
	dir := writeTrainingLog(t, map[string]string{
		traininglog.ConfigurationFileName: "inputs:\n  - training-log-file: 2020.yaml\n",
		"2020.yaml":                       "year: 2020\nlog:\n  - date: 1/1\n    distance: 5km\n",
	})

	_, err := traininglog.NewLoader().Load(context.Background(), dir)
	require.Error(t, err)
	assert.True(t, traininglog.IsMissingField(err))
	assert.Contains(t, err.Error(), "load 2020.yaml")
}

func TestLoader_Load_Errors(t *testing.T) {
	for name, files := range map[string]map[string]string{
		"no configuration": {},
		"no inputs": {
			traininglog.ConfigurationFileName: "inputs: []\n",
		},
		"missing year file": {
			traininglog.ConfigurationFileName: "inputs:\n  - training-log-file: 2020.yaml\n",
		},
		"bad date": {
			traininglog.ConfigurationFileName: "inputs:\n  - training-log-file: 2020.yaml\n",
			"2020.yaml":                       "year: 2020\nlog:\n  - date: march 1\n    activity: running\n",
		},
		"month out of range": {
			traininglog.ConfigurationFileName: "inputs:\n  - training-log-file: 2020.yaml\n",
			"2020.yaml":                       "year: 2020\nlog:\n  - date: 13/1\n    activity: running\n",
		},
		"broken yaml": {
			traininglog.ConfigurationFileName: "inputs:\n  - training-log-file: 2020.yaml\n",
			"2020.yaml":                       "year: [2020\n",
		},
		"broken dataset": {
			traininglog.ConfigurationFileName: "inputs:\n  - training-log-file: 2020.csv\n",
			"2020.csv":                        "year,month,day,activity\nlast,1,1,running\n",
		},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := traininglog.NewLoader().Load(context.Background(), writeTrainingLog(t, files))
			require.Error(t, err)
		})
	}
}

func TestLoader_Load_Canceled(t *testing.T) {
	dir := writeTrainingLog(t, map[string]string{
		traininglog.ConfigurationFileName: testConfiguration,
		"2019.yaml":                       test2019,
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := traininglog.NewLoader().Load(ctx, dir)
	require.ErrorIs(t, err, context.Canceled)
}

func TestTrainingLog_MergeYearLog_AllOrNothing(t *testing.T) {
	tl := traininglog.NewTrainingLog()
	err := tl.MergeYearLog(2020, []traininglog.Phase{
		{Date: "1/1", Activity: "running"},
		{Date: "1/2"},
	})
	require.Error(t, err)
	assert.True(t, traininglog.IsMissingField(err))
	assert.Empty(t, tl.Phases)
	assert.Empty(t, tl.Years())

	err = tl.MergeYearLog(0, []traininglog.Phase{{Date: "1/1", Activity: "running"}})
	require.True(t, traininglog.IsMissingField(err))

	err = tl.MergeYearLog(2020, []traininglog.Phase{{Activity: "running"}})
	var mfErr *traininglog.MissingFieldError
	require.ErrorAs(t, err, &mfErr)
	assert.Equal(t, "date", mfErr.Field)
}

func TestConfiguration_YearLogFileNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), traininglog.ConfigurationFileName)
	require.NoError(t, os.WriteFile(path, []byte(testConfiguration), 0o600))

	cfg, err := traininglog.LoadConfiguration(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"2019.yaml", "2020.yaml", "2021-strava.csv"}, cfg.YearLogFileNames())
}

func TestPhaseFromRow(t *testing.T) {
	row := importer.NewRow()
	row.Year, row.Month, row.Day = 2022, 7, 14
	row.Activity = "rowing"
	row.Description = "@24 2:05/500m"

	p := traininglog.PhaseFromRow(row)
	assert.Equal(t, "7/14", p.Date)
	assert.Equal(t, "rowing", p.Activity)
	assert.Empty(t, p.Distance)
	assert.Empty(t, p.Time)
	assert.Empty(t, p.Weight)
	require.NoError(t, p.Validate())

	row.DistanceMeters = 5000
	row.TimeSeconds = 1200
	p = traininglog.PhaseFromRow(row)
	assert.Equal(t, "5km", p.Distance)
	assert.Equal(t, "20'", p.Time)
}

func TestPhase_Validate(t *testing.T) {
	valid := traininglog.Phase{Year: 2020, Month: 2, Day: 29, Activity: "running"}
	require.NoError(t, valid.Validate())
	assert.Equal(t, "2020/2/29 running", valid.String())

	for field, p := range map[string]traininglog.Phase{
		"activity": {Year: 2020, Month: 1, Day: 1},
		"year":     {Month: 1, Day: 1, Activity: "running"},
		"month":    {Year: 2020, Day: 1, Activity: "running"},
		"day":      {Year: 2020, Month: 1, Activity: "running"},
	} {
		var mfErr *traininglog.MissingFieldError
		require.ErrorAs(t, p.Validate(), &mfErr, field)
		assert.Equal(t, field, mfErr.Field)
	}

	assert.Error(t, traininglog.Phase{Year: 2020, Month: 1, Day: 32, Activity: "running"}.Validate())
}
