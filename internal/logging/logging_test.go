package logging_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/2beens/endurancetraininglog/internal/logging"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"gopkg.in/natefinch/lumberjack.v2"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestGetLevel(t *testing.T) {
	for level, want := range map[string]logrus.Level{
		"debug":   logrus.DebugLevel,
		"ERROR":   logrus.ErrorLevel,
		"fatal":   logrus.FatalLevel,
		"Info":    logrus.InfoLevel,
		"trace":   logrus.TraceLevel,
		"warn":    logrus.WarnLevel,
		"warning": logrus.WarnLevel,
		"":        logrus.TraceLevel,
		"verbose": logrus.TraceLevel,
	} {
		assert.Equal(t, want, logging.GetLevel(level), level)
	}
}

func TestOutput(t *testing.T) {
	assert.Equal(t, os.Stdout, logging.Output("", true))

	dir := t.TempDir()
	fileOnly, ok := logging.Output(filepath.Join(dir, "etl"), false).(*lumberjack.Logger)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "etl.log"), fileOnly.Filename)
	assert.Equal(t, 12, fileOnly.MaxBackups)

	kept, ok := logging.Output(filepath.Join(dir, "etl.log"), false).(*lumberjack.Logger)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "etl.log"), kept.Filename)

	_, ok = logging.Output(filepath.Join(dir, "etl"), true).(*logging.TeeWriter)
	assert.True(t, ok)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestTeeWriter(t *testing.T) {
	var first, second bytes.Buffer
	tw := logging.NewTeeWriter(&first, &second)

	n, err := tw.Write([]byte("phase ingested\n"))
	require.NoError(t, err)
	assert.Equal(t, 15, n)
	assert.Equal(t, "phase ingested\n", first.String())
	assert.Equal(t, "phase ingested\n", second.String())
}

func TestTeeWriter_KeepsWritingAfterFailure(t *testing.T) {
	var out bytes.Buffer
	tw := logging.NewTeeWriter(failingWriter{}, &out, failingWriter{})

	_, err := tw.Write([]byte("x"))
	require.Error(t, err)
	assert.Equal(t, "disk full; disk full", err.Error())
	assert.Equal(t, "x", out.String())
}

func TestSentryHook_Fire(t *testing.T) {
	var (
		mu     sync.Mutex
		events []*sentry.Event
	)
	client, err := sentry.NewClient(sentry.ClientOptions{
		BeforeSend: func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
			mu.Lock()
			defer mu.Unlock()
			events = append(events, event)
			return nil
		},
	})
	require.NoError(t, err)
	hub := sentry.NewHub(client, sentry.NewScope())

	hook := logging.NewSentryHookWithHub(hub, []logrus.Level{logrus.ErrorLevel})
	assert.Equal(t, []logrus.Level{logrus.ErrorLevel}, hook.Levels())

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	logger.AddHook(hook)

	logger.Info("not forwarded")
	logger.WithError(errors.New("unknown unit")).
		WithField("year", 2020).
		Error("calculate report")

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, events, 1)
	assert.Equal(t, "calculate report", events[0].Message)
	assert.Equal(t, sentry.LevelError, events[0].Level)
	assert.Equal(t, 2020, events[0].Extra["year"])
	require.Len(t, events[0].Exception, 1)
	assert.Equal(t, "unknown unit", events[0].Exception[0].Value)
}
