package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	logFileExt = ".log"
	// megabytes
	logFileMaxSize = 20
	// one generation run per day, keep about a year of history
	logFileMaxBackups = 12
)

type LoggerSetupParams struct {
	LogFileName      string
	LogToStdout      bool
	LogLevel         string
	LogFormatJSON    bool
	ForceColors      bool
	Environment      string
	SentryEnabled    bool
	SentryDSN        string
	SentryServerName string
}

// Setup configures the standard logrus logger used all over the module.
func Setup(params LoggerSetupParams) {
	if f := formatter(params); f != nil {
		logrus.SetFormatter(f)
	}
	logrus.SetLevel(GetLevel(params.LogLevel))

	if params.SentryEnabled {
		SetupSentry(SentryParams{
			Environment: params.Environment,
			DSN:         params.SentryDSN,
			ServerName:  params.SentryServerName,
		})
	}

	logrus.SetOutput(Output(params.LogFileName, params.LogToStdout))
}

func formatter(params LoggerSetupParams) logrus.Formatter {
	switch {
	case params.LogFormatJSON:
		return &logrus.JSONFormatter{}
	case params.ForceColors:
		return &logrus.TextFormatter{
			ForceColors:   true,
			FullTimestamp: true,
		}
	default:
		return nil
	}
}

// Output picks where logs go: STDOUT alone when no file is given, else a
// rotated log file, optionally teed with STDOUT.
func Output(fileName string, toStdout bool) io.Writer {
	if fileName == "" {
		logrus.Debugln("writing logs only to STDOUT")
		return os.Stdout
	}

	if filepath.Ext(fileName) != logFileExt {
		fileName += logFileExt
	}
	rotated := &lumberjack.Logger{
		Filename:   fileName,
		MaxSize:    logFileMaxSize,
		MaxBackups: logFileMaxBackups,
		LocalTime:  false, // UTC
		Compress:   true,
	}

	if !toStdout {
		return rotated
	}
	logrus.Debugf("writing logs to %s and STDOUT", fileName)
	return NewTeeWriter(os.Stdout, rotated)
}

func GetLevel(level string) logrus.Level {
	switch strings.ToLower(level) {
	case "debug":
		return logrus.DebugLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	case "info":
		return logrus.InfoLevel
	case "trace":
		return logrus.TraceLevel
	case "warn", "warning":
		return logrus.WarnLevel
	default:
		return logrus.TraceLevel
	}
}
