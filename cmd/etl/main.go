package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/2beens/endurancetraininglog/internal/config"
	"github.com/2beens/endurancetraininglog/internal/etl"
	"github.com/2beens/endurancetraininglog/internal/logging"
	"github.com/2beens/endurancetraininglog/internal/site"
	"github.com/2beens/endurancetraininglog/internal/telemetry/metrics"
	"github.com/2beens/endurancetraininglog/internal/telemetry/tracing"
	"github.com/2beens/endurancetraininglog/internal/traininglog"

	log "github.com/sirupsen/logrus"
)

func main() {
	fmt.Println("starting ...")

	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	trainingLogDir := flag.String("log-dir", "", "training log directory with config.yaml (overrides config)")
	outputDir := flag.String("out", "", "output directory of the generated site (overrides config)")
	color := flag.Bool("color", false, "force colored console logs")
	flag.Parse()

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		panic(err)
	}
	if *trainingLogDir != "" {
		cfg.TrainingLogDir = *trainingLogDir
	}
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}

	logging.Setup(logging.LoggerSetupParams{
		LogFileName:      cfg.LogsPath,
		LogToStdout:      cfg.LogToStdout,
		LogLevel:         cfg.LogLevel,
		LogFormatJSON:    cfg.LogFormatJSON,
		ForceColors:      *color,
		Environment:      cfg.Environment,
		SentryEnabled:    cfg.SentryEnabled,
		SentryDSN:        os.Getenv("SENTRY_DSN"),
		SentryServerName: "etl",
	})
	log.Warnf("---->> running in [%s] environment", *env)
	log.Debugf("training log dir: [%s]", cfg.TrainingLogDir)
	log.Debugf("output dir: [%s]", cfg.OutputDir)

	if cfg.TrainingLogDir == "" {
		log.Fatalln("training log dir not set, use -log-dir or training_log_dir in config")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	shutdownTracing := setupTracing(cfg)

	reg := metrics.NewRegistry()
	metricsManager := metrics.NewManager("etl", "generator", reg)

	siteGenerator, err := site.NewGenerator(cfg.OutputDir, metricsManager)
	if err != nil {
		log.Fatalf("new site generator: %s", err)
	}

	generator := etl.NewGenerator(traininglog.NewLoader(), siteGenerator, metricsManager)
	r, genErr := generator.Generate(ctx, cfg.TrainingLogDir)
	if genErr != nil {
		log.Errorf("generate: %s", genErr)
	} else {
		log.Printf("%d years, %d activity types, %d active days, %d sick days",
			len(r.Years()), len(r.ActivityTypes()), len(r.ActiveDays()), len(r.SickDays()))
	}

	if cfg.MetricsTextfile != "" {
		if err := metrics.WriteTextfile(reg, cfg.MetricsTextfile); err != nil {
			log.Errorf("%s", err)
		}
	}

	shutdownTracing()
	if cfg.SentryEnabled {
		ok := logging.FlushSentry()
		log.Debugf("sentry flush ok: %t", ok)
	}

	if genErr != nil {
		os.Exit(1)
	}
	log.Println("done")
}

// setupTracing returns a func flushing the spans, it is a noop when tracing is off.
func setupTracing(cfg *config.Config) func() {
	if !cfg.TracingEnabled {
		log.Debugln("tracing disabled")
		return func() {}
	}

	shutdown, err := tracing.SetupFile("endurance-training-log", cfg.TracesPath)
	if err != nil {
		log.Errorf("setup tracing, tracing disabled: %s", err)
		return func() {}
	}

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(ctx); err != nil {
			log.Errorf("shutdown tracing: %s", err)
		}
	}
}
