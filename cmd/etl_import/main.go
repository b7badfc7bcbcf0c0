package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/2beens/endurancetraininglog/internal/importer"
	"github.com/2beens/endurancetraininglog/internal/logging"
	"github.com/2beens/endurancetraininglog/internal/telemetry/metrics"
	"github.com/2beens/endurancetraininglog/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/multierr"
)

func main() {
	source := flag.String("source", "", "export to import [strava | concept2 | fit]")
	in := flag.String("in", "", "path of the exported file")
	out := flag.String("out", "", "path of the endurance training log CSV to write (empty for stdout)")
	timezone := flag.String("tz", "Local", "timezone of FIT timestamps")
	logLevel := flag.String("log-level", "info", "log level")
	metricsTextfile := flag.String("metrics-textfile", "", "node exporter textfile to write the metrics to")
	traces := flag.String("traces", "", "file to append the trace spans to (empty disables tracing)")
	flag.Parse()

	logging.Setup(logging.LoggerSetupParams{
		LogLevel: *logLevel,
	})
	// keep stdout clean for the dataset
	log.SetOutput(os.Stderr)

	src, err := importer.ParseSource(*source)
	if err != nil {
		log.Fatalln(err)
	}
	if *in == "" {
		log.Fatalln("input file not specified, use -in")
	}
	loc, err := time.LoadLocation(*timezone)
	if err != nil {
		log.Fatalf("load timezone: %s", err)
	}

	shutdownTracing := func(context.Context) error { return nil }
	if *traces != "" {
		if shutdownTracing, err = tracing.SetupFile("endurance-training-log-import", *traces); err != nil {
			log.Fatalf("setup tracing: %s", err)
		}
	}

	reg := metrics.NewRegistry()
	metricsManager := metrics.NewManager("etl", "import", reg)

	runErr := run(context.Background(), src, *in, *out, loc, metricsManager)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdownTracing(ctx); err != nil {
		log.Errorf("shutdown tracing: %s", err)
	}

	if *metricsTextfile != "" {
		if err := metrics.WriteTextfile(reg, *metricsTextfile); err != nil {
			log.Errorln(err)
		}
	}

	if runErr != nil {
		log.Fatalln(runErr)
	}
}

func run(ctx context.Context, src importer.Source, in, out string, loc *time.Location, metricsManager *metrics.Manager) error {
	rows, err := importFile(ctx, src, in, loc)
	if err != nil {
		return fmt.Errorf("import %s: %w", in, err)
	}
	metricsManager.CounterImportedRows.WithLabelValues(string(src)).Add(float64(len(rows)))
	log.Printf("imported %d rows from %s export", len(rows), src)

	if err := writeDataset(out, rows); err != nil {
		return fmt.Errorf("write dataset: %w", err)
	}
	return nil
}

func importFile(ctx context.Context, src importer.Source, path string, loc *time.Location) (_ []importer.Row, err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "importer.import")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("source", string(src)),
		attribute.String("path", path),
	)

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer multierr.AppendInvoke(&err, multierr.Close(f))

	return importer.Import(src, f, loc)
}

func writeDataset(path string, rows []importer.Row) (err error) {
	if path == "" {
		return importer.WriteDataset(os.Stdout, rows)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer multierr.AppendInvoke(&err, multierr.Close(f))

	return importer.WriteDataset(f, rows)
}
