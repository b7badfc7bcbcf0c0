package main

import (
	"flag"
	"io"
	"os"

	"github.com/2beens/endurancetraininglog/internal/importer"
	"github.com/2beens/endurancetraininglog/internal/logging"

	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

func main() {
	out := flag.String("out", "", "path of the merged dataset (empty for stdout)")
	logLevel := flag.String("log-level", "info", "log level")
	flag.Parse()

	logging.Setup(logging.LoggerSetupParams{
		LogLevel: *logLevel,
	})
	log.SetOutput(os.Stderr)

	paths := flag.Args()
	if len(paths) == 0 {
		log.Fatalln("usage: etl_merge [-out merged.csv] <dataset.csv> ...")
	}

	dataset, err := merge(paths)
	if err != nil {
		log.Fatalf("merge: %s", err)
	}
	log.Printf("merged %d datasets into %d rows, %d extra columns",
		len(paths), len(dataset.Rows), len(dataset.ExtraColumns))

	if err := write(*out, dataset); err != nil {
		log.Fatalf("write merged dataset: %s", err)
	}
}

func merge(paths []string) (_ *importer.Dataset, err error) {
	readers := make([]io.Reader, 0, len(paths))
	for _, path := range paths {
		f, openErr := os.Open(path)
		if openErr != nil {
			return nil, openErr
		}
		defer multierr.AppendInvoke(&err, multierr.Close(f))
		readers = append(readers, f)
	}
	return importer.Merge(readers...)
}

func write(path string, dataset *importer.Dataset) (err error) {
	if path == "" {
		return dataset.Write(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer multierr.AppendInvoke(&err, multierr.Close(f))
	return dataset.Write(f)
}
