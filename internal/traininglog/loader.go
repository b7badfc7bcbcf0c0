package traininglog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/2beens/endurancetraininglog/internal/duration"
	"github.com/2beens/endurancetraininglog/internal/importer"
	"github.com/2beens/endurancetraininglog/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

const ConfigurationFileName = "config.yaml"

// Configuration lists the year files making up a training log:
//
//	inputs:
//	  - training-log-file: 2019.yaml
//	  - training-log-file: 2020-strava.csv
type Configuration struct {
	Inputs []Input `yaml:"inputs"`
}

type Input struct {
	TrainingLogFile string `yaml:"training-log-file"`
}

func LoadConfiguration(path string) (*Configuration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read configuration: %w", err)
	}

	cfg := &Configuration{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse configuration %s: %w", path, err)
	}
	if len(cfg.Inputs) == 0 {
		return nil, fmt.Errorf("configuration %s: no inputs", path)
	}

	return cfg, nil
}

// YearLogFileNames returns the configured files, each once, in config order.
func (c *Configuration) YearLogFileNames() []string {
	seen := make(map[string]bool, len(c.Inputs))
	var names []string
	for _, in := range c.Inputs {
		if in.TrainingLogFile == "" || seen[in.TrainingLogFile] {
			continue
		}
		seen[in.TrainingLogFile] = true
		names = append(names, in.TrainingLogFile)
	}
	return names
}

// yearLog is the layout of one YAML year file.
type yearLog struct {
	Year int     `yaml:"year"`
	Log  []Phase `yaml:"log"`
}

// TrainingLog holds the training logs of all years.
type TrainingLog struct {
	// all phases, in load order
	Phases []Phase
	// year to phases of that year, in load order
	YearToPhases map[int][]Phase
}

func NewTrainingLog() *TrainingLog {
	return &TrainingLog{
		YearToPhases: make(map[int][]Phase),
	}
}

// Years returns the years present in the log, ascending.
func (tl *TrainingLog) Years() []int {
	years := make([]int, 0, len(tl.YearToPhases))
	for year := range tl.YearToPhases {
		years = append(years, year)
	}
	sort.Ints(years)
	return years
}

func (tl *TrainingLog) add(p Phase) {
	tl.Phases = append(tl.Phases, p)
	tl.YearToPhases[p.Year] = append(tl.YearToPhases[p.Year], p)
}

// MergeYearLog stamps the year on every phase, splits its m/d date and
// appends it to the log.
func (tl *TrainingLog) MergeYearLog(year int, phases []Phase) error {
	if year == 0 {
		return &MissingFieldError{Field: "year"}
	}

	merged := make([]Phase, 0, len(phases))
	for i, p := range phases {
		p.Year = year
		month, day, err := splitDate(p.Date)
		if err != nil {
			return fmt.Errorf("%d log entry %d: %w", year, i, err)
		}
		p.Month = month
		p.Day = day
		if err := p.Validate(); err != nil {
			return fmt.Errorf("%d log entry %d [%s]: %w", year, i, p.Date, err)
		}
		merged = append(merged, p)
	}

	for _, p := range merged {
		tl.add(p)
	}

	return nil
}

func splitDate(date string) (int, int, error) {
	if date == "" {
		return 0, 0, &MissingFieldError{Field: "date"}
	}
	monthPart, dayPart, found := strings.Cut(date, "/")
	if !found {
		return 0, 0, fmt.Errorf("invalid date %q, expected month/day", date)
	}
	month, err := strconv.Atoi(strings.TrimSpace(monthPart))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month in date %q: %w", date, err)
	}
	day, err := strconv.Atoi(strings.TrimSpace(dayPart))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid day in date %q: %w", date, err)
	}
	return month, day, nil
}

type Loader struct{}

func NewLoader() *Loader {
	return &Loader{}
}

// Load reads config.yaml from dir and merges every listed year file.
// Files ending in .csv are read as endurance training log datasets,
// everything else as YAML year logs.
func (l *Loader) Load(ctx context.Context, dir string) (_ *TrainingLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "traininglog.load")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("dir", dir))

	log.Println("loading configuration ...")
	cfg, err := LoadConfiguration(filepath.Join(dir, ConfigurationFileName))
	if err != nil {
		return nil, err
	}

	log.Println("loading training logs ...")
	tl := NewTrainingLog()
	for _, fileName := range cfg.YearLogFileNames() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		log.Printf("  %s", fileName)
		path := filepath.Join(dir, fileName)
		if strings.EqualFold(filepath.Ext(fileName), ".csv") {
			err = l.loadDataset(tl, path)
		} else {
			err = l.loadYearLog(tl, path)
		}
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", fileName, err)
		}
	}

	span.SetAttributes(attribute.Int("phases", len(tl.Phases)))
	return tl, nil
}

func (l *Loader) loadYearLog(tl *TrainingLog, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	yl := yearLog{}
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return fmt.Errorf("parse year log: %w", err)
	}

	log.Printf("processing %d log with %d entries ...", yl.Year, len(yl.Log))
	if err := tl.MergeYearLog(yl.Year, yl.Log); err != nil {
		return err
	}
	log.Debugf("  %d log done", yl.Year)

	return nil
}

func (l *Loader) loadDataset(tl *TrainingLog, path string) (err error) {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer multierr.AppendInvoke(&err, multierr.Close(f))

	rows, err := importer.ReadDataset(f)
	if err != nil {
		return err
	}

	log.Printf("processing dataset with %d rows ...", len(rows))
	phases := make([]Phase, 0, len(rows))
	for i, row := range rows {
		p := PhaseFromRow(row)
		if verr := p.Validate(); verr != nil {
			return fmt.Errorf("dataset row %d: %w", i, verr)
		}
		phases = append(phases, p)
	}
	for _, p := range phases {
		tl.add(p)
	}

	return nil
}

// PhaseFromRow converts a dataset row into the training log phase notation,
// e.g. 10500 meters to 10.5km and 3723 seconds to 1h2'3.
func PhaseFromRow(row importer.Row) Phase {
	p := Phase{
		Year:        row.Year,
		Month:       row.Month,
		Day:         row.Day,
		Date:        fmt.Sprintf("%d/%d", row.Month, row.Day),
		Activity:    row.Activity,
		Description: row.Description,
		Track:       row.Route,
	}
	if row.DistanceMeters > 0 {
		p.Distance = strconv.FormatFloat(float64(row.DistanceMeters)/1000, 'f', -1, 64) + "km"
	}
	if row.TimeSeconds > 0 {
		p.Time = duration.Format(row.TimeSeconds)
	}
	if row.Weight > 0 {
		p.Weight = strconv.FormatFloat(row.Weight, 'f', -1, 64) + "kg"
	}
	return p
}

// IsMissingField reports whether err is caused by a missing required field.
func IsMissingField(err error) bool {
	var mfErr *MissingFieldError
	return errors.As(err, &mfErr)
}
