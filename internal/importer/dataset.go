package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Row is one line of the endurance training log CSV dataset,
// the common schema every third-party export is reshaped into.
type Row struct {
	Year                   int
	Month                  int
	Day                    int
	Phase                  int
	When                   string
	Activity               string
	Description            string
	Commute                bool
	TotalTimeSeconds       int
	TotalDistanceMeters    int
	WarmUpTimeSeconds      int
	WarmUpDistanceMeters   int
	TimeSeconds            int
	DistanceMeters         int
	Intensity              string
	Squats                 int
	PushUps                int
	Crunches               int
	Turtles                int
	Calfs                  int
	Repetitions            int
	AvgSpeed               float64
	MaxSpeed               float64
	ElevationGain          int
	AvgWatts               int
	MaxWatts               int
	Gear                   string
	Route                  string
	URL                    string
	Kcal                   int
	CoolDownTimeSeconds    int
	CoolDownDistanceMeters int
	Weight                 float64
	Weather                string
	WeatherTemperature     int
	Where                  string
	BMI                    float64
	GramsOfFatBurnt        int
	Source                 string

	// Extra holds the columns outside the schema, keyed by header name.
	Extra map[string]string
}

// Dataset is a set of rows with the extra columns they carry, in header order.
type Dataset struct {
	Rows         []Row
	ExtraColumns []string
}

func (d *Dataset) Write(w io.Writer) error {
	return writeDataset(w, d.Rows, d.ExtraColumns)
}

// NewRow returns a row filled with dataset defaults.
func NewRow() Row {
	return Row{
		Year:      2020,
		Month:     1,
		Day:       1,
		Phase:     1,
		When:      "12h30m00s",
		Activity:  "rest",
		Intensity: "fartlek",
		Source:    "import",
	}
}

type column struct {
	name string
	get  func(r *Row) string
	set  func(r *Row, v string) error
}

func intColumn(name string, field func(r *Row) *int) column {
	return column{
		name: name,
		get: func(r *Row) string {
			return strconv.Itoa(*field(r))
		},
		set: func(r *Row, v string) error {
			n, err := parseInt(v)
			if err != nil {
				return err
			}
			*field(r) = n
			return nil
		},
	}
}

func floatColumn(name string, field func(r *Row) *float64) column {
	return column{
		name: name,
		get: func(r *Row) string {
			return strconv.FormatFloat(*field(r), 'f', -1, 64)
		},
		set: func(r *Row, v string) error {
			f, err := parseFloat(v)
			if err != nil {
				return err
			}
			*field(r) = f
			return nil
		},
	}
}

func stringColumn(name string, field func(r *Row) *string) column {
	return column{
		name: name,
		get: func(r *Row) string {
			return *field(r)
		},
		set: func(r *Row, v string) error {
			*field(r) = v
			return nil
		},
	}
}

func boolColumn(name string, field func(r *Row) *bool) column {
	return column{
		name: name,
		get: func(r *Row) string {
			if *field(r) {
				return "True"
			}
			return "False"
		},
		set: func(r *Row, v string) error {
			b, err := parseBool(v)
			if err != nil {
				return err
			}
			*field(r) = b
			return nil
		},
	}
}

var columns = []column{
	intColumn("year", func(r *Row) *int { return &r.Year }),
	intColumn("month", func(r *Row) *int { return &r.Month }),
	intColumn("day", func(r *Row) *int { return &r.Day }),
	intColumn("phase", func(r *Row) *int { return &r.Phase }),
	stringColumn("when", func(r *Row) *string { return &r.When }),
	stringColumn("activity", func(r *Row) *string { return &r.Activity }),
	stringColumn("description", func(r *Row) *string { return &r.Description }),
	boolColumn("commute", func(r *Row) *bool { return &r.Commute }),
	intColumn("total_time_seconds", func(r *Row) *int { return &r.TotalTimeSeconds }),
	intColumn("total_distance_meters", func(r *Row) *int { return &r.TotalDistanceMeters }),
	intColumn("warm_up_time_seconds", func(r *Row) *int { return &r.WarmUpTimeSeconds }),
	intColumn("warm_up_distance_meters", func(r *Row) *int { return &r.WarmUpDistanceMeters }),
	intColumn("time_seconds", func(r *Row) *int { return &r.TimeSeconds }),
	intColumn("distance_meters", func(r *Row) *int { return &r.DistanceMeters }),
	stringColumn("intensity", func(r *Row) *string { return &r.Intensity }),
	intColumn("squats", func(r *Row) *int { return &r.Squats }),
	intColumn("push_ups", func(r *Row) *int { return &r.PushUps }),
	intColumn("crunches", func(r *Row) *int { return &r.Crunches }),
	intColumn("turtles", func(r *Row) *int { return &r.Turtles }),
	intColumn("calfs", func(r *Row) *int { return &r.Calfs }),
	intColumn("repetitions", func(r *Row) *int { return &r.Repetitions }),
	floatColumn("avg_speed", func(r *Row) *float64 { return &r.AvgSpeed }),
	floatColumn("max_speed", func(r *Row) *float64 { return &r.MaxSpeed }),
	intColumn("elevation_gain", func(r *Row) *int { return &r.ElevationGain }),
	intColumn("avg_watts", func(r *Row) *int { return &r.AvgWatts }),
	intColumn("max_watts", func(r *Row) *int { return &r.MaxWatts }),
	stringColumn("gear", func(r *Row) *string { return &r.Gear }),
	stringColumn("route", func(r *Row) *string { return &r.Route }),
	stringColumn("url", func(r *Row) *string { return &r.URL }),
	intColumn("kcal", func(r *Row) *int { return &r.Kcal }),
	intColumn("cool_down_time_seconds", func(r *Row) *int { return &r.CoolDownTimeSeconds }),
	intColumn("cool_down_distance_meters", func(r *Row) *int { return &r.CoolDownDistanceMeters }),
	floatColumn("weight", func(r *Row) *float64 { return &r.Weight }),
	stringColumn("weather", func(r *Row) *string { return &r.Weather }),
	intColumn("weather_temperature", func(r *Row) *int { return &r.WeatherTemperature }),
	stringColumn("where", func(r *Row) *string { return &r.Where }),
	floatColumn("bmi", func(r *Row) *float64 { return &r.BMI }),
	intColumn("grams_of_fat_burnt", func(r *Row) *int { return &r.GramsOfFatBurnt }),
	stringColumn("source", func(r *Row) *string { return &r.Source }),
}

// ColumnNames returns the dataset header in file order.
func ColumnNames() []string {
	names := make([]string, 0, len(columns))
	for _, c := range columns {
		names = append(names, c.name)
	}
	return names
}

// Record returns the row as CSV fields, ordered as ColumnNames.
func (r Row) Record() []string {
	record := make([]string, 0, len(columns))
	for _, c := range columns {
		record = append(record, c.get(&r))
	}
	return record
}

// ReadDataset reads an endurance training log CSV. Missing columns keep
// their NewRow defaults, columns outside the schema land in Row.Extra.
// A column without a name (the index written by dataframe tools) is dropped.
func ReadDataset(r io.Reader) ([]Row, error) {
	d, err := readDataset(r)
	if err != nil {
		return nil, err
	}
	return d.Rows, nil
}

func readDataset(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty dataset")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	index := headerIndex(header)
	d := &Dataset{ExtraColumns: extraColumns(header)}
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", line, err)
		}

		row := NewRow()
		for _, c := range columns {
			i, ok := index[c.name]
			if !ok || i >= len(record) {
				continue
			}
			if err := c.set(&row, record[i]); err != nil {
				return nil, fmt.Errorf("line %d, column %s: %w", line, c.name, err)
			}
		}
		if len(d.ExtraColumns) > 0 {
			row.Extra = make(map[string]string, len(d.ExtraColumns))
			for _, name := range d.ExtraColumns {
				if i := index[name]; i < len(record) {
					row.Extra[name] = record[i]
				}
			}
		}
		d.Rows = append(d.Rows, row)
	}

	return d, nil
}

// WriteDataset writes rows with the full dataset header.
func WriteDataset(w io.Writer, rows []Row) error {
	return writeDataset(w, rows, nil)
}

func writeDataset(w io.Writer, rows []Row, extra []string) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(append(ColumnNames(), extra...)); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, row := range rows {
		record := row.Record()
		for _, name := range extra {
			record = append(record, row.Extra[name])
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// Merge concatenates datasets keeping the input order. The header is the
// union of the inputs: schema columns first, then the extra columns in the
// order they were first seen. Rows lacking a column leave it empty.
func Merge(inputs ...io.Reader) (*Dataset, error) {
	merged := &Dataset{}
	seen := make(map[string]struct{})
	for i, in := range inputs {
		d, err := readDataset(in)
		if err != nil {
			return nil, fmt.Errorf("dataset %d: %w", i, err)
		}
		for _, name := range d.ExtraColumns {
			if _, ok := seen[name]; !ok {
				seen[name] = struct{}{}
				merged.ExtraColumns = append(merged.ExtraColumns, name)
			}
		}
		merged.Rows = append(merged.Rows, d.Rows...)
	}
	return merged, nil
}

func extraColumns(header []string) []string {
	seen := make(map[string]struct{}, len(columns)+len(header))
	for _, c := range columns {
		seen[c.name] = struct{}{}
	}

	var extra []string
	for _, name := range header {
		name = columnName(name)
		if _, ok := seen[name]; ok || name == "" {
			continue
		}
		seen[name] = struct{}{}
		extra = append(extra, name)
	}
	return extra
}

func headerIndex(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, name := range header {
		name = columnName(name)
		if _, seen := index[name]; !seen {
			index[name] = i
		}
	}
	return index
}

func columnName(name string) string {
	return strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
}

func parseInt(v string) (int, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n, nil
	}
	// exports sometimes carry 1194.3 where whole units are expected
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

func parseFloat(v string) (float64, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, nil
	}
	return strconv.ParseFloat(v, 64)
}

func parseBool(v string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "0", "false", "no":
		return false, nil
	case "1", "true", "yes":
		return true, nil
	default:
		return false, fmt.Errorf("invalid bool %q", v)
	}
}
