package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

const (
	StravaActivityURL = "https://www.strava.com/activities/"
	// 09.05.2020 12:20:00
	stravaDateLayout = "02.01.2006 15:04:05"
)

// FromStrava reshapes a strava.com activity list, as exported by
// the entorb strava tools, into dataset rows.
func FromStrava(r io.Reader) ([]Row, error) {
	records, err := readExport(r)
	if err != nil {
		return nil, fmt.Errorf("read strava export: %w", err)
	}

	rows := make([]Row, 0, len(records))
	for i, rec := range records {
		row, err := stravaRow(rec)
		if err != nil {
			return nil, fmt.Errorf("strava activity %d [%s]: %w", i, rec.get("id"), err)
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func stravaRow(rec exportRecord) (Row, error) {
	row := NewRow()

	start, err := time.Parse(stravaDateLayout, rec.get("start_date_local"))
	if err != nil {
		return row, fmt.Errorf("start date: %w", err)
	}
	setWhen(&row, start)

	row.Activity = strings.ToLower(rec.get("type"))
	row.Description = strings.ReplaceAll(rec.get("name"), ";", ":")

	if row.DistanceMeters, err = rec.intValue("distance"); err != nil {
		return row, err
	}
	if row.TimeSeconds, err = rec.intValue("elapsed_time"); err != nil {
		return row, err
	}
	row.TotalDistanceMeters = row.DistanceMeters
	row.TotalTimeSeconds = row.TimeSeconds

	if row.AvgSpeed, err = rec.floatValue("km/h"); err != nil {
		return row, err
	}
	if row.MaxSpeed, err = rec.floatValue("x_max_km/h"); err != nil {
		return row, err
	}
	if row.ElevationGain, err = rec.intValue("total_elevation_gain"); err != nil {
		return row, err
	}
	if row.AvgWatts, err = rec.intValue("average_watts"); err != nil {
		return row, err
	}

	kilojoules, err := rec.floatValue("kilojoules")
	if err != nil {
		return row, err
	}
	row.Kcal = int(kilojoules / 4.184)

	if row.Commute, err = parseBool(rec.get("commute")); err != nil {
		return row, err
	}

	row.Gear = strings.ReplaceAll(strings.ToLower(rec.get("x_gear_name")), " ", "_")
	row.URL = StravaActivityURL + rec.get("id")
	row.Source = "strava:" + rec.get("id")

	return row, nil
}

func setWhen(row *Row, t time.Time) {
	row.Year = t.Year()
	row.Month = int(t.Month())
	row.Day = t.Day()
	row.When = t.Format("15:04:05")
}

// exportRecord is a third-party CSV line addressed by header name.
type exportRecord struct {
	index  map[string]int
	fields []string
}

func (e exportRecord) get(name string) string {
	i, ok := e.index[name]
	if !ok || i >= len(e.fields) {
		return ""
	}
	v := strings.TrimSpace(e.fields[i])
	if strings.EqualFold(v, "none") || strings.EqualFold(v, "nan") {
		return ""
	}
	return v
}

func (e exportRecord) intValue(name string) (int, error) {
	n, err := parseInt(e.get(name))
	if err != nil {
		return 0, fmt.Errorf("column %s: %w", name, err)
	}
	return n, nil
}

func (e exportRecord) floatValue(name string) (float64, error) {
	f, err := parseFloat(e.get(name))
	if err != nil {
		return 0, fmt.Errorf("column %s: %w", name, err)
	}
	return f, nil
}

func readExport(r io.Reader) ([]exportRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty export")
		}
		return nil, err
	}
	index := headerIndex(header)

	var records []exportRecord
	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		records = append(records, exportRecord{index: index, fields: fields})
	}

	return records, nil
}
