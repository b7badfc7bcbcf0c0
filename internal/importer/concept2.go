package importer

import (
	"fmt"
	"io"
	"strings"
	"time"
)

const (
	Concept2ActivityURL = "https://log.concept2.com/profile/737678/log/"
	// 2020-03-04 11:34:00
	concept2DateLayout = "2006-01-02 15:04:05"
	concept2Gear       = "my_concept2_e"
)

// FromConcept2 reshapes a log.concept2.com season export into dataset rows.
// Every concept2 workout is a rowing phase.
func FromConcept2(r io.Reader) ([]Row, error) {
	records, err := readExport(r)
	if err != nil {
		return nil, fmt.Errorf("read concept2 export: %w", err)
	}

	rows := make([]Row, 0, len(records))
	for i, rec := range records {
		row, err := concept2Row(rec)
		if err != nil {
			return nil, fmt.Errorf("concept2 workout %d [%s]: %w", i, rec.get("ID"), err)
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func concept2Row(rec exportRecord) (Row, error) {
	row := NewRow()

	start, err := time.Parse(concept2DateLayout, rec.get("Date"))
	if err != nil {
		return row, fmt.Errorf("date: %w", err)
	}
	setWhen(&row, start)

	row.Activity = "rowing"
	row.Description = concept2Description(rec)

	if row.DistanceMeters, err = rec.intValue("Work Distance"); err != nil {
		return row, err
	}
	if row.TimeSeconds, err = rec.intValue("Work Time (Seconds)"); err != nil {
		return row, err
	}
	row.TotalDistanceMeters = row.DistanceMeters
	row.TotalTimeSeconds = row.TimeSeconds

	if row.TimeSeconds > 0 {
		row.AvgSpeed = float64(row.DistanceMeters) / float64(row.TimeSeconds) * 3.6
	}
	row.MaxSpeed = row.AvgSpeed

	if row.AvgWatts, err = rec.intValue("Avg Watts"); err != nil {
		return row, err
	}
	if row.Kcal, err = rec.intValue("Total Cal"); err != nil {
		return row, err
	}

	if rec.get("Ranked") != "" {
		row.Intensity = "rank"
	}

	row.Gear = concept2Gear
	row.URL = Concept2ActivityURL + rec.get("ID")
	row.Source = "concept2:" + rec.get("ID")

	return row, nil
}

// concept2Description joins the workout details worth keeping:
// @24 1:59/500m DF122 (comment)
func concept2Description(rec exportRecord) string {
	var parts []string
	if cadence := rec.get("Stroke Rate/Cadence"); cadence != "" {
		parts = append(parts, "@"+cadence)
	}
	if pace := rec.get("Pace"); pace != "" {
		parts = append(parts, pace+"/500m")
	}
	if drag := rec.get("Drag Factor"); drag != "" {
		parts = append(parts, "DF"+drag)
	}
	if comment := rec.get("Comments"); comment != "" {
		parts = append(parts, "("+comment+")")
	}
	return strings.Join(parts, " ")
}
