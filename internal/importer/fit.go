package importer

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/muktihari/fit/decoder"
	"github.com/muktihari/fit/profile/mesgdef"
	"github.com/muktihari/fit/profile/typedef"
)

// FromFit decodes a FIT activity file and returns one row per session.
// Session start times are converted to loc.
func FromFit(r io.Reader, loc *time.Location) ([]Row, error) {
	if loc == nil {
		loc = time.UTC
	}

	fitDec := decoder.New(r)

	var rows []Row
	for fitDec.Next() {
		fitData, err := fitDec.Decode()
		if err != nil {
			return nil, fmt.Errorf("decode FIT file: %w", err)
		}

		for _, msg := range fitData.Messages {
			if msg.Num != typedef.MesgNumSession {
				continue
			}
			session := mesgdef.NewSession(&msg)
			rows = append(rows, fitSessionRow(session, loc))
		}
	}

	if len(rows) == 0 {
		return nil, errors.New("no sessions found in FIT file")
	}

	return rows, nil
}

func fitSessionRow(session *mesgdef.Session, loc *time.Location) Row {
	row := NewRow()
	setWhen(&row, session.StartTime.In(loc))

	row.Activity = FitSportActivity(session.Sport)
	row.Description = session.SportProfileName

	// FIT scales: distance in cm, time in ms, speed in mm/s
	if session.TotalDistance != math.MaxUint32 {
		row.DistanceMeters = int(session.TotalDistance / 100)
	}
	if session.TotalElapsedTime != math.MaxUint32 {
		row.TimeSeconds = int(session.TotalElapsedTime / 1000)
	}
	row.TotalDistanceMeters = row.DistanceMeters
	row.TotalTimeSeconds = row.TimeSeconds

	if session.AvgSpeed != math.MaxUint16 {
		row.AvgSpeed = float64(session.AvgSpeed) / 1000 * 3.6
	}
	if session.MaxSpeed != math.MaxUint16 {
		row.MaxSpeed = float64(session.MaxSpeed) / 1000 * 3.6
	}
	if session.TotalAscent != math.MaxUint16 {
		row.ElevationGain = int(session.TotalAscent)
	}
	if session.AvgPower != math.MaxUint16 {
		row.AvgWatts = int(session.AvgPower)
	}
	if session.MaxPower != math.MaxUint16 {
		row.MaxWatts = int(session.MaxPower)
	}
	if session.TotalCalories != math.MaxUint16 {
		row.Kcal = int(session.TotalCalories)
	}

	row.Source = fmt.Sprintf("fit:%d", session.StartTime.Unix())

	return row
}

// FitSportActivity maps a FIT sport to the activity names used in the log.
func FitSportActivity(sport typedef.Sport) string {
	switch sport {
	case typedef.SportRunning:
		return "running"
	case typedef.SportCycling:
		return "biking"
	case typedef.SportSwimming:
		return "swimming"
	case typedef.SportRowing:
		return "rowing"
	case typedef.SportCrossCountrySkiing:
		return "skiing"
	case typedef.SportWalking:
		return "walking"
	case typedef.SportHiking:
		return "hiking"
	default:
		return strings.ToLower(sport.String())
	}
}
