package site

import (
	"github.com/2beens/endurancetraininglog/internal/traininglog"

	log "github.com/sirupsen/logrus"
)

const missingValue = "-"

type activityLink struct {
	Title          string
	ByDistancePage string
	ByTimePage     string
}

// menu carries what every page shares: the left menu and the footer.
type menu struct {
	years      []int
	activities []activityLink
	generated  string
}

func (m menu) page(title string, body any) page {
	return page{
		Title:      title,
		Years:      m.years,
		Activities: m.activities,
		Generated:  m.generated,
		Body:       body,
	}
}

type page struct {
	Title      string
	Years      []int
	Activities []activityLink
	Generated  string
	Body       any
}

type lifetimeRow struct {
	Title    string
	Km       string
	Duration string
	Days     int
	Phases   int
}

type yearRow struct {
	Year     int
	Km       []string
	Total    string
	SickDays int
}

type indexBody struct {
	Lifetime   []lifetimeRow
	Activities []string
	Years      []yearRow
	ActiveDays int
	SickDays   int
}

type segment struct {
	Title  string
	Class  string
	Height int
}

type monthColumn struct {
	Name      string
	Km        string
	Segments  []segment
	WeightMin string
	WeightMax string
}

type weekRow struct {
	Week       int
	Km         string
	Duration   string
	WeightMin  string
	WeightMax  string
	Activities string
}

type yearBody struct {
	Months     []monthColumn
	Weeks      []weekRow
	ActiveDays int
	SickDays   int
}

type phaseRow struct {
	Distance    string
	Time        string
	Track       string
	Date        string
	Description string
}

func (g *Generator) phaseRows(phases []traininglog.Phase) []phaseRow {
	rows := make([]phaseRow, 0, len(phases))
	for _, p := range phases {
		row := phaseRow{
			Distance:    p.Distance,
			Time:        p.Time,
			Track:       p.Track,
			Date:        p.CalendarDay().String(),
			Description: p.Description,
		}
		if !p.HasDistance() {
			log.Debugf("no distance in phase %s", p)
			row.Distance = missingValue
		}
		if !p.HasTime() {
			row.Time = missingValue
		}
		if row.Track == "" {
			row.Track = missingValue
		}
		rows = append(rows, row)
	}
	return rows
}
