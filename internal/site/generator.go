package site

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/2beens/endurancetraininglog/internal/duration"
	"github.com/2beens/endurancetraininglog/internal/report"
	"github.com/2beens/endurancetraininglog/internal/telemetry/metrics"
	"github.com/2beens/endurancetraininglog/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/multierr"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static/style.css
var styleCSS []byte

const (
	StyleFileName = "style.css"
	IndexFileName = "index.html"

	// tallest bar of the monthly chart, in pixels
	chartHeight = 150
)

var (
	ErrUnsafeOutputDir = errors.New("refusing to clean output directory")
	ErrNotCalculated   = errors.New("report not calculated")
)

func YearPageName(year int) string {
	return fmt.Sprintf("year-%d.html", year)
}

func PhasesByDistancePageName(activity string) string {
	return phasesByDistancePage(slug(activity))
}

func PhasesByTimePageName(activity string) string {
	return phasesByTimePage(slug(activity))
}

func phasesByDistancePage(slug string) string {
	return "phases-by-distance-" + slug + ".html"
}

func phasesByTimePage(slug string) string {
	return "phases-by-time-" + slug + ".html"
}

// slug keeps letters and digits, anything else becomes a dash.
func slug(activity string) string {
	s := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return '-'
	}, strings.TrimSpace(activity))
	if s == "" {
		return "activity"
	}
	return s
}

// activitySlugs gives every activity its own slug. Activities which only
// differ in case or punctuation get a numbered suffix in the given order.
func activitySlugs(activities []string) map[string]string {
	slugs := make(map[string]string, len(activities))
	taken := make(map[string]string, len(activities))
	for _, activity := range activities {
		base := slug(activity)
		s := base
		for n := 2; ; n++ {
			other, clash := taken[s]
			if !clash {
				break
			}
			log.Warnf("activities %q and %q share page name %q", other, activity, s)
			s = fmt.Sprintf("%s-%d", base, n)
		}
		taken[s] = activity
		slugs[activity] = s
	}
	return slugs
}

// Generator renders a calculated report into a static HTML site.
type Generator struct {
	outputDir      string
	metricsManager *metrics.Manager
	printer        *message.Printer
	caser          cases.Caser
	pages          map[string]*template.Template
	now            func() time.Time
}

func NewGenerator(outputDir string, metricsManager *metrics.Manager) (*Generator, error) {
	g := &Generator{
		outputDir:      outputDir,
		metricsManager: metricsManager,
		printer:        message.NewPrinter(language.English),
		caser:          cases.Title(language.English),
		pages:          make(map[string]*template.Template),
		now:            time.Now,
	}

	funcs := template.FuncMap{
		"yearPage": YearPageName,
	}
	for _, page := range []string{"index.html", "year.html", "phases.html"} {
		tmpl, err := template.New(page).Funcs(funcs).ParseFS(
			templatesFS,
			"templates/layout.html",
			"templates/"+page,
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", page, err)
		}
		g.pages[page] = tmpl
	}

	return g, nil
}

// Generate cleans the output directory and writes all pages. Years are the
// years of the training log, a year with sick days only still gets a page.
func (g *Generator) Generate(ctx context.Context, r *report.Report, years []int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "site.generate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("output_dir", g.outputDir))

	if !r.Calculated() {
		return ErrNotCalculated
	}

	log.Println("building HTML site ...")
	if err := g.clean(); err != nil {
		return err
	}

	if err := g.writeFile(StyleFileName, func(w io.Writer) error {
		_, err := w.Write(styleCSS)
		return err
	}); err != nil {
		return err
	}

	slugs := activitySlugs(r.ActivityTypes())
	menu := g.menu(r, years, slugs)
	if err := g.writePage(IndexFileName, "index.html", menu.page("Summary", g.indexBody(r, years))); err != nil {
		return err
	}

	for _, year := range years {
		if err := ctx.Err(); err != nil {
			return err
		}
		page := menu.page(fmt.Sprint(year), g.yearBody(r, year))
		if err := g.writePage(YearPageName(year), "year.html", page); err != nil {
			return err
		}
	}

	for _, activity := range r.ActivityTypes() {
		if err := ctx.Err(); err != nil {
			return err
		}
		title := g.caser.String(activity)

		byDistance := menu.page(title+" by Distance", g.phaseRows(r.PhasesByDistance(activity)))
		if err := g.writePage(phasesByDistancePage(slugs[activity]), "phases.html", byDistance); err != nil {
			return err
		}
		byTime := menu.page(title+" by Time", g.phaseRows(r.PhasesByTime(activity)))
		if err := g.writePage(phasesByTimePage(slugs[activity]), "phases.html", byTime); err != nil {
			return err
		}
	}

	log.Printf("HTML site written to %s", g.outputDir)
	return nil
}

func (g *Generator) clean() error {
	dir := filepath.Clean(g.outputDir)
	if g.outputDir == "" || dir == "." || dir == string(filepath.Separator) {
		return fmt.Errorf("%w: %q", ErrUnsafeOutputDir, g.outputDir)
	}
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("clean output dir: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	return nil
}

func (g *Generator) writePage(fileName, templateName string, data page) error {
	tmpl := g.pages[templateName]
	return g.writeFile(fileName, func(w io.Writer) error {
		return tmpl.ExecuteTemplate(w, "layout", data)
	})
}

func (g *Generator) writeFile(fileName string, write func(w io.Writer) error) (err error) {
	path := filepath.Join(g.outputDir, fileName)
	log.Debugf("generating %s ...", path)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", fileName, err)
	}
	defer multierr.AppendInvoke(&err, multierr.Close(f))

	if err := write(f); err != nil {
		return fmt.Errorf("write %s: %w", fileName, err)
	}

	if g.metricsManager != nil {
		g.metricsManager.CounterPagesWritten.Inc()
	}
	return nil
}

func (g *Generator) km(km float64) string {
	return g.printer.Sprintf("%.1fkm", km)
}

func (g *Generator) weight(kg float64) string {
	return g.printer.Sprintf("%.1fkg", kg)
}

func (g *Generator) menu(r *report.Report, years []int, slugs map[string]string) menu {
	m := menu{
		years:     years,
		generated: g.now().Format("2006/01/02 15:04:05"),
	}
	for _, activity := range r.ActivityTypes() {
		m.activities = append(m.activities, activityLink{
			Title:          g.caser.String(activity),
			ByDistancePage: phasesByDistancePage(slugs[activity]),
			ByTimePage:     phasesByTimePage(slugs[activity]),
		})
	}
	return m
}

func (g *Generator) indexBody(r *report.Report, years []int) indexBody {
	body := indexBody{
		ActiveDays: len(r.ActiveDays()),
		SickDays:   len(r.SickDays()),
	}

	activities := r.ActivityTypes()
	for _, activity := range activities {
		title := g.caser.String(activity)
		body.Activities = append(body.Activities, title)

		lifetime, _ := r.LifetimeTotal(activity)
		body.Lifetime = append(body.Lifetime, lifetimeRow{
			Title:    title,
			Km:       g.km(lifetime.Km),
			Duration: duration.Format(r.YearDuration(activity)),
			Days:     lifetime.DayCount(),
			Phases:   len(lifetime.Phases),
		})
	}

	sickPerYear := make(map[int]int)
	for _, day := range r.SickDays() {
		sickPerYear[day.Year]++
	}
	for _, year := range years {
		bucket := r.Year(year)
		row := yearRow{
			Year:     year,
			Total:    g.km(bucket.TotalKm()),
			SickDays: sickPerYear[year],
		}
		for _, activity := range activities {
			row.Km = append(row.Km, g.km(bucket.Activity(activity).DistanceKm))
		}
		body.Years = append(body.Years, row)
	}

	return body
}

func (g *Generator) yearBody(r *report.Report, year int) yearBody {
	var body yearBody

	var maxKm float64
	for month := 1; month <= 12; month++ {
		maxKm = math.Max(maxKm, r.MonthTotal(year, month))
	}

	for month := 1; month <= 12; month++ {
		bucket := r.Month(year, month)
		column := monthColumn{
			Name: time.Month(month).String()[:3],
			Km:   g.km(bucket.TotalKm()),
		}
		for _, activity := range bucket.ActivityNames() {
			km := bucket.Activity(activity).DistanceKm
			if km <= 0 {
				continue
			}
			column.Segments = append(column.Segments, segment{
				Title:  fmt.Sprintf("%s: %s", g.caser.String(activity), g.km(km)),
				Class:  "etl-activity" + strings.ReplaceAll(g.caser.String(activity), " ", ""),
				Height: int(math.Round(km / maxKm * chartHeight)),
			})
		}
		if bucket.HasWeight() {
			column.WeightMin = g.weight(bucket.WeightMin)
			column.WeightMax = g.weight(bucket.WeightMax)
		}
		body.Months = append(body.Months, column)
	}

	for _, week := range r.Weeks(year) {
		bucket := r.Week(year, week)
		row := weekRow{
			Week:     week,
			Km:       g.km(bucket.TotalKm()),
			Duration: duration.Format(bucket.TotalSeconds()),
		}
		if bucket.HasWeight() {
			row.WeightMin = g.weight(bucket.WeightMin)
			row.WeightMax = g.weight(bucket.WeightMax)
		}
		var titles []string
		for _, activity := range bucket.ActivityNames() {
			titles = append(titles, g.caser.String(activity))
		}
		row.Activities = strings.Join(titles, ", ")
		body.Weeks = append(body.Weeks, row)
	}

	for _, day := range r.ActiveDays() {
		if day.Year == year {
			body.ActiveDays++
		}
	}
	for _, day := range r.SickDays() {
		if day.Year == year {
			body.SickDays++
		}
	}

	return body
}
