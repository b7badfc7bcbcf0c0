package etl

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/endurancetraininglog/internal/report"
	"github.com/2beens/endurancetraininglog/internal/telemetry/metrics"
	"github.com/2beens/endurancetraininglog/internal/telemetry/tracing"
	"github.com/2beens/endurancetraininglog/internal/traininglog"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=etl_test

type trainingLogLoader interface {
	Load(ctx context.Context, dir string) (*traininglog.TrainingLog, error)
}

type siteGenerator interface {
	Generate(ctx context.Context, r *report.Report, years []int) error
}

// Generator runs the whole pipeline: load the training log, calculate
// the report and render the site.
type Generator struct {
	loader         trainingLogLoader
	site           siteGenerator
	metricsManager *metrics.Manager
}

func NewGenerator(
	loader trainingLogLoader,
	site siteGenerator,
	metricsManager *metrics.Manager,
) *Generator {
	return &Generator{
		loader:         loader,
		site:           site,
		metricsManager: metricsManager,
	}
}

func (g *Generator) Generate(ctx context.Context, trainingLogDir string) (_ *report.Report, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "etl.generate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("training_log_dir", trainingLogDir))

	start := time.Now()

	tl, err := g.loader.Load(ctx, trainingLogDir)
	if err != nil {
		return nil, fmt.Errorf("load training log: %w", err)
	}

	r := report.NewReport(tl.Phases, g.metricsManager)
	if err := r.Calculate(ctx); err != nil {
		return nil, fmt.Errorf("calculate report: %w", err)
	}

	if err := g.site.Generate(ctx, r, tl.Years()); err != nil {
		return nil, fmt.Errorf("generate site: %w", err)
	}

	log.Infof("generated report of %d phases in %s", len(tl.Phases), time.Since(start))
	return r, nil
}
