package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/penguin-chart/internal/domain"
	"github.com/couchcryptid/penguin-chart/internal/observability"
	"github.com/jonboulle/clockwork"
)

// Extractor reads raw rows from the source.
type Extractor interface {
	Extract(ctx context.Context) ([]domain.RawRecord, error)
}

// Transformer cleans raw rows and encodes them as a chart.
type Transformer interface {
	Transform(ctx context.Context, records []domain.RawRecord) (domain.Chart, domain.CleanReport, error)
}

// Renderer turns a chart into one or more artifacts.
type Renderer interface {
	Name() string
	Render(ctx context.Context, chart domain.Chart) ([]domain.Artifact, error)
}

// Loader delivers artifacts to a destination.
type Loader interface {
	Name() string
	Load(ctx context.Context, artifacts []domain.Artifact) error
}

// Result describes a completed run.
type Result struct {
	Chart     domain.Chart
	Report    domain.CleanReport
	Artifacts []domain.Artifact
	Elapsed   time.Duration
}

// Pipeline orchestrates a single extract-transform-render-load pass.
type Pipeline struct {
	extractor   Extractor
	transformer Transformer
	renderers   []Renderer
	loaders     []Loader
	logger      *slog.Logger
	metrics     *observability.Metrics
	clock       clockwork.Clock
	ready       atomic.Bool
}

// New creates a Pipeline with the given stages and observability. A nil
// clock means real time.
func New(e Extractor, t Transformer, renderers []Renderer, loaders []Loader, logger *slog.Logger, metrics *observability.Metrics, clock clockwork.Clock) *Pipeline {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Pipeline{
		extractor:   e,
		transformer: t,
		renderers:   renderers,
		loaders:     loaders,
		logger:      logger,
		metrics:     metrics,
		clock:       clock,
	}
}

// CheckReadiness returns nil once a run has completed successfully.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("no chart has been rendered yet")
	}
	return nil
}

// Run executes one full pass. Any stage error aborts the run; there is no retry.
func (p *Pipeline) Run(ctx context.Context) (Result, error) {
	start := p.clock.Now()
	p.logger.Info("pipeline started", "renderers", len(p.renderers), "sinks", len(p.loaders))

	res, err := p.run(ctx)
	if err != nil {
		p.metrics.LastRunOK.Set(0)
		return Result{}, err
	}

	res.Elapsed = p.clock.Since(start)
	p.metrics.RunDuration.Observe(res.Elapsed.Seconds())
	p.metrics.LastRunOK.Set(1)
	p.ready.Store(true)

	p.logger.Info("pipeline finished",
		"observations", res.Report.Kept,
		"artifacts", len(res.Artifacts),
		"elapsed", res.Elapsed,
	)
	return res, nil
}

func (p *Pipeline) run(ctx context.Context) (Result, error) {
	records, err := p.extractor.Extract(ctx)
	if err != nil {
		return Result{}, p.fail("extract", err)
	}
	p.metrics.RowsRead.Add(float64(len(records)))

	chart, report, err := p.transformer.Transform(ctx, records)
	if err != nil {
		return Result{}, p.fail("transform", err)
	}
	for reason, n := range report.Dropped {
		p.metrics.RowsDropped.WithLabelValues(string(reason)).Add(float64(n))
	}
	p.metrics.Observations.Set(float64(report.Kept))

	artifacts, err := p.render(ctx, chart)
	if err != nil {
		return Result{}, err
	}

	for _, l := range p.loaders {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		if err := l.Load(ctx, artifacts); err != nil {
			return Result{}, p.fail("load", fmt.Errorf("%s: %w", l.Name(), err))
		}
		p.metrics.ArtifactsLoaded.WithLabelValues(l.Name()).Add(float64(len(artifacts)))
	}

	return Result{Chart: chart, Report: report, Artifacts: artifacts}, nil
}

func (p *Pipeline) render(ctx context.Context, chart domain.Chart) ([]domain.Artifact, error) {
	var artifacts []domain.Artifact
	for _, r := range p.renderers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out, err := r.Render(ctx, chart)
		if err != nil {
			return nil, p.fail("render", fmt.Errorf("%s: %w", r.Name(), err))
		}
		p.metrics.ArtifactsRendered.WithLabelValues(r.Name()).Add(float64(len(out)))
		artifacts = append(artifacts, out...)
	}
	return artifacts, nil
}

func (p *Pipeline) fail(stage string, err error) error {
	p.metrics.StageErrors.WithLabelValues(stage).Inc()
	p.logger.Error("pipeline stage failed", "stage", stage, "error", err)
	return fmt.Errorf("%s: %w", stage, err)
}
