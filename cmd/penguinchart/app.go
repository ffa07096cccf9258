package main

import (
	"fmt"
	"log/slog"

	"github.com/couchcryptid/penguin-chart/internal/adapter/csvfile"
	"github.com/couchcryptid/penguin-chart/internal/adapter/filesink"
	kafkaadapter "github.com/couchcryptid/penguin-chart/internal/adapter/kafka"
	"github.com/couchcryptid/penguin-chart/internal/adapter/remote"
	"github.com/couchcryptid/penguin-chart/internal/config"
	"github.com/couchcryptid/penguin-chart/internal/observability"
	"github.com/couchcryptid/penguin-chart/internal/pipeline"
	"github.com/couchcryptid/penguin-chart/internal/render/plotly"
	"github.com/couchcryptid/penguin-chart/internal/render/svgref"
	"github.com/couchcryptid/penguin-chart/internal/render/vegalite"
)

// app is the wired pipeline plus the sinks that need closing.
type app struct {
	pipeline *pipeline.Pipeline
	files    *filesink.Writer
	kafka    *kafkaadapter.Writer
	logger   *slog.Logger
}

func newApp(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) *app {
	var fetcher csvfile.Fetcher
	if cfg.IsRemoteInput() {
		fetcher = remote.NewClient(cfg.FetchTimeout, logger)
	}
	reader := csvfile.NewReader(cfg.InputPath, fetcher, logger)

	a := &app{
		files:  filesink.NewWriter(cfg.OutputDir, logger),
		logger: logger,
	}
	loaders := []pipeline.Loader{a.files}
	if cfg.KafkaEnabled {
		a.kafka = kafkaadapter.NewWriter(cfg, logger)
		loaders = append(loaders, a.kafka)
		logger.Info("kafka artifact feed enabled", "topic", cfg.KafkaTopic)
	}

	a.pipeline = pipeline.New(reader, pipeline.NewTransformer(logger),
		renderersFor(cfg.Renderers), loaders, logger, metrics, nil)
	return a
}

func renderersFor(names []string) []pipeline.Renderer {
	out := make([]pipeline.Renderer, 0, len(names))
	for _, name := range names {
		switch name {
		case config.RendererVegaLite:
			out = append(out, vegalite.NewRenderer())
		case config.RendererPlotly:
			out = append(out, plotly.NewRenderer())
		case config.RendererSVG:
			out = append(out, svgref.NewRenderer())
		}
	}
	return out
}

func (a *app) Close() error {
	if a.kafka == nil {
		return nil
	}
	if err := a.kafka.Close(); err != nil {
		return fmt.Errorf("close kafka writer: %w", err)
	}
	return nil
}
