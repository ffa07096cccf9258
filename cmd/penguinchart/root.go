package main

import (
	"fmt"
	"io"
	"os"

	"github.com/couchcryptid/penguin-chart/internal/config"
	"github.com/couchcryptid/penguin-chart/internal/observability"
	"github.com/couchcryptid/penguin-chart/internal/pipeline"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

// flagOverrides holds command-line values that take precedence over the environment.
type flagOverrides struct {
	input     string
	outputDir string
	renderers []string
	logLevel  string
}

func (f *flagOverrides) apply(cfg *config.Config) error {
	if f.input != "" {
		cfg.InputPath = f.input
	}
	if f.outputDir != "" {
		cfg.OutputDir = f.outputDir
	}
	if len(f.renderers) > 0 {
		names, err := config.ParseRenderers(f.renderers)
		if err != nil {
			return err
		}
		cfg.Renderers = names
	}
	if f.logLevel != "" {
		cfg.LogLevel = f.logLevel
	}
	return nil
}

func loadConfig(flags *flagOverrides) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := flags.apply(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newRootCommand() *cobra.Command {
	flags := &flagOverrides{}

	rootCmd := &cobra.Command{
		Use:   "penguinchart",
		Short: "Render the penguin bubble scatter as standalone HTML",
		Long: "Reads penglings.csv, drops incomplete rows and writes vegalite.html, " +
			"plotly.html and reference SVGs into the output directory.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			logger := observability.NewLogger(cfg)
			metrics := observability.NewMetricsWith(prometheus.NewRegistry())

			a := newApp(cfg, logger, metrics)
			defer closeApp(a)

			res, err := a.pipeline.Run(cmd.Context())
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), a, res)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.input, "input", "i", "", "CSV path or http(s) URL (env CHART_INPUT)")
	pf.StringVarP(&flags.outputDir, "output-dir", "o", "", "directory for rendered files (env CHART_OUTPUT_DIR)")
	pf.StringSliceVar(&flags.renderers, "renderers", nil, "back ends to run: vegalite, plotly, svg (env CHART_RENDERERS)")
	pf.StringVar(&flags.logLevel, "log-level", "", "debug, info, warn or error (env LOG_LEVEL)")

	rootCmd.AddCommand(newServeCommand(flags))
	return rootCmd
}

func closeApp(a *app) {
	if err := a.Close(); err != nil {
		a.logger.Error("close sinks", "error", err)
	}
}

func printResult(w io.Writer, a *app, res pipeline.Result) error {
	for _, art := range res.Artifacts {
		if _, err := fmt.Fprintf(w, "Wrote %s\n", a.files.PathFor(art.Name)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, renderSummary(res.Chart, isTerminal(os.Stdout)))
	return err
}
