package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Renderer names accepted in CHART_RENDERERS.
const (
	RendererVegaLite = "vegalite"
	RendererPlotly   = "plotly"
	RendererSVG      = "svg"
)

var knownRenderers = []string{RendererVegaLite, RendererPlotly, RendererSVG}

// Config holds all tool settings, populated from environment variables.
// Every variable is optional; the defaults reproduce the plain invocation.
type Config struct {
	InputPath    string // filesystem path or http(s) URL
	OutputDir    string
	Renderers    []string
	FetchTimeout time.Duration

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Optional artifact feed.
	KafkaEnabled bool
	KafkaBrokers []string
	KafkaTopic   string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	fetchTimeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("CHART_FETCH_TIMEOUT", "10s"))
	if err != nil || fetchTimeout <= 0 {
		return nil, errors.New("invalid CHART_FETCH_TIMEOUT")
	}

	renderers, err := parseRenderers(sharedcfg.EnvOrDefault("CHART_RENDERERS", "vegalite,plotly,svg"))
	if err != nil {
		return nil, err
	}

	var brokers []string
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		brokers = sharedcfg.ParseBrokers(v)
	}
	kafkaEnabled := len(brokers) > 0
	if v := os.Getenv("KAFKA_ENABLED"); v != "" {
		kafkaEnabled = v == "true"
	}

	cfg := &Config{
		InputPath:       sharedcfg.EnvOrDefault("CHART_INPUT", "penglings.csv"),
		OutputDir:       sharedcfg.EnvOrDefault("CHART_OUTPUT_DIR", "."),
		Renderers:       renderers,
		FetchTimeout:    fetchTimeout,
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "text"),
		ShutdownTimeout: shutdownTimeout,

		KafkaEnabled: kafkaEnabled,
		KafkaBrokers: brokers,
		KafkaTopic:   sharedcfg.EnvOrDefault("KAFKA_TOPIC", "penguin-charts"),
	}

	if strings.TrimSpace(cfg.InputPath) == "" {
		return nil, errors.New("CHART_INPUT is required")
	}
	if strings.TrimSpace(cfg.OutputDir) == "" {
		return nil, errors.New("CHART_OUTPUT_DIR is required")
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is not set")
	}
	if cfg.KafkaEnabled && cfg.KafkaTopic == "" {
		return nil, errors.New("KAFKA_TOPIC is required when Kafka is enabled")
	}

	return cfg, nil
}

// IsRemoteInput reports whether InputPath should be fetched over HTTP.
func (c *Config) IsRemoteInput() bool {
	return strings.HasPrefix(c.InputPath, "http://") || strings.HasPrefix(c.InputPath, "https://")
}

func parseRenderers(s string) ([]string, error) {
	names, err := ParseRenderers(strings.Split(s, ","))
	if err != nil {
		return nil, fmt.Errorf("invalid CHART_RENDERERS: %w", err)
	}
	return names, nil
}

// ParseRenderers normalizes renderer names: lowercased, trimmed, blanks and
// duplicates dropped, first-seen order kept. Unknown names are an error.
func ParseRenderers(names []string) ([]string, error) {
	var out []string
	seen := make(map[string]bool)
	for _, part := range names {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "" || seen[name] {
			continue
		}
		if !slices.Contains(knownRenderers, name) {
			return nil, fmt.Errorf("unknown renderer %q (want one of %s)",
				name, strings.Join(knownRenderers, ", "))
		}
		seen[name] = true
		out = append(out, name)
	}
	if len(out) == 0 {
		return nil, errors.New("at least one renderer is required")
	}
	return out, nil
}
