// Package vegalite renders the chart as a Vega-Lite page with two
// precomputed specs, one per y orientation.
package vegalite

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"strings"

	"github.com/couchcryptid/penguin-chart/internal/domain"
	"github.com/couchcryptid/penguin-chart/internal/render/page"
)

// ArtifactName is the file the page is written to.
const ArtifactName = "vegalite.html"

//go:embed toggle.js
var toggleScript string

var libraries = []string{
	"https://cdn.jsdelivr.net/npm/vega@5",
	"https://cdn.jsdelivr.net/npm/vega-lite@5",
	"https://cdn.jsdelivr.net/npm/vega-embed@6",
}

// Renderer implements pipeline.Renderer.
type Renderer struct{}

// NewRenderer returns a Renderer for the Vega-Lite page.
func NewRenderer() *Renderer { return &Renderer{} }

// Name identifies the renderer in config, logs and metrics.
func (r *Renderer) Name() string { return "vegalite" }

// Render emits a single HTML artifact embedding both chart variants.
func (r *Renderer) Render(_ context.Context, chart domain.Chart) ([]domain.Artifact, error) {
	variants := chart.Variants()
	normal, err := json.Marshal(BuildSpec(variants[0]))
	if err != nil {
		return nil, fmt.Errorf("marshal normal spec: %w", err)
	}
	down, err := json.Marshal(BuildSpec(variants[1]))
	if err != nil {
		return nil, fmt.Errorf("marshal downward spec: %w", err)
	}

	script := strings.NewReplacer(
		"{{SPEC_NORMAL}}", string(normal),
		"{{SPEC_DOWN}}", string(down),
		"{{TOGGLE_ID}}", page.ToggleID,
		"{{CONTAINER_ID}}", page.ContainerID,
	).Replace(toggleScript)

	body, err := page.Render(page.Page{
		Backend:    "Vega-Lite",
		Title:      chart.Title,
		Libraries:  libraries,
		PointCount: len(chart.Points),
		Script:     template.JS(script), //nolint:gosec // JSON is HTML-escaped by encoding/json
	})
	if err != nil {
		return nil, err
	}

	return []domain.Artifact{{
		Name:        ArtifactName,
		ContentType: "text/html; charset=utf-8",
		Renderer:    r.Name(),
		Body:        body,
	}}, nil
}
