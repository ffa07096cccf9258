// Package plotly renders the chart as a Plotly page. Both y orientations are
// precomputed as relayout payloads; the checkbox only swaps between them.
package plotly

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
const ArtifactName = "plotly.html"

const libraryURL = "https://cdn.plot.ly/plotly-2.35.2.min.js"

//go:embed toggle.js
var toggleScript string

// Renderer implements pipeline.Renderer.
type Renderer struct{}

// NewRenderer returns a Renderer for the Plotly page.
func NewRenderer() *Renderer { return &Renderer{} }

// Name identifies the renderer in config, logs and metrics.
func (r *Renderer) Name() string { return "plotly" }

// Render emits a single HTML artifact.
func (r *Renderer) Render(_ context.Context, chart domain.Chart) ([]domain.Artifact, error) {
	variants := chart.Variants()

	fig, err := json.Marshal(BuildFigure(chart))
	if err != nil {
		return nil, fmt.Errorf("marshal figure: %w", err)
	}
	normal, err := json.Marshal(BuildRelayout(variants[0]))
	if err != nil {
		return nil, fmt.Errorf("marshal normal relayout: %w", err)
	}
	down, err := json.Marshal(BuildRelayout(variants[1]))
	if err != nil {
		return nil, fmt.Errorf("marshal downward relayout: %w", err)
	}

	script := strings.NewReplacer(
		"{{FIGURE}}", string(fig),
		"{{RELAYOUT_NORMAL}}", string(normal),
		"{{RELAYOUT_DOWN}}", string(down),
		"{{TOGGLE_ID}}", page.ToggleID,
		"{{CONTAINER_ID}}", page.ContainerID,
	).Replace(toggleScript)

	container := fmt.Sprintf(`<div id="%s" class="plotly-graph-div" style="height:%dpx; width:%dpx;"></div>`,
		page.ContainerID, height, width)

	body, err := page.Render(page.Page{
		Backend:    "Plotly",
		Title:      chart.Title,
		Libraries:  []string{libraryURL},
		Container:  template.HTML(container), //nolint:gosec // built from constants
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
