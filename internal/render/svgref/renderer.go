// Package svgref draws a static SVG of each chart variant with gonum/plot.
// The images are a reference for checking the interactive pages by eye and
// carry no toggle.
package svgref

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"math"
	"strconv"

	"github.com/couchcryptid/penguin-chart/internal/domain"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const (
	// pxToPt converts CSS pixels to points.
	pxToPt = 0.75

	width  vg.Length = 720 * pxToPt
	height vg.Length = 420 * pxToPt

	markerAlpha = 204 // 0.8 opacity
)

// ArtifactName returns the file name for a chart variant.
func ArtifactName(mode domain.Mode) string {
	if mode == domain.ModeDownward {
		return "reference_downward.svg"
	}
	return "reference.svg"
}

// Renderer implements pipeline.Renderer.
type Renderer struct{}

// NewRenderer returns a Renderer for the static SVG references.
func NewRenderer() *Renderer { return &Renderer{} }

// Name identifies the renderer in config, logs and metrics.
func (r *Renderer) Name() string { return "svg" }

// Render emits one SVG per variant, normal first.
func (r *Renderer) Render(ctx context.Context, chart domain.Chart) ([]domain.Artifact, error) {
	variants := chart.Variants()
	artifacts := make([]domain.Artifact, 0, len(variants))
	for _, v := range variants {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p, err := BuildPlot(v)
		if err != nil {
			return nil, fmt.Errorf("%s plot: %w", v.Mode, err)
		}
		body, err := encode(p)
		if err != nil {
			return nil, fmt.Errorf("%s svg: %w", v.Mode, err)
		}
		artifacts = append(artifacts, domain.Artifact{
			Name:        ArtifactName(v.Mode),
			ContentType: "image/svg+xml",
			Renderer:    r.Name(),
			Body:        body,
		})
	}
	return artifacts, nil
}

// BuildPlot lays out one chart variant. A reversed y axis uses an inverted
// scale so body mass grows down the page.
func BuildPlot(c domain.Chart) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = c.Title
	p.X.Label.Text = c.X.Title
	p.Y.Label.Text = c.Y.Title
	p.Legend.Top = true
	p.Legend.Left = false

	applyAxis(&p.X, c.X)
	applyAxis(&p.Y, c.Y)
	if c.Y.Reverse {
		p.Y.Scale = plot.InvertedScale{Normalizer: plot.LinearScale{}}
	}

	p.Add(plotter.NewGrid())

	for _, cat := range c.Present() {
		s, err := speciesScatter(c, cat)
		if err != nil {
			return nil, fmt.Errorf("scatter %s: %w", cat.Species, err)
		}
		p.Add(s)
		p.Legend.Add(string(cat.Species), s)
	}
	return p, nil
}

func applyAxis(axis *plot.Axis, a domain.Axis) {
	axis.Tick.Marker = niceTicker{count: a.TickCount}
	if a.Extent == [2]float64{} {
		return
	}
	r := a.Range()
	axis.Min = math.Min(r[0], r[1])
	axis.Max = math.Max(r[0], r[1])
}

func speciesScatter(c domain.Chart, cat domain.Category) (*plotter.Scatter, error) {
	var pts plotter.XYs
	var radii []vg.Length
	for _, pt := range c.Points {
		if pt.Species != cat.Species {
			continue
		}
		pts = append(pts, plotter.XY{X: pt.FlipperLengthMM, Y: pt.BodyMassG})
		radii = append(radii, vg.Length(math.Sqrt(pt.Area)*pxToPt))
	}

	s, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, err
	}
	fill, err := parseHex(cat.Color, markerAlpha)
	if err != nil {
		return nil, err
	}
	s.GlyphStyle = draw.GlyphStyle{
		Color:  fill,
		Radius: vg.Length(domain.MaxRadiusPx * pxToPt / 2),
		Shape:  draw.CircleGlyph{},
	}
	s.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		return draw.GlyphStyle{Color: fill, Radius: radii[i], Shape: draw.CircleGlyph{}}
	}
	return s, nil
}

func encode(p *plot.Plot) ([]byte, error) {
	w, err := p.WriterTo(width, height, "svg")
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// parseHex converts "#RRGGBB" to a color with the given alpha.
func parseHex(hex string, alpha uint8) (color.NRGBA, error) {
	if len(hex) != 7 || hex[0] != '#' {
		return color.NRGBA{}, fmt.Errorf("invalid color %q", hex)
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: alpha}, nil
}

// niceTicker places round-number ticks and labels them without trailing zeros.
type niceTicker struct {
	count int
}

// Ticks implements plot.Ticker.
func (t niceTicker) Ticks(lo, hi float64) []plot.Tick {
	values := domain.Ticks(lo, hi, t.count)
	ticks := make([]plot.Tick, len(values))
	for i, v := range values {
		ticks[i] = plot.Tick{Value: v, Label: strconv.FormatFloat(v, 'f', -1, 64)}
	}
	return ticks
}
