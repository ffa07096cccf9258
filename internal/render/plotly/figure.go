package plotly

import (
	"github.com/couchcryptid/penguin-chart/internal/domain"
)

const (
	width         = 960
	height        = 560
	markerOpacity = 0.8
	// Plotly marker sizes are diameters.
	maxMarkerPx = 2 * domain.MaxRadiusPx
	minMarkerPx = 2 * domain.MinRadiusPx
)

// Figure is a Plotly figure: traces plus layout.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// Trace is one scatter trace, one per species.
type Trace struct {
	Type          string    `json:"type"`
	Mode          string    `json:"mode"`
	Name          string    `json:"name"`
	LegendGroup   string    `json:"legendgroup"`
	X             []float64 `json:"x"`
	Y             []float64 `json:"y"`
	Marker        Marker    `json:"marker"`
	HoverTemplate string    `json:"hovertemplate"`
}

// Marker styles a trace's bubbles.
type Marker struct {
	Color    string    `json:"color"`
	Opacity  float64   `json:"opacity"`
	Size     []float64 `json:"size"`
	SizeMode string    `json:"sizemode"`
	SizeRef  float64   `json:"sizeref"`
	SizeMin  float64   `json:"sizemin"`
	Line     Line      `json:"line"`
}

// Line is a marker outline.
type Line struct {
	Width float64 `json:"width"`
	Color string  `json:"color"`
}

// Layout holds the figure size, legend and axes.
type Layout struct {
	Autosize     bool       `json:"autosize"`
	Width        int        `json:"width"`
	Height       int        `json:"height"`
	Margin       Margin     `json:"margin"`
	PlotBGColor  string     `json:"plot_bgcolor"`
	PaperBGColor string     `json:"paper_bgcolor"`
	Legend       Legend     `json:"legend"`
	XAxis        LayoutAxis `json:"xaxis"`
	YAxis        LayoutAxis `json:"yaxis"`
}

// Margin is the plot margin in px.
type Margin struct {
	L int `json:"l"`
	R int `json:"r"`
	T int `json:"t"`
	B int `json:"b"`
}

// Legend configures the species legend.
type Legend struct {
	Title      Title  `json:"title"`
	ItemSizing string `json:"itemsizing"`
	TraceOrder string `json:"traceorder"`
}

// Title is a text label.
type Title struct {
	Text string `json:"text"`
}

// LayoutAxis configures one axis of the layout.
type LayoutAxis struct {
	Title     Title       `json:"title"`
	ShowGrid  bool        `json:"showgrid"`
	Ticks     string      `json:"ticks"`
	ZeroLine  bool        `json:"zeroline"`
	RangeMode string      `json:"rangemode"`
	NTicks    int         `json:"nticks"`
	AutoRange bool        `json:"autorange"`
	Range     *[2]float64 `json:"range,omitempty"`
}

// BuildFigure converts the chart into one trace per present species in the
// fixed category order. The y axis starts in the normal orientation.
func BuildFigure(c domain.Chart) Figure {
	normal := c.Variants()[0]

	traces := make([]Trace, 0, len(c.Categories))
	ref := SizeRef(c.Size.Domain[1])
	for _, cat := range c.Present() {
		t := Trace{
			Type:        "scatter",
			Mode:        "markers",
			Name:        string(cat.Species),
			LegendGroup: string(cat.Species),
			X:           make([]float64, 0, cat.Count),
			Y:           make([]float64, 0, cat.Count),
			Marker: Marker{
				Color:    cat.Color,
				Opacity:  markerOpacity,
				Size:     make([]float64, 0, cat.Count),
				SizeMode: "area",
				SizeRef:  ref,
				SizeMin:  minMarkerPx,
				Line:     Line{Width: 1, Color: "white"},
			},
			HoverTemplate: hoverTemplate(normal),
		}
		for _, p := range c.Points {
			if p.Species != cat.Species {
				continue
			}
			t.X = append(t.X, p.FlipperLengthMM)
			t.Y = append(t.Y, p.BodyMassG)
			t.Marker.Size = append(t.Marker.Size, p.BillLengthMM)
		}
		traces = append(traces, t)
	}

	return Figure{
		Data: traces,
		Layout: Layout{
			Width:        width,
			Height:       height,
			Margin:       Margin{L: 90, R: 190, T: 30, B: 70},
			PlotBGColor:  "#ffffff",
			PaperBGColor: "#ffffff",
			Legend:       Legend{Title: Title{Text: c.CategoryTitle}, ItemSizing: "constant", TraceOrder: "normal"},
			XAxis:        layoutAxis(c, normal.X),
			YAxis:        layoutAxis(c, normal.Y),
		},
	}
}

// SizeRef scales Plotly's area sizing so maxValue is drawn maxMarkerPx wide,
// the same radius the other back ends give the largest bill.
// In area mode Plotly draws a diameter of sqrt(size/sizeref).
func SizeRef(maxValue float64) float64 {
	if maxValue <= 0 {
		return 1
	}
	return maxValue / (maxMarkerPx * maxMarkerPx)
}

// Relayout is a Plotly.relayout payload.
type Relayout map[string]any

// BuildRelayout returns the y-axis update that switches the plot to the
// variant's orientation. Ranges are explicit so autorange never sticks.
func BuildRelayout(variant domain.Chart) Relayout {
	r := Relayout{"yaxis.title.text": variant.Y.Title}
	switch {
	case len(variant.Points) > 0:
		r["yaxis.autorange"] = false
		r["yaxis.range"] = variant.Y.Range()
	case variant.Y.Reverse:
		r["yaxis.autorange"] = "reversed"
	default:
		r["yaxis.autorange"] = true
	}
	return r
}

func layoutAxis(c domain.Chart, a domain.Axis) LayoutAxis {
	la := LayoutAxis{
		Title:     Title{Text: a.Title},
		ShowGrid:  true,
		Ticks:     "outside",
		ZeroLine:  a.Zero,
		RangeMode: "normal",
		NTicks:    a.TickCount,
		AutoRange: len(c.Points) == 0,
	}
	if len(c.Points) > 0 {
		r := a.Range()
		la.Range = &r
	}
	return la
}

func hoverTemplate(c domain.Chart) string {
	return c.CategoryTitle + "=%{fullData.name}<br>" +
		c.X.Title + "=%{x}<br>" +
		c.Y.Title + "=%{y}<br>" +
		c.Size.Title + "=%{marker.size}<extra></extra>"
}
