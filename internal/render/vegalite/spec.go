package vegalite

import (
	"math"

	"github.com/couchcryptid/penguin-chart/internal/domain"
)

const (
	schemaURL = "https://vega.github.io/schema/vega-lite/v5.json"

	width   = 850
	height  = 450
	opacity = 0.8
	dimmed  = 0.1

	// LegendParam names the legend-bound species selection.
	LegendParam = "legend_species"
)

// Spec is the subset of a Vega-Lite v5 top-level unit spec this renderer emits.
type Spec struct {
	Schema     string   `json:"$schema"`
	Background string   `json:"background"`
	Width      int      `json:"width"`
	Height     int      `json:"height"`
	Data       Data     `json:"data"`
	Params     []Param  `json:"params"`
	Mark       Mark     `json:"mark"`
	Encoding   Encoding `json:"encoding"`
}

// Data holds inline observations.
type Data struct {
	Values []domain.Observation `json:"values"`
}

// Param is a named selection parameter.
type Param struct {
	Name   string    `json:"name"`
	Select Selection `json:"select"`
	Bind   string    `json:"bind"`
}

// Selection selects points by field values.
type Selection struct {
	Type   string   `json:"type"`
	Fields []string `json:"fields"`
}

// Mark styles every point.
type Mark struct {
	Type        string  `json:"type"`
	Stroke      string  `json:"stroke"`
	StrokeWidth float64 `json:"strokeWidth"`
}

// Encoding maps observation fields to visual channels.
type Encoding struct {
	X       PositionDef    `json:"x"`
	Y       PositionDef    `json:"y"`
	Color   CategoryDef    `json:"color"`
	Size    SizeDef        `json:"size"`
	Opacity ConditionalDef `json:"opacity"`
	Tooltip []FieldDef     `json:"tooltip"`
}

// FieldDef names a data field and its measurement type.
type FieldDef struct {
	Field string `json:"field"`
	Type  string `json:"type"`
	Title string `json:"title,omitempty"`
}

// PositionDef encodes an x or y channel.
type PositionDef struct {
	FieldDef
	Scale PositionScale `json:"scale"`
	Axis  Axis          `json:"axis"`
}

// PositionScale fixes a position domain and orientation.
type PositionScale struct {
	Zero    bool        `json:"zero"`
	Nice    bool        `json:"nice"`
	Reverse bool        `json:"reverse,omitempty"`
	Domain  *[2]float64 `json:"domain,omitempty"`
}

// Axis sets the approximate tick count.
type Axis struct {
	TickCount int `json:"tickCount"`
}

// CategoryDef encodes species as color.
type CategoryDef struct {
	FieldDef
	Scale  CategoryScale `json:"scale"`
	Legend Legend        `json:"legend"`
}

// CategoryScale pins the species order and palette.
type CategoryScale struct {
	Domain []domain.Species `json:"domain"`
	Range  []string         `json:"range"`
}

// SizeDef encodes bill length as marker area.
type SizeDef struct {
	FieldDef
	Scale  SizeScale `json:"scale"`
	Legend Legend    `json:"legend"`
}

// SizeScale maps the bill domain onto pixel areas.
type SizeScale struct {
	Zero   bool        `json:"zero"`
	Domain *[2]float64 `json:"domain,omitempty"`
	Range  [2]float64  `json:"range"`
}

// Legend titles a legend and optionally fixes its entries.
type Legend struct {
	Title  string    `json:"title"`
	Values []float64 `json:"values,omitempty"`
}

// ConditionalDef is a value that switches on a selection.
type ConditionalDef struct {
	Condition Condition `json:"condition"`
	Value     float64   `json:"value"`
}

// Condition applies Value while Param matches.
type Condition struct {
	Param string  `json:"param"`
	Value float64 `json:"value"`
}

// BuildSpec converts one chart variant into a Vega-Lite spec. Vega-Lite sizes
// are true pixel areas, so the radius range becomes pi*r² rounded to 0.1.
func BuildSpec(c domain.Chart) Spec {
	values := make([]domain.Observation, len(c.Points))
	for i, p := range c.Points {
		values[i] = p.Observation
	}

	order := make([]domain.Species, len(c.Categories))
	colors := make([]string, len(c.Categories))
	for i, cat := range c.Categories {
		order[i] = cat.Species
		colors[i] = cat.Color
	}

	return Spec{
		Schema:     schemaURL,
		Background: "#ffffff",
		Width:      width,
		Height:     height,
		Data:       Data{Values: values},
		Params: []Param{{
			Name:   LegendParam,
			Select: Selection{Type: "point", Fields: []string{domain.ColSpecies}},
			Bind:   "legend",
		}},
		Mark: Mark{Type: "circle", Stroke: "#ffffff", StrokeWidth: 1},
		Encoding: Encoding{
			X: position(c, c.X),
			Y: position(c, c.Y),
			Color: CategoryDef{
				FieldDef: FieldDef{Field: domain.ColSpecies, Type: "nominal", Title: c.CategoryTitle},
				Scale:    CategoryScale{Domain: order, Range: colors},
				Legend:   Legend{Title: c.CategoryTitle},
			},
			Size: SizeDef{
				FieldDef: FieldDef{Field: c.Size.Field, Type: "quantitative", Title: c.Size.Title},
				Scale: SizeScale{
					Domain: dataDomain(c, c.Size.Domain),
					Range:  pixelAreas(c.Size.RadiusRange),
				},
				Legend: Legend{Title: c.Size.Title, Values: c.Size.LegendValues},
			},
			Opacity: ConditionalDef{
				Condition: Condition{Param: LegendParam, Value: opacity},
				Value:     dimmed,
			},
			Tooltip: []FieldDef{
				{Field: domain.ColSpecies, Type: "nominal"},
				{Field: c.X.Field, Type: "quantitative"},
				{Field: c.Y.Field, Type: "quantitative"},
				{Field: c.Size.Field, Type: "quantitative"},
			},
		},
	}
}

func position(c domain.Chart, a domain.Axis) PositionDef {
	var dom *[2]float64
	if len(c.Points) > 0 {
		r := a.Range()
		if a.Reverse {
			r[0], r[1] = r[1], r[0]
		}
		dom = &r
	}
	return PositionDef{
		FieldDef: FieldDef{Field: a.Field, Type: "quantitative", Title: a.Title},
		Scale:    PositionScale{Zero: a.Zero, Reverse: a.Reverse, Domain: dom},
		Axis:     Axis{TickCount: a.TickCount},
	}
}

func dataDomain(c domain.Chart, d [2]float64) *[2]float64 {
	if len(c.Points) == 0 {
		return nil
	}
	return &d
}

func pixelAreas(radius [2]float64) [2]float64 {
	area := func(r float64) float64 { return math.Round(math.Pi*r*r*10) / 10 }
	return [2]float64{area(radius[0]), area(radius[1])}
}
