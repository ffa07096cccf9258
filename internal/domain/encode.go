package domain

import "math"

// Mode selects which precomputed y orientation a chart variant uses.
type Mode string

const (
	ModeNormal   Mode = "normal"
	ModeDownward Mode = "downward"
)

// Encoding constants shared by all renderers.
const (
	ChartTitle = "Penguins bubble scatter"

	TickCount = 8

	MinRadiusPx = 3.0
	MaxRadiusPx = 12.0

	xPad = 2.0
	yPad = 100.0

	xTitle        = "Flipper Length (mm)"
	yTitle        = "Body Mass (g)"
	yTitleDown    = "Body Mass (g) (increases downward)"
	sizeTitle     = "Bill length (mm)"
	categoryTitle = "species"
)

// Axis describes one positional channel.
type Axis struct {
	Field     string
	Title     string
	Extent    [2]float64 // data min, max; zero value when the dataset is empty
	Pad       float64
	TickCount int
	Zero      bool
	Reverse   bool
}

// Range returns the padded extent in screen order: [low, high] normally,
// [high, low] when the axis is reversed.
func (a Axis) Range() [2]float64 {
	lo, hi := a.Extent[0]-a.Pad, a.Extent[1]+a.Pad
	if a.Zero {
		lo = math.Min(lo, 0)
		hi = math.Max(hi, 0)
	}
	if a.Reverse {
		return [2]float64{hi, lo}
	}
	return [2]float64{lo, hi}
}

// SizeScale maps bill length to marker area. Area grows linearly across
// Domain from MinRadius² to MaxRadius², so radius grows with the square root.
type SizeScale struct {
	Field        string
	Title        string
	Domain       [2]float64
	RadiusRange  [2]float64
	LegendValues []float64
}

// AreaRange returns the area range in px² (radius squared).
func (s SizeScale) AreaRange() [2]float64 {
	return [2]float64{
		s.RadiusRange[0] * s.RadiusRange[0],
		s.RadiusRange[1] * s.RadiusRange[1],
	}
}

// Area returns the marker area in px² for value v. Values outside Domain are
// clamped. A degenerate domain maps everything to the largest area.
func (s SizeScale) Area(v float64) float64 {
	ar := s.AreaRange()
	span := s.Domain[1] - s.Domain[0]
	if span <= 0 {
		return ar[1]
	}
	t := (v - s.Domain[0]) / span
	t = math.Max(0, math.Min(1, t))
	return ar[0] + t*(ar[1]-ar[0])
}

// Radius returns the marker radius in px for value v.
func (s SizeScale) Radius(v float64) float64 {
	return math.Sqrt(s.Area(v))
}

// Category is one legend entry.
type Category struct {
	Species Species
	Color   string
	Count   int
}

// Point is an encoded observation.
type Point struct {
	Observation
	Color string
	Area  float64
}

// Chart is the renderer-independent chart description.
type Chart struct {
	Title         string
	Mode          Mode
	X             Axis
	Y             Axis
	Size          SizeScale
	CategoryTitle string
	Categories    []Category // fixed order; Count may be zero
	Points        []Point
}

// Present returns the categories that have at least one point, in fixed order.
func (c Chart) Present() []Category {
	out := make([]Category, 0, len(c.Categories))
	for _, cat := range c.Categories {
		if cat.Count > 0 {
			out = append(out, cat)
		}
	}
	return out
}

// Downward returns the variant with body mass increasing down the screen.
// Only the y direction and title differ from the receiver.
func (c Chart) Downward() Chart {
	c.Mode = ModeDownward
	c.Y.Reverse = true
	c.Y.Title = yTitleDown
	return c
}

// Variants returns the normal chart followed by its downward variant.
func (c Chart) Variants() []Chart {
	normal := c
	normal.Mode = ModeNormal
	normal.Y.Reverse = false
	normal.Y.Title = yTitle
	return []Chart{normal, c.Downward()}
}

// Encode maps cleaned observations to the fixed visual encoding.
func Encode(obs []Observation) Chart {
	flipper := extent(obs, func(o Observation) float64 { return o.FlipperLengthMM })
	mass := extent(obs, func(o Observation) float64 { return o.BodyMassG })
	bill := extent(obs, func(o Observation) float64 { return o.BillLengthMM })

	size := SizeScale{
		Field:        ColBillLengthMM,
		Title:        sizeTitle,
		Domain:       bill,
		RadiusRange:  [2]float64{MinRadiusPx, MaxRadiusPx},
		LegendValues: sizeLegendValues(obs, bill),
	}

	counts := make(map[Species]int, len(CategoryOrder))
	points := make([]Point, len(obs))
	for i, o := range obs {
		counts[o.Species]++
		points[i] = Point{
			Observation: o,
			Color:       ColorFor(o.Species),
			Area:        size.Area(o.BillLengthMM),
		}
	}

	categories := make([]Category, len(CategoryOrder))
	for i, s := range CategoryOrder {
		categories[i] = Category{Species: s, Color: ColorFor(s), Count: counts[s]}
	}

	return Chart{
		Title: ChartTitle,
		Mode:  ModeNormal,
		X: Axis{
			Field:     ColFlipperLengthMM,
			Title:     xTitle,
			Extent:    flipper,
			Pad:       xPad,
			TickCount: TickCount,
		},
		Y: Axis{
			Field:     ColBodyMassG,
			Title:     yTitle,
			Extent:    mass,
			Pad:       yPad,
			TickCount: TickCount,
		},
		Size:          size,
		CategoryTitle: categoryTitle,
		Categories:    categories,
		Points:        points,
	}
}

func extent(obs []Observation, value func(Observation) float64) [2]float64 {
	if len(obs) == 0 {
		return [2]float64{}
	}
	lo, hi := value(obs[0]), value(obs[0])
	for _, o := range obs[1:] {
		v := value(o)
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return [2]float64{lo, hi}
}

// sizeLegendValues picks the rounded min, midpoint and max bill length.
// Duplicates collapse so a single-valued domain yields one entry.
func sizeLegendValues(obs []Observation, domain [2]float64) []float64 {
	if len(obs) == 0 {
		return nil
	}
	candidates := []float64{
		math.Round(domain[0]),
		math.Round((domain[0] + domain[1]) / 2),
		math.Round(domain[1]),
	}
	out := make([]float64, 0, len(candidates))
	for _, v := range candidates {
		if len(out) > 0 && out[len(out)-1] == v {
			continue
		}
		out = append(out, v)
	}
	return out
}
