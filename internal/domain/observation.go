package domain

// Species names a penguin species as spelled in the source CSV.
type Species string

const (
	Adelie    Species = "Adelie"
	Chinstrap Species = "Chinstrap"
	Gentoo    Species = "Gentoo"
)

// CategoryOrder is the fixed legend and trace order. It never depends on
// which species happen to be present in the data.
var CategoryOrder = []Species{Adelie, Chinstrap, Gentoo}

// palette maps each species to its marker color, shared by every renderer.
var palette = map[Species]string{
	Adelie:    "#F28E2B",
	Chinstrap: "#8F63B8",
	Gentoo:    "#2CA7A0",
}

// ColorFor returns the fixed hex color for a species, or "" if the species
// is not one of the known categories.
func ColorFor(s Species) string {
	return palette[s]
}

// Palette returns the colors in CategoryOrder.
func Palette() []string {
	out := make([]string, len(CategoryOrder))
	for i, s := range CategoryOrder {
		out[i] = palette[s]
	}
	return out
}

// Known reports whether s is one of the charted species.
func (s Species) Known() bool {
	_, ok := palette[s]
	return ok
}

// Column names in the source CSV.
const (
	ColSpecies         = "species"
	ColFlipperLengthMM = "flipper_length_mm"
	ColBodyMassG       = "body_mass_g"
	ColBillLengthMM    = "bill_length_mm"
)

// RequiredColumns lists the CSV columns the loader must find.
var RequiredColumns = []string{ColSpecies, ColFlipperLengthMM, ColBodyMassG, ColBillLengthMM}

// RawRecord is one CSV data row after type coercion. Numeric fields hold NaN
// when the cell was "NA", empty, or not a number; Species is "" when missing.
type RawRecord struct {
	Row             int
	Species         string
	FlipperLengthMM float64
	BodyMassG       float64
	BillLengthMM    float64
}

// Observation is a cleaned row: all four fields present, numeric, positive.
type Observation struct {
	Species         Species `json:"species"`
	FlipperLengthMM float64 `json:"flipper_length_mm"`
	BodyMassG       float64 `json:"body_mass_g"`
	BillLengthMM    float64 `json:"bill_length_mm"`
}

// Artifact is one rendered output destined for a sink.
type Artifact struct {
	Name        string // file name, e.g. "plotly.html"
	ContentType string
	Renderer    string
	Body        []byte
}
