// Package domain models the Palmer penguins measurement data and its
// encoding as a bubble scatter chart.
//
// # Data Source
//
// The input is the palmerpenguins CSV export (one row per measured bird).
// Only four columns are used:
//
//	species            Adelie | Chinstrap | Gentoo
//	flipper_length_mm  x position
//	body_mass_g        y position
//	bill_length_mm     marker size
//
// Other columns (island, bill_depth_mm, sex, year) are ignored.
//
// # Missing Values
//
// "NA" is the R sentinel for an unmeasured value and appears in every numeric
// column of the export. Empty cells and non-numeric text are treated the same
// way. A row with any of the four fields missing is dropped by [Clean]; rows
// are never imputed or repaired.
//
// # Visual Encoding
//
// The encoding is fixed so every renderer draws the same picture:
//
//	Category order:  Adelie, Chinstrap, Gentoo
//	Palette:         #F28E2B, #8F63B8, #2CA7A0
//	Size:            area ∝ bill length, radius 3..12 px (area 9..144 px²)
//	Axes:            no zero baseline, ~8 ticks, x padded 2 mm, y padded 100 g
//
// Marker area, not radius, carries the value; see [SizeScale].
//
// # Modes
//
// Each chart has a normal variant (body mass grows upward) and a downward
// variant where only the y direction and its title change. Renderers get
// both from [Chart.Variants].
package domain
