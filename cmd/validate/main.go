// Command validate checks an input CSV and a rendered output directory
// against the chart's invariants: cleaning keeps a strict subset of complete
// rows, the palette and category order never move, the downward variant only
// changes the y axis, and each interactive page carries the toggle.
//
// Usage:
//
//	go run ./cmd/validate -input penglings.csv -output-dir .
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"slices"

	"github.com/couchcryptid/penguin-chart/internal/adapter/csvfile"
	"github.com/couchcryptid/penguin-chart/internal/domain"
	"github.com/couchcryptid/penguin-chart/internal/render/page"
	"github.com/couchcryptid/penguin-chart/internal/render/plotly"
	"github.com/couchcryptid/penguin-chart/internal/render/vegalite"
	"github.com/google/go-cmp/cmp"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	input := flag.String("input", "penglings.csv", "penguin CSV to validate")
	outputDir := flag.String("output-dir", "", "directory with rendered pages (skips artifact checks when empty)")
	flag.Parse()

	os.Exit(run(os.Stdout, *input, *outputDir))
}

func run(w io.Writer, inputPath, outputDir string) int {
	fmt.Fprintln(w, "=== Penguin Chart Integrity Validation ===")
	fmt.Fprintln(w)

	data, err := os.ReadFile(inputPath)
	if err != nil {
		fmt.Fprintf(w, "FATAL: read input: %v\n", err)
		return 1
	}
	records, err := csvfile.Decode(data)
	if err != nil {
		fmt.Fprintf(w, "FATAL: decode input: %v\n", err)
		return 1
	}
	obs, report := domain.Clean(records)
	chart := domain.Encode(obs)

	phases := []*phase{
		validateCleaning(records, obs, report),
		validatePalette(obs),
		validateVariants(chart),
	}
	if outputDir != "" {
		phases = append(phases, validateArtifacts(outputDir, len(obs)))
	}

	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(w, "  %-42s %s\n", p.name, status)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Rows: %d read, %d plotted\n", report.RawRows, report.Kept)

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(w, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(w, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(w, "\nAll validations passed.")
		return 0
	}
	fmt.Fprintln(w, "\nValidation FAILED.")
	return 1
}

// validateCleaning checks that every kept row is complete and appears, in
// order, among the raw rows.
func validateCleaning(records []domain.RawRecord, obs []domain.Observation, report domain.CleanReport) *phase {
	p := &phase{name: "Cleaning: complete rows, strict subset"}

	if report.RawRows != len(records) {
		p.errorf("report counts %d raw rows, input has %d", report.RawRows, len(records))
	}
	if report.Kept+report.DroppedTotal() != report.RawRows {
		p.errorf("kept %d + dropped %d != raw %d", report.Kept, report.DroppedTotal(), report.RawRows)
	}

	next := 0
	for i, o := range obs {
		if !o.Species.Known() {
			p.errorf("observation %d: unknown species %q", i, o.Species)
		}
		for _, v := range []float64{o.FlipperLengthMM, o.BodyMassG, o.BillLengthMM} {
			if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
				p.errorf("observation %d: invalid measurement %v", i, v)
			}
		}
		found := false
		for ; next < len(records); next++ {
			r := records[next]
			if string(o.Species) == r.Species && o.FlipperLengthMM == r.FlipperLengthMM &&
				o.BodyMassG == r.BodyMassG && o.BillLengthMM == r.BillLengthMM {
				found = true
				next++
				break
			}
		}
		if !found {
			p.errorf("observation %d (%s) has no matching raw row in order", i, o.Species)
		}
	}
	return p
}

// validatePalette encodes the rows forwards and backwards and checks that
// colors and category order are identical and fixed.
func validatePalette(obs []domain.Observation) *phase {
	p := &phase{name: "Encoding: fixed palette and order"}

	reversed := slices.Clone(obs)
	slices.Reverse(reversed)
	fwd, rev := domain.Encode(obs), domain.Encode(reversed)

	if diff := cmp.Diff(fwd.Categories, rev.Categories); diff != "" {
		p.errorf("categories depend on row order (-forward +reversed):\n%s", diff)
	}
	for i, cat := range fwd.Categories {
		if i >= len(domain.CategoryOrder) || cat.Species != domain.CategoryOrder[i] {
			p.errorf("category %d is %s", i, cat.Species)
		}
		if cat.Color != domain.ColorFor(cat.Species) {
			p.errorf("%s colored %s, want %s", cat.Species, cat.Color, domain.ColorFor(cat.Species))
		}
	}
	for i, pt := range fwd.Points {
		if pt.Color != domain.ColorFor(pt.Species) {
			p.errorf("point %d (%s) colored %s", i, pt.Species, pt.Color)
		}
	}
	return p
}

// validateVariants checks that the downward variant differs from the normal
// one only in y direction and title.
func validateVariants(chart domain.Chart) *phase {
	p := &phase{name: "Encoding: downward flips only y"}

	variants := chart.Variants()
	normal, down := variants[0], variants[1]
	if normal.Y.Reverse || !down.Y.Reverse {
		p.errorf("y reverse: normal=%v downward=%v", normal.Y.Reverse, down.Y.Reverse)
	}
	if normal.Y.Title == down.Y.Title {
		p.errorf("y title unchanged: %q", down.Y.Title)
	}

	down.Mode, down.Y.Reverse, down.Y.Title = normal.Mode, normal.Y.Reverse, normal.Y.Title
	if diff := cmp.Diff(normal, down); diff != "" {
		p.errorf("variants differ beyond y (-normal +downward):\n%s", diff)
	}
	return p
}

// validateArtifacts checks each interactive page for the toggle, its label and
// the plotted point count.
func validateArtifacts(dir string, points int) *phase {
	p := &phase{name: "Artifacts: toggle present"}

	want := [][]byte{
		[]byte(`id="` + page.ToggleID + `"`),
		[]byte(page.ToggleLabel),
		[]byte(fmt.Sprintf("%d points shown", points)),
	}
	for _, name := range []string{vegalite.ArtifactName, plotly.ArtifactName} {
		body, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			p.errorf("%s: %v", name, err)
			continue
		}
		for _, w := range want {
			if !bytes.Contains(body, w) {
				p.errorf("%s: missing %q", name, w)
			}
		}
	}
	return p
}
