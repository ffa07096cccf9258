// Command genmock writes a synthetic penguin CSV in the penglings.csv layout,
// including NA cells, for fixtures and demos. Output is fully
// determined by -seed.
//
// Usage:
//
//	go run ./cmd/genmock -out penglings.csv -rows 344 -seed 7 -na-rate 0.03
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"

	"github.com/couchcryptid/penguin-chart/internal/domain"
)

var header = []string{
	"rowid", "species", "island", "bill_length_mm", "bill_depth_mm",
	"flipper_length_mm", "body_mass_g", "sex", "year",
}

type dist struct {
	mean, sd float64
}

// profile holds per-species measurement distributions.
type profile struct {
	species domain.Species
	weight  float64 // share of rows
	islands []string
	bill    dist
	depth   dist
	flipper dist
	mass    dist
}

var profiles = []profile{
	{domain.Adelie, 0.44, []string{"Torgersen", "Biscoe", "Dream"}, dist{38.8, 2.7}, dist{18.3, 1.2}, dist{190, 6.5}, dist{3700, 460}},
	{domain.Chinstrap, 0.20, []string{"Dream"}, dist{48.8, 3.3}, dist{18.4, 1.1}, dist{196, 7.1}, dist{3733, 384}},
	{domain.Gentoo, 0.36, []string{"Biscoe"}, dist{47.5, 3.1}, dist{15.0, 1.0}, dist{217, 6.5}, dist{5076, 504}},
}

type options struct {
	rows   int
	seed   uint64
	naRate float64
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "penglings.csv", "output CSV path")
	rows := flag.Int("rows", 344, "number of data rows")
	seed := flag.Uint64("seed", 1, "random seed")
	naRate := flag.Float64("na-rate", 0.03, "probability that any single cell is NA")
	flag.Parse()

	if *rows < 0 || *naRate < 0 || *naRate > 1 {
		flag.Usage()
		return fmt.Errorf("invalid flags: -rows must be >= 0 and -na-rate within [0, 1]")
	}

	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		return err
	}
	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := generate(f, options{rows: *rows, seed: *seed, naRate: *naRate}); err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	log.Printf("wrote %d rows to %s", *rows, *out)
	return nil
}

func generate(w io.Writer, opts options) error {
	rng := rand.New(rand.NewPCG(opts.seed, opts.seed^0x9e3779b97f4a7c15))
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}

	for i := 1; i <= opts.rows; i++ {
		p := pickProfile(rng)
		na := func(v string) string {
			if rng.Float64() < opts.naRate {
				return "NA"
			}
			return v
		}
		record := []string{
			strconv.Itoa(i),
			na(string(p.species)),
			p.islands[rng.IntN(len(p.islands))],
			na(measure(rng, p.bill, 1)),
			na(measure(rng, p.depth, 1)),
			na(measure(rng, p.flipper, 0)),
			na(measure(rng, p.mass, -1)),
			na([]string{"male", "female"}[rng.IntN(2)]),
			strconv.Itoa(2007 + rng.IntN(3)),
		}
		cw.Write(record) //nolint:errcheck // checked via cw.Error below
	}
	cw.Flush()
	return cw.Error()
}

func pickProfile(rng *rand.Rand) profile {
	r := rng.Float64()
	for _, p := range profiles {
		if r < p.weight {
			return p
		}
		r -= p.weight
	}
	return profiles[len(profiles)-1]
}

// measure draws a normal value rounded to the given number of decimals.
// Negative decimals round to tens, hundreds and so on.
func measure(rng *rand.Rand, d dist, decimals int) string {
	v := d.mean + rng.NormFloat64()*d.sd
	scale := math.Pow(10, float64(decimals))
	v = math.Round(v*scale) / scale
	if decimals < 0 {
		decimals = 0
	}
	return strconv.FormatFloat(v, 'f', decimals, 64)
}
