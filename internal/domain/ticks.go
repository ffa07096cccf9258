package domain

import "math"

var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

// Ticks returns roughly count evenly spaced round values covering [lo, hi].
// Step sizes are 1, 2 or 5 times a power of ten. The result is ascending
// regardless of argument order. Renderers that draw their own axes use it;
// Vega-Lite and Plotly compute equivalent ticks client-side.
func Ticks(lo, hi float64, count int) []float64 {
	if count <= 0 || math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return nil
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	if lo == hi {
		return []float64{lo}
	}

	inc := tickIncrement(lo, hi, count)
	if inc == 0 || math.IsInf(inc, 0) {
		return nil
	}

	var ticks []float64
	if inc > 0 {
		first, last := math.Ceil(lo/inc), math.Floor(hi/inc)
		for i := first; i <= last; i++ {
			ticks = append(ticks, i*inc)
		}
		return ticks
	}

	// Negative increments encode 1/step so fractional ticks divide exactly.
	inv := -inc
	first, last := math.Ceil(lo*inv), math.Floor(hi*inv)
	for i := first; i <= last; i++ {
		ticks = append(ticks, i/inv)
	}
	return ticks
}

// tickIncrement returns the step when it is >= 1, or the negated inverse of
// the step when it is < 1.
func tickIncrement(lo, hi float64, count int) float64 {
	step := (hi - lo) / float64(count)
	power := math.Floor(math.Log10(step))
	errRatio := step / math.Pow(10, power)

	factor := 1.0
	switch {
	case errRatio >= e10:
		factor = 10
	case errRatio >= e5:
		factor = 5
	case errRatio >= e2:
		factor = 2
	}

	if power >= 0 {
		return factor * math.Pow(10, power)
	}
	return -math.Pow(10, -power) / factor
}
