package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTicks(t *testing.T) {
	tests := []struct {
		name   string
		lo, hi float64
		count  int
		want   []float64
	}{
		{name: "flipper range", lo: 170, hi: 235, count: 8, want: []float64{170, 180, 190, 200, 210, 220, 230}},
		{name: "body mass range", lo: 2600, hi: 6400, count: 8, want: []float64{3000, 3500, 4000, 4500, 5000, 5500, 6000}},
		{name: "fractional step", lo: 0, hi: 1, count: 5, want: []float64{0, 0.2, 0.4, 0.6, 0.8, 1}},
		{name: "reversed arguments", lo: 235, hi: 170, count: 8, want: []float64{170, 180, 190, 200, 210, 220, 230}},
		{name: "single value", lo: 42, hi: 42, count: 8, want: []float64{42}},
		{name: "zero count", lo: 0, hi: 10, count: 0, want: nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Ticks(tc.lo, tc.hi, tc.count))
		})
	}
}

func TestTicks_NonFinite(t *testing.T) {
	assert.Nil(t, Ticks(math.NaN(), 10, 8))
	assert.Nil(t, Ticks(0, math.Inf(1), 8))
}
