package main

import (
	"bytes"
	"math/rand/v2"
	"testing"

	"github.com/couchcryptid/penguin-chart/internal/adapter/csvfile"
	"github.com/couchcryptid/penguin-chart/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Deterministic(t *testing.T) {
	var a, b bytes.Buffer
	require.NoError(t, generate(&a, options{rows: 50, seed: 7, naRate: 0.05}))
	require.NoError(t, generate(&b, options{rows: 50, seed: 7, naRate: 0.05}))
	assert.Equal(t, a.String(), b.String())

	var c bytes.Buffer
	require.NoError(t, generate(&c, options{rows: 50, seed: 8, naRate: 0.05}))
	assert.NotEqual(t, a.String(), c.String())
}

func TestGenerate_ReadableByLoader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, generate(&buf, options{rows: 200, seed: 3, naRate: 0.1}))

	records, err := csvfile.Decode(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, records, 200)

	obs, report := domain.Clean(records)
	assert.NotEmpty(t, obs)
	assert.Positive(t, report.DroppedTotal(), "a 10 percent NA rate should drop some rows")
	for _, o := range obs {
		assert.True(t, o.Species.Known())
	}
}

func TestGenerate_NoNA(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, generate(&buf, options{rows: 30, seed: 1}))
	assert.NotContains(t, buf.String(), "NA")
}

func TestMeasure(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	assert.Equal(t, "3700", measure(rng, dist{mean: 3700}, -1))
	assert.Equal(t, "190", measure(rng, dist{mean: 190}, 0))
	assert.Equal(t, "38.8", measure(rng, dist{mean: 38.8}, 1))
}
