package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var nan = math.NaN()

func rawRow(row int, species string, flipper, mass, bill float64) RawRecord {
	return RawRecord{Row: row, Species: species, FlipperLengthMM: flipper, BodyMassG: mass, BillLengthMM: bill}
}

func TestClean(t *testing.T) {
	t.Run("keeps complete rows in input order", func(t *testing.T) {
		obs, report := Clean([]RawRecord{
			rawRow(1, "Gentoo", 217, 5200, 46.5),
			rawRow(2, "Adelie", 181, 3750, 39.1),
		})

		require.Len(t, obs, 2)
		assert.Equal(t, Gentoo, obs[0].Species)
		assert.Equal(t, Adelie, obs[1].Species)
		assert.Equal(t, 39.1, obs[1].BillLengthMM)
		assert.Equal(t, 2, report.RawRows)
		assert.Equal(t, 2, report.Kept)
		assert.Zero(t, report.DroppedTotal())
	})

	t.Run("drops row with NA bill length", func(t *testing.T) {
		obs, report := Clean([]RawRecord{rawRow(1, "Adelie", 181, 3750, nan)})

		assert.Empty(t, obs)
		assert.Equal(t, 1, report.Dropped[DropMissingNumeric])
	})

	t.Run("drops row missing any numeric field", func(t *testing.T) {
		obs, report := Clean([]RawRecord{
			rawRow(1, "Adelie", nan, 3750, 39.1),
			rawRow(2, "Adelie", 181, nan, 39.1),
			rawRow(3, "Adelie", 181, 3750, nan),
		})

		assert.Empty(t, obs)
		assert.Equal(t, 3, report.Dropped[DropMissingNumeric])
	})

	t.Run("drops row missing species", func(t *testing.T) {
		obs, report := Clean([]RawRecord{rawRow(1, "", 181, 3750, 39.1)})

		assert.Empty(t, obs)
		assert.Equal(t, 1, report.Dropped[DropMissingSpecies])
	})

	t.Run("drops unknown species", func(t *testing.T) {
		obs, report := Clean([]RawRecord{rawRow(1, "Emperor", 181, 3750, 39.1)})

		assert.Empty(t, obs)
		assert.Equal(t, 1, report.Dropped[DropUnknownSpecies])
	})

	t.Run("drops non-positive and infinite values", func(t *testing.T) {
		obs, report := Clean([]RawRecord{
			rawRow(1, "Adelie", 0, 3750, 39.1),
			rawRow(2, "Adelie", 181, -1, 39.1),
			rawRow(3, "Adelie", 181, 3750, math.Inf(1)),
		})

		assert.Empty(t, obs)
		assert.Equal(t, 3, report.Dropped[DropInvalidNumeric])
	})

	t.Run("empty input is not an error", func(t *testing.T) {
		obs, report := Clean(nil)

		assert.Empty(t, obs)
		assert.Zero(t, report.RawRows)
		assert.Zero(t, report.Kept)
	})
}

func TestClean_ResultIsSubsetOfInput(t *testing.T) {
	records := []RawRecord{
		rawRow(1, "Adelie", 181, 3750, 39.1),
		rawRow(2, "Adelie", 186, 3800, nan),
		rawRow(3, "", 195, 3250, 40.3),
		rawRow(4, "Chinstrap", 192, 3500, 46.5),
		rawRow(5, "Gentoo", nan, nan, nan),
		rawRow(6, "Gentoo", 211, 4500, 46.1),
	}

	obs, report := Clean(records)

	require.Len(t, obs, 3)
	assert.Equal(t, len(records), report.Kept+report.DroppedTotal())
	for _, o := range obs {
		found := false
		for _, r := range records {
			if string(o.Species) == r.Species &&
				o.FlipperLengthMM == r.FlipperLengthMM &&
				o.BodyMassG == r.BodyMassG &&
				o.BillLengthMM == r.BillLengthMM {
				found = true
				break
			}
		}
		assert.True(t, found, "observation %+v not present in input", o)
	}
}

func TestColorFor(t *testing.T) {
	assert.Equal(t, "#F28E2B", ColorFor(Adelie))
	assert.Equal(t, "#8F63B8", ColorFor(Chinstrap))
	assert.Equal(t, "#2CA7A0", ColorFor(Gentoo))
	assert.Empty(t, ColorFor("Emperor"))
	assert.Equal(t, []string{"#F28E2B", "#8F63B8", "#2CA7A0"}, Palette())
}
