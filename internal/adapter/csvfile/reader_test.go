package csvfile

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/couchcryptid/penguin-chart/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePath = "testdata/penguins_sample.csv"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubFetcher struct {
	body []byte
	err  error
	url  string
}

func (s *stubFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	s.url = url
	return s.body, s.err
}

func TestReader_Extract_Sample(t *testing.T) {
	r := NewReader(samplePath, nil, discardLogger())

	records, err := r.Extract(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 13)

	first := records[0]
	assert.Equal(t, 1, first.Row)
	assert.Equal(t, "Adelie", first.Species)
	assert.Equal(t, 181.0, first.FlipperLengthMM)
	assert.Equal(t, 3750.0, first.BodyMassG)
	assert.Equal(t, 39.1, first.BillLengthMM)

	// Row 6: Adelie, 181, 3750, NA bill length.
	assert.Equal(t, "Adelie", records[5].Species)
	assert.True(t, math.IsNaN(records[5].BillLengthMM))

	// Row 9: non-numeric body mass coerces to NaN.
	assert.True(t, math.IsNaN(records[8].BodyMassG))

	// Row 12: NA species.
	assert.Empty(t, records[11].Species)

	// Row 13: empty bill length cell.
	assert.True(t, math.IsNaN(records[12].BillLengthMM))
}

func TestReader_Extract_CleansToExpectedSubset(t *testing.T) {
	records, err := NewReader(samplePath, nil, discardLogger()).Extract(context.Background())
	require.NoError(t, err)

	obs, report := domain.Clean(records)
	assert.Len(t, obs, 8)
	assert.Equal(t, 4, report.Dropped[domain.DropMissingNumeric])
	assert.Equal(t, 1, report.Dropped[domain.DropMissingSpecies])

	for _, o := range obs {
		assert.False(t, o.Species == domain.Adelie && o.FlipperLengthMM == 181 && o.BodyMassG == 3750 && o.BillLengthMM != 39.1,
			"row with NA bill length must be excluded")
	}
}

func TestReader_Extract_MissingFile(t *testing.T) {
	r := NewReader(filepath.Join(t.TempDir(), "penglings.csv"), nil, discardLogger())

	_, err := r.Extract(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReader_Extract_Remote(t *testing.T) {
	body, err := os.ReadFile(samplePath)
	require.NoError(t, err)
	f := &stubFetcher{body: body}

	r := NewReader("https://example.com/penglings.csv", f, discardLogger())
	records, err := r.Extract(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 13)
	assert.Equal(t, "https://example.com/penglings.csv", f.url)
}

func TestReader_Extract_RemoteError(t *testing.T) {
	f := &stubFetcher{err: errors.New("status 404")}
	r := NewReader("http://example.com/missing.csv", f, discardLogger())

	_, err := r.Extract(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestReader_Extract_RemoteWithoutFetcher(t *testing.T) {
	r := NewReader("http://example.com/penglings.csv", nil, discardLogger())

	_, err := r.Extract(context.Background())
	require.Error(t, err)
}

func TestDecode(t *testing.T) {
	t.Run("header only yields empty dataset", func(t *testing.T) {
		records, err := Decode([]byte("species,flipper_length_mm,body_mass_g,bill_length_mm\n"))
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("empty file is an error", func(t *testing.T) {
		_, err := Decode([]byte("  \n"))
		require.Error(t, err)
	})

	t.Run("missing required column", func(t *testing.T) {
		_, err := Decode([]byte("species,flipper_length_mm,body_mass_g\nAdelie,181,3750\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bill_length_mm")
	})

	t.Run("column order does not matter", func(t *testing.T) {
		data := []byte("bill_length_mm,body_mass_g,species,flipper_length_mm\n39.1,3750,Adelie,181\n")
		records, err := Decode(data)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, domain.RawRecord{Row: 1, Species: "Adelie", FlipperLengthMM: 181, BodyMassG: 3750, BillLengthMM: 39.1}, records[0])
	})

	t.Run("byte order mark is ignored", func(t *testing.T) {
		data := []byte("\xef\xbb\xbfspecies,flipper_length_mm,body_mass_g,bill_length_mm\nGentoo,217,5200,46.5\n")
		records, err := Decode(data)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "Gentoo", records[0].Species)
	})

	t.Run("space padded header names", func(t *testing.T) {
		data := []byte("species, flipper_length_mm, body_mass_g, bill_length_mm\nAdelie,181,3750,39.1\n")
		var records []domain.RawRecord
		var err error
		require.NotPanics(t, func() { records, err = Decode(data) })
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, domain.RawRecord{Row: 1, Species: "Adelie", FlipperLengthMM: 181, BodyMassG: 3750, BillLengthMM: 39.1}, records[0])
	})

	t.Run("space padded numbers are kept", func(t *testing.T) {
		data := []byte("species,flipper_length_mm,body_mass_g,bill_length_mm\nGentoo, 217 ,5200,  46.5\n Adelie ,NA , 3750,39.1\n")
		records, err := Decode(data)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, domain.RawRecord{Row: 1, Species: "Gentoo", FlipperLengthMM: 217, BodyMassG: 5200, BillLengthMM: 46.5}, records[0])
		assert.Equal(t, "Adelie", records[1].Species)
		assert.True(t, math.IsNaN(records[1].FlipperLengthMM))
		assert.Equal(t, 3750.0, records[1].BodyMassG)
	})

	t.Run("blank lines are skipped", func(t *testing.T) {
		data := []byte("species,flipper_length_mm,body_mass_g,bill_length_mm\n\nChinstrap,192,3500,46.5\n   \n")
		records, err := Decode(data)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "Chinstrap", records[0].Species)
	})

	t.Run("ragged row is an error", func(t *testing.T) {
		_, err := Decode([]byte("species,flipper_length_mm,body_mass_g,bill_length_mm\nAdelie,181\n"))
		require.Error(t, err)
	})
}
