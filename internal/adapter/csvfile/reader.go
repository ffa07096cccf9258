// Package csvfile extracts penguin rows from a CSV file or URL, coercing the
// measurement columns with a gota DataFrame.
package csvfile

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/couchcryptid/penguin-chart/internal/domain"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// naValues are the cells treated as missing in every column.
var naValues = []string{"NA", ""}

var utf8BOM = []byte("\xef\xbb\xbf")

// Fetcher downloads a remote CSV body.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Reader implements pipeline.Extractor for a local path or an http(s) URL.
type Reader struct {
	location string
	fetcher  Fetcher
	logger   *slog.Logger
}

// NewReader creates a Reader. The fetcher is only consulted for http(s)
// locations and may be nil when the input is always local.
func NewReader(location string, fetcher Fetcher, logger *slog.Logger) *Reader {
	return &Reader{location: location, fetcher: fetcher, logger: logger}
}

// Extract reads and decodes the whole file. A missing or unreadable file is
// an error; rows with bad cells are returned with NaN fields for the
// transformer to drop.
func (r *Reader) Extract(ctx context.Context) ([]domain.RawRecord, error) {
	data, err := r.read(ctx)
	if err != nil {
		return nil, err
	}

	records, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.location, err)
	}
	r.logger.Info("csv extracted", "location", r.location, "rows", len(records))
	return records, nil
}

func (r *Reader) read(ctx context.Context) ([]byte, error) {
	if isURL(r.location) {
		if r.fetcher == nil {
			return nil, fmt.Errorf("read %s: no fetcher configured for remote input", r.location)
		}
		return r.fetcher.Fetch(ctx, r.location)
	}
	data, err := os.ReadFile(r.location)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return data, nil
}

// Decode parses CSV bytes into raw records. Species is read as text and the
// three measurements as floats; "NA", empty cells and non-numeric text all
// become NaN (or "" for species). Cells are trimmed before coercion, so
// " 217 " reads as 217. A header-only file yields no records.
func Decode(data []byte) ([]domain.RawRecord, error) {
	rows, err := readRows(bytes.TrimPrefix(data, utf8BOM))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.New("empty input: missing header row")
	}
	if err := requireColumns(rows[0]); err != nil {
		return nil, err
	}
	if len(rows) == 1 {
		return []domain.RawRecord{}, nil
	}

	df := dataframe.LoadRecords(rows,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(naValues),
		dataframe.WithTypes(map[string]series.Type{
			domain.ColSpecies:         series.String,
			domain.ColFlipperLengthMM: series.Float,
			domain.ColBodyMassG:       series.Float,
			domain.ColBillLengthMM:    series.Float,
		}),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("parse csv: %w", df.Err)
	}

	cols := make(map[string]series.Series, len(domain.RequiredColumns))
	for _, name := range domain.RequiredColumns {
		col := df.Col(name)
		if col.Err != nil {
			return nil, fmt.Errorf("column %s: %w", name, col.Err)
		}
		cols[name] = col
	}

	species := cols[domain.ColSpecies]
	speciesNA := species.IsNaN()
	speciesVals := species.Records()
	flipper := cols[domain.ColFlipperLengthMM].Float()
	mass := cols[domain.ColBodyMassG].Float()
	bill := cols[domain.ColBillLengthMM].Float()

	records := make([]domain.RawRecord, df.Nrow())
	for i := range records {
		name := speciesVals[i]
		if speciesNA[i] {
			name = ""
		}
		records[i] = domain.RawRecord{
			Row:             i + 1,
			Species:         name,
			FlipperLengthMM: flipper[i],
			BodyMassG:       mass[i],
			BillLengthMM:    bill[i],
		}
	}
	return records, nil
}

// readRows splits the input with encoding/csv and trims every cell, header
// included, so gota sees the same column names requireColumns checked.
// Whitespace-only lines are skipped; any other row must match the header width.
func readRows(data []byte) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	all, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	rows := all[:0]
	for _, rec := range all {
		for i := range rec {
			rec[i] = strings.TrimSpace(rec[i])
		}
		if len(rec) == 1 && rec[0] == "" {
			continue
		}
		if len(rows) > 0 && len(rec) != len(rows[0]) {
			return nil, fmt.Errorf("parse csv: row %d has %d fields, header has %d", len(rows), len(rec), len(rows[0]))
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

func requireColumns(header []string) error {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[h] = true
	}
	var missing []string
	for _, col := range domain.RequiredColumns {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return nil
}

func isURL(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}
