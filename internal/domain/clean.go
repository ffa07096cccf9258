package domain

import "math"

// DropReason explains why a raw row was excluded from the dataset.
type DropReason string

const (
	DropMissingSpecies DropReason = "missing_species"
	DropUnknownSpecies DropReason = "unknown_species"
	DropMissingNumeric DropReason = "missing_numeric"
	DropInvalidNumeric DropReason = "invalid_numeric"
)

// CleanReport summarizes a Clean pass. It is for operators (logs, metrics,
// the validate tool) and is never shown on the chart.
type CleanReport struct {
	RawRows int
	Kept    int
	Dropped map[DropReason]int
}

// DroppedTotal returns the number of excluded rows across all reasons.
func (r CleanReport) DroppedTotal() int {
	n := 0
	for _, c := range r.Dropped {
		n += c
	}
	return n
}

// Clean keeps the rows that satisfy the Observation invariant and discards
// the rest. The result preserves input order and contains no row that was
// not in the input.
func Clean(records []RawRecord) ([]Observation, CleanReport) {
	report := CleanReport{
		RawRows: len(records),
		Dropped: make(map[DropReason]int),
	}
	out := make([]Observation, 0, len(records))

	for _, rec := range records {
		obs, reason, ok := cleanRecord(rec)
		if !ok {
			report.Dropped[reason]++
			continue
		}
		out = append(out, obs)
	}

	report.Kept = len(out)
	return out, report
}

func cleanRecord(rec RawRecord) (Observation, DropReason, bool) {
	if rec.Species == "" {
		return Observation{}, DropMissingSpecies, false
	}

	values := [3]float64{rec.FlipperLengthMM, rec.BodyMassG, rec.BillLengthMM}
	for _, v := range values {
		if math.IsNaN(v) {
			return Observation{}, DropMissingNumeric, false
		}
	}
	for _, v := range values {
		if math.IsInf(v, 0) || v <= 0 {
			return Observation{}, DropInvalidNumeric, false
		}
	}

	species := Species(rec.Species)
	if !species.Known() {
		return Observation{}, DropUnknownSpecies, false
	}

	return Observation{
		Species:         species,
		FlipperLengthMM: rec.FlipperLengthMM,
		BodyMassG:       rec.BodyMassG,
		BillLengthMM:    rec.BillLengthMM,
	}, "", true
}
