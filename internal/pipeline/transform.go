package pipeline

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/penguin-chart/internal/domain"
)

// ChartTransformer implements Transformer using the domain cleaning and
// encoding functions.
type ChartTransformer struct {
	logger *slog.Logger
}

// NewTransformer creates a ChartTransformer.
func NewTransformer(logger *slog.Logger) *ChartTransformer {
	return &ChartTransformer{logger: logger}
}

// Transform drops invalid rows and encodes the survivors. Dropped rows are
// reported only at debug level.
func (t *ChartTransformer) Transform(_ context.Context, records []domain.RawRecord) (domain.Chart, domain.CleanReport, error) {
	obs, report := domain.Clean(records)
	for reason, n := range report.Dropped {
		t.logger.Debug("rows excluded", "reason", string(reason), "count", n)
	}
	return domain.Encode(obs), report, nil
}
