// Package filesink writes rendered artifacts to a local directory.
package filesink

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/couchcryptid/penguin-chart/internal/domain"
)

// Writer implements pipeline.Loader. Existing files are overwritten.
type Writer struct {
	dir    string
	logger *slog.Logger
}

// NewWriter creates a Writer rooted at dir. The directory must already exist.
func NewWriter(dir string, logger *slog.Logger) *Writer {
	return &Writer{dir: dir, logger: logger}
}

// Name identifies the sink in logs and metrics.
func (w *Writer) Name() string { return "file" }

// PathFor returns the destination path of an artifact name.
func (w *Writer) PathFor(name string) string {
	return filepath.Join(w.dir, name)
}

// Load writes every artifact, stopping at the first failure.
func (w *Writer) Load(ctx context.Context, artifacts []domain.Artifact) error {
	info, err := os.Stat(w.dir)
	if err != nil {
		return fmt.Errorf("output dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("output dir %s is not a directory", w.dir)
	}

	for _, a := range artifacts {
		if err := ctx.Err(); err != nil {
			return err
		}
		path := w.PathFor(a.Name)
		if err := os.WriteFile(path, a.Body, 0o644); err != nil { //nolint:gosec // output is meant to be world-readable
			return fmt.Errorf("write %s: %w", a.Name, err)
		}
		w.logger.Info("wrote artifact", "path", path, "renderer", a.Renderer, "bytes", len(a.Body))
	}
	return nil
}
