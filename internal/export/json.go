// Package export dumps each source's crawled batch to a JSON file, one
// file per source. The dumps exist for eyeballing a site's output after
// its markup changes, independent of what the database accepted.
package export

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"exhibition_crawler/internal/domain"
)

type JSONExporter struct {
	dir    string
	logger *slog.Logger
}

func NewJSONExporter(dir string, logger *slog.Logger) *JSONExporter {
	return &JSONExporter{dir: dir, logger: logger}
}

func (e *JSONExporter) Export(sourceID string, exhibitions []domain.Exhibition) error {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}

	data, err := json.MarshalIndent(exhibitions, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal exhibitions: %w", err)
	}

	path := filepath.Join(e.dir, sourceID+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	e.logger.Info("exported batch", "source", sourceID, "path", path, "count", len(exhibitions))
	return nil
}
