package client

import (
	"encoding/csv"
	"fmt"
	"os"

	"idiomastery/internal/domain"

	"go.uber.org/zap"
)

// minCSVRows is the smallest usable vocabulary asset
const minCSVRows = 3

// CSVAsset loads the bundled two-column english,spanish word list
type CSVAsset struct {
	path   string
	logger *zap.Logger
}

// NewCSVAsset creates a loader for the given file path
func NewCSVAsset(path string, logger *zap.Logger) *CSVAsset {
	return &CSVAsset{path: path, logger: logger}
}

// Load parses the asset. Rows missing either column are skipped with a
// warning; fewer than the minimum row count is an error.
func (c *CSVAsset) Load() ([]domain.Entry, error) {
	f, err := os.Open(c.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open vocabulary csv: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse vocabulary csv: %w", err)
	}

	var entries []domain.Entry
	for i, record := range records {
		if len(record) != 2 || record[0] == "" || record[1] == "" {
			c.logger.Warn("Skipping malformed csv row",
				zap.Int("row", i+1),
				zap.Strings("fields", record),
			)
			continue
		}

		entries = append(entries, domain.Entry{
			Category: "general",
			Translations: domain.Translations{
				English: record[0],
				Spanish: record[1],
			},
		})
	}

	if len(entries) < minCSVRows {
		return nil, fmt.Errorf("only %d valid rows found, need at least %d", len(entries), minCSVRows)
	}

	return entries, nil
}
