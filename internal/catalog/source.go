package catalog

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"fmt"
	"strings"
)

// RawTable is catalog input after parsing but before dedup: ordered headers
// plus one field-map per data row. Fingerprint identifies the source content
// so the drift watcher can detect upstream edits without reloading.
type RawTable struct {
	Headers     []string
	Rows        []map[string]string
	Fingerprint string
}

// Source yields catalog input from some backing location (file, HTTP, or a
// Google Sheet). Fetch parses the full table; Fingerprint only hashes the
// current upstream content.
type Source interface {
	Fetch(ctx context.Context) (*RawTable, error)
	Fingerprint(ctx context.Context) (string, error)
	Describe() string
}

// parseCSV turns raw CSV bytes into a RawTable. The reader is configured
// leniently: variable field counts, lazy quotes, and leading-space trimming,
// since real catalog exports are rarely strict RFC4180.
func parseCSV(raw []byte) (*RawTable, error) {
	reader := csv.NewReader(bytes.NewReader(raw))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(allRows) == 0 {
		return nil, fmt.Errorf("catalog csv is empty")
	}

	headers := make([]string, len(allRows[0]))
	for i, h := range allRows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	rows := make([]map[string]string, 0, len(allRows)-1)
	for _, cells := range allRows[1:] {
		if isRowEmpty(cells) {
			continue
		}

		row := make(map[string]string, len(headers))
		for i, header := range headers {
			if i < len(cells) {
				row[header] = strings.TrimSpace(cells[i])
			} else {
				row[header] = ""
			}
		}
		rows = append(rows, row)
	}

	return &RawTable{Headers: headers, Rows: rows}, nil
}

func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func fingerprint(raw []byte) string {
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
