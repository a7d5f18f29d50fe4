package catalog

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// SheetsSource loads the catalog from a Google Sheets range, for teams that
// maintain the product list as a shared spreadsheet instead of a CSV export.
type SheetsSource struct {
	service       *sheetsapi.Service
	spreadsheetID string
	readRange     string
	logger        *zap.Logger
}

// NewSheetsSource builds a Google Sheets backed catalog source.
func NewSheetsSource(ctx context.Context, credentialsPath, spreadsheetID, readRange string, logger *zap.Logger) (*SheetsSource, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(credentialsPath), option.WithScopes(sheetsapi.SpreadsheetsReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &SheetsSource{
		service:       service,
		spreadsheetID: spreadsheetID,
		readRange:     readRange,
		logger:        logger,
	}, nil
}

// Fetch reads the configured range and converts it into catalog input. The
// first row of the range is taken as the header row.
func (s *SheetsSource) Fetch(ctx context.Context) (*RawTable, error) {
	values, err := s.fetchValues(ctx)
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("sheet range %s is empty", s.readRange)
	}

	headers := make([]string, len(values[0]))
	for i, cell := range values[0] {
		headers[i] = strings.TrimSpace(fmt.Sprint(cell))
	}

	rows := make([]map[string]string, 0, len(values)-1)
	for _, cells := range values[1:] {
		row := make(map[string]string, len(headers))
		empty := true
		for i, header := range headers {
			var value string
			if i < len(cells) {
				value = strings.TrimSpace(fmt.Sprint(cells[i]))
			}
			if value != "" {
				empty = false
			}
			row[header] = value
		}
		if empty {
			continue
		}
		rows = append(rows, row)
	}

	s.logger.Debug("sheet range loaded", zap.String("range", s.readRange), zap.Int("rows", len(rows)))

	return &RawTable{Headers: headers, Rows: rows, Fingerprint: hashValues(values)}, nil
}

// Fingerprint hashes the current sheet content.
func (s *SheetsSource) Fingerprint(ctx context.Context) (string, error) {
	values, err := s.fetchValues(ctx)
	if err != nil {
		return "", err
	}
	return hashValues(values), nil
}

// Describe names the source for logs.
func (s *SheetsSource) Describe() string {
	return "sheets:" + s.spreadsheetID + "/" + s.readRange
}

func (s *SheetsSource) fetchValues(ctx context.Context) ([][]interface{}, error) {
	resp, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, s.readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read sheet range %s: %w", s.readRange, err)
	}
	return resp.Values, nil
}

func hashValues(values [][]interface{}) string {
	h := sha256.New()
	for _, row := range values {
		for _, cell := range row {
			fmt.Fprint(h, cell, "\x1f")
		}
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}
