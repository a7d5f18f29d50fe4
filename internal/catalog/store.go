package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cubixparts/quotebuilder/internal/domain/models"
)

// ErrMissingKeyField signals catalog input without the "Part No" key. It is
// fatal to startup; a catalog without its natural key cannot be served.
var ErrMissingKeyField = errors.New("catalog input is missing the Part No field")

// Store is the deduplicated, immutable-after-load product catalog. It is
// built once at startup and shared read-only for the life of the process.
type Store struct {
	headers []string
	records map[string]models.CatalogRecord
	order   []string
}

// Load builds a Store from parsed catalog input. Duplicate part numbers keep
// the first occurrence; header order is preserved as-is.
func Load(headers []string, rows []map[string]string) (*Store, error) {
	if !containsHeader(headers, models.FieldPartNo) {
		return nil, fmt.Errorf("%w: headers %v", ErrMissingKeyField, headers)
	}

	store := &Store{
		headers: append([]string(nil), headers...),
		records: make(map[string]models.CatalogRecord, len(rows)),
		order:   make([]string, 0, len(rows)),
	}

	for i, row := range rows {
		if _, ok := row[models.FieldPartNo]; !ok {
			return nil, fmt.Errorf("%w: record %d", ErrMissingKeyField, i+1)
		}

		record := models.CatalogRecord(row)
		partNo := record.PartNo()
		if _, seen := store.records[partNo]; seen {
			continue
		}

		store.records[partNo] = record
		store.order = append(store.order, partNo)
	}

	return store, nil
}

// Headers returns the catalog column names in original file order.
func (s *Store) Headers() []string {
	return append([]string(nil), s.headers...)
}

// Len reports the number of distinct parts.
func (s *Store) Len() int {
	return len(s.order)
}

// Get looks up a record by part number.
func (s *Store) Get(partNo string) (models.CatalogRecord, bool) {
	record, ok := s.records[strings.TrimSpace(partNo)]
	if !ok {
		return nil, false
	}
	return record.Clone(), true
}

// FindByPrefix returns up to limit part numbers whose key starts with the
// query, case-insensitively, skipping anything in the exclusion set. An
// empty query yields nothing: suggestions are opt-in per keystroke, never a
// browse-the-whole-catalog dump. A non-positive limit means unlimited.
func (s *Store) FindByPrefix(query string, excluding map[string]struct{}, limit int) []string {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return nil
	}

	var matches []string
	for _, partNo := range s.order {
		if _, skip := excluding[partNo]; skip {
			continue
		}
		if !strings.HasPrefix(strings.ToLower(partNo), needle) {
			continue
		}

		matches = append(matches, partNo)
		if limit > 0 && len(matches) == limit {
			break
		}
	}

	return matches
}

func containsHeader(headers []string, name string) bool {
	for _, h := range headers {
		if strings.TrimSpace(h) == name {
			return true
		}
	}
	return false
}
