package models

import "strings"

// Field names the pricing core depends on. Every other catalog column is
// opaque passthrough data.
const (
	FieldPartNo    = "Part No"
	FieldListPrice = "CUBIX LP"
)

// CatalogRecord is one catalog row, keyed by column header. Column order is
// tracked by the store, not by the record.
type CatalogRecord map[string]string

// PartNo returns the record's natural key, trimmed.
func (r CatalogRecord) PartNo() string {
	return strings.TrimSpace(r[FieldPartNo])
}

// ListPrice returns the raw list-price field as stored in the catalog.
func (r CatalogRecord) ListPrice() string {
	return r[FieldListPrice]
}

// Field returns the value for a column, or the empty string when the column
// does not exist on this record.
func (r CatalogRecord) Field(name string) string {
	return r[name]
}

// Clone returns a defensive copy so callers cannot mutate the store.
func (r CatalogRecord) Clone() CatalogRecord {
	out := make(CatalogRecord, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
