package models

import (
	"fmt"
	"strconv"
	"time"
)

// Columns the projector adds on top of the catalog's own fields.
const (
	ColumnQuantity = "Quantity"
	ColumnPrice    = "Price"
)

// PriceOverride captures a user's quantity edit for a selected part together
// with the final price derived from it. Quantity is never negative.
type PriceOverride struct {
	Quantity   int
	FinalPrice float64
}

// DisplayRow is a derived, ephemeral row: the catalog record plus the
// resolved quantity and final price. It is recomputed on every projection
// and never stored.
type DisplayRow struct {
	PartNo     string
	Fields     CatalogRecord
	Quantity   int
	FinalPrice float64
}

// Column resolves a named export/display column against the row. Quantity
// and Price come from the resolved values; everything else falls through to
// the catalog fields, with missing columns rendered empty.
func (d DisplayRow) Column(name string) string {
	switch name {
	case ColumnQuantity:
		return strconv.Itoa(d.Quantity)
	case ColumnPrice:
		return fmt.Sprintf("%.2f", d.FinalPrice)
	default:
		return d.Fields.Field(name)
	}
}

// QuoteSummary carries the totals block of a checkout.
type QuoteSummary struct {
	Subtotal        float64 `json:"subtotal"`
	DiscountPercent float64 `json:"discount_percent"`
	FinalTotal      float64 `json:"final_total"`
}

// QuoteSnapshot is the point-in-time capture of the projected rows plus
// totals, created per checkout or export action and then discarded.
type QuoteSnapshot struct {
	Rows      []DisplayRow
	Summary   QuoteSummary
	CreatedAt time.Time
}

// QuoteRecordItem is the archived form of one exported row.
type QuoteRecordItem struct {
	PartNo     string  `bson:"part_no" json:"part_no"`
	ListPrice  string  `bson:"list_price" json:"list_price"`
	Quantity   int     `bson:"quantity" json:"quantity"`
	FinalPrice float64 `bson:"final_price" json:"final_price"`
}

// QuoteRecord is the audit document written when an export completes. Only
// finished exports are archived; working selection state is never persisted.
type QuoteRecord struct {
	FileName        string            `bson:"file_name" json:"file_name"`
	Items           []QuoteRecordItem `bson:"items" json:"items"`
	Subtotal        float64           `bson:"subtotal" json:"subtotal"`
	DiscountPercent float64           `bson:"discount_percent" json:"discount_percent"`
	FinalTotal      float64           `bson:"final_total" json:"final_total"`
	CreatedAt       time.Time         `bson:"created_at" json:"created_at"`
}

// NewQuoteRecord flattens a snapshot into its archive form.
func NewQuoteRecord(fileName string, snap QuoteSnapshot) QuoteRecord {
	items := make([]QuoteRecordItem, 0, len(snap.Rows))
	for _, row := range snap.Rows {
		items = append(items, QuoteRecordItem{
			PartNo:     row.PartNo,
			ListPrice:  row.Fields.ListPrice(),
			Quantity:   row.Quantity,
			FinalPrice: row.FinalPrice,
		})
	}

	return QuoteRecord{
		FileName:        fileName,
		Items:           items,
		Subtotal:        snap.Summary.Subtotal,
		DiscountPercent: snap.Summary.DiscountPercent,
		FinalTotal:      snap.Summary.FinalTotal,
		CreatedAt:       snap.CreatedAt,
	}
}
