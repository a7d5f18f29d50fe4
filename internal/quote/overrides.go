package quote

import "github.com/cubixparts/quotebuilder/internal/domain/models"

// PriceOverrideMap tracks per-part quantity edits and the final prices
// derived from them. Entries must be cleared when the part leaves the
// selection; the Builder enforces that pairing.
type PriceOverrideMap struct {
	entries map[string]models.PriceOverride
}

// NewPriceOverrideMap returns an empty override map.
func NewPriceOverrideMap() *PriceOverrideMap {
	return &PriceOverrideMap{entries: make(map[string]models.PriceOverride)}
}

// Set upserts the override for a part. Negative values are clamped to zero,
// matching the catalog-wide parse-or-zero policy.
func (m *PriceOverrideMap) Set(partNo string, quantity int, finalPrice float64) {
	if quantity < 0 {
		quantity = 0
	}
	if finalPrice < 0 {
		finalPrice = 0
	}
	m.entries[partNo] = models.PriceOverride{Quantity: quantity, FinalPrice: finalPrice}
}

// Clear drops the override for a part; clearing an absent entry is a no-op.
func (m *PriceOverrideMap) Clear(partNo string) {
	delete(m.entries, partNo)
}

// Get returns the override for a part, if any.
func (m *PriceOverrideMap) Get(partNo string) (models.PriceOverride, bool) {
	override, ok := m.entries[partNo]
	return override, ok
}

// Len reports the number of stored overrides.
func (m *PriceOverrideMap) Len() int {
	return len(m.entries)
}
