package quote

import (
	"github.com/cubixparts/quotebuilder/internal/catalog"
	"github.com/cubixparts/quotebuilder/internal/domain/models"
	"github.com/cubixparts/quotebuilder/pkg/numeric"
)

// Project combines the catalog, the selection, and the overrides into the
// ordered row set to display or export. Quantity defaults to 1 and the final
// price to list price times quantity when no override exists. Selected parts
// with no catalog record are dropped and returned in the second value so the
// caller can log them; the selection is only ever populated from catalog
// matches, so a non-empty second value indicates a bug upstream.
func Project(store *catalog.Store, selection *SelectionSet, overrides *PriceOverrideMap) ([]models.DisplayRow, []string) {
	rows := make([]models.DisplayRow, 0, selection.Len())
	var missing []string

	for _, partNo := range selection.Parts() {
		record, ok := store.Get(partNo)
		if !ok {
			missing = append(missing, partNo)
			continue
		}

		quantity := 1
		var finalPrice float64
		if override, ok := overrides.Get(partNo); ok {
			quantity = override.Quantity
			finalPrice = override.FinalPrice
		} else {
			finalPrice = numeric.Round2(numeric.ParseDecimalOrZero(record.ListPrice()) * float64(quantity))
		}

		rows = append(rows, models.DisplayRow{
			PartNo:     partNo,
			Fields:     record,
			Quantity:   quantity,
			FinalPrice: finalPrice,
		})
	}

	return rows, missing
}
