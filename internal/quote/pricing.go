package quote

import "github.com/cubixparts/quotebuilder/internal/domain/models"

// Subtotal sums the final prices of the projected rows.
func Subtotal(rows []models.DisplayRow) float64 {
	var total float64
	for _, row := range rows {
		total += row.FinalPrice
	}
	return total
}

// Discounted applies a percentage discount to a subtotal. The percentage is
// deliberately not clamped: the input surface constrains the field to
// [0,100], and out-of-range values simply act as a surcharge or credit.
func Discounted(subtotal, discountPercent float64) float64 {
	return subtotal * (1 - discountPercent/100)
}
