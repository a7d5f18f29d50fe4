package quote

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cubixparts/quotebuilder/internal/catalog"
)

func testStore(t *testing.T) *catalog.Store {
	t.Helper()

	store, err := catalog.Load(
		[]string{"Part No", "SMC LP", "CUBIX LP"},
		[]map[string]string{
			{"Part No": "P1", "SMC LP": "12.00", "CUBIX LP": "10.00"},
			{"Part No": "P1", "SMC LP": "25.00", "CUBIX LP": "20.00"},
			{"Part No": "P2", "SMC LP": "6.00", "CUBIX LP": "5.00"},
			{"Part No": "P3", "SMC LP": "", "CUBIX LP": "not-a-price"},
		},
	)
	require.NoError(t, err)
	return store
}

func TestProjectEmptySelection(t *testing.T) {
	store := testStore(t)

	ov := NewPriceOverrideMap()
	ov.Set("P1", 3, 30.00) // stale entries must never be surfaced

	rows, missing := Project(store, NewSelectionSet(), ov)
	require.Empty(t, rows)
	require.Empty(t, missing)
}

func TestProjectDefaultsAndOverrides(t *testing.T) {
	store := testStore(t)
	sel := NewSelectionSet()
	sel.Add("P1")
	sel.Add("P2")

	ov := NewPriceOverrideMap()
	ov.Set("P1", 3, 30.00)

	rows, missing := Project(store, sel, ov)
	require.Empty(t, missing)
	require.Len(t, rows, 2)

	require.Equal(t, "P1", rows[0].PartNo)
	require.Equal(t, 3, rows[0].Quantity)
	require.Equal(t, 30.00, rows[0].FinalPrice)
	require.Equal(t, "10.00", rows[0].Fields.ListPrice(), "first occurrence wins")

	require.Equal(t, "P2", rows[1].PartNo)
	require.Equal(t, 1, rows[1].Quantity, "default quantity is 1")
	require.Equal(t, 5.00, rows[1].FinalPrice, "default price is list price times quantity")
}

func TestProjectUnparseableListPrice(t *testing.T) {
	store := testStore(t)
	sel := NewSelectionSet()
	sel.Add("P3")

	rows, missing := Project(store, sel, NewPriceOverrideMap())
	require.Empty(t, missing)
	require.Len(t, rows, 1)
	require.Equal(t, 0.0, rows[0].FinalPrice)
}

func TestProjectDropsMissingRecords(t *testing.T) {
	store := testStore(t)
	sel := NewSelectionSet()
	sel.Add("P1")
	sel.Add("GHOST")

	rows, missing := Project(store, sel, NewPriceOverrideMap())
	require.Len(t, rows, 1)
	require.Equal(t, []string{"GHOST"}, missing)
}

func TestSubtotalAndDiscount(t *testing.T) {
	store := testStore(t)
	sel := NewSelectionSet()
	sel.Add("P1")
	sel.Add("P2")

	ov := NewPriceOverrideMap()
	ov.Set("P1", 3, 30.00)

	rows, _ := Project(store, sel, ov)
	subtotal := Subtotal(rows)
	require.Equal(t, 35.00, subtotal)
	require.Equal(t, 31.50, Discounted(subtotal, 10))
}

func TestDiscountedZeroIsIdentity(t *testing.T) {
	for _, subtotal := range []float64{0, 1, 35.00, 1234.56} {
		require.Equal(t, subtotal, Discounted(subtotal, 0))
	}
}

func TestDiscountedOutOfRangeIsNotClamped(t *testing.T) {
	require.Equal(t, 110.00, Discounted(100, -10), "negative discount acts as surcharge")
	require.Equal(t, -100.00, Discounted(100, 200))
}
