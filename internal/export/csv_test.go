package export

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cubixparts/quotebuilder/internal/domain/models"
)

func sampleRows() []models.DisplayRow {
	return []models.DisplayRow{
		{
			PartNo:     "P1",
			Fields:     models.CatalogRecord{"Part No": "P1", "CUBIX LP": "10.00"},
			Quantity:   3,
			FinalPrice: 30.00,
		},
		{
			PartNo:     "P2",
			Fields:     models.CatalogRecord{"Part No": "P2", "CUBIX LP": "5.00"},
			Quantity:   1,
			FinalPrice: 5.00,
		},
	}
}

func TestSanitizeFileName(t *testing.T) {
	require.Equal(t, "quantities.csv", SanitizeFileName(""))
	require.Equal(t, "quantities.csv", SanitizeFileName("   "))
	require.Equal(t, "my_quote.csv", SanitizeFileName("my_quote"))
	require.Equal(t, "my_quote_v2.csv", SanitizeFileName("my quote/v2"))
	require.Equal(t, "___.csv", SanitizeFileName("###"))
}

func TestRenderQuotingAndLineEndings(t *testing.T) {
	rows := []models.DisplayRow{{
		PartNo:     `P"1`,
		Fields:     models.CatalogRecord{"Part No": `P"1`, "CUBIX LP": "10.00"},
		Quantity:   2,
		FinalPrice: 20.00,
	}}

	out := Render(rows, nil, DefaultColumns)
	lines := strings.Split(out, "\r\n")
	require.Len(t, lines, 2)
	require.Equal(t, "Part No,CUBIX LP,Quantity,Price", lines[0], "header is joined unquoted")
	require.Equal(t, `"P""1","10.00","2","20.00"`, lines[1], "every data field is quoted, quotes doubled")
	require.False(t, strings.HasSuffix(out, "\r\n"), "no trailing terminator")
}

func TestRenderSummaryAlignment(t *testing.T) {
	summary := &models.QuoteSummary{Subtotal: 35.00, DiscountPercent: 10, FinalTotal: 31.50}

	out := Render(sampleRows(), summary, DefaultColumns)
	lines := strings.Split(out, "\r\n")
	require.Len(t, lines, 6)
	require.Equal(t, `"","","Total","35.00"`, lines[3])
	require.Equal(t, `"","","Discount %","10"`, lines[4])
	require.Equal(t, `"","","Final Total","31.50"`, lines[5])
}

func TestRenderMissingColumnIsEmpty(t *testing.T) {
	out := Render(sampleRows(), nil, []string{"Part No", "SMC LP", "Quantity", "Price"})
	lines := strings.Split(out, "\r\n")
	require.Equal(t, `"P1","","3","30.00"`, lines[1])
}

func TestRenderEmptyRowSet(t *testing.T) {
	out := Render(nil, nil, nil)
	require.Equal(t, "Part No,CUBIX LP,Quantity,Price", out)
}

func TestRenderRoundTripsThroughStandardReader(t *testing.T) {
	out := Render(sampleRows(), nil, DefaultColumns)

	parsed, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, parsed, 3)
	require.Equal(t, []string{"Part No", "CUBIX LP", "Quantity", "Price"}, parsed[0])
	require.Equal(t, []string{"P1", "10.00", "3", "30.00"}, parsed[1])
	require.Equal(t, []string{"P2", "5.00", "1", "5.00"}, parsed[2])
}
