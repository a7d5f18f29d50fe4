package export

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/cubixparts/quotebuilder/internal/domain/models"
)

// DefaultBaseName is used when the user leaves the export file name blank.
const DefaultBaseName = "quantities"

// DefaultColumns is the standard export column set. The set is a
// configuration choice, not fixed: some deployments add "SMC LP".
var DefaultColumns = []string{
	models.FieldPartNo,
	models.FieldListPrice,
	models.ColumnQuantity,
	models.ColumnPrice,
}

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9_-]`)

// SanitizeFileName turns free-form user input into a safe ".csv" file name.
// Blank input falls back to the default base name; everything outside
// [A-Za-z0-9_-] becomes an underscore. Export never fails on a bad name.
func SanitizeFileName(name string) string {
	base := strings.TrimSpace(name)
	if base == "" {
		base = DefaultBaseName
	}
	return unsafeFileChars.ReplaceAllString(base, "_") + ".csv"
}

// Render serializes the rows into CSV text. The header line is the plain
// comma join of the columns; every data field is double-quote wrapped with
// internal quotes doubled, numeric or not. When a summary is given, three
// trailing rows (Total, Discount %, Final Total) are appended with leading
// empty fields so the label and value sit under the last two columns. Lines
// are joined with CRLF and there is no trailing terminator.
func Render(rows []models.DisplayRow, summary *models.QuoteSummary, columns []string) string {
	if len(columns) == 0 {
		columns = DefaultColumns
	}

	lines := make([]string, 0, len(rows)+4)
	lines = append(lines, strings.Join(columns, ","))

	for _, row := range rows {
		fields := make([]string, len(columns))
		for i, column := range columns {
			fields[i] = quoteField(row.Column(column))
		}
		lines = append(lines, strings.Join(fields, ","))
	}

	if summary != nil {
		lines = append(lines,
			summaryLine(columns, "Total", fmt.Sprintf("%.2f", summary.Subtotal)),
			summaryLine(columns, "Discount %", strconv.FormatFloat(summary.DiscountPercent, 'f', -1, 64)),
			summaryLine(columns, "Final Total", fmt.Sprintf("%.2f", summary.FinalTotal)),
		)
	}

	return strings.Join(lines, "\r\n")
}

func summaryLine(columns []string, label, value string) string {
	fields := make([]string, 0, len(columns))
	for i := 0; i < len(columns)-2; i++ {
		fields = append(fields, quoteField(""))
	}
	fields = append(fields, quoteField(label), quoteField(value))
	return strings.Join(fields, ",")
}

func quoteField(value string) string {
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}
