package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const sampleCSV = "Part No,SMC LP,CUBIX LP\r\nP1,12.00,10.00\r\nP2,6.00,5.00\r\n,,\r\n"

func writeTempCatalog(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "catalog.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFileSourceFetch(t *testing.T) {
	source := NewFileSource(writeTempCatalog(t, sampleCSV))

	table, err := source.Fetch(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"Part No", "SMC LP", "CUBIX LP"}, table.Headers)
	require.Len(t, table.Rows, 2, "fully empty rows are skipped")
	require.Equal(t, "P1", table.Rows[0]["Part No"])
	require.Equal(t, "10.00", table.Rows[0]["CUBIX LP"])
	require.NotEmpty(t, table.Fingerprint)
}

func TestFileSourceFingerprintTracksContent(t *testing.T) {
	path := writeTempCatalog(t, sampleCSV)
	source := NewFileSource(path)

	before, err := source.Fingerprint(context.Background())
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte(sampleCSV+"P3,2.00,1.00\r\n"), 0o644))

	after, err := source.Fingerprint(context.Background())
	require.NoError(t, err)
	require.NotEqual(t, before, after)
}

func TestFileSourceMissingFile(t *testing.T) {
	source := NewFileSource(filepath.Join(t.TempDir(), "missing.csv"))

	_, err := source.Fetch(context.Background())
	require.Error(t, err)
}

func TestParseCSVShortRows(t *testing.T) {
	table, err := parseCSV([]byte("Part No,CUBIX LP\nP1\n"))
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	require.Equal(t, "", table.Rows[0]["CUBIX LP"], "missing cells fill in empty")
}

func TestParseCSVEmptyInput(t *testing.T) {
	_, err := parseCSV(nil)
	require.Error(t, err)
}

func TestHTTPSourceFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte(sampleCSV))
	}))
	defer srv.Close()

	source := NewHTTPSource(srv.URL, 5*time.Second)

	table, err := source.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)
	require.Equal(t, "P2", table.Rows[1]["Part No"])

	fp, err := source.Fingerprint(context.Background())
	require.NoError(t, err)
	require.Equal(t, table.Fingerprint, fp)
}

func TestHTTPSourceErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	source := NewHTTPSource(srv.URL, 5*time.Second)

	_, err := source.Fetch(context.Background())
	require.Error(t, err)
}
