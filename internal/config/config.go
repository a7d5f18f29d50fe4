package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Catalog source kinds.
const (
	SourceFile   = "file"
	SourceHTTP   = "http"
	SourceSheets = "sheets"
)

// Config represents the full application configuration surface.
type Config struct {
	Server  ServerConfig
	Catalog CatalogConfig
	Export  ExportConfig
	Archive ArchiveConfig
	Watcher WatcherConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// CatalogConfig describes where the product catalog is loaded from.
type CatalogConfig struct {
	Source          string
	Path            string
	URL             string
	CredentialsPath string
	SpreadsheetID   string
	SheetRange      string
	SuggestionLimit int
}

// ExportConfig holds CSV export options.
type ExportConfig struct {
	Columns []string
}

// ArchiveConfig holds settings for the optional MongoDB export archive.
// The archive is disabled when URI is empty.
type ArchiveConfig struct {
	URI    string
	DBName string
}

// WatcherConfig holds the catalog drift watcher schedule. An empty schedule
// disables the watcher.
type WatcherConfig struct {
	CronSchedule string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	suggestionLimit, err := strconv.Atoi(getenvWithDefault("SUGGESTION_LIMIT", "10"))
	if err != nil {
		return nil, fmt.Errorf("SUGGESTION_LIMIT must be an integer: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Catalog: CatalogConfig{
			Source:          getenvWithDefault("CATALOG_SOURCE", SourceFile),
			Path:            getenvWithDefault("CATALOG_PATH", "smc_products.csv"),
			URL:             os.Getenv("CATALOG_URL"),
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("CATALOG_SPREADSHEET_ID"),
			SheetRange:      getenvWithDefault("CATALOG_SHEET_RANGE", "Catalog!A:Z"),
			SuggestionLimit: suggestionLimit,
		},
		Export: ExportConfig{
			Columns: splitColumns(getenvWithDefault("EXPORT_COLUMNS", "Part No,CUBIX LP,Quantity,Price")),
		},
		Archive: ArchiveConfig{
			URI:    os.Getenv("MONGODB_URI"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "quotebuilder"),
		},
		Watcher: WatcherConfig{
			CronSchedule: getenvWithDefault("CATALOG_WATCH_SCHEDULE", "@every 15m"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch c.Catalog.Source {
	case SourceFile:
		if c.Catalog.Path == "" {
			return errors.New("CATALOG_PATH must be provided for the file source")
		}
	case SourceHTTP:
		if c.Catalog.URL == "" {
			return errors.New("CATALOG_URL must be provided for the http source")
		}
	case SourceSheets:
		switch {
		case c.Catalog.CredentialsPath == "":
			return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH must be provided for the sheets source")
		case c.Catalog.SpreadsheetID == "":
			return errors.New("CATALOG_SPREADSHEET_ID must be provided for the sheets source")
		case c.Catalog.SheetRange == "":
			return errors.New("CATALOG_SHEET_RANGE must not be empty")
		}
	default:
		return fmt.Errorf("CATALOG_SOURCE must be one of %s, %s, %s", SourceFile, SourceHTTP, SourceSheets)
	}

	if c.Catalog.SuggestionLimit <= 0 {
		return errors.New("SUGGESTION_LIMIT must be positive")
	}

	if len(c.Export.Columns) == 0 {
		return errors.New("EXPORT_COLUMNS must name at least one column")
	}

	if c.Archive.URI != "" && c.Archive.DBName == "" {
		return errors.New("MONGODB_DB_NAME must be provided when MONGODB_URI is set")
	}

	return nil
}

func splitColumns(raw string) []string {
	var columns []string
	for _, column := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(column); trimmed != "" {
			columns = append(columns, trimmed)
		}
	}
	return columns
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
