package catalog

import (
	"context"
	"fmt"
	"os"
)

// FileSource reads the catalog CSV from local disk.
type FileSource struct {
	path string
}

// NewFileSource builds a file-backed catalog source.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Fetch reads and parses the catalog file.
func (s *FileSource) Fetch(_ context.Context) (*RawTable, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file %s: %w", s.path, err)
	}

	table, err := parseCSV(raw)
	if err != nil {
		return nil, fmt.Errorf("parse catalog file %s: %w", s.path, err)
	}

	table.Fingerprint = fingerprint(raw)
	return table, nil
}

// Fingerprint hashes the file's current content.
func (s *FileSource) Fingerprint(_ context.Context) (string, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return "", fmt.Errorf("read catalog file %s: %w", s.path, err)
	}
	return fingerprint(raw), nil
}

// Describe names the source for logs.
func (s *FileSource) Describe() string {
	return "file:" + s.path
}
