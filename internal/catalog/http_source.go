package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPSource fetches the catalog CSV from a remote URL, for deployments that
// serve the product list alongside the front end.
type HTTPSource struct {
	client *resty.Client
	url    string
}

// NewHTTPSource builds a resty-backed catalog source.
func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	client := resty.New()
	client.
		SetHeader("Accept", "text/csv").
		SetTimeout(timeout)

	return &HTTPSource{client: client, url: url}
}

// Fetch downloads and parses the catalog.
func (s *HTTPSource) Fetch(ctx context.Context) (*RawTable, error) {
	raw, err := s.download(ctx)
	if err != nil {
		return nil, err
	}

	table, err := parseCSV(raw)
	if err != nil {
		return nil, fmt.Errorf("parse catalog from %s: %w", s.url, err)
	}

	table.Fingerprint = fingerprint(raw)
	return table, nil
}

// Fingerprint hashes the current remote content.
func (s *HTTPSource) Fingerprint(ctx context.Context) (string, error) {
	raw, err := s.download(ctx)
	if err != nil {
		return "", err
	}
	return fingerprint(raw), nil
}

// Describe names the source for logs.
func (s *HTTPSource) Describe() string {
	return "http:" + s.url
}

func (s *HTTPSource) download(ctx context.Context) ([]byte, error) {
	resp, err := s.client.R().SetContext(ctx).Get(s.url)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog from %s: %w", s.url, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch catalog from %s: unexpected status %s", s.url, resp.Status())
	}

	return resp.Body(), nil
}
