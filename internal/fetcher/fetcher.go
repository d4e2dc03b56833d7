// Package fetcher downloads upstream rule lists and the GeoIP database.
package fetcher

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const userAgent = "Surge-Reject-Go/1.0"

// Fetcher downloads upstream text resources. Every request is bounded by the
// client timeout; there are no retries.
type Fetcher struct {
	client *http.Client
}

// New creates a Fetcher whose requests time out after the given duration.
func New(timeout time.Duration) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Text fetches a rule list and decodes it as UTF-8, replacing invalid byte
// sequences with U+FFFD.
func (f *Fetcher) Text(url string) (string, error) {
	data, err := f.get(url)
	if err != nil {
		return "", err
	}
	return strings.ToValidUTF8(string(data), "�"), nil
}

func (f *Fetcher) get(url string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download failed: %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return data, nil
}
