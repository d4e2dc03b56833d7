package fetcher

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/xxxbrian/surge-reject/internal/cache"
)

const (
	DefaultGeoIPURL = "https://github.com/MetaCubeX/meta-rules-dat/releases/download/latest/geoip-lite.db"
)

// GeoIPFetcher downloads the GeoIP MMDB file. Downloads are cached so that
// repeated builds in serve mode do not hit the release mirror every time.
type GeoIPFetcher struct {
	client *http.Client
	url    string
	cache  *cache.BytesCache
}

// NewGeoIPFetcher creates a GeoIPFetcher for the given URL, falling back to
// the default release mirror when empty.
func NewGeoIPFetcher(url string) *GeoIPFetcher {
	if url == "" {
		url = DefaultGeoIPURL
	}
	return &GeoIPFetcher{
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
		url:   url,
		cache: cache.NewBytesCache(24 * time.Hour),
	}
}

// SetPersistPath persists the downloaded database across restarts and loads
// a previously persisted copy if one exists.
func (f *GeoIPFetcher) SetPersistPath(path string) {
	f.cache.SetPersistPath(path)
	if err := f.cache.LoadFromFile(path); err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to load GeoIP cache from %s: %v", path, err)
	}
}

// GetDB returns the cached or freshly downloaded DB bytes.
func (f *GeoIPFetcher) GetDB() ([]byte, error) {
	if data, ok := f.cache.Get(); ok {
		return data, nil
	}

	data, err := f.download()
	if err != nil {
		return nil, err
	}
	if err := f.cache.Set(data); err != nil {
		return nil, fmt.Errorf("failed to set cache: %w", err)
	}
	return data, nil
}

func (f *GeoIPFetcher) download() ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, f.url, nil)
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

	return io.ReadAll(resp.Body)
}
