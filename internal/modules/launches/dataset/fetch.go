package dataset

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"

	"github.com/MikiCRO/SpaceX-Project/internal/modules/launches/types"
)

// FetchGeo loads the geo dataset from source with a single request and no
// retry. Sources without an http or https scheme are read from disk.
func FetchGeo(ctx context.Context, client *http.Client, source string) ([]types.LaunchRecord, error) {
	u, err := url.Parse(source)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return loadGeoFile(source)
	}
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("geo request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch geo csv: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch geo csv: %s: unexpected status %s", source, resp.Status)
	}
	records, err := ParseGeo(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	return records, nil
}

func loadGeoFile(path string) ([]types.LaunchRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open geo csv: %w", err)
	}
	defer f.Close()
	records, err := ParseGeo(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}
