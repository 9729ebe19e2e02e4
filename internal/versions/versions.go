// Package versions fetches the list of published build versions.
package versions

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/open-edge-platform/report-tools/internal/config/validate"
	"github.com/open-edge-platform/report-tools/internal/utils/general/slice"
	"github.com/open-edge-platform/report-tools/internal/utils/logger"
)

// maxPayloadBytes bounds the versions document read from the endpoint.
const maxPayloadBytes = 16 << 20

// Source yields the accepted version strings.
type Source interface {
	Versions(ctx context.Context) ([]string, error)
}

// Client fetches a JSON versions list over HTTP.
type Client struct {
	url  string
	http *http.Client
}

// NewClient returns a Client for url. A nil httpClient uses http.DefaultClient.
func NewClient(url string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{url: url, http: httpClient}
}

// Versions performs one GET against the endpoint and returns the flattened version list.
func (c *Client) Versions(ctx context.Context) ([]string, error) {
	log := logger.Logger()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("building versions request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	log.Debugf("fetching versions list from %s", c.url)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching versions from %s: %w", c.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching versions from %s: bad status: %s", c.url, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadBytes))
	if err != nil {
		return nil, fmt.Errorf("reading versions from %s: %w", c.url, err)
	}

	list, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("versions from %s: %w", c.url, err)
	}
	log.Debugf("received %d published versions", len(list))
	return list, nil
}

// Decode validates a versions document and flattens it.
func Decode(data []byte) ([]string, error) {
	if err := validate.ValidateVersionsJSON(data); err != nil {
		return nil, err
	}
	var raw []interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding versions list: %w", err)
	}
	return Flatten(raw), nil
}

// Flatten turns a decoded versions list into version strings. Strings are taken as-is and
// objects contribute their "version" field. Numbers, nulls and objects without a string
// version are skipped. Order is kept and duplicates are dropped.
func Flatten(raw []interface{}) []string {
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		switch v := item.(type) {
		case string:
			out = append(out, v)
		case map[string]interface{}:
			if s, ok := v["version"].(string); ok {
				out = append(out, s)
			}
		}
	}
	return slice.Unique(out)
}

// Contains reports whether version is in list.
func Contains(list []string, version string) bool {
	return slice.Contains(list, version)
}
