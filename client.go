package main

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// SnapshotClient downloads row snapshots written by export.
type SnapshotClient struct {
	httpClient *http.Client
}

func NewSnapshotClient() *SnapshotClient {
	return &SnapshotClient{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// fetches rows from url, decoding YAML when the server or path says so
func (c *SnapshotClient) FetchRows(url string) ([]TimeRow, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json, application/yaml")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error making request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status fetching snapshot: %s", res.Status)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %w", err)
	}

	asYAML := strings.Contains(res.Header.Get("Content-Type"), "yaml") || isYAMLPath(req.URL.Path)
	rows, err := decodeRows(body, asYAML)
	if err != nil {
		return nil, fmt.Errorf("error decoding snapshot: %w", err)
	}

	return rows, nil
}
