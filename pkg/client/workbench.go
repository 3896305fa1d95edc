// Package client provides an HTTP client for the oscillab workbench API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/oscillab/oscillab/pkg/experiment"
	"github.com/oscillab/oscillab/pkg/series"
	"github.com/oscillab/oscillab/pkg/storage"
)

// WorkbenchClient is an HTTP client for the workbench service.
// It is safe for concurrent use by multiple goroutines.
type WorkbenchClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewWorkbenchClient creates a new client for the workbench service.
// The baseURL should include the scheme and host (e.g., "http://localhost:8080").
// A default timeout of 5 seconds is used for HTTP requests.
func NewWorkbenchClient(baseURL string) *WorkbenchClient {
	return &WorkbenchClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// NewWorkbenchClientWithTimeout creates a new client with a custom timeout.
func NewWorkbenchClientWithTimeout(baseURL string, timeout time.Duration) *WorkbenchClient {
	return &WorkbenchClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Run submits an experiment definition and returns the snapshot of the
// finished run.
func (c *WorkbenchClient) Run(ctx context.Context, def experiment.Definition) (*storage.Snapshot, error) {
	body, err := json.Marshal(def)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal definition: %w", err)
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	u.Path = "/experiments/run"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, responseError(resp)
	}

	return decodeSnapshot(resp)
}

// Current fetches the snapshot of the most recent run.
func (c *WorkbenchClient) Current(ctx context.Context) (*storage.Snapshot, error) {
	resp, err := c.get(ctx, "/experiments/current", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("no experiment has run yet")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, responseError(resp)
	}

	return decodeSnapshot(resp)
}

// Snapshot fetches the snapshot of a specific run by ID.
func (c *WorkbenchClient) Snapshot(ctx context.Context, id string) (*storage.Snapshot, error) {
	if id == "" {
		return nil, fmt.Errorf("id cannot be empty")
	}

	resp, err := c.get(ctx, "/experiments/snapshot", url.Values{"id": {id}})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("snapshot %q not found", id)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, responseError(resp)
	}

	return decodeSnapshot(resp)
}

// SeriesCSV fetches the series of a run re-derived from its stored
// definition, parsed from the CSV export.
func (c *WorkbenchClient) SeriesCSV(ctx context.Context, id string) (*series.Frame, error) {
	if id == "" {
		return nil, fmt.Errorf("id cannot be empty")
	}

	resp, err := c.get(ctx, "/experiments/series", url.Values{"id": {id}})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("snapshot %q not found", id)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, responseError(resp)
	}

	frame, err := series.ReadCSV(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse series CSV: %w", err)
	}
	return frame, nil
}

func (c *WorkbenchClient) get(ctx context.Context, path string, query url.Values) (*http.Response, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	u.Path = path
	if query != nil {
		u.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	return resp, nil
}

func decodeSnapshot(resp *http.Response) (*storage.Snapshot, error) {
	var snapshot storage.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &snapshot, nil
}

// responseError surfaces the server's error message when the body carries
// one.
func responseError(resp *http.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		return fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, body.Error)
	}
	return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
}
