package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Getter is anything that can fetch a URL into memory.
type Getter interface {
	GetBytes(ctx context.Context, url string) ([]byte, error)
}

// StatusError is returned when the server answers with a non-2xx status.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("failed to fetch %s, status code: %d", e.URL, e.StatusCode)
}

type Fetcher struct {
	client *http.Client
}

// NewFetcher returns a Fetcher. A zero timeout leaves the request unbounded.
func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: timeout},
	}
}

// NewFetcherWithClient is used by tests to plug in an httptest client.
func NewFetcherWithClient(client *http.Client) *Fetcher {
	if client == nil {
		client = &http.Client{}
	}
	return &Fetcher{client: client}
}

// GetBytes performs a single GET and buffers the whole body.
func (f *Fetcher) GetBytes(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build HTTP request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return bodyBytes, nil
}
