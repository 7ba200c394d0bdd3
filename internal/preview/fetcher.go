package preview

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// maxDocumentSize caps a fetched preview document.
const maxDocumentSize = 1 << 20

// ErrFetchDisabled is returned when no base URL is configured.
var ErrFetchDisabled = errors.New("remote preview fetching is disabled")

// Fetcher downloads preview documents from <baseURL>/<alias>.
type Fetcher struct {
	baseURL string
	client  *http.Client
}

// NewFetcher creates a fetcher. An empty baseURL disables fetching.
func NewFetcher(baseURL string, timeout time.Duration) *Fetcher {
	return &Fetcher{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Enabled reports whether a base URL is configured.
func (f *Fetcher) Enabled() bool {
	return f != nil && f.baseURL != ""
}

// Fetch downloads the preview document for alias.
func (f *Fetcher) Fetch(ctx context.Context, alias string) (string, error) {
	if !f.Enabled() {
		return "", ErrFetchDisabled
	}

	endpoint := f.baseURL + "/" + url.PathEscape(alias)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "text/plain")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s: unexpected status %s", endpoint, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize+1))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", endpoint, err)
	}
	if len(body) > maxDocumentSize {
		return "", fmt.Errorf("fetch %s: document exceeds %d bytes", endpoint, maxDocumentSize)
	}
	return string(body), nil
}
