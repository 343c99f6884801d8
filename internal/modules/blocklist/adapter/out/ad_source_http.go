package out

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	blocklistout "hyprfocus/internal/modules/blocklist/port/out"
)

const (
	adFetchTimeout = 60 * time.Second
	maxAdListBytes = 64 << 20
)

type HTTPAdSource struct {
	url    string
	client *http.Client
}

func NewHTTPAdSource(url string, client *http.Client) blocklistout.AdSource {
	if client == nil {
		client = &http.Client{Timeout: adFetchTimeout}
	}
	return &HTTPAdSource{url: url, client: client}
}

func (s *HTTPAdSource) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build ad list request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch ad list: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch ad list: unexpected status %s", resp.Status)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxAdListBytes))
	if err != nil {
		return nil, fmt.Errorf("read ad list: %w", err)
	}
	return body, nil
}
