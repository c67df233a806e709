package sanctions

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// HTTPLookup queries a remote screening service. A non-200 response or
// transport failure is an error, never a "not listed": the screening rule
// fails closed on it.
type HTTPLookup struct {
	baseURL string
	client  *http.Client
}

// HTTPOption configures an HTTPLookup.
type HTTPOption func(*HTTPLookup)

// WithHTTPClient overrides the HTTP client, e.g. for tests.
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(l *HTTPLookup) {
		if client != nil {
			l.client = client
		}
	}
}

// NewHTTP constructs a remote screening client against baseURL.
func NewHTTP(baseURL string, opts ...HTTPOption) *HTTPLookup {
	l := &HTTPLookup{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 3 * time.Second},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

type screenResponse struct {
	Listed bool `json:"listed"`
}

// Contains screens one address against the remote denylist.
func (l *HTTPLookup) Contains(ctx context.Context, address string) (bool, error) {
	address = strings.ToLower(strings.TrimSpace(address))
	endpoint := fmt.Sprintf("%s/v1/screen/%s", l.baseURL, url.PathEscape(address))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, fmt.Errorf("build screening request: %w", err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("screening request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("screening service returned %d", resp.StatusCode)
	}

	var body screenResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return false, fmt.Errorf("decode screening response: %w", err)
	}
	return body.Listed, nil
}
