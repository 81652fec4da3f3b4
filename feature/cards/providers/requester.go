package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"card-catalog/core/resilience"
)

const (
	maxResponseBytes = 16 << 20
	maxErrorBody     = 512
)

// requester performs GET requests behind the provider's circuit breaker.
type requester struct {
	provider string
	baseURL  string
	client   *http.Client
	exec     *resilience.Executor
	headers  http.Header
	// absentBody reports responses that mean "nothing matched" despite their status.
	absentBody func(status int, body []byte) bool
}

func newRequester(provider string, opts Options, apiKeyHeader string) *requester {
	headers := make(http.Header)
	headers.Set("Accept", "application/json")
	if opts.UserAgent != "" {
		headers.Set("User-Agent", opts.UserAgent)
	}
	if apiKeyHeader != "" && opts.APIKey != "" {
		headers.Set(apiKeyHeader, opts.APIKey)
	}
	return &requester{
		provider: provider,
		baseURL:  strings.TrimRight(opts.BaseURL, "/"),
		client:   opts.HTTPClient,
		exec:     opts.Executor,
		headers:  headers,
	}
}

// getJSON decodes the response of GET baseURL+endpoint into out. A response whose status
// is listed in absent reports false without error and is not counted by the breaker.
func (r *requester) getJSON(ctx context.Context, operation, endpoint string, query url.Values, out any, absent ...int) (bool, error) {
	target := r.baseURL + endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var found bool
	err := r.exec.Call(ctx, r.provider, operation, func(ctx context.Context) error {
		found = false
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return fmt.Errorf("build request: %w", err)
		}
		for k, v := range r.headers {
			req.Header[k] = v
		}

		resp, err := r.client.Do(req)
		if err != nil {
			return &ProviderError{Provider: r.provider, Operation: operation, Err: err}
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
		if err != nil {
			return &ProviderError{Provider: r.provider, Operation: operation, Err: fmt.Errorf("read response: %w", err)}
		}

		if slices.Contains(absent, resp.StatusCode) ||
			(r.absentBody != nil && r.absentBody(resp.StatusCode, body)) {
			return nil
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return &ProviderError{
				Provider:   r.provider,
				Operation:  operation,
				StatusCode: resp.StatusCode,
				Body:       truncate(string(body), maxErrorBody),
			}
		}
		if err := json.Unmarshal(body, out); err != nil {
			return &ProviderError{
				Provider:   r.provider,
				Operation:  operation,
				StatusCode: resp.StatusCode,
				Err:        fmt.Errorf("decode response: %w", err),
			}
		}
		found = true
		return nil
	}, nil)
	return found, err
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
