// Package source talks to the remote services a build reads from: the
// Sourcegraph GraphQL API for directory listings and raw file hosting for
// contribution sources and the icon theme.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// UserAgent is sent with every request.
const UserAgent = "fileicons-build"

// ErrUnexpectedStatus indicates a non-2xx HTTP response.
var ErrUnexpectedStatus = errors.New("unexpected status")

// NewHTTPClient returns the client used for all remote calls. A zero timeout
// means requests are bounded only by their context.
func NewHTTPClient(timeout time.Duration, token string) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: &headerTransport{base: http.DefaultTransport, token: token},
	}
}

// headerTransport adds the user agent and, when set, a Sourcegraph access
// token to outgoing requests.
type headerTransport struct {
	base  http.RoundTripper
	token string
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", UserAgent)
	if t.token != "" && req.Header.Get("Authorization") == "" {
		req.Header.Set("Authorization", "token "+t.token)
	}
	return t.base.RoundTrip(req)
}

// get downloads url and returns the body of a 2xx response.
func get(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w %d: %s", ErrUnexpectedStatus, resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}
