package source

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/maypok86/otter"
	"github.com/mvp-joe/fileicons/internal/langmap"
	"golang.org/x/time/rate"
)

// ContributionSuffix is appended to a directory's name to form the name of
// the file that registers its language.
const ContributionSuffix = ".contribution.ts"

// DefaultMemoCapacity bounds the in-run memo by total cached bytes.
const DefaultMemoCapacity = 32 << 20

// FetcherConfig configures a Fetcher.
type FetcherConfig struct {
	BaseURL           string // raw file host, e.g. https://raw.githubusercontent.com/microsoft/monaco-editor
	Commit            string
	RequestsPerSecond float64 // <= 0 disables limiting
	MemoCapacity      int     // bytes; <= 0 uses DefaultMemoCapacity
}

// Fetcher downloads contribution sources for listed directories. Within one
// run an identical URL is downloaded once. Safe for concurrent use.
type Fetcher struct {
	client  *http.Client
	baseURL string
	commit  string
	limiter *rate.Limiter
	memo    otter.Cache[string, string]
}

// NewFetcher creates a Fetcher.
func NewFetcher(cfg FetcherConfig, client *http.Client) (*Fetcher, error) {
	capacity := cfg.MemoCapacity
	if capacity <= 0 {
		capacity = DefaultMemoCapacity
	}

	memo, err := otter.MustBuilder[string, string](capacity).
		Cost(func(key string, value string) uint32 {
			return uint32(len(value))
		}).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create fetch memo: %w", err)
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}

	return &Fetcher{
		client:  client,
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		commit:  cfg.Commit,
		limiter: rate.NewLimiter(limit, 1),
		memo:    memo,
	}, nil
}

// ContributionURL returns <base>/<commit>/<dirPath>/<name>.contribution.ts
// where name is the last segment of dirPath.
func (f *Fetcher) ContributionURL(dirPath string) string {
	dirPath = strings.Trim(dirPath, "/")
	return fmt.Sprintf("%s/%s/%s/%s%s", f.baseURL, f.commit, dirPath, langmap.LastSegment(dirPath), ContributionSuffix)
}

// Fetch returns the contribution source for the directory at dirPath.
func (f *Fetcher) Fetch(ctx context.Context, dirPath string) (string, error) {
	url := f.ContributionURL(dirPath)

	if text, ok := f.memo.Get(url); ok {
		return text, nil
	}

	if err := f.limiter.Wait(ctx); err != nil {
		return "", &langmap.TransportError{Op: "fetch source", URL: url, Err: err}
	}

	body, err := get(ctx, f.client, url)
	if err != nil {
		return "", &langmap.TransportError{Op: "fetch source", URL: url, Err: err}
	}

	text := string(body)
	f.memo.Set(url, text)
	return text, nil
}

// Close releases the memo.
func (f *Fetcher) Close() {
	f.memo.Close()
}
