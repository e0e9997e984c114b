package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/mvp-joe/fileicons/internal/langmap"
)

const (
	// ThemePath is the seti icon theme descriptor inside the VS Code repository.
	ThemePath = "extensions/theme-seti/icons/vs-seti-icon-theme.json"

	// FontPath is the seti icon font inside the VS Code repository.
	FontPath = "extensions/theme-seti/icons/seti.woff"
)

// IconFetcher downloads the icon theme descriptor at a pinned commit.
type IconFetcher struct {
	client  *http.Client
	baseURL string
	commit  string
}

// NewIconFetcher creates an IconFetcher for baseURL (the raw host of the
// VS Code repository) at commit.
func NewIconFetcher(baseURL, commit string, client *http.Client) *IconFetcher {
	return &IconFetcher{
		client:  client,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		commit:  commit,
	}
}

// ThemeURL returns the descriptor URL.
func (f *IconFetcher) ThemeURL() string {
	return fmt.Sprintf("%s/%s/%s", f.baseURL, f.commit, ThemePath)
}

// FontURL returns the icon font URL written into the artifact.
func (f *IconFetcher) FontURL() string {
	return fmt.Sprintf("%s/%s/%s", f.baseURL, f.commit, FontPath)
}

// Fetch downloads and decodes the descriptor. Fields missing from the
// descriptor are left nil.
func (f *IconFetcher) Fetch(ctx context.Context) (langmap.IconTheme, error) {
	url := f.ThemeURL()

	body, err := get(ctx, f.client, url)
	if err != nil {
		return langmap.IconTheme{}, &langmap.TransportError{Op: "fetch icon theme", URL: url, Err: err}
	}

	var theme langmap.IconTheme
	if err := json.Unmarshal(body, &theme); err != nil {
		return langmap.IconTheme{}, &langmap.TransportError{
			Op:  "fetch icon theme",
			URL: url,
			Err: fmt.Errorf("failed to decode icon theme: %w", err),
		}
	}
	return theme, nil
}
