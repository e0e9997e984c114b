package pipeline

import (
	"fmt"

	"github.com/gobwas/glob"
	"github.com/mvp-joe/fileicons/internal/langmap"
)

// Filter selects the listing entries that are processed.
type Filter struct {
	exclude []glob.Glob
}

// NewFilter compiles exclude patterns. Patterns match the final path segment
// of an entry.
func NewFilter(patterns []string) (*Filter, error) {
	f := &Filter{}
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
		f.exclude = append(f.exclude, g)
	}
	return f, nil
}

// Eligible reports whether entry is a directory that should be processed.
// The "test" directory is never eligible.
func (f *Filter) Eligible(entry langmap.DirectoryEntry) bool {
	if !entry.IsDirectory {
		return false
	}
	name := entry.Name()
	if name == langmap.TestDirName {
		return false
	}
	for _, g := range f.exclude {
		if g.Match(name) {
			return false
		}
	}
	return true
}

// Select returns the eligible entries in listing order.
func (f *Filter) Select(entries []langmap.DirectoryEntry) []langmap.DirectoryEntry {
	selected := make([]langmap.DirectoryEntry, 0, len(entries))
	for _, e := range entries {
		if f.Eligible(e) {
			selected = append(selected, e)
		}
	}
	return selected
}
