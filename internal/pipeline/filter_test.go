package pipeline

import (
	"testing"

	"github.com/mvp-joe/fileicons/internal/langmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilter_Eligible(t *testing.T) {
	t.Parallel()

	f, err := NewFilter([]string{"_*", "{legacy,old}-*"})
	require.NoError(t, err)

	tests := []struct {
		entry langmap.DirectoryEntry
		want  bool
	}{
		{langmap.DirectoryEntry{Path: "src/basic-languages/cpp", IsDirectory: true}, true},
		{langmap.DirectoryEntry{Path: "src/basic-languages/test", IsDirectory: true}, false},
		{langmap.DirectoryEntry{Path: "src/basic-languages/testing", IsDirectory: true}, true},
		{langmap.DirectoryEntry{Path: "src/basic-languages/_.contribution.ts", IsDirectory: false}, false},
		{langmap.DirectoryEntry{Path: "src/basic-languages/_shared", IsDirectory: true}, false},
		{langmap.DirectoryEntry{Path: "src/basic-languages/old-vb", IsDirectory: true}, false},
		{langmap.DirectoryEntry{Path: "test/cpp", IsDirectory: true}, true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, f.Eligible(tt.entry), tt.entry.Path)
	}
}

func TestFilter_TestAlwaysExcluded(t *testing.T) {
	t.Parallel()

	f, err := NewFilter(nil)
	require.NoError(t, err)

	selected := f.Select([]langmap.DirectoryEntry{
		{Path: "a/python", IsDirectory: true},
		{Path: "a/test", IsDirectory: true},
		{Path: "a/go", IsDirectory: true},
	})
	assert.Equal(t, []langmap.DirectoryEntry{
		{Path: "a/python", IsDirectory: true},
		{Path: "a/go", IsDirectory: true},
	}, selected)
}
