package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteDefault_RoundTrips(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path, err := WriteDefault(dir, false)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# fileicons build configuration.")
	assert.Contains(t, string(data), "commit: 920affc75f7f5d505eaaa5299d4323e4a90d5be1")
	assert.Contains(t, string(data), "timeout: 0s")

	cfg, err := NewLoader(dir).Load()
	require.NoError(t, err)

	defaults := Default()
	assert.Equal(t, defaults.Monaco.Commit, cfg.Monaco.Commit)
	assert.Equal(t, defaults.VSCode.RawBase, cfg.VSCode.RawBase)
	assert.Equal(t, defaults.Output, cfg.Output)
	assert.Equal(t, time.Duration(0), cfg.Fetch.Timeout)
}

func TestWriteDefault_RefusesOverwrite(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path, err := WriteDefault(dir, false)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte("monaco:\n  commit: mine\n"), 0644))

	_, err = WriteDefault(dir, false)
	require.ErrorIs(t, err, ErrConfigExists)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "monaco:\n  commit: mine\n", string(data))

	_, err = WriteDefault(dir, true)
	require.NoError(t, err)
	cfg, err := NewLoader(dir).Load()
	require.NoError(t, err)
	assert.Equal(t, Default().Monaco.Commit, cfg.Monaco.Commit)
}
