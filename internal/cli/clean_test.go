package cli

// Test Plan for Clean Command:
// - executeClean deletes the table and module files and keeps other files
// - executeClean removes a leftover staging directory
// - executeClean with all deletes the entire output directory
// - executeClean handles a missing output directory gracefully
// - executeClean reports when no generated files exist
// - getOutputStats counts nested files and sums sizes

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/mvp-joe/fileicons/internal/artifact"
	"github.com/mvp-joe/fileicons/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupOutputDir creates an output directory holding both generated files
// and one unrelated file.
func setupOutputDir(t *testing.T) *config.OutputConfig {
	t.Helper()

	cfg := config.Default().Output
	cfg.Dir = filepath.Join(t.TempDir(), "build")
	require.NoError(t, os.MkdirAll(cfg.Dir, 0755))

	require.NoError(t, os.WriteFile(filepath.Join(cfg.Dir, cfg.TableFile), []byte(`{"exts":{}}`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Dir, cfg.ModuleFile), []byte("module.exports = {};"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Dir, "README.md"), []byte("keep me"), 0644))

	return &cfg
}

func TestExecuteClean_RemovesGeneratedFiles(t *testing.T) {
	t.Parallel()

	cfg := setupOutputDir(t)
	var out bytes.Buffer

	require.NoError(t, executeClean(cfg, false, &out))

	assert.NoFileExists(t, filepath.Join(cfg.Dir, cfg.TableFile))
	assert.NoFileExists(t, filepath.Join(cfg.Dir, cfg.ModuleFile))
	assert.FileExists(t, filepath.Join(cfg.Dir, "README.md"))
	assert.Contains(t, out.String(), "Removed 2 generated files")
}

func TestExecuteClean_RemovesStagingDirectory(t *testing.T) {
	t.Parallel()

	cfg := setupOutputDir(t)
	staging := filepath.Join(cfg.Dir, artifact.StagingDir)
	require.NoError(t, os.MkdirAll(staging, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(staging, cfg.TableFile), []byte("{}"), 0644))

	require.NoError(t, executeClean(cfg, false, &bytes.Buffer{}))

	assert.NoDirExists(t, staging)
}

func TestExecuteClean_AllRemovesDirectory(t *testing.T) {
	t.Parallel()

	cfg := setupOutputDir(t)
	var out bytes.Buffer

	require.NoError(t, executeClean(cfg, true, &out))

	assert.NoDirExists(t, cfg.Dir)
	assert.Contains(t, out.String(), "3 files")
}

func TestExecuteClean_MissingOutputDirectory(t *testing.T) {
	t.Parallel()

	cfg := config.Default().Output
	cfg.Dir = filepath.Join(t.TempDir(), "never-built")
	var out bytes.Buffer

	assert.NoError(t, executeClean(&cfg, false, &out), "should handle missing output gracefully")
	assert.Contains(t, out.String(), "No output directory")
}

func TestExecuteClean_NothingToRemove(t *testing.T) {
	t.Parallel()

	cfg := config.Default().Output
	cfg.Dir = t.TempDir()
	var out bytes.Buffer

	require.NoError(t, executeClean(&cfg, false, &out))
	assert.Contains(t, out.String(), "No generated files found")
}

func TestGetOutputStats(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.json"), make([]byte, 1024), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nested", "b.js"), make([]byte, 2048), 0644))

	size, count, err := getOutputStats(dir)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.InDelta(t, 3.0, size, 0.001)
}
