package observability

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mvp-joe/fileicons/internal/langmap"
	"github.com/mvp-joe/fileicons/internal/pipeline"
	"github.com/mvp-joe/fileicons/internal/table"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_RecordsBuild(t *testing.T) {
	t.Parallel()

	m := NewMetrics()
	var _ pipeline.ProgressReporter = m

	m.OnListComplete(5, 3)
	m.OnDirectoryProcessed("cpp", 2)
	m.OnDirectoryProcessed("python", 1)

	tbl, stats := table.Build([]table.Batch{{Records: []langmap.RegistrationRecord{
		{ID: "cpp", Extensions: []langmap.Extension{langmap.Ext(".cpp"), {Defined: false}}},
		{ID: "", Extensions: []langmap.Extension{langmap.Ext(".x")}},
	}}})
	m.OnComplete(&pipeline.Result{Table: tbl, Stats: stats, Duration: 1500 * time.Millisecond})

	assert.Equal(t, 5.0, testutil.ToFloat64(m.EntriesListed))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.Directories))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.DirectoriesProcessed))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.RecordsExtracted))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Records.WithLabelValues("accepted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Records.WithLabelValues("rejected")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Extensions))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.UndefinedSlots))
	assert.Equal(t, 1.5, testutil.ToFloat64(m.BuildDuration))
	assert.Greater(t, testutil.ToFloat64(m.LastSuccess), 0.0)
}

func TestMetrics_WriteTextfile(t *testing.T) {
	t.Parallel()

	m := NewMetrics()
	m.OnListComplete(2, 1)

	path := filepath.Join(t.TempDir(), "fileicons.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "fileicons_listing_entries 2")
	assert.Contains(t, string(data), "# HELP fileicons_language_directories")
}
