package pipeline

// ProgressReporter provides callbacks for reporting build progress.
// Implementations can display progress bars, log messages, or remain silent.
// Calls are serialized by the pipeline.
type ProgressReporter interface {
	// OnListStart is called before the directory listing is requested.
	OnListStart(root string)

	// OnListComplete is called with the listing size and the number of
	// directories that will be processed.
	OnListComplete(entries, directories int)

	// OnDirectoryProcessed is called after a directory's records are extracted.
	OnDirectoryProcessed(name string, records int)

	// OnIconThemeFetch is called before the icon theme is downloaded.
	OnIconThemeFetch()

	// OnWriting is called before the outputs are written.
	OnWriting(dir string)

	// OnComplete is called when the build completes successfully.
	OnComplete(result *Result)
}

// NoOpProgressReporter is a progress reporter that does nothing.
// Used when progress reporting is disabled (e.g., --quiet flag).
type NoOpProgressReporter struct{}

func (n *NoOpProgressReporter) OnListStart(root string)                       {}
func (n *NoOpProgressReporter) OnListComplete(entries, directories int)       {}
func (n *NoOpProgressReporter) OnDirectoryProcessed(name string, records int) {}
func (n *NoOpProgressReporter) OnIconThemeFetch()                             {}
func (n *NoOpProgressReporter) OnWriting(dir string)                          {}
func (n *NoOpProgressReporter) OnComplete(result *Result)                     {}

// MultiReporter fans every callback out to each reporter in order.
type MultiReporter []ProgressReporter

func (m MultiReporter) OnListStart(root string) {
	for _, r := range m {
		r.OnListStart(root)
	}
}

func (m MultiReporter) OnListComplete(entries, directories int) {
	for _, r := range m {
		r.OnListComplete(entries, directories)
	}
}

func (m MultiReporter) OnDirectoryProcessed(name string, records int) {
	for _, r := range m {
		r.OnDirectoryProcessed(name, records)
	}
}

func (m MultiReporter) OnIconThemeFetch() {
	for _, r := range m {
		r.OnIconThemeFetch()
	}
}

func (m MultiReporter) OnWriting(dir string) {
	for _, r := range m {
		r.OnWriting(dir)
	}
}

func (m MultiReporter) OnComplete(result *Result) {
	for _, r := range m {
		r.OnComplete(result)
	}
}
