package artifact

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mvp-joe/fileicons/internal/langmap"
)

// StagingDir is the directory inside the output directory that holds files
// until every one of them has been written.
const StagingDir = ".tmp"

// File is one rendered output.
type File struct {
	Name string
	Data []byte
}

// Writer handles atomic file writing using temp → rename pattern.
type Writer struct {
	outputDir string
	tempDir   string
}

// NewWriter creates a writer for outputDir. Nothing touches the disk until
// WriteAll.
func NewWriter(outputDir string) *Writer {
	return &Writer{
		outputDir: outputDir,
		tempDir:   filepath.Join(outputDir, StagingDir),
	}
}

// Dir returns the output directory.
func (w *Writer) Dir() string {
	return w.outputDir
}

// WriteAll writes every file to a temp directory first and only then renames
// them into place, so a failed write leaves no new output behind.
// Existing files are replaced.
func (w *Writer) WriteAll(files ...File) error {
	if err := os.MkdirAll(w.outputDir, 0755); err != nil {
		return &langmap.IOError{Path: w.outputDir, Err: fmt.Errorf("failed to create output directory: %w", err)}
	}

	// Clean up stale temp files
	if err := os.RemoveAll(w.tempDir); err != nil {
		return &langmap.IOError{Path: w.tempDir, Err: fmt.Errorf("failed to clean temp directory: %w", err)}
	}
	if err := os.MkdirAll(w.tempDir, 0755); err != nil {
		return &langmap.IOError{Path: w.tempDir, Err: fmt.Errorf("failed to create temp directory: %w", err)}
	}
	defer os.RemoveAll(w.tempDir)

	for _, f := range files {
		tempPath := filepath.Join(w.tempDir, f.Name)
		if err := os.WriteFile(tempPath, f.Data, 0644); err != nil {
			return &langmap.IOError{Path: tempPath, Err: fmt.Errorf("failed to write temp file: %w", err)}
		}
	}

	for _, f := range files {
		// Rename to final location (atomic operation)
		finalPath := filepath.Join(w.outputDir, f.Name)
		if err := os.Rename(filepath.Join(w.tempDir, f.Name), finalPath); err != nil {
			return &langmap.IOError{Path: finalPath, Err: fmt.Errorf("failed to rename temp file: %w", err)}
		}
	}

	return nil
}
