package cli

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/mvp-joe/fileicons/internal/pipeline"
	"github.com/schollz/progressbar/v3"
)

// CLIProgressReporter implements progress reporting with progress bars.
type CLIProgressReporter struct {
	quiet     bool
	out       io.Writer
	dirBar    *progressbar.ProgressBar
	startTime time.Time
	records   int
}

// NewCLIProgressReporter creates a new CLI progress reporter.
func NewCLIProgressReporter(quiet bool) *CLIProgressReporter {
	return &CLIProgressReporter{
		quiet:     quiet,
		out:       os.Stdout,
		startTime: time.Now(),
	}
}

func (c *CLIProgressReporter) OnListStart(root string) {
	if c.quiet {
		return
	}
	log.Printf("Listing %s...\n", root)
}

func (c *CLIProgressReporter) OnListComplete(entries, directories int) {
	if c.quiet {
		return
	}
	log.Printf("Processing %d language directories (%d entries listed)\n", directories, entries)
	if directories == 0 {
		return
	}

	c.dirBar = progressbar.NewOptions(directories,
		progressbar.OptionSetWriter(c.out),
		progressbar.OptionSetDescription("Extracting languages"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("dirs/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(c.out)
		}),
	)
}

func (c *CLIProgressReporter) OnDirectoryProcessed(name string, records int) {
	if c.quiet {
		return
	}
	c.records += records
	if c.dirBar != nil {
		c.dirBar.Add(1)
	}
}

func (c *CLIProgressReporter) OnIconThemeFetch() {
	if c.quiet {
		return
	}
	if c.dirBar != nil {
		c.dirBar.Finish()
		c.dirBar = nil
	}
	log.Println("Fetching icon theme...")
}

func (c *CLIProgressReporter) OnWriting(dir string) {
	if c.quiet {
		return
	}
	log.Printf("Writing %s...\n", dir)
}

func (c *CLIProgressReporter) OnComplete(result *pipeline.Result) {
	if c.quiet {
		return
	}

	fmt.Fprintln(c.out)
	fmt.Fprintf(c.out, "✓ Build complete: %s extensions in %.1fs\n",
		formatNumber(result.Table.Len()),
		time.Since(c.startTime).Seconds())
	fmt.Fprintf(c.out, "  Languages:  %s directories, %s registrations\n",
		formatNumber(result.Directories), formatNumber(c.records))
	fmt.Fprintf(c.out, "  Rejected:   %s\n", formatNumber(result.Stats.Rejected))
	if !result.Written {
		fmt.Fprintln(c.out, "  Dry run: nothing written")
	}
}

// formatNumber renders n with thousands separators.
func formatNumber(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}

	str := fmt.Sprintf("%d", n)
	var result string
	for i, c := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			result += ","
		}
		result += string(c)
	}
	return result
}
