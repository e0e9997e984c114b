package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/mvp-joe/fileicons/internal/extract"
	"github.com/mvp-joe/fileicons/internal/langmap"
	"github.com/mvp-joe/fileicons/internal/source"
	"github.com/spf13/cobra"
)

var (
	extractJSONFlag   bool
	extractRemoteFlag bool
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract <file.ts|dir>...",
	Short: "Print the registerLanguage records found in contribution files",
	Long: `Extract parses TypeScript contribution files and prints the id and
extensions of every registerLanguage call. Records that a build would reject
(empty id or no extensions) are printed too and marked as such.

Examples:
  # A local file
  fileicons extract src/basic-languages/cpp/cpp.contribution.ts

  # Directories under the configured Monaco root, fetched at the pinned commit
  fileicons extract --remote cpp python

  # Machine readable output
  fileicons extract --json cpp.contribution.ts
`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().BoolVar(&extractJSONFlag, "json", false, "Print records as JSON")
	extractCmd.Flags().BoolVarP(&extractRemoteFlag, "remote", "r", false, "Treat arguments as language directories and fetch them")
}

// extractedRecord is the printable form of a registration record.
// Non-literal extension slots are null.
type extractedRecord struct {
	File       string    `json:"file"`
	ID         string    `json:"id"`
	Extensions []*string `json:"extensions"`
	Valid      bool      `json:"valid"`
}

func runExtract(cmd *cobra.Command, args []string) error {
	ctx, cancel := interruptContext(cmd.Context(), "Interrupted! Cancelling extraction...")
	defer cancel()

	x := extract.New()
	var out []extractedRecord

	if extractRemoteFlag {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		fetcher, err := source.NewFetcher(source.FetcherConfig{
			BaseURL:           cfg.Monaco.RawBase,
			Commit:            cfg.Monaco.Commit,
			RequestsPerSecond: cfg.Fetch.RequestsPerSecond,
		}, source.NewHTTPClient(cfg.Fetch.Timeout, ""))
		if err != nil {
			return err
		}
		defer fetcher.Close()

		for _, arg := range args {
			dirPath := arg
			if !strings.Contains(arg, "/") {
				dirPath = path.Join(cfg.Monaco.Root, arg)
			}
			text, err := fetcher.Fetch(ctx, dirPath)
			if err != nil {
				return err
			}
			name := fetcher.ContributionURL(dirPath)
			records, err := x.Extract(ctx, name, []byte(text))
			if err != nil {
				return err
			}
			out = appendRecords(out, name, records)
		}
	} else {
		for _, arg := range args {
			records, err := x.ParseFile(ctx, arg)
			if err != nil {
				return err
			}
			out = appendRecords(out, arg, records)
		}
	}

	if extractJSONFlag {
		return writeRecordsJSON(cmd.OutOrStdout(), out)
	}
	writeRecordsText(cmd.OutOrStdout(), out)
	return nil
}

func appendRecords(out []extractedRecord, file string, records []langmap.RegistrationRecord) []extractedRecord {
	for _, rec := range records {
		r := extractedRecord{
			File:       file,
			ID:         rec.ID,
			Extensions: make([]*string, len(rec.Extensions)),
			Valid:      rec.Valid(),
		}
		for i, ext := range rec.Extensions {
			if ext.Defined {
				v := ext.Value
				r.Extensions[i] = &v
			}
		}
		out = append(out, r)
	}
	return out
}

func writeRecordsJSON(w io.Writer, records []extractedRecord) error {
	if records == nil {
		records = []extractedRecord{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

func writeRecordsText(w io.Writer, records []extractedRecord) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No registerLanguage calls found")
		return
	}
	for _, r := range records {
		exts := make([]string, len(r.Extensions))
		for i, e := range r.Extensions {
			if e == nil {
				exts[i] = "<non-literal>"
			} else {
				exts[i] = *e
			}
		}
		id := r.ID
		if id == "" {
			id = `""`
		}
		line := fmt.Sprintf("%s: %s [%s]", r.File, id, strings.Join(exts, " "))
		if !r.Valid {
			line += " (rejected)"
		}
		fmt.Fprintln(w, line)
	}
}
