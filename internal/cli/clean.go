package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mvp-joe/fileicons/internal/artifact"
	"github.com/mvp-joe/fileicons/internal/config"
	"github.com/spf13/cobra"
)

var cleanQuietFlag bool
var cleanAllFlag bool

// cleanCmd represents the clean command
var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove generated artifacts from the output directory",
	Long: `Clean removes the files written by 'fileicons build' from the output
directory, along with any staging directory left behind by an interrupted
write.

By default only the generated table and module files are deleted. Use --all
to delete the entire output directory.

The configuration file (.fileicons/config.yml) is preserved.

Examples:
  # Remove fileIdLookMap.json and index.js
  fileicons clean

  # Remove the whole output directory
  fileicons clean --all

  # Clean with minimal output
  fileicons clean --quiet
`,
	RunE: runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)
	cleanCmd.Flags().BoolVarP(&cleanQuietFlag, "quiet", "q", false, "Suppress output messages")
	cleanCmd.Flags().BoolVarP(&cleanAllFlag, "all", "a", false, "Delete the entire output directory")
}

func runClean(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if cleanQuietFlag {
		out = io.Discard
	}
	return executeClean(&cfg.Output, cleanAllFlag, out)
}

// executeClean removes generated files according to cfg and reports what it
// removed to out.
func executeClean(cfg *config.OutputConfig, all bool, out io.Writer) error {
	dir := cfg.Dir

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		fmt.Fprintf(out, "No output directory at %s\n", dir)
		return nil
	}

	if all {
		totalSize, fileCount, err := getOutputStats(dir)
		if err != nil {
			totalSize = 0
			fileCount = 0
		}

		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("failed to remove output directory: %w", err)
		}

		if fileCount > 0 {
			fmt.Fprintf(out, "✓ Removed %s (%d files, ~%.1f KB)\n", dir, fileCount, totalSize)
		} else {
			fmt.Fprintf(out, "✓ Removed %s\n", dir)
		}
		return nil
	}

	// A staging directory only survives a write that died between phases
	if err := os.RemoveAll(filepath.Join(dir, artifact.StagingDir)); err != nil {
		return fmt.Errorf("failed to remove staging directory: %w", err)
	}

	removed := 0
	var sizeKB float64
	for _, name := range []string{cfg.TableFile, cfg.ModuleFile} {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if os.IsNotExist(err) {
			continue
		}
		if err == nil {
			sizeKB += float64(info.Size()) / 1024
		}

		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to remove %s: %w", name, err)
		}
		removed++
	}

	if removed == 0 {
		fmt.Fprintf(out, "No generated files found in %s\n", dir)
		return nil
	}

	fmt.Fprintf(out, "✓ Removed %d generated files from %s (~%.1f KB)\n", removed, dir, sizeKB)
	return nil
}

// getOutputStats calculates the total size and number of regular files under dir.
func getOutputStats(dir string) (totalSizeKB float64, fileCount int, err error) {
	err = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		fileCount++

		info, err := d.Info()
		if err == nil {
			totalSizeKB += float64(info.Size()) / 1024
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	return totalSizeKB, fileCount, nil
}
