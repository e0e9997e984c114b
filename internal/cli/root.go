package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/mvp-joe/fileicons/internal/config"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "fileicons",
	Short: "fileicons - build the file extension to language lookup",
	Long: `fileicons reads the language contributions of the Monaco editor at a
pinned revision, extracts the extensions each language registers and merges
them with the VS Code seti icon theme into fileIdLookMap.json and index.js.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
// fang prints the error, so only the exit code is left to set here.
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(Version),
		fang.WithoutManpage(),
	); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .fileicons/config.yml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadConfig reads the project config (or the file named by --config) and
// fills credentials from the global config.
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if cfgFile != "" {
		cfg, err = config.NewFileLoader(cfgFile).Load()
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	global, err := config.LoadGlobalConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load global configuration: %w", err)
	}
	cfg.ApplyGlobal(global)

	if verbose {
		log.Printf("Monaco %s@%s, VS Code @%s\n", cfg.Monaco.Repository, cfg.Monaco.Commit, cfg.VSCode.Commit)
	}
	return cfg, nil
}
