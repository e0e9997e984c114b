package cli

import (
	"fmt"
	"os"

	"github.com/mvp-joe/fileicons/internal/config"
	"github.com/spf13/cobra"
)

var initForceFlag bool

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration to .fileicons/config.yml",
	Long: `Init writes the built-in defaults, including the pinned Monaco and
VS Code revisions, to .fileicons/config.yml in the current directory so they
can be reviewed and edited.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVarP(&initForceFlag, "force", "f", false, "Overwrite an existing config file")
}

func runInit(cmd *cobra.Command, args []string) error {
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	path, err := config.WriteDefault(wd, initForceFlag)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s\n", path)
	return nil
}
