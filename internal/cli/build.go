package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mvp-joe/fileicons/internal/artifact"
	"github.com/mvp-joe/fileicons/internal/config"
	"github.com/mvp-joe/fileicons/internal/extract"
	"github.com/mvp-joe/fileicons/internal/langmap"
	"github.com/mvp-joe/fileicons/internal/observability"
	"github.com/mvp-joe/fileicons/internal/pipeline"
	"github.com/mvp-joe/fileicons/internal/source"
	"github.com/spf13/cobra"
)

var (
	quietFlag       bool
	dryRunFlag      bool
	outDirFlag      string
	concurrencyFlag int
	metricsFileFlag string
)

// buildCmd represents the build command
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Generate fileIdLookMap.json and index.js",
	Long: `Build lists the Monaco basic-languages directories, downloads each
<dir>.contribution.ts, extracts every registerLanguage({ id, extensions })
call and folds the results into an extension lookup table. The table is merged
with the VS Code seti icon theme and written to the output directory.

Any failure aborts the build and nothing is written.

Examples:
  # Build into ./build
  fileicons build

  # Build without progress output
  fileicons build --quiet

  # Fetch eight languages at a time into ./dist
  fileicons build --concurrency 8 --out dist

  # Show what would be produced without writing
  fileicons build --dry-run

  # Record build metrics for the node exporter textfile collector
  fileicons build --metrics-file /var/lib/node_exporter/fileicons.prom
`,
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().BoolVarP(&quietFlag, "quiet", "q", false, "Disable progress bars and non-error output")
	buildCmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "Compose the artifact without writing it")
	buildCmd.Flags().StringVarP(&outDirFlag, "out", "o", "", "Output directory (overrides output.dir)")
	buildCmd.Flags().IntVarP(&concurrencyFlag, "concurrency", "c", 0, "Directories processed at once (overrides fetch.concurrency)")
	buildCmd.Flags().StringVar(&metricsFileFlag, "metrics-file", "", "Write Prometheus metrics to this file (overrides telemetry.metrics_file)")
}

func runBuild(cmd *cobra.Command, args []string) error {
	ctx, cancel := interruptContext(cmd.Context(), "Interrupted! Cancelling build...")
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if outDirFlag != "" {
		cfg.Output.Dir = outDirFlag
	}
	if cmd.Flags().Changed("concurrency") {
		cfg.Fetch.Concurrency = concurrencyFlag
	}
	if metricsFileFlag != "" {
		cfg.Telemetry.MetricsFile = metricsFileFlag
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if endpoint := cfg.Telemetry.TracingEndpoint; endpoint != "" {
		shutdown, err := observability.SetupTracing(ctx, endpoint, cfg.Telemetry.TracingInsecure)
		if err != nil {
			return err
		}
		defer func() {
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(flushCtx); err != nil {
				log.Printf("Warning: failed to flush traces: %v\n", err)
			}
		}()
	}

	progress := NewCLIProgressReporter(quietFlag)

	result, err := build(ctx, cfg, dryRunFlag, progress)
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	if verbose && !quietFlag {
		log.Printf("Run %s finished in %s\n", result.RunID, result.Duration)
	}
	return nil
}

// build wires the remote sources, extractor and writer described by cfg into
// a pipeline and runs it once. Metrics are written only after a successful
// run.
func build(ctx context.Context, cfg *config.Config, dryRun bool, progress pipeline.ProgressReporter) (*pipeline.Result, error) {
	var metrics *observability.Metrics
	if cfg.Telemetry.MetricsFile != "" {
		metrics = observability.NewMetrics()
		if progress == nil {
			progress = metrics
		} else {
			progress = pipeline.MultiReporter{progress, metrics}
		}
	}

	// The Sourcegraph token must not leak to the raw file host.
	graphClient := source.NewHTTPClient(cfg.Fetch.Timeout, cfg.Sourcegraph.Token)
	rawClient := source.NewHTTPClient(cfg.Fetch.Timeout, "")

	fetcher, err := source.NewFetcher(source.FetcherConfig{
		BaseURL:           cfg.Monaco.RawBase,
		Commit:            cfg.Monaco.Commit,
		RequestsPerSecond: cfg.Fetch.RequestsPerSecond,
	}, rawClient)
	if err != nil {
		return nil, fmt.Errorf("failed to create fetcher: %w", err)
	}
	defer fetcher.Close()

	p, err := pipeline.New(
		pipeline.Options{
			Repository:  cfg.Monaco.Repository,
			Ref:         cfg.Monaco.Commit,
			Root:        cfg.Monaco.Root,
			Exclude:     cfg.Monaco.Exclude,
			Concurrency: cfg.Fetch.Concurrency,
			TableFile:   cfg.Output.TableFile,
			ModuleFile:  cfg.Output.ModuleFile,
			ModuleVar:   cfg.Output.ModuleVar,
			DryRun:      dryRun,
			Verbose:     verbose,
		},
		source.NewLister(cfg.Sourcegraph.Endpoint, graphClient),
		fetcher,
		extract.New(),
		source.NewIconFetcher(cfg.VSCode.RawBase, cfg.VSCode.Commit, rawClient),
		artifact.NewWriter(cfg.Output.Dir),
		progress,
	)
	if err != nil {
		return nil, err
	}

	result, err := p.Run(ctx)
	if err != nil {
		return nil, err
	}

	if metrics != nil {
		if err := metrics.WriteTextfile(cfg.Telemetry.MetricsFile); err != nil {
			return nil, &langmap.IOError{Path: cfg.Telemetry.MetricsFile, Err: err}
		}
	}
	return result, nil
}

// interruptContext returns a child of parent cancelled on Ctrl+C or SIGTERM.
func interruptContext(parent context.Context, message string) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-sigChan:
			fmt.Fprintln(os.Stderr, "\n"+message)
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigChan)
	}()

	return ctx, cancel
}
