// Package pipeline runs one build: list the language directories, fetch and
// extract each contribution file, fold the records into the extension table,
// fetch the icon theme and write the artifact.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"path"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mvp-joe/fileicons/internal/artifact"
	"github.com/mvp-joe/fileicons/internal/langmap"
	"github.com/mvp-joe/fileicons/internal/source"
	"github.com/mvp-joe/fileicons/internal/table"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

const tracerName = "github.com/mvp-joe/fileicons/internal/pipeline"

// Lister lists the entries directly under a repository path.
type Lister interface {
	List(ctx context.Context, repository, ref, path string) ([]langmap.DirectoryEntry, error)
}

// SourceFetcher downloads the contribution file of a listed directory.
type SourceFetcher interface {
	Fetch(ctx context.Context, dirPath string) (string, error)
}

// Extractor pulls registration records out of a source file.
type Extractor interface {
	Extract(ctx context.Context, name string, source []byte) ([]langmap.RegistrationRecord, error)
}

// IconFetcher downloads the icon theme.
type IconFetcher interface {
	Fetch(ctx context.Context) (langmap.IconTheme, error)
	FontURL() string
}

// Writer persists rendered outputs.
type Writer interface {
	WriteAll(files ...artifact.File) error
}

// Options configures a run.
type Options struct {
	Repository string
	Ref        string
	Root       string
	Exclude    []string

	// Concurrency is the number of directories fetched and parsed at once.
	// Values below 2 process directories one after another.
	Concurrency int

	TableFile  string
	ModuleFile string
	ModuleVar  string

	// DryRun composes the artifact without writing it.
	DryRun  bool
	Verbose bool

	// TracerProvider receives the run's spans. Nil uses the global provider.
	TracerProvider trace.TracerProvider
}

// Result describes a completed run.
type Result struct {
	RunID       string
	Entries     int // listing size
	Directories int // directories processed
	Records     int // candidate records extracted
	Table       *table.ExtensionTable
	Stats       table.Stats
	Artifact    *artifact.Artifact
	Files       []artifact.File
	Written     bool
	Duration    time.Duration
}

// Pipeline wires the build stages together.
type Pipeline struct {
	lister    Lister
	fetcher   SourceFetcher
	extractor Extractor
	icons     IconFetcher
	writer    Writer
	filter    *Filter
	opts      Options
	tracer    trace.Tracer

	mu       sync.Mutex
	progress ProgressReporter
}

// New creates a pipeline. A nil progress reporter disables reporting.
func New(opts Options, lister Lister, fetcher SourceFetcher, extractor Extractor, icons IconFetcher, writer Writer, progress ProgressReporter) (*Pipeline, error) {
	filter, err := NewFilter(opts.Exclude)
	if err != nil {
		return nil, err
	}
	if progress == nil {
		progress = &NoOpProgressReporter{}
	}
	if opts.ModuleVar == "" {
		opts.ModuleVar = artifact.DefaultModuleVar
	}
	tp := opts.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}

	return &Pipeline{
		lister:    lister,
		fetcher:   fetcher,
		extractor: extractor,
		icons:     icons,
		writer:    writer,
		filter:    filter,
		opts:      opts,
		tracer:    tp.Tracer(tracerName),
		progress:  progress,
	}, nil
}

// Run executes one build. Any error aborts the run before anything is
// written.
func (p *Pipeline) Run(ctx context.Context) (result *Result, err error) {
	start := time.Now()
	result = &Result{RunID: uuid.New().String()}

	ctx, span := p.tracer.Start(ctx, "pipeline.Run", trace.WithAttributes(
		attribute.String("run.id", result.RunID),
		attribute.String("repository", p.opts.Repository),
		attribute.String("ref", p.opts.Ref),
		attribute.String("root", p.opts.Root),
	))
	defer func() { endSpan(span, err) }()

	if p.opts.Verbose {
		log.Printf("Run %s: %s@%s %s\n", result.RunID, p.opts.Repository, p.opts.Ref, p.opts.Root)
	}

	dirs, err := p.list(ctx, result)
	if err != nil {
		return nil, err
	}

	batches, err := p.processDirectories(ctx, dirs)
	if err != nil {
		return nil, err
	}
	for _, b := range batches {
		result.Records += len(b.Records)
	}

	result.Table, result.Stats = table.Build(batches)
	span.SetAttributes(
		attribute.Int("extensions", result.Table.Len()),
		attribute.Int("records.accepted", result.Stats.Accepted),
		attribute.Int("records.rejected", result.Stats.Rejected),
	)
	if p.opts.Verbose {
		p.logStats(result.Stats)
	}

	theme, err := p.fetchIcons(ctx)
	if err != nil {
		return nil, err
	}

	result.Artifact = artifact.Compose(result.Table, theme, p.icons.FontURL())
	result.Files, err = result.Artifact.Files(p.opts.TableFile, p.opts.ModuleFile, p.opts.ModuleVar)
	if err != nil {
		return nil, fmt.Errorf("failed to render artifact: %w", err)
	}

	if !p.opts.DryRun {
		if err := p.write(ctx, result.Files); err != nil {
			return nil, err
		}
		result.Written = true
	}

	result.Duration = time.Since(start)
	p.report(func(r ProgressReporter) { r.OnComplete(result) })
	return result, nil
}

func (p *Pipeline) list(ctx context.Context, result *Result) (_ []langmap.DirectoryEntry, err error) {
	ctx, span := p.tracer.Start(ctx, "pipeline.list")
	defer func() { endSpan(span, err) }()

	p.report(func(r ProgressReporter) { r.OnListStart(p.opts.Root) })
	entries, err := p.lister.List(ctx, p.opts.Repository, p.opts.Ref, p.opts.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", p.opts.Root, err)
	}
	dirs := p.filter.Select(entries)

	result.Entries = len(entries)
	result.Directories = len(dirs)
	span.SetAttributes(attribute.Int("entries", len(entries)), attribute.Int("directories", len(dirs)))
	p.report(func(r ProgressReporter) { r.OnListComplete(len(entries), len(dirs)) })
	return dirs, nil
}

func (p *Pipeline) fetchIcons(ctx context.Context) (_ langmap.IconTheme, err error) {
	ctx, span := p.tracer.Start(ctx, "pipeline.fetchIcons")
	defer func() { endSpan(span, err) }()

	p.report(func(r ProgressReporter) { r.OnIconThemeFetch() })
	theme, err := p.icons.Fetch(ctx)
	if err != nil {
		return langmap.IconTheme{}, fmt.Errorf("failed to fetch icon theme: %w", err)
	}
	return theme, nil
}

func (p *Pipeline) write(ctx context.Context, files []artifact.File) (err error) {
	_, span := p.tracer.Start(ctx, "pipeline.write")
	defer func() { endSpan(span, err) }()

	if err := ctx.Err(); err != nil {
		return err
	}
	p.report(func(r ProgressReporter) { r.OnWriting(p.outputDir()) })
	if err := p.writer.WriteAll(files...); err != nil {
		return fmt.Errorf("failed to write artifact: %w", err)
	}
	return nil
}

// processDirectories returns one batch per directory, indexed like dirs, so
// the fold order follows the listing even when work runs concurrently.
func (p *Pipeline) processDirectories(ctx context.Context, dirs []langmap.DirectoryEntry) ([]table.Batch, error) {
	batches := make([]table.Batch, len(dirs))

	if p.opts.Concurrency < 2 {
		for i, dir := range dirs {
			batch, err := p.processDirectory(ctx, dir)
			if err != nil {
				return nil, err
			}
			batches[i] = batch
		}
		return batches, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.Concurrency)
	for i, dir := range dirs {
		g.Go(func() error {
			batch, err := p.processDirectory(gctx, dir)
			if err != nil {
				return err
			}
			batches[i] = batch
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return batches, nil
}

func (p *Pipeline) processDirectory(ctx context.Context, dir langmap.DirectoryEntry) (_ table.Batch, err error) {
	ctx, span := p.tracer.Start(ctx, "pipeline.directory", trace.WithAttributes(
		attribute.String("directory", dir.Path),
	))
	defer func() { endSpan(span, err) }()

	text, err := p.fetcher.Fetch(ctx, dir.Path)
	if err != nil {
		return table.Batch{}, fmt.Errorf("failed to fetch %s: %w", dir.Path, err)
	}

	name := path.Join(dir.Path, dir.Name()+source.ContributionSuffix)
	records, err := p.extractor.Extract(ctx, name, []byte(text))
	if err != nil {
		return table.Batch{}, fmt.Errorf("failed to extract %s: %w", dir.Path, err)
	}
	span.SetAttributes(attribute.Int("records", len(records)))

	p.report(func(r ProgressReporter) { r.OnDirectoryProcessed(dir.Name(), len(records)) })
	return table.Batch{Directory: dir.Path, Records: records}, nil
}

func (p *Pipeline) report(fn func(ProgressReporter)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fn(p.progress)
}

func (p *Pipeline) outputDir() string {
	if d, ok := p.writer.(interface{ Dir() string }); ok {
		return d.Dir()
	}
	return ""
}

func (p *Pipeline) logStats(stats table.Stats) {
	log.Printf("Accepted %d records, rejected %d\n", stats.Accepted, stats.Rejected)
	if stats.Undefined > 0 {
		log.Printf("Warning: %d extension entries were not literals and were written as %q\n", stats.Undefined, table.UndefinedKey)
	}
	if stats.Overwritten > 0 {
		log.Printf("%d extension writes replaced an earlier language id\n", stats.Overwritten)
	}
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
