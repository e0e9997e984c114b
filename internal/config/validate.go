package config

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/gobwas/glob"
)

var (
	// ErrInvalidURL indicates a missing or malformed endpoint or base URL
	ErrInvalidURL = errors.New("invalid url")

	// ErrEmptyRevision indicates a missing pinned commit
	ErrEmptyRevision = errors.New("empty revision")

	// ErrEmptyRepository indicates a missing repository name or root path
	ErrEmptyRepository = errors.New("empty repository")

	// ErrInvalidPattern indicates an exclude pattern that does not compile
	ErrInvalidPattern = errors.New("invalid exclude pattern")

	// ErrInvalidFetchSettings indicates invalid concurrency, rate or timeout
	ErrInvalidFetchSettings = errors.New("invalid fetch settings")

	// ErrInvalidOutput indicates invalid output file settings
	ErrInvalidOutput = errors.New("invalid output settings")

	// ErrInvalidTelemetry indicates an unusable tracing endpoint
	ErrInvalidTelemetry = errors.New("invalid telemetry settings")
)

var jsIdentifier = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	if err := validateURL("sourcegraph.endpoint", cfg.Sourcegraph.Endpoint); err != nil {
		errs = append(errs, err)
	}

	if err := validateMonaco(&cfg.Monaco); err != nil {
		errs = append(errs, err)
	}

	if err := validateVSCode(&cfg.VSCode); err != nil {
		errs = append(errs, err)
	}

	if err := validateFetch(&cfg.Fetch); err != nil {
		errs = append(errs, err)
	}

	if err := validateOutput(&cfg.Output); err != nil {
		errs = append(errs, err)
	}

	// The exporter wants host:port, not a URL
	if ep := cfg.Telemetry.TracingEndpoint; ep != "" && (strings.Contains(ep, "://") || !strings.Contains(ep, ":")) {
		errs = append(errs, fmt.Errorf("%w: tracing_endpoint must be host:port, got '%s'", ErrInvalidTelemetry, ep))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateURL(field, raw string) error {
	if strings.TrimSpace(raw) == "" {
		return fmt.Errorf("%w: %s cannot be empty", ErrInvalidURL, field)
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: %s must be an absolute URL, got '%s'", ErrInvalidURL, field, raw)
	}
	return nil
}

func validateMonaco(cfg *MonacoConfig) error {
	var errs []error

	if strings.TrimSpace(cfg.Repository) == "" {
		errs = append(errs, fmt.Errorf("%w: monaco.repository cannot be empty", ErrEmptyRepository))
	}
	if strings.TrimSpace(cfg.Root) == "" {
		errs = append(errs, fmt.Errorf("%w: monaco.root cannot be empty", ErrEmptyRepository))
	}
	if strings.TrimSpace(cfg.Commit) == "" {
		errs = append(errs, fmt.Errorf("%w: monaco.commit cannot be empty", ErrEmptyRevision))
	}
	if err := validateURL("monaco.raw_base", cfg.RawBase); err != nil {
		errs = append(errs, err)
	}

	for _, pattern := range cfg.Exclude {
		if _, err := glob.Compile(pattern); err != nil {
			errs = append(errs, fmt.Errorf("%w: '%s': %v", ErrInvalidPattern, pattern, err))
		}
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateVSCode(cfg *VSCodeConfig) error {
	var errs []error

	if strings.TrimSpace(cfg.Commit) == "" {
		errs = append(errs, fmt.Errorf("%w: vscode.commit cannot be empty", ErrEmptyRevision))
	}
	if err := validateURL("vscode.raw_base", cfg.RawBase); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateFetch(cfg *FetchConfig) error {
	var errs []error

	if cfg.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("%w: concurrency must be at least 1, got %d", ErrInvalidFetchSettings, cfg.Concurrency))
	}

	// Zero means unlimited
	if cfg.RequestsPerSecond < 0 {
		errs = append(errs, fmt.Errorf("%w: requests_per_second cannot be negative, got %.2f", ErrInvalidFetchSettings, cfg.RequestsPerSecond))
	}

	// Zero means no timeout
	if cfg.Timeout < 0 {
		errs = append(errs, fmt.Errorf("%w: timeout cannot be negative, got %s", ErrInvalidFetchSettings, cfg.Timeout))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateOutput(cfg *OutputConfig) error {
	var errs []error

	if strings.TrimSpace(cfg.Dir) == "" {
		errs = append(errs, fmt.Errorf("%w: dir cannot be empty", ErrInvalidOutput))
	}
	if strings.TrimSpace(cfg.TableFile) == "" || strings.ContainsAny(cfg.TableFile, `/\`) {
		errs = append(errs, fmt.Errorf("%w: table_file must be a plain file name, got '%s'", ErrInvalidOutput, cfg.TableFile))
	}
	if strings.TrimSpace(cfg.ModuleFile) == "" || strings.ContainsAny(cfg.ModuleFile, `/\`) {
		errs = append(errs, fmt.Errorf("%w: module_file must be a plain file name, got '%s'", ErrInvalidOutput, cfg.ModuleFile))
	}
	if cfg.TableFile == cfg.ModuleFile {
		errs = append(errs, fmt.Errorf("%w: table_file and module_file must differ", ErrInvalidOutput))
	}
	if !jsIdentifier.MatchString(cfg.ModuleVar) {
		errs = append(errs, fmt.Errorf("%w: module_var must be a JavaScript identifier, got '%s'", ErrInvalidOutput, cfg.ModuleVar))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

// joinErrors combines multiple errors into a single error with all messages.
func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	if len(errs) == 1 {
		return errs[0]
	}

	var msgs []string
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}

	return fmt.Errorf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}
