package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → environment variables (env wins)
	Load() (*Config, error)
}

type loader struct {
	rootDir    string
	configFile string
}

// NewLoader creates a new configuration loader for the given root directory.
func NewLoader(rootDir string) Loader {
	return &loader{
		rootDir: rootDir,
	}
}

// NewFileLoader creates a loader that reads an explicit config file.
// Unlike NewLoader, a missing file is an error.
func NewFileLoader(configFile string) Loader {
	return &loader{
		configFile: configFile,
	}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (FILEICONS_*)
// 2. Config file (.fileicons/config.yml or .fileicons/config.yaml)
// 3. Default values
func (l *loader) Load() (*Config, error) {
	v := viper.New()

	if l.configFile != "" {
		v.SetConfigFile(l.configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(filepath.Join(l.rootDir, ".fileicons"))
	}

	// Replace . with _ in env var names (e.g., FILEICONS_FETCH_CONCURRENCY)
	v.SetEnvPrefix("FILEICONS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("sourcegraph.endpoint")
	v.BindEnv("sourcegraph.token")

	v.BindEnv("monaco.repository")
	v.BindEnv("monaco.commit")
	v.BindEnv("monaco.root")
	v.BindEnv("monaco.raw_base")

	v.BindEnv("vscode.commit")
	v.BindEnv("vscode.raw_base")

	v.BindEnv("fetch.concurrency")
	v.BindEnv("fetch.requests_per_second")
	v.BindEnv("fetch.timeout")

	v.BindEnv("output.dir")

	v.BindEnv("telemetry.metrics_file")
	v.BindEnv("telemetry.tracing_endpoint")
	v.BindEnv("telemetry.tracing_insecure")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Config file not found is acceptable - we'll use defaults + env vars
		var notFound viper.ConfigFileNotFoundError
		if l.configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setDefaults configures viper with default values.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("sourcegraph.endpoint", defaults.Sourcegraph.Endpoint)
	v.SetDefault("sourcegraph.token", defaults.Sourcegraph.Token)

	v.SetDefault("monaco.repository", defaults.Monaco.Repository)
	v.SetDefault("monaco.commit", defaults.Monaco.Commit)
	v.SetDefault("monaco.root", defaults.Monaco.Root)
	v.SetDefault("monaco.raw_base", defaults.Monaco.RawBase)
	v.SetDefault("monaco.exclude", defaults.Monaco.Exclude)

	v.SetDefault("vscode.commit", defaults.VSCode.Commit)
	v.SetDefault("vscode.raw_base", defaults.VSCode.RawBase)

	v.SetDefault("fetch.concurrency", defaults.Fetch.Concurrency)
	v.SetDefault("fetch.requests_per_second", defaults.Fetch.RequestsPerSecond)
	v.SetDefault("fetch.timeout", defaults.Fetch.Timeout)

	v.SetDefault("output.dir", defaults.Output.Dir)
	v.SetDefault("output.table_file", defaults.Output.TableFile)
	v.SetDefault("output.module_file", defaults.Output.ModuleFile)
	v.SetDefault("output.module_var", defaults.Output.ModuleVar)

	v.SetDefault("telemetry.metrics_file", defaults.Telemetry.MetricsFile)
	v.SetDefault("telemetry.tracing_endpoint", defaults.Telemetry.TracingEndpoint)
	v.SetDefault("telemetry.tracing_insecure", defaults.Telemetry.TracingInsecure)
}

// LoadConfig is a convenience function that creates a loader and loads config.
// It uses the current working directory as the root.
func LoadConfig() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return NewLoader(wd).Load()
}

// LoadConfigFromDir loads configuration from a specific directory.
func LoadConfigFromDir(rootDir string) (*Config, error) {
	return NewLoader(rootDir).Load()
}
