package config

import "time"

// Config represents the complete fileicons build configuration.
// It can be loaded from .fileicons/config.yml with environment variable overrides.
// The defaults pin every remote revision, so a bare build is reproducible.
type Config struct {
	Sourcegraph SourcegraphConfig `yaml:"sourcegraph" mapstructure:"sourcegraph"`
	Monaco      MonacoConfig      `yaml:"monaco" mapstructure:"monaco"`
	VSCode      VSCodeConfig      `yaml:"vscode" mapstructure:"vscode"`
	Fetch       FetchConfig       `yaml:"fetch" mapstructure:"fetch"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
	Telemetry   TelemetryConfig   `yaml:"telemetry" mapstructure:"telemetry"`
}

// SourcegraphConfig configures the directory listing service.
type SourcegraphConfig struct {
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint"` // GraphQL endpoint
	Token    string `yaml:"token" mapstructure:"token"`       // optional access token
}

// MonacoConfig pins the repository whose language contributions are read.
type MonacoConfig struct {
	Repository string   `yaml:"repository" mapstructure:"repository"` // Sourcegraph repository name
	Commit     string   `yaml:"commit" mapstructure:"commit"`         // pinned revision
	Root       string   `yaml:"root" mapstructure:"root"`             // directory whose children are languages
	RawBase    string   `yaml:"raw_base" mapstructure:"raw_base"`     // raw file host for the repository
	Exclude    []string `yaml:"exclude" mapstructure:"exclude"`       // extra glob patterns for directory names to skip
}

// VSCodeConfig pins the repository the icon theme is read from.
type VSCodeConfig struct {
	Commit  string `yaml:"commit" mapstructure:"commit"`
	RawBase string `yaml:"raw_base" mapstructure:"raw_base"`
}

// FetchConfig controls remote requests.
type FetchConfig struct {
	Concurrency       int           `yaml:"concurrency" mapstructure:"concurrency"`                 // directories processed at once
	RequestsPerSecond float64       `yaml:"requests_per_second" mapstructure:"requests_per_second"` // 0 disables limiting
	Timeout           time.Duration `yaml:"timeout" mapstructure:"timeout"`                         // per request; 0 means none
}

// MarshalYAML writes the timeout as a duration string ("30s") rather than
// nanoseconds.
func (f FetchConfig) MarshalYAML() (interface{}, error) {
	return struct {
		Concurrency       int     `yaml:"concurrency"`
		RequestsPerSecond float64 `yaml:"requests_per_second"`
		Timeout           string  `yaml:"timeout"`
	}{f.Concurrency, f.RequestsPerSecond, f.Timeout.String()}, nil
}

// OutputConfig names the generated files.
type OutputConfig struct {
	Dir        string `yaml:"dir" mapstructure:"dir"`
	TableFile  string `yaml:"table_file" mapstructure:"table_file"`
	ModuleFile string `yaml:"module_file" mapstructure:"module_file"`
	ModuleVar  string `yaml:"module_var" mapstructure:"module_var"`
}

// TelemetryConfig controls build metrics and trace export. Both are off by default.
type TelemetryConfig struct {
	MetricsFile     string `yaml:"metrics_file" mapstructure:"metrics_file"`         // Prometheus textfile written after a build
	TracingEndpoint string `yaml:"tracing_endpoint" mapstructure:"tracing_endpoint"` // OTLP gRPC collector host:port
	TracingInsecure bool   `yaml:"tracing_insecure" mapstructure:"tracing_insecure"`
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		Sourcegraph: SourcegraphConfig{
			Endpoint: "https://sourcegraph.com/.api/graphql",
		},
		Monaco: MonacoConfig{
			Repository: "github.com/microsoft/monaco-editor",
			Commit:     "920affc75f7f5d505eaaa5299d4323e4a90d5be1",
			Root:       "src/basic-languages",
			RawBase:    "https://raw.githubusercontent.com/microsoft/monaco-editor",
			Exclude:    []string{},
		},
		VSCode: VSCodeConfig{
			Commit:  "8a38481180ae939c53ceae3aab12a743b2a36493",
			RawBase: "https://raw.githubusercontent.com/microsoft/vscode",
		},
		Fetch: FetchConfig{
			Concurrency:       1,
			RequestsPerSecond: 10,
			Timeout:           0,
		},
		Output: OutputConfig{
			Dir:        "build",
			TableFile:  "fileIdLookMap.json",
			ModuleFile: "index.js",
			ModuleVar:  "fileIconInfo",
		},
	}
}
