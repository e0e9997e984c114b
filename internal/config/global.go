// Package config provides configuration loading for the fileicons build.
//
// It supports two configuration scopes:
//
// 1. Global Configuration (~/.fileicons/config.yml)
//   - Machine-wide credentials
//   - Loaded via LoadGlobalConfig()
//
// 2. Project Configuration (.fileicons/config.yml)
//   - Pinned repositories and revisions, fetch settings, output names
//   - Loaded via Load()
//
// Configuration Hierarchy (highest to lowest priority):
//  1. Environment variables (FILEICONS_*)
//  2. Project config (.fileicons/config.yml)
//  3. Global config (~/.fileicons/config.yml), credentials only
//  4. Built-in defaults
//
// Environment Variable Convention:
//   - Prefix: FILEICONS_
//   - Nested fields: Use underscores (FILEICONS_SOURCEGRAPH_TOKEN)
//   - Automatic mapping via Viper's SetEnvKeyReplacer
package config

// GlobalConfig holds machine-wide settings.
// Loaded from ~/.fileicons/config.yml (not project .fileicons/config.yml).
type GlobalConfig struct {
	Sourcegraph GlobalSourcegraphConfig `yaml:"sourcegraph" mapstructure:"sourcegraph"`
}

// GlobalSourcegraphConfig holds Sourcegraph credentials.
type GlobalSourcegraphConfig struct {
	Token string `yaml:"token" mapstructure:"token"` // access token used when the project sets none
}

// ApplyGlobal fills settings the project config left empty from g.
func (c *Config) ApplyGlobal(g *GlobalConfig) {
	if g == nil {
		return
	}
	if c.Sourcegraph.Token == "" {
		c.Sourcegraph.Token = g.Sourcegraph.Token
	}
}
