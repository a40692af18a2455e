package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// ManifestPath is a .hcl file or a directory of them. Empty selects the
	// embedded default manifest.
	ManifestPath string
	// Root is the directory manifest paths resolve against. Empty means the
	// manifest's own directory, or "." for the embedded manifest.
	Root string
	// Output overrides the manifest's atlas output path when set.
	Output string
	// Strict forces strict size validation even if the manifest disables it.
	Strict bool

	LogFormat string
	LogLevel  string
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	switch cfg.LogFormat {
	case "", "text", "json":
	default:
		return nil, errors.New("LogFormat must be 'text' or 'json'")
	}
	switch cfg.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return nil, errors.New("LogLevel must be one of 'debug', 'info', 'warn', 'error'")
	}
	return &cfg, nil
}
