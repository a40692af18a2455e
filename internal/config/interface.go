package config

import "context"

// Loader is the interface for a format-specific manifest loader.
type Loader interface {
	// Load reads the manifest found at the given paths and translates it
	// into the format-agnostic model. Groups keep their declared order.
	Load(ctx context.Context, paths ...string) (*Model, error)
}
