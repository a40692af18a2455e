package config

import (
	"errors"
	"fmt"
)

const (
	// DefaultTileSize is the edge length, in pixels, of every tile.
	DefaultTileSize = 16
	// DefaultColumns is the number of tile columns in the atlas.
	DefaultColumns = 16
	// DefaultPreviewScale is the magnification used when a preview block
	// leaves scale unset.
	DefaultPreviewScale = 4
)

var (
	ErrNoGroups        = errors.New("manifest declares no groups")
	ErrInvalidTileSize = errors.New("tile size must be positive")
	ErrInvalidColumns  = errors.New("column count must be positive")
	ErrNoOutput        = errors.New("output path is required")
	ErrDuplicateGroup  = errors.New("group name declared more than once")
	ErrNoSources       = errors.New("group has no sources")
	ErrInvalidExpect   = errors.New("expected tile count must not be negative")
	ErrInvalidScale    = errors.New("preview scale must be positive")
)

// Model is the unified, format-agnostic representation of an atlas manifest.
type Model struct {
	TileSize int
	Columns  int
	Output   string

	// Strict turns a source sheet whose size is not a whole number of tiles,
	// or an unfiltered group whose tile count differs from Expect, into a
	// fatal error. When false both are logged and the sheet is truncated.
	Strict bool

	Preview *Preview
	Groups  []*Group
}

// Group is one named contiguous range of atlas slots.
type Group struct {
	Name    string
	Sources []string

	// Expect is the declared tile count. Zero means the count is only known
	// after extraction (and filtering).
	Expect int

	// FilterEmpty drops fully transparent tiles before the group's tiles are
	// appended to the sequence.
	FilterEmpty bool
}

// Variable reports whether the group's slot count is only known at build
// time.
func (g *Group) Variable() bool {
	return g.Expect == 0 || g.FilterEmpty
}

// Preview configures the optional human-oriented preview image.
type Preview struct {
	Path   string
	Scale  int
	Labels bool
}

// New returns a Model with the default geometry and no groups.
func New() *Model {
	return &Model{
		TileSize: DefaultTileSize,
		Columns:  DefaultColumns,
	}
}

// Validate checks the model for errors that would make an atlas impossible
// to build. Errors wrap one of the sentinel values of this package.
func (m *Model) Validate() error {
	if m.TileSize <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidTileSize, m.TileSize)
	}
	if m.Columns <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidColumns, m.Columns)
	}
	if m.Output == "" {
		return ErrNoOutput
	}
	if len(m.Groups) == 0 {
		return ErrNoGroups
	}

	seen := make(map[string]struct{}, len(m.Groups))
	for _, g := range m.Groups {
		if _, dup := seen[g.Name]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateGroup, g.Name)
		}
		seen[g.Name] = struct{}{}

		if len(g.Sources) == 0 {
			return fmt.Errorf("%w: %q", ErrNoSources, g.Name)
		}
		if g.Expect < 0 {
			return fmt.Errorf("%w: group %q declares %d", ErrInvalidExpect, g.Name, g.Expect)
		}
	}

	if m.Preview != nil && m.Preview.Scale <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidScale, m.Preview.Scale)
	}
	return nil
}
