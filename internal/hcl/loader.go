package hcl

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/tileatlas/internal/config"
	"github.com/specialistvlad/tileatlas/internal/ctxlog"
	"github.com/specialistvlad/tileatlas/internal/fsutil"
	"github.com/zclconf/go-cty/cty"
)

// defaultManifest lists the groups of the stock tileset, in slot order.
//
//go:embed default.hcl
var defaultManifest []byte

// DefaultManifestName is the file name diagnostics report for the embedded
// manifest.
const DefaultManifestName = "default.hcl"

var (
	ErrMultipleAtlasBlocks   = errors.New("only one atlas block is allowed")
	ErrMissingAtlasBlock     = errors.New("an atlas block is required")
	ErrMultiplePreviewBlocks = errors.New("only one preview block is allowed")
	ErrDuplicateLocal        = errors.New("local value declared more than once")
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct {
	// Root is the directory manifest paths resolve against and the value of
	// the `root` variable. When empty, user manifests use their own
	// directory and the embedded manifest uses ".".
	Root string
}

// NewLoader creates a new HCL manifest loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// Load reads every .hcl file found under paths and merges them into one
// model. With no paths it loads the embedded default manifest.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	parser := hclparse.NewParser()
	var files []*hcl.File
	root := l.Root

	if len(paths) == 0 {
		f, diags := parser.ParseHCL(defaultManifest, DefaultManifestName)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse embedded manifest: %w", diags)
		}
		files = append(files, f)
		if root == "" {
			root = "."
		}
	} else {
		if root == "" {
			base, err := fsutil.BaseDir(paths[0])
			if err != nil {
				return nil, fmt.Errorf("error accessing path %s: %w", paths[0], err)
			}
			root = base
		}
		for _, p := range paths {
			found, err := fsutil.FindFilesByExtension(p, ".hcl")
			if err != nil {
				return nil, fmt.Errorf("error accessing path %s: %w", p, err)
			}
			for _, name := range found {
				f, diags := parser.ParseHCLFile(name)
				if diags.HasErrors() {
					return nil, fmt.Errorf("failed to parse HCL file %s: %w", name, diags)
				}
				files = append(files, f)
			}
		}
	}
	logger.Debug("Manifest files parsed.", "count", len(files), "root", root)

	bodies, locals, err := l.evalLocals(ctx, root, files)
	if err != nil {
		return nil, err
	}

	model, err := l.decode(ctx, newEvalContext(root, locals), bodies)
	if err != nil {
		return nil, err
	}
	l.resolvePaths(root, model)

	if err := model.Validate(); err != nil {
		return nil, fmt.Errorf("invalid manifest: %w", err)
	}
	logger.Debug("HCL loading complete.", "groups", len(model.Groups), "output", model.Output)
	return model, nil
}

// evalLocals evaluates every `locals` block against the base context and
// returns the remaining body of each file. Locals may reference `root` and
// functions but not each other.
func (l *Loader) evalLocals(ctx context.Context, root string, files []*hcl.File) ([]hcl.Body, map[string]cty.Value, error) {
	logger := ctxlog.FromContext(ctx)
	base := newEvalContext(root, nil)
	locals := make(map[string]cty.Value)
	bodies := make([]hcl.Body, 0, len(files))

	for _, f := range files {
		content, remain, diags := f.Body.PartialContent(localsSchema)
		if diags.HasErrors() {
			return nil, nil, fmt.Errorf("failed to read locals: %w", diags)
		}
		for _, block := range content.Blocks {
			attrs, diags := block.Body.JustAttributes()
			if diags.HasErrors() {
				return nil, nil, fmt.Errorf("failed to read locals: %w", diags)
			}
			for name, attr := range attrs {
				if _, dup := locals[name]; dup {
					return nil, nil, fmt.Errorf("%w: %q at %s", ErrDuplicateLocal, name, attr.NameRange)
				}
				val, diags := attr.Expr.Value(base)
				if diags.HasErrors() {
					return nil, nil, fmt.Errorf("failed to evaluate local %q: %w", name, diags)
				}
				locals[name] = val
			}
		}
		bodies = append(bodies, remain)
	}
	logger.Debug("Locals evaluated.", "count", len(locals))
	return bodies, locals, nil
}

// decode translates the non-locals content of every file into the model,
// keeping group declaration order.
func (l *Loader) decode(ctx context.Context, evalCtx *hcl.EvalContext, bodies []hcl.Body) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	model := config.New()
	var atlas *atlasBlock
	var preview *previewBlock

	for _, body := range bodies {
		var root fileRoot
		if diags := gohcl.DecodeBody(body, evalCtx, &root); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode manifest: %w", diags)
		}

		for _, a := range root.Atlas {
			if atlas != nil {
				return nil, fmt.Errorf("%w: %s (first declared at %s)", ErrMultipleAtlasBlocks, a.DefRange, atlas.DefRange)
			}
			atlas = a
		}
		for _, p := range root.Preview {
			if preview != nil {
				return nil, fmt.Errorf("%w: %s (first declared at %s)", ErrMultiplePreviewBlocks, p.DefRange, preview.DefRange)
			}
			preview = p
		}
		for _, g := range root.Groups {
			model.Groups = append(model.Groups, translateGroup(g))
			logger.Debug("Group declared.", "group", g.Name, "sources", len(g.Sources))
		}
	}

	if atlas == nil {
		return nil, ErrMissingAtlasBlock
	}
	model.Output = atlas.Output
	if atlas.TileSize != nil {
		model.TileSize = *atlas.TileSize
	}
	if atlas.Columns != nil {
		model.Columns = *atlas.Columns
	}
	if atlas.Strict != nil {
		model.Strict = *atlas.Strict
	}
	if preview != nil {
		model.Preview = translatePreview(preview)
	}
	return model, nil
}

func translateGroup(g *groupBlock) *config.Group {
	out := &config.Group{
		Name:    g.Name,
		Sources: append([]string(nil), g.Sources...),
	}
	if g.Expect != nil {
		out.Expect = *g.Expect
	}
	if g.FilterEmpty != nil {
		out.FilterEmpty = *g.FilterEmpty
	}
	return out
}

func translatePreview(p *previewBlock) *config.Preview {
	out := &config.Preview{Path: p.Path, Scale: config.DefaultPreviewScale}
	if p.Scale != nil {
		out.Scale = *p.Scale
	}
	if p.Labels != nil {
		out.Labels = *p.Labels
	}
	return out
}

// resolvePaths anchors every relative path in the model at root.
func (l *Loader) resolvePaths(root string, m *config.Model) {
	m.Output = fsutil.Resolve(root, m.Output)
	if m.Preview != nil {
		m.Preview.Path = fsutil.Resolve(root, m.Preview.Path)
	}
	for _, g := range m.Groups {
		for i, s := range g.Sources {
			g.Sources[i] = fsutil.Resolve(root, s)
		}
	}
}
