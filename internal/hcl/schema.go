package hcl

import "github.com/hashicorp/hcl/v2"

// fileRoot is decoded from the part of each file left over once `locals`
// blocks have been evaluated. Unknown blocks or attributes are errors.
type fileRoot struct {
	Atlas   []*atlasBlock   `hcl:"atlas,block"`
	Preview []*previewBlock `hcl:"preview,block"`
	Groups  []*groupBlock   `hcl:"group,block"`
}

type atlasBlock struct {
	TileSize *int   `hcl:"tile_size,optional"`
	Columns  *int   `hcl:"columns,optional"`
	Output   string `hcl:"output"`
	Strict   *bool  `hcl:"strict,optional"`

	DefRange hcl.Range `hcl:",def_range"`
}

type previewBlock struct {
	Path   string `hcl:"path"`
	Scale  *int   `hcl:"scale,optional"`
	Labels *bool  `hcl:"labels,optional"`

	DefRange hcl.Range `hcl:",def_range"`
}

type groupBlock struct {
	Name        string   `hcl:"name,label"`
	Sources     []string `hcl:"sources"`
	Expect      *int     `hcl:"expect,optional"`
	FilterEmpty *bool    `hcl:"filter_empty,optional"`
}

var localsSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{{Type: "locals"}},
}
