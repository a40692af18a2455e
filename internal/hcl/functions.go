package hcl

import (
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// pathFunc joins its string arguments into a single cleaned file path.
var pathFunc = function.New(&function.Spec{
	Description: "Joins path segments with the OS separator and cleans the result.",
	VarParam: &function.Parameter{
		Name: "segments",
		Type: cty.String,
	},
	Type: function.StaticReturnType(cty.String),
	Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, a.AsString())
		}
		return cty.StringVal(filepath.Join(parts...)), nil
	},
})

// functions is the set of functions available to manifest expressions.
func functions() map[string]function.Function {
	return map[string]function.Function{
		"path":   pathFunc,
		"format": stdlib.FormatFunc,
		"join":   stdlib.JoinFunc,
		"concat": stdlib.ConcatFunc,
		"upper":  stdlib.UpperFunc,
		"lower":  stdlib.LowerFunc,
	}
}

// newEvalContext builds the evaluation context for a manifest rooted at root.
// locals may be nil before the `locals` blocks have been evaluated.
func newEvalContext(root string, locals map[string]cty.Value) *hcl.EvalContext {
	vars := map[string]cty.Value{
		"root": cty.StringVal(root),
	}
	if locals != nil {
		vars["local"] = cty.ObjectVal(locals)
	}
	return &hcl.EvalContext{
		Variables: vars,
		Functions: functions(),
	}
}
