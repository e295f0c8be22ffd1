package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
	"github.com/zclconf/go-cty/cty/gocty"
)

// functions available to manifest expressions.
var functions = map[string]function.Function{
	"upper":   stdlib.UpperFunc,
	"lower":   stdlib.LowerFunc,
	"join":    stdlib.JoinFunc,
	"format":  stdlib.FormatFunc,
	"replace": stdlib.ReplaceFunc,
}

// newEvalContext exposes `dir` (the manifest's directory) and `env` (the
// process environment) to expressions in one manifest file.
func newEvalContext(dir string, env map[string]string) (*hcl.EvalContext, error) {
	envVal := cty.MapValEmpty(cty.String)
	if len(env) > 0 {
		v, err := gocty.ToCtyValue(env, cty.Map(cty.String))
		if err != nil {
			return nil, fmt.Errorf("converting environment: %w", err)
		}
		envVal = v
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"dir": cty.StringVal(dir),
			"env": envVal,
		},
		Functions: functions,
	}, nil
}
