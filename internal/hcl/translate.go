package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/assetgraph/internal/config"
	"github.com/vk/assetgraph/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

func origin(body hcl.Body) string {
	if body == nil {
		return ""
	}
	r := body.MissingItemRange()
	return fmt.Sprintf("%s:%d", r.Filename, r.Start.Line)
}

func translateSource(s *sourceBlock) *config.Source {
	return &config.Source{Name: s.Name, Path: s.Path, Origin: origin(s.Body)}
}

// translateArtifact converts the HCL-specific artifact schema into the agnostic model.
func translateArtifact(ctx context.Context, a *artifactBlock, evalCtx *hcl.EvalContext) (*config.Artifact, error) {
	logger := ctxlog.FromContext(ctx).With("artifact", a.Name)
	logger.Debug("Translating HCL artifact to internal config model.", "inputs", len(a.Inputs))

	out := &config.Artifact{
		Name:   a.Name,
		Path:   a.Path,
		Action: a.Action,
		Origin: origin(a.Body),
	}
	for _, in := range a.Inputs {
		ref, err := exprToRef(in.From, evalCtx)
		if err != nil {
			return nil, fmt.Errorf("artifact '%s', input '%s': %w", a.Name, in.Tag, err)
		}
		out.Inputs = append(out.Inputs, &config.Input{Tag: in.Tag, From: ref})
	}

	command, err := decodeCommand(a.Command, evalCtx)
	if err != nil {
		return nil, fmt.Errorf("artifact '%s', command: %w", a.Name, err)
	}
	out.Command = command
	return out, nil
}

func translateTarget(t *targetBlock, evalCtx *hcl.EvalContext) (*config.Target, error) {
	exprs, diags := hcl.ExprList(t.Build)
	if diags.HasErrors() {
		return nil, fmt.Errorf("target '%s', build: %w", t.Name, diags)
	}
	out := &config.Target{Name: t.Name, Origin: origin(t.Body)}
	for _, expr := range exprs {
		ref, err := exprToRef(expr, evalCtx)
		if err != nil {
			return nil, fmt.Errorf("target '%s', build: %w", t.Name, err)
		}
		out.Build = append(out.Build, ref)
	}
	return out, nil
}

// exprToRef accepts either a bare traversal (artifact.x) or a string that
// spells one ("artifact.x").
func exprToRef(expr hcl.Expression, evalCtx *hcl.EvalContext) (config.Ref, error) {
	if traversal, diags := hcl.AbsTraversalForExpr(expr); !diags.HasErrors() {
		return traversalToRef(traversal)
	}

	val, diags := expr.Value(evalCtx)
	if diags.HasErrors() {
		return config.Ref{}, diags
	}
	if val.IsNull() || !val.IsKnown() || val.Type() != cty.String {
		return config.Ref{}, fmt.Errorf("%s: expected a reference such as artifact.<name>", expr.Range())
	}
	return config.ParseRef(val.AsString())
}

func traversalToRef(traversal hcl.Traversal) (config.Ref, error) {
	if len(traversal) != 2 {
		return config.Ref{}, fmt.Errorf("%s: expected a reference such as artifact.<name>", traversal.SourceRange())
	}
	attr, ok := traversal[1].(hcl.TraverseAttr)
	if !ok {
		return config.Ref{}, fmt.Errorf("%s: expected a reference such as artifact.<name>", traversal.SourceRange())
	}
	return config.ParseRef(traversal.RootName() + "." + attr.Name)
}

// decodeCommand evaluates an optional list expression into an argument vector.
// Numbers and bools are converted to their string form.
func decodeCommand(expr hcl.Expression, evalCtx *hcl.EvalContext) ([]string, error) {
	if !isExprDefined(expr) {
		return nil, nil
	}
	val, diags := expr.Value(evalCtx)
	if diags.HasErrors() {
		return nil, diags
	}
	if val.IsNull() {
		return nil, nil
	}
	listVal, err := convert.Convert(val, cty.List(cty.String))
	if err != nil {
		return nil, fmt.Errorf("%s: must be a list of strings: %w", expr.Range(), err)
	}
	var command []string
	if err := gocty.FromCtyValue(listVal, &command); err != nil {
		return nil, fmt.Errorf("%s: %w", expr.Range(), err)
	}
	return command, nil
}

// isExprDefined checks if an HCL expression was actually present in the source
// code. The decoder populates omitted optional attributes with a zero-width
// placeholder expression, so a nil check alone is insufficient.
func isExprDefined(expr hcl.Expression) bool {
	if expr == nil {
		return false
	}
	r := expr.Range()
	return r.End.Byte > r.Start.Byte
}
