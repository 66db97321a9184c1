package lower

import (
	"github.com/flexgraphdb/flexql/compileerr"
	"github.com/flexgraphdb/flexql/internal/compctx"
	"github.com/flexgraphdb/flexql/internal/frag"
	"github.com/flexgraphdb/flexql/ir"
)

// lowerVariable resolves a Variable reference through the context. The
// bound fragment name was already validated safe when it was allocated by
// frag.Builder.Variable, so it is emitted as-is.
func (lw *Lowerer) lowerVariable(n *ir.Variable, ctx *compctx.Context) (frag.Fragment, error) {
	name, err := ctx.GetVariable(n)
	if err != nil {
		return frag.Fragment{}, compileerr.New(compileerr.UnboundVariable, n, "%v", err)
	}
	return ctx.Shared().Builder.Text(name), nil
}

// lowerVariableAssignment emits FIRST(LET v = value RETURN result). The
// assignment-hoisting rewrite (§4.E) may eliminate this wrapper before
// lowering reaches this point — see rewrite.HoistAssignments, invoked by
// lowerTransformList and by the top-level compiler for the root node.
func (lw *Lowerer) lowerVariableAssignment(n *ir.VariableAssignment, ctx *compctx.Context) (frag.Fragment, error) {
	value, err := lw.Lower(n.ValueNode, ctx)
	if err != nil {
		return frag.Fragment{}, err
	}
	inner, err := ctx.IntroduceVariable(n.Variable)
	if err != nil {
		return frag.Fragment{}, compileerr.New(compileerr.DoubleIntroduction, n, "%v", err)
	}
	varName, err := inner.GetVariable(n.Variable)
	if err != nil {
		return frag.Fragment{}, err
	}
	result, err := lw.Lower(n.ResultNode, inner)
	if err != nil {
		return frag.Fragment{}, err
	}
	b := ctx.Shared().Builder
	return frag.Join([]frag.Fragment{
		b.Text("FIRST(LET " + varName + " = "), value, b.Text(" RETURN "), result, b.Text(")"),
	}, ""), nil
}

// lowerWithPreExecution registers each pre-exec entry in order, each
// compiled in its own pre-exec context (visible to later entries only
// through its query-result binding), then lowers the result node in the
// context extended with every binding.
func (lw *Lowerer) lowerWithPreExecution(n *ir.WithPreExecution, ctx *compctx.Context) (frag.Fragment, error) {
	cur := ctx
	for _, entry := range n.Entries {
		preCtx := cur.NewPreExecContext()
		queryFrag, err := lw.Lower(entry.Query, preCtx)
		if err != nil {
			return frag.Fragment{}, err
		}
		next, err := cur.AddPreExecuteQuery(queryFrag, entry.ResultVariable, entry.ResultValidator)
		if err != nil {
			return frag.Fragment{}, compileerr.New(compileerr.DoubleIntroduction, n, "%v", err)
		}
		cur = next
	}
	return lw.Lower(n.ResultNode, cur)
}
