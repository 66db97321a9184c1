package lower

import (
	"fmt"

	"github.com/flexgraphdb/flexql/compileerr"
	"github.com/flexgraphdb/flexql/internal/compctx"
	"github.com/flexgraphdb/flexql/internal/frag"
	"github.com/flexgraphdb/flexql/internal/rewrite"
	"github.com/flexgraphdb/flexql/ir"
)

// jsMaxSafeInteger is JS's Number.MAX_SAFE_INTEGER, the token §4.D.1's LIMIT
// matrix names for an unbounded count following a non-zero skip.
const jsMaxSafeInteger = "9007199254740991"

// lowerTransformList implements the FOR/FILTER/SORT/LIMIT/LET/RETURN block
// of §4.D.1.
func (lw *Lowerer) lowerTransformList(n *ir.TransformList, ctx *compctx.Context) (frag.Fragment, error) {
	b := ctx.Shared().Builder

	listFrag, danglingFilter, err := lw.lowerTransformListOperand(n.List, ctx)
	if err != nil {
		return frag.Fragment{}, err
	}

	itemCtx, err := ctx.IntroduceVariable(n.ItemVariable)
	if err != nil {
		return frag.Fragment{}, compileerr.New(compileerr.DoubleIntroduction, n, "%v", err)
	}
	itemName, err := itemCtx.GetVariable(n.ItemVariable)
	if err != nil {
		return frag.Fragment{}, err
	}

	var lines []frag.Fragment
	lines = append(lines, frag.Combine("FOR "+itemName+" IN "+listFrag.Text, listFrag))
	if danglingFilter {
		lines = append(lines, b.Text("FILTER "+itemName+" != null"))
	}

	if n.Filter != nil {
		simplified := ir.SimplifyBooleans(n.Filter)
		omit := false
		if cb, ok := simplified.(*ir.ConstBool); ok && cb.Value {
			omit = true
		}
		if !omit {
			filterFrag, err := lw.Lower(simplified, itemCtx)
			if err != nil {
				return frag.Fragment{}, err
			}
			lines = append(lines, frag.Combine("FILTER "+filterFrag.Text, filterFrag))
		}
	}

	if len(n.OrderBy) > 0 {
		clauses := make([]frag.Fragment, len(n.OrderBy))
		for i, oc := range n.OrderBy {
			exprFrag, err := lw.Lower(oc.Expr, itemCtx)
			if err != nil {
				return frag.Fragment{}, err
			}
			text := "(" + exprFrag.Text + ")"
			if oc.Desc {
				text += " DESC"
			}
			clauses[i] = frag.Combine(text, exprFrag)
		}
		joined := frag.Join(clauses, ", ")
		lines = append(lines, frag.Combine("SORT "+joined.Text, joined))
	}

	if limitLine, ok := limitClause(n.Skip, n.MaxCount); ok {
		lines = append(lines, b.Text(limitLine))
	}

	// Projection indirection (§4.D.1 step 7): defer document materialization
	// until after limit/sort by introducing a second item variable.
	innerExpr := n.Inner
	resultCtx := itemCtx
	var entityType string
	if ent, ok := n.List.(*ir.Entities); ok {
		entityType = ent.RootEntityType
	}
	if rewrite.ProjectionIndirectionEligible(n.List, n.Inner, n.ItemVariable, n.MaxCount, lw.Config.ProjectionIndirection[entityType]) {
		itemProj := ir.NewVariable(n.ItemVariable.Label + "_proj")
		projCtx, err := itemCtx.IntroduceVariable(itemProj)
		if err != nil {
			return frag.Fragment{}, compileerr.New(compileerr.DoubleIntroduction, n, "%v", err)
		}
		projName, err := projCtx.GetVariable(itemProj)
		if err != nil {
			return frag.Fragment{}, err
		}
		innerExpr = rewrite.SubstituteVariable(n.Inner, n.ItemVariable, itemProj)
		lines = append(lines, b.Text("LET "+projName+" = DOCUMENT("+itemName+"._id)"))
		resultCtx = projCtx
	}

	resultNode, lifted := rewrite.HoistAssignments(innerExpr)
	letCtx := resultCtx
	for _, va := range lifted {
		valueFrag, err := lw.Lower(va.ValueNode, letCtx)
		if err != nil {
			return frag.Fragment{}, err
		}
		nextCtx, err := letCtx.IntroduceVariable(va.Variable)
		if err != nil {
			return frag.Fragment{}, compileerr.New(compileerr.DoubleIntroduction, n, "%v", err)
		}
		name, err := nextCtx.GetVariable(va.Variable)
		if err != nil {
			return frag.Fragment{}, err
		}
		lines = append(lines, frag.Combine("LET "+name+" = "+valueFrag.Text, valueFrag))
		letCtx = nextCtx
	}

	resultFrag, err := lw.Lower(resultNode, letCtx)
	if err != nil {
		return frag.Fragment{}, err
	}
	lines = append(lines, frag.Combine("RETURN "+resultFrag.Text, resultFrag))

	body := frag.Indent(frag.Lines(lines))
	return frag.Combine("(\n"+body.Text+"\n)", body), nil
}

// lowerTransformListOperand lowers list, returning true when a dangling-edge
// filter must be appended (§4.D.1 step 3).
func (lw *Lowerer) lowerTransformListOperand(list ir.Node, ctx *compctx.Context) (frag.Fragment, bool, error) {
	if fe, ok := list.(*ir.FollowEdge); ok {
		f, err := lw.lowerFollowEdgeInline(fe, ctx)
		return f, true, err
	}
	f, err := lw.Lower(list, ctx)
	return f, false, err
}

// limitClause implements §4.D.1 step 6's LIMIT matrix.
func limitClause(skip, maxCount *int64) (string, bool) {
	hasSkip := skip != nil && *skip > 0
	switch {
	case maxCount != nil && !hasSkip:
		return fmt.Sprintf("LIMIT %d", *maxCount), true
	case maxCount != nil && hasSkip:
		return fmt.Sprintf("LIMIT %d, %d", *skip, *maxCount), true
	case maxCount == nil && hasSkip:
		return fmt.Sprintf("LIMIT %d, %s", *skip, jsMaxSafeInteger), true
	default:
		return "", false
	}
}

// lowerCount emits LENGTH(x) when x is index-optimizable (a Field or
// Entities), otherwise a COLLECT WITH COUNT subquery.
func (lw *Lowerer) lowerCount(n *ir.Count, ctx *compctx.Context) (frag.Fragment, error) {
	listFrag, err := lw.Lower(n.List, ctx)
	if err != nil {
		return frag.Fragment{}, err
	}
	switch n.List.(type) {
	case *ir.Field, *ir.Entities:
		return frag.Combine("LENGTH("+listFrag.Text+")", listFrag), nil
	default:
		i := ir.NewVariable("i")
		inner, err := ctx.IntroduceVariable(i)
		if err != nil {
			return frag.Fragment{}, compileerr.New(compileerr.DoubleIntroduction, n, "%v", err)
		}
		name, err := inner.GetVariable(i)
		if err != nil {
			return frag.Fragment{}, err
		}
		return frag.Combine(
			"FIRST(FOR "+name+" IN "+listFrag.Text+" COLLECT WITH COUNT INTO c RETURN c)",
			listFrag,
		), nil
	}
}
