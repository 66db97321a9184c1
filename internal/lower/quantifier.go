package lower

import (
	"strings"

	"github.com/flexgraphdb/flexql/compileerr"
	"github.com/flexgraphdb/flexql/internal/compctx"
	"github.com/flexgraphdb/flexql/internal/frag"
	"github.com/flexgraphdb/flexql/internal/rewrite"
	"github.com/flexgraphdb/flexql/ir"
	"github.com/flexgraphdb/flexql/model"
)

// lowerQuantifierFilter implements §4.D.3: the some-only array-expansion
// fast path, then the canonical every/some/none reduction.
func (lw *Lowerer) lowerQuantifierFilter(n *ir.QuantifierFilter, ctx *compctx.Context) (frag.Fragment, error) {
	if n.Quantifier == ir.QuantifierSome {
		if expansion, ok := rewrite.AnalyzeArrayExpansion(n.List, n.ItemVariable, n.Condition); ok {
			return lw.lowerArrayExpansion(expansion, ctx)
		}
	}

	switch n.Quantifier {
	case ir.QuantifierEvery:
		negated, err := ir.NewUnaryOp(ir.OpNot, n.Condition)
		if err != nil {
			return frag.Fragment{}, compileerr.New(compileerr.MalformedIR, n, "%v", err)
		}
		none, err := ir.NewQuantifierFilter(ir.QuantifierNone, n.List, n.ItemVariable, negated)
		if err != nil {
			return frag.Fragment{}, compileerr.New(compileerr.MalformedIR, n, "%v", err)
		}
		return lw.Lower(none, ctx)

	case ir.QuantifierSome, ir.QuantifierNone:
		return lw.lowerCountReduction(n, ctx)

	default:
		return frag.Fragment{}, compileerr.New(compileerr.MalformedIR, n, "lower: unknown quantifier %v", n.Quantifier)
	}
}

func (lw *Lowerer) lowerArrayExpansion(expansion rewrite.ArrayExpansion, ctx *compctx.Context) (frag.Fragment, error) {
	listFrag, err := lw.Lower(expansion.List, ctx)
	if err != nil {
		return frag.Fragment{}, err
	}
	valueFrag, err := lw.Lower(expansion.Value, ctx)
	if err != nil {
		return frag.Fragment{}, err
	}
	path := strings.Join(expansion.FieldPath, ".")
	return frag.Combine(valueFrag.Text+" IN "+listFrag.Text+"[*]."+path, valueFrag, listFrag), nil
}

// lowerCountReduction rewrites some/none to a COUNT(filtered) comparison:
// some -> count > 0, none -> count == 0.
func (lw *Lowerer) lowerCountReduction(n *ir.QuantifierFilter, ctx *compctx.Context) (frag.Fragment, error) {
	passthrough, err := ir.NewTransformList(n.List, n.ItemVariable, n.Condition, nil, nil, nil, n.ItemVariable)
	if err != nil {
		return frag.Fragment{}, compileerr.New(compileerr.MalformedIR, n, "%v", err)
	}
	count, err := ir.NewCount(passthrough)
	if err != nil {
		return frag.Fragment{}, compileerr.New(compileerr.MalformedIR, n, "%v", err)
	}
	op := ir.OpGreaterThan
	if n.Quantifier == ir.QuantifierNone {
		op = ir.OpEqual
	}
	cmp, err := ir.NewBinaryOp(op, count, ir.NewConstInt(0))
	if err != nil {
		return frag.Fragment{}, compileerr.New(compileerr.MalformedIR, n, "%v", err)
	}
	return lw.Lower(cmp, ctx)
}

// lowerQuickSearch emits (FOR v IN <view> SEARCH <filter> RETURN v), using
// the flex-search view name for rootEntityType's collection.
func (lw *Lowerer) lowerQuickSearch(n *ir.QuickSearch, ctx *compctx.Context) (frag.Fragment, error) {
	info, err := lw.entityInfo(n.RootEntityType, n)
	if err != nil {
		return frag.Fragment{}, err
	}
	view := model.SearchViewName(info.Collection)
	b := ctx.Shared().Builder
	viewFrag, err := b.Collection(view)
	if err != nil {
		return frag.Fragment{}, compileerr.New(compileerr.InvalidIdentifier, n, "%v", err)
	}
	ctx.Shared().TrackRead(view)

	inner, err := ctx.IntroduceVariable(n.ItemVariable)
	if err != nil {
		return frag.Fragment{}, compileerr.New(compileerr.DoubleIntroduction, n, "%v", err)
	}
	name, err := inner.GetVariable(n.ItemVariable)
	if err != nil {
		return frag.Fragment{}, err
	}
	filterFrag, err := lw.Lower(n.Filter, inner)
	if err != nil {
		return frag.Fragment{}, err
	}
	return frag.Combine(
		"(FOR "+name+" IN "+viewFrag.Text+" SEARCH "+filterFrag.Text+" RETURN "+name+")",
		viewFrag, filterFrag,
	), nil
}
