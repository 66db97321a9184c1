package lower

import (
	"github.com/flexgraphdb/flexql/compileerr"
	"github.com/flexgraphdb/flexql/internal/compctx"
	"github.com/flexgraphdb/flexql/internal/frag"
	"github.com/flexgraphdb/flexql/ir"
)

// lowerObject emits { key: value, ... }; keys that are safe identifiers are
// unquoted, unsafe keys are bound as values. An empty object emits {}.
func (lw *Lowerer) lowerObject(n *ir.Object, ctx *compctx.Context) (frag.Fragment, error) {
	b := ctx.Shared().Builder
	if len(n.Entries) == 0 {
		return b.Text("{}"), nil
	}
	parts := make([]frag.Fragment, len(n.Entries))
	for i, e := range n.Entries {
		value, err := lw.Lower(e.Value, ctx)
		if err != nil {
			return frag.Fragment{}, err
		}
		var key frag.Fragment
		if frag.IsSafeIdentifier(e.Name) {
			key, _ = b.Identifier(e.Name)
		} else {
			key = b.Value(e.Name)
		}
		parts[i] = frag.Join([]frag.Fragment{key, b.Text(": "), value}, "")
	}
	return frag.Join([]frag.Fragment{b.Text("{ "), frag.Join(parts, ", "), b.Text(" }")}, ""), nil
}

// lowerList emits [...]; an empty list emits [].
func (lw *Lowerer) lowerList(n *ir.List, ctx *compctx.Context) (frag.Fragment, error) {
	b := ctx.Shared().Builder
	if len(n.Items) == 0 {
		return b.Text("[]"), nil
	}
	items, err := lw.lowerAll(n.Items, ctx)
	if err != nil {
		return frag.Fragment{}, err
	}
	return frag.Join([]frag.Fragment{b.Text("["), frag.Join(items, ", "), b.Text("]")}, ""), nil
}

// lowerMergeObjects emits MERGE(a, b, ...): a right-biased overwrite.
func (lw *Lowerer) lowerMergeObjects(n *ir.MergeObjects, ctx *compctx.Context) (frag.Fragment, error) {
	return lw.lowerVariadicCall(n, "MERGE", n.Items, ctx)
}

// lowerConcatLists emits UNION(a, b, ...): append without dedup.
func (lw *Lowerer) lowerConcatLists(n *ir.ConcatLists, ctx *compctx.Context) (frag.Fragment, error) {
	return lw.lowerVariadicCall(n, "UNION", n.Items, ctx)
}

func (lw *Lowerer) lowerFirstOfList(n *ir.FirstOfList, ctx *compctx.Context) (frag.Fragment, error) {
	list, err := lw.Lower(n.List, ctx)
	if err != nil {
		return frag.Fragment{}, err
	}
	b := ctx.Shared().Builder
	return frag.Join([]frag.Fragment{b.Text("FIRST("), list, b.Text(")")}, ""), nil
}

// lowerSafeList lowers Conditional(TypeCheck(x, LIST), x, []) per §4.D.
func (lw *Lowerer) lowerSafeList(n *ir.SafeList, ctx *compctx.Context) (frag.Fragment, error) {
	typeCheck, err := ir.NewTypeCheck(n.Value, ir.TypeList)
	if err != nil {
		return frag.Fragment{}, compileerr.New(compileerr.MalformedIR, n, "%v", err)
	}
	empty, err := ir.NewList(nil)
	if err != nil {
		return frag.Fragment{}, compileerr.New(compileerr.MalformedIR, n, "%v", err)
	}
	cond, err := ir.NewConditional(typeCheck, n.Value, empty)
	if err != nil {
		return frag.Fragment{}, compileerr.New(compileerr.MalformedIR, n, "%v", err)
	}
	return lw.Lower(cond, ctx)
}

func (lw *Lowerer) lowerVariadicCall(node ir.Node, fn string, items []ir.Node, ctx *compctx.Context) (frag.Fragment, error) {
	frags, err := lw.lowerAll(items, ctx)
	if err != nil {
		return frag.Fragment{}, err
	}
	b := ctx.Shared().Builder
	return frag.Join([]frag.Fragment{b.Text(fn + "("), frag.Join(frags, ", "), b.Text(")")}, ""), nil
}

func (lw *Lowerer) lowerAll(items []ir.Node, ctx *compctx.Context) ([]frag.Fragment, error) {
	out := make([]frag.Fragment, len(items))
	for i, it := range items {
		f, err := lw.Lower(it, ctx)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}
