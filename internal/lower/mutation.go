package lower

import (
	"github.com/flexgraphdb/flexql/compileerr"
	"github.com/flexgraphdb/flexql/internal/compctx"
	"github.com/flexgraphdb/flexql/internal/frag"
	"github.com/flexgraphdb/flexql/ir"
)

// collectionFragForWrite resolves rootEntityType's collection, marks it
// WRITE on both the fragment and the shared accumulator, and returns its
// fragment.
func (lw *Lowerer) collectionFragForWrite(rootEntityType string, node ir.Node, ctx *compctx.Context) (frag.Fragment, string, error) {
	info, err := lw.entityInfo(rootEntityType, node)
	if err != nil {
		return frag.Fragment{}, "", err
	}
	b := ctx.Shared().Builder
	coll, err := b.Collection(info.Collection)
	if err != nil {
		return frag.Fragment{}, "", compileerr.New(compileerr.InvalidIdentifier, node, "%v", err)
	}
	coll = frag.MarkWrite(coll, info.Collection)
	ctx.Shared().TrackWrite(info.Collection)
	return coll, info.Collection, nil
}

// lowerCreateEntity emits INSERT object INTO coll RETURN NEW._key, marking
// coll WRITE. The RETURN clause gives the statement a value so it can also
// serve as a pre-execution query whose result variable feeds later queries
// (§8 scenario S6).
func (lw *Lowerer) lowerCreateEntity(n *ir.CreateEntity, ctx *compctx.Context) (frag.Fragment, error) {
	coll, _, err := lw.collectionFragForWrite(n.Type, n, ctx)
	if err != nil {
		return frag.Fragment{}, err
	}
	object, err := lw.Lower(n.Object, ctx)
	if err != nil {
		return frag.Fragment{}, err
	}
	return frag.Combine("INSERT "+object.Text+" INTO "+coll.Text+" RETURN NEW._key", object, coll), nil
}

// lowerUpdateEntities emits FOR cur IN list UPDATE cur WITH {field: value,
// ...} IN coll, binding CurrentVar to each prior document.
func (lw *Lowerer) lowerUpdateEntities(n *ir.UpdateEntities, ctx *compctx.Context) (frag.Fragment, error) {
	coll, _, err := lw.collectionFragForWrite(n.Type, n, ctx)
	if err != nil {
		return frag.Fragment{}, err
	}
	listFrag, err := lw.Lower(n.List, ctx)
	if err != nil {
		return frag.Fragment{}, err
	}
	inner, err := ctx.IntroduceVariable(n.CurrentVar)
	if err != nil {
		return frag.Fragment{}, compileerr.New(compileerr.DoubleIntroduction, n, "%v", err)
	}
	curName, err := inner.GetVariable(n.CurrentVar)
	if err != nil {
		return frag.Fragment{}, err
	}
	fields := make([]frag.Fragment, len(n.Updates))
	for i, u := range n.Updates {
		valueFrag, err := lw.Lower(u.Value, inner)
		if err != nil {
			return frag.Fragment{}, err
		}
		key, err := inner.Shared().Builder.Identifier(u.FieldName)
		if err != nil {
			return frag.Fragment{}, compileerr.New(compileerr.InvalidIdentifier, n, "%v", err)
		}
		fields[i] = frag.Combine(key.Text+": "+valueFrag.Text, key, valueFrag)
	}
	fieldsFrag := frag.Join(fields, ", ")
	return frag.Combine(
		"FOR "+curName+" IN "+listFrag.Text+" UPDATE "+curName+" WITH { "+fieldsFrag.Text+" } IN "+coll.Text,
		listFrag, fieldsFrag, coll,
	), nil
}

// lowerDeleteEntities emits FOR x IN list REMOVE x IN coll.
func (lw *Lowerer) lowerDeleteEntities(n *ir.DeleteEntities, ctx *compctx.Context) (frag.Fragment, error) {
	coll, _, err := lw.collectionFragForWrite(n.Type, n, ctx)
	if err != nil {
		return frag.Fragment{}, err
	}
	listFrag, err := lw.Lower(n.List, ctx)
	if err != nil {
		return frag.Fragment{}, err
	}
	x := ir.NewVariable("x")
	inner, err := ctx.IntroduceVariable(x)
	if err != nil {
		return frag.Fragment{}, compileerr.New(compileerr.DoubleIntroduction, n, "%v", err)
	}
	name, err := inner.GetVariable(x)
	if err != nil {
		return frag.Fragment{}, err
	}
	return frag.Combine(
		"FOR "+name+" IN "+listFrag.Text+" REMOVE "+name+" IN "+coll.Text,
		listFrag, coll,
	), nil
}

func (lw *Lowerer) relationCollectionForWrite(relation string, node ir.Node, ctx *compctx.Context) (frag.Fragment, error) {
	info, err := lw.relationInfo(relation, node)
	if err != nil {
		return frag.Fragment{}, err
	}
	b := ctx.Shared().Builder
	coll, err := b.Collection(info.EdgeCollection)
	if err != nil {
		return frag.Fragment{}, compileerr.New(compileerr.InvalidIdentifier, node, "%v", err)
	}
	coll = frag.MarkWrite(coll, info.EdgeCollection)
	ctx.Shared().TrackWrite(info.EdgeCollection)
	return coll, nil
}

// lowerAddEdges emits an INSERT per edge into relation's edge collection.
func (lw *Lowerer) lowerAddEdges(n *ir.AddEdges, ctx *compctx.Context) (frag.Fragment, error) {
	coll, err := lw.relationCollectionForWrite(n.Relation, n, ctx)
	if err != nil {
		return frag.Fragment{}, err
	}
	stmts := make([]frag.Fragment, len(n.Edges))
	for i, e := range n.Edges {
		from, err := lw.Lower(e.From, ctx)
		if err != nil {
			return frag.Fragment{}, err
		}
		to, err := lw.Lower(e.To, ctx)
		if err != nil {
			return frag.Fragment{}, err
		}
		var dataText string
		parts := []frag.Fragment{from, to, coll}
		if e.Data != nil {
			data, err := lw.Lower(e.Data, ctx)
			if err != nil {
				return frag.Fragment{}, err
			}
			dataText = ", " + data.Text
			parts = append(parts, data)
		}
		stmts[i] = frag.Combine(
			"INSERT MERGE({ _from: "+from.Text+", _to: "+to.Text+" }"+dataText+") INTO "+coll.Text,
			parts...,
		)
	}
	return frag.Lines(stmts), nil
}

// lowerRemoveEdges emits FOR e IN edgeColl FILTER edgeFilter REMOVE e IN
// edgeColl.
func (lw *Lowerer) lowerRemoveEdges(n *ir.RemoveEdges, ctx *compctx.Context) (frag.Fragment, error) {
	coll, err := lw.relationCollectionForWrite(n.Relation, n, ctx)
	if err != nil {
		return frag.Fragment{}, err
	}
	e := ir.NewVariable("e")
	inner, err := ctx.IntroduceVariable(e)
	if err != nil {
		return frag.Fragment{}, compileerr.New(compileerr.DoubleIntroduction, n, "%v", err)
	}
	name, err := inner.GetVariable(e)
	if err != nil {
		return frag.Fragment{}, err
	}
	filterFrag, err := lw.Lower(n.EdgeFilter, inner)
	if err != nil {
		return frag.Fragment{}, err
	}
	return frag.Combine(
		"FOR "+name+" IN "+coll.Text+" FILTER "+filterFrag.Text+" REMOVE "+name+" IN "+coll.Text,
		coll, filterFrag,
	), nil
}

// lowerSetEdge emits REPLACE existing WITH new IN edgeColl.
func (lw *Lowerer) lowerSetEdge(n *ir.SetEdge, ctx *compctx.Context) (frag.Fragment, error) {
	coll, err := lw.relationCollectionForWrite(n.Relation, n, ctx)
	if err != nil {
		return frag.Fragment{}, err
	}
	existing, err := lw.Lower(n.Existing, ctx)
	if err != nil {
		return frag.Fragment{}, err
	}
	newFrag, err := lw.Lower(n.New, ctx)
	if err != nil {
		return frag.Fragment{}, err
	}
	return frag.Combine(
		"REPLACE "+existing.Text+" WITH "+newFrag.Text+" IN "+coll.Text,
		existing, newFrag, coll,
	), nil
}
