package lower

import (
	"github.com/flexgraphdb/flexql/compileerr"
	"github.com/flexgraphdb/flexql/internal/compctx"
	"github.com/flexgraphdb/flexql/internal/frag"
	"github.com/flexgraphdb/flexql/ir"
)

// lowerField emits a dotted access <obj>.<field>.<path...>: each segment
// that is a safe identifier is emitted unquoted with a leading dot,
// otherwise it is bound as a bracketed value key (§4.D). FieldName is
// always the first segment; Path, when present, names deeper nesting under
// it (JSON-valued fields addressed by a further key chain).
func (lw *Lowerer) lowerField(n *ir.Field, ctx *compctx.Context) (frag.Fragment, error) {
	object, err := lw.Lower(n.Object, ctx)
	if err != nil {
		return frag.Fragment{}, err
	}
	segments := append([]string{n.FieldName}, n.Path...)
	return lowerDottedPath(object, segments, ctx.Shared().Builder), nil
}

func lowerDottedPath(object frag.Fragment, segments []string, b *frag.Builder) frag.Fragment {
	parts := []frag.Fragment{object}
	for _, seg := range segments {
		if frag.IsSafeIdentifier(seg) {
			parts = append(parts, b.Text("."+seg))
			continue
		}
		key := b.Value(seg)
		parts = append(parts, b.Text("["), key, b.Text("]"))
	}
	return frag.Join(parts, "")
}

// lowerRootEntityID emits <obj>._key.
func (lw *Lowerer) lowerRootEntityID(n *ir.RootEntityID, ctx *compctx.Context) (frag.Fragment, error) {
	object, err := lw.Lower(n.Object, ctx)
	if err != nil {
		return frag.Fragment{}, err
	}
	return frag.Join([]frag.Fragment{object, ctx.Shared().Builder.Text("._key")}, ""), nil
}

// lowerEntityFromID emits DOCUMENT(<coll>, <id>), marking coll READ.
func (lw *Lowerer) lowerEntityFromID(n *ir.EntityFromID, ctx *compctx.Context) (frag.Fragment, error) {
	info, err := lw.entityInfo(n.RootEntityType, n)
	if err != nil {
		return frag.Fragment{}, err
	}
	b := ctx.Shared().Builder
	coll, err := b.Collection(info.Collection)
	if err != nil {
		return frag.Fragment{}, compileerr.New(compileerr.InvalidIdentifier, n, "%v", err)
	}
	ctx.Shared().TrackRead(info.Collection)
	id, err := lw.Lower(n.ID, ctx)
	if err != nil {
		return frag.Fragment{}, err
	}
	return frag.Join([]frag.Fragment{b.Text("DOCUMENT("), coll, b.Text(", "), id, b.Text(")")}, ""), nil
}

// lowerEntities emits the collection reference and marks it READ.
func (lw *Lowerer) lowerEntities(n *ir.Entities, ctx *compctx.Context) (frag.Fragment, error) {
	info, err := lw.entityInfo(n.RootEntityType, n)
	if err != nil {
		return frag.Fragment{}, err
	}
	b := ctx.Shared().Builder
	coll, err := b.Collection(info.Collection)
	if err != nil {
		return frag.Fragment{}, compileerr.New(compileerr.InvalidIdentifier, n, "%v", err)
	}
	ctx.Shared().TrackRead(info.Collection)
	return coll, nil
}

func directionToken(dir ir.EdgeDirection) string {
	if dir == ir.DirectionInbound {
		return "INBOUND"
	}
	return "OUTBOUND"
}

// lowerFollowEdgeInline emits OUTBOUND|INBOUND <source> <edgeCollection>,
// the simple form used as the direct operand of a FOR ... IN clause
// (§4.D.1 step 3).
func (lw *Lowerer) lowerFollowEdgeInline(n *ir.FollowEdge, ctx *compctx.Context) (frag.Fragment, error) {
	info, err := lw.relationInfo(n.RelationSide.Relation, n)
	if err != nil {
		return frag.Fragment{}, err
	}
	b := ctx.Shared().Builder
	coll, err := b.Collection(info.EdgeCollection)
	if err != nil {
		return frag.Fragment{}, compileerr.New(compileerr.InvalidIdentifier, n, "%v", err)
	}
	ctx.Shared().TrackRead(info.EdgeCollection)
	source, err := lw.Lower(n.SourceEntity, ctx)
	if err != nil {
		return frag.Fragment{}, err
	}
	return frag.Join([]frag.Fragment{
		b.Text(directionToken(n.RelationSide.Direction) + " "), source, b.Text(" "), coll,
	}, ""), nil
}

// lowerFollowEdgeStandalone wraps the inline form in a dangling-edge filter
// when FollowEdge is used outside an IN clause (§4.D).
func (lw *Lowerer) lowerFollowEdgeStandalone(n *ir.FollowEdge, ctx *compctx.Context) (frag.Fragment, error) {
	itemVar := ir.NewVariable("n")
	inner, err := ctx.IntroduceVariable(itemVar)
	if err != nil {
		return frag.Fragment{}, compileerr.New(compileerr.DoubleIntroduction, n, "%v", err)
	}
	name, err := inner.GetVariable(itemVar)
	if err != nil {
		return frag.Fragment{}, err
	}
	edge, err := lw.lowerFollowEdgeInline(n, inner)
	if err != nil {
		return frag.Fragment{}, err
	}
	b := ctx.Shared().Builder
	return frag.Join([]frag.Fragment{
		b.Text("(FOR " + name + " IN "), edge,
		b.Text(" FILTER " + name + " != null RETURN " + name + ")"),
	}, ""), nil
}
