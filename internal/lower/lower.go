// Package lower implements the Lowering Pass (component D): a dispatch
// table, realized as a Go type switch, mapping each ir.Node variant to a
// pure (node, context) -> frag.Fragment handler.
package lower

import (
	"strconv"

	"github.com/flexgraphdb/flexql/compileerr"
	"github.com/flexgraphdb/flexql/internal/compctx"
	"github.com/flexgraphdb/flexql/internal/frag"
	"github.com/flexgraphdb/flexql/ir"
	"github.com/flexgraphdb/flexql/model"
)

// Config carries the per-entity experimental toggles the lowering pass
// consults (§4.D.1 step 7's "experimental switch ... enabled for T").
type Config struct {
	ProjectionIndirection map[string]bool
}

// Lowerer holds everything the lowering pass needs besides the node and
// context it is handed: the schema metadata collaborator and the
// experimental-toggle configuration. A Lowerer has no mutable state of its
// own, so one instance is safely shared across concurrent compilations
// (§5 "no global mutable state participates in compilation").
type Lowerer struct {
	Schema model.Schema
	Config Config
}

func New(schema model.Schema, cfg Config) *Lowerer {
	return &Lowerer{Schema: schema, Config: cfg}
}

// Lower dispatches node to its handler. The type switch is the compile-time
// realization of the source dispatch table (§9). A node type with no case
// here reaches the default branch and fails at runtime with an UnknownNode
// compile error.
func (lw *Lowerer) Lower(node ir.Node, ctx *compctx.Context) (frag.Fragment, error) {
	if node == nil {
		return frag.Fragment{}, compileerr.New(compileerr.MalformedIR, nil, "lower: nil node")
	}
	b := ctx.Shared().Builder

	switch n := node.(type) {
	case *ir.Literal:
		return b.Value(n.Value), nil
	case *ir.ConstBool:
		return b.Text(boolText(n.Value)), nil
	case *ir.ConstInt:
		return b.Text(strconv.FormatInt(n.Value, 10)), nil
	case *ir.Null:
		return b.Text("null"), nil
	case *ir.RuntimeError:
		return lw.lowerRuntimeError(n, ctx)

	case *ir.Object:
		return lw.lowerObject(n, ctx)
	case *ir.List:
		return lw.lowerList(n, ctx)
	case *ir.MergeObjects:
		return lw.lowerMergeObjects(n, ctx)
	case *ir.ConcatLists:
		return lw.lowerConcatLists(n, ctx)
	case *ir.FirstOfList:
		return lw.lowerFirstOfList(n, ctx)
	case *ir.SafeList:
		return lw.lowerSafeList(n, ctx)

	case *ir.Variable:
		return lw.lowerVariable(n, ctx)
	case *ir.VariableAssignment:
		return lw.lowerVariableAssignment(n, ctx)
	case *ir.WithPreExecution:
		return lw.lowerWithPreExecution(n, ctx)

	case *ir.Field:
		return lw.lowerField(n, ctx)
	case *ir.RootEntityID:
		return lw.lowerRootEntityID(n, ctx)
	case *ir.EntityFromID:
		return lw.lowerEntityFromID(n, ctx)
	case *ir.Entities:
		return lw.lowerEntities(n, ctx)
	case *ir.FollowEdge:
		return lw.lowerFollowEdgeStandalone(n, ctx)

	case *ir.TransformList:
		return lw.lowerTransformList(n, ctx)
	case *ir.Count:
		return lw.lowerCount(n, ctx)

	case *ir.BinaryOp:
		return lw.lowerBinaryOp(n, ctx)
	case *ir.UnaryOp:
		return lw.lowerUnaryOp(n, ctx)
	case *ir.Conditional:
		return lw.lowerConditional(n, ctx)
	case *ir.TypeCheck:
		return lw.lowerTypeCheck(n, ctx)
	case *ir.OperatorWithLanguage:
		return lw.lowerOperatorWithLanguage(n, ctx)

	case *ir.CreateEntity:
		return lw.lowerCreateEntity(n, ctx)
	case *ir.UpdateEntities:
		return lw.lowerUpdateEntities(n, ctx)
	case *ir.DeleteEntities:
		return lw.lowerDeleteEntities(n, ctx)
	case *ir.AddEdges:
		return lw.lowerAddEdges(n, ctx)
	case *ir.RemoveEdges:
		return lw.lowerRemoveEdges(n, ctx)
	case *ir.SetEdge:
		return lw.lowerSetEdge(n, ctx)

	case *ir.QuantifierFilter:
		return lw.lowerQuantifierFilter(n, ctx)
	case *ir.QuickSearch:
		return lw.lowerQuickSearch(n, ctx)

	default:
		return frag.Fragment{}, compileerr.New(compileerr.UnknownNode, node, "lower: unhandled node type %T", node)
	}
}

func boolText(v bool) string {
	if v {
		return "true"
	}
	return "false"
}

// entityInfo resolves rootEntityType through the schema, translating a miss
// into a MalformedIR compile error (the schema-generation layer is expected
// to only ever emit entity types the schema actually declares).
func (lw *Lowerer) entityInfo(rootEntityType string, node ir.Node) (model.EntityInfo, error) {
	info, ok := lw.Schema.Entity(rootEntityType)
	if !ok {
		return model.EntityInfo{}, compileerr.New(compileerr.MalformedIR, node, "lower: unknown root entity type %q", rootEntityType)
	}
	return info, nil
}

func (lw *Lowerer) relationInfo(name string, node ir.Node) (model.RelationInfo, error) {
	info, ok := lw.Schema.Relation(name)
	if !ok {
		return model.RelationInfo{}, compileerr.New(compileerr.MalformedIR, node, "lower: unknown relation %q", name)
	}
	return info, nil
}

// lowerRuntimeError emits the sentinel object described by invariant 6: a
// value the executing layer detects post-hoc by its RuntimeErrorToken key.
func (lw *Lowerer) lowerRuntimeError(n *ir.RuntimeError, ctx *compctx.Context) (frag.Fragment, error) {
	b := ctx.Shared().Builder
	key, err := b.Identifier(ir.RuntimeErrorToken)
	if err != nil {
		return frag.Fragment{}, compileerr.New(compileerr.InvalidIdentifier, n, "%v", err)
	}
	msg := b.Value(n.Message)
	return frag.Join([]frag.Fragment{
		b.Text("{ "), key, b.Text(": true, message: "), msg, b.Text(" }"),
	}, ""), nil
}
