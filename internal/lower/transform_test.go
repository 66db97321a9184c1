package lower_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flexgraphdb/flexql/ir"
)

func skip(n int64) *int64     { return &n }
func maxCount(n int64) *int64 { return &n }

func buildSimpleTransform(t *testing.T, skip, max *int64) (*ir.TransformList, *ir.Variable) {
	t.Helper()
	list, err := ir.NewEntities("Order")
	require.NoError(t, err)
	item := ir.NewVariable("o")
	tl, err := ir.NewTransformList(list, item, nil, nil, skip, max, item)
	require.NoError(t, err)
	return tl, item
}

func TestLower_LimitMatrix(t *testing.T) {
	lw := newLowerer()

	tl, _ := buildSimpleTransform(t, nil, maxCount(5))
	f, err := lw.Lower(tl, freshCtx())
	require.NoError(t, err)
	assert.Contains(t, f.Text, "LIMIT 5")

	tl, _ = buildSimpleTransform(t, skip(2), maxCount(5))
	f, err = lw.Lower(tl, freshCtx())
	require.NoError(t, err)
	assert.Contains(t, f.Text, "LIMIT 2, 5")

	tl, _ = buildSimpleTransform(t, skip(2), nil)
	f, err = lw.Lower(tl, freshCtx())
	require.NoError(t, err)
	assert.Contains(t, f.Text, "LIMIT 2, 9007199254740991")

	tl, _ = buildSimpleTransform(t, nil, nil)
	f, err = lw.Lower(tl, freshCtx())
	require.NoError(t, err)
	assert.NotContains(t, f.Text, "LIMIT")
}

func TestLower_FilterOmittedWhenSimplifiesToConstTrue(t *testing.T) {
	lw := newLowerer()
	list, err := ir.NewEntities("Order")
	require.NoError(t, err)
	item := ir.NewVariable("o")
	cond, err := ir.NewBinaryOp(ir.OpOr, ir.NewConstBool(true), ir.NewConstBool(false))
	require.NoError(t, err)
	tl, err := ir.NewTransformList(list, item, cond, nil, nil, nil, item)
	require.NoError(t, err)

	f, err := lw.Lower(tl, freshCtx())
	require.NoError(t, err)
	assert.NotContains(t, f.Text, "FILTER")
}

func TestLower_FilterPresentWhenNotConstTrue(t *testing.T) {
	lw := newLowerer()
	list, err := ir.NewEntities("Order")
	require.NoError(t, err)
	item := ir.NewVariable("o")
	field, err := ir.NewField(item, "status", nil)
	require.NoError(t, err)
	cond, err := ir.NewBinaryOp(ir.OpEqual, field, ir.NewLiteral("open"))
	require.NoError(t, err)
	tl, err := ir.NewTransformList(list, item, cond, nil, nil, nil, item)
	require.NoError(t, err)

	f, err := lw.Lower(tl, freshCtx())
	require.NoError(t, err)
	assert.Contains(t, f.Text, "FILTER")
}

func TestLower_OrderByClause(t *testing.T) {
	lw := newLowerer()
	list, err := ir.NewEntities("Order")
	require.NoError(t, err)
	item := ir.NewVariable("o")
	field, err := ir.NewField(item, "total", nil)
	require.NoError(t, err)
	tl, err := ir.NewTransformList(list, item, nil, []ir.OrderClause{{Expr: field, Desc: true}}, nil, nil, item)
	require.NoError(t, err)

	f, err := lw.Lower(tl, freshCtx())
	require.NoError(t, err)
	assert.Contains(t, f.Text, "SORT")
	assert.Contains(t, f.Text, "DESC")
}

func TestLower_ProjectionIndirection_DefersMaterialization(t *testing.T) {
	lw := newLowerer()
	lw.Config.ProjectionIndirection = map[string]bool{"Order": true}

	list, err := ir.NewEntities("Order")
	require.NoError(t, err)
	item := ir.NewVariable("o")
	field, err := ir.NewField(item, "total", nil)
	require.NoError(t, err)
	tl, err := ir.NewTransformList(list, item, nil, nil, nil, maxCount(10), field)
	require.NoError(t, err)

	f, err := lw.Lower(tl, freshCtx())
	require.NoError(t, err)
	assert.Contains(t, f.Text, "DOCUMENT(")
	assert.Contains(t, f.Text, "_proj")
}

func TestLower_TransformList_FollowEdgeAsListUsesInlineForm(t *testing.T) {
	lw := newLowerer()
	customer := ir.NewVariable("c")
	edge, err := ir.NewFollowEdge(ir.RelationSide{Relation: "placedBy", Direction: ir.DirectionOutbound}, customer)
	require.NoError(t, err)
	item := ir.NewVariable("o")
	tl, err := ir.NewTransformList(edge, item, nil, nil, nil, nil, item)
	require.NoError(t, err)

	ctx := freshCtx()
	inner, err := ctx.IntroduceVariable(customer)
	require.NoError(t, err)

	f, err := lw.Lower(tl, inner)
	require.NoError(t, err)
	assert.Contains(t, f.Text, "OUTBOUND")
	assert.Contains(t, f.Text, "placed_by")
	assert.NotContains(t, f.Text, "(FOR ")
}

func TestLower_Count_UsesLengthForIndexOptimizableList(t *testing.T) {
	lw := newLowerer()
	list, err := ir.NewEntities("Order")
	require.NoError(t, err)
	count, err := ir.NewCount(list)
	require.NoError(t, err)

	f, err := lw.Lower(count, freshCtx())
	require.NoError(t, err)
	assert.Contains(t, f.Text, "LENGTH(")
}

func TestLower_Count_UsesCollectSubqueryForNonOptimizableList(t *testing.T) {
	lw := newLowerer()
	list, err := ir.NewList([]ir.Node{ir.NewConstInt(1)})
	require.NoError(t, err)
	count, err := ir.NewCount(list)
	require.NoError(t, err)

	f, err := lw.Lower(count, freshCtx())
	require.NoError(t, err)
	assert.Contains(t, f.Text, "COLLECT WITH COUNT")
}
