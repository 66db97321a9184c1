package flexql_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flexgraphdb/flexql"
	"github.com/flexgraphdb/flexql/ir"
	"github.com/flexgraphdb/flexql/model"
)

func testSchema() *model.StaticSchema {
	return model.NewStaticSchema().
		AddEntity(model.EntityInfo{Name: "Order", Collection: "orders", Fields: []model.FieldInfo{
			{Name: "total"}, {Name: "status"},
		}}).
		AddEntity(model.EntityInfo{Name: "Customer", Collection: "customers"}).
		AddRelation(model.RelationInfo{Name: "placedBy", EdgeCollection: "placed_by"})
}

func newCompiler(t *testing.T, cfg flexql.Config) *flexql.Compiler {
	t.Helper()
	c, err := flexql.NewCompiler(testSchema(), cfg)
	require.NoError(t, err)
	return c
}

func ordersQuery(t *testing.T) ir.Node {
	t.Helper()
	list, err := ir.NewEntities("Order")
	require.NoError(t, err)
	item := ir.NewVariable("o")
	field, err := ir.NewField(item, "status", nil)
	require.NoError(t, err)
	cond, err := ir.NewBinaryOp(ir.OpEqual, field, ir.NewLiteral("open"))
	require.NoError(t, err)
	tl, err := ir.NewTransformList(list, item, cond, nil, nil, nil, item)
	require.NoError(t, err)
	return tl
}

func TestCompile_ProducesMainFragmentAndReadCollections(t *testing.T) {
	c := newCompiler(t, flexql.Config{})
	cq, err := c.Compile(context.Background(), ordersQuery(t))
	require.NoError(t, err)
	assert.Contains(t, cq.Main.Text, "FOR ")
	assert.Contains(t, cq.ReadCollections, "orders")
	assert.Empty(t, cq.WriteCollections)
}

func TestCompile_TopLevelAssignmentHoisting(t *testing.T) {
	c := newCompiler(t, flexql.Config{})
	v := ir.NewVariable("x")
	va, err := ir.NewVariableAssignment(v, ir.NewConstInt(1), v)
	require.NoError(t, err)

	cq, err := c.Compile(context.Background(), va)
	require.NoError(t, err)
	assert.Contains(t, cq.Main.Text, "LET ")
	assert.Contains(t, cq.Main.Text, "RETURN ")
	assert.NotContains(t, cq.Main.Text, "FIRST(LET")
}

func TestCompileMany_CompilesIndependently(t *testing.T) {
	c := newCompiler(t, flexql.Config{})
	queries := []ir.Node{ordersQuery(t), ordersQuery(t)}
	results, err := c.CompileMany(context.Background(), queries)
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.Contains(t, r.ReadCollections, "orders")
	}
}

func TestCompileMany_FirstErrorCancelsAndPropagates(t *testing.T) {
	c := newCompiler(t, flexql.Config{})
	bad, err := ir.NewEntities("Nonexistent")
	require.NoError(t, err)
	queries := []ir.Node{ordersQuery(t), bad}

	_, err = c.CompileMany(context.Background(), queries)
	assert.Error(t, err)
}

func TestCompile_CacheHitReturnsSameCompoundQuery(t *testing.T) {
	c := newCompiler(t, flexql.Config{CacheSize: 16})
	q := ordersQuery(t)
	first, err := c.Compile(context.Background(), q)
	require.NoError(t, err)
	second, err := c.Compile(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, first.Main.Text, second.Main.Text)
}

func TestNewCompiler_RejectsInvalidConfig(t *testing.T) {
	_, err := flexql.NewCompiler(testSchema(), flexql.Config{CacheSize: -1})
	assert.Error(t, err)
}
