package lower_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flexgraphdb/flexql/ir"
)

func TestLower_LiteralBindsAsParameter(t *testing.T) {
	lw := newLowerer()
	ctx := freshCtx()
	f, err := lw.Lower(ir.NewLiteral("ada"), ctx)
	require.NoError(t, err)
	assert.Len(t, f.Bindings, 1)
	for _, v := range f.Bindings {
		assert.Equal(t, "ada", v)
	}
}

func TestLower_ConstBoolAndNull(t *testing.T) {
	lw := newLowerer()
	ctx := freshCtx()

	tru, err := lw.Lower(ir.NewConstBool(true), ctx)
	require.NoError(t, err)
	assert.Equal(t, "true", tru.Text)

	nullFrag, err := lw.Lower(ir.NewNull(), ctx)
	require.NoError(t, err)
	assert.Equal(t, "null", nullFrag.Text)
}

func TestLower_EmptyObjectAndList(t *testing.T) {
	lw := newLowerer()
	ctx := freshCtx()

	obj, err := ir.NewObject(nil)
	require.NoError(t, err)
	objFrag, err := lw.Lower(obj, ctx)
	require.NoError(t, err)
	assert.Equal(t, "{}", objFrag.Text)

	list, err := ir.NewList(nil)
	require.NoError(t, err)
	listFrag, err := lw.Lower(list, ctx)
	require.NoError(t, err)
	assert.Equal(t, "[]", listFrag.Text)
}

func TestLower_ObjectWithSafeAndUnsafeKeys(t *testing.T) {
	lw := newLowerer()
	ctx := freshCtx()

	obj, err := ir.NewObject([]ir.ObjectEntry{
		{Name: "total", Value: ir.NewConstInt(5)},
		{Name: "weird-key", Value: ir.NewConstInt(6)},
	})
	require.NoError(t, err)
	f, err := lw.Lower(obj, ctx)
	require.NoError(t, err)
	assert.Contains(t, f.Text, "total:")
	assert.NotContains(t, f.Text, "weird-key", "unsafe keys are bound, not inlined")
	bound := []any{}
	for _, v := range f.Bindings {
		bound = append(bound, v)
	}
	assert.Contains(t, bound, "weird-key")
}

func TestLower_FirstOfListAndMergeObjects(t *testing.T) {
	lw := newLowerer()
	ctx := freshCtx()

	list, err := ir.NewList([]ir.Node{ir.NewConstInt(1)})
	require.NoError(t, err)
	first, err := ir.NewFirstOfList(list)
	require.NoError(t, err)
	f, err := lw.Lower(first, ctx)
	require.NoError(t, err)
	assert.Contains(t, f.Text, "FIRST(")

	merge, err := ir.NewMergeObjects([]ir.Node{list})
	require.NoError(t, err)
	mf, err := lw.Lower(merge, ctx)
	require.NoError(t, err)
	assert.Contains(t, mf.Text, "MERGE(")
}

func TestLower_SafeListGuardsNonListValue(t *testing.T) {
	lw := newLowerer()
	ctx := freshCtx()
	v := ir.NewVariable("maybeList")
	inner, err := ctx.IntroduceVariable(v)
	require.NoError(t, err)

	safe, err := ir.NewSafeList(v)
	require.NoError(t, err)
	f, err := lw.Lower(safe, inner)
	require.NoError(t, err)
	assert.Contains(t, f.Text, "IS_LIST")
}
