package rewrite_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flexgraphdb/flexql/internal/rewrite"
	"github.com/flexgraphdb/flexql/ir"
)

func TestAnalyzeArrayExpansion_MatchesEqualOnFieldChainRootedAtItemVar(t *testing.T) {
	item := ir.NewVariable("tag")
	tagsField, err := ir.NewField(ir.NewVariable("order"), "tags", nil)
	require.NoError(t, err)

	chain, err := ir.NewField(item, "slug", nil)
	require.NoError(t, err)
	cond, err := ir.NewBinaryOp(ir.OpEqual, chain, ir.NewLiteral("sale"))
	require.NoError(t, err)

	expansion, ok := rewrite.AnalyzeArrayExpansion(tagsField, item, cond)
	require.True(t, ok)
	assert.Equal(t, []string{"slug"}, expansion.FieldPath)
	assert.Same(t, tagsField, expansion.List)
}

func TestAnalyzeArrayExpansion_UnwrapsSafeList(t *testing.T) {
	item := ir.NewVariable("tag")
	tagsField, err := ir.NewField(ir.NewVariable("order"), "tags", nil)
	require.NoError(t, err)
	safe, err := ir.NewSafeList(tagsField)
	require.NoError(t, err)
	cond, err := ir.NewBinaryOp(ir.OpEqual, item, ir.NewLiteral("sale"))
	require.NoError(t, err)

	expansion, ok := rewrite.AnalyzeArrayExpansion(safe, item, cond)
	require.True(t, ok)
	assert.Same(t, tagsField, expansion.List)
	assert.Empty(t, expansion.FieldPath)
}

func TestAnalyzeArrayExpansion_RejectsNonFieldList(t *testing.T) {
	item := ir.NewVariable("tag")
	list, err := ir.NewList(nil)
	require.NoError(t, err)
	cond, err := ir.NewBinaryOp(ir.OpEqual, item, ir.NewLiteral("sale"))
	require.NoError(t, err)

	_, ok := rewrite.AnalyzeArrayExpansion(list, item, cond)
	assert.False(t, ok)
}

func TestAnalyzeArrayExpansion_RejectsConditionNotRootedAtItemVar(t *testing.T) {
	item := ir.NewVariable("tag")
	other := ir.NewVariable("other")
	tagsField, err := ir.NewField(ir.NewVariable("order"), "tags", nil)
	require.NoError(t, err)
	cond, err := ir.NewBinaryOp(ir.OpEqual, other, ir.NewLiteral("sale"))
	require.NoError(t, err)

	_, ok := rewrite.AnalyzeArrayExpansion(tagsField, item, cond)
	assert.False(t, ok)
}

func TestAnalyzeArrayExpansion_LikeRequiresWhollyLiteralPattern(t *testing.T) {
	item := ir.NewVariable("tag")
	tagsField, err := ir.NewField(ir.NewVariable("order"), "tags", nil)
	require.NoError(t, err)

	wildcardCond, err := ir.NewBinaryOp(ir.OpLike, item, ir.NewLiteral("sa%"))
	require.NoError(t, err)
	_, ok := rewrite.AnalyzeArrayExpansion(tagsField, item, wildcardCond)
	assert.False(t, ok, "a pattern with a wildcard is not wholly literal")

	literalCond, err := ir.NewBinaryOp(ir.OpLike, item, ir.NewLiteral("sale"))
	require.NoError(t, err)
	_, ok = rewrite.AnalyzeArrayExpansion(tagsField, item, literalCond)
	assert.True(t, ok)
}
