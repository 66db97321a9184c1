package ir_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flexgraphdb/flexql/ir"
)

func TestExtractVariableAssignments_LiftsChainInOrder(t *testing.T) {
	v1 := ir.NewVariable("a")
	v2 := ir.NewVariable("b")
	inner, err := ir.NewVariableAssignment(v2, ir.NewConstInt(2), v2)
	require.NoError(t, err)
	outer, err := ir.NewVariableAssignment(v1, ir.NewConstInt(1), inner)
	require.NoError(t, err)

	result, lifted := ir.ExtractVariableAssignments(outer)
	require.Len(t, lifted, 2)
	assert.Same(t, v1, lifted[0].Variable)
	assert.Same(t, v2, lifted[1].Variable)
	assert.Same(t, v2, result)
}

func TestExtractVariableAssignments_NoWrapperReturnsAsIs(t *testing.T) {
	lit := ir.NewConstInt(5)
	result, lifted := ir.ExtractVariableAssignments(lit)
	assert.Same(t, lit, result)
	assert.Empty(t, lifted)
}

func TestSimplifyBooleans_ShortCircuitsAndOr(t *testing.T) {
	trueAndX, err := ir.NewBinaryOp(ir.OpAnd, ir.NewConstBool(true), ir.NewConstInt(7))
	require.NoError(t, err)
	assert.Same(t, trueAndX.RHS, ir.SimplifyBooleans(trueAndX))

	falseAndX, err := ir.NewBinaryOp(ir.OpAnd, ir.NewConstBool(false), ir.NewConstInt(7))
	require.NoError(t, err)
	assert.Equal(t, ir.NewConstBool(false), ir.SimplifyBooleans(falseAndX))

	trueOrX, err := ir.NewBinaryOp(ir.OpOr, ir.NewConstBool(true), ir.NewConstInt(7))
	require.NoError(t, err)
	assert.Equal(t, ir.NewConstBool(true), ir.SimplifyBooleans(trueOrX))
}

func TestSimplifyBooleans_NotConstFolds(t *testing.T) {
	notTrue, err := ir.NewUnaryOp(ir.OpNot, ir.NewConstBool(true))
	require.NoError(t, err)
	assert.Equal(t, ir.NewConstBool(false), ir.SimplifyBooleans(notTrue))
}

func TestFold_RebuildsWithSubstitution(t *testing.T) {
	target := ir.NewConstInt(1)
	replacement := ir.NewConstInt(2)
	obj, err := ir.NewObject([]ir.ObjectEntry{{Name: "x", Value: target}})
	require.NoError(t, err)

	out := ir.Fold(obj, func(n ir.Node) ir.Node {
		if ir.Equal(n, target) {
			return replacement
		}
		return n
	})

	got := out.(*ir.Object)
	assert.True(t, ir.Equal(got.Entries[0].Value, replacement))
}
