package ir_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flexgraphdb/flexql/ir"
)

func TestEncodeDecodeNode_RoundTripsSharedVariableIdentity(t *testing.T) {
	item := ir.NewVariable("item")
	field, err := ir.NewField(item, "name", nil)
	require.NoError(t, err)
	cmp, err := ir.NewBinaryOp(ir.OpEqual, field, ir.NewLiteral("Ada"))
	require.NoError(t, err)
	list, err := ir.NewList(nil)
	require.NoError(t, err)
	tl, err := ir.NewTransformList(list, item, cmp, nil, nil, nil, item)
	require.NoError(t, err)

	data, err := ir.EncodeNode(tl)
	require.NoError(t, err)

	decoded, err := ir.DecodeNode(data)
	require.NoError(t, err)

	got := decoded.(*ir.TransformList)
	assert.Same(t, got.ItemVariable, got.Inner, "ItemVariable and Inner referenced the same source Variable and must decode to the same pointer")

	innerCmp := got.Filter.(*ir.BinaryOp)
	innerField := innerCmp.LHS.(*ir.Field)
	assert.Same(t, got.ItemVariable, innerField.Object, "Field.Object referenced the loop variable and must share identity with ItemVariable")
}

func TestEncodeDecodeNode_Literal(t *testing.T) {
	data, err := ir.EncodeNode(ir.NewLiteral(int64(42)))
	require.NoError(t, err)
	decoded, err := ir.DecodeNode(data)
	require.NoError(t, err)
	// encoding/json decodes a JSON number held in an `any` as float64.
	assert.Equal(t, float64(42), decoded.(*ir.Literal).Value)
}
