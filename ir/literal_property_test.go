package ir_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flexgraphdb/flexql/ir"
)

// Literal values round-trip through NewLiteral/Equal regardless of the
// underlying value, so this is exercised against a spread of random
// strings and ints rather than one or two hand-picked examples.
func TestLiteral_EqualIsReflexiveAcrossRandomValues(t *testing.T) {
	for i := 0; i < 20; i++ {
		s := gofakeit.Word()
		a := ir.NewLiteral(s)
		b := ir.NewLiteral(s)
		assert.True(t, ir.Equal(a, b), "word %q", s)

		n := gofakeit.Number(-1000, 1000)
		x := ir.NewConstInt(int64(n))
		y := ir.NewConstInt(int64(n))
		assert.True(t, ir.Equal(x, y), "int %d", n)
	}
}

func TestField_AcceptsRandomValidNames(t *testing.T) {
	for i := 0; i < 10; i++ {
		name := gofakeit.Word()
		f, err := ir.NewField(ir.NewVariable("v"), name, nil)
		require.NoError(t, err)
		assert.Equal(t, name, f.FieldName)
	}
}
