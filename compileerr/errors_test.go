package compileerr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/flexgraphdb/flexql/compileerr"
	"github.com/flexgraphdb/flexql/ir"
)

func TestKind_String(t *testing.T) {
	assert.Equal(t, "UnknownNode", compileerr.UnknownNode.String())
	assert.Equal(t, "MalformedIR", compileerr.MalformedIR.String())
}

func TestError_Error_WithoutNode(t *testing.T) {
	err := compileerr.New(compileerr.UnboundVariable, nil, "variable %q missing", "x")
	assert.Contains(t, err.Error(), "UnboundVariable")
	assert.Contains(t, err.Error(), "variable \"x\" missing")
	assert.NotContains(t, err.Error(), "node")
}

func TestError_Error_WithNode(t *testing.T) {
	lit := ir.NewLiteral("x")
	err := compileerr.New(compileerr.MalformedIR, lit, "bad literal")
	assert.Contains(t, err.Error(), "node *ir.Literal")
}

func TestAs_UnwrapsWrappedError(t *testing.T) {
	err := compileerr.New(compileerr.DoubleIntroduction, nil, "boom")
	ce, ok := compileerr.As(err)
	assert.True(t, ok)
	assert.Equal(t, compileerr.DoubleIntroduction, ce.Kind)
}

func TestAs_FalseForUnrelatedError(t *testing.T) {
	_, ok := compileerr.As(assertError{})
	assert.False(t, ok)
}

type assertError struct{}

func (assertError) Error() string { return "unrelated" }
