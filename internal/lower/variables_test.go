package lower_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flexgraphdb/flexql/ir"
)

func TestLower_Variable_ResolvesThroughContext(t *testing.T) {
	lw := newLowerer()
	v := ir.NewVariable("o")
	ctx, err := freshCtx().IntroduceVariable(v)
	require.NoError(t, err)

	f, err := lw.Lower(v, ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, f.Text)
}

func TestLower_Variable_UnboundFails(t *testing.T) {
	lw := newLowerer()
	v := ir.NewVariable("o")

	_, err := lw.Lower(v, freshCtx())
	assert.Error(t, err)
}

func TestLower_VariableAssignment_WrapsInFirstLet(t *testing.T) {
	lw := newLowerer()
	v := ir.NewVariable("total")
	va, err := ir.NewVariableAssignment(v, ir.NewConstInt(5), v)
	require.NoError(t, err)

	f, err := lw.Lower(va, freshCtx())
	require.NoError(t, err)
	assert.Contains(t, f.Text, "FIRST(LET ")
	assert.Contains(t, f.Text, " RETURN ")
}

func TestLower_WithPreExecution_ChainsEntriesInOrder(t *testing.T) {
	lw := newLowerer()
	resultVar := ir.NewVariable("found")
	entry := ir.PreExecEntry{
		Query:          ir.NewConstBool(true),
		ResultVariable: resultVar,
	}
	wpe, err := ir.NewWithPreExecution([]ir.PreExecEntry{entry}, ir.NewLiteral("done"))
	require.NoError(t, err)

	f, err := lw.Lower(wpe, freshCtx())
	require.NoError(t, err)
	assert.NotEmpty(t, f.Text)
}

// TestLower_WithPreExecution_CreateEntityReturnsNewKey pins spec scenario
// S6: a pre-exec CreateEntity's text must return the new document's key so
// resultVar can feed the main query, and the created collection counts as a
// write without being read.
func TestLower_WithPreExecution_CreateEntityReturnsNewKey(t *testing.T) {
	lw := newLowerer()
	object, err := ir.NewObject(nil)
	require.NoError(t, err)
	createD, err := ir.NewCreateEntity("Order", object)
	require.NoError(t, err)

	k := ir.NewVariable("k")
	entry := ir.PreExecEntry{
		Query:          createD,
		ResultVariable: k,
	}
	wpe, err := ir.NewWithPreExecution([]ir.PreExecEntry{entry}, k)
	require.NoError(t, err)

	ctx := freshCtx()
	f, err := lw.Lower(wpe, ctx)
	require.NoError(t, err)

	require.Len(t, ctx.Shared().PreExec, 1)
	preText := ctx.Shared().PreExec[0].Fragment.Text
	assert.Contains(t, preText, "INSERT")
	assert.Contains(t, preText, "RETURN NEW._key")

	_, read := ctx.Shared().ReadCollections["orders"]
	assert.False(t, read, "CreateEntity must not mark its collection READ")
	_, written := ctx.Shared().WriteCollections["orders"]
	assert.True(t, written, "CreateEntity must mark its collection WRITE")

	assert.NotEmpty(t, f.Text)
	assert.NotContains(t, f.Text, "INSERT", "main text must be a bare reference to the bound result variable")
}
