package flexql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flexgraphdb/flexql/ir"
)

func TestPlanCacheKey_DeterministicForStructurallyEqualNodes(t *testing.T) {
	a, err := ir.NewEntities("Order")
	require.NoError(t, err)
	b, err := ir.NewEntities("Order")
	require.NoError(t, err)

	keyA, err := planCacheKey(a)
	require.NoError(t, err)
	keyB, err := planCacheKey(b)
	require.NoError(t, err)
	assert.Equal(t, keyA, keyB)
}

func TestPlanCacheKey_DiffersForDifferentNodes(t *testing.T) {
	a, err := ir.NewEntities("Order")
	require.NoError(t, err)
	b, err := ir.NewEntities("Customer")
	require.NoError(t, err)

	keyA, err := planCacheKey(a)
	require.NoError(t, err)
	keyB, err := planCacheKey(b)
	require.NoError(t, err)
	assert.NotEqual(t, keyA, keyB)
}

func TestPlanCache_LocalGetPutRoundTrips(t *testing.T) {
	c, err := newPlanCache(8, "")
	require.NoError(t, err)

	cq := CompoundQuery{Main: Fragment{Text: "RETURN 1"}}
	c.put("k1", cq)

	got, ok := c.get("k1")
	require.True(t, ok)
	assert.Equal(t, cq.Main.Text, got.Main.Text)
}

func TestPlanCache_MissReturnsFalse(t *testing.T) {
	c, err := newPlanCache(8, "")
	require.NoError(t, err)
	_, ok := c.get("absent")
	assert.False(t, ok)
}
