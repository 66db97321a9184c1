package main

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flexgraphdb/flexql/ir"
)

func init() {
	log = newLogger().Sugar()
}

func TestCompileFixture_CompilesEncodedNodeAgainstLoadedSchema(t *testing.T) {
	memFs := afero.NewMemMapFs()
	schemaDoc := `{
		"entities": [{"name": "Order", "collection": "orders"}]
	}`
	require.NoError(t, afero.WriteFile(memFs, "schema.json", []byte(schemaDoc), 0o644))

	node, err := ir.NewEntities("Order")
	require.NoError(t, err)
	fixture, err := ir.EncodeNode(node)
	require.NoError(t, err)
	require.NoError(t, afero.WriteFile(memFs, "fixture.json", fixture, 0o644))

	cq, err := compileFixture(context.Background(), memFs, "schema.json", "fixture.json")
	require.NoError(t, err)
	assert.Equal(t, "orders", cq.Main.Text)
	assert.Contains(t, cq.ReadCollections, "orders")
}

func TestCompileFixture_MissingFixtureErrors(t *testing.T) {
	memFs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(memFs, "schema.json", []byte(`{"entities": []}`), 0o644))
	_, err := compileFixture(context.Background(), memFs, "schema.json", "missing.json")
	assert.Error(t, err)
}
