package main

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSchema_DecodesEntitiesAndRelations(t *testing.T) {
	memFs := afero.NewMemMapFs()
	doc := `{
		"entities": [
			{"name": "Order", "collection": "orders", "flexIndexed": true, "fields": [{"name": "total"}]}
		],
		"relations": [
			{"name": "placedBy", "edgeCollection": "placed_by"}
		]
	}`
	require.NoError(t, afero.WriteFile(memFs, "schema.json", []byte(doc), 0o644))

	schema, err := loadSchema(memFs, "schema.json")
	require.NoError(t, err)

	info, ok := schema.Entity("Order")
	require.True(t, ok)
	assert.Equal(t, "orders", info.Collection)
	assert.True(t, info.FlexIndexed)

	rel, ok := schema.Relation("placedBy")
	require.True(t, ok)
	assert.Equal(t, "placed_by", rel.EdgeCollection)
}

func TestLoadSchema_MissingFileErrors(t *testing.T) {
	memFs := afero.NewMemMapFs()
	_, err := loadSchema(memFs, "missing.json")
	assert.Error(t, err)
}
