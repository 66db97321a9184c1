package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/flexgraphdb/flexql/model"
)

func TestStaticSchema_AddAndLookupEntity(t *testing.T) {
	s := model.NewStaticSchema().AddEntity(model.EntityInfo{Name: "Order", Collection: "orders"})
	info, ok := s.Entity("Order")
	assert.True(t, ok)
	assert.Equal(t, "orders", info.Collection)

	_, ok = s.Entity("Missing")
	assert.False(t, ok)
}

func TestStaticSchema_AddAndLookupRelation(t *testing.T) {
	s := model.NewStaticSchema().AddRelation(model.RelationInfo{Name: "placedBy", EdgeCollection: "placed_by"})
	info, ok := s.Relation("placedBy")
	assert.True(t, ok)
	assert.Equal(t, "placed_by", info.EdgeCollection)

	_, ok = s.Relation("missing")
	assert.False(t, ok)
}

func TestEntityInfo_FieldLookup(t *testing.T) {
	e := model.EntityInfo{Fields: []model.FieldInfo{{Name: "total", FlexIndexed: true}}}
	f, ok := e.Field("total")
	assert.True(t, ok)
	assert.True(t, f.FlexIndexed)

	_, ok = e.Field("missing")
	assert.False(t, ok)
}
