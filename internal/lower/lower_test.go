package lower_test

import (
	"github.com/flexgraphdb/flexql/internal/compctx"
	"github.com/flexgraphdb/flexql/internal/lower"
	"github.com/flexgraphdb/flexql/model"
)

func testSchema() *model.StaticSchema {
	return model.NewStaticSchema().
		AddEntity(model.EntityInfo{Name: "Order", Collection: "orders", FlexIndexed: true, Fields: []model.FieldInfo{
			{Name: "total"},
			{Name: "status"},
		}}).
		AddEntity(model.EntityInfo{Name: "Customer", Collection: "customers"}).
		AddRelation(model.RelationInfo{Name: "placedBy", EdgeCollection: "placed_by"})
}

func newLowerer() *lower.Lowerer {
	return lower.New(testSchema(), lower.Config{})
}

func freshCtx() *compctx.Context {
	return compctx.New()
}
