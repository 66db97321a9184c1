package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/afero"

	"github.com/flexgraphdb/flexql/model"
)

// schemaDoc is the on-disk shape of a fixture schema file: just enough of
// model.Schema for compiling fixture IR trees, not a real schema-generation
// front end.
type schemaDoc struct {
	Entities []struct {
		Name        string            `json:"name"`
		Collection  string            `json:"collection"`
		FlexIndexed bool              `json:"flexIndexed"`
		PrimarySort []model.SortClause `json:"primarySort"`
		Fields      []model.FieldInfo `json:"fields"`
	} `json:"entities"`
	Relations []struct {
		Name           string `json:"name"`
		EdgeCollection string `json:"edgeCollection"`
	} `json:"relations"`
}

func loadSchema(fs afero.Fs, path string) (*model.StaticSchema, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("read schema file: %w", err)
	}
	var doc schemaDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode schema file: %w", err)
	}
	schema := model.NewStaticSchema()
	for _, e := range doc.Entities {
		schema.AddEntity(model.EntityInfo{
			Name:        e.Name,
			Collection:  e.Collection,
			FlexIndexed: e.FlexIndexed,
			PrimarySort: e.PrimarySort,
			Fields:      e.Fields,
		})
	}
	for _, r := range doc.Relations {
		schema.AddRelation(model.RelationInfo{Name: r.Name, EdgeCollection: r.EdgeCollection})
	}
	return schema, nil
}
