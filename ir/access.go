package ir

import "fmt"

// Field accesses FieldName on Object, optionally followed by a deeper
// nested Path (e.g. into a JSON-valued field). Each segment that is a safe
// identifier is emitted unquoted with a dot; otherwise it is bound as a
// bracketed string key (§4.D).
type Field struct {
	Object    Node
	FieldName string
	Path      []string
}

func (*Field) isNode() {}

func NewField(object Node, fieldName string, path []string) (*Field, error) {
	if object == nil {
		return nil, fmt.Errorf("ir: Field requires an object node")
	}
	if fieldName == "" {
		return nil, fmt.Errorf("ir: Field requires a non-empty field name")
	}
	return &Field{Object: object, FieldName: fieldName, Path: path}, nil
}

// RootEntityID emits the primary-key accessor ("<obj>._key") for a root
// entity object.
type RootEntityID struct {
	Object Node
}

func (*RootEntityID) isNode() {}

func NewRootEntityID(object Node) (*RootEntityID, error) {
	if object == nil {
		return nil, fmt.Errorf("ir: RootEntityID requires an object node")
	}
	return &RootEntityID{Object: object}, nil
}

// EntityFromID looks a single root entity up by primary key, implying a
// READ on RootEntityType's collection.
type EntityFromID struct {
	RootEntityType string
	ID             Node
}

func (*EntityFromID) isNode() {}

func NewEntityFromID(rootEntityType string, id Node) (*EntityFromID, error) {
	if rootEntityType == "" {
		return nil, fmt.Errorf("ir: EntityFromID requires a root entity type")
	}
	if id == nil {
		return nil, fmt.Errorf("ir: EntityFromID requires an id node")
	}
	return &EntityFromID{RootEntityType: rootEntityType, ID: id}, nil
}

// Entities references the full collection for a root entity type, implying
// a READ on its collection.
type Entities struct {
	RootEntityType string
}

func (*Entities) isNode() {}

func NewEntities(rootEntityType string) (*Entities, error) {
	if rootEntityType == "" {
		return nil, fmt.Errorf("ir: Entities requires a root entity type")
	}
	return &Entities{RootEntityType: rootEntityType}, nil
}

// FollowEdge traverses a relation's edge collection from SourceEntity.
// Inside an IN clause it lowers to "OUTBOUND|INBOUND <source> <edgeColl>";
// elsewhere it is wrapped in a dangling-edge filter (§4.D).
type FollowEdge struct {
	RelationSide RelationSide
	SourceEntity Node
}

func (*FollowEdge) isNode() {}

func NewFollowEdge(side RelationSide, source Node) (*FollowEdge, error) {
	if side.Relation == "" {
		return nil, fmt.Errorf("ir: FollowEdge requires a relation name")
	}
	if source == nil {
		return nil, fmt.Errorf("ir: FollowEdge requires a source entity node")
	}
	return &FollowEdge{RelationSide: side, SourceEntity: source}, nil
}
