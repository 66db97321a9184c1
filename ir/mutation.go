package ir

import "fmt"

// CreateEntity inserts a new root entity of Type from Object, implying a
// WRITE on Type's collection (§3.1 invariant 3).
type CreateEntity struct {
	Type   string
	Object Node
}

func (*CreateEntity) isNode() {}

func NewCreateEntity(typ string, object Node) (*CreateEntity, error) {
	if typ == "" {
		return nil, fmt.Errorf("ir: CreateEntity requires a type")
	}
	if object == nil {
		return nil, fmt.Errorf("ir: CreateEntity requires an object node")
	}
	return &CreateEntity{Type: typ, Object: object}, nil
}

// FieldUpdate sets FieldName to Value on every entity UpdateEntities
// iterates; Value may reference CurrentVar to read the prior value.
type FieldUpdate struct {
	FieldName string
	Value     Node
}

// UpdateEntities updates every entity produced by List (of root type Type),
// binding CurrentVar to each entity so Updates can reference prior values.
// Implies a WRITE on Type's collection.
type UpdateEntities struct {
	Type       string
	List       Node
	CurrentVar *Variable
	Updates    []FieldUpdate
}

func (*UpdateEntities) isNode() {}

func NewUpdateEntities(typ string, list Node, currentVar *Variable, updates []FieldUpdate) (*UpdateEntities, error) {
	if typ == "" {
		return nil, fmt.Errorf("ir: UpdateEntities requires a type")
	}
	if list == nil {
		return nil, fmt.Errorf("ir: UpdateEntities requires a list node")
	}
	if currentVar == nil {
		return nil, fmt.Errorf("ir: UpdateEntities requires a current-entity variable")
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("ir: UpdateEntities requires at least one field update")
	}
	for i, u := range updates {
		if u.FieldName == "" {
			return nil, fmt.Errorf("ir: UpdateEntities update %d has an empty field name", i)
		}
		if u.Value == nil {
			return nil, fmt.Errorf("ir: UpdateEntities update %d has a nil value", i)
		}
	}
	return &UpdateEntities{Type: typ, List: list, CurrentVar: currentVar, Updates: updates}, nil
}

// DeleteEntities removes every entity produced by List (of root type Type),
// implying a WRITE on Type's collection.
type DeleteEntities struct {
	Type string
	List Node
}

func (*DeleteEntities) isNode() {}

func NewDeleteEntities(typ string, list Node) (*DeleteEntities, error) {
	if typ == "" {
		return nil, fmt.Errorf("ir: DeleteEntities requires a type")
	}
	if list == nil {
		return nil, fmt.Errorf("ir: DeleteEntities requires a list node")
	}
	return &DeleteEntities{Type: typ, List: list}, nil
}

// EdgeSpec is one edge to create: From and To resolve to root entity ids;
// Data, if present, supplies edge properties.
type EdgeSpec struct {
	From Node
	To   Node
	Data Node // optional
}

// AddEdges creates new edges in Relation's edge collection, implying a
// WRITE on that collection.
type AddEdges struct {
	Relation string
	Edges    []EdgeSpec
}

func (*AddEdges) isNode() {}

func NewAddEdges(relation string, edges []EdgeSpec) (*AddEdges, error) {
	if relation == "" {
		return nil, fmt.Errorf("ir: AddEdges requires a relation name")
	}
	if len(edges) == 0 {
		return nil, fmt.Errorf("ir: AddEdges requires at least one edge")
	}
	for i, e := range edges {
		if e.From == nil || e.To == nil {
			return nil, fmt.Errorf("ir: AddEdges edge %d requires From and To", i)
		}
	}
	return &AddEdges{Relation: relation, Edges: edges}, nil
}

// RemoveEdges deletes every edge in Relation's collection matched by
// EdgeFilter, implying a WRITE on that collection.
type RemoveEdges struct {
	Relation   string
	EdgeFilter Node
}

func (*RemoveEdges) isNode() {}

func NewRemoveEdges(relation string, edgeFilter Node) (*RemoveEdges, error) {
	if relation == "" {
		return nil, fmt.Errorf("ir: RemoveEdges requires a relation name")
	}
	if edgeFilter == nil {
		return nil, fmt.Errorf("ir: RemoveEdges requires an edge filter node")
	}
	return &RemoveEdges{Relation: relation, EdgeFilter: edgeFilter}, nil
}

// SetEdge replaces Existing with New in Relation's edge collection,
// implying a WRITE on that collection.
type SetEdge struct {
	Relation string
	Existing Node
	New      Node
}

func (*SetEdge) isNode() {}

func NewSetEdge(relation string, existing, new Node) (*SetEdge, error) {
	if relation == "" {
		return nil, fmt.Errorf("ir: SetEdge requires a relation name")
	}
	if existing == nil || new == nil {
		return nil, fmt.Errorf("ir: SetEdge requires both existing and new edge nodes")
	}
	return &SetEdge{Relation: relation, Existing: existing, New: new}, nil
}
