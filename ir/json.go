package ir

import (
	"encoding/json"
	"fmt"
)

// wireNode is the JSON-on-the-wire shape for every Node variant: a "kind"
// discriminator plus a kind-specific payload. This is fixture-loading
// support for cmd/flexqlc, not part of the compiler's own data path — the
// compiler only ever sees Nodes built through the exported constructors.
type wireNode struct {
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data,omitempty"`
}

// EncodeNode serializes node and every node it reaches to JSON. Each
// *Variable is given a "ref" the first time it is encoded; later
// occurrences of the same *Variable pointer reuse that ref so DecodeNode can
// reconstruct shared identity.
func EncodeNode(node Node) ([]byte, error) {
	enc := &nodeEncoder{refs: map[*Variable]string{}}
	w, err := enc.encode(node)
	if err != nil {
		return nil, err
	}
	return json.Marshal(w)
}

// DecodeNode deserializes a tree produced by EncodeNode. Variable refs
// sharing the same id decode to the same *Variable pointer, reproducing the
// identity-based scoping EncodeNode captured.
func DecodeNode(data []byte) (Node, error) {
	dec := &nodeDecoder{vars: map[string]*Variable{}}
	var w wireNode
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("ir: decode node: %w", err)
	}
	return dec.decode(w)
}

type nodeEncoder struct {
	refs map[*Variable]string
}

func (e *nodeEncoder) varRef(v *Variable) string {
	if ref, ok := e.refs[v]; ok {
		return ref
	}
	ref := fmt.Sprintf("v%d", v.ID)
	e.refs[v] = ref
	return ref
}

func (e *nodeEncoder) encodeMany(nodes []Node) ([]wireNode, error) {
	out := make([]wireNode, len(nodes))
	for i, n := range nodes {
		w, err := e.encode(n)
		if err != nil {
			return nil, err
		}
		out[i] = w
	}
	return out, nil
}

func (e *nodeEncoder) encodeOpt(node Node) (*wireNode, error) {
	if node == nil {
		return nil, nil
	}
	w, err := e.encode(node)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (e *nodeEncoder) wrap(kind string, payload any) (wireNode, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return wireNode{}, fmt.Errorf("ir: encode %s: %w", kind, err)
	}
	return wireNode{Kind: kind, Data: data}, nil
}

func (e *nodeEncoder) encode(node Node) (wireNode, error) {
	switch n := node.(type) {
	case *Literal:
		return e.wrap("Literal", struct{ Value any }{n.Value})
	case *ConstBool:
		return e.wrap("ConstBool", struct{ Value bool }{n.Value})
	case *ConstInt:
		return e.wrap("ConstInt", struct{ Value int64 }{n.Value})
	case *Null:
		return e.wrap("Null", struct{}{})
	case *RuntimeError:
		return e.wrap("RuntimeError", struct{ Message string }{n.Message})

	case *Variable:
		return e.wrap("Variable", struct {
			Ref   string
			Label string
		}{e.varRef(n), n.Label})

	case *Field:
		object, err := e.encode(n.Object)
		if err != nil {
			return wireNode{}, err
		}
		return e.wrap("Field", struct {
			Object    wireNode
			FieldName string
			Path      []string
		}{object, n.FieldName, n.Path})

	case *RootEntityID:
		object, err := e.encode(n.Object)
		if err != nil {
			return wireNode{}, err
		}
		return e.wrap("RootEntityID", struct{ Object wireNode }{object})

	case *EntityFromID:
		id, err := e.encode(n.ID)
		if err != nil {
			return wireNode{}, err
		}
		return e.wrap("EntityFromID", struct {
			RootEntityType string
			ID             wireNode
		}{n.RootEntityType, id})

	case *Entities:
		return e.wrap("Entities", struct{ RootEntityType string }{n.RootEntityType})

	case *FollowEdge:
		source, err := e.encode(n.SourceEntity)
		if err != nil {
			return wireNode{}, err
		}
		return e.wrap("FollowEdge", struct {
			Relation     string
			Direction    EdgeDirection
			SourceEntity wireNode
		}{n.RelationSide.Relation, n.RelationSide.Direction, source})

	case *Object:
		entries := make([]struct {
			Name  string
			Value wireNode
		}, len(n.Entries))
		for i, ent := range n.Entries {
			v, err := e.encode(ent.Value)
			if err != nil {
				return wireNode{}, err
			}
			entries[i].Name = ent.Name
			entries[i].Value = v
		}
		return e.wrap("Object", struct {
			Entries []struct {
				Name  string
				Value wireNode
			}
		}{entries})

	case *List:
		items, err := e.encodeMany(n.Items)
		if err != nil {
			return wireNode{}, err
		}
		return e.wrap("List", struct{ Items []wireNode }{items})

	case *MergeObjects:
		items, err := e.encodeMany(n.Items)
		if err != nil {
			return wireNode{}, err
		}
		return e.wrap("MergeObjects", struct{ Items []wireNode }{items})

	case *ConcatLists:
		items, err := e.encodeMany(n.Items)
		if err != nil {
			return wireNode{}, err
		}
		return e.wrap("ConcatLists", struct{ Items []wireNode }{items})

	case *FirstOfList:
		list, err := e.encode(n.List)
		if err != nil {
			return wireNode{}, err
		}
		return e.wrap("FirstOfList", struct{ List wireNode }{list})

	case *SafeList:
		value, err := e.encode(n.Value)
		if err != nil {
			return wireNode{}, err
		}
		return e.wrap("SafeList", struct{ Value wireNode }{value})

	case *BinaryOp:
		lhs, err := e.encode(n.LHS)
		if err != nil {
			return wireNode{}, err
		}
		rhs, err := e.encode(n.RHS)
		if err != nil {
			return wireNode{}, err
		}
		return e.wrap("BinaryOp", struct {
			Op       BinaryOperator
			LHS, RHS wireNode
		}{n.Op, lhs, rhs})

	case *UnaryOp:
		value, err := e.encode(n.Value)
		if err != nil {
			return wireNode{}, err
		}
		return e.wrap("UnaryOp", struct {
			Op    UnaryOperator
			Value wireNode
		}{n.Op, value})

	case *Conditional:
		cond, err := e.encode(n.Cond)
		if err != nil {
			return wireNode{}, err
		}
		then, err := e.encode(n.Then)
		if err != nil {
			return wireNode{}, err
		}
		els, err := e.encode(n.Else)
		if err != nil {
			return wireNode{}, err
		}
		return e.wrap("Conditional", struct{ Cond, Then, Else wireNode }{cond, then, els})

	case *TypeCheck:
		value, err := e.encode(n.Value)
		if err != nil {
			return wireNode{}, err
		}
		return e.wrap("TypeCheck", struct {
			Value     wireNode
			BasicType BasicType
		}{value, n.BasicType})

	case *OperatorWithLanguage:
		lhs, err := e.encode(n.LHS)
		if err != nil {
			return wireNode{}, err
		}
		rhs, err := e.encode(n.RHS)
		if err != nil {
			return wireNode{}, err
		}
		return e.wrap("OperatorWithLanguage", struct {
			Op       LanguageOperator
			LHS, RHS wireNode
			Language string
		}{n.Op, lhs, rhs, n.Language})

	case *QuantifierFilter:
		list, err := e.encode(n.List)
		if err != nil {
			return wireNode{}, err
		}
		itemVar, err := e.encode(n.ItemVariable)
		if err != nil {
			return wireNode{}, err
		}
		cond, err := e.encode(n.Condition)
		if err != nil {
			return wireNode{}, err
		}
		return e.wrap("QuantifierFilter", struct {
			Quantifier   Quantifier
			List         wireNode
			ItemVariable wireNode
			Condition    wireNode
		}{n.Quantifier, list, itemVar, cond})

	case *QuickSearch:
		itemVar, err := e.encode(n.ItemVariable)
		if err != nil {
			return wireNode{}, err
		}
		filter, err := e.encode(n.Filter)
		if err != nil {
			return wireNode{}, err
		}
		return e.wrap("QuickSearch", struct {
			RootEntityType string
			ItemVariable   wireNode
			Filter         wireNode
		}{n.RootEntityType, itemVar, filter})

	case *TransformList:
		list, err := e.encode(n.List)
		if err != nil {
			return wireNode{}, err
		}
		itemVar, err := e.encode(n.ItemVariable)
		if err != nil {
			return wireNode{}, err
		}
		filter, err := e.encodeOpt(n.Filter)
		if err != nil {
			return wireNode{}, err
		}
		orderBy := make([]struct {
			Expr wireNode
			Desc bool
		}, len(n.OrderBy))
		for i, oc := range n.OrderBy {
			expr, err := e.encode(oc.Expr)
			if err != nil {
				return wireNode{}, err
			}
			orderBy[i].Expr = expr
			orderBy[i].Desc = oc.Desc
		}
		inner, err := e.encode(n.Inner)
		if err != nil {
			return wireNode{}, err
		}
		return e.wrap("TransformList", struct {
			List         wireNode
			ItemVariable wireNode
			Filter       *wireNode `json:",omitempty"`
			OrderBy      []struct {
				Expr wireNode
				Desc bool
			} `json:",omitempty"`
			Skip     *int64
			MaxCount *int64
			Inner    wireNode
		}{list, itemVar, filter, orderBy, n.Skip, n.MaxCount, inner})

	case *Count:
		list, err := e.encode(n.List)
		if err != nil {
			return wireNode{}, err
		}
		return e.wrap("Count", struct{ List wireNode }{list})

	case *VariableAssignment:
		value, err := e.encode(n.ValueNode)
		if err != nil {
			return wireNode{}, err
		}
		variable, err := e.encode(n.Variable)
		if err != nil {
			return wireNode{}, err
		}
		result, err := e.encode(n.ResultNode)
		if err != nil {
			return wireNode{}, err
		}
		return e.wrap("VariableAssignment", struct {
			Variable   wireNode
			ValueNode  wireNode
			ResultNode wireNode
		}{variable, value, result})

	case *WithPreExecution:
		entries := make([]struct {
			Query          wireNode
			ResultVariable *wireNode `json:",omitempty"`
		}, len(n.Entries))
		for i, pe := range n.Entries {
			q, err := e.encode(pe.Query)
			if err != nil {
				return wireNode{}, err
			}
			entries[i].Query = q
			if pe.ResultVariable != nil {
				rv, err := e.encode(pe.ResultVariable)
				if err != nil {
					return wireNode{}, err
				}
				entries[i].ResultVariable = &rv
			}
		}
		result, err := e.encode(n.ResultNode)
		if err != nil {
			return wireNode{}, err
		}
		return e.wrap("WithPreExecution", struct {
			Entries []struct {
				Query          wireNode
				ResultVariable *wireNode `json:",omitempty"`
			}
			ResultNode wireNode
		}{entries, result})

	case *CreateEntity:
		object, err := e.encode(n.Object)
		if err != nil {
			return wireNode{}, err
		}
		return e.wrap("CreateEntity", struct {
			Type   string
			Object wireNode
		}{n.Type, object})

	case *UpdateEntities:
		list, err := e.encode(n.List)
		if err != nil {
			return wireNode{}, err
		}
		currentVar, err := e.encode(n.CurrentVar)
		if err != nil {
			return wireNode{}, err
		}
		updates := make([]struct {
			FieldName string
			Value     wireNode
		}, len(n.Updates))
		for i, u := range n.Updates {
			v, err := e.encode(u.Value)
			if err != nil {
				return wireNode{}, err
			}
			updates[i].FieldName = u.FieldName
			updates[i].Value = v
		}
		return e.wrap("UpdateEntities", struct {
			Type       string
			List       wireNode
			CurrentVar wireNode
			Updates    []struct {
				FieldName string
				Value     wireNode
			}
		}{n.Type, list, currentVar, updates})

	case *DeleteEntities:
		list, err := e.encode(n.List)
		if err != nil {
			return wireNode{}, err
		}
		return e.wrap("DeleteEntities", struct {
			Type string
			List wireNode
		}{n.Type, list})

	case *AddEdges:
		edges := make([]struct {
			From, To wireNode
			Data     *wireNode `json:",omitempty"`
		}, len(n.Edges))
		for i, e2 := range n.Edges {
			from, err := e.encode(e2.From)
			if err != nil {
				return wireNode{}, err
			}
			to, err := e.encode(e2.To)
			if err != nil {
				return wireNode{}, err
			}
			edges[i].From = from
			edges[i].To = to
			if e2.Data != nil {
				data, err := e.encode(e2.Data)
				if err != nil {
					return wireNode{}, err
				}
				edges[i].Data = &data
			}
		}
		return e.wrap("AddEdges", struct {
			Relation string
			Edges    []struct {
				From, To wireNode
				Data     *wireNode `json:",omitempty"`
			}
		}{n.Relation, edges})

	case *RemoveEdges:
		filter, err := e.encode(n.EdgeFilter)
		if err != nil {
			return wireNode{}, err
		}
		return e.wrap("RemoveEdges", struct {
			Relation   string
			EdgeFilter wireNode
		}{n.Relation, filter})

	case *SetEdge:
		existing, err := e.encode(n.Existing)
		if err != nil {
			return wireNode{}, err
		}
		newNode, err := e.encode(n.New)
		if err != nil {
			return wireNode{}, err
		}
		return e.wrap("SetEdge", struct {
			Relation         string
			Existing, New wireNode
		}{n.Relation, existing, newNode})

	default:
		return wireNode{}, fmt.Errorf("ir: encode: unhandled node type %T", node)
	}
}

type nodeDecoder struct {
	vars map[string]*Variable
}

func (d *nodeDecoder) variable(ref, label string) *Variable {
	if v, ok := d.vars[ref]; ok {
		return v
	}
	v := &Variable{ID: nextVariableID(), Label: label}
	d.vars[ref] = v
	return v
}

func (d *nodeDecoder) decodeMany(in []wireNode) ([]Node, error) {
	out := make([]Node, len(in))
	for i, w := range in {
		n, err := d.decode(w)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

func (d *nodeDecoder) decodeVar(w wireNode) (*Variable, error) {
	n, err := d.decode(w)
	if err != nil {
		return nil, err
	}
	v, ok := n.(*Variable)
	if !ok {
		return nil, fmt.Errorf("ir: decode: expected Variable, got %T", n)
	}
	return v, nil
}

func (d *nodeDecoder) decode(w wireNode) (Node, error) {
	switch w.Kind {
	case "Literal":
		var p struct{ Value any }
		if err := json.Unmarshal(w.Data, &p); err != nil {
			return nil, err
		}
		return NewLiteral(p.Value), nil

	case "ConstBool":
		var p struct{ Value bool }
		if err := json.Unmarshal(w.Data, &p); err != nil {
			return nil, err
		}
		return NewConstBool(p.Value), nil

	case "ConstInt":
		var p struct{ Value int64 }
		if err := json.Unmarshal(w.Data, &p); err != nil {
			return nil, err
		}
		return NewConstInt(p.Value), nil

	case "Null":
		return NewNull(), nil

	case "RuntimeError":
		var p struct{ Message string }
		if err := json.Unmarshal(w.Data, &p); err != nil {
			return nil, err
		}
		return NewRuntimeError(p.Message)

	case "Variable":
		var p struct{ Ref, Label string }
		if err := json.Unmarshal(w.Data, &p); err != nil {
			return nil, err
		}
		return d.variable(p.Ref, p.Label), nil

	case "Field":
		var p struct {
			Object    wireNode
			FieldName string
			Path      []string
		}
		if err := json.Unmarshal(w.Data, &p); err != nil {
			return nil, err
		}
		object, err := d.decode(p.Object)
		if err != nil {
			return nil, err
		}
		return NewField(object, p.FieldName, p.Path)

	case "RootEntityID":
		var p struct{ Object wireNode }
		if err := json.Unmarshal(w.Data, &p); err != nil {
			return nil, err
		}
		object, err := d.decode(p.Object)
		if err != nil {
			return nil, err
		}
		return NewRootEntityID(object)

	case "EntityFromID":
		var p struct {
			RootEntityType string
			ID             wireNode
		}
		if err := json.Unmarshal(w.Data, &p); err != nil {
			return nil, err
		}
		id, err := d.decode(p.ID)
		if err != nil {
			return nil, err
		}
		return NewEntityFromID(p.RootEntityType, id)

	case "Entities":
		var p struct{ RootEntityType string }
		if err := json.Unmarshal(w.Data, &p); err != nil {
			return nil, err
		}
		return NewEntities(p.RootEntityType)

	case "FollowEdge":
		var p struct {
			Relation     string
			Direction    EdgeDirection
			SourceEntity wireNode
		}
		if err := json.Unmarshal(w.Data, &p); err != nil {
			return nil, err
		}
		source, err := d.decode(p.SourceEntity)
		if err != nil {
			return nil, err
		}
		return NewFollowEdge(RelationSide{Relation: p.Relation, Direction: p.Direction}, source)

	case "Object":
		var p struct {
			Entries []struct {
				Name  string
				Value wireNode
			}
		}
		if err := json.Unmarshal(w.Data, &p); err != nil {
			return nil, err
		}
		entries := make([]ObjectEntry, len(p.Entries))
		for i, ent := range p.Entries {
			v, err := d.decode(ent.Value)
			if err != nil {
				return nil, err
			}
			entries[i] = ObjectEntry{Name: ent.Name, Value: v}
		}
		return NewObject(entries)

	case "List":
		var p struct{ Items []wireNode }
		if err := json.Unmarshal(w.Data, &p); err != nil {
			return nil, err
		}
		items, err := d.decodeMany(p.Items)
		if err != nil {
			return nil, err
		}
		return NewList(items)

	case "MergeObjects":
		var p struct{ Items []wireNode }
		if err := json.Unmarshal(w.Data, &p); err != nil {
			return nil, err
		}
		items, err := d.decodeMany(p.Items)
		if err != nil {
			return nil, err
		}
		return NewMergeObjects(items)

	case "ConcatLists":
		var p struct{ Items []wireNode }
		if err := json.Unmarshal(w.Data, &p); err != nil {
			return nil, err
		}
		items, err := d.decodeMany(p.Items)
		if err != nil {
			return nil, err
		}
		return NewConcatLists(items)

	case "FirstOfList":
		var p struct{ List wireNode }
		if err := json.Unmarshal(w.Data, &p); err != nil {
			return nil, err
		}
		list, err := d.decode(p.List)
		if err != nil {
			return nil, err
		}
		return NewFirstOfList(list)

	case "SafeList":
		var p struct{ Value wireNode }
		if err := json.Unmarshal(w.Data, &p); err != nil {
			return nil, err
		}
		value, err := d.decode(p.Value)
		if err != nil {
			return nil, err
		}
		return NewSafeList(value)

	case "BinaryOp":
		var p struct {
			Op       BinaryOperator
			LHS, RHS wireNode
		}
		if err := json.Unmarshal(w.Data, &p); err != nil {
			return nil, err
		}
		lhs, err := d.decode(p.LHS)
		if err != nil {
			return nil, err
		}
		rhs, err := d.decode(p.RHS)
		if err != nil {
			return nil, err
		}
		return NewBinaryOp(p.Op, lhs, rhs)

	case "UnaryOp":
		var p struct {
			Op    UnaryOperator
			Value wireNode
		}
		if err := json.Unmarshal(w.Data, &p); err != nil {
			return nil, err
		}
		value, err := d.decode(p.Value)
		if err != nil {
			return nil, err
		}
		return NewUnaryOp(p.Op, value)

	case "Conditional":
		var p struct{ Cond, Then, Else wireNode }
		if err := json.Unmarshal(w.Data, &p); err != nil {
			return nil, err
		}
		cond, err := d.decode(p.Cond)
		if err != nil {
			return nil, err
		}
		then, err := d.decode(p.Then)
		if err != nil {
			return nil, err
		}
		els, err := d.decode(p.Else)
		if err != nil {
			return nil, err
		}
		return NewConditional(cond, then, els)

	case "TypeCheck":
		var p struct {
			Value     wireNode
			BasicType BasicType
		}
		if err := json.Unmarshal(w.Data, &p); err != nil {
			return nil, err
		}
		value, err := d.decode(p.Value)
		if err != nil {
			return nil, err
		}
		return NewTypeCheck(value, p.BasicType)

	case "OperatorWithLanguage":
		var p struct {
			Op       LanguageOperator
			LHS, RHS wireNode
			Language string
		}
		if err := json.Unmarshal(w.Data, &p); err != nil {
			return nil, err
		}
		lhs, err := d.decode(p.LHS)
		if err != nil {
			return nil, err
		}
		rhs, err := d.decode(p.RHS)
		if err != nil {
			return nil, err
		}
		return NewOperatorWithLanguage(p.Op, lhs, rhs, p.Language)

	case "QuantifierFilter":
		var p struct {
			Quantifier   Quantifier
			List         wireNode
			ItemVariable wireNode
			Condition    wireNode
		}
		if err := json.Unmarshal(w.Data, &p); err != nil {
			return nil, err
		}
		list, err := d.decode(p.List)
		if err != nil {
			return nil, err
		}
		itemVar, err := d.decodeVar(p.ItemVariable)
		if err != nil {
			return nil, err
		}
		cond, err := d.decode(p.Condition)
		if err != nil {
			return nil, err
		}
		return NewQuantifierFilter(p.Quantifier, list, itemVar, cond)

	case "QuickSearch":
		var p struct {
			RootEntityType string
			ItemVariable   wireNode
			Filter         wireNode
		}
		if err := json.Unmarshal(w.Data, &p); err != nil {
			return nil, err
		}
		itemVar, err := d.decodeVar(p.ItemVariable)
		if err != nil {
			return nil, err
		}
		filter, err := d.decode(p.Filter)
		if err != nil {
			return nil, err
		}
		return NewQuickSearch(p.RootEntityType, itemVar, filter)

	case "TransformList":
		var p struct {
			List         wireNode
			ItemVariable wireNode
			Filter       *wireNode
			OrderBy      []struct {
				Expr wireNode
				Desc bool
			}
			Skip     *int64
			MaxCount *int64
			Inner    wireNode
		}
		if err := json.Unmarshal(w.Data, &p); err != nil {
			return nil, err
		}
		list, err := d.decode(p.List)
		if err != nil {
			return nil, err
		}
		itemVar, err := d.decodeVar(p.ItemVariable)
		if err != nil {
			return nil, err
		}
		var filter Node
		if p.Filter != nil {
			filter, err = d.decode(*p.Filter)
			if err != nil {
				return nil, err
			}
		}
		orderBy := make([]OrderClause, len(p.OrderBy))
		for i, oc := range p.OrderBy {
			expr, err := d.decode(oc.Expr)
			if err != nil {
				return nil, err
			}
			orderBy[i] = OrderClause{Expr: expr, Desc: oc.Desc}
		}
		inner, err := d.decode(p.Inner)
		if err != nil {
			return nil, err
		}
		return NewTransformList(list, itemVar, filter, orderBy, p.Skip, p.MaxCount, inner)

	case "Count":
		var p struct{ List wireNode }
		if err := json.Unmarshal(w.Data, &p); err != nil {
			return nil, err
		}
		list, err := d.decode(p.List)
		if err != nil {
			return nil, err
		}
		return NewCount(list)

	case "VariableAssignment":
		var p struct {
			Variable   wireNode
			ValueNode  wireNode
			ResultNode wireNode
		}
		if err := json.Unmarshal(w.Data, &p); err != nil {
			return nil, err
		}
		v, err := d.decodeVar(p.Variable)
		if err != nil {
			return nil, err
		}
		value, err := d.decode(p.ValueNode)
		if err != nil {
			return nil, err
		}
		result, err := d.decode(p.ResultNode)
		if err != nil {
			return nil, err
		}
		return NewVariableAssignment(v, value, result)

	case "WithPreExecution":
		var p struct {
			Entries []struct {
				Query          wireNode
				ResultVariable *wireNode
			}
			ResultNode wireNode
		}
		if err := json.Unmarshal(w.Data, &p); err != nil {
			return nil, err
		}
		entries := make([]PreExecEntry, len(p.Entries))
		for i, pe := range p.Entries {
			q, err := d.decode(pe.Query)
			if err != nil {
				return nil, err
			}
			entries[i].Query = q
			if pe.ResultVariable != nil {
				rv, err := d.decodeVar(*pe.ResultVariable)
				if err != nil {
					return nil, err
				}
				entries[i].ResultVariable = rv
			}
		}
		result, err := d.decode(p.ResultNode)
		if err != nil {
			return nil, err
		}
		return NewWithPreExecution(entries, result)

	case "CreateEntity":
		var p struct {
			Type   string
			Object wireNode
		}
		if err := json.Unmarshal(w.Data, &p); err != nil {
			return nil, err
		}
		object, err := d.decode(p.Object)
		if err != nil {
			return nil, err
		}
		return NewCreateEntity(p.Type, object)

	case "UpdateEntities":
		var p struct {
			Type       string
			List       wireNode
			CurrentVar wireNode
			Updates    []struct {
				FieldName string
				Value     wireNode
			}
		}
		if err := json.Unmarshal(w.Data, &p); err != nil {
			return nil, err
		}
		list, err := d.decode(p.List)
		if err != nil {
			return nil, err
		}
		currentVar, err := d.decodeVar(p.CurrentVar)
		if err != nil {
			return nil, err
		}
		updates := make([]FieldUpdate, len(p.Updates))
		for i, u := range p.Updates {
			v, err := d.decode(u.Value)
			if err != nil {
				return nil, err
			}
			updates[i] = FieldUpdate{FieldName: u.FieldName, Value: v}
		}
		return NewUpdateEntities(p.Type, list, currentVar, updates)

	case "DeleteEntities":
		var p struct {
			Type string
			List wireNode
		}
		if err := json.Unmarshal(w.Data, &p); err != nil {
			return nil, err
		}
		list, err := d.decode(p.List)
		if err != nil {
			return nil, err
		}
		return NewDeleteEntities(p.Type, list)

	case "AddEdges":
		var p struct {
			Relation string
			Edges    []struct {
				From, To wireNode
				Data     *wireNode
			}
		}
		if err := json.Unmarshal(w.Data, &p); err != nil {
			return nil, err
		}
		edges := make([]EdgeSpec, len(p.Edges))
		for i, e := range p.Edges {
			from, err := d.decode(e.From)
			if err != nil {
				return nil, err
			}
			to, err := d.decode(e.To)
			if err != nil {
				return nil, err
			}
			edges[i] = EdgeSpec{From: from, To: to}
			if e.Data != nil {
				data, err := d.decode(*e.Data)
				if err != nil {
					return nil, err
				}
				edges[i].Data = data
			}
		}
		return NewAddEdges(p.Relation, edges)

	case "RemoveEdges":
		var p struct {
			Relation   string
			EdgeFilter wireNode
		}
		if err := json.Unmarshal(w.Data, &p); err != nil {
			return nil, err
		}
		filter, err := d.decode(p.EdgeFilter)
		if err != nil {
			return nil, err
		}
		return NewRemoveEdges(p.Relation, filter)

	case "SetEdge":
		var p struct {
			Relation      string
			Existing, New wireNode
		}
		if err := json.Unmarshal(w.Data, &p); err != nil {
			return nil, err
		}
		existing, err := d.decode(p.Existing)
		if err != nil {
			return nil, err
		}
		newNode, err := d.decode(p.New)
		if err != nil {
			return nil, err
		}
		return NewSetEdge(p.Relation, existing, newNode)

	default:
		return nil, fmt.Errorf("ir: decode: unknown node kind %q", w.Kind)
	}
}
