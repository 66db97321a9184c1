package ir

// Equal reports structural equality for value-like nodes (Literal,
// ConstBool, ConstInt, Null) and identity equality for Variable, per §4.A
// ("Equality is structural for value-like nodes ... and identity-based for
// Variable"). Every other variant compares unequal unless it is the same
// pointer, since equality is only specified for these five kinds.
func Equal(a, b Node) bool {
	if a == b {
		return true
	}
	switch av := a.(type) {
	case *Literal:
		bv, ok := b.(*Literal)
		return ok && literalEqual(av.Value, bv.Value)
	case *ConstBool:
		bv, ok := b.(*ConstBool)
		return ok && av.Value == bv.Value
	case *ConstInt:
		bv, ok := b.(*ConstInt)
		return ok && av.Value == bv.Value
	case *Null:
		_, ok := b.(*Null)
		return ok
	case *Variable:
		bv, ok := b.(*Variable)
		return ok && av.ID == bv.ID
	default:
		return false
	}
}

func literalEqual(a, b any) bool {
	as, aok := a.([]any)
	bs, bok := b.([]any)
	if aok != bok {
		return false
	}
	if aok {
		if len(as) != len(bs) {
			return false
		}
		for i := range as {
			if !literalEqual(as[i], bs[i]) {
				return false
			}
		}
		return true
	}
	return a == b
}

// Fold performs a post-order traversal of node: every child is folded
// first (in declared order), the node is rebuilt from the folded children,
// and f is applied to the rebuilt node. f receives a node of the same
// variant it was given (possibly with substituted children) and returns the
// node to keep in its place — the substitution primitive §4.A names.
func Fold(node Node, f func(Node) Node) Node {
	if node == nil {
		return nil
	}
	return f(foldChildren(node, f))
}

func foldList(items []Node, f func(Node) Node) []Node {
	if items == nil {
		return nil
	}
	out := make([]Node, len(items))
	for i, it := range items {
		out[i] = Fold(it, f)
	}
	return out
}

func foldChildren(node Node, f func(Node) Node) Node {
	switch n := node.(type) {
	case *Literal, *ConstBool, *ConstInt, *Null, *RuntimeError, *Variable:
		return node

	case *Object:
		entries := make([]ObjectEntry, len(n.Entries))
		for i, e := range n.Entries {
			entries[i] = ObjectEntry{Name: e.Name, Value: Fold(e.Value, f)}
		}
		return &Object{Entries: entries}

	case *List:
		return &List{Items: foldList(n.Items, f)}

	case *MergeObjects:
		return &MergeObjects{Items: foldList(n.Items, f)}

	case *ConcatLists:
		return &ConcatLists{Items: foldList(n.Items, f)}

	case *FirstOfList:
		return &FirstOfList{List: Fold(n.List, f)}

	case *SafeList:
		return &SafeList{Value: Fold(n.Value, f)}

	case *VariableAssignment:
		return &VariableAssignment{
			Variable:   n.Variable,
			ValueNode:  Fold(n.ValueNode, f),
			ResultNode: Fold(n.ResultNode, f),
		}

	case *WithPreExecution:
		entries := make([]PreExecEntry, len(n.Entries))
		for i, e := range n.Entries {
			entries[i] = PreExecEntry{
				Query:           Fold(e.Query, f),
				ResultVariable:  e.ResultVariable,
				ResultValidator: e.ResultValidator,
			}
		}
		return &WithPreExecution{Entries: entries, ResultNode: Fold(n.ResultNode, f)}

	case *Field:
		return &Field{Object: Fold(n.Object, f), FieldName: n.FieldName, Path: n.Path}

	case *RootEntityID:
		return &RootEntityID{Object: Fold(n.Object, f)}

	case *EntityFromID:
		return &EntityFromID{RootEntityType: n.RootEntityType, ID: Fold(n.ID, f)}

	case *Entities:
		return node

	case *FollowEdge:
		return &FollowEdge{RelationSide: n.RelationSide, SourceEntity: Fold(n.SourceEntity, f)}

	case *TransformList:
		var filter Node
		if n.Filter != nil {
			filter = Fold(n.Filter, f)
		}
		var orderBy []OrderClause
		if n.OrderBy != nil {
			orderBy = make([]OrderClause, len(n.OrderBy))
			for i, oc := range n.OrderBy {
				orderBy[i] = OrderClause{Expr: Fold(oc.Expr, f), Desc: oc.Desc}
			}
		}
		return &TransformList{
			List:         Fold(n.List, f),
			ItemVariable: n.ItemVariable,
			Filter:       filter,
			OrderBy:      orderBy,
			Skip:         n.Skip,
			MaxCount:     n.MaxCount,
			Inner:        Fold(n.Inner, f),
		}

	case *Count:
		return &Count{List: Fold(n.List, f)}

	case *BinaryOp:
		return &BinaryOp{Op: n.Op, LHS: Fold(n.LHS, f), RHS: Fold(n.RHS, f)}

	case *UnaryOp:
		return &UnaryOp{Op: n.Op, Value: Fold(n.Value, f)}

	case *Conditional:
		return &Conditional{Cond: Fold(n.Cond, f), Then: Fold(n.Then, f), Else: Fold(n.Else, f)}

	case *TypeCheck:
		return &TypeCheck{Value: Fold(n.Value, f), BasicType: n.BasicType}

	case *OperatorWithLanguage:
		return &OperatorWithLanguage{Op: n.Op, LHS: Fold(n.LHS, f), RHS: Fold(n.RHS, f), Language: n.Language}

	case *CreateEntity:
		return &CreateEntity{Type: n.Type, Object: Fold(n.Object, f)}

	case *UpdateEntities:
		updates := make([]FieldUpdate, len(n.Updates))
		for i, u := range n.Updates {
			updates[i] = FieldUpdate{FieldName: u.FieldName, Value: Fold(u.Value, f)}
		}
		return &UpdateEntities{Type: n.Type, List: Fold(n.List, f), CurrentVar: n.CurrentVar, Updates: updates}

	case *DeleteEntities:
		return &DeleteEntities{Type: n.Type, List: Fold(n.List, f)}

	case *AddEdges:
		edges := make([]EdgeSpec, len(n.Edges))
		for i, e := range n.Edges {
			var data Node
			if e.Data != nil {
				data = Fold(e.Data, f)
			}
			edges[i] = EdgeSpec{From: Fold(e.From, f), To: Fold(e.To, f), Data: data}
		}
		return &AddEdges{Relation: n.Relation, Edges: edges}

	case *RemoveEdges:
		return &RemoveEdges{Relation: n.Relation, EdgeFilter: Fold(n.EdgeFilter, f)}

	case *SetEdge:
		return &SetEdge{Relation: n.Relation, Existing: Fold(n.Existing, f), New: Fold(n.New, f)}

	case *QuantifierFilter:
		return &QuantifierFilter{
			Quantifier: n.Quantifier, List: Fold(n.List, f),
			ItemVariable: n.ItemVariable, Condition: Fold(n.Condition, f),
		}

	case *QuickSearch:
		return &QuickSearch{RootEntityType: n.RootEntityType, ItemVariable: n.ItemVariable, Filter: Fold(n.Filter, f)}

	default:
		return node
	}
}

// ExtractVariableAssignments walks from root along its direct-value edges —
// the chain of VariableAssignment wrappers at the very top of the
// expression, which is the only position that does not cross a list or
// function boundary — lifting each one encountered into the returned slice
// and replacing it in place with its ResultNode (§4.A). The rewrite is
// semantics-preserving because each lifted assignment becomes a LET
// statement in the enclosing scope, evaluated exactly once, before the
// rewritten expression (which no longer wraps it) is evaluated.
func ExtractVariableAssignments(node Node) (Node, []*VariableAssignment) {
	var lifted []*VariableAssignment
	for {
		va, ok := node.(*VariableAssignment)
		if !ok {
			return node, lifted
		}
		lifted = append(lifted, va)
		node = va.ResultNode
	}
}

// SimplifyBooleans performs constant folding over AND/OR/NOT with ConstBool
// operands and short-circuit simplification (§4.A).
func SimplifyBooleans(node Node) Node {
	return Fold(node, simplifyBooleanStep)
}

func asConstBool(n Node) (bool, bool) {
	cb, ok := n.(*ConstBool)
	if !ok {
		return false, false
	}
	return cb.Value, true
}

func simplifyBooleanStep(n Node) Node {
	switch op := n.(type) {
	case *BinaryOp:
		switch op.Op {
		case OpAnd:
			if lv, ok := asConstBool(op.LHS); ok {
				if !lv {
					return &ConstBool{Value: false}
				}
				return op.RHS
			}
			if rv, ok := asConstBool(op.RHS); ok {
				if !rv {
					return &ConstBool{Value: false}
				}
				return op.LHS
			}
		case OpOr:
			if lv, ok := asConstBool(op.LHS); ok {
				if lv {
					return &ConstBool{Value: true}
				}
				return op.RHS
			}
			if rv, ok := asConstBool(op.RHS); ok {
				if rv {
					return &ConstBool{Value: true}
				}
				return op.LHS
			}
		}
		return op
	case *UnaryOp:
		if op.Op == OpNot {
			if v, ok := asConstBool(op.Value); ok {
				return &ConstBool{Value: !v}
			}
		}
		return op
	default:
		return n
	}
}
