package rewrite

import "github.com/flexgraphdb/flexql/ir"

// ArrayExpansion is the result of a successful array-expansion match: the
// list operand (unwrapped of any SafeList), the item-side field chain, and
// the value to test membership of.
type ArrayExpansion struct {
	List      ir.Node
	FieldPath []string
	Value     ir.Node
}

// AnalyzeArrayExpansion matches the some-only fast path of §4.D.3: the list
// node is a Field access (optionally wrapped in SafeList), and the
// condition is EQUAL or a wholly-literal, case-insensitive LIKE pattern,
// whose lhs is a chain of Field accesses rooted at itemVariable.
func AnalyzeArrayExpansion(list ir.Node, itemVar *ir.Variable, condition ir.Node) (ArrayExpansion, bool) {
	if sl, ok := list.(*ir.SafeList); ok {
		list = sl.Value
	}
	if _, ok := list.(*ir.Field); !ok {
		return ArrayExpansion{}, false
	}

	op, ok := condition.(*ir.BinaryOp)
	if !ok {
		return ArrayExpansion{}, false
	}

	switch op.Op {
	case ir.OpEqual:
		segs, root, ok := fieldChain(op.LHS)
		if !ok || !isVariable(root, itemVar) {
			return ArrayExpansion{}, false
		}
		return ArrayExpansion{List: list, FieldPath: segs, Value: op.RHS}, true

	case ir.OpLike:
		lit, ok := op.RHS.(*ir.Literal)
		if !ok {
			return ArrayExpansion{}, false
		}
		s, ok := lit.Value.(string)
		if !ok || !AnalyzeLikePattern(s).WhollyLiteral {
			return ArrayExpansion{}, false
		}
		segs, root, ok := fieldChain(op.LHS)
		if !ok || !isVariable(root, itemVar) {
			return ArrayExpansion{}, false
		}
		return ArrayExpansion{List: list, FieldPath: segs, Value: op.RHS}, true

	default:
		return ArrayExpansion{}, false
	}
}

func isVariable(node ir.Node, v *ir.Variable) bool {
	vn, ok := node.(*ir.Variable)
	return ok && vn.ID == v.ID
}

// fieldChain peels through a chain of Field accesses, returning the ordered
// segment names (outermost first) and the root node the chain is built on.
func fieldChain(node ir.Node) ([]string, ir.Node, bool) {
	f, ok := node.(*ir.Field)
	if !ok {
		return nil, node, true
	}
	innerSegs, root, ok := fieldChain(f.Object)
	if !ok {
		return nil, nil, false
	}
	segs := append(append([]string{}, innerSegs...), f.FieldName)
	segs = append(segs, f.Path...)
	return segs, root, true
}
