package rewrite

import "github.com/flexgraphdb/flexql/ir"

// ProjectionIndirectionEligible reports whether §4.D.1 step 7's projection
// indirection applies: list is Entities(T), inner is not a bare pass-through
// of itemVar, maxCount is set, and the experimental switch is enabled for T.
func ProjectionIndirectionEligible(list ir.Node, inner ir.Node, itemVar *ir.Variable, maxCount *int64, enabledForType bool) bool {
	if !enabledForType || maxCount == nil {
		return false
	}
	if _, ok := list.(*ir.Entities); !ok {
		return false
	}
	if v, ok := inner.(*ir.Variable); ok && v.ID == itemVar.ID {
		return false
	}
	return true
}

// SubstituteVariable replaces every reference to old inside node with new,
// via ir.Fold. It is used to rewrite references to the original item
// variable to the projection-indirection shadow variable.
func SubstituteVariable(node ir.Node, old, new *ir.Variable) ir.Node {
	return ir.Fold(node, func(n ir.Node) ir.Node {
		if v, ok := n.(*ir.Variable); ok && v.ID == old.ID {
			return new
		}
		return n
	})
}
