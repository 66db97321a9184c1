// Package rewrite implements the Rewrite Layer (component E): pure
// pattern-matching functions over ir.Node/frag.Fragment data, invoked from
// internal/lower at the points the lowering rules name.
package rewrite

import "github.com/flexgraphdb/flexql/ir"

// HoistAssignments extracts the chain of VariableAssignment nodes at node's
// direct-value position, per §4.E rewrite 1 ("top-level assignment
// hoisting"). It is invoked at the two places that rewrite names: the root
// of each compound query, and inside each TransformList projection
// (lower.lowerTransformList). This is a thin, named wrapper over
// ir.ExtractVariableAssignments so call sites read as applying rewrite 1
// rather than reaching past the rewrite layer into ir directly.
func HoistAssignments(node ir.Node) (ir.Node, []*ir.VariableAssignment) {
	return ir.ExtractVariableAssignments(node)
}
