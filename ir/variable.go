package ir

import (
	"fmt"
	"sync/atomic"
)

// variableSeq allocates Variable identities. The source language used object
// identity of Variable instances as the scope key (§9 "Variable identity");
// Go has no stable object identity for value-like structs passed around by
// pointer copies across serialization boundaries, so we reproduce the
// invariant with an explicit, never-reused, monotonically increasing id.
var variableSeq int64

// VariableID uniquely identifies a Variable for the lifetime of a process.
// Two variables with the same Label are still distinct if their IDs differ
// (§3.1 invariant 1).
type VariableID int64

func nextVariableID() VariableID {
	return VariableID(atomic.AddInt64(&variableSeq, 1))
}

// Variable is a named, uniquely-identified binding site. Identity, not
// Label, is the scope key used throughout compilation.
type Variable struct {
	ID    VariableID
	Label string
}

func (*Variable) isNode() {}

// NewVariable allocates a fresh Variable with a new identity. Calling this
// twice with the same label produces two distinct variables, by design.
func NewVariable(label string) *Variable {
	return &Variable{ID: nextVariableID(), Label: label}
}

// PreExecEntry is one statement inside a WithPreExecution block: a query to
// run before the result node, an optional name to bind its result to, and an
// opaque (to the compiler) validator.
type PreExecEntry struct {
	Query          Node
	ResultVariable *Variable // nil if the result is not needed by name
	ResultValidator any       // opaque; never interpreted by the compiler
}

// VariableAssignment binds a Variable to valueNode for the scope of
// resultNode. It lowers to a parenthesized subquery unless the assignment-
// hoisting rewrite (§4.E) eliminates the wrapper.
type VariableAssignment struct {
	Variable   *Variable
	ValueNode  Node
	ResultNode Node
}

func (*VariableAssignment) isNode() {}

func NewVariableAssignment(v *Variable, value, result Node) (*VariableAssignment, error) {
	if v == nil {
		return nil, fmt.Errorf("ir: VariableAssignment requires a Variable")
	}
	if value == nil {
		return nil, fmt.Errorf("ir: VariableAssignment requires a value node")
	}
	if result == nil {
		return nil, fmt.Errorf("ir: VariableAssignment requires a result node")
	}
	return &VariableAssignment{Variable: v, ValueNode: value, ResultNode: result}, nil
}

// WithPreExecution registers a sequence of pre-execution queries before
// lowering resultNode. Each entry's query is compiled in its own pre-exec
// context (§4.C newPreExecContext); entries see bindings from all prior
// entries but not the transient scope of the outer query.
type WithPreExecution struct {
	Entries    []PreExecEntry
	ResultNode Node
}

func (*WithPreExecution) isNode() {}

func NewWithPreExecution(entries []PreExecEntry, result Node) (*WithPreExecution, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("ir: WithPreExecution requires at least one entry")
	}
	if result == nil {
		return nil, fmt.Errorf("ir: WithPreExecution requires a result node")
	}
	for i, e := range entries {
		if e.Query == nil {
			return nil, fmt.Errorf("ir: WithPreExecution entry %d has a nil query", i)
		}
	}
	return &WithPreExecution{Entries: entries, ResultNode: result}, nil
}
