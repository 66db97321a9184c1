// Package compileerr implements the compile-time error taxonomy of §7: six
// fatal, non-retried error kinds, each surfaced with source-identifying
// context (the failing IR node).
package compileerr

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/flexgraphdb/flexql/ir"
)

// Kind is one of the six compile-time error kinds §7 defines.
type Kind int

const (
	UnknownNode Kind = iota
	UnboundVariable
	DoubleIntroduction
	UnsupportedOperator
	InvalidIdentifier
	MalformedIR
)

func (k Kind) String() string {
	switch k {
	case UnknownNode:
		return "UnknownNode"
	case UnboundVariable:
		return "UnboundVariable"
	case DoubleIntroduction:
		return "DoubleIntroduction"
	case UnsupportedOperator:
		return "UnsupportedOperator"
	case InvalidIdentifier:
		return "InvalidIdentifier"
	case MalformedIR:
		return "MalformedIR"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is a fatal compile-time failure. All six kinds are fatal to the
// current compilation and are never retried (§7).
type Error struct {
	Kind    Kind
	Node    ir.Node // the failing node, nil if not node-specific
	Message string
}

func (e *Error) Error() string {
	if e.Node != nil {
		return fmt.Sprintf("%s: %s (node %T)", e.Kind, e.Message, e.Node)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// New wraps a freshly constructed Error with a stack trace via
// github.com/pkg/errors, so callers can pinpoint exactly which lowering
// call produced it.
func New(kind Kind, node ir.Node, format string, args ...any) error {
	return errors.WithStack(&Error{
		Kind:    kind,
		Node:    node,
		Message: fmt.Sprintf(format, args...),
	})
}

// As reports whether err (or one of its causes) is a *Error, and returns it.
func As(err error) (*Error, bool) {
	var ce *Error
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
